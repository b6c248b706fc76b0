package recommend

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/pkg/dsl"
)

// 建议优先级。
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Rule 是一条建议规则：When 条件命中时产出一条 Recommendation。
//
// When 与 Value 都是 CEL 表达式，可引用两个变量：
//   - input: 规范特征名 -> 取值（如 input.Vendor_Reliability）
//   - pred:  目标名 -> 预测值（如 pred.cost_overrun_pct）
//
// Description 可以带一个 fmt 动词（如 %.1f），由 Value 表达式的结果代入；
// Value 为空则 Description 原样输出。
type Rule struct {
	When        string   `yaml:"when"`
	Category    string   `yaml:"type"`
	Priority    string   `yaml:"priority"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Value       string   `yaml:"value,omitempty"`
	Actions     []string `yaml:"actions"`
}

type compiledRule struct {
	rule  Rule
	when  *dsl.Program
	value *dsl.Program
}

// Generator 是规则驱动的建议生成器。规则在构造时编译一次，之后并发安全。
type Generator struct {
	rules []compiledRule
}

// NewGenerator 编译规则表并构造生成器。任何一条规则编译失败都整体失败。
func NewGenerator(rules []Rule) (*Generator, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		if r.When == "" {
			return nil, fmt.Errorf("recommend: rule %d (%s): empty when condition", i, r.Title)
		}
		when, err := dsl.Compile(r.When)
		if err != nil {
			return nil, fmt.Errorf("recommend: rule %d (%s): %w", i, r.Title, err)
		}
		cr := compiledRule{rule: r, when: when}
		if r.Value != "" {
			value, err := dsl.Compile(r.Value)
			if err != nil {
				return nil, fmt.Errorf("recommend: rule %d (%s) value: %w", i, r.Title, err)
			}
			cr.value = value
		}
		compiled = append(compiled, cr)
	}
	return &Generator{rules: compiled}, nil
}

// NewDefaultGenerator 用内置规则表构造生成器。
// 内置规则是静态的，编译失败属于程序缺陷，直接 panic。
func NewDefaultGenerator() *Generator {
	g, err := NewGenerator(DefaultRules())
	if err != nil {
		panic(err)
	}
	return g
}

// LoadRules 从 YAML 文件加载规则表（与内置规则同构，可整体替换）。
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recommend: read rules: %w", err)
	}
	var doc struct {
		Rules []Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("recommend: parse rules: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("recommend: %s defines no rules", path)
	}
	return doc.Rules, nil
}

// Generate 按规则表顺序评估并产出命中的建议。
// 单条规则求值失败按未命中跳过，不影响其余规则。
func (g *Generator) Generate(vec *core.FeatureVector, pred map[string]float64) []core.Recommendation {
	vars := buildVars(vec, pred)

	var out []core.Recommendation
	for _, cr := range g.rules {
		hit, err := cr.when.Evaluate(vars)
		if err != nil || !hit {
			continue
		}

		desc := cr.rule.Description
		if cr.value != nil && strings.Contains(desc, "%") {
			if v, err := cr.value.EvaluateNumber(vars); err == nil {
				desc = fmt.Sprintf(desc, v)
			}
		}
		out = append(out, core.Recommendation{
			Category:    cr.rule.Category,
			Priority:    cr.rule.Priority,
			Title:       cr.rule.Title,
			Description: desc,
			Actions:     append([]string(nil), cr.rule.Actions...),
		})
	}
	return out
}

// buildVars 把规范向量与预测值展开成 CEL 变量空间。
func buildVars(vec *core.FeatureVector, pred map[string]float64) map[string]any {
	input := map[string]any{
		core.FieldProjectType:          vec.ProjectType,
		core.FieldState:                vec.State,
		core.FieldLatitude:             vec.Latitude,
		core.FieldLongitude:            vec.Longitude,
		core.FieldTerrain:              vec.Terrain,
		core.FieldBaseCost:             vec.BaseCostCr,
		core.FieldSteelPriceIndex:      vec.SteelPriceIndex,
		core.FieldCementPriceIndex:     vec.CementPriceIndex,
		core.FieldLabourWage:           vec.LabourWageRate,
		core.FieldRegulatoryDelay:      vec.RegulatoryDelayMonths,
		core.FieldHistoricalDelayCount: vec.HistoricalDelayCount,
		core.FieldRainfall:             vec.RainfallCm,
		core.FieldVendorReliability:    vec.VendorReliability,
		core.FieldMaterialAvailability: vec.MaterialAvailability,
		core.FieldDemandSupplyPressure: vec.DemandSupplyPressure,
		core.FieldSkilledManpower:      vec.SkilledManpower,
		core.FieldDelayMonths:          vec.DelayMonths,
		core.FieldPlannedTimeline:      vec.PlannedTimelineMonths,
		core.FieldEnvRiskIndex:         vec.EnvRiskIndex,
	}
	predVars := make(map[string]any, len(pred))
	for k, v := range pred {
		predVars[k] = v
	}
	return map[string]any{"input": input, "pred": predVars}
}
