package feature

import (
	"strings"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/pkg/conv"
)

// fieldAliases 是规范字段名 -> 已知别名（按优先级排列）的别名表。
// 前端命名（baseEstimatedCost）、项目记录命名（baseCost）和 ML 列名
// （Base_Cost_Cr）都在这里收口，调用点不再出现 "请求里有没有 key X" 的散落分支。
var fieldAliases = map[string][]string{
	core.FieldProjectType:          {"projectType"},
	core.FieldState:                {"state"},
	core.FieldLatitude:             {"latitude"},
	core.FieldLongitude:            {"longitude"},
	core.FieldTerrain:              {"terrain", "terrainType"},
	core.FieldBaseCost:             {"baseCost", "baseEstimatedCost"},
	core.FieldSteelPriceIndex:      {"steelPrice", "steelPriceIndex"},
	core.FieldCementPriceIndex:     {"cementPrice", "cementPriceIndex"},
	core.FieldLabourWage:           {"labourWage", "labourWageRate"},
	core.FieldRegulatoryDelay:      {"regulatoryDelay", "regulatoryDelayEstimate"},
	core.FieldHistoricalDelayCount: {"historicalDelay", "historicalDelayPattern"},
	core.FieldRainfall:             {"rainfall", "annualRainfall"},
	core.FieldVendorReliability:    {"vendorReliability", "vendorReliabilityScore"},
	core.FieldMaterialAvailability: {"materialAvailability", "materialAvailabilityIndex"},
	core.FieldDemandSupplyPressure: {"demandSupplyPressure"},
	core.FieldSkilledManpower:      {"skilledManpower", "skilledManpowerAvailability"},
	core.FieldDelayMonths:          {"delayMonths"},
	core.FieldPlannedTimeline:      {"plannedTimeline", "plannedTimelineMonths"},
	core.FieldEnvRiskIndex:         {"envRisk"},
}

// 类别值的同义词表（小写 -> 规范值）。查不到时原值透传，
// 是否属于模型已知类别由下游模型族自行判定。
var projectTypeSynonyms = map[string]string{
	"substation":        core.ProjectSubstation,
	"overhead-line":     core.ProjectOverheadLine,
	"overhead line":     core.ProjectOverheadLine,
	"transmission":      core.ProjectOverheadLine,
	"underground-cable": core.ProjectUndergroundCable,
	"underground cable": core.ProjectUndergroundCable,
	"distribution":      core.ProjectUndergroundCable,
}

var terrainSynonyms = map[string]string{
	"plains":      core.TerrainPlains,
	"plain":       core.TerrainPlains,
	"hilly":       core.TerrainHilly,
	"hill":        core.TerrainHilly,
	"desert":      core.TerrainDesert,
	"coastal":     core.TerrainCoastal,
	"urban":       core.TerrainUrban,
	"mountainous": core.TerrainMountainous,
	"mountain":    core.TerrainMountainous,
}

var pressureSynonyms = map[string]string{
	"low":    core.PressureLow,
	"medium": core.PressureMedium,
	"high":   core.PressureHigh,
}

// delaySeverity 是 historicalDelayPattern 文本档位到次数的映射，未知档位取 medium。
var delaySeverity = map[string]float64{
	"low":    1,
	"medium": 3,
	"high":   5,
}

// Normalizer 把任意命名约定的请求映射成规范特征向量（Feature Normalizer）。
//
// 规则：
//   - 先查规范键，再按别名表逐个尝试
//   - 数值字段做宽松 coercion（含数字字符串），失败则取默认值，从不报错
//   - 类别字段按同义词表归一，未知值透传
//   - skilledManpower 的来源约定是百分比（0–100），规范约定是小数（0–1），在此 /100
//
// 纯函数，无副作用。
type Normalizer struct{}

func NewNormalizer() *Normalizer { return &Normalizer{} }

// Normalize 返回一个每个字段都有值的规范特征向量。
// 缺失/不可解析的字段落到默认值并且不计入 Provided。
func (n *Normalizer) Normalize(input map[string]any) *core.FeatureVector {
	vec := core.DefaultFeatureVector()
	if len(input) == 0 {
		return vec
	}

	if s, ok := n.lookupString(input, core.FieldProjectType); ok {
		vec.ProjectType = canonicalize(s, projectTypeSynonyms)
		vec.Provided[core.FieldProjectType] = true
	}
	if s, ok := n.lookupString(input, core.FieldState); ok {
		vec.State = s
		vec.Provided[core.FieldState] = true
	}
	if s, ok := n.lookupString(input, core.FieldTerrain); ok {
		vec.Terrain = canonicalize(s, terrainSynonyms)
		vec.Provided[core.FieldTerrain] = true
	}

	n.setFloat(input, core.FieldLatitude, &vec.Latitude, vec)
	n.setFloat(input, core.FieldLongitude, &vec.Longitude, vec)
	n.setFloat(input, core.FieldBaseCost, &vec.BaseCostCr, vec)
	n.setFloat(input, core.FieldSteelPriceIndex, &vec.SteelPriceIndex, vec)
	n.setFloat(input, core.FieldCementPriceIndex, &vec.CementPriceIndex, vec)
	n.setFloat(input, core.FieldLabourWage, &vec.LabourWageRate, vec)
	n.setFloat(input, core.FieldRegulatoryDelay, &vec.RegulatoryDelayMonths, vec)
	n.setFloat(input, core.FieldRainfall, &vec.RainfallCm, vec)
	n.setFloat(input, core.FieldVendorReliability, &vec.VendorReliability, vec)
	n.setFloat(input, core.FieldMaterialAvailability, &vec.MaterialAvailability, vec)
	n.setFloat(input, core.FieldDelayMonths, &vec.DelayMonths, vec)
	n.setFloat(input, core.FieldPlannedTimeline, &vec.PlannedTimelineMonths, vec)
	n.setFloat(input, core.FieldEnvRiskIndex, &vec.EnvRiskIndex, vec)

	// skilledManpower：来源一律按百分比处理，规范化为 0–1 小数
	if raw, ok := n.lookup(input, core.FieldSkilledManpower); ok {
		if f, ok := conv.ToFloat64(raw); ok {
			vec.SkilledManpower = f / 100.0
			vec.Provided[core.FieldSkilledManpower] = true
		}
	}

	// historicalDelay：数值直接用，文本档位 low/medium/high -> 1/3/5
	if raw, ok := n.lookup(input, core.FieldHistoricalDelayCount); ok {
		if f, ok := conv.ToFloat64(raw); ok {
			vec.HistoricalDelayCount = f
			vec.Provided[core.FieldHistoricalDelayCount] = true
		} else if s, ok := conv.ToString(raw); ok {
			count, known := delaySeverity[strings.ToLower(strings.TrimSpace(s))]
			if !known {
				count = delaySeverity["medium"]
			}
			vec.HistoricalDelayCount = count
			vec.Provided[core.FieldHistoricalDelayCount] = true
		}
	}

	// demandSupplyPressure：规范约定是字符串枚举；个别调用点传 0–1 数值，按三档折算
	if raw, ok := n.lookup(input, core.FieldDemandSupplyPressure); ok {
		if s, ok := conv.ToString(raw); ok {
			vec.DemandSupplyPressure = canonicalize(s, pressureSynonyms)
			vec.Provided[core.FieldDemandSupplyPressure] = true
		} else if f, ok := conv.ToFloat64(raw); ok {
			vec.DemandSupplyPressure = pressureFromScale(f)
			vec.Provided[core.FieldDemandSupplyPressure] = true
		}
	}

	return vec
}

// lookup 先按规范键查，再按别名表查，返回第一个非 nil 的值。
func (n *Normalizer) lookup(input map[string]any, field string) (any, bool) {
	if v, ok := input[field]; ok && v != nil {
		return v, true
	}
	for _, alias := range fieldAliases[field] {
		if v, ok := input[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (n *Normalizer) lookupString(input map[string]any, field string) (string, bool) {
	raw, ok := n.lookup(input, field)
	if !ok {
		return "", false
	}
	s, ok := conv.ToString(raw)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// setFloat 对单个数值字段做查找+coercion，成功时写入目标并登记 Provided。
func (n *Normalizer) setFloat(input map[string]any, field string, dst *float64, vec *core.FeatureVector) {
	raw, ok := n.lookup(input, field)
	if !ok {
		return
	}
	if f, ok := conv.ToFloat64(raw); ok {
		*dst = f
		vec.Provided[field] = true
	}
}

// canonicalize 按同义词表归一类别值：精确命中 -> 小写命中 -> 原值透传。
func canonicalize(value string, synonyms map[string]string) string {
	if canonical, ok := synonyms[value]; ok {
		return canonical
	}
	if canonical, ok := synonyms[strings.ToLower(value)]; ok {
		return canonical
	}
	return value
}

// pressureFromScale 把 0–1 数值压力折算成三档枚举。
func pressureFromScale(f float64) string {
	switch {
	case f < 0.34:
		return core.PressureLow
	case f < 0.67:
		return core.PressureMedium
	default:
		return core.PressureHigh
	}
}
