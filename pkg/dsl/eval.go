package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			// 定义变量类型
			cel.Variable("input", cel.DynType),
			cel.Variable("pred", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是规则 DSL 的编译结果，使用 CEL (Common Expression Language) 实现。
// CEL 是 Google 开发的表达式语言，具有类型安全、高性能、线程安全等特性。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：pred.cost_overrun_pct > 15.0 / input.Vendor_Reliability < 0.6
//   - 逻辑：pred.delay_months > 4.0 && input.Terrain == "Mountainous"
//   - 包含："Urban" in [input.Terrain] / input.Terrain.contains("Urban")
//
// 示例：
//   - `pred.cost_overrun_pct > 15.0` → 预测超支率超过 15%
//   - `input.Terrain == "Mountainous" || input.Terrain == "Urban"` → 复杂地形
//   - `input.Avg_Annual_Rainfall_cm > 150.0` → 高降雨区域
type Program struct {
	prg cel.Program
}

// Compile 编译一条规则表达式。编译结果可并发复用，规则表只编译一次。
// 空表达式视为恒真（无条件触发的规则）。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return &Program{}, nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("dsl: env error: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("dsl: compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("dsl: program error: %w", err)
	}
	return &Program{prg: prg}, nil
}

// Evaluate 在给定变量上求值，返回布尔结果。
// vars 至少包含 input（规范特征名 -> 值）与 pred（目标名 -> 预测值）。
//
// 注意：CEL 访问不存在的 key 会报错，规则应只引用规范字段与已知目标。
func (p *Program) Evaluate(vars map[string]any) (bool, error) {
	if p.prg == nil {
		return true, nil
	}
	out, _, err := p.prg.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("dsl: eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("dsl: expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// EvaluateNumber 求值数值表达式（如规则描述里要代入的预测值）。
func (p *Program) EvaluateNumber(vars map[string]any) (float64, error) {
	if p.prg == nil {
		return 0, fmt.Errorf("dsl: empty expression has no numeric value")
	}
	out, _, err := p.prg.Eval(vars)
	if err != nil {
		return 0, fmt.Errorf("dsl: eval error: %w", err)
	}
	switch v := out.Value().(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("dsl: expression must return a number, got %T", out.Value())
	}
}
