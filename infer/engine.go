package infer

import (
	"context"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/registry"
)

// Engine 按严格优先级选择推理策略：生产 Pipeline 族 → Fallback 族。
//
// 设计原则：
//   - 选中第一个可用策略后只用它，不做结果混合
//   - 选中策略失败时继续尝试后续策略，全部不可用才返回 ErrModelsUnavailable
//   - 启发式兜底不在链内：它不是模型，由服务层在整体失败时显式替换
type Engine struct {
	strategies []core.InferenceStrategy
}

// 策略名（Engine.Predict 的第二返回值，下游按此分流评估逻辑）。
const (
	StrategyProduction = "production_pipeline"
	StrategyFallback   = "auto_trained"
	StrategyHeuristic  = "heuristic"
)

// NewEngine 按给定优先级顺序组装引擎。
func NewEngine(strategies ...core.InferenceStrategy) *Engine {
	return &Engine{strategies: strategies}
}

// NewDefaultEngine 组装标准的 生产 → Fallback 双策略引擎。
func NewDefaultEngine(r *registry.Registry) *Engine {
	return NewEngine(NewProduction(r), NewFallback(r))
}

// Predict 返回 目标名 -> 预测值 以及实际使用的策略名。
func (e *Engine) Predict(ctx context.Context, vec *core.FeatureVector, derived *core.DerivedFeatures) (map[string]float64, string, error) {
	for _, s := range e.strategies {
		if !s.Available() {
			continue
		}
		out, err := s.Predict(ctx, vec, derived)
		if err != nil {
			if ctx.Err() != nil {
				return nil, "", err
			}
			continue
		}
		return out, s.Name(), nil
	}
	return nil, "", core.ErrModelsUnavailable
}
