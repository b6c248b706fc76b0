package infer

import (
	"context"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/feature"
	"github.com/gridmind/gridkit/registry"
)

// Fallback 是自训练 Fallback 族的推理策略。
//
// 设计原则：
//   - 多输出模型优先（一次产出全部四个目标），失败再退回单目标模型
//   - 单目标路径缺哪个模型就跳过哪个目标，产出部分结果而不是整体失败
type Fallback struct {
	registry *registry.Registry
}

func NewFallback(r *registry.Registry) *Fallback {
	return &Fallback{registry: r}
}

func (f *Fallback) Name() string { return StrategyFallback }

func (f *Fallback) Available() bool {
	return f.registry.Snapshot().FallbackReady()
}

func (f *Fallback) Predict(ctx context.Context, vec *core.FeatureVector, derived *core.DerivedFeatures) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := f.registry.Snapshot()
	if !s.FallbackReady() {
		return nil, core.ErrModelsUnavailable
	}

	row := feature.BuildFallbackRow(s.Columns, vec, derived, s.Encoders, s.Scaler)

	if s.Multi != nil {
		if values, err := s.Multi.Predict(row); err == nil {
			out := make(map[string]float64, len(values))
			for i, target := range s.Multi.Targets() {
				out[target] = values[i]
			}
			return out, nil
		}
	}

	out := make(map[string]float64, len(s.Fallback))
	for target, m := range s.Fallback {
		v, err := m.Predict(row)
		if err != nil {
			continue
		}
		out[target] = v
	}
	if len(out) == 0 {
		return nil, core.ErrModelsUnavailable
	}
	return out, nil
}
