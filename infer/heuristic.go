package infer

import (
	"context"
	"math"
	"strings"

	"github.com/gridmind/gridkit/core"
)

// 启发式地形成本乘数。
var terrainMultipliers = map[string]float64{
	"plains":      1.0,
	"hilly":       1.15,
	"desert":      1.10,
	"coastal":     1.20,
	"urban":       1.25,
	"mountainous": 1.35,
}

// Heuristic 是规则启发式推理策略：两个模型族都不可用时的最后兜底。
// 不依赖任何制品，永远可用；输出目标键与 Fallback 族一致，下游统一折算。
type Heuristic struct{}

func NewHeuristic() *Heuristic { return &Heuristic{} }

func (h *Heuristic) Name() string { return StrategyHeuristic }

func (h *Heuristic) Available() bool { return true }

func (h *Heuristic) Predict(ctx context.Context, vec *core.FeatureVector, derived *core.DerivedFeatures) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	terrainFactor, ok := terrainMultipliers[strings.ToLower(vec.Terrain)]
	if !ok {
		terrainFactor = 1.0
	}
	vendorFactor := 2.0 - vec.VendorReliability

	overrun := (terrainFactor-1)*100 + (vendorFactor-1)*25
	overrun = math.Max(0, math.Min(50, overrun))
	delay := math.Max(0, (terrainFactor-1)*12+(vendorFactor-1)*6)

	return map[string]float64{
		core.TargetCostOverrunPct: overrun,
		core.TargetDelayMonths:    delay,
		core.TargetTotalCostCr:    vec.BaseCostCr * (1 + overrun/100),
		core.TargetTimelineMonths: vec.PlannedTimelineMonths + delay,
	}, nil
}
