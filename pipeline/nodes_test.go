package pipeline

import (
	"context"
	"testing"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/infer"
	"github.com/gridmind/gridkit/recommend"
	"github.com/gridmind/gridkit/registry"
	"github.com/gridmind/gridkit/risk"
)

// With an empty model directory both model families are unavailable,
// so the default chain must degrade to the heuristic path end to end.
func TestDefaultPipeline_HeuristicDegradation(t *testing.T) {
	reg := registry.New(t.TempDir())
	reg.Load()
	p := NewDefaultPipeline(reg, recommend.NewDefaultGenerator())

	pctx := core.NewPredictionContext(map[string]any{
		"projectType":            "substation",
		"terrainType":            "mountainous",
		"baseEstimatedCost":      200.0,
		"vendorReliabilityScore": 0.5,
		"plannedTimelineMonths":  24.0,
	})
	if err := p.Run(context.Background(), pctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if pctx.StrategyName != infer.StrategyHeuristic {
		t.Fatalf("strategy = %s, want heuristic", pctx.StrategyName)
	}
	if pctx.Confidence != risk.HeuristicConfidence {
		t.Errorf("confidence = %v, want %v", pctx.Confidence, risk.HeuristicConfidence)
	}
	// Mountainous terrain at 0.5 reliability lands in the high band.
	if pctx.Risk == nil || pctx.Risk.Level != core.RiskHigh {
		t.Errorf("risk = %+v, want High", pctx.Risk)
	}
	// No model, no advice: recommendations stay empty but non-nil.
	if pctx.Recommendations == nil || len(pctx.Recommendations) != 0 {
		t.Errorf("recommendations = %v, want empty slice", pctx.Recommendations)
	}
	if pctx.Raw[core.TargetTotalCostCr] <= 200 {
		t.Errorf("total cost = %v, want above base cost", pctx.Raw[core.TargetTotalCostCr])
	}
}

func TestCommonTargets_ProductionMapping(t *testing.T) {
	vec := core.DefaultFeatureVector()
	vec.PlannedTimelineMonths = 20

	pctx := core.NewPredictionContext(nil)
	pctx.Vector = vec
	pctx.StrategyName = infer.StrategyProduction
	pctx.Raw = map[string]float64{
		core.TargetCostPrediction:     250,
		core.TargetOverrunPrediction:  18,
		core.TargetTimelinePrediction: 26,
	}

	got := CommonTargets(pctx)
	if got[core.TargetTotalCostCr] != 250 || got[core.TargetCostOverrunPct] != 18 {
		t.Errorf("mapped targets = %v", got)
	}
	if got[core.TargetDelayMonths] != 6 {
		t.Errorf("delay = %v, want predicted minus planned timeline", got[core.TargetDelayMonths])
	}

	// Shorter-than-planned timelines never yield a negative delay.
	pctx.Raw[core.TargetTimelinePrediction] = 15
	if d := CommonTargets(pctx)[core.TargetDelayMonths]; d != 0 {
		t.Errorf("delay = %v, want 0", d)
	}
}

// A production population can be ready with 2 of 3 pipelines. When the
// timeline pipeline is the absent one, the folded timeline must fall back
// to the planned timeline instead of collapsing toward zero.
func TestCommonTargets_MissingTimelinePipeline(t *testing.T) {
	vec := core.DefaultFeatureVector()
	vec.PlannedTimelineMonths = 24

	pctx := core.NewPredictionContext(nil)
	pctx.Vector = vec
	pctx.StrategyName = infer.StrategyProduction
	pctx.Raw = map[string]float64{
		core.TargetCostPrediction:    250,
		core.TargetOverrunPrediction: 18,
	}

	got := CommonTargets(pctx)
	if got[core.TargetTimelineMonths] != 24 {
		t.Errorf("timeline = %v, want planned 24 when the timeline pipeline is absent", got[core.TargetTimelineMonths])
	}
	if got[core.TargetDelayMonths] != 0 {
		t.Errorf("delay = %v, want 0 when timeline defaults to planned", got[core.TargetDelayMonths])
	}
	if got[core.TargetTotalCostCr] != 250 || got[core.TargetCostOverrunPct] != 18 {
		t.Errorf("present targets must pass through: %v", got)
	}
}

func TestCommonTargets_FallbackPassthrough(t *testing.T) {
	pctx := core.NewPredictionContext(nil)
	pctx.StrategyName = infer.StrategyFallback
	pctx.Raw = map[string]float64{core.TargetDelayMonths: 3}

	if got := CommonTargets(pctx); got[core.TargetDelayMonths] != 3 {
		t.Errorf("passthrough = %v", got)
	}
}

func TestAssessNode_StrategyBranches(t *testing.T) {
	vec := core.DefaultFeatureVector()
	vec.PlannedTimelineMonths = 10

	tests := []struct {
		strategy  string
		raw       map[string]float64
		wantLevel string
	}{
		{infer.StrategyFallback, map[string]float64{core.TargetCostOverrunPct: 25, core.TargetDelayMonths: 8}, core.RiskHigh},
		{infer.StrategyHeuristic, map[string]float64{core.TargetCostOverrunPct: 15, core.TargetDelayMonths: 1}, core.RiskMedium},
		{infer.StrategyProduction, map[string]float64{core.TargetCostPrediction: 50, core.TargetOverrunPrediction: 2, core.TargetTimelinePrediction: 10}, core.RiskLow},
	}
	node := NewAssessNode()
	for _, tt := range tests {
		pctx := core.NewPredictionContext(nil)
		pctx.Vector = vec
		pctx.Raw = tt.raw
		pctx.StrategyName = tt.strategy
		if err := node.Process(context.Background(), pctx); err != nil {
			t.Fatalf("%s: Process: %v", tt.strategy, err)
		}
		if pctx.Risk.Level != tt.wantLevel {
			t.Errorf("%s: level = %s, want %s", tt.strategy, pctx.Risk.Level, tt.wantLevel)
		}
	}
}

func TestInferNode_RequiresUpstreamStages(t *testing.T) {
	node := NewInferNode(infer.NewEngine(), nil)
	if err := node.Process(context.Background(), core.NewPredictionContext(nil)); err == nil {
		t.Error("Process without vector succeeded, want error")
	}
}
