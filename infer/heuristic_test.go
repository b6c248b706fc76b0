package infer

import (
	"context"
	"math"
	"testing"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/feature"
)

func TestHeuristic_TerrainAndVendorRules(t *testing.T) {
	h := NewHeuristic()
	if !h.Available() {
		t.Fatal("heuristic must always be available")
	}

	tests := []struct {
		name        string
		terrain     string
		vendor      float64
		wantOverrun float64
		wantDelay   float64
	}{
		// terrainFactor 1.0, vendorFactor 1.2: overrun 0+5, delay 0+1.2
		{"plains average vendor", core.TerrainPlains, 0.8, 5, 1.2},
		// terrainFactor 1.35, vendorFactor 1.5: overrun 35+12.5, delay 4.2+3
		{"mountainous weak vendor", core.TerrainMountainous, 0.5, 47.5, 7.2},
		// overrun capped at 50: 35 + 25 = 60 -> 50
		{"mountainous worst vendor", core.TerrainMountainous, 0.0, 50, 10.2},
		// perfect vendor on plains: both terms vanish entirely
		{"plains perfect vendor", core.TerrainPlains, 1.0, 0, 0},
		// unknown terrain takes the neutral multiplier
		{"unknown terrain", "Swamp", 0.8, 5, 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec := core.DefaultFeatureVector()
			vec.Terrain = tt.terrain
			vec.VendorReliability = tt.vendor

			out, err := h.Predict(context.Background(), vec, feature.Derive(vec))
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			if math.Abs(out[core.TargetCostOverrunPct]-tt.wantOverrun) > 1e-9 {
				t.Errorf("overrun = %v, want %v", out[core.TargetCostOverrunPct], tt.wantOverrun)
			}
			if math.Abs(out[core.TargetDelayMonths]-tt.wantDelay) > 1e-9 {
				t.Errorf("delay = %v, want %v", out[core.TargetDelayMonths], tt.wantDelay)
			}
		})
	}
}

func TestHeuristic_DerivedTargets(t *testing.T) {
	h := NewHeuristic()
	vec := core.DefaultFeatureVector()
	vec.Terrain = core.TerrainUrban // factor 1.25
	vec.VendorReliability = 0.8
	vec.BaseCostCr = 200
	vec.PlannedTimelineMonths = 24

	out, err := h.Predict(context.Background(), vec, feature.Derive(vec))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	overrun := out[core.TargetCostOverrunPct]
	if math.Abs(out[core.TargetTotalCostCr]-200*(1+overrun/100)) > 1e-9 {
		t.Errorf("total cost = %v, want base scaled by overrun", out[core.TargetTotalCostCr])
	}
	if math.Abs(out[core.TargetTimelineMonths]-(24+out[core.TargetDelayMonths])) > 1e-9 {
		t.Errorf("timeline = %v, want planned + delay", out[core.TargetTimelineMonths])
	}
}
