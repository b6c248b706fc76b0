package risk

import (
	"testing"

	"github.com/gridmind/gridkit/core"
)

func TestAssessBasic_Thresholds(t *testing.T) {
	tests := []struct {
		name      string
		overrun   float64
		delay     float64
		wantScore int
		wantLevel string
	}{
		{"all quiet", 0, 0, 0, core.RiskLow},
		{"boundary values score nothing", 5, 1, 0, core.RiskLow},
		{"mild overrun only", 6, 0, 1, core.RiskLow},
		{"medium both", 12, 3.5, 4, core.RiskMedium},
		{"worst case", 25, 7, 6, core.RiskHigh},
		{"high overrun alone", 25, 0, 3, core.RiskMedium},
		{"high delay with mild overrun", 6, 7, 4, core.RiskMedium},
		{"high both dimensions", 15, 4, 4, core.RiskMedium},
		{"threshold to high", 21, 3.1, 5, core.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessBasic(map[string]float64{
				core.TargetCostOverrunPct: tt.overrun,
				core.TargetDelayMonths:    tt.delay,
			})
			if got.Score != tt.wantScore || got.Level != tt.wantLevel {
				t.Errorf("AssessBasic = (%d, %s), want (%d, %s)",
					got.Score, got.Level, tt.wantScore, tt.wantLevel)
			}
			if got.Factors != nil {
				t.Error("basic assessment carries no factor strings")
			}
		})
	}
}

func TestAssessBasic_Monotonic(t *testing.T) {
	// Raising either input never lowers the score.
	prev := -1
	for _, overrun := range []float64{0, 6, 11, 21} {
		got := AssessBasic(map[string]float64{core.TargetCostOverrunPct: overrun})
		if got.Score < prev {
			t.Fatalf("score decreased from %d to %d at overrun %v", prev, got.Score, overrun)
		}
		prev = got.Score
	}
}

func TestAssessProduction_ScoreAndFactors(t *testing.T) {
	vec := core.DefaultFeatureVector()
	vec.PlannedTimelineMonths = 20
	vec.EnvRiskIndex = 0.8
	vec.VendorReliability = 0.5

	pred := map[string]float64{
		core.TargetCostPrediction:     250, // +3
		core.TargetOverrunPrediction:  30,  // +3
		core.TargetTimelinePrediction: 31,  // > 20*1.5 -> +3
	}
	got := AssessProduction(pred, vec)

	// 3+3+3 + env 2 + vendor 2 = 13
	if got.Score != 13 {
		t.Errorf("Score = %d, want 13", got.Score)
	}
	if got.Level != core.RiskCritical {
		t.Errorf("Level = %s, want Critical", got.Level)
	}
	if len(got.Factors) != 5 {
		t.Errorf("Factors = %v, want 5 entries", got.Factors)
	}
}

func TestAssessProduction_Levels(t *testing.T) {
	vec := core.DefaultFeatureVector()
	vec.PlannedTimelineMonths = 24

	tests := []struct {
		name string
		pred map[string]float64
		want string
	}{
		{"no findings", map[string]float64{}, core.RiskLow},
		{"medium cost only", map[string]float64{core.TargetCostPrediction: 150}, core.RiskMedium},
		{"cost plus overrun", map[string]float64{
			core.TargetCostPrediction:    150,
			core.TargetOverrunPrediction: 15,
		}, core.RiskHigh},
		{"moderate timeline extension", map[string]float64{
			core.TargetTimelinePrediction: 29, // > 24*1.2
		}, core.RiskMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssessProduction(tt.pred, vec); got.Level != tt.want {
				t.Errorf("Level = %s, want %s", got.Level, tt.want)
			}
		})
	}
}

func TestAssessHeuristic(t *testing.T) {
	tests := []struct {
		overrun, delay float64
		want           string
	}{
		{0, 0, core.RiskLow},
		{10, 2, core.RiskLow},
		{11, 0, core.RiskMedium},
		{0, 2.5, core.RiskMedium},
		{21, 0, core.RiskHigh},
		{0, 4.5, core.RiskHigh},
	}
	for _, tt := range tests {
		if got := AssessHeuristic(tt.overrun, tt.delay); got != tt.want {
			t.Errorf("AssessHeuristic(%v, %v) = %s, want %s", tt.overrun, tt.delay, got, tt.want)
		}
	}
}
