package feature

import (
	"testing"

	"github.com/gridmind/gridkit/core"
)

func TestLabelEncoderSet_FitTransform(t *testing.T) {
	enc := NewLabelEncoderSet()
	enc.Fit(core.FieldTerrain, []string{"Plains", "Hilly", "Plains", "Urban"})

	// Lexicographic assignment: Hilly=0, Plains=1, Urban=2.
	if got := enc.Transform(core.FieldTerrain, "Plains"); got != 1 {
		t.Errorf("Plains = %v, want 1", got)
	}
	if got := enc.Transform(core.FieldTerrain, "Urban"); got != 2 {
		t.Errorf("Urban = %v, want 2", got)
	}
	if got := enc.Transform(core.FieldTerrain, "Swamp"); got != 0 {
		t.Errorf("unknown category = %v, want 0", got)
	}
	if got := enc.Transform("Unfitted_Column", "x"); got != 0 {
		t.Errorf("unfitted column = %v, want 0", got)
	}
}

func TestStandardScaler_FitTransform(t *testing.T) {
	s := NewStandardScaler()
	s.Fit(map[string][]float64{
		"cost":     {90, 100, 110},
		"constant": {5, 5, 5},
	})

	if got := s.Transform("cost", 100); got != 0 {
		t.Errorf("mean value should scale to 0, got %v", got)
	}
	// Zero-variance columns pass values through unchanged.
	if got := s.Transform("constant", 5); got != 5 {
		t.Errorf("zero-std column = %v, want 5", got)
	}
	// Unfitted columns pass through as well.
	if got := s.Transform("unknown", 7); got != 7 {
		t.Errorf("unfitted column = %v, want 7", got)
	}
}

func TestBuildFallbackRow_OrderAndEncoding(t *testing.T) {
	enc := NewLabelEncoderSet()
	enc.Fit(core.FieldProjectType, []string{"Overhead Line", "Substation", "Underground Cable"})
	enc.Fit(core.FieldTerrain, []string{"Coastal", "Desert", "Hilly", "Mountainous", "Plains", "Urban"})
	enc.Fit(core.FieldDemandSupplyPressure, []string{"High", "Low", "Medium"})

	scaler := NewStandardScaler() // unfitted: numerics pass through

	vec := core.DefaultFeatureVector()
	vec.ProjectType = core.ProjectSubstation
	vec.Terrain = core.TerrainPlains
	vec.DemandSupplyPressure = core.PressureMedium
	derived := Derive(vec)

	row := BuildFallbackRow(FallbackColumns, vec, derived, enc, scaler)
	if len(row) != len(FallbackColumns) {
		t.Fatalf("row length = %d, want %d", len(row), len(FallbackColumns))
	}
	if row[0] != 1 { // Substation sorts after Overhead Line
		t.Errorf("Project_Type encoding = %v, want 1", row[0])
	}
	if row[1] != 4 { // Plains is 5th lexicographically
		t.Errorf("Terrain encoding = %v, want 4", row[1])
	}
	if row[2] != vec.BaseCostCr {
		t.Errorf("Base_Cost_Cr = %v, want %v", row[2], vec.BaseCostCr)
	}
	if row[len(row)-1] != derived.ProjectComplexity {
		t.Errorf("last column = %v, want Project_Complexity %v", row[len(row)-1], derived.ProjectComplexity)
	}
}
