package model

import (
	"math"
	"path/filepath"
	"testing"
)

func testPipeline() *Pipeline {
	return &Pipeline{
		Target:   "cost_prediction",
		Features: []string{"Project_Type", "Base_Cost_Cr", "Planned_Timeline_months"},
		Categories: map[string]map[string]int{
			"Project_Type": {"Overhead Line": 0, "Substation": 1, "Underground Cable": 2},
		},
		Mean: map[string]float64{"Base_Cost_Cr": 100, "Planned_Timeline_months": 12},
		Std:  map[string]float64{"Base_Cost_Cr": 50, "Planned_Timeline_months": 6},
		Weights: map[string]float64{
			"Project_Type":            4,
			"Base_Cost_Cr":            30,
			"Planned_Timeline_months": 10,
		},
		Intercept: 110,
	}
}

func TestPipeline_Predict(t *testing.T) {
	p := testPipeline()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	got, err := p.Predict(map[string]any{
		"Project_Type":            "Substation",
		"Base_Cost_Cr":            150.0,
		"Planned_Timeline_months": 18.0,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	// 110 + 4*1 + 30*(150-100)/50 + 10*(18-12)/6 = 154
	if math.Abs(got-154) > 1e-9 {
		t.Errorf("Predict = %v, want 154", got)
	}
}

func TestPipeline_UnknownCategoryErrors(t *testing.T) {
	p := testPipeline()
	_, err := p.Predict(map[string]any{
		"Project_Type":            "Microgrid",
		"Base_Cost_Cr":            100.0,
		"Planned_Timeline_months": 12.0,
	})
	if err == nil {
		t.Fatal("unknown category must surface as an error, not a guessed encoding")
	}
}

func TestPipeline_MissingColumnsTreatedAsZero(t *testing.T) {
	p := testPipeline()
	got, err := p.Predict(map[string]any{"Project_Type": "Overhead Line"})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	// Missing numerics enter as raw 0, then get standardized.
	want := 110.0 + 30*(0-100)/50 + 10*(0-12)/6
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Predict = %v, want %v", got, want)
	}
}

func TestPipeline_ValueCoercion(t *testing.T) {
	p := testPipeline()

	// Numeric strings and integers coerce like their float counterparts,
	// unparseable numerics degrade to the missing-column zero.
	got, err := p.Predict(map[string]any{
		"Project_Type":            "Substation",
		"Base_Cost_Cr":            "150",
		"Planned_Timeline_months": 18,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if math.Abs(got-154) > 1e-9 {
		t.Errorf("Predict = %v, want 154", got)
	}

	got, err = p.Predict(map[string]any{
		"Project_Type":            "Substation",
		"Base_Cost_Cr":            "n/a",
		"Planned_Timeline_months": 18.0,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	want := 110.0 + 4 + 30*(0-100)/50 + 10*(18-12)/6
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Predict with unparseable numeric = %v, want %v", got, want)
	}

	// Categorical columns only take strings; anything else is an error,
	// same as an unknown vocabulary entry.
	if _, err := p.Predict(map[string]any{
		"Project_Type":            42,
		"Base_Cost_Cr":            100.0,
		"Planned_Timeline_months": 12.0,
	}); err == nil {
		t.Error("non-string categorical value must surface as an error")
	}
}

func TestPipeline_ValidateRejectsMissingWeight(t *testing.T) {
	p := testPipeline()
	delete(p.Weights, "Base_Cost_Cr")
	if err := p.Validate(); err == nil {
		t.Error("Validate should fail when a feature column has no weight")
	}
}

func TestPipeline_SaveLoadRoundTrip(t *testing.T) {
	p := testPipeline()
	path := filepath.Join(t.TempDir(), "cost_pipeline.json")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadPipeline(path)
	if err != nil {
		t.Fatalf("LoadPipeline: %v", err)
	}

	frame := map[string]any{
		"Project_Type":            "Underground Cable",
		"Base_Cost_Cr":            80.0,
		"Planned_Timeline_months": 24.0,
	}
	want, _ := p.Predict(frame)
	got, err := loaded.Predict(frame)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("loaded pipeline predicts %v, original %v", got, want)
	}
}
