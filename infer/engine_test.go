package infer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/feature"
	"github.com/gridmind/gridkit/model"
	"github.com/gridmind/gridkit/registry"
)

const trainCSV = `Project_Type,Terrain,Base_Cost_Cr,Steel_Price_Index,Cement_Price_Index,Labour_Wage_RsPerDay,Regulatory_Delay_months,Historical_Delay_Count,Avg_Annual_Rainfall_cm,Vendor_Reliability,Material_Availability_Index,Demand_Supply_Pressure,Skilled_Manpower_pct,Planned_Timeline_months,Delay_months,Overrun_pct,Total_Cost_Cr,Timeline_months
Substation,Plains,120,105,98,520,2,1,90,0.85,0.9,Medium,72,18,2,8,130,20
Overhead Line,Hilly,200,110,102,480,3,4,140,0.7,0.75,High,65,24,5,18,236,29
Underground Cable,Urban,350,95,100,600,4,2,110,0.9,0.8,Low,80,30,3,12,392,33
Substation,Coastal,90,100,103,510,1,2,160,0.75,0.85,Medium,68,15,2,9,98,17
Overhead Line,Plains,150,102,99,490,2,3,100,0.8,0.8,Medium,70,20,1,6,159,21
Underground Cable,Mountainous,400,115,108,650,5,5,180,0.6,0.65,High,55,36,8,25,500,44
`

// fullVocabulary covers every canonical category so pipelines in these
// tests never reject an encoded value unless a test wants them to.
func fullVocabulary() map[string]map[string]int {
	return map[string]map[string]int{
		core.FieldProjectType: {
			core.ProjectOverheadLine: 0, core.ProjectSubstation: 1, core.ProjectUndergroundCable: 2,
		},
		core.FieldState: {"Maharashtra": 0},
		core.FieldTerrain: {
			core.TerrainCoastal: 0, core.TerrainDesert: 1, core.TerrainHilly: 2,
			core.TerrainMountainous: 3, core.TerrainPlains: 4, core.TerrainUrban: 5,
		},
		core.FieldDemandSupplyPressure: {
			core.PressureHigh: 0, core.PressureLow: 1, core.PressureMedium: 2,
		},
	}
}

func savePipeline(t *testing.T, dir, file, target string, vocab map[string]map[string]int) {
	t.Helper()
	p := &model.Pipeline{
		Target:     target,
		Features:   []string{core.FieldProjectType, core.FieldTerrain, core.FieldBaseCost},
		Categories: vocab,
		Mean:       map[string]float64{core.FieldBaseCost: 100},
		Std:        map[string]float64{core.FieldBaseCost: 50},
		Weights: map[string]float64{
			core.FieldProjectType: 2,
			core.FieldTerrain:     1,
			core.FieldBaseCost:    10,
		},
		Intercept: 100,
	}
	if err := p.Save(filepath.Join(dir, file)); err != nil {
		t.Fatalf("save %s: %v", file, err)
	}
}

func loadedRegistry(t *testing.T, dir string) *registry.Registry {
	t.Helper()
	r := registry.New(dir)
	r.Load()
	return r
}

func trainedRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.csv")
	if err := os.WriteFile(path, []byte(trainCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	r := registry.New(dir)
	if err := r.Train(path); err != nil {
		t.Fatalf("Train: %v", err)
	}
	return r
}

func TestProduction_TwoOfThreePipelines(t *testing.T) {
	dir := t.TempDir()
	vocab := fullVocabulary()
	savePipeline(t, dir, registry.FileCostPipeline, core.TargetCostPrediction, vocab)
	savePipeline(t, dir, registry.FileOverrunPipeline, core.TargetOverrunPrediction, vocab)

	p := NewProduction(loadedRegistry(t, dir))
	if !p.Available() {
		t.Fatal("two of three pipelines should make the production strategy available")
	}

	vec := core.DefaultFeatureVector()
	derived := feature.Derive(vec)
	out, err := p.Predict(context.Background(), vec, derived)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("out = %v, want predictions for exactly the 2 loaded targets", out)
	}
	if _, ok := out[core.TargetTimelinePrediction]; ok {
		t.Error("absent pipeline must not contribute a target")
	}
}

func TestProduction_FailingPipelineIsolatedToZero(t *testing.T) {
	dir := t.TempDir()
	vocab := fullVocabulary()
	savePipeline(t, dir, registry.FileCostPipeline, core.TargetCostPrediction, vocab)

	// Overrun pipeline with a crippled vocabulary: every canonical terrain
	// is unknown to it, so its Predict always fails.
	broken := fullVocabulary()
	broken[core.FieldTerrain] = map[string]int{"Tundra": 0}
	savePipeline(t, dir, registry.FileOverrunPipeline, core.TargetOverrunPrediction, broken)

	p := NewProduction(loadedRegistry(t, dir))
	vec := core.DefaultFeatureVector()
	out, err := p.Predict(context.Background(), vec, feature.Derive(vec))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if out[core.TargetOverrunPrediction] != 0.0 {
		t.Errorf("failing pipeline target = %v, want isolated 0.0", out[core.TargetOverrunPrediction])
	}
	if out[core.TargetCostPrediction] == 0.0 {
		t.Error("healthy pipeline must still produce its prediction")
	}
}

func TestProduction_CategoryFixups(t *testing.T) {
	dir := t.TempDir()
	vocab := fullVocabulary()
	savePipeline(t, dir, registry.FileCostPipeline, core.TargetCostPrediction, vocab)
	savePipeline(t, dir, registry.FileTimePipeline, core.TargetTimelinePrediction, vocab)

	p := NewProduction(loadedRegistry(t, dir))

	// Legacy values absent from the training vocabulary are remapped
	// instead of erroring out to 0.0.
	vec := core.DefaultFeatureVector()
	vec.ProjectType = "Transmission"
	vec.Terrain = "Mountain"
	out, err := p.Predict(context.Background(), vec, feature.Derive(vec))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if out[core.TargetCostPrediction] == 0.0 {
		t.Error("fixed-up categories should predict normally, got isolated 0.0")
	}
}

func TestFallback_MultiOutputCoversAllTargets(t *testing.T) {
	f := NewFallback(trainedRegistry(t))
	if !f.Available() {
		t.Fatal("trained fallback population should be available")
	}

	vec := core.DefaultFeatureVector()
	out, err := f.Predict(context.Background(), vec, feature.Derive(vec))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for _, target := range []string{
		core.TargetDelayMonths, core.TargetCostOverrunPct,
		core.TargetTotalCostCr, core.TargetTimelineMonths,
	} {
		if _, ok := out[target]; !ok {
			t.Errorf("missing target %s in %v", target, out)
		}
	}
}

func TestEngine_Precedence(t *testing.T) {
	// Production artifacts and a trained fallback population in one dir.
	r := trainedRegistry(t)

	eng := NewDefaultEngine(r)
	vec := core.DefaultFeatureVector()
	derived := feature.Derive(vec)

	// Only fallback is ready: engine must pick it.
	_, name, err := eng.Predict(context.Background(), vec, derived)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if name != "auto_trained" {
		t.Errorf("strategy = %q, want auto_trained", name)
	}

	// Empty registry: nothing available.
	empty := registry.New(t.TempDir())
	empty.Load()
	_, _, err = NewDefaultEngine(empty).Predict(context.Background(), vec, derived)
	if !core.IsUnavailable(err) {
		t.Errorf("err = %v, want UNAVAILABLE", err)
	}
}

func TestEngine_ProductionPreferredOverFallback(t *testing.T) {
	dir := t.TempDir()
	vocab := fullVocabulary()
	savePipeline(t, dir, registry.FileCostPipeline, core.TargetCostPrediction, vocab)
	savePipeline(t, dir, registry.FileOverrunPipeline, core.TargetOverrunPrediction, vocab)
	path := filepath.Join(dir, "projects.csv")
	if err := os.WriteFile(path, []byte(trainCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	r := registry.New(dir)
	if err := r.Train(path); err != nil {
		t.Fatalf("Train: %v", err)
	}
	r.Load()

	vec := core.DefaultFeatureVector()
	_, name, err := NewDefaultEngine(r).Predict(context.Background(), vec, feature.Derive(vec))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if name != "production_pipeline" {
		t.Errorf("strategy = %q, want production_pipeline preferred over fallback", name)
	}
}

func TestEngine_ContextCancellation(t *testing.T) {
	r := trainedRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	vec := core.DefaultFeatureVector()
	_, _, err := NewDefaultEngine(r).Predict(ctx, vec, feature.Derive(vec))
	if err == nil {
		t.Fatal("cancelled context must abort prediction")
	}
}
