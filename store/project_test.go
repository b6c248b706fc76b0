package store

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/gridmind/gridkit/core"
)

func TestMemoryStore_TTL(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v"), 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = (%q, %v), want (v, nil)", got, err)
	}

	time.Sleep(1100 * time.Millisecond)
	if _, err := m.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("expired key error = %v, want store NOT_FOUND", err)
	}
}

func TestMemoryStore_CloseStopsCleanup(t *testing.T) {
	before := runtime.NumGoroutine()

	stores := make([]*MemoryStore, 0, 20)
	for i := 0; i < 20; i++ {
		stores = append(stores, NewMemoryStore())
	}
	for _, m := range stores {
		if err := m.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		// Close is idempotent.
		if err := m.Close(); err != nil {
			t.Fatalf("second Close: %v", err)
		}
	}

	// Cleanup goroutines must exit after Close, not linger on a stopped ticker.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before+2 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("goroutines = %d, want about %d after closing all stores", runtime.NumGoroutine(), before)
}

func TestMemoryStore_BatchOps(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if err := m.BatchSet(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}); err != nil {
		t.Fatalf("BatchSet: %v", err)
	}
	got, err := m.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("BatchGet: %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" {
		t.Errorf("BatchGet = %v, want a/b only", got)
	}

	if err := m.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, "a"); !core.IsStoreNotFound(err) {
		t.Errorf("deleted key error = %v, want store NOT_FOUND", err)
	}
}

func TestProjectStore_RoundTrip(t *testing.T) {
	ps := NewProjectStore(NewMemoryStore())
	defer ps.Close()
	ctx := context.Background()

	rec := &ProjectRecord{
		ProjectID:             "PRJ-001",
		ProjectType:           "Overhead Line",
		Terrain:               "Hilly",
		BaseCostCr:            250,
		VendorReliability:     0.65,
		PlannedTimelineMonths: 30,
		DemandSupplyPressure:  "High",
	}
	if err := ps.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := ps.Get(ctx, "PRJ-001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.BaseCostCr != 250 || got.Terrain != "Hilly" {
		t.Errorf("Get = %+v", got)
	}

	if _, err := ps.Get(ctx, "PRJ-404"); !core.IsNotFound(err) {
		t.Errorf("missing project error = %v, want NOT_FOUND", err)
	}
}

func TestProjectRecord_PredictionInput(t *testing.T) {
	rec := &ProjectRecord{
		ProjectID:            "PRJ-002",
		ProjectType:          "Underground Cable",
		Terrain:              "Urban",
		BaseCostCr:           180,
		DemandSupplyPressure: "High",
	}
	input := rec.PredictionInput()

	// Stored canonical strings go out in frontend slug conventions.
	if input["projectType"] != "underground-cable" {
		t.Errorf("projectType = %v, want underground-cable", input["projectType"])
	}
	if input["terrainType"] != "urban" {
		t.Errorf("terrainType = %v, want urban", input["terrainType"])
	}
	if input["demandSupplyPressure"] != "high" {
		t.Errorf("demandSupplyPressure = %v, want high", input["demandSupplyPressure"])
	}
	if input["baseEstimatedCost"] != 180.0 {
		t.Errorf("baseEstimatedCost = %v, want 180", input["baseEstimatedCost"])
	}

	// Zero-valued numerics pick up record defaults.
	if input["labourWageRate"] != 400.0 {
		t.Errorf("labourWageRate = %v, want default 400", input["labourWageRate"])
	}
	if input["plannedTimelineMonths"] != 12.0 {
		t.Errorf("plannedTimelineMonths = %v, want default 12", input["plannedTimelineMonths"])
	}
	if input["historicalDelayPattern"] != "medium" {
		t.Errorf("historicalDelayPattern = %v, want medium", input["historicalDelayPattern"])
	}
}

func TestProjectStore_Resolve(t *testing.T) {
	ps := NewProjectStore(NewMemoryStore())
	defer ps.Close()
	ctx := context.Background()

	if err := ps.Put(ctx, &ProjectRecord{ProjectID: "PRJ-003", Terrain: "Coastal"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	input, err := ps.Resolve(ctx, "PRJ-003")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if input["terrainType"] != "coastal" {
		t.Errorf("terrainType = %v, want coastal", input["terrainType"])
	}

	if _, err := ps.Resolve(ctx, "PRJ-404"); !core.IsNotFound(err) {
		t.Errorf("Resolve missing = %v, want NOT_FOUND", err)
	}
}

func TestProjectStore_OutcomeRoundTrip(t *testing.T) {
	ps := NewProjectStore(NewMemoryStore())
	defer ps.Close()
	ctx := context.Background()

	outcome := &core.Outcome{}
	outcome.Predictions.RiskCategory = core.RiskMedium
	outcome.Predictions.ConfidenceScore = 82.5

	if err := ps.SaveOutcome(ctx, "PRJ-005", outcome); err != nil {
		t.Fatalf("SaveOutcome: %v", err)
	}
	got, err := ps.LastOutcome(ctx, "PRJ-005")
	if err != nil {
		t.Fatalf("LastOutcome: %v", err)
	}
	if got.Predictions.RiskCategory != core.RiskMedium || got.Predictions.ConfidenceScore != 82.5 {
		t.Errorf("LastOutcome = %+v", got.Predictions)
	}

	if _, err := ps.LastOutcome(ctx, "PRJ-404"); !core.IsStoreNotFound(err) {
		t.Errorf("missing outcome error = %v, want store NOT_FOUND", err)
	}
}
