package results

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer store.Close()

	run := Run{
		InitialRibosomes:     2,
		ExcessFactor:         0.5,
		InitialChainsMarking: 100,
		MaxProteinOutputGoal: 50,
		Seed:                 7,
		Steps:                1234,
		MaxProduct:           48,
		FinalMarking:         map[string]int{"p_preinsulin": 48, "p_free_ribosomes": 2},
		StartedAt:            time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Elapsed:              1500 * time.Millisecond,
	}
	if err := store.SaveRun(&run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if run.ID == "" {
		t.Error("SaveRun should assign an ID")
	}

	runs, err := store.Runs()
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.ID != run.ID {
		t.Errorf("Expected ID %s, got %s", run.ID, got.ID)
	}
	if got.InitialRibosomes != 2 || got.ExcessFactor != 0.5 {
		t.Errorf("Unexpected sweep key: %+v", got)
	}
	if got.MaxProduct != 48 || got.Steps != 1234 {
		t.Errorf("Unexpected metrics: %+v", got)
	}
	if got.FinalMarking["p_preinsulin"] != 48 {
		t.Errorf("Expected final marking 48, got %d", got.FinalMarking["p_preinsulin"])
	}
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Errorf("Expected started_at %v, got %v", run.StartedAt, got.StartedAt)
	}
	if got.Elapsed != run.Elapsed {
		t.Errorf("Expected elapsed %v, got %v", run.Elapsed, got.Elapsed)
	}
}

func TestStoreOrdersNewestFirst(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer store.Close()

	old := Run{StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), FinalMarking: map[string]int{}}
	recent := Run{StartedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), FinalMarking: map[string]int{}}
	if err := store.SaveRun(&old); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := store.SaveRun(&recent); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	runs, err := store.Runs()
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if runs[0].ID != recent.ID {
		t.Error("Expected the most recent run first")
	}
}
