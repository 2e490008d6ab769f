package results

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	runs := []Run{
		{InitialRibosomes: 1, ExcessFactor: 0.5, MaxProduct: 10, Steps: 100, MaxProteinOutputGoal: 20},
		{InitialRibosomes: 1, ExcessFactor: 0.5, MaxProduct: 14, Steps: 120, MaxProteinOutputGoal: 20},
		{InitialRibosomes: 2, ExcessFactor: 0.5, MaxProduct: 20, Steps: 80, MaxProteinOutputGoal: 20},
	}

	aggs := Summarize(runs)
	if len(aggs) != 2 {
		t.Fatalf("Expected 2 cells, got %d", len(aggs))
	}

	first := aggs[0]
	if first.InitialRibosomes != 1 {
		t.Errorf("Expected ribosome cell 1 first, got %d", first.InitialRibosomes)
	}
	if first.Runs != 2 {
		t.Errorf("Expected 2 runs in cell, got %d", first.Runs)
	}
	if first.MeanMaxProduct != 12 {
		t.Errorf("Expected mean 12, got %g", first.MeanMaxProduct)
	}
	// Sample std dev of {10, 14} is 2*sqrt(2).
	if math.Abs(first.StdMaxProduct-2*math.Sqrt2) > 1e-9 {
		t.Errorf("Expected std %g, got %g", 2*math.Sqrt2, first.StdMaxProduct)
	}
	if first.PctOfGoal != 60 {
		t.Errorf("Expected 60%% of goal, got %g", first.PctOfGoal)
	}

	second := aggs[1]
	if second.Runs != 1 {
		t.Errorf("Expected 1 run in cell, got %d", second.Runs)
	}
	if second.StdMaxProduct != 0 {
		t.Errorf("Expected zero std for a single run, got %g", second.StdMaxProduct)
	}
	if second.PctOfGoal != 100 {
		t.Errorf("Expected 100%% of goal, got %g", second.PctOfGoal)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if aggs := Summarize(nil); len(aggs) != 0 {
		t.Errorf("Expected no aggregates, got %d", len(aggs))
	}
}

func TestSummarizeSortsByRibosomesThenExcess(t *testing.T) {
	runs := []Run{
		{InitialRibosomes: 2, ExcessFactor: 1.0},
		{InitialRibosomes: 1, ExcessFactor: 2.0},
		{InitialRibosomes: 1, ExcessFactor: 0.5},
	}
	aggs := Summarize(runs)

	if aggs[0].InitialRibosomes != 1 || aggs[0].ExcessFactor != 0.5 {
		t.Errorf("Unexpected first cell: %+v", aggs[0])
	}
	if aggs[1].InitialRibosomes != 1 || aggs[1].ExcessFactor != 2.0 {
		t.Errorf("Unexpected second cell: %+v", aggs[1])
	}
	if aggs[2].InitialRibosomes != 2 {
		t.Errorf("Unexpected third cell: %+v", aggs[2])
	}
}
