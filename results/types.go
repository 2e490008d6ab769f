// Package results records simulation runs and aggregates them across
// repeats, keyed by the swept (initial_ribosomes, excess_factor)
// parameter pair.
package results

import "time"

// Run holds the outcome of one compile -> extend -> simulate cycle.
type Run struct {
	ID                   string         `json:"id"`
	InitialRibosomes     int            `json:"initial_ribosomes"`
	ExcessFactor         float64        `json:"excess_factor"`
	InitialChainsMarking int            `json:"initial_chains_marking"`
	MaxProteinOutputGoal int            `json:"max_protein_output_goal"`
	Seed                 int64          `json:"seed"`
	Steps                int            `json:"steps"`
	MaxProduct           int            `json:"max_product"`
	FinalMarking         map[string]int `json:"final_marking"`
	StartedAt            time.Time      `json:"started_at"`
	Elapsed              time.Duration  `json:"elapsed"`
}

// Key identifies one cell of the sweep grid.
type Key struct {
	InitialRibosomes int
	ExcessFactor     float64
}

// Aggregate summarizes repeated runs of one grid cell.
type Aggregate struct {
	InitialRibosomes int     `json:"initial_ribosomes"`
	ExcessFactor     float64 `json:"excess_factor"`
	Runs             int     `json:"runs"`
	MeanMaxProduct   float64 `json:"mean_max_product"`
	StdMaxProduct    float64 `json:"std_max_product"`
	MeanSteps        float64 `json:"mean_steps"`
	// PctOfGoal is MeanMaxProduct as a percentage of the output goal,
	// 0 when no goal was set.
	PctOfGoal float64 `json:"pct_of_goal"`
}
