package results

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summarize groups runs by (initial_ribosomes, excess_factor) and
// computes per-cell statistics over the repeated runs. Cells come back
// sorted by ribosome count, then excess factor.
func Summarize(runs []Run) []Aggregate {
	groups := make(map[Key][]Run)
	for _, r := range runs {
		k := Key{InitialRibosomes: r.InitialRibosomes, ExcessFactor: r.ExcessFactor}
		groups[k] = append(groups[k], r)
	}

	aggs := make([]Aggregate, 0, len(groups))
	for k, group := range groups {
		maxProducts := make([]float64, len(group))
		steps := make([]float64, len(group))
		goal := 0
		for i, r := range group {
			maxProducts[i] = float64(r.MaxProduct)
			steps[i] = float64(r.Steps)
			if r.MaxProteinOutputGoal > goal {
				goal = r.MaxProteinOutputGoal
			}
		}

		mean, std := stat.MeanStdDev(maxProducts, nil)
		if len(group) < 2 {
			std = 0
		}
		agg := Aggregate{
			InitialRibosomes: k.InitialRibosomes,
			ExcessFactor:     k.ExcessFactor,
			Runs:             len(group),
			MeanMaxProduct:   mean,
			StdMaxProduct:    std,
			MeanSteps:        stat.Mean(steps, nil),
		}
		if goal > 0 {
			agg.PctOfGoal = 100 * mean / float64(goal)
		}
		aggs = append(aggs, agg)
	}

	sort.Slice(aggs, func(i, j int) bool {
		if aggs[i].InitialRibosomes != aggs[j].InitialRibosomes {
			return aggs[i].InitialRibosomes < aggs[j].InitialRibosomes
		}
		return aggs[i].ExcessFactor < aggs[j].ExcessFactor
	})
	return aggs
}
