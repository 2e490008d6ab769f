package sweep

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/riboflow/go-riboflow/engine"
	"github.com/riboflow/go-riboflow/results"
	"github.com/riboflow/go-riboflow/translate"
)

// Runner executes a sweep experiment. Each worker owns its compiled
// network and engine end to end, so no locking is needed around the
// simulations themselves.
type Runner struct {
	cfg    *Config
	logger *zap.Logger
	store  *results.Store // optional; nil skips persistence
}

// NewRunner creates a Runner. A nil logger falls back to zap.NewNop.
func NewRunner(cfg *Config, logger *zap.Logger, store *results.Store) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, logger: logger, store: store}
}

type job struct {
	marking   int
	ribosomes int
	repeat    int
	seed      int64
}

// Run fans the grid out across workers and returns every completed run.
// A cell that fails to compile is logged and skipped; ctx cancellation
// stops the sweep early with the runs finished so far.
func (r *Runner) Run(ctx context.Context) ([]results.Run, error) {
	cfg := r.cfg
	chains := cfg.chains()

	jobs := make(chan job)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var runs []results.Run

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				run, err := r.runOne(chains, j)
				if err != nil {
					r.logger.Warn("configuration skipped",
						zap.Int("initial_chains_marking", j.marking),
						zap.Int("initial_ribosomes", j.ribosomes),
						zap.Error(err))
					continue
				}
				if r.store != nil {
					if err := r.store.SaveRun(&run); err != nil {
						r.logger.Error("run not persisted", zap.String("run", run.ID), zap.Error(err))
					}
				}
				mu.Lock()
				runs = append(runs, run)
				mu.Unlock()
			}
		}()
	}

	seed := cfg.Seed
	total := 0
feed:
	for _, marking := range cfg.InitialChainsMarking {
		for _, ribosomes := range cfg.InitialRibosomes {
			for rep := 0; rep < cfg.Repeats; rep++ {
				seed++
				if ctx.Err() != nil {
					break feed
				}
				select {
				case jobs <- job{marking: marking, ribosomes: ribosomes, repeat: rep, seed: seed}:
					total++
				case <-ctx.Done():
					break feed
				}
			}
		}
	}
	close(jobs)
	wg.Wait()

	r.logger.Info("sweep finished",
		zap.Int("scheduled", total),
		zap.Int("completed", len(runs)))

	sort.Slice(runs, func(i, j int) bool { return runs[i].Seed < runs[j].Seed })
	return runs, ctx.Err()
}

func (r *Runner) runOne(chains []translate.Chain, j job) (results.Run, error) {
	params := translate.Params{
		InitialChainsMarking: j.marking,
		MaxProteinOutputGoal: r.cfg.MaxProteinOutputGoal,
	}
	if j.marking > 0 {
		params.ExcessAminoacidsFactor = float64(r.cfg.MaxProteinOutputGoal) / float64(j.marking)
	}

	base, err := translate.Compile(chains, params)
	if err != nil {
		return results.Run{}, err
	}
	net, err := translate.ExtendWithRibosomes(base, chains, translate.RibosomeParams{
		InitialRibosomes: j.ribosomes,
	})
	if err != nil {
		return results.Run{}, err
	}

	maxSteps := r.cfg.MaxSteps
	if maxSteps == 0 {
		maxSteps = r.cfg.longestChain() * (j.marking + 1)
	}

	opts := engine.RunOptions{MaxSteps: maxSteps}
	if place, ok := soleProductPlace(chains); ok && r.cfg.MaxProteinOutputGoal > 0 {
		opts.StopPlace = place
		opts.StopCount = r.cfg.MaxProteinOutputGoal
	}

	started := time.Now()
	history := engine.New(net, j.seed).Run(opts)

	run := results.Run{
		InitialRibosomes:     j.ribosomes,
		ExcessFactor:         params.ExcessAminoacidsFactor,
		InitialChainsMarking: j.marking,
		MaxProteinOutputGoal: r.cfg.MaxProteinOutputGoal,
		Seed:                 j.seed,
		Steps:                history.Steps(),
		MaxProduct:           maxProduct(history, chains),
		FinalMarking:         history.Final(),
		StartedAt:            started,
		Elapsed:              time.Since(started),
	}
	r.logger.Debug("run complete",
		zap.Int("initial_chains_marking", j.marking),
		zap.Int("initial_ribosomes", j.ribosomes),
		zap.Int("repeat", j.repeat),
		zap.Int("steps", run.Steps),
		zap.Int("max_product", run.MaxProduct))
	return run, nil
}

// soleProductPlace reports the product place when every chain feeds the
// same product; runs with several products have no single stop column.
func soleProductPlace(chains []translate.Chain) (string, bool) {
	product := chains[0].Product
	for _, c := range chains[1:] {
		if c.Product != product {
			return "", false
		}
	}
	return translate.ProductPlace(product), true
}

// maxProduct is the peak combined token count over all product places.
func maxProduct(h *engine.History, chains []translate.Chain) int {
	places := make(map[string]struct{})
	for _, c := range chains {
		places[translate.ProductPlace(c.Product)] = struct{}{}
	}
	max := 0
	for place := range places {
		if v, ok := h.Max(place); ok && v > max {
			max = v
		}
	}
	if len(places) == 1 {
		return max
	}
	// With several products, take the peak of the summed columns.
	indices := make([]int, 0, len(places))
	for place := range places {
		if idx := h.Column(place); idx >= 0 {
			indices = append(indices, idx)
		}
	}
	for _, row := range h.Rows {
		sum := 0
		for _, idx := range indices {
			sum += row[idx]
		}
		if sum > max {
			max = sum
		}
	}
	return max
}
