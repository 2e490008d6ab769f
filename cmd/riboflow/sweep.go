package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/riboflow/go-riboflow/results"
	"github.com/riboflow/go-riboflow/sweep"
)

func sweepCmd(args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite database for per-run results (optional)")
	output := fs.String("output", "sweep_results.json", "Output file for aggregated results")
	verbose := fs.Bool("verbose", false, "Log every run, not just skipped configurations")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: riboflow sweep <experiment.yaml> [options]

Run a parameter sweep over ribosome availability and substrate excess.
Each grid cell is compiled, extended with the configured ribosome pool,
simulated, and aggregated across repeats.

Example experiment file:

  chains:
    - name: chainA
      sequence: MALWMRLLPLLALLALWGPDPAAA
      product_name: preinsulin
  initial_chains_marking: [10, 50, 100]
  initial_ribosomes: [1, 2, 10, 50]
  max_protein_output_goal: 100
  repeats: 3
  workers: 4
  seed: 1

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("experiment file required")
	}

	cfg, err := sweep.LoadConfig(fs.Arg(0))
	if err != nil {
		return err
	}

	logCfg := zap.NewProductionConfig()
	if *verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	var store *results.Store
	if *dbPath != "" {
		store, err = results.OpenStore(*dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := sweep.NewRunner(cfg, logger, store)
	runs, runErr := runner.Run(ctx)

	aggs := results.Summarize(runs)
	data, err := json.MarshalIndent(aggs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	fmt.Fprintf(os.Stderr, "Aggregated %d runs into %d cells -> %s\n",
		len(runs), len(aggs), *output)

	return runErr
}
