package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/riboflow/go-riboflow/engine"
	"github.com/riboflow/go-riboflow/parser"
	"github.com/riboflow/go-riboflow/plotter"
	"github.com/riboflow/go-riboflow/translate"
)

func simulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	steps := fs.Int("steps", 0, "Step budget (default: longest chain * (marking + 1))")
	seed := fs.Int64("seed", 1, "Random seed for the firing order")
	output := fs.String("output", "history.csv", "Output CSV for the marking history")
	plot := fs.String("plot", "", "Optional SVG plot of the product trajectory")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: riboflow simulate <chains.json> [options]

Compile a chain-set description, apply the ribosome extension when
configured, and play the token game, recording the marking after each
firing.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("chain-set file required")
	}

	chains, params, err := parser.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	net, err := translate.Compile(chains, params)
	if err != nil {
		return err
	}
	if params.Ribosomes != nil {
		net, err = translate.ExtendWithRibosomes(net, chains, *params.Ribosomes)
		if err != nil {
			return err
		}
	}

	budget := *steps
	if budget == 0 {
		longest := 0
		for _, c := range chains {
			if c.Len() > longest {
				longest = c.Len()
			}
		}
		budget = longest * (params.InitialChainsMarking + 1)
	}

	history := engine.New(net, *seed).Run(engine.RunOptions{MaxSteps: budget})
	if err := history.SaveCSV(*output); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "History written to %s (%d steps)\n", *output, history.Steps())

	if *plot != "" {
		places := make([]string, 0, len(chains))
		seen := make(map[string]struct{})
		for _, c := range chains {
			label := translate.ProductPlace(c.Product)
			if _, ok := seen[label]; !ok {
				seen[label] = struct{}{}
				places = append(places, label)
			}
		}
		svg := plotter.PlotHistory(history, places, 800, 600, "Protein output")
		if err := os.WriteFile(*plot, []byte(svg), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", *plot, err)
		}
		fmt.Fprintf(os.Stderr, "Plot written to %s\n", *plot)
	}

	final := history.Final()
	for _, place := range net.PlaceLabels() {
		if v := final[place]; v != 0 || place == translate.RibosomePlace {
			fmt.Printf("%s = %d\n", place, v)
		}
	}
	return nil
}
