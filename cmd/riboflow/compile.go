package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/riboflow/go-riboflow/analysis"
	"github.com/riboflow/go-riboflow/parser"
	"github.com/riboflow/go-riboflow/translate"
)

func compile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	output := fs.String("output", "", "Output file for the compiled network (default: stdout)")
	ribosomes := fs.Bool("ribosomes", true, "Apply the ribosome extension when the config carries ribosome_parameters")
	check := fs.Bool("check", false, "Explore the state space and report dead transitions and deadlocks")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: riboflow compile <chains.json> [options]

Compile a chain-set description into a place/transition network.

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
	if *ribosomes && params.Ribosomes != nil {
		net, err = translate.ExtendWithRibosomes(net, chains, *params.Ribosomes)
		if err != nil {
			return err
		}
	}

	if *check {
		report := analysis.Explore(net, analysis.Options{})
		fmt.Fprintf(os.Stderr, "State space: %d states, %d edges, depth %d\n",
			report.States, report.Edges, report.MaxDepth)
		if !report.Bounded {
			fmt.Fprintln(os.Stderr, "Warning: network is unbounded")
		}
		if report.Truncated {
			fmt.Fprintln(os.Stderr, "Warning: exploration truncated, report may be incomplete")
		}
		if len(report.DeadTransitions) > 0 {
			fmt.Fprintf(os.Stderr, "Warning: dead transitions: %v\n", report.DeadTransitions)
		}
		fmt.Fprintf(os.Stderr, "Terminal markings: %d\n", len(report.Terminal))
	}

	data, err := parser.MarshalNetwork(net)
	if err != nil {
		return err
	}
	if *output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	fmt.Fprintf(os.Stderr, "Network written to %s (%d places, %d transitions)\n",
		*output, len(net.Places), len(net.Transitions))
	return nil
}
