package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/riboflow/go-riboflow/engine"
	"github.com/riboflow/go-riboflow/plotter"
)

func plot(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	output := fs.String("output", "plot.svg", "Output SVG file")
	places := fs.String("places", "", "Comma-separated place names to plot (default: all columns)")
	title := fs.String("title", "", "Plot title")
	width := fs.Int("width", 800, "Plot width in pixels")
	height := fs.Int("height", 600, "Plot height in pixels")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: riboflow plot <history.csv> [options]

Render a marking history written by 'riboflow simulate' as an SVG line
plot, one series per place.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("history file required")
	}

	history, err := engine.LoadCSV(fs.Arg(0))
	if err != nil {
		return err
	}

	var selected []string
	if *places != "" {
		for _, name := range strings.Split(*places, ",") {
			name = strings.TrimSpace(name)
			if history.Column(name) < 0 {
				return fmt.Errorf("place %q not in history (columns: %s)",
					name, strings.Join(history.Columns, ", "))
			}
			selected = append(selected, name)
		}
	}

	svg := plotter.PlotHistory(history, selected, float64(*width), float64(*height), *title)
	if err := os.WriteFile(*output, []byte(svg), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	fmt.Fprintf(os.Stderr, "Plot written to %s\n", *output)
	return nil
}
