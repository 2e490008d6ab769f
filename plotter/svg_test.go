package plotter

import (
	"strings"
	"testing"

	"github.com/riboflow/go-riboflow/engine"
	"github.com/riboflow/go-riboflow/petri"
)

func TestRender(t *testing.T) {
	p := New(800, 600)
	p.Title = "Protein output"
	p.AddSeries([]float64{0, 1, 2}, []float64{0, 1, 2}, "p_preinsulin", "")
	p.AddSeries([]float64{0, 1, 2}, []float64{2, 1, 0}, "p_free_ribosomes", "#000000")

	svg := p.Render()
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("Render should produce an SVG document")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("Expected 2 series paths, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, "Protein output") {
		t.Error("Title missing from output")
	}
	if !strings.Contains(svg, "p_preinsulin") || !strings.Contains(svg, "p_free_ribosomes") {
		t.Error("Legend labels missing from output")
	}
	if !strings.Contains(svg, `stroke="#000000"`) {
		t.Error("Explicit series color not honored")
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	p := New(400, 300)
	p.Title = "a < b & c"
	svg := p.Render()
	if !strings.Contains(svg, "a &lt; b &amp; c") {
		t.Error("Title should be escaped")
	}
}

func TestPlotHistory(t *testing.T) {
	net := petri.Build().
		Place("a", 2).
		Place("b", 0).
		Transition("t").
		Flow("a", "t", "b", 1).
		Done()
	h := engine.New(net, 1).Run(engine.RunOptions{MaxSteps: 10})

	svg := PlotHistory(h, []string{"b"}, 400, 300, "")
	if strings.Count(svg, "<path") != 1 {
		t.Errorf("Expected 1 path, got %d", strings.Count(svg, "<path"))
	}

	all := PlotHistory(h, nil, 400, 300, "")
	if strings.Count(all, "<path") != 2 {
		t.Errorf("Expected a path per column, got %d", strings.Count(all, "<path"))
	}
}
