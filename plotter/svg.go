// Package plotter renders simulation histories as SVG line plots.
package plotter

import (
	"fmt"
	"math"
	"strings"

	"github.com/riboflow/go-riboflow/engine"
)

// Series is one line of the plot.
type Series struct {
	X     []float64
	Y     []float64
	Label string
	Color string
}

// Plot is a minimal SVG line plotter: axes, ticks, grid, legend.
type Plot struct {
	Width  float64
	Height float64
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

// New creates a plot with the given canvas size.
func New(width, height float64) *Plot {
	return &Plot{
		Width:  width,
		Height: height,
		XLabel: "Step",
		YLabel: "Tokens",
	}
}

var palette = []string{"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00", "#a65628", "#f781bf", "#999999"}

// AddSeries appends a line; an empty color picks from a fixed palette.
func (p *Plot) AddSeries(x, y []float64, label, color string) *Plot {
	if color == "" {
		color = palette[len(p.Series)%len(palette)]
	}
	p.Series = append(p.Series, Series{X: x, Y: y, Label: label, Color: color})
	return p
}

// Render generates the SVG document.
func (p *Plot) Render() string {
	const marginTop, marginRight, marginBottom, marginLeft = 40.0, 30.0, 50.0, 60.0
	plotW := p.Width - marginLeft - marginRight
	plotH := p.Height - marginTop - marginBottom

	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, s := range p.Series {
		for i := range s.X {
			xmin = math.Min(xmin, s.X[i])
			xmax = math.Max(xmax, s.X[i])
			ymin = math.Min(ymin, s.Y[i])
			ymax = math.Max(ymax, s.Y[i])
		}
	}
	if math.IsInf(xmin, 1) {
		xmin, xmax = 0, 1
	}
	if math.IsInf(ymin, 1) {
		ymin, ymax = 0, 1
	}
	if xmax == xmin {
		xmax = xmin + 1
	}
	if ymax == ymin {
		ymax = ymin + 1
	}
	ymin -= (ymax - ymin) * 0.05
	ymax += (ymax - ymin) * 0.05

	sx := func(x float64) float64 { return marginLeft + (x-xmin)/(xmax-xmin)*plotW }
	sy := func(y float64) float64 { return marginTop + plotH - (y-ymin)/(ymax-ymin)*plotH }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`,
		int(p.Width), int(p.Height)))
	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="#ffffff"/>`,
		int(p.Width), int(p.Height)))

	if p.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%f" y="25" text-anchor="middle" font-family="sans-serif" font-size="16" font-weight="bold">%s</text>`,
			p.Width/2, escape(p.Title)))
	}

	// Axes
	sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#333" stroke-width="2"/>`,
		marginLeft, marginTop, marginLeft, marginTop+plotH))
	sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#333" stroke-width="2"/>`,
		marginLeft, marginTop+plotH, marginLeft+plotW, marginTop+plotH))
	sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" text-anchor="middle" font-family="sans-serif" font-size="12">%s</text>`,
		marginLeft+plotW/2, p.Height-10, escape(p.XLabel)))
	sb.WriteString(fmt.Sprintf(`<text x="15" y="%f" text-anchor="middle" font-family="sans-serif" font-size="12" transform="rotate(-90, 15, %f)">%s</text>`,
		marginTop+plotH/2, marginTop+plotH/2, escape(p.YLabel)))

	// Ticks and grid
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		x := xmin + (xmax-xmin)*float64(i)/ticks
		px := sx(x)
		sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#ddd" stroke-width="0.5"/>`,
			px, marginTop, px, marginTop+plotH))
		sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" text-anchor="middle" font-family="sans-serif" font-size="10">%.0f</text>`,
			px, marginTop+plotH+20, x))

		y := ymin + (ymax-ymin)*float64(i)/ticks
		py := sy(y)
		sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#ddd" stroke-width="0.5"/>`,
			marginLeft, py, marginLeft+plotW, py))
		sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" text-anchor="end" font-family="sans-serif" font-size="10">%.1f</text>`,
			marginLeft-10, py+4, y))
	}

	// Series
	for _, s := range p.Series {
		if len(s.X) == 0 {
			continue
		}
		var path strings.Builder
		for i := range s.X {
			if i == 0 {
				path.WriteString(fmt.Sprintf("M%f,%f", sx(s.X[i]), sy(s.Y[i])))
			} else {
				path.WriteString(fmt.Sprintf(" L%f,%f", sx(s.X[i]), sy(s.Y[i])))
			}
		}
		sb.WriteString(fmt.Sprintf(`<path d="%s" stroke="%s" stroke-width="2" fill="none"/>`,
			path.String(), s.Color))
	}

	// Legend
	legendY := marginTop + 10
	for _, s := range p.Series {
		if s.Label == "" {
			continue
		}
		x1 := p.Width - marginRight - 110
		x2 := x1 + 20
		sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="%s" stroke-width="2"/>`,
			x1, legendY, x2, legendY, s.Color))
		sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" font-family="sans-serif" font-size="10">%s</text>`,
			x2+5, legendY+4, escape(s.Label)))
		legendY += 20
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// PlotHistory plots selected columns of a run history against the step
// index. If places is nil every column is plotted.
func PlotHistory(h *engine.History, places []string, width, height float64, title string) string {
	p := New(width, height)
	p.Title = title

	if places == nil {
		places = h.Columns
	}
	steps := make([]float64, len(h.Rows))
	for i := range steps {
		steps[i] = float64(i)
	}
	for _, place := range places {
		if y := h.Series(place); y != nil {
			p.AddSeries(steps, y, place, "")
		}
	}
	return p.Render()
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
