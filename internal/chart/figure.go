// Package chart turns aggregated survey tables into immutable chart
// specifications and renders them as inline SVG markup.
package chart

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Kind names a chart type.
type Kind string

const (
	KindDensity          Kind = "density"
	KindDonutPair        Kind = "donut_pair"
	KindGroupedHistogram Kind = "grouped_histogram"
	KindScatter          Kind = "scatter"
)

// Size is a render size in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize fits two charts per row on a typical screen.
var DefaultSize = Size{Width: 640, Height: 450}

// Figure is one chart specification. Render writes a self-contained markup
// fragment that the page composer embeds as is.
type Figure interface {
	Kind() Kind
	Title() string
	Render(w io.Writer, size Size) error
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Legend.Top = true
	return p
}

// writePlot renders p as SVG without the XML prolog so it can be inlined.
func writePlot(w io.Writer, p *plot.Plot, size Size) error {
	wt, err := p.WriterTo(vg.Length(size.Width)*0.75, vg.Length(size.Height)*0.75, "svg")
	if err != nil {
		return fmt.Errorf("create svg writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	_, err = w.Write(svgFragment(buf.Bytes()))
	return err
}

func svgFragment(b []byte) []byte {
	if i := bytes.Index(b, []byte("<svg")); i > 0 {
		return b[i:]
	}
	return b
}

func writePlaceholder(w io.Writer, title, msg string) error {
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" class="placeholder" viewBox="0 0 320 120"><text x="160" y="40" text-anchor="middle" font-size="13">%s</text><text x="160" y="75" text-anchor="middle" font-size="12" fill="#888">%s</text></svg>`,
		html.EscapeString(title), html.EscapeString(msg))
	return err
}
