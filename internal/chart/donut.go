package chart

import (
	"bytes"
	"fmt"
	"html"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/KaramelBytes/fooddash/internal/analysis"
	"github.com/KaramelBytes/fooddash/internal/survey"
)

// donutHole is the hole radius as a fraction of the outer radius.
const donutHole = 0.4

// Wedge is one slice of a donut.
type Wedge struct {
	Label string
	Value float64
	Color string
}

// Annotation is text placed at fractional panel coordinates.
type Annotation struct {
	Text     string
	X, Y     float64
	FontSize int
}

// DonutPanel is the donut for one outcome.
type DonutPanel struct {
	Outcome    survey.Outcome
	Wedges     []Wedge
	Annotation Annotation
}

// DonutPair shows category proportions for Yes (left) and No (right) with
// one color mapping shared by both donuts.
type DonutPair struct {
	title  string
	column string
	colors ColorMap
	panels []DonutPanel
	hole   float64
}

// NewDonutPair builds a donut pair from a pivot table. Wedges follow the
// table's category order.
func NewDonutPair(title string, t analysis.Table, palette Palette) (*DonutPair, error) {
	colors, err := palette.Assign(title, t.Categories)
	if err != nil {
		return nil, err
	}
	d := &DonutPair{title: title, column: t.Column, colors: colors, hole: donutHole}
	for _, o := range []survey.Outcome{survey.OutcomeYes, survey.OutcomeNo} {
		row := t.Row(o)
		panel := DonutPanel{
			Outcome:    o,
			Annotation: Annotation{Text: o.String(), X: 0.5, Y: 0.5, FontSize: 20},
		}
		for j, cat := range t.Categories {
			panel.Wedges = append(panel.Wedges, Wedge{Label: cat, Value: float64(row[j]), Color: colors.Color(cat)})
		}
		d.panels = append(d.panels, panel)
	}
	return d, nil
}

func (d *DonutPair) Kind() Kind { return KindDonutPair }
func (d *DonutPair) Title() string { return d.title }
func (d *DonutPair) Colors() ColorMap { return d.colors }
func (d *DonutPair) Hole() float64 { return d.hole }
func (d *DonutPair) Panels() []DonutPanel {
	out := make([]DonutPanel, len(d.panels))
	for i, p := range d.panels {
		p.Wedges = append([]Wedge(nil), p.Wedges...)
		out[i] = p
	}
	return out
}

// Wedges returns the wedges of the donut for outcome o.
func (d *DonutPair) Wedges(o survey.Outcome) []Wedge {
	for _, p := range d.panels {
		if p.Outcome == o {
			return append([]Wedge(nil), p.Wedges...)
		}
	}
	return nil
}

func (d *DonutPair) Render(w io.Writer, size Size) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, `<div class="donut-pair"><div class="chart-title">%s</div><div class="donut-panels">`, html.EscapeString(d.title))
	panelSize := Size{Width: size.Width / 2, Height: size.Height - 40}
	for _, p := range d.panels {
		b.WriteString(`<figure class="donut">`)
		if err := renderDonut(&b, p, panelSize); err != nil {
			return fmt.Errorf("%s (%s): %w", d.title, p.Outcome, err)
		}
		a := p.Annotation
		fmt.Fprintf(&b, `<span class="donut-label" style="left:%g%%;top:%g%%;font-size:%dpx">%s</span></figure>`,
			a.X*100, a.Y*100, a.FontSize, html.EscapeString(a.Text))
	}
	b.WriteString(`</div><ul class="legend">`)
	for _, k := range d.colors.Keys() {
		fmt.Fprintf(&b, `<li><span class="swatch" style="background:%s"></span>%s</li>`, d.colors.Color(k), html.EscapeString(k))
	}
	b.WriteString(`</ul></div>`)
	_, err := w.Write(b.Bytes())
	return err
}

func renderDonut(w io.Writer, p DonutPanel, size Size) error {
	var values []gochart.Value
	for _, wg := range p.Wedges {
		if wg.Value <= 0 {
			continue
		}
		c := hexColor(wg.Color)
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%d)", wg.Label, int(wg.Value)),
			Value: wg.Value,
			Style: gochart.Style{FillColor: c, StrokeColor: gochart.ColorWhite, StrokeWidth: 1},
		})
	}
	if len(values) == 0 {
		return writePlaceholder(w, p.Outcome.String(), "no responses")
	}
	donut := gochart.DonutChart{
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}
	var buf bytes.Buffer
	if err := donut.Render(gochart.SVG, &buf); err != nil {
		return err
	}
	_, err := w.Write(svgFragment(buf.Bytes()))
	return err
}
