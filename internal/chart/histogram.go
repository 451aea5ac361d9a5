package chart

import (
	"fmt"
	"io"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/fooddash/internal/analysis"
	"github.com/KaramelBytes/fooddash/internal/survey"
)

// GroupedHistogram shows outcome counts with one bar per group placed side
// by side (not stacked) inside each outcome.
type GroupedHistogram struct {
	title    string
	column   string
	groups   []string
	colors   ColorMap
	outcomes []survey.Outcome
	counts   map[string][survey.NumOutcomes]int
}

// NewGroupedHistogram builds the chart from a pivot of the grouping column.
func NewGroupedHistogram(title string, t analysis.Table, palette Palette) (*GroupedHistogram, error) {
	colors, err := palette.Assign(title, t.Categories)
	if err != nil {
		return nil, err
	}
	h := &GroupedHistogram{
		title:    title,
		column:   t.Column,
		groups:   append([]string(nil), t.Categories...),
		colors:   colors,
		outcomes: survey.Outcomes(),
		counts:   make(map[string][survey.NumOutcomes]int, len(t.Categories)),
	}
	for _, g := range t.Categories {
		var c [survey.NumOutcomes]int
		for _, o := range h.outcomes {
			c[o] = t.Count(o, g)
		}
		h.counts[g] = c
	}
	return h, nil
}

func (h *GroupedHistogram) Kind() Kind { return KindGroupedHistogram }
func (h *GroupedHistogram) Title() string { return h.title }
func (h *GroupedHistogram) Groups() []string { return append([]string(nil), h.groups...) }
func (h *GroupedHistogram) Colors() ColorMap { return h.colors }

// Count returns the bar height for (o, group).
func (h *GroupedHistogram) Count(o survey.Outcome, group string) int {
	return h.counts[group][o]
}

func (h *GroupedHistogram) Render(w io.Writer, size Size) error {
	if len(h.groups) == 0 {
		return writePlaceholder(w, h.title, "no responses")
	}
	p := newPlot(h.title)
	p.X.Label.Text = survey.ColBuyAgain
	p.Y.Label.Text = "count"

	names := make([]string, len(h.outcomes))
	for i, o := range h.outcomes {
		names[i] = o.String()
	}

	n := len(h.groups)
	barWidth := vg.Points(float64(size.Width) * 0.45 / float64(n*len(h.outcomes)+1))
	for j, g := range h.groups {
		vals := make(plotter.Values, len(h.outcomes))
		for i, o := range h.outcomes {
			vals[i] = float64(h.Count(o, g))
		}
		bars, err := plotter.NewBarChart(vals, barWidth)
		if err != nil {
			return fmt.Errorf("%s (%s): %w", h.title, g, err)
		}
		bars.Color = hexColor(h.colors.Color(g))
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(float64(j)-float64(n-1)/2) * barWidth
		p.Add(bars)
		p.Legend.Add(g, bars)
	}
	p.NominalX(names...)
	return writePlot(w, p, size)
}
