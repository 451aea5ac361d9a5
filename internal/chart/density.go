package chart

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/fooddash/internal/analysis"
	"github.com/KaramelBytes/fooddash/internal/survey"
)

// kdePoints is the number of evaluation points per curve.
const kdePoints = 500

// Curve is the smoothed distribution of one outcome's subpopulation.
type Curve struct {
	Outcome survey.Outcome
	Color   string
	Samples []float64
	X, Y    []float64
}

// Density overlays one KDE curve per outcome. No histogram or rug is drawn.
type Density struct {
	title  string
	column string
	curves []Curve
}

// NewDensity builds Yes and No curves (in that order) from a split column.
func NewDensity(title string, split analysis.Split) *Density {
	d := &Density{title: title, column: split.Column}
	for _, o := range []survey.Outcome{survey.OutcomeYes, survey.OutcomeNo} {
		samples := split.Of(o)
		xs, ys := KDE(samples, kdePoints)
		d.curves = append(d.curves, Curve{
			Outcome: o,
			Color:   OutcomePalette[o],
			Samples: samples,
			X:       xs,
			Y:       ys,
		})
	}
	return d
}

func (d *Density) Kind() Kind { return KindDensity }
func (d *Density) Title() string { return d.title }
func (d *Density) Curves() []Curve { return append([]Curve(nil), d.curves...) }

// Curve returns the curve for outcome o.
func (d *Density) Curve(o survey.Outcome) (Curve, bool) {
	for _, c := range d.curves {
		if c.Outcome == o {
			return c, true
		}
	}
	return Curve{}, false
}

func (d *Density) Render(w io.Writer, size Size) error {
	p := newPlot(d.title)
	p.X.Label.Text = d.column
	p.Y.Label.Text = "density"
	drawn := 0
	for _, c := range d.curves {
		if len(c.X) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(c.X))
		for i := range c.X {
			xys[i].X = c.X[i]
			xys[i].Y = c.Y[i]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("density %s: %w", c.Outcome, err)
		}
		line.LineStyle.Color = hexColor(c.Color)
		line.LineStyle.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(c.Outcome.String(), line)
		drawn++
	}
	if drawn == 0 {
		return writePlaceholder(w, d.title, "no responses")
	}
	return writePlot(w, p, size)
}

// KDE estimates a Gaussian kernel density with Scott's bandwidth,
// evaluated at n evenly spaced points spanning the samples. Samples without
// spread use a unit bandwidth.
func KDE(samples []float64, n int) (xs, ys []float64) {
	if len(samples) == 0 || n <= 0 {
		return nil, nil
	}
	bw := 1.0
	if len(samples) > 1 {
		if sd := stat.StdDev(samples, nil); sd > 0 {
			bw = sd * math.Pow(float64(len(samples)), -0.2)
		}
	}
	lo, hi := floats.Min(samples), floats.Max(samples)
	xs = make([]float64, n)
	if lo == hi || n == 1 {
		for i := range xs {
			xs[i] = lo
		}
	} else {
		floats.Span(xs, lo, hi)
	}

	kernel := distuv.Normal{Mu: 0, Sigma: bw}
	ys = make([]float64, n)
	inv := 1 / float64(len(samples))
	for i, x := range xs {
		var sum float64
		for _, s := range samples {
			sum += kernel.Prob(x - s)
		}
		ys[i] = sum * inv
	}
	return xs, ys
}
