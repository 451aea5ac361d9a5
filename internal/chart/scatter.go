package chart

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/fooddash/internal/survey"
)

// markerRadius is the uniform marker size in points.
const markerRadius = 4

// Point is one respondent on the scatter plot.
type Point struct {
	X       string
	Y       float64
	Outcome survey.Outcome
}

// Scatter plots a categorical x column against a numeric y column, colored
// by outcome. Coinciding points are kept and drawn on top of each other.
type Scatter struct {
	title      string
	xColumn    string
	yColumn    string
	categories []string
	points     []Point
	colors     ColorMap
}

// NewScatter reads xColumn and yColumn from ds. Rows missing either value are skipped.
func NewScatter(title string, ds *survey.Dataset, xColumn, yColumn string) (*Scatter, error) {
	xs, err := ds.Column(xColumn)
	if err != nil {
		return nil, err
	}
	ys, err := ds.Numeric(yColumn)
	if err != nil {
		return nil, err
	}
	s := &Scatter{title: title, xColumn: xColumn, yColumn: yColumn, colors: outcomeColorMap()}
	seen := map[string]bool{}
	for i := range xs {
		if xs[i] == "" || math.IsNaN(ys[i]) {
			continue
		}
		s.points = append(s.points, Point{X: xs[i], Y: ys[i], Outcome: ds.Outcome(i)})
		if !seen[xs[i]] {
			seen[xs[i]] = true
			s.categories = append(s.categories, xs[i])
		}
	}
	sort.Strings(s.categories)
	return s, nil
}

func (s *Scatter) Kind() Kind { return KindScatter }
func (s *Scatter) Title() string { return s.title }
func (s *Scatter) Categories() []string { return append([]string(nil), s.categories...) }
func (s *Scatter) Points() []Point { return append([]Point(nil), s.points...) }
func (s *Scatter) MarkerSize() float64 { return markerRadius }

func (s *Scatter) Render(w io.Writer, size Size) error {
	if len(s.points) == 0 {
		return writePlaceholder(w, s.title, "no responses")
	}
	pos := make(map[string]float64, len(s.categories))
	for i, c := range s.categories {
		pos[c] = float64(i)
	}

	p := newPlot(s.title)
	p.X.Label.Text = s.xColumn
	p.Y.Label.Text = s.yColumn
	for _, o := range []survey.Outcome{survey.OutcomeYes, survey.OutcomeNo} {
		var xys plotter.XYs
		for _, pt := range s.points {
			if pt.Outcome == o {
				xys = append(xys, plotter.XY{X: pos[pt.X], Y: pt.Y})
			}
		}
		if len(xys) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("%s (%s): %w", s.title, o, err)
		}
		sc.GlyphStyle.Color = hexColor(s.colors.Color(o.String()))
		sc.GlyphStyle.Radius = vg.Points(markerRadius)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(o.String(), sc)
	}
	p.NominalX(s.categories...)
	return writePlot(w, p, size)
}
