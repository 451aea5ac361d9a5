package chart

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/fooddash/internal/survey"
)

// Palette is an ordered list of hex colors handed out to categories.
type Palette []string

// DefaultPalette is the categorical palette used across the dashboard.
var DefaultPalette = Palette{"#003f5c", "#58508d", "#bc5090", "#ff6361", "#ffa600"}

// OutcomePalette colors each outcome.
var OutcomePalette = map[survey.Outcome]string{
	survey.OutcomeYes: "#58508d",
	survey.OutcomeNo:  "#bc5090",
}

var hexPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// PaletteError reports a chart with more categories than palette colors.
type PaletteError struct {
	Chart string
	Need  int
	Have  int
}

func (e *PaletteError) Error() string {
	return fmt.Sprintf("%s: %d categories but palette has %d colors", e.Chart, e.Need, e.Have)
}

// Validate checks that every entry is a 6-digit hex color.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("palette is empty")
	}
	for _, c := range p {
		if !hexPattern.MatchString(c) {
			return fmt.Errorf("invalid palette color %q", c)
		}
	}
	return nil
}

// Assign maps each category to a color in order. It fails instead of
// reusing colors when categories outnumber the palette.
func (p Palette) Assign(chart string, categories []string) (ColorMap, error) {
	if len(categories) > len(p) {
		return ColorMap{}, &PaletteError{Chart: chart, Need: len(categories), Have: len(p)}
	}
	m := ColorMap{keys: append([]string(nil), categories...), colors: make(map[string]string, len(categories))}
	for i, c := range categories {
		m.colors[c] = p[i]
	}
	return m, nil
}

// ColorMap is an explicit category to color mapping.
type ColorMap struct {
	keys   []string
	colors map[string]string
}

// Keys returns the categories in assignment order.
func (m ColorMap) Keys() []string { return append([]string(nil), m.keys...) }

// Color returns the hex color of a category, or "" when unmapped.
func (m ColorMap) Color(category string) string { return m.colors[category] }

func outcomeColorMap() ColorMap {
	m := ColorMap{colors: map[string]string{}}
	for _, o := range []survey.Outcome{survey.OutcomeYes, survey.OutcomeNo} {
		m.keys = append(m.keys, o.String())
		m.colors[o.String()] = OutcomePalette[o]
	}
	return m
}

// hexColor converts "#rrggbb" for both renderers; drawing.Color satisfies color.Color.
func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
