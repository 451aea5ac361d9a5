package chart

import (
	"fmt"

	"github.com/KaramelBytes/fooddash/internal/analysis"
	"github.com/KaramelBytes/fooddash/internal/survey"
)

// Dashboard chart titles.
const (
	TitleDensity        = "Density Plot: Age color-encoded by Output (Buy again)"
	TitleGenderPie      = "Pie Chart: Gender by Output (Buy again)"
	TitleIncomeHist     = "Histogram: Output (Buy again) color-encoded by Monthly income"
	TitleScatter        = "Scatter Plot: Medium vs Family size color-encoded by Output"
	TitleOccupationHist = "Histogram: Output (Buy again) color-encoded by Occupation"
	TitleMaritalPie     = "Pie Chart: Marital status by Output (Buy again)"
)

var (
	genderOrder  = []string{"Male", "Female"}
	maritalOrder = []string{"Married", "Prefer not to say", "Single"}
	duoPalette   = Palette{"#58508d", "#bc5090"}
)

// Options tune chart construction.
type Options struct {
	// Palette colors categorical groups; DefaultPalette when nil.
	Palette Palette
}

// Build produces the six dashboard figures in slot order: density, gender
// donuts, income histogram, scatter, occupation histogram, marital donuts.
func Build(ds *survey.Dataset, opt Options) ([]Figure, error) {
	palette := opt.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	split, err := analysis.SplitByOutcome(ds, survey.ColAge)
	if err != nil {
		return nil, fmt.Errorf("density: %w", err)
	}
	density := NewDensity(TitleDensity, split)

	gender, err := donutFor(ds, TitleGenderPie, survey.ColGender, genderOrder, duoPalette)
	if err != nil {
		return nil, err
	}
	income, err := histogramFor(ds, TitleIncomeHist, survey.ColIncome, palette)
	if err != nil {
		return nil, err
	}
	scatter, err := NewScatter(TitleScatter, ds, survey.ColMedium, survey.ColFamilySize)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	occupation, err := histogramFor(ds, TitleOccupationHist, survey.ColOccupation, palette)
	if err != nil {
		return nil, err
	}
	marital, err := donutFor(ds, TitleMaritalPie, survey.ColMaritalStatus, maritalOrder, palette)
	if err != nil {
		return nil, err
	}
	return []Figure{density, gender, income, scatter, occupation, marital}, nil
}

func donutFor(ds *survey.Dataset, title, column string, order []string, palette Palette) (*DonutPair, error) {
	t, err := analysis.Pivot(ds, column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", title, err)
	}
	return NewDonutPair(title, t.Reorder(order), palette)
}

func histogramFor(ds *survey.Dataset, title, column string, palette Palette) (*GroupedHistogram, error) {
	t, err := analysis.Pivot(ds, column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", title, err)
	}
	return NewGroupedHistogram(title, t, palette)
}
