package chart

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/fooddash/internal/analysis"
	"github.com/KaramelBytes/fooddash/internal/survey"
)

const surveyCSV = `Age,Gender,Marital_Status,Occupation,Monthly_Income,Educational_Qualifications,Family_size,Medium,Meal,Preference,Buy_again
20,Female,Single,Student,No Income,Post Graduate,4,Food delivery apps,Breakfast,Veg foods (Breakfast / Lunch / Dinner),Yes
24,Female,Single,Student,Below Rs.10000,Graduate,3,Food delivery apps,Snacks,Veg foods (Breakfast / Lunch / Dinner),Yes
22,Male,Single,Student,Below Rs.10000,Post Graduate,3,Food delivery apps,Lunch,Veg foods (Breakfast / Lunch / Dinner),No
27,Female,Married,Employee,More than 50000,Graduate,2,Walk-in,Dinner,Non Veg foods (Lunch / Dinner),Yes
22,Male,Single,Student,No Income,Graduate,3,Food delivery apps,Lunch,Veg foods (Breakfast / Lunch / Dinner),Yes
32,Male,Married,Self Employeed,25001 to 50000,Ph.D,6,Direct call,Dinner,Non Veg foods (Lunch / Dinner),No
29,Female,Prefer not to say,House wife,No Income,Graduate,5,Walk-in,Lunch,Veg foods (Breakfast / Lunch / Dinner),No
25,Male,Married,Employee,10001 to 25000,Post Graduate,3,Food delivery apps,Dinner,Non Veg foods (Lunch / Dinner),Yes
`

func loadSurvey(t *testing.T) *survey.Dataset {
	t.Helper()
	ds, err := survey.Load(strings.NewReader(surveyCSV), "survey.csv")
	require.NoError(t, err)
	return ds
}

func loadRows(t *testing.T, header string, rows ...string) *survey.Dataset {
	t.Helper()
	ds, err := survey.Load(strings.NewReader(header+"\n"+strings.Join(rows, "\n")+"\n"), "rows.csv")
	require.NoError(t, err)
	return ds
}

func TestPaletteAssign(t *testing.T) {
	m, err := DefaultPalette.Assign("income", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	assert.Equal(t, "#003f5c", m.Color("a"))
	assert.Equal(t, "#bc5090", m.Color("c"))
	assert.Equal(t, "", m.Color("z"))

	_, err = Palette{"#000000"}.Assign("gender", []string{"Male", "Female"})
	var pe *PaletteError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Need)
	assert.Equal(t, 1, pe.Have)
	assert.Contains(t, pe.Error(), "gender")
}

func TestPaletteValidate(t *testing.T) {
	assert.NoError(t, DefaultPalette.Validate())
	assert.NoError(t, Palette{"abcdef"}.Validate())
	assert.Error(t, Palette{}.Validate())
	assert.Error(t, Palette{"#12345"}.Validate())
	assert.Error(t, Palette{"red"}.Validate())
}

func TestDonutPairGenderScenario(t *testing.T) {
	var rows []string
	add := func(g, o string, n int) {
		for i := 0; i < n; i++ {
			rows = append(rows, g+","+o)
		}
	}
	add("Male", "Yes", 10)
	add("Male", "No", 5)
	add("Female", "Yes", 8)
	add("Female", "No", 12)
	ds := loadRows(t, "Gender,Buy_again", rows...)

	tbl, err := analysis.Pivot(ds, "Gender")
	require.NoError(t, err)
	d, err := NewDonutPair(TitleGenderPie, tbl.Reorder(genderOrder), duoPalette)
	require.NoError(t, err)

	yes := d.Wedges(survey.OutcomeYes)
	require.Len(t, yes, 2)
	assert.Equal(t, Wedge{Label: "Male", Value: 10, Color: "#58508d"}, yes[0])
	assert.Equal(t, Wedge{Label: "Female", Value: 8, Color: "#bc5090"}, yes[1])

	no := d.Wedges(survey.OutcomeNo)
	require.Len(t, no, 2)
	assert.Equal(t, "Male", no[0].Label)
	assert.Equal(t, 5.0, no[0].Value)
	assert.Equal(t, "Female", no[1].Label)
	assert.Equal(t, 12.0, no[1].Value)

	panels := d.Panels()
	require.Len(t, panels, 2)
	assert.Equal(t, survey.OutcomeYes, panels[0].Outcome)
	assert.Equal(t, "Yes", panels[0].Annotation.Text)
	assert.Equal(t, "No", panels[1].Annotation.Text)
	assert.Equal(t, 0.4, d.Hole())
}

func TestDonutWedgesSumToCategoryTotals(t *testing.T) {
	ds := loadSurvey(t)
	tbl, err := analysis.Pivot(ds, survey.ColMaritalStatus)
	require.NoError(t, err)
	d, err := NewDonutPair(TitleMaritalPie, tbl, DefaultPalette)
	require.NoError(t, err)

	yes := d.Wedges(survey.OutcomeYes)
	no := d.Wedges(survey.OutcomeNo)
	vals, _ := ds.Column(survey.ColMaritalStatus)
	for j, w := range yes {
		want := 0
		for _, v := range vals {
			if v == w.Label {
				want++
			}
		}
		assert.Equal(t, float64(want), w.Value+no[j].Value, w.Label)
		assert.Equal(t, w.Color, no[j].Color, "both donuts share colors")
	}
}

func TestDonutPairPaletteOverflow(t *testing.T) {
	ds := loadSurvey(t)
	tbl, err := analysis.Pivot(ds, survey.ColIncome)
	require.NoError(t, err)
	_, err = NewDonutPair("income", tbl, duoPalette)
	var pe *PaletteError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 5, pe.Need)
}

func TestGroupedHistogramCountsMatchFilter(t *testing.T) {
	ds := loadSurvey(t)
	tbl, err := analysis.Pivot(ds, survey.ColOccupation)
	require.NoError(t, err)
	h, err := NewGroupedHistogram(TitleOccupationHist, tbl, DefaultPalette)
	require.NoError(t, err)

	assert.Equal(t, []string{"Employee", "House wife", "Self Employeed", "Student"}, h.Groups())
	vals, _ := ds.Column(survey.ColOccupation)
	for _, o := range survey.Outcomes() {
		for _, g := range h.Groups() {
			want := 0
			for i, v := range vals {
				if v == g && ds.Outcome(i) == o {
					want++
				}
			}
			assert.Equal(t, want, h.Count(o, g), "%s/%s", o, g)
		}
	}
	assert.Equal(t, "#003f5c", h.Colors().Color("Employee"))
}

func TestDensitySplitScenario(t *testing.T) {
	ds := loadRows(t, "Age,Buy_again", "20,Yes", "25,No", "30,Yes", "22,No")
	split, err := analysis.SplitByOutcome(ds, "Age")
	require.NoError(t, err)
	d := NewDensity(TitleDensity, split)

	curves := d.Curves()
	require.Len(t, curves, 2)
	assert.Equal(t, survey.OutcomeYes, curves[0].Outcome)
	assert.Equal(t, []float64{20, 30}, curves[0].Samples)
	assert.Equal(t, "#58508d", curves[0].Color)

	no, ok := d.Curve(survey.OutcomeNo)
	require.True(t, ok)
	assert.Equal(t, []float64{25, 22}, no.Samples)
	assert.Equal(t, "#bc5090", no.Color)
	assert.Len(t, no.X, kdePoints)
	assert.Equal(t, 22.0, no.X[0])
	assert.Equal(t, 25.0, no.X[kdePoints-1])
}

func TestKDE(t *testing.T) {
	xs, ys := KDE([]float64{20, 30}, 5)
	require.Len(t, xs, 5)
	assert.Equal(t, []float64{20, 22.5, 25, 27.5, 30}, xs)
	assert.InDelta(t, ys[0], ys[4], 1e-12, "symmetric samples give a symmetric curve")
	for _, y := range ys {
		assert.Greater(t, y, 0.0)
	}

	xs, ys = KDE([]float64{7}, 3)
	assert.Equal(t, []float64{7, 7, 7}, xs)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), ys[0], 1e-12)

	xs, ys = KDE(nil, 10)
	assert.Nil(t, xs)
	assert.Nil(t, ys)
}

func TestScatterKeepsOverlapsAndSkipsMissing(t *testing.T) {
	ds := loadRows(t, "Medium,Family_size,Buy_again",
		"Walk-in,3,Yes",
		"Walk-in,3,Yes",
		"Direct call,,No",
		",4,No",
		"Food delivery apps,2,No",
	)
	s, err := NewScatter(TitleScatter, ds, "Medium", "Family_size")
	require.NoError(t, err)
	pts := s.Points()
	require.Len(t, pts, 3)
	assert.Equal(t, pts[0], pts[1])
	assert.Equal(t, []string{"Food delivery apps", "Walk-in"}, s.Categories())
	assert.Equal(t, float64(markerRadius), s.MarkerSize())

	_, err = NewScatter(TitleScatter, ds, "Medium", "Age")
	var mc *survey.MissingColumnError
	assert.True(t, errors.As(err, &mc))
}

func TestBuildProducesSixFigures(t *testing.T) {
	figs, err := Build(loadSurvey(t), Options{})
	require.NoError(t, err)
	require.Len(t, figs, 6)

	kinds := make([]Kind, len(figs))
	titles := make([]string, len(figs))
	for i, f := range figs {
		kinds[i] = f.Kind()
		titles[i] = f.Title()
	}
	assert.Equal(t, []Kind{KindDensity, KindDonutPair, KindGroupedHistogram, KindScatter, KindGroupedHistogram, KindDonutPair}, kinds)
	assert.Equal(t, []string{TitleDensity, TitleGenderPie, TitleIncomeHist, TitleScatter, TitleOccupationHist, TitleMaritalPie}, titles)

	gender := figs[1].(*DonutPair)
	assert.Equal(t, "Male", gender.Wedges(survey.OutcomeYes)[0].Label)
	marital := figs[5].(*DonutPair)
	assert.Equal(t, []string{"Married", "Prefer not to say", "Single"}, marital.Colors().Keys())
}

func TestBuildFailsOnMissingColumn(t *testing.T) {
	ds := loadRows(t, "Age,Gender,Buy_again", "20,Male,Yes")
	_, err := Build(ds, Options{})
	var mc *survey.MissingColumnError
	require.True(t, errors.As(err, &mc), "got %v", err)
}

func TestBuildFailsOnPaletteOverflow(t *testing.T) {
	_, err := Build(loadSurvey(t), Options{Palette: Palette{"#000000", "#111111"}})
	var pe *PaletteError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, TitleIncomeHist, pe.Chart)
}

func TestRenderEmitsInlineSVG(t *testing.T) {
	figs, err := Build(loadSurvey(t), Options{})
	require.NoError(t, err)
	for _, f := range figs {
		t.Run(string(f.Kind())+"/"+f.Title(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, f.Render(&buf, DefaultSize))
			out := buf.String()
			assert.Contains(t, out, "<svg")
			assert.NotContains(t, out, "<?xml")
		})
	}
}

func TestDonutRenderAnnotatesHoles(t *testing.T) {
	ds := loadSurvey(t)
	tbl, err := analysis.Pivot(ds, survey.ColGender)
	require.NoError(t, err)
	d, err := NewDonutPair(TitleGenderPie, tbl, duoPalette)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.Render(&buf, DefaultSize))
	out := buf.String()
	assert.Contains(t, out, `class="donut-label"`)
	assert.Contains(t, out, ">Yes</span>")
	assert.Contains(t, out, ">No</span>")
	assert.Equal(t, 2, strings.Count(out, `<figure class="donut">`))
}

func TestRenderPlaceholderWhenOutcomeEmpty(t *testing.T) {
	ds := loadRows(t, "Gender,Buy_again", "Male,Yes", "Female,Yes")
	tbl, err := analysis.Pivot(ds, "Gender")
	require.NoError(t, err)
	d, err := NewDonutPair("gender", tbl, duoPalette)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.Render(&buf, DefaultSize))
	assert.Contains(t, buf.String(), "no responses")
}
