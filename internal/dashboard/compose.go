// Package dashboard composes rendered charts into a single HTML page and
// serves it on a local address.
package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/KaramelBytes/fooddash/internal/chart"
	"github.com/KaramelBytes/fooddash/internal/survey"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

const (
	DefaultHeading       = "Online Food Delivery Preferences Dataset Analysis"
	DefaultHeaderColor   = "#f4abba"
	DefaultIntroColor    = "#003f5c"
	DefaultStylesheetURL = "https://codepen.io/chriddyp/pen/bWLwgP.css"
	slotClass            = "six columns"
)

// DefaultIntro describes the survey and lists its columns.
var DefaultIntro = "The dashboard analyses a survey conducted to answer the question about why there has been a rise in the demand of online food delivery in the metropolitan cities such as Bangalore. The dataset has the following columns: " +
	strings.Join(survey.Schema, ", ") + "."

// Layout controls page text and where each figure goes. Rows hold indices
// into the figure list passed to Compose.
type Layout struct {
	Heading       string
	HeaderColor   string
	Intro         string
	IntroColor    string
	Footer        string
	StylesheetURL string
	Size          chart.Size
	Rows          [][]int
}

// DefaultLayout arranges six figures in three rows of two: (1,3), (2,4), (5,6).
func DefaultLayout() Layout {
	return Layout{
		Heading:       DefaultHeading,
		HeaderColor:   DefaultHeaderColor,
		Intro:         DefaultIntro,
		IntroColor:    DefaultIntroColor,
		StylesheetURL: DefaultStylesheetURL,
		Size:          chart.DefaultSize,
		Rows:          [][]int{{0, 2}, {1, 3}, {4, 5}},
	}
}

// Slot is one rendered chart on the page.
type Slot struct {
	ID     string
	Class  string
	Title  string
	Kind   chart.Kind
	Markup template.HTML
}

// Page is a fully composed dashboard.
type Page struct {
	Heading       string
	HeaderColor   string
	Intro         string
	IntroColor    string
	Footer        string
	StylesheetURL string
	Rows          [][]Slot
}

// Compose renders each figure exactly once into slot graph<i+1> and places
// the slots according to layout. Every figure must appear in exactly one row.
func Compose(figs []chart.Figure, layout Layout) (*Page, error) {
	if len(figs) == 0 {
		return nil, fmt.Errorf("compose: no figures")
	}
	if layout.Size.Width <= 0 || layout.Size.Height <= 0 {
		layout.Size = chart.DefaultSize
	}
	placed := make([]bool, len(figs))
	for _, row := range layout.Rows {
		for _, i := range row {
			if i < 0 || i >= len(figs) {
				return nil, fmt.Errorf("compose: layout references figure %d of %d", i+1, len(figs))
			}
			if placed[i] {
				return nil, fmt.Errorf("compose: figure %d placed twice", i+1)
			}
			placed[i] = true
		}
	}
	for i, ok := range placed {
		if !ok {
			return nil, fmt.Errorf("compose: figure %d (%s) not placed", i+1, figs[i].Title())
		}
	}

	slots := make([]Slot, len(figs))
	for i, f := range figs {
		var buf bytes.Buffer
		if err := f.Render(&buf, layout.Size); err != nil {
			return nil, fmt.Errorf("render %q: %w", f.Title(), err)
		}
		slots[i] = Slot{
			ID:     fmt.Sprintf("graph%d", i+1),
			Class:  slotClass,
			Title:  f.Title(),
			Kind:   f.Kind(),
			Markup: template.HTML(buf.String()),
		}
	}

	page := &Page{
		Heading:       layout.Heading,
		HeaderColor:   layout.HeaderColor,
		Intro:         layout.Intro,
		IntroColor:    layout.IntroColor,
		Footer:        layout.Footer,
		StylesheetURL: layout.StylesheetURL,
	}
	for _, row := range layout.Rows {
		r := make([]Slot, 0, len(row))
		for _, i := range row {
			r = append(r, slots[i])
		}
		page.Rows = append(page.Rows, r)
	}
	return page, nil
}

// Slots returns the slots in row order.
func (p *Page) Slots() []Slot {
	var out []Slot
	for _, r := range p.Rows {
		out = append(out, r...)
	}
	return out
}

// Render writes the complete HTML document.
func (p *Page) Render(w io.Writer) error {
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	return nil
}

// Bytes renders the page into memory.
func (p *Page) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
