package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/fooddash/internal/chart"
	"github.com/KaramelBytes/fooddash/internal/logging"
	"github.com/KaramelBytes/fooddash/internal/survey"
)

type fakeFigure struct {
	title   string
	renders int
	err     error
}

func (f *fakeFigure) Kind() chart.Kind { return chart.KindScatter }
func (f *fakeFigure) Title() string    { return f.title }
func (f *fakeFigure) Render(w io.Writer, size chart.Size) error {
	f.renders++
	if f.err != nil {
		return f.err
	}
	_, err := fmt.Fprintf(w, `<svg data-title=%q width="%d"></svg>`, f.title, size.Width)
	return err
}

func sixFigures() []*fakeFigure {
	out := make([]*fakeFigure, 6)
	for i := range out {
		out[i] = &fakeFigure{title: fmt.Sprintf("chart %d", i+1)}
	}
	return out
}

func asFigures(in []*fakeFigure) []chart.Figure {
	out := make([]chart.Figure, len(in))
	for i, f := range in {
		out[i] = f
	}
	return out
}

func TestComposeDefaultLayout(t *testing.T) {
	figs := sixFigures()
	page, err := Compose(asFigures(figs), DefaultLayout())
	require.NoError(t, err)

	require.Len(t, page.Rows, 3)
	var ids [][]string
	for _, row := range page.Rows {
		var r []string
		for _, s := range row {
			r = append(r, s.ID)
			assert.Equal(t, "six columns", s.Class)
		}
		ids = append(ids, r)
	}
	assert.Equal(t, [][]string{{"graph1", "graph3"}, {"graph2", "graph4"}, {"graph5", "graph6"}}, ids)

	seen := map[string]bool{}
	for _, s := range page.Slots() {
		assert.False(t, seen[s.ID], "duplicate slot %s", s.ID)
		seen[s.ID] = true
	}
	assert.Len(t, seen, 6)
	for _, f := range figs {
		assert.Equal(t, 1, f.renders, f.title)
	}
}

func TestComposeRejectsBadLayout(t *testing.T) {
	layout := DefaultLayout()
	layout.Rows = [][]int{{0, 2}, {1, 3}, {4}}
	_, err := Compose(asFigures(sixFigures()), layout)
	assert.ErrorContains(t, err, "not placed")

	layout.Rows = [][]int{{0, 0}, {1, 2}, {3, 4, 5}}
	_, err = Compose(asFigures(sixFigures()), layout)
	assert.ErrorContains(t, err, "placed twice")

	layout.Rows = [][]int{{0, 7}}
	_, err = Compose(asFigures(sixFigures()), layout)
	assert.Error(t, err)
}

func TestComposeRenderError(t *testing.T) {
	figs := sixFigures()
	boom := errors.New("boom")
	figs[3].err = boom
	_, err := Compose(asFigures(figs), DefaultLayout())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestPageRender(t *testing.T) {
	layout := DefaultLayout()
	layout.Footer = "survey <2019>"
	page, err := Compose(asFigures(sixFigures()), layout)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))
	out := buf.String()

	assert.Contains(t, out, "<h1>Online Food Delivery Preferences Dataset Analysis</h1>")
	assert.Contains(t, out, "background-color: #f4abba")
	assert.Contains(t, out, `href="https://codepen.io/chriddyp/pen/bWLwgP.css"`)
	assert.Contains(t, out, "Age, Gender, Marital_Status, Occupation, Monthly_Income, Educational_Qualifications, Family_size, Medium, Meal, Preference, Buy_again.")
	assert.Contains(t, out, `<div id="graph1" class="six columns graph" title="chart 1"`)
	assert.Contains(t, out, `<svg data-title="chart 6" width="640">`)
	assert.Contains(t, out, "survey &lt;2019&gt;")
	assert.Less(t, strings.Index(out, `id="graph3"`), strings.Index(out, `id="graph2"`))
}

const surveyCSV = `Age,Gender,Marital_Status,Occupation,Monthly_Income,Educational_Qualifications,Family_size,Medium,Meal,Preference,Buy_again
20,Female,Single,Student,No Income,Post Graduate,4,Food delivery apps,Breakfast,Veg foods (Breakfast / Lunch / Dinner),Yes
24,Female,Single,Student,Below Rs.10000,Graduate,3,Food delivery apps,Snacks,Veg foods (Breakfast / Lunch / Dinner),Yes
22,Male,Single,Student,Below Rs.10000,Post Graduate,3,Food delivery apps,Lunch,Veg foods (Breakfast / Lunch / Dinner),No
27,Female,Married,Employee,More than 50000,Graduate,2,Walk-in,Dinner,Non Veg foods (Lunch / Dinner),Yes
32,Male,Married,Self Employeed,25001 to 50000,Ph.D,6,Direct call,Dinner,Non Veg foods (Lunch / Dinner),No
`

func TestComposeRealFigures(t *testing.T) {
	ds, err := survey.Load(strings.NewReader(surveyCSV), "survey.csv")
	require.NoError(t, err)
	figs, err := chart.Build(ds, chart.Options{})
	require.NoError(t, err)
	page, err := Compose(figs, DefaultLayout())
	require.NoError(t, err)

	b, err := page.Bytes()
	require.NoError(t, err)
	out := string(b)
	for _, title := range []string{chart.TitleDensity, chart.TitleGenderPie, chart.TitleScatter} {
		assert.Contains(t, out, `title="`+title+`"`)
	}
	assert.Equal(t, 6, strings.Count(out, `class="six columns graph"`))
}

func newTestServer(t *testing.T, logOut io.Writer) *Server {
	t.Helper()
	page, err := Compose(asFigures(sixFigures()), DefaultLayout())
	require.NoError(t, err)
	logger := logging.New(&logging.Config{Level: logging.LevelInfo, Output: logOut})
	s, err := NewServer("127.0.0.1:0", page, logger)
	require.NoError(t, err)
	return s
}

func TestServerRoutes(t *testing.T) {
	var logs bytes.Buffer
	h := newTestServer(t, &logs).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Contains(t, rr.Body.String(), `id="graph6"`)
	first := rr.Body.String()

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, first, rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	assert.Contains(t, logs.String(), "path=/missing")
	assert.Contains(t, logs.String(), "status=404")
	assert.Contains(t, logs.String(), "request_id=")
}

func TestListenAndServePortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	page, err := Compose(asFigures(sixFigures()), DefaultLayout())
	require.NoError(t, err)
	s, err := NewServer(ln.Addr().String(), page, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err = s.ListenAndServe(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, io.Discard)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
