// Package survey loads the online food delivery preferences survey into an
// immutable, column-addressable dataset.
package survey

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the survey CSV.
const (
	ColAge           = "Age"
	ColGender        = "Gender"
	ColMaritalStatus = "Marital_Status"
	ColOccupation    = "Occupation"
	ColIncome        = "Monthly_Income"
	ColEducation     = "Educational_Qualifications"
	ColFamilySize    = "Family_size"
	ColMedium        = "Medium"
	ColMeal          = "Meal"
	ColPreference    = "Preference"
	ColBuyAgain      = "Buy_again"
)

// Schema lists the survey columns in file order.
var Schema = []string{
	ColAge, ColGender, ColMaritalStatus, ColOccupation, ColIncome, ColEducation,
	ColFamilySize, ColMedium, ColMeal, ColPreference, ColBuyAgain,
}

// Record is one survey respondent. Missing categorical values are empty and
// missing numeric values are NaN.
type Record struct {
	Age           float64
	Gender        string
	MaritalStatus string
	Occupation    string
	MonthlyIncome string
	Education     string
	FamilySize    float64
	Medium        string
	Meal          string
	Preference    string
	BuyAgain      Outcome
}

// Dataset holds every loaded record. It is never mutated after Load returns;
// accessors hand out copies.
type Dataset struct {
	name     string
	df       dataframe.DataFrame
	names    []string
	cols     map[string][]string
	outcomes []Outcome
}

var missingMarkers = []string{"", "NA", "NaN", "<nil>"}

// LoadFile reads the survey CSV at path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return Load(f, filepath.Base(path))
}

// Load parses a survey CSV with a header row. Every column is read as text;
// only the outcome column is validated here.
func Load(r io.Reader, name string) (*Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingMarkers),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv %s: %w", name, df.Err)
	}
	if df.Nrow() == 0 {
		return nil, ErrEmptyDataset
	}

	ds := &Dataset{
		name:  name,
		df:    df,
		names: df.Names(),
		cols:  make(map[string][]string, df.Ncol()),
	}
	for _, col := range ds.names {
		s := df.Col(col)
		vals := s.Records()
		for i, nan := range s.IsNaN() {
			if nan {
				vals[i] = ""
			} else {
				vals[i] = strings.TrimSpace(vals[i])
			}
		}
		ds.cols[col] = vals
	}

	raw, ok := ds.cols[ColBuyAgain]
	if !ok {
		return nil, &MissingColumnError{Column: ColBuyAgain}
	}
	ds.outcomes = make([]Outcome, len(raw))
	for i, v := range raw {
		o, err := ParseOutcome(v)
		if err != nil {
			return nil, &OutcomeError{Row: i + 1, Value: v}
		}
		ds.outcomes[i] = o
	}
	return ds, nil
}

// Name is the base name of the source file.
func (d *Dataset) Name() string { return d.name }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.outcomes) }

// Shape returns (rows, columns).
func (d *Dataset) Shape() (int, int) { return d.df.Nrow(), d.df.Ncol() }

// Columns returns the header in file order.
func (d *Dataset) Columns() []string { return append([]string(nil), d.names...) }

func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.cols[name]
	return ok
}

// Column returns the values of a column in row order; missing cells are "".
func (d *Dataset) Column(name string) ([]string, error) {
	vals, ok := d.cols[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	return append([]string(nil), vals...), nil
}

// Numeric returns a column parsed as floats; missing or unparseable cells are NaN.
func (d *Dataset) Numeric(name string) ([]float64, error) {
	vals, ok := d.cols[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	out := d.df.Col(name).Float()
	for i, v := range vals {
		if v == "" {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// Outcome returns the outcome of row i.
func (d *Dataset) Outcome(i int) Outcome { return d.outcomes[i] }

// Outcomes returns every row's outcome in row order.
func (d *Dataset) Outcomes() []Outcome { return append([]Outcome(nil), d.outcomes...) }

// Head returns up to n raw rows in header order.
func (d *Dataset) Head(n int) [][]string {
	if n > d.Len() {
		n = d.Len()
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(d.names))
		for j, col := range d.names {
			row[j] = d.cols[col][i]
		}
		rows[i] = row
	}
	return rows
}

// Records returns typed records. Columns absent from the file stay zero
// (NaN for numeric fields).
func (d *Dataset) Records() []Record {
	age := d.numericOrNaN(ColAge)
	family := d.numericOrNaN(ColFamilySize)
	out := make([]Record, d.Len())
	for i := range out {
		out[i] = Record{
			Age:           age[i],
			Gender:        d.cell(ColGender, i),
			MaritalStatus: d.cell(ColMaritalStatus, i),
			Occupation:    d.cell(ColOccupation, i),
			MonthlyIncome: d.cell(ColIncome, i),
			Education:     d.cell(ColEducation, i),
			FamilySize:    family[i],
			Medium:        d.cell(ColMedium, i),
			Meal:          d.cell(ColMeal, i),
			Preference:    d.cell(ColPreference, i),
			BuyAgain:      d.outcomes[i],
		}
	}
	return out
}

func (d *Dataset) cell(col string, i int) string {
	if vals, ok := d.cols[col]; ok {
		return vals[i]
	}
	return ""
}

func (d *Dataset) numericOrNaN(col string) []float64 {
	vals, err := d.Numeric(col)
	if err == nil {
		return vals
	}
	vals = make([]float64, d.Len())
	for i := range vals {
		vals[i] = math.NaN()
	}
	return vals
}
