// Package analysis aggregates survey records: outcome pivots, outcome
// splits of numeric columns and a per-column dataset profile.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/fooddash/internal/survey"
)

// Options controls dataset profiling.
type Options struct {
	// SampleRows determines how many head rows to include in the report.
	SampleRows int
	// TopValues caps the categorical values listed per column.
	TopValues int
	// GroupByOutcome adds per-outcome summaries of numeric columns.
	GroupByOutcome bool
}

// DefaultOptions mirrors the console output of the dashboard: head of five rows.
func DefaultOptions() Options {
	return Options{
		SampleRows:     5,
		TopValues:      5,
		GroupByOutcome: true,
	}
}

// Report is a markdown-friendly profile of the loaded survey.
type Report struct {
	Name     string
	Rows     int
	Cols     []ColumnSummary
	Samples  [][]string
	Warnings []string
	Groups   []GroupResult
}

// ColumnSummary captures inferred kind and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical|empty
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Categorical top values
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

// GroupResult summarizes numeric columns for the records sharing one outcome.
type GroupResult struct {
	Key     string
	Size    int
	Metrics map[string]NumSummary // by column name
}

type NumSummary struct {
	Count          int
	Min, Max, Mean float64
}

// Profile builds a Report for ds.
func Profile(ds *survey.Dataset, opt Options) *Report {
	if opt.SampleRows <= 0 {
		opt.SampleRows = 5
	}
	if opt.TopValues <= 0 {
		opt.TopValues = 5
	}
	rep := &Report{Name: ds.Name(), Rows: ds.Len(), Samples: ds.Head(opt.SampleRows)}

	numericCols := map[string][]float64{}
	for _, name := range ds.Columns() {
		vals, _ := ds.Column(name)
		cs, nums := summarizeColumn(name, vals, opt.TopValues)
		if cs.Kind == "numeric" {
			numericCols[name] = nums
		}
		if cs.Kind == "empty" {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("column %s has no values", name))
		}
		rep.Cols = append(rep.Cols, cs)
	}

	if opt.GroupByOutcome {
		for _, o := range survey.Outcomes() {
			g := GroupResult{Key: fmt.Sprintf("%s=%s", survey.ColBuyAgain, o), Metrics: map[string]NumSummary{}}
			for i := 0; i < ds.Len(); i++ {
				if ds.Outcome(i) == o {
					g.Size++
				}
			}
			for name := range numericCols {
				split, err := SplitByOutcome(ds, name)
				if err != nil {
					continue
				}
				g.Metrics[name] = summarize(split.Of(o))
			}
			rep.Groups = append(rep.Groups, g)
		}
	}
	return rep
}

// summarizeColumn infers the column kind: numeric when every non-missing
// value parses as a float, categorical otherwise.
func summarizeColumn(name string, vals []string, topN int) (ColumnSummary, []float64) {
	cs := ColumnSummary{Name: name}
	cats := map[string]int{}
	var nums []float64
	numeric := true
	for _, v := range vals {
		if v == "" {
			cs.Missing++
			continue
		}
		cs.NonNull++
		cats[v]++
		if numeric {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				numeric = false
				continue
			}
			nums = append(nums, x)
		}
	}
	cs.Unique = len(cats)

	switch {
	case cs.NonNull == 0:
		cs.Kind = "empty"
		return cs, nil
	case numeric:
		cs.Kind = "numeric"
		cs.Min = floats.Min(nums)
		cs.Max = floats.Max(nums)
		if len(nums) > 1 {
			cs.Mean, cs.Std = stat.MeanStdDev(nums, nil)
		} else {
			cs.Mean = nums[0]
		}
		return cs, nums
	}

	cs.Kind = "categorical"
	for v, n := range cats {
		cs.TopValues = append(cs.TopValues, CategoryCount{Value: v, Count: n})
	}
	sort.Slice(cs.TopValues, func(i, j int) bool {
		if cs.TopValues[i].Count == cs.TopValues[j].Count {
			return cs.TopValues[i].Value < cs.TopValues[j].Value
		}
		return cs.TopValues[i].Count > cs.TopValues[j].Count
	})
	if len(cs.TopValues) > topN {
		cs.TopValues = cs.TopValues[:topN]
	}
	return cs, nil
}

func summarize(vals []float64) NumSummary {
	if len(vals) == 0 {
		return NumSummary{Min: math.NaN(), Max: math.NaN(), Mean: math.NaN()}
	}
	return NumSummary{
		Count: len(vals),
		Min:   floats.Min(vals),
		Max:   floats.Max(vals),
		Mean:  stat.Mean(vals, nil),
	}
}

// Markdown renders a compact report for the terminal or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Dataset Size: (%d, %d)\n\n", r.Rows, len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			b.WriteString(fmt.Sprintf(": min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
		case "categorical":
			b.WriteString(": top ")
			for i, kv := range c.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
			if c.Unique > len(c.TopValues) {
				b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
			}
		}
		b.WriteString("\n")
	}

	if len(r.Groups) > 0 {
		b.WriteString("\n[GROUP-BY SUMMARY]\n")
		for _, g := range r.Groups {
			b.WriteString(fmt.Sprintf("- %s (n=%d)\n", g.Key, g.Size))
			keys := make([]string, 0, len(g.Metrics))
			for k := range g.Metrics {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				m := g.Metrics[k]
				if m.Count == 0 {
					continue
				}
				b.WriteString(fmt.Sprintf("  • %s: mean %.4g (min %.4g, max %.4g)\n", k, m.Mean, m.Min, m.Max))
			}
		}
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n| ")
		for i := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i := range r.Cols {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
