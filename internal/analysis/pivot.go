package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/fooddash/internal/survey"
)

// Table is a two-row pivot of record counts: one row per outcome (No, Yes)
// and one column per distinct value of the grouping column.
type Table struct {
	Column     string
	Categories []string
	counts     [survey.NumOutcomes][]int
}

// Pivot counts records for every (category, outcome) pair of column.
// Categories are ordered lexically; records with a missing category are skipped.
func Pivot(ds *survey.Dataset, column string) (Table, error) {
	vals, err := ds.Column(column)
	if err != nil {
		return Table{}, err
	}
	byCat := map[string]*[survey.NumOutcomes]int{}
	for i, v := range vals {
		if v == "" {
			continue
		}
		c, ok := byCat[v]
		if !ok {
			c = &[survey.NumOutcomes]int{}
			byCat[v] = c
		}
		c[ds.Outcome(i)]++
	}

	t := Table{Column: column, Categories: make([]string, 0, len(byCat))}
	for cat := range byCat {
		t.Categories = append(t.Categories, cat)
	}
	sort.Strings(t.Categories)
	for _, o := range survey.Outcomes() {
		row := make([]int, len(t.Categories))
		for j, cat := range t.Categories {
			row[j] = byCat[cat][o]
		}
		t.counts[o] = row
	}
	return t, nil
}

// Row returns the counts for outcome o in category order.
func (t Table) Row(o survey.Outcome) []int {
	return append([]int(nil), t.counts[o]...)
}

// Count returns the count for (o, category); unknown categories count 0.
func (t Table) Count(o survey.Outcome, category string) int {
	for j, c := range t.Categories {
		if c == category {
			return t.counts[o][j]
		}
	}
	return 0
}

// CategoryTotal sums both outcomes for one category.
func (t Table) CategoryTotal(category string) int {
	n := 0
	for _, o := range survey.Outcomes() {
		n += t.Count(o, category)
	}
	return n
}

// Total sums every cell.
func (t Table) Total() int {
	n := 0
	for _, row := range t.counts {
		for _, v := range row {
			n += v
		}
	}
	return n
}

// Reorder returns a copy whose leading categories follow order. Categories
// not named in order keep their lexical order after them; names absent from
// the table are ignored.
func (t Table) Reorder(order []string) Table {
	idx := make(map[string]int, len(t.Categories))
	for j, c := range t.Categories {
		idx[c] = j
	}
	perm := make([]int, 0, len(t.Categories))
	used := make(map[int]bool, len(t.Categories))
	for _, name := range order {
		if j, ok := idx[name]; ok && !used[j] {
			perm = append(perm, j)
			used[j] = true
		}
	}
	for j := range t.Categories {
		if !used[j] {
			perm = append(perm, j)
		}
	}

	out := Table{Column: t.Column, Categories: make([]string, len(perm))}
	for _, o := range survey.Outcomes() {
		out.counts[o] = make([]int, len(perm))
	}
	for k, j := range perm {
		out.Categories[k] = t.Categories[j]
		for _, o := range survey.Outcomes() {
			out.counts[o][k] = t.counts[o][j]
		}
	}
	return out
}

// String renders the table as an aligned grid with the outcome as row index.
func (t Table) String() string {
	head := []string{survey.ColBuyAgain}
	head = append(head, t.Categories...)
	widths := make([]int, len(head))
	for i, h := range head {
		widths[i] = len(h)
	}
	for _, o := range survey.Outcomes() {
		if l := len(o.String()); l > widths[0] {
			widths[0] = l
		}
		for j, v := range t.counts[o] {
			if l := len(fmt.Sprint(v)); l > widths[j+1] {
				widths[j+1] = l
			}
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n", t.Column))
	for i, h := range head {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(fmt.Sprintf("%-*s", widths[i], h))
	}
	b.WriteString("\n")
	for _, o := range survey.Outcomes() {
		b.WriteString(fmt.Sprintf("%-*s", widths[0], o))
		for j, v := range t.counts[o] {
			b.WriteString(fmt.Sprintf("  %*d", widths[j+1], v))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Split holds one numeric subpopulation per outcome.
type Split struct {
	Column string
	values [survey.NumOutcomes][]float64
}

// SplitByOutcome partitions a numeric column by outcome, keeping row order
// and dropping missing values.
func SplitByOutcome(ds *survey.Dataset, column string) (Split, error) {
	vals, err := ds.Numeric(column)
	if err != nil {
		return Split{}, err
	}
	s := Split{Column: column}
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		o := ds.Outcome(i)
		s.values[o] = append(s.values[o], v)
	}
	return s, nil
}

// Of returns the subpopulation for outcome o.
func (s Split) Of(o survey.Outcome) []float64 {
	return append([]float64(nil), s.values[o]...)
}
