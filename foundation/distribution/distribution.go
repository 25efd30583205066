// Package distribution implements the count-per-category tables that every
// network survey produces. A table is built by counting classification labels,
// is sorted by count descending with ties broken by first-seen order, and can
// be trimmed with a minimum count or minimum percentage threshold.
package distribution

import (
	"sort"
)

// Row represents one category in a distribution table.
type Row struct {
	Category   string
	Count      int
	Percentage float64
}

// Table is an ordered set of rows, unique by category. Once persisted a
// table is never mutated, every operation returns a new value.
type Table struct {
	rows        []Row
	havePercent bool
}

// Counter accumulates label occurrences while preserving the order in
// which labels are first seen.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter constructs an empty label counter.
func NewCounter() *Counter {
	return &Counter{
		counts: make(map[string]int),
	}
}

// Add records a single occurrence of the specified label.
func (c *Counter) Add(label string) {
	c.AddN(label, 1)
}

// AddN records n occurrences of the specified label. Sources that return
// pre-aggregated data (such as the tzkt node stats) feed counts directly.
func (c *Counter) AddN(label string, n int) {
	if _, exists := c.counts[label]; !exists {
		c.order = append(c.order, label)
	}
	c.counts[label] += n
}

// Len returns the number of distinct labels recorded.
func (c *Counter) Len() int {
	return len(c.order)
}

// Table produces the distribution table for the recorded labels, sorted by
// count descending. Equal counts keep their first-seen order.
func (c *Counter) Table() Table {
	rows := make([]Row, len(c.order))
	for i, label := range c.order {
		rows[i] = Row{Category: label, Count: c.counts[label]}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	return Table{rows: rows}
}

// New constructs a table directly from rows. The rows are re-sorted by
// count descending to maintain the table invariant.
func New(rows []Row) Table {
	cpy := make([]Row, len(rows))
	copy(cpy, rows)

	sort.SliceStable(cpy, func(i, j int) bool {
		return cpy[i].Count > cpy[j].Count
	})

	var havePercent bool
	for _, row := range cpy {
		if row.Percentage != 0 {
			havePercent = true
			break
		}
	}

	return Table{rows: cpy, havePercent: havePercent}
}

// Rows returns a copy of the table rows.
func (t Table) Rows() []Row {
	cpy := make([]Row, len(t.rows))
	copy(cpy, t.rows)
	return cpy
}

// Len returns the number of rows in the table.
func (t Table) Len() int {
	return len(t.rows)
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.rows) == 0
}

// Total returns the sum of all counts in the table.
func (t Table) Total() int {
	var total int
	for _, row := range t.rows {
		total += row.Count
	}
	return total
}

// HavePercentages reports whether percentages were computed for this table.
func (t Table) HavePercentages() bool {
	return t.havePercent
}

// MinCount returns a table containing only the rows with a count strictly
// greater than min. Existing percentages are preserved.
func (t Table) MinCount(min int) Table {
	rows := make([]Row, 0, len(t.rows))
	for _, row := range t.rows {
		if row.Count > min {
			rows = append(rows, row)
		}
	}
	return Table{rows: rows, havePercent: t.havePercent}
}

// MinPercentage returns a table containing only the rows whose share of the
// current total is at least pct. Percentages are computed first when absent.
func (t Table) MinPercentage(pct float64) Table {
	src := t
	if !t.havePercent {
		src = t.Percentages()
	}

	rows := make([]Row, 0, len(src.rows))
	for _, row := range src.rows {
		if row.Percentage >= pct {
			rows = append(rows, row)
		}
	}
	return Table{rows: rows, havePercent: true}
}

// Percentages returns a table with each row's percentage of the current
// total computed, rounded to two decimal places.
func (t Table) Percentages() Table {
	total := t.Total()
	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)

	for i := range rows {
		if total > 0 {
			rows[i].Percentage = round2(float64(rows[i].Count) / float64(total) * 100)
		}
	}

	return Table{rows: rows, havePercent: true}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
