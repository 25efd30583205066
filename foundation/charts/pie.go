// Package charts renders the distribution tables into chart images. The
// split of a table into large slices and an "Others" bucket happens here,
// at render time, never during aggregation.
package charts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/dancingsushii/blockchainAnalysis/foundation/distribution"
)

// DefaultThreshold is the minimum share of the total a category needs to
// keep its own slice and legend entry.
const DefaultThreshold = 1.5

// labelWrapWidth is the column at which slice labels are wrapped.
const labelWrapWidth = 15

// PieConfig describes one pie chart render.
type PieConfig struct {
	Title     string
	Output    string
	Threshold float64
	Translate func(category string) string
}

// Pie renders the table as a pie chart. Categories below the threshold are
// folded into a single "Others" slice and kept out of the legend. The image
// is written to the configured output path, overwriting any existing file.
func Pie(tbl distribution.Table, cfg PieConfig) error {
	if tbl.Empty() {
		return errors.New("empty table")
	}

	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	if cfg.Translate != nil {
		tbl = translate(tbl, cfg.Translate)
	}

	large, others := Split(tbl, threshold)

	values := make([]chart.Value, 0, len(large)+1)
	for _, row := range large {
		label := fmt.Sprintf("%s (%.1f%%)", row.Category, row.Percentage)
		values = append(values, chart.Value{
			Value: float64(row.Count),
			Label: wrapLabel(label, labelWrapWidth),
		})
	}
	if others.Count > 0 {
		values = append(values, chart.Value{
			Value: float64(others.Count),
			Label: "Others",
		})
	}

	pie := chart.PieChart{
		Title:  cfg.Title,
		Width:  800,
		Height: 800,
		Values: values,
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0755); err != nil {
		return fmt.Errorf("creating plot directory: %w", err)
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("creating plot file: %w", err)
	}
	defer f.Close()

	if err := pie.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("rendering pie chart: %w", err)
	}

	return nil
}

// Split recomputes percentages against the table total and divides the rows
// into those at or above the threshold and a roll-up of everything below it.
// The roll-up keeps its share of the same total.
func Split(tbl distribution.Table, threshold float64) ([]distribution.Row, distribution.Row) {
	total := tbl.Total()
	if total == 0 {
		return nil, distribution.Row{Category: "Others"}
	}

	var large []distribution.Row
	others := distribution.Row{Category: "Others"}

	for _, row := range tbl.Percentages().Rows() {
		if row.Percentage >= threshold {
			large = append(large, row)
			continue
		}
		others.Count += row.Count
	}

	if others.Count > 0 {
		others.Percentage = float64(others.Count) / float64(total) * 100
	}

	return large, others
}

// translate rewrites each category through the configured translation,
// merging rows that map to the same display name.
func translate(tbl distribution.Table, fn func(string) string) distribution.Table {
	c := distribution.NewCounter()
	for _, row := range tbl.Rows() {
		c.AddN(fn(row.Category), row.Count)
	}
	return c.Table()
}

// wrapLabel breaks a label into lines no wider than width, splitting on
// word boundaries.
func wrapLabel(label string, width int) string {
	words := strings.Fields(label)
	if len(words) == 0 {
		return label
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)

	return strings.Join(lines, "\n")
}
