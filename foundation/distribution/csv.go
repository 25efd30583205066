package distribution

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Save writes the table to a CSV file with a Category,Count header, adding a
// Percentage column when percentages were computed. Any existing file is
// overwritten and missing parent directories are created.
func (t Table) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"Category", "Count"}
	if t.havePercent {
		header = append(header, "Percentage")
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, row := range t.rows {
		record := []string{row.Category, strconv.Itoa(row.Count)}
		if t.havePercent {
			record = append(record, strconv.FormatFloat(row.Percentage, 'f', 2, 64))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing csv file: %w", err)
	}

	return nil
}

// Load reads a table back from a CSV file produced by Save. Percentages are
// restored when a Percentage column is present.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("reading csv file: %w", err)
	}

	if len(records) == 0 {
		return Table{}, nil
	}

	havePercent := len(records[0]) > 2

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 2 {
			return Table{}, fmt.Errorf("csv row %d: expected at least 2 columns, got %d", i+1, len(record))
		}

		count, err := strconv.Atoi(record[1])
		if err != nil {
			return Table{}, fmt.Errorf("csv row %d: parsing count: %w", i+1, err)
		}

		row := Row{Category: record[0], Count: count}
		if havePercent && len(record) > 2 {
			pct, err := strconv.ParseFloat(record[2], 64)
			if err != nil {
				return Table{}, fmt.Errorf("csv row %d: parsing percentage: %w", i+1, err)
			}
			row.Percentage = pct
		}
		rows = append(rows, row)
	}

	return Table{rows: rows, havePercent: havePercent}, nil
}
