package source

import (
	"encoding/csv"
	"fmt"
	"os"
)

// ReadCSVRows reads a CSV export with a header line and returns one
// header-keyed map per row. Short rows are padded with empty strings.
func ReadCSVRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv export %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv export %q: %w", path, err)
	}

	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)

	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(record) {
				row[key] = record[i]
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// CountCSVRows returns the number of data rows in a CSV export.
func CountCSVRows(path string) (int, error) {
	rows, err := ReadCSVRows(path)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
