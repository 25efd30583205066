package charts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/dancingsushii/blockchainAnalysis/foundation/distribution"
)

// BarConfig describes one bar chart render.
type BarConfig struct {
	Title     string
	Output    string
	YAxisName string
	Translate func(category string) string
}

// Bar renders the table as a bar chart sorted largest to smallest. The image
// is written to the configured output path, overwriting any existing file.
func Bar(tbl distribution.Table, cfg BarConfig) error {
	if tbl.Empty() {
		return errors.New("empty table")
	}

	if cfg.Translate != nil {
		tbl = translate(tbl, cfg.Translate)
	}

	rows := tbl.Rows()
	bars := make([]chart.Value, len(rows))
	for i, row := range rows {
		bars[i] = chart.Value{
			Value: float64(row.Count),
			Label: wrapLabel(row.Category, labelWrapWidth),
		}
	}

	bc := chart.BarChart{
		Title:    cfg.Title,
		Width:    1200,
		Height:   600,
		BarWidth: 40,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name: cfg.YAxisName,
		},
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0755); err != nil {
		return fmt.Errorf("creating plot directory: %w", err)
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("creating plot file: %w", err)
	}
	defer f.Close()

	if err := bc.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("rendering bar chart: %w", err)
	}

	return nil
}
