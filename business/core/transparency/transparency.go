// Package transparency scores how observable each network's node population
// is. The scores are a fixed editorial assessment on a 0 to 3 scale per
// criterion, not something derived from survey output, and feed a ranking
// chart plus a CSV export of the full matrix.
package transparency

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dancingsushii/blockchainAnalysis/business/sys/layout"
	"github.com/dancingsushii/blockchainAnalysis/foundation/charts"
	"github.com/dancingsushii/blockchainAnalysis/foundation/distribution"
)

// Criteria are the assessment axes, in matrix column order.
var Criteria = []string{
	"Data Availability",
	"Data Processability",
	"Collection Methods",
	"Data Completeness",
	"Verification Capabilities",
}

// Assessment holds one network's scores, one per criterion.
type Assessment struct {
	Network string
	Scores  []int
}

// Total returns the network's summed score across all criteria.
func (a Assessment) Total() int {
	var total int
	for _, score := range a.Scores {
		total += score
	}
	return total
}

// Matrix returns the per-network assessments.
func Matrix() []Assessment {
	return []Assessment{
		{Network: "Ethereum", Scores: []int{3, 3, 3, 3, 3}},
		{Network: "Ethereum Classic", Scores: []int{1, 1, 2, 3, 1}},
		{Network: "Bitcoin", Scores: []int{3, 3, 2, 3, 3}},
		{Network: "Bitcoin Cash", Scores: []int{2, 1, 2, 2, 1}},
		{Network: "Litecoin", Scores: []int{2, 1, 2, 2, 2}},
		{Network: "Dogecoin", Scores: []int{2, 1, 2, 2, 2}},
		{Network: "Cardano", Scores: []int{1, 1, 1, 1, 2}},
		{Network: "Solana", Scores: []int{1, 1, 2, 1, 2}},
		{Network: "Polkadot", Scores: []int{3, 3, 3, 3, 2}},
		{Network: "Polygon", Scores: []int{0, 0, 0, 2, 1}},
		{Network: "Algorand", Scores: []int{3, 2, 3, 3, 2}},
		{Network: "Tezos", Scores: []int{2, 2, 3, 3, 2}},
		{Network: "NEAR", Scores: []int{1, 1, 1, 1, 2}},
		{Network: "Stellar", Scores: []int{2, 2, 3, 3, 2}},
		{Network: "Ripple", Scores: []int{1, 1, 1, 1, 1}},
	}
}

// Ranking returns the networks by total score, highest first.
func Ranking() distribution.Table {
	c := distribution.NewCounter()
	for _, a := range Matrix() {
		c.AddN(a.Network, a.Total())
	}
	return c.Table()
}

// SaveMatrix writes the full score matrix as a CSV with one row per network
// and a trailing Total column. Any existing file is overwritten.
func SaveMatrix(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := append([]string{"Network"}, Criteria...)
	header = append(header, "Total")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, a := range Matrix() {
		record := make([]string, 0, len(a.Scores)+2)
		record = append(record, a.Network)
		for _, score := range a.Scores {
			record = append(record, strconv.Itoa(score))
		}
		record = append(record, strconv.Itoa(a.Total()))
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

// Plot renders the ranking bar chart.
func Plot(paths layout.Paths) error {
	return charts.Bar(Ranking(), charts.BarConfig{
		Title:     "Blockchain Transparency Ranking",
		Output:    paths.TransparencyPlot(),
		YAxisName: "Total score",
	})
}
