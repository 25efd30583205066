package transparency_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/dancingsushii/blockchainAnalysis/business/core/transparency"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/layout"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestMatrix(t *testing.T) {
	matrix := transparency.Matrix()

	if len(matrix) != 15 {
		t.Fatalf("\t%s\tTest 0:\tShould score 15 networks, got %d.", failed, len(matrix))
	}
	t.Logf("\t%s\tTest 0:\tShould score 15 networks.", success)

	for _, a := range matrix {
		if len(a.Scores) != len(transparency.Criteria) {
			t.Fatalf("\t%s\tTest 1:\tShould have one score per criterion for %s, got %d.",
				failed, a.Network, len(a.Scores))
		}
		for _, score := range a.Scores {
			if score < 0 || score > 3 {
				t.Fatalf("\t%s\tTest 1:\tShould keep scores between 0 and 3 for %s, got %d.",
					failed, a.Network, score)
			}
		}
	}
	t.Logf("\t%s\tTest 1:\tShould have one bounded score per criterion.", success)
}

func TestRanking(t *testing.T) {
	rows := transparency.Ranking().Rows()

	if len(rows) != 15 {
		t.Fatalf("\t%s\tTest 0:\tShould rank 15 networks, got %d.", failed, len(rows))
	}

	if rows[0].Category != "Ethereum" || rows[0].Count != 15 {
		t.Fatalf("\t%s\tTest 0:\tShould rank Ethereum first with 15, got %+v.", failed, rows[0])
	}
	if rows[len(rows)-1].Category != "Polygon" || rows[len(rows)-1].Count != 3 {
		t.Fatalf("\t%s\tTest 0:\tShould rank Polygon last with 3, got %+v.", failed, rows[len(rows)-1])
	}
	t.Logf("\t%s\tTest 0:\tShould rank by total score, highest first.", success)

	for i := 1; i < len(rows); i++ {
		if rows[i-1].Count < rows[i].Count {
			t.Fatalf("\t%s\tTest 1:\tShould be sorted descending, %s before %s.",
				failed, rows[i-1].Category, rows[i].Category)
		}
	}
	t.Logf("\t%s\tTest 1:\tShould be sorted by total score descending.", success)
}

func TestSaveMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "common", "transparency_matrix.csv")

	if err := transparency.SaveMatrix(path); err != nil {
		t.Fatalf("\t%s\tTest 0:\tShould be able to save the matrix: %v.", failed, err)
	}
	t.Logf("\t%s\tTest 0:\tShould be able to save the matrix.", success)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("\t%s\tTest 1:\tShould be able to open the matrix: %v.", failed, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("\t%s\tTest 1:\tShould be able to read the matrix back: %v.", failed, err)
	}

	if len(records) != 16 {
		t.Fatalf("\t%s\tTest 1:\tShould have a header plus 15 rows, got %d.", failed, len(records))
	}
	if len(records[0]) != len(transparency.Criteria)+2 {
		t.Fatalf("\t%s\tTest 1:\tShould have Network, criteria and Total columns, got %d.",
			failed, len(records[0]))
	}
	if records[1][0] != "Ethereum" || records[1][len(records[1])-1] != "15" {
		t.Fatalf("\t%s\tTest 1:\tShould carry the Ethereum totals, got %v.", failed, records[1])
	}
	t.Logf("\t%s\tTest 1:\tShould reproduce the matrix shape and totals.", success)
}

func TestPlot(t *testing.T) {
	paths := layout.New(t.TempDir(), t.TempDir())

	if err := transparency.Plot(paths); err != nil {
		t.Fatalf("\t%s\tTest 0:\tShould be able to render the ranking chart: %v.", failed, err)
	}

	info, err := os.Stat(paths.TransparencyPlot())
	if err != nil {
		t.Fatalf("\t%s\tTest 0:\tShould find the rendered chart: %v.", failed, err)
	}
	if info.Size() == 0 {
		t.Fatalf("\t%s\tTest 0:\tShould render a non-empty chart.", failed)
	}
	t.Logf("\t%s\tTest 0:\tShould render the ranking chart.", success)
}
