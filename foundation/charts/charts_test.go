package charts_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dancingsushii/blockchainAnalysis/foundation/charts"
	"github.com/dancingsushii/blockchainAnalysis/foundation/distribution"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestSplit(t *testing.T) {
	type table struct {
		name       string
		rows       []distribution.Row
		threshold  float64
		expLarge   []string
		expOthers  int
		expOthrPct float64
	}

	tt := []table{
		{
			name: "fold-small-categories",
			rows: []distribution.Row{
				{Category: "A", Count: 60},
				{Category: "B", Count: 35},
				{Category: "C", Count: 5},
			},
			threshold:  6,
			expLarge:   []string{"A", "B"},
			expOthers:  5,
			expOthrPct: 5,
		},
		{
			name: "nothing-below-threshold",
			rows: []distribution.Row{
				{Category: "A", Count: 60},
				{Category: "B", Count: 40},
			},
			threshold: 1.5,
			expLarge:  []string{"A", "B"},
			expOthers: 0,
		},
		{
			name: "long-tail",
			rows: []distribution.Row{
				{Category: "A", Count: 197},
				{Category: "B", Count: 1},
				{Category: "C", Count: 1},
				{Category: "D", Count: 1},
			},
			threshold:  1.5,
			expLarge:   []string{"A"},
			expOthers:  3,
			expOthrPct: 1.5,
		},
	}

	for testID, tst := range tt {
		f := func(t *testing.T) {
			large, others := charts.Split(distribution.New(tst.rows), tst.threshold)

			if len(large) != len(tst.expLarge) {
				t.Fatalf("\t%s\tTest %d:\tShould keep %d large categories: got %d.",
					failed, testID, len(tst.expLarge), len(large))
			}
			for i, row := range large {
				if row.Category != tst.expLarge[i] {
					t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, row.Category)
					t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.expLarge[i])
					t.Fatalf("\t%s\tTest %d:\tShould keep the right categories in the legend.", failed, testID)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould keep the right categories in the legend.", success, testID)

			if others.Count != tst.expOthers {
				t.Fatalf("\t%s\tTest %d:\tShould fold %d nodes into Others: got %d.",
					failed, testID, tst.expOthers, others.Count)
			}
			if tst.expOthers > 0 && others.Percentage != tst.expOthrPct {
				t.Fatalf("\t%s\tTest %d:\tShould compute Others at %.1f%%: got %.1f%%.",
					failed, testID, tst.expOthrPct, others.Percentage)
			}
			t.Logf("\t%s\tTest %d:\tShould fold the right counts into Others.", success, testID)
		}

		t.Run(tst.name, f)
	}
}

func TestPieRender(t *testing.T) {
	tbl := distribution.New([]distribution.Row{
		{Category: "Hetzner Online", Count: 120},
		{Category: "Amazon Web Services", Count: 80},
		{Category: "OVH", Count: 40},
		{Category: "tiny", Count: 1},
	})

	out := filepath.Join(t.TempDir(), "plots", "hosting_distribution.png")
	cfg := charts.PieConfig{Title: "Hosting distribution", Output: out}

	if err := charts.Pie(tbl, cfg); err != nil {
		t.Fatalf("\t%s\tShould be able to render a pie chart: %v", failed, err)
	}
	t.Logf("\t%s\tShould be able to render a pie chart.", success)

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("\t%s\tShould write the image file: %v", failed, err)
	}
	if info.Size() == 0 {
		t.Fatalf("\t%s\tShould write a non-empty image file.", failed)
	}
	t.Logf("\t%s\tShould write a non-empty image file.", success)
}

func TestPieEmptyTable(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.png")
	err := charts.Pie(distribution.Table{}, charts.PieConfig{Title: "empty", Output: out})
	if err == nil {
		t.Fatalf("\t%s\tShould refuse to render an empty table.", failed)
	}
	t.Logf("\t%s\tShould refuse to render an empty table.", success)
}
