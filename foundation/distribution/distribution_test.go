package distribution_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dancingsushii/blockchainAnalysis/foundation/distribution"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCounting(t *testing.T) {
	type table struct {
		name   string
		labels []string
		exp    []distribution.Row
	}

	tt := []table{
		{
			name:   "basic",
			labels: []string{"DE", "US", "DE", "FR", "DE", "US"},
			exp: []distribution.Row{
				{Category: "DE", Count: 3},
				{Category: "US", Count: 2},
				{Category: "FR", Count: 1},
			},
		},
		{
			name:   "ties-keep-first-seen-order",
			labels: []string{"B", "A", "B", "A", "C"},
			exp: []distribution.Row{
				{Category: "B", Count: 2},
				{Category: "A", Count: 2},
				{Category: "C", Count: 1},
			},
		},
		{
			name:   "empty",
			labels: nil,
			exp:    []distribution.Row{},
		},
	}

	for testID, tst := range tt {
		f := func(t *testing.T) {
			c := distribution.NewCounter()
			for _, label := range tst.labels {
				c.Add(label)
			}

			rows := c.Table().Rows()
			if len(rows) != len(tst.exp) {
				t.Logf("\t%s\tTest %d:\tgot: %d rows", failed, testID, len(rows))
				t.Logf("\t%s\tTest %d:\texp: %d rows", failed, testID, len(tst.exp))
				t.Fatalf("\t%s\tTest %d:\tShould get back the right number of rows.", failed, testID)
			}

			for i, row := range rows {
				if row != tst.exp[i] {
					t.Logf("\t%s\tTest %d:\tgot: %+v", failed, testID, row)
					t.Logf("\t%s\tTest %d:\texp: %+v", failed, testID, tst.exp[i])
					t.Fatalf("\t%s\tTest %d:\tShould get back the right row at index %d.", failed, testID, i)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould get back the right rows.", success, testID)
		}

		t.Run(tst.name, f)
	}
}

func TestSortedDescending(t *testing.T) {
	labels := []string{"a", "b", "b", "c", "c", "c", "d", "d", "d", "d"}

	c := distribution.NewCounter()
	for _, label := range labels {
		c.Add(label)
	}

	tbl := c.Table()
	rows := tbl.Rows()
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Count < rows[i].Count {
			t.Fatalf("\t%s\tShould be sorted by count descending: row %d has %d, row %d has %d.",
				failed, i-1, rows[i-1].Count, i, rows[i].Count)
		}
	}
	t.Logf("\t%s\tShould be sorted by count descending.", success)

	if tbl.Total() > len(labels) {
		t.Fatalf("\t%s\tShould never count more than the number of inputs.", failed)
	}
	t.Logf("\t%s\tShould never count more than the number of inputs.", success)
}

func TestMinCount(t *testing.T) {
	c := distribution.NewCounter()
	c.AddN("A", 10)
	c.AddN("B", 5)
	c.AddN("C", 1)

	tbl := c.Table().MinCount(1)

	rows := tbl.Rows()
	if len(rows) != 2 {
		t.Fatalf("\t%s\tShould drop rows at or below the threshold: got %d rows.", failed, len(rows))
	}
	if rows[0].Category != "A" || rows[0].Count != 10 {
		t.Fatalf("\t%s\tShould keep A with count 10: got %+v.", failed, rows[0])
	}
	if rows[1].Category != "B" || rows[1].Count != 5 {
		t.Fatalf("\t%s\tShould keep B with count 5: got %+v.", failed, rows[1])
	}
	t.Logf("\t%s\tShould keep exactly A and B.", success)
}

func TestPercentages(t *testing.T) {
	c := distribution.NewCounter()
	c.AddN("A", 60)
	c.AddN("B", 35)
	c.AddN("C", 5)

	tbl := c.Table().Percentages()

	rows := tbl.Rows()
	exp := []float64{60, 35, 5}
	for i, row := range rows {
		if row.Percentage != exp[i] {
			t.Logf("\t%s\tgot: %.2f", failed, row.Percentage)
			t.Logf("\t%s\texp: %.2f", failed, exp[i])
			t.Fatalf("\t%s\tShould compute the right percentage for %s.", failed, row.Category)
		}
	}
	t.Logf("\t%s\tShould compute the right percentages.", success)

	kept := tbl.MinPercentage(6)
	if kept.Len() != 2 {
		t.Fatalf("\t%s\tShould keep only rows at or above 6%%: got %d rows.", failed, kept.Len())
	}
	t.Logf("\t%s\tShould keep only rows at or above the percentage threshold.", success)
}

func TestCSVRoundTrip(t *testing.T) {
	type table struct {
		name        string
		rows        []distribution.Row
		percentages bool
	}

	tt := []table{
		{
			name: "counts-only",
			rows: []distribution.Row{
				{Category: "Hetzner", Count: 42},
				{Category: "OVH", Count: 17},
				{Category: "Amazon AWS", Count: 3},
			},
		},
		{
			name: "with-percentages",
			rows: []distribution.Row{
				{Category: "DE", Count: 30},
				{Category: "US", Count: 20},
			},
			percentages: true,
		},
		{
			name: "category-with-comma",
			rows: []distribution.Row{
				{Category: "Amazon, Technologies", Count: 7},
			},
		},
	}

	for testID, tst := range tt {
		f := func(t *testing.T) {
			tbl := distribution.New(tst.rows)
			if tst.percentages {
				tbl = tbl.Percentages()
			}

			path := filepath.Join(t.TempDir(), "sub", "distribution.csv")
			if err := tbl.Save(path); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to save the table: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to save the table.", success, testID)

			got, err := distribution.Load(path)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to load the table back: %v", failed, testID, err)
			}

			gotRows := got.Rows()
			expRows := tbl.Rows()
			if len(gotRows) != len(expRows) {
				t.Fatalf("\t%s\tTest %d:\tShould load the same number of rows: got %d exp %d.",
					failed, testID, len(gotRows), len(expRows))
			}

			for i := range gotRows {
				if gotRows[i].Category != expRows[i].Category || gotRows[i].Count != expRows[i].Count {
					t.Logf("\t%s\tTest %d:\tgot: %+v", failed, testID, gotRows[i])
					t.Logf("\t%s\tTest %d:\texp: %+v", failed, testID, expRows[i])
					t.Fatalf("\t%s\tTest %d:\tShould reproduce the category set and counts.", failed, testID)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould reproduce the category set and counts.", success, testID)
		}

		t.Run(tst.name, f)
	}
}

func TestSaveDiskError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}

	tbl := distribution.New([]distribution.Row{{Category: "DE", Count: 3}})

	if err := tbl.Save("/dev/full"); err == nil {
		t.Fatalf("\t%s\tShould report an error when the disk rejects the write.", failed)
	}
	t.Logf("\t%s\tShould report an error when the disk rejects the write.", success)
}

func TestLoadOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distribution.csv")

	first := distribution.New([]distribution.Row{{Category: "A", Count: 1}, {Category: "B", Count: 1}})
	if err := first.Save(path); err != nil {
		t.Fatalf("\t%s\tShould be able to save the first table: %v", failed, err)
	}

	second := distribution.New([]distribution.Row{{Category: "C", Count: 9}})
	if err := second.Save(path); err != nil {
		t.Fatalf("\t%s\tShould be able to overwrite with the second table: %v", failed, err)
	}

	got, err := distribution.Load(path)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to load the table back: %v", failed, err)
	}

	if got.Len() != 1 || got.Rows()[0].Category != "C" {
		t.Fatalf("\t%s\tShould contain only the second table's rows.", failed)
	}
	t.Logf("\t%s\tShould contain only the second table's rows.", success)
}
