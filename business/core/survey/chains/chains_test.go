package chains

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/source"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestRegistry(t *testing.T) {
	all := All()

	if len(all) != 15 {
		t.Fatalf("\t%s\tTest 0:\tShould have 15 networks, got %d.", failed, len(all))
	}
	t.Logf("\t%s\tTest 0:\tShould have 15 networks.", success)

	seen := make(map[string]bool)
	for i, chain := range all {
		if i > 0 && all[i-1].Name >= chain.Name {
			t.Fatalf("\t%s\tTest 1:\tShould be ordered by name, %q before %q.", failed, all[i-1].Name, chain.Name)
		}
		if seen[chain.Name] {
			t.Fatalf("\t%s\tTest 1:\tShould have unique names, %q repeats.", failed, chain.Name)
		}
		seen[chain.Name] = true
	}
	t.Logf("\t%s\tTest 1:\tShould be ordered by unique names.", success)

	if _, err := Lookup("bitcoin"); err != nil {
		t.Fatalf("\t%s\tTest 2:\tShould look up bitcoin: %v.", failed, err)
	}
	if _, err := Lookup("hooli-chain"); err == nil {
		t.Fatalf("\t%s\tTest 2:\tShould reject an unknown network.", failed)
	}
	t.Logf("\t%s\tTest 2:\tShould look up networks by name.", success)
}

func TestPlotOnly(t *testing.T) {
	for _, chain := range All() {
		exp := chain.Name == "algorand"
		if chain.PlotOnly() != exp {
			t.Fatalf("\t%s\tTest 0:\tShould report plot only %v for %s.", failed, exp, chain.Name)
		}
	}
	t.Logf("\t%s\tTest 0:\tShould mark only algorand as plot only.", success)
}

func TestBitcoinClient(t *testing.T) {
	type table struct {
		name    string
		version string
		exp     string
		expOK   bool
	}

	tt := []table{
		{name: "core", version: "/Satoshi:27.0.0/", exp: "Bitcoin Core", expOK: true},
		{name: "knots", version: "/Satoshi:27.1.0/Knots:20240325/", exp: "Bitcoin Knots", expOK: true},
		{name: "btcd", version: "/btcwire:0.5.0/", exp: "btcd", expOK: true},
		{name: "fork-dropped", version: "/Satoshi:1.0.0(ABC)/", expOK: false},
		{name: "unlisted-dropped", version: "/SomethingElse:1.0/", expOK: false},
		{name: "no-token", version: "/justaname/", expOK: false},
		{name: "empty", version: "", expOK: false},
	}

	for testID, tst := range tt {
		f := func(t *testing.T) {
			got, ok := bitcoinClient(survey.Deps{}, survey.Record{"version": tst.version})
			if ok != tst.expOK {
				t.Fatalf("\t%s\tTest %d:\tShould get ok %v, got %v.", failed, testID, tst.expOK, ok)
			}
			if ok && got != tst.exp {
				t.Logf("\t%s\tTest %d:\tgot: %q", failed, testID, got)
				t.Logf("\t%s\tTest %d:\texp: %q", failed, testID, tst.exp)
				t.Fatalf("\t%s\tTest %d:\tShould classify the user agent.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould classify %q.", success, testID, tst.version)
		}

		t.Run(tst.name, f)
	}
}

func TestEthereumClient(t *testing.T) {
	type table struct {
		name  string
		agent string
		exp   string
		expOK bool
	}

	tt := []table{
		{name: "geth", agent: "Geth/v1.13.14-stable", exp: "Geth", expOK: true},
		{name: "go-ethereum", agent: "go-ethereum/v1.10", exp: "Geth", expOK: true},
		{name: "nethermind-lower", agent: "nethermind/1.25.4", exp: "Nethermind", expOK: true},
		{name: "lighthouse", agent: "Lighthouse/v5.1.0", exp: "Lighthouse", expOK: true},
		{name: "unknown-dropped", agent: "openethereum/v3.3", expOK: false},
		{name: "empty", agent: "", expOK: false},
	}

	for testID, tst := range tt {
		f := func(t *testing.T) {
			got, ok := ethereumClient(survey.Deps{}, survey.Record{"name": tst.agent})
			if ok != tst.expOK {
				t.Fatalf("\t%s\tTest %d:\tShould get ok %v, got %v.", failed, testID, tst.expOK, ok)
			}
			if ok && got != tst.exp {
				t.Fatalf("\t%s\tTest %d:\tShould classify %q as %q, got %q.", failed, testID, tst.agent, tst.exp, got)
			}
			t.Logf("\t%s\tTest %d:\tShould classify %q.", success, testID, tst.agent)
		}

		t.Run(tst.name, f)
	}
}

func TestEthereumExcluded(t *testing.T) {
	type table struct {
		name string
		exp  bool
	}

	tt := []table{
		{name: "bor", exp: true},
		{name: "coregeth", exp: true},
		{name: "tmp-node-7", exp: true},
		{name: "Placeholder", exp: true},
		{name: "Geth", exp: false},
	}

	for testID, tst := range tt {
		if got := ethereumExcluded(tst.name); got != tst.exp {
			t.Fatalf("\t%s\tTest %d:\tShould report %v for %q, got %v.", failed, testID, tst.exp, tst.name, got)
		}
		t.Logf("\t%s\tTest %d:\tShould report %v for %q.", success, testID, tst.exp, tst.name)
	}
}

func TestSolanaClient(t *testing.T) {
	type table struct {
		name    string
		version string
		exp     string
	}

	tt := []table{
		{name: "jito", version: "1.17.31-jito", exp: "Jito Labs"},
		{name: "firedancer", version: "0.101.firedancer", exp: "Firedancer"},
		{name: "custom", version: "1.17.0 Custom build", exp: "Custom/MEV Client"},
		{name: "reference", version: "1.17.31", exp: "Solana Labs"},
		{name: "missing", version: "", exp: "Unknown"},
	}

	for testID, tst := range tt {
		f := func(t *testing.T) {
			got, ok := solanaClient(survey.Deps{}, survey.Record{"version": tst.version})
			if !ok {
				t.Fatalf("\t%s\tTest %d:\tShould always classify, got a skip.", failed, testID)
			}
			if got != tst.exp {
				t.Fatalf("\t%s\tTest %d:\tShould classify %q as %q, got %q.", failed, testID, tst.version, tst.exp, got)
			}
			t.Logf("\t%s\tTest %d:\tShould classify %q.", success, testID, tst.version)
		}

		t.Run(tst.name, f)
	}
}

func TestPolygonClient(t *testing.T) {
	type table struct {
		name  string
		raw   string
		exp   string
		expOK bool
	}

	tt := []table{
		{name: "bor", raw: "bor/v1.2.7/linux-amd64", exp: "bor", expOK: true},
		{name: "coregeth", raw: "CoreGeth/v1.12", exp: "CoreGeth", expOK: true},
		{name: "foreign-dropped", raw: "Geth/v1.13", expOK: false},
		{name: "empty", raw: "", expOK: false},
	}

	for testID, tst := range tt {
		f := func(t *testing.T) {
			got, ok := polygonClient(survey.Deps{}, survey.Record{"client": tst.raw})
			if ok != tst.expOK {
				t.Fatalf("\t%s\tTest %d:\tShould get ok %v, got %v.", failed, testID, tst.expOK, ok)
			}
			if ok && got != tst.exp {
				t.Fatalf("\t%s\tTest %d:\tShould classify %q as %q, got %q.", failed, testID, tst.raw, tst.exp, got)
			}
			t.Logf("\t%s\tTest %d:\tShould classify %q.", success, testID, tst.raw)
		}

		t.Run(tst.name, f)
	}
}

func TestEtcHosting(t *testing.T) {
	type table struct {
		name string
		org  string
		exp  string
	}

	tt := []table{
		{name: "as-prefix", org: "AS24940 Hetzner Online GmbH", exp: "Hetzner Online GmbH"},
		{name: "no-prefix", org: "Hetzner", exp: "Hetzner"},
		{name: "missing", org: "", exp: "Unknown"},
	}

	for testID, tst := range tt {
		f := func(t *testing.T) {
			got, ok := etcHosting(survey.Deps{}, survey.Record{"org": tst.org})
			if !ok {
				t.Fatalf("\t%s\tTest %d:\tShould always classify, got a skip.", failed, testID)
			}
			if got != tst.exp {
				t.Fatalf("\t%s\tTest %d:\tShould classify %q as %q, got %q.", failed, testID, tst.org, tst.exp, got)
			}
			t.Logf("\t%s\tTest %d:\tShould classify %q.", success, testID, tst.org)
		}

		t.Run(tst.name, f)
	}
}

func TestSyncedFilter(t *testing.T) {
	if synced(survey.Record{"height": float64(840000)}) != true {
		t.Fatalf("\t%s\tTest 0:\tShould treat a positive height as synced.", failed)
	}
	if synced(survey.Record{"height": 0}) != false {
		t.Fatalf("\t%s\tTest 0:\tShould treat height zero as not synced.", failed)
	}
	if synced(survey.Record{}) != false {
		t.Fatalf("\t%s\tTest 0:\tShould treat a missing height as not synced.", failed)
	}
	t.Logf("\t%s\tTest 0:\tShould gate on the node height.", success)
}

func TestBlockfrostPools(t *testing.T) {
	pools := make([]string, 230)
	for i := range pools {
		pools[i] = fmt.Sprintf("pool%03d", i)
	}

	var pages []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		pages = append(pages, page)

		start := (page - 1) * blockfrostPageSize
		if start > len(pools) {
			start = len(pools)
		}
		end := start + blockfrostPageSize
		if end > len(pools) {
			end = len(pools)
		}
		json.NewEncoder(w).Encode(pools[start:end])
	}))
	defer srv.Close()

	client := source.NewClient(time.Second)
	got, err := blockfrostPools(context.Background(), client, srv.URL, nil)
	if err != nil {
		t.Fatalf("\t%s\tTest 0:\tShould walk the pool pages: %v.", failed, err)
	}

	if len(got) != len(pools) {
		t.Fatalf("\t%s\tTest 0:\tShould collect every pool, got %d exp %d.", failed, len(got), len(pools))
	}
	t.Logf("\t%s\tTest 0:\tShould collect every pool across pages.", success)

	if len(pages) != 3 || pages[0] != 1 || pages[1] != 2 || pages[2] != 3 {
		t.Fatalf("\t%s\tTest 1:\tShould stop after the short page, requested %v.", failed, pages)
	}
	t.Logf("\t%s\tTest 1:\tShould stop after the short page.", success)
}
