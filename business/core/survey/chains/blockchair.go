package chains

import (
	"context"
	"strings"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
)

// blockchairNode is one entry of a Blockchair /nodes response. A height of
// zero marks a node that never synced; those are excluded everywhere.
type blockchairNode struct {
	Version string `json:"version"`
	Country string `json:"country"`
	Height  int    `json:"height"`
}

type blockchairResponse struct {
	Data struct {
		Nodes map[string]blockchairNode `json:"nodes"`
	} `json:"data"`
}

// fetchBlockchair builds a fetch function for one Blockchair-indexed
// network. The map key is the node's address.
func fetchBlockchair(endpoint string) func(context.Context, survey.Deps) ([]survey.Record, error) {
	return func(ctx context.Context, deps survey.Deps) ([]survey.Record, error) {
		var resp blockchairResponse
		if err := deps.Client.GetJSON(ctx, endpoint, nil, &resp); err != nil {
			return nil, err
		}

		records := make([]survey.Record, 0, len(resp.Data.Nodes))
		for addr, node := range resp.Data.Nodes {
			records = append(records, survey.Record{
				"addr":    addr,
				"version": node.Version,
				"country": node.Country,
				"height":  node.Height,
			})
		}

		return records, nil
	}
}

// synced reports whether the record belongs to a node that has caught up
// with the chain.
func synced(r survey.Record) bool {
	return r.Int("height") > 0
}

// BitcoinCash surveys the Blockchair directory of reachable Bitcoin Cash
// nodes. Client names are kept as their raw version token since the fork
// ecosystem has no fixed client set.
func BitcoinCash() survey.Chain {
	hosting := ipHosting("addr", nil)

	return survey.Chain{
		Name:             "bitcoin_cash",
		Display:          "Bitcoin Cash",
		CollectionMethod: "api",
		Fetch:            fetchBlockchair("https://api.blockchair.com/bitcoin-cash/nodes"),
		Dimensions: []survey.Dimension{
			{
				Kind: survey.KindGeographic,
				Classify: func(_ survey.Deps, r survey.Record) (string, bool) {
					if !synced(r) || r.Str("country") == "" {
						return "", false
					}
					return r.Str("country"), true
				},
				ConvertCountries: true,
			},
			{
				Kind: survey.KindClient,
				Classify: func(_ survey.Deps, r survey.Record) (string, bool) {
					if !synced(r) || r.Str("version") == "" {
						return "", false
					}
					return survey.ClientToken(r.Str("version")), true
				},
			},
			{
				Kind: survey.KindHosting,
				Classify: func(deps survey.Deps, r survey.Record) (string, bool) {
					if !synced(r) {
						return "", false
					}
					return hosting(deps, r)
				},
				MinCount:    1,
				Percentages: true,
			},
		},
	}
}

// Dogecoin surveys the Blockchair directory, restricted to Shibetoshi
// (Dogecoin Core) nodes.
func Dogecoin() survey.Chain {
	isCore := func(r survey.Record) bool {
		return synced(r) && strings.HasPrefix(r.Str("version"), "/Shibetoshi:")
	}
	hosting := ipHosting("addr", []string{"relay", "pool", "stake"})

	return survey.Chain{
		Name:             "dogecoin",
		Display:          "Dogecoin",
		CollectionMethod: "api",
		Fetch:            fetchBlockchair("https://api.blockchair.com/dogecoin/nodes"),
		Dimensions: []survey.Dimension{
			{
				Kind: survey.KindGeographic,
				Classify: func(_ survey.Deps, r survey.Record) (string, bool) {
					if !isCore(r) || r.Str("country") == "" {
						return "", false
					}
					return r.Str("country"), true
				},
				ConvertCountries: true,
			},
			{
				Kind: survey.KindHosting,
				Classify: func(deps survey.Deps, r survey.Record) (string, bool) {
					if !isCore(r) {
						return "", false
					}
					return hosting(deps, r)
				},
				MinCount:    1,
				Percentages: true,
			},
		},
	}
}

// Litecoin surveys the Blockchair directory, restricted to Litecoin Core
// nodes.
func Litecoin() survey.Chain {
	isCore := func(r survey.Record) bool {
		return synced(r) && strings.HasPrefix(r.Str("version"), "/LitecoinCore:")
	}
	hosting := ipHosting("addr", []string{"relay", "pool", "stake"})

	return survey.Chain{
		Name:             "litecoin",
		Display:          "Litecoin",
		CollectionMethod: "api",
		Fetch:            fetchBlockchair("https://api.blockchair.com/litecoin/nodes"),
		Dimensions: []survey.Dimension{
			{
				Kind: survey.KindGeographic,
				Classify: func(_ survey.Deps, r survey.Record) (string, bool) {
					if !isCore(r) || r.Str("country") == "" {
						return "", false
					}
					return r.Str("country"), true
				},
				ConvertCountries: true,
				Percentages:      true,
			},
			{
				Kind: survey.KindClient,
				Classify: func(_ survey.Deps, r survey.Record) (string, bool) {
					if !isCore(r) {
						return "", false
					}
					return "Litecoin Core", true
				},
				Percentages: true,
			},
			{
				Kind: survey.KindHosting,
				Classify: func(deps survey.Deps, r survey.Record) (string, bool) {
					if !isCore(r) {
						return "", false
					}
					return hosting(deps, r)
				},
				MinCount:    1,
				Percentages: true,
			},
		},
	}
}
