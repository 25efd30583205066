package chains

import (
	"context"
	"strings"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/source"
)

const solanaEndpoint = "https://api.mainnet-beta.solana.com"

// solanaClusterNode is one entry of a getClusterNodes result. Gossip holds
// the host:port the validator gossips on.
type solanaClusterNode struct {
	Pubkey  string `json:"pubkey"`
	Gossip  string `json:"gossip"`
	Version string `json:"version"`
}

// Solana surveys the mainnet-beta cluster over JSON-RPC. The client
// distribution is inferred from version strings: forks tag themselves there,
// everything untagged runs the reference validator.
func Solana() survey.Chain {
	return survey.Chain{
		Name:             "solana",
		Display:          "Solana",
		CollectionMethod: "rpc",
		Fetch:            fetchSolana,
		Dimensions: []survey.Dimension{
			{
				Kind:             survey.KindGeographic,
				Classify:         ipCountry("addr"),
				ConvertCountries: true,
			},
			{
				Kind:        survey.KindClient,
				Classify:    solanaClient,
				Percentages: true,
			},
			{
				Kind:        survey.KindHosting,
				Classify:    ipHosting("addr", survey.DefaultExclusions),
				MinCount:    2,
				Percentages: true,
			},
		},
	}
}

func fetchSolana(ctx context.Context, deps survey.Deps) ([]survey.Record, error) {
	var nodes []solanaClusterNode
	if err := source.RPCCall(ctx, solanaEndpoint, &nodes, "getClusterNodes"); err != nil {
		return nil, err
	}

	records := make([]survey.Record, 0, len(nodes))
	for _, node := range nodes {
		records = append(records, survey.Record{
			"pubkey":  node.Pubkey,
			"addr":    node.Gossip,
			"version": node.Version,
		})
	}

	return records, nil
}

func solanaClient(_ survey.Deps, r survey.Record) (string, bool) {
	version := r.Str("version")
	if version == "" {
		return "Unknown", true
	}

	lower := strings.ToLower(version)
	switch {
	case strings.Contains(lower, "jito") || strings.Contains(lower, "mev"):
		return "Jito Labs", true
	case strings.Contains(lower, "firedancer") || strings.Contains(lower, "jump"):
		return "Firedancer", true
	case strings.Contains(version, "Custom"):
		return "Custom/MEV Client", true
	}

	return "Solana Labs", true
}
