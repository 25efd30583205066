package chains

import (
	"context"
	"strings"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
)

const etcnodesEndpoint = "https://api.etcnodes.org/peers"

// etcnodesPeer is one peer from the etcnodes directory. The directory
// resolves IP metadata server side, so no local database lookup is needed.
type etcnodesPeer struct {
	Name   string `json:"name"`
	IPInfo struct {
		CountryCode string `json:"countryCode"`
		Org         string `json:"org"`
	} `json:"ip_info"`
}

// EthereumClassic surveys the etcnodes peer directory. The hosting legend
// uses a coarser 3.3% threshold since the directory lists few providers.
func EthereumClassic() survey.Chain {
	return survey.Chain{
		Name:             "ethereum_classic",
		Display:          "Ethereum Classic",
		CollectionMethod: "api",
		Fetch:            fetchEthereumClassic,
		Dimensions: []survey.Dimension{
			{
				Kind: survey.KindGeographic,
				Classify: func(_ survey.Deps, r survey.Record) (string, bool) {
					country := r.Str("country")
					return country, country != ""
				},
				ConvertCountries: true,
			},
			{
				Kind: survey.KindClient,
				Classify: func(_ survey.Deps, r survey.Record) (string, bool) {
					name := r.Str("name")
					if name == "" {
						return "", false
					}
					client, _, _ := strings.Cut(name, "/")
					return client, true
				},
			},
			{
				Kind:            survey.KindHosting,
				Classify:        etcHosting,
				Percentages:     true,
				LegendThreshold: 3.3,
			},
		},
	}
}

func fetchEthereumClassic(ctx context.Context, deps survey.Deps) ([]survey.Record, error) {
	var peers []etcnodesPeer
	if err := deps.Client.GetJSON(ctx, etcnodesEndpoint, nil, &peers); err != nil {
		return nil, err
	}

	records := make([]survey.Record, 0, len(peers))
	for _, peer := range peers {
		records = append(records, survey.Record{
			"name":    peer.Name,
			"country": peer.IPInfo.CountryCode,
			"org":     peer.IPInfo.Org,
		})
	}

	return records, nil
}

// etcHosting takes the provider name from the directory's org field, which
// is formatted "AS{number} {provider}". Peers without org data count as
// Unknown rather than being dropped.
func etcHosting(_ survey.Deps, r survey.Record) (string, bool) {
	org := r.Str("org")
	if org == "" {
		return "Unknown", true
	}

	if _, provider, ok := strings.Cut(org, " "); ok {
		return provider, true
	}
	return org, true
}
