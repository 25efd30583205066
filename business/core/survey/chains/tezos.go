package chains

import (
	"context"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
)

const tzktEndpoint = "https://services.tzkt.io/v1/nodes/stats"

// tzktStats is the pre-aggregated node statistics document. Each heatmap or
// hosting entry already stands for a group of nodes, so records carry the
// group size as their weight.
type tzktStats struct {
	Heatmap []struct {
		CountryCode string `json:"countryCode"`
		Count       int    `json:"count"`
	} `json:"heatmap"`
	TopHosting []struct {
		Hosting string `json:"hosting"`
		Count   int    `json:"count"`
	} `json:"topHosting"`
}

// Tezos surveys the tzkt statistics service, which aggregates server side.
func Tezos() survey.Chain {
	return survey.Chain{
		Name:             "tezos",
		Display:          "Tezos",
		CollectionMethod: "api",
		Fetch:            fetchTezos,
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
				Kind: survey.KindHosting,
				Classify: func(_ survey.Deps, r survey.Record) (string, bool) {
					hosting := r.Str("hosting")
					return hosting, hosting != ""
				},
			},
		},
	}
}

func fetchTezos(ctx context.Context, deps survey.Deps) ([]survey.Record, error) {
	var stats tzktStats
	if err := deps.Client.GetJSON(ctx, tzktEndpoint, nil, &stats); err != nil {
		return nil, err
	}

	var records []survey.Record
	for _, entry := range stats.Heatmap {
		if entry.CountryCode == "" || entry.Count <= 0 {
			continue
		}
		records = append(records, survey.Record{
			"country": entry.CountryCode,
			"weight":  entry.Count,
		})
	}
	for _, entry := range stats.TopHosting {
		if entry.Hosting == "" || entry.Count <= 0 {
			continue
		}
		records = append(records, survey.Record{
			"hosting": entry.Hosting,
			"weight":  entry.Count,
		})
	}

	return records, nil
}
