package chains

import (
	"context"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
)

const stellarbeatEndpoint = "https://api.stellarbeat.io/v1/node"

// stellarNode is one validator from the stellarbeat directory. The
// directory ships geo metadata; only the hosting lookup needs the local
// ASN database.
type stellarNode struct {
	Active  bool   `json:"active"`
	IP      string `json:"ip"`
	GeoData *struct {
		CountryCode string `json:"countryCode"`
		IP          string `json:"ip"`
	} `json:"geoData"`
}

// Stellar surveys the stellarbeat node directory, active nodes only.
func Stellar() survey.Chain {
	return survey.Chain{
		Name:             "stellar",
		Display:          "Stellar",
		CollectionMethod: "api",
		Fetch:            fetchStellar,
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
				Kind:        survey.KindHosting,
				Classify:    ipHosting("addr", survey.DefaultExclusions),
				MinCount:    2,
				Percentages: true,
			},
		},
	}
}

func fetchStellar(ctx context.Context, deps survey.Deps) ([]survey.Record, error) {
	var nodes []stellarNode
	if err := deps.Client.GetJSON(ctx, stellarbeatEndpoint, nil, &nodes); err != nil {
		return nil, err
	}

	var records []survey.Record
	for _, node := range nodes {
		if !node.Active {
			continue
		}

		r := survey.Record{}
		if node.IP != "" {
			r["addr"] = node.IP
		}
		if node.GeoData != nil {
			r["country"] = node.GeoData.CountryCode
			if r.Str("addr") == "" && node.GeoData.IP != "" {
				r["addr"] = node.GeoData.IP
			}
		}
		records = append(records, r)
	}

	return records, nil
}
