package chains

import (
	"context"
	"strings"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/source"
)

// polygonClients are the client names counted for Polygon. The node tracker
// export mixes in peers of other devp2p networks; anything else is dropped.
var polygonClients = map[string]bool{
	"bor":       true,
	"Worldland": true,
	"CoreGeth":  true,
	"reth":      true,
	"Gqdc":      true,
	"Ronin":     true,
}

// Polygon surveys a polygonscan node tracker export. The tracker has no
// API for the full node list, so the CSV is downloaded by hand and read
// from the raw data directory.
func Polygon() survey.Chain {
	return survey.Chain{
		Name:             "polygon",
		Display:          "Polygon",
		CollectionMethod: "file",
		Fetch:            fetchPolygon,
		Dimensions: []survey.Dimension{
			{
				Kind: survey.KindGeographic,
				Classify: func(_ survey.Deps, r survey.Record) (string, bool) {
					country := r.Str("country")
					return country, country != ""
				},
				ConvertCountries: true,
				Percentages:      true,
			},
			{
				Kind:        survey.KindClient,
				Classify:    polygonClient,
				Percentages: true,
			},
			{
				Kind:        survey.KindHosting,
				Classify:    ipHosting("addr", nil),
				Percentages: true,
			},
		},
	}
}

func fetchPolygon(ctx context.Context, deps survey.Deps) ([]survey.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := source.ReadCSVRows(deps.Paths.RawFile("polygon", "polygon_nodes.csv"))
	if err != nil {
		return nil, err
	}

	records := make([]survey.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, survey.Record{
			"addr":    row["Host"],
			"client":  row["Client"],
			"country": row["Country"],
			"os":      row["OS"],
		})
	}

	return records, nil
}

func polygonClient(_ survey.Deps, r survey.Record) (string, bool) {
	raw := r.Str("client")
	if raw == "" {
		return "", false
	}

	client, _, _ := strings.Cut(raw, "/")
	client = strings.TrimSpace(client)
	return client, polygonClients[client]
}
