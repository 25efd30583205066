package chains

import (
	"context"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/source"
)

// Polkadot surveys a local nebula crawl. Each advertised IPv4 address of a
// peer counts as one record, resolved through the GeoIP databases.
func Polkadot() survey.Chain {
	return survey.Chain{
		Name:             "polkadot",
		Display:          "Polkadot",
		CollectionMethod: "file",
		Fetch:            fetchPolkadot,
		Dimensions: []survey.Dimension{
			{
				Kind:             survey.KindGeographic,
				Classify:         ipCountry("addr"),
				ConvertCountries: true,
			},
			{
				Kind:     survey.KindHosting,
				Classify: ipHosting("addr", nil),
			},
		},
	}
}

func fetchPolkadot(ctx context.Context, deps survey.Deps) ([]survey.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, skipped, err := source.ReadCrawl(deps.Paths.RawFile("polkadot", "nebula_polkadot_nodes.json"))
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		deps.Log.Infow("nebula crawl lines skipped", "network", "polkadot", "skipped", skipped)
	}

	var records []survey.Record
	for _, entry := range entries {
		for _, ip := range entry.IPs() {
			records = append(records, survey.Record{
				"peer_id": entry.PeerID,
				"addr":    ip,
				"agent":   entry.AgentVersion,
			})
		}
	}

	return records, nil
}
