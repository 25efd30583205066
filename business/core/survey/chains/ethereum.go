package chains

import (
	"context"
	"regexp"
	"strings"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/source"
)

// ethereumClients maps agent name prefixes to canonical client names,
// execution layer first, consensus layer after. Names outside the table are
// not counted as clients.
var ethereumClients = []struct {
	Pattern *regexp.Regexp
	Name    string
}{
	{regexp.MustCompile(`(?i)^geth`), "Geth"},
	{regexp.MustCompile(`(?i)^go-ethereum`), "Geth"},
	{regexp.MustCompile(`(?i)^erigon`), "Erigon"},
	{regexp.MustCompile(`(?i)^nethermind`), "Nethermind"},
	{regexp.MustCompile(`(?i)^besu`), "Besu"},
	{regexp.MustCompile(`(?i)^prysm`), "Prysm"},
	{regexp.MustCompile(`(?i)^lighthouse`), "Lighthouse"},
	{regexp.MustCompile(`(?i)^teku`), "Teku"},
	{regexp.MustCompile(`(?i)^nimbus`), "Nimbus"},
	{regexp.MustCompile(`(?i)^lodestar`), "Lodestar"},
}

// ethereumForeign are agent names of other networks that show up in the
// crawler table and are excluded from every distribution.
var ethereumForeign = []string{"bor", "coregeth"}

var ethereumNoise = regexp.MustCompile(`(?i)tmp|placeholder|invalid`)

// Ethereum surveys two local captures: the devp2p crawler database for the
// geographic and client distributions, and a nebula crawl for the hosting
// distribution. Both are produced out of band; Fetch only reads them.
func Ethereum() survey.Chain {
	return survey.Chain{
		Name:             "ethereum",
		Display:          "Ethereum",
		CollectionMethod: "file",
		Fetch:            fetchEthereum,
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
				Kind:     survey.KindClient,
				Classify: ethereumClient,
			},
			{
				Kind:     survey.KindHosting,
				Classify: ipHosting("addr", nil),
			},
		},
	}
}

// fetchEthereum merges the two captures into one record set. Crawler rows
// carry name and country; crawl entries carry one addr per advertised IP.
// Dimensions skip the records that lack their fields.
func fetchEthereum(ctx context.Context, deps survey.Deps) ([]survey.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nodes, err := source.CrawlerNodes(deps.Paths.RawFile("ethereum", "ethereum_crawler.db"))
	if err != nil {
		return nil, err
	}

	var records []survey.Record
	for _, node := range nodes {
		if ethereumExcluded(node.Name) {
			continue
		}
		records = append(records, survey.Record{
			"name":    node.Name,
			"country": node.CountryName,
		})
	}

	entries, skipped, err := source.ReadCrawl(deps.Paths.RawFile("ethereum", "nebula_ethereum_nodes.json"))
	if err != nil {
		deps.Log.Errorw("reading nebula crawl", "network", "ethereum", "ERROR", err)
	} else {
		if skipped > 0 {
			deps.Log.Infow("nebula crawl lines skipped", "network", "ethereum", "skipped", skipped)
		}
		for _, entry := range entries {
			for _, ip := range entry.IPs() {
				records = append(records, survey.Record{"addr": ip})
			}
		}
	}

	return records, nil
}

func ethereumExcluded(name string) bool {
	lower := strings.ToLower(name)
	for _, foreign := range ethereumForeign {
		if lower == foreign {
			return true
		}
	}
	return ethereumNoise.MatchString(name)
}

func ethereumClient(_ survey.Deps, r survey.Record) (string, bool) {
	name := r.Str("name")
	if name == "" {
		return "", false
	}

	for _, client := range ethereumClients {
		if client.Pattern.MatchString(name) {
			return client.Name, true
		}
	}

	return "", false
}
