package chains

import (
	"context"
	"strings"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
)

const bitnodesEndpoint = "https://bitnodes.io/api/v1/snapshots/latest/"

// bitcoinClients maps the user agent token to the canonical client name.
// Tokens outside this table are dropped from the client distribution.
var bitcoinClients = map[string]string{
	"Satoshi":    "Bitcoin Core",
	"btcwire":    "btcd",
	"bcoin":      "bcoin",
	"libbitcoin": "libbitcoin",
}

// bitcoinInvalid marks user agents of forks and vanity patches that are not
// counted as any client.
var bitcoinInvalid = []string{
	"BTF", "CKCoinD", "Aurum", "Statoshi", "\U0001F64F", "Ladybug",
	"Classic", "ABC", "Unlimited", "Natasha",
}

// bitnodesSnapshot is the shape of the bitnodes snapshot document. Each node
// is a positional array: user agent at index 1, hostname at 5, country code
// at 7, network tag at 11.
type bitnodesSnapshot struct {
	TotalNodes int              `json:"total_nodes"`
	Nodes      map[string][]any `json:"nodes"`
}

// Bitcoin surveys the bitnodes snapshot of reachable Bitcoin nodes.
func Bitcoin() survey.Chain {
	return survey.Chain{
		Name:             "bitcoin",
		Display:          "Bitcoin",
		CollectionMethod: "api",
		Fetch:            fetchBitcoin,
		Dimensions: []survey.Dimension{
			{
				Kind:             survey.KindGeographic,
				Classify:         bitcoinCountry,
				ConvertCountries: true,
			},
			{
				Kind:     survey.KindClient,
				Classify: bitcoinClient,
				MinCount: 1,
			},
			{
				Kind:     survey.KindHosting,
				Classify: bitcoinHosting,
			},
		},
	}
}

func fetchBitcoin(ctx context.Context, deps survey.Deps) ([]survey.Record, error) {
	var snap bitnodesSnapshot
	if err := deps.Client.GetJSON(ctx, bitnodesEndpoint, nil, &snap); err != nil {
		return nil, err
	}
	deps.Log.Infow("bitnodes snapshot", "total_nodes", snap.TotalNodes)

	at := func(fields []any, i int) string {
		if i < len(fields) {
			if s, ok := fields[i].(string); ok {
				return s
			}
		}
		return ""
	}

	records := make([]survey.Record, 0, len(snap.Nodes))
	for addr, fields := range snap.Nodes {
		records = append(records, survey.Record{
			"addr":     addr,
			"version":  at(fields, 1),
			"hostname": at(fields, 5),
			"country":  at(fields, 7),
			"network":  at(fields, 11),
		})
	}

	return records, nil
}

func bitcoinCountry(_ survey.Deps, r survey.Record) (string, bool) {
	country := r.Str("country")
	if country == "" || country == "null" || country == "TOR" {
		return "", false
	}
	return country, true
}

func bitcoinClient(_ survey.Deps, r survey.Record) (string, bool) {
	version := survey.NormalizeVersion(r.Str("version"))
	if version == "" {
		return "", false
	}

	if strings.Contains(version, "Knots") {
		return "Bitcoin Knots", true
	}

	parts := strings.Split(version, ":")
	if len(parts) < 2 {
		return "", false
	}

	for _, keyword := range bitcoinInvalid {
		if strings.Contains(version, keyword) {
			return "", false
		}
	}

	client, ok := bitcoinClients[parts[0]]
	return client, ok
}

func bitcoinHosting(_ survey.Deps, r survey.Record) (string, bool) {
	if r.Str("network") == "TOR" {
		return "", false
	}

	hostname := r.Str("hostname")
	if hostname == "" {
		return "", false
	}

	lower := strings.ToLower(hostname)
	switch {
	case strings.HasSuffix(hostname, ".amazonaws.com"):
		return "Amazon Web Services", true
	case strings.HasSuffix(hostname, ".googleusercontent.com"):
		return "Google Cloud Platform", true
	case strings.Contains(lower, "hetzner"):
		return "Hetzner", true
	case strings.Contains(lower, "netcup"):
		return "Netcup", true
	}

	return hostname, true
}
