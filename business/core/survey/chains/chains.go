// Package chains holds the per-network survey configurations. Each network
// is a Chain value: an endpoint, field extractors and classification tables.
// The pipeline in the survey package treats them all the same way.
package chains

import (
	"fmt"
	"sort"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/foundation/geodb"
)

// All returns every supported chain, ordered by name.
func All() []survey.Chain {
	chains := []survey.Chain{
		Algorand(),
		Bitcoin(),
		BitcoinCash(),
		Cardano(),
		Dogecoin(),
		Ethereum(),
		EthereumClassic(),
		Litecoin(),
		Near(),
		Polkadot(),
		Polygon(),
		Ripple(),
		Solana(),
		Stellar(),
		Tezos(),
	}

	sort.Slice(chains, func(i, j int) bool {
		return chains[i].Name < chains[j].Name
	})

	return chains
}

// Lookup returns the chain with the specified name.
func Lookup(name string) (survey.Chain, error) {
	for _, chain := range All() {
		if chain.Name == name {
			return chain, nil
		}
	}
	return survey.Chain{}, fmt.Errorf("unknown network %q", name)
}

// ipCountry builds a geographic classifier that resolves the record's
// address field through the country database. Records without a usable IP
// or without a database entry are skipped.
func ipCountry(addrField string) func(survey.Deps, survey.Record) (string, bool) {
	return func(deps survey.Deps, r survey.Record) (string, bool) {
		ip, ok := geodb.CanonicalIP(r.Str(addrField))
		if !ok {
			return "", false
		}

		code, err := deps.Geo.CountryCode(ip)
		if err != nil {
			return "", false
		}

		return code, true
	}
}

// ipHosting builds a hosting classifier that resolves the record's address
// field through the ASN database and reduces the organization name with the
// provider alias table.
func ipHosting(addrField string, exclusions []string) func(survey.Deps, survey.Record) (string, bool) {
	return func(deps survey.Deps, r survey.Record) (string, bool) {
		ip, ok := geodb.CanonicalIP(r.Str(addrField))
		if !ok {
			return "", false
		}

		org, err := deps.Geo.ASNOrganization(ip)
		if err != nil {
			return "", false
		}

		return survey.HostingLabel(org, exclusions)
	}
}

// ipHostingOrUnknown is ipHosting for the directories that bucket every
// resolution failure as "Unknown" instead of dropping the record.
func ipHostingOrUnknown(addrField string) func(survey.Deps, survey.Record) (string, bool) {
	return func(deps survey.Deps, r survey.Record) (string, bool) {
		ip, ok := geodb.CanonicalIP(r.Str(addrField))
		if !ok {
			return "Unknown", true
		}

		org, err := deps.Geo.ASNOrganization(ip)
		if err != nil {
			return "Unknown", true
		}

		label, ok := survey.HostingLabel(org, nil)
		if !ok {
			return "Unknown", true
		}

		return label, true
	}
}
