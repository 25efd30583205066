package chains

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/source"
)

const blockfrostBase = "https://cardano-mainnet.blockfrost.io/api/v0"

// blockfrostPageSize is the maximum page size the Blockfrost API serves.
const blockfrostPageSize = 100

// blockfrostRelay is one relay of a stake pool.
type blockfrostRelay struct {
	IPv4 string `json:"ipv4"`
	IPv6 string `json:"ipv6"`
	DNS  string `json:"dns"`
	Port int    `json:"port"`
}

// Cardano surveys the relays of every registered stake pool through the
// Blockfrost API. The pool list is one call, the relays need one call per
// pool, spaced out to stay inside the rate limit.
func Cardano() survey.Chain {
	return survey.Chain{
		Name:             "cardano",
		Display:          "Cardano",
		CollectionMethod: "api",
		Fetch:            fetchCardano,
		Dimensions: []survey.Dimension{
			{
				Kind:             survey.KindGeographic,
				Classify:         ipCountry("addr"),
				ConvertCountries: true,
			},
			{
				Kind:        survey.KindHosting,
				Classify:    ipHosting("addr", []string{"relay", "pool", "stake", "r1", "r2", "mainnet"}),
				MinCount:    1,
				Percentages: true,
			},
		},
	}
}

func fetchCardano(ctx context.Context, deps survey.Deps) ([]survey.Record, error) {
	headers := map[string]string{"project_id": blockfrostProjectID()}

	pools, err := blockfrostPools(ctx, deps.Client, blockfrostBase, headers)
	if err != nil {
		return nil, err
	}
	deps.Log.Infow("pool list fetched", "network", "cardano", "pools", len(pools))

	var records []survey.Record
	for _, poolID := range pools {
		var relays []blockfrostRelay
		url := fmt.Sprintf("%s/pools/%s/relays", blockfrostBase, poolID)
		if err := deps.Client.GetJSON(ctx, url, headers, &relays); err != nil {
			deps.Log.Infow("relay lookup failed", "network", "cardano", "pool", poolID, "ERROR", err)
			continue
		}

		for _, relay := range relays {
			addr := relay.IPv4
			if addr == "" {
				addr = relay.IPv6
			}
			if addr == "" {
				continue
			}
			records = append(records, survey.Record{
				"pool": poolID,
				"addr": addr,
			})
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	return records, nil
}

// blockfrostPools walks the paginated pool list. A page shorter than the
// page size signals the end of the list.
func blockfrostPools(ctx context.Context, client *source.Client, base string, headers map[string]string) ([]string, error) {
	var pools []string
	for page := 1; ; page++ {
		var batch []string
		url := fmt.Sprintf("%s/pools?count=%d&page=%d", base, blockfrostPageSize, page)
		if err := client.GetJSON(ctx, url, headers, &batch); err != nil {
			return nil, err
		}

		pools = append(pools, batch...)
		if len(batch) < blockfrostPageSize {
			break
		}
	}
	return pools, nil
}

// blockfrostProjectID returns the Blockfrost project token. The value comes
// from the environment so keys stay out of the repository.
func blockfrostProjectID() string {
	return os.Getenv("BLOCKFROST_PROJECT_ID")
}
