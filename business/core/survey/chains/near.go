package chains

import (
	"context"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/source"
)

const nearEndpoint = "https://rpc.mainnet.near.org"

// nearNetworkInfo is the slice of a network_info result the survey uses.
type nearNetworkInfo struct {
	ActivePeers []struct {
		ID        string `json:"id"`
		Addr      string `json:"addr"`
		AccountID string `json:"account_id"`
	} `json:"active_peers"`
}

// Near surveys the active peers a mainnet RPC node reports. Peers whose
// address cannot be resolved count as Unknown in the hosting distribution.
func Near() survey.Chain {
	return survey.Chain{
		Name:             "near",
		Display:          "NEAR",
		CollectionMethod: "rpc",
		Fetch:            fetchNear,
		Dimensions: []survey.Dimension{
			{
				Kind:             survey.KindGeographic,
				Classify:         ipCountry("addr"),
				ConvertCountries: true,
			},
			{
				Kind:     survey.KindHosting,
				Classify: ipHostingOrUnknown("addr"),
			},
		},
	}
}

func fetchNear(ctx context.Context, deps survey.Deps) ([]survey.Record, error) {
	var info nearNetworkInfo
	if err := source.RPCCall(ctx, nearEndpoint, &info, "network_info"); err != nil {
		return nil, err
	}

	records := make([]survey.Record, 0, len(info.ActivePeers))
	for _, peer := range info.ActivePeers {
		records = append(records, survey.Record{
			"id":   peer.ID,
			"addr": peer.Addr,
		})
	}

	return records, nil
}
