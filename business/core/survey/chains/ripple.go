package chains

import (
	"context"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/source"
)

const rippleEndpoint = "wss://s1.ripple.com"

// ripplePeers is the result of the peers command. Addresses arrive as
// host:port, often with an IPv4-mapped IPv6 host.
type ripplePeers struct {
	Peers []struct {
		Address string `json:"address"`
		Version string `json:"version"`
	} `json:"peers"`
}

// Ripple surveys the peers a public rippled server is connected to, over
// the XRPL websocket API. Unresolvable peers count as Unknown hosting.
func Ripple() survey.Chain {
	return survey.Chain{
		Name:             "ripple",
		Display:          "Ripple",
		CollectionMethod: "rpc",
		Fetch:            fetchRipple,
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

func fetchRipple(ctx context.Context, deps survey.Deps) ([]survey.Record, error) {
	sess, err := source.DialWS(ctx, rippleEndpoint)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	var result ripplePeers
	if err := sess.Command("peers", &result); err != nil {
		return nil, err
	}

	records := make([]survey.Record, 0, len(result.Peers))
	for _, peer := range result.Peers {
		records = append(records, survey.Record{
			"addr":    peer.Address,
			"version": peer.Version,
		})
	}

	return records, nil
}
