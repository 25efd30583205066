// Package nodecount collects the total reachable node count of every
// network into one timestamped report and renders the comparison chart.
// The counts come from the same directories the surveys use, but only the
// headline number is kept.
package nodecount

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dancingsushii/blockchainAnalysis/business/sys/layout"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/source"
	"github.com/dancingsushii/blockchainAnalysis/foundation/charts"
	"github.com/dancingsushii/blockchainAnalysis/foundation/distribution"
)

// timestampFormat orders report files lexicographically by collection time.
const timestampFormat = "2006-01-02_15-04-05"

// Deps carries the shared resources the count fetchers work with.
type Deps struct {
	Client *source.Client
	Paths  layout.Paths
	Log    *zap.SugaredLogger
}

// Report is one collection run. Networks whose fetch failed are absent
// from Data rather than zero.
type Report struct {
	Timestamp string         `json:"timestamp"`
	Data      map[string]int `json:"data"`
	FetchTime time.Time      `json:"fetch_time"`
}

// Collector gathers the per-network totals.
type Collector struct {
	deps     Deps
	fetchers []fetcher
}

type fetcher struct {
	Name  string
	Fetch func(ctx context.Context, deps Deps) (int, error)
}

// NewCollector constructs a collector covering every supported network.
func NewCollector(deps Deps) *Collector {
	return &Collector{
		deps: deps,
		fetchers: []fetcher{
			{"Algorand", fetchAlgorand},
			{"Bitcoin", fetchBitcoin},
			{"Bitcoin Cash", blockchairCount("https://api.blockchair.com/bitcoin-cash/nodes")},
			{"Cardano", fetchCardano},
			{"Dogecoin", blockchairCount("https://api.blockchair.com/dogecoin/nodes")},
			{"Ethereum", fetchEthereum},
			{"Ethereum Classic", fetchEthereumClassic},
			{"Litecoin", blockchairCount("https://api.blockchair.com/litecoin/nodes")},
			{"NEAR", fetchNear},
			{"Polkadot", fetchPolkadot},
			{"Polygon", fetchPolygon},
			{"Ripple", fetchRipple},
			{"Solana", fetchSolana},
			{"Stellar", fetchStellar},
			{"Tezos", fetchTezos},
		},
	}
}

// Collect fetches every network's total. Individual failures are logged
// and leave a gap in the report; only an empty report is an error.
func (c *Collector) Collect(ctx context.Context) (Report, error) {
	report := Report{
		Timestamp: time.Now().Format(timestampFormat),
		Data:      make(map[string]int),
		FetchTime: time.Now(),
	}

	for _, f := range c.fetchers {
		count, err := f.Fetch(ctx, c.deps)
		if err != nil {
			c.deps.Log.Errorw("fetching node count", "network", f.Name, "ERROR", err)
			continue
		}

		c.deps.Log.Infow("node count fetched", "network", f.Name, "count", count)
		report.Data[f.Name] = count
	}

	if len(report.Data) == 0 {
		return Report{}, fmt.Errorf("no node counts could be collected")
	}

	return report, nil
}

// Save writes the report as a timestamped JSON document.
func (c *Collector) Save(report Report) (string, error) {
	path := c.deps.Paths.NodeCounts(report.Timestamp)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating node counts directory: %w", err)
	}

	doc, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	return path, nil
}

// LoadLatest reads the most recent saved report.
func (c *Collector) LoadLatest() (Report, error) {
	pattern := filepath.Join(c.deps.Paths.NodeCountsDir(), "node_counts_*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return Report{}, fmt.Errorf("listing reports: %w", err)
	}
	if len(matches) == 0 {
		return Report{}, fmt.Errorf("no node count reports under %s", c.deps.Paths.NodeCountsDir())
	}

	sort.Strings(matches)
	latest := matches[len(matches)-1]

	doc, err := os.ReadFile(latest)
	if err != nil {
		return Report{}, fmt.Errorf("reading %s: %w", latest, err)
	}

	var report Report
	if err := json.Unmarshal(doc, &report); err != nil {
		return Report{}, fmt.Errorf("decoding %s: %w", latest, err)
	}

	return report, nil
}

// Plot renders the report as a bar chart, networks ordered by node count.
func (c *Collector) Plot(report Report) (string, error) {
	counter := distribution.NewCounter()
	for network, count := range report.Data {
		counter.AddN(network, count)
	}

	cfg := charts.BarConfig{
		Title:     "Total node count per network",
		Output:    c.deps.Paths.NodeCountsPlot(report.Timestamp),
		YAxisName: "Number of nodes",
	}

	if err := charts.Bar(counter.Table(), cfg); err != nil {
		return "", err
	}

	return cfg.Output, nil
}

func fetchTezos(ctx context.Context, deps Deps) (int, error) {
	var stats struct {
		Heatmap []struct {
			Count int `json:"count"`
		} `json:"heatmap"`
	}
	if err := deps.Client.GetJSON(ctx, "https://services.tzkt.io/v1/nodes/stats", nil, &stats); err != nil {
		return 0, err
	}

	var total int
	for _, entry := range stats.Heatmap {
		total += entry.Count
	}
	return total, nil
}

func fetchEthereum(ctx context.Context, deps Deps) (int, error) {
	key := os.Getenv("ETHERSCAN_API_KEY")
	if key == "" {
		return 0, fmt.Errorf("ETHERSCAN_API_KEY is not set")
	}

	var resp struct {
		Status string `json:"status"`
		Result struct {
			TotalNodeCount string `json:"TotalNodeCount"`
		} `json:"result"`
	}

	url := "https://api.etherscan.io/api?module=stats&action=nodecount&apikey=" + key
	if err := deps.Client.GetJSON(ctx, url, nil, &resp); err != nil {
		return 0, err
	}
	if resp.Status != "1" {
		return 0, fmt.Errorf("etherscan returned status %q", resp.Status)
	}

	return strconv.Atoi(resp.Result.TotalNodeCount)
}

func fetchBitcoin(ctx context.Context, deps Deps) (int, error) {
	var snap struct {
		TotalNodes int `json:"total_nodes"`
	}
	if err := deps.Client.GetJSON(ctx, "https://bitnodes.io/api/v1/snapshots/latest/", nil, &snap); err != nil {
		return 0, err
	}
	return snap.TotalNodes, nil
}

func fetchEthereumClassic(ctx context.Context, deps Deps) (int, error) {
	var peers []json.RawMessage
	if err := deps.Client.GetJSON(ctx, "https://api.etcnodes.org/peers?all=true", nil, &peers); err != nil {
		return 0, err
	}
	return len(peers), nil
}

func fetchCardano(ctx context.Context, deps Deps) (int, error) {
	headers := map[string]string{"project_id": os.Getenv("BLOCKFROST_PROJECT_ID")}

	var total int
	for page := 1; ; page++ {
		var pools []json.RawMessage
		url := fmt.Sprintf("https://cardano-mainnet.blockfrost.io/api/v0/pools/extended?count=100&page=%d", page)
		if err := deps.Client.GetJSON(ctx, url, headers, &pools); err != nil {
			return 0, err
		}

		total += len(pools)
		if len(pools) < 100 {
			break
		}
	}

	if total == 0 {
		return 0, fmt.Errorf("no pools returned")
	}
	return total, nil
}

func fetchSolana(ctx context.Context, deps Deps) (int, error) {
	var nodes []json.RawMessage
	if err := source.RPCCall(ctx, "https://api.mainnet-beta.solana.com", &nodes, "getClusterNodes"); err != nil {
		return 0, err
	}
	return len(nodes), nil
}

func fetchNear(ctx context.Context, deps Deps) (int, error) {
	var info struct {
		ActivePeers []json.RawMessage `json:"active_peers"`
	}
	if err := source.RPCCall(ctx, "https://rpc.mainnet.near.org", &info, "network_info"); err != nil {
		return 0, err
	}
	return len(info.ActivePeers), nil
}

func fetchStellar(ctx context.Context, deps Deps) (int, error) {
	var nodes []json.RawMessage
	if err := deps.Client.GetJSON(ctx, "https://api.stellarbeat.io/v1/node", nil, &nodes); err != nil {
		return 0, err
	}
	return len(nodes), nil
}

func blockchairCount(endpoint string) func(ctx context.Context, deps Deps) (int, error) {
	return func(ctx context.Context, deps Deps) (int, error) {
		var resp struct {
			Data struct {
				Nodes map[string]json.RawMessage `json:"nodes"`
			} `json:"data"`
		}
		if err := deps.Client.GetJSON(ctx, endpoint, nil, &resp); err != nil {
			return 0, err
		}
		return len(resp.Data.Nodes), nil
	}
}

func fetchRipple(ctx context.Context, deps Deps) (int, error) {
	sess, err := source.DialWS(ctx, "wss://s1.ripple.com")
	if err != nil {
		return 0, err
	}
	defer sess.Close()

	var result struct {
		Info struct {
			Peers int `json:"peers"`
		} `json:"info"`
	}
	if err := sess.Command("server_info", &result); err != nil {
		return 0, err
	}

	return result.Info.Peers, nil
}

// fetchAlgorand reads the Nodely export, whose last line carries the
// current relay count in its third column.
func fetchAlgorand(ctx context.Context, deps Deps) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	doc, err := os.ReadFile(deps.Paths.RawFile("algorand", "algorand_nodes.csv"))
	if err != nil {
		return 0, err
	}

	lines := strings.Split(strings.TrimSpace(string(doc)), "\n")
	if len(lines) == 0 {
		return 0, fmt.Errorf("empty export")
	}

	values := strings.Split(strings.TrimSpace(lines[len(lines)-1]), ",")
	if len(values) < 3 {
		return 0, fmt.Errorf("malformed export line %q", lines[len(lines)-1])
	}

	return strconv.Atoi(values[2])
}

func fetchPolkadot(ctx context.Context, deps Deps) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	doc, err := os.ReadFile(deps.Paths.RawFile("polkadot", "nebula_crawl.json"))
	if err != nil {
		return 0, err
	}

	var summary struct {
		CrawledPeers int `json:"crawled_peers"`
	}
	if err := json.Unmarshal(doc, &summary); err != nil {
		return 0, err
	}
	if summary.CrawledPeers == 0 {
		return 0, fmt.Errorf("crawled_peers missing from crawl summary")
	}

	return summary.CrawledPeers, nil
}

func fetchPolygon(ctx context.Context, deps Deps) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	return source.CountCSVRows(deps.Paths.RawFile("polygon", "polygon_nodes.csv"))
}
