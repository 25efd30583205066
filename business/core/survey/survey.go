// Package survey implements the fetch, classify, aggregate, persist and
// render pipeline that every network runs through. The per-network behavior
// lives entirely in Chain configuration values; the pipeline itself is
// network agnostic.
package survey

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dancingsushii/blockchainAnalysis/business/sys/archive"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/layout"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/source"
	"github.com/dancingsushii/blockchainAnalysis/foundation/charts"
	"github.com/dancingsushii/blockchainAnalysis/foundation/countries"
	"github.com/dancingsushii/blockchainAnalysis/foundation/distribution"
	"github.com/dancingsushii/blockchainAnalysis/foundation/geodb"
)

// The distribution kinds a chain can produce.
const (
	KindGeographic = "geographic"
	KindClient     = "client"
	KindHosting    = "hosting"
)

// Deps carries the shared resources a chain's fetch and classify functions
// work with.
type Deps struct {
	Client *source.Client
	Geo    *geodb.Resolver
	Paths  layout.Paths
	Log    *zap.SugaredLogger
}

// Dimension describes one distribution a chain produces.
type Dimension struct {
	Kind string `validate:"required,oneof=geographic client hosting"`

	// Classify reduces a record to a category label. Returning false skips
	// the record for this dimension; skips are counted, never fatal.
	Classify func(deps Deps, r Record) (string, bool) `validate:"required"`

	// MinCount drops categories whose count is not strictly greater.
	MinCount int

	// MinPercentage drops categories whose share of the total falls below
	// the given percent. Applied after MinCount.
	MinPercentage float64

	// Percentages adds a percentage column to the persisted table, computed
	// before MinCount trimming.
	Percentages bool

	// ConvertCountries translates category codes to display names at
	// render time.
	ConvertCountries bool

	// LegendThreshold overrides the render threshold below which categories
	// fold into Others. Zero selects the 1.5% default.
	LegendThreshold float64
}

// Chain is the complete configuration for one network survey.
type Chain struct {
	Name    string `validate:"required,lowercase"`
	Display string `validate:"required"`

	// Fetch retrieves the raw node records. A nil Fetch marks a plot-only
	// chain whose CSVs are collected out of band.
	Fetch func(ctx context.Context, deps Deps) ([]Record, error)

	// CollectionMethod names how the snapshot is obtained (api, rpc, file)
	// for the raw archive.
	CollectionMethod string

	Dimensions []Dimension `validate:"min=1,dive"`
}

// PlotOnly reports whether this chain renders previously persisted data
// without fetching.
func (c Chain) PlotOnly() bool {
	return c.Fetch == nil
}

// Pipeline runs chains end to end.
type Pipeline struct {
	deps     Deps
	validate *validator.Validate
}

// NewPipeline constructs a pipeline around the shared dependencies.
func NewPipeline(deps Deps) *Pipeline {
	return &Pipeline{
		deps:     deps,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Run executes the full pipeline for a chain: fetch and persist the
// distributions, then render the charts. Rendering problems are logged and
// do not fail the run.
func (p *Pipeline) Run(ctx context.Context, chain Chain) error {
	if err := p.Process(ctx, chain); err != nil {
		return err
	}
	p.Plot(chain)
	return nil
}

// Process fetches the chain's snapshot, classifies and aggregates every
// dimension and persists the distribution tables. A fetch failure aborts
// with no partial output.
func (p *Pipeline) Process(ctx context.Context, chain Chain) error {
	if err := p.validate.Struct(chain); err != nil {
		return fmt.Errorf("invalid chain configuration %q: %w", chain.Name, err)
	}

	log := p.deps.Log

	if chain.PlotOnly() {
		log.Infow("process skipped, chain is plot only", "network", chain.Name)
		return nil
	}

	records, err := chain.Fetch(ctx, p.deps)
	if err != nil {
		return fmt.Errorf("fetching %s snapshot: %w", chain.Name, err)
	}
	log.Infow("snapshot fetched", "network", chain.Name, "records", len(records))

	if snap, err := archive.Write(p.deps.Paths.RawSnapshot(chain.Name), chain.Name, chain.CollectionMethod, records); err != nil {
		log.Errorw("archiving raw snapshot", "network", chain.Name, "ERROR", err)
	} else {
		log.Infow("raw snapshot archived", "network", chain.Name, "run", snap.RunID)
	}

	for _, dim := range chain.Dimensions {
		tbl, skipped := p.aggregate(chain, dim, records)

		path := p.deps.Paths.Distribution(chain.Name, dim.Kind)
		if err := tbl.Save(path); err != nil {
			return fmt.Errorf("persisting %s %s distribution: %w", chain.Name, dim.Kind, err)
		}

		log.Infow("distribution persisted",
			"network", chain.Name,
			"kind", dim.Kind,
			"categories", tbl.Len(),
			"nodes", tbl.Total(),
			"skipped", skipped,
			"path", path,
		)
	}

	return nil
}

// aggregate classifies the records for one dimension and builds the
// trimmed distribution table.
func (p *Pipeline) aggregate(chain Chain, dim Dimension, records []Record) (distribution.Table, int) {
	counter := distribution.NewCounter()
	var skipped int

	for _, r := range records {
		label, ok := dim.Classify(p.deps, r)
		if !ok {
			skipped++
			continue
		}
		counter.AddN(label, r.Weight())
	}

	tbl := counter.Table()
	if dim.Percentages {
		tbl = tbl.Percentages()
	}
	if dim.MinCount > 0 {
		tbl = tbl.MinCount(dim.MinCount)
	}
	if dim.MinPercentage > 0 {
		tbl = tbl.MinPercentage(dim.MinPercentage)
	}

	return tbl, skipped
}

// Plot renders the persisted distributions for a chain. Each render is best
// effort: failures are logged and the remaining charts still render.
func (p *Pipeline) Plot(chain Chain) {
	log := p.deps.Log

	for _, dim := range chain.Dimensions {
		path := p.deps.Paths.Distribution(chain.Name, dim.Kind)

		tbl, err := distribution.Load(path)
		if err != nil {
			log.Errorw("loading distribution", "network", chain.Name, "kind", dim.Kind, "ERROR", err)
			continue
		}

		cfg := charts.PieConfig{
			Title:     fmt.Sprintf("%s %s distribution", chain.Display, dim.Kind),
			Output:    p.deps.Paths.Plot(chain.Name, dim.Kind),
			Threshold: dim.LegendThreshold,
		}
		if dim.ConvertCountries {
			cfg.Translate = countries.Name
		}

		if err := charts.Pie(tbl, cfg); err != nil {
			log.Errorw("rendering chart", "network", chain.Name, "kind", dim.Kind, "ERROR", err)
			continue
		}

		log.Infow("chart rendered", "network", chain.Name, "kind", dim.Kind, "path", cfg.Output)
	}
}

// PlotGeoBars renders a geographic bar chart for every network that has a
// persisted geographic distribution.
func (p *Pipeline) PlotGeoBars(chains []Chain) {
	log := p.deps.Log

	for _, chain := range chains {
		path := p.deps.Paths.Distribution(chain.Name, KindGeographic)

		tbl, err := distribution.Load(path)
		if err != nil {
			log.Infow("no geographic distribution", "network", chain.Name)
			continue
		}

		cfg := charts.BarConfig{
			Title:     fmt.Sprintf("%s Geographic Distribution", chain.Display),
			Output:    p.deps.Paths.GeoBarPlot(chain.Name),
			YAxisName: "Nodes",
			Translate: countries.Name,
		}

		if err := charts.Bar(tbl, cfg); err != nil {
			log.Errorw("rendering geographic bar chart", "network", chain.Name, "ERROR", err)
			continue
		}

		log.Infow("geographic bar chart rendered", "network", chain.Name, "path", cfg.Output)
	}
}
