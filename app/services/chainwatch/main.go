package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"go.uber.org/zap"

	"github.com/dancingsushii/blockchainAnalysis/business/core/nodecount"
	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/business/core/survey/chains"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/layout"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/source"
	"github.com/dancingsushii/blockchainAnalysis/foundation/geodb"
	"github.com/dancingsushii/blockchainAnalysis/foundation/logger"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("CHAINWATCH")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Survey struct {
			Networks    []string      `conf:"default:all,help:networks to survey or all"`
			DataDir     string        `conf:"default:data"`
			PlotsDir    string        `conf:"default:plots"`
			CountryDB   string        `conf:"default:data/GeoLite2-Country.mmdb"`
			ASNDB       string        `conf:"default:data/GeoLite2-ASN.mmdb"`
			HTTPTimeout time.Duration `conf:"default:10s"`
			NodeCounts  bool          `conf:"default:true,help:collect total node counts after the surveys"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "blockchain node distribution surveys",
		},
	}

	const prefix = "CHAINWATCH"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting survey run", "version", build)
	defer log.Infow("run complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Shared Dependencies

	geo, err := geodb.Open(geodb.Databases{Country: cfg.Survey.CountryDB, ASN: cfg.Survey.ASNDB})
	if err != nil {
		return err
	}
	defer geo.Close()

	deps := survey.Deps{
		Client: source.NewClient(cfg.Survey.HTTPTimeout),
		Geo:    geo,
		Paths:  layout.New(cfg.Survey.DataDir, cfg.Survey.PlotsDir),
		Log:    log,
	}

	selected, err := selectChains(cfg.Survey.Networks)
	if err != nil {
		return err
	}

	// A run is interruptible between networks. The signal cancels the shared
	// context and the current fetch returns early.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// =========================================================================
	// Survey Pipelines

	pipeline := survey.NewPipeline(deps)

	var failures int
	for _, chain := range selected {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := pipeline.Run(ctx, chain); err != nil {
			log.Errorw("pipeline failed", "network", chain.Name, "ERROR", err)
			failures++
		}
	}
	pipeline.PlotGeoBars(selected)

	// =========================================================================
	// Node Counts

	if cfg.Survey.NodeCounts {
		collector := nodecount.NewCollector(nodecount.Deps{
			Client: deps.Client,
			Paths:  deps.Paths,
			Log:    log,
		})

		report, err := collector.Collect(ctx)
		if err != nil {
			return err
		}
		if _, err := collector.Save(report); err != nil {
			return err
		}
		if _, err := collector.Plot(report); err != nil {
			return err
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d networks failed", failures, len(selected))
	}
	return nil
}

// selectChains resolves the configured network list, where "all" selects
// every supported network.
func selectChains(networks []string) ([]survey.Chain, error) {
	if len(networks) == 1 && strings.EqualFold(networks[0], "all") {
		return chains.All(), nil
	}

	selected := make([]survey.Chain, 0, len(networks))
	for _, name := range networks {
		chain, err := chains.Lookup(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, chain)
	}

	return selected, nil
}
