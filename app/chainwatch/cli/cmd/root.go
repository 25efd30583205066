// Package cmd contains the chainwatch command line tool.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/layout"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/source"
	"github.com/dancingsushii/blockchainAnalysis/foundation/geodb"
	"github.com/dancingsushii/blockchainAnalysis/foundation/logger"
)

var (
	dataDir   string
	plotsDir  string
	countryDB string
	asnDB     string
	timeout   time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "data", "Path to the data directory.")
	rootCmd.PersistentFlags().StringVarP(&plotsDir, "plots", "p", "plots", "Path to the plots directory.")
	rootCmd.PersistentFlags().StringVar(&countryDB, "country-db", "data/GeoLite2-Country.mmdb", "Path to the GeoLite2 country database.")
	rootCmd.PersistentFlags().StringVar(&asnDB, "asn-db", "data/GeoLite2-ASN.mmdb", "Path to the GeoLite2 ASN database.")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "HTTP request timeout.")
}

var rootCmd = &cobra.Command{
	Use:   "chainwatch",
	Short: "Blockchain node distribution surveys",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newDeps wires the shared pipeline dependencies from the persistent flags.
// The returned close function releases the GeoIP readers.
func newDeps() (survey.Deps, func(), error) {
	log, err := logger.New("CHAINWATCH")
	if err != nil {
		return survey.Deps{}, nil, fmt.Errorf("constructing logger: %w", err)
	}

	geo, err := geodb.Open(geodb.Databases{Country: countryDB, ASN: asnDB})
	if err != nil {
		log.Sync()
		return survey.Deps{}, nil, err
	}

	deps := survey.Deps{
		Client: source.NewClient(timeout),
		Geo:    geo,
		Paths:  layout.New(dataDir, plotsDir),
		Log:    log,
	}

	close := func() {
		geo.Close()
		log.Sync()
	}

	return deps, close, nil
}
