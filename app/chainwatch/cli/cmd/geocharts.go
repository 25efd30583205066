package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/business/core/survey/chains"
)

func init() {
	rootCmd.AddCommand(geochartsCmd)
}

var geochartsCmd = &cobra.Command{
	Use:   "geocharts",
	Short: "Render geographic bar charts for every network with persisted data",
	RunE:  runGeocharts,
}

func runGeocharts(cmd *cobra.Command, args []string) error {
	deps, close, err := newDeps()
	if err != nil {
		return err
	}
	defer close()

	survey.NewPipeline(deps).PlotGeoBars(chains.All())
	return nil
}
