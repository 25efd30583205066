package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dancingsushii/blockchainAnalysis/business/core/nodecount"
)

var nodecountPlotOnly bool

func init() {
	nodecountCmd.Flags().BoolVar(&nodecountPlotOnly, "plot-only", false, "Render the chart from the latest saved report.")
	rootCmd.AddCommand(nodecountCmd)
}

var nodecountCmd = &cobra.Command{
	Use:   "nodecount",
	Short: "Collect total node counts across all networks and render the comparison chart",
	RunE:  runNodecount,
}

func runNodecount(cmd *cobra.Command, args []string) error {
	deps, close, err := newDeps()
	if err != nil {
		return err
	}
	defer close()

	collector := nodecount.NewCollector(nodecount.Deps{
		Client: deps.Client,
		Paths:  deps.Paths,
		Log:    deps.Log,
	})

	var report nodecount.Report
	if nodecountPlotOnly {
		report, err = collector.LoadLatest()
		if err != nil {
			return err
		}
	} else {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		report, err = collector.Collect(ctx)
		if err != nil {
			return err
		}

		path, err := collector.Save(report)
		if err != nil {
			return err
		}
		deps.Log.Infow("node counts saved", "path", path, "networks", len(report.Data))
	}

	path, err := collector.Plot(report)
	if err != nil {
		return err
	}
	deps.Log.Infow("node count chart rendered", "path", path)

	return nil
}
