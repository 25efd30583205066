package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey"
	"github.com/dancingsushii/blockchainAnalysis/business/core/survey/chains"
)

var (
	processOnly bool
	plotOnly    bool
)

func init() {
	runCmd.Flags().BoolVar(&processOnly, "process-only", false, "Fetch and persist the distributions without rendering.")
	runCmd.Flags().BoolVar(&plotOnly, "plot-only", false, "Render charts from previously persisted distributions.")
	runCmd.MarkFlagsMutuallyExclusive("process-only", "plot-only")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <network>|all",
	Short: "Run the survey pipeline for one network or all of them",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	deps, close, err := newDeps()
	if err != nil {
		return err
	}
	defer close()

	var selected []survey.Chain
	if args[0] == "all" {
		selected = chains.All()
	} else {
		chain, err := chains.Lookup(args[0])
		if err != nil {
			return err
		}
		selected = []survey.Chain{chain}
	}

	pipeline := survey.NewPipeline(deps)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var failures int
	for _, chain := range selected {
		var err error
		switch {
		case plotOnly:
			pipeline.Plot(chain)
		case processOnly:
			err = pipeline.Process(ctx, chain)
		default:
			err = pipeline.Run(ctx, chain)
		}

		if err != nil {
			deps.Log.Errorw("pipeline failed", "network", chain.Name, "ERROR", err)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d networks failed", failures, len(selected))
	}
	return nil
}
