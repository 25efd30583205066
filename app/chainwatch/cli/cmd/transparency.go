package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dancingsushii/blockchainAnalysis/business/core/transparency"
	"github.com/dancingsushii/blockchainAnalysis/business/sys/layout"
)

func init() {
	rootCmd.AddCommand(transparencyCmd)
}

var transparencyCmd = &cobra.Command{
	Use:   "transparency",
	Short: "Export the transparency score matrix and render the ranking chart",
	RunE:  runTransparency,
}

func runTransparency(cmd *cobra.Command, args []string) error {
	paths := layout.New(dataDir, plotsDir)

	if err := transparency.SaveMatrix(paths.TransparencyMatrix()); err != nil {
		return err
	}

	return transparency.Plot(paths)
}
