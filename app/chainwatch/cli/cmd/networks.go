package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dancingsushii/blockchainAnalysis/business/core/survey/chains"
)

func init() {
	rootCmd.AddCommand(networksCmd)
}

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List the supported networks",
	Run:   runNetworks,
}

func runNetworks(cmd *cobra.Command, args []string) {
	for _, chain := range chains.All() {
		kinds := make([]string, len(chain.Dimensions))
		for i, dim := range chain.Dimensions {
			kinds[i] = dim.Kind
		}

		mode := chain.CollectionMethod
		if chain.PlotOnly() {
			mode += ", plot only"
		}

		fmt.Printf("%-18s %-24s %s\n", chain.Name, mode, strings.Join(kinds, ", "))
	}
}
