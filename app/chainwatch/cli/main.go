package main

import (
	"github.com/dancingsushii/blockchainAnalysis/app/chainwatch/cli/cmd"
)

func main() {
	cmd.Execute()
}
