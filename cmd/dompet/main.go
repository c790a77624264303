package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dompet",
	Short: "Personal finance tracker with a consistent multi-wallet ledger",
	Long: `Dompet keeps a multi-wallet ledger whose wallet balances are always
derivable from the transaction history, and serves derived analytics
(trends, category distributions, budget status, net worth) over HTTP.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
