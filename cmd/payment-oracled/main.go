package main

import (
	"fmt"
	"os"

	"github.com/payment-oracle/cosmos/cmd/payment-oracled/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
