package main

import (
	"os"

	"github.com/arthur-debert/templating/cmd/templating"
)

func main() {
	rootCmd := templating.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		templating.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
