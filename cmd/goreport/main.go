// Package main provides the goreport CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "goreport",
		Short: "Generate PDF and spreadsheet reports from JSON data",
		Long: `goreport merges JSON data into HTML templates and renders the result as a
PDF document, or builds a styled workbook straight from the data.

Example:
  goreport serve --config goreport.yaml
  goreport generate --request request.json --out report.pdf
  goreport resolve --template invoice.html --data invoice.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (env overrides still apply)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newGenerateCmd(&configPath))
	root.AddCommand(newScreenshotCmd(&configPath))
	root.AddCommand(newResolveCmd(&configPath))
	return root
}
