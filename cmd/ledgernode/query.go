package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

// queryCmd and statisticsCmd are thin HTTP clients over a running
// node's unauthenticated read endpoints, grounded on the original
// tiaf-client binary's "query" and "statistics" subcommands.
func queryCmd() *cobra.Command {
	var nodeAddr string
	var inline string
	var file string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "run a query expression against a running node's chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inline != "" && file != "" {
				return fmt.Errorf("query: both --query and --file specified")
			}
			expr := inline
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("query: read file: %w", err)
				}
				expr = string(b)
			}
			if expr == "" {
				return fmt.Errorf("query: no query specified")
			}
			return readGet(nodeAddr, "/api/v1/query?q="+url.QueryEscape(expr))
		},
	}
	cmd.Flags().StringVar(&nodeAddr, "node", "http://127.0.0.1:8080", "base URL of the target node")
	cmd.Flags().StringVarP(&inline, "query", "q", "", "query the chain inline")
	cmd.Flags().StringVar(&file, "file", "", "query the chain from a file")
	return cmd
}

func statisticsCmd() *cobra.Command {
	var nodeAddr string
	cmd := &cobra.Command{
		Use:   "statistics",
		Short: "report a running node's chain length, pool size, and peer counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return readGet(nodeAddr, "/api/v1/statistics")
		},
	}
	cmd.Flags().StringVar(&nodeAddr, "node", "http://127.0.0.1:8080", "base URL of the target node")
	return cmd
}
