package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// chainCmd mirrors the original tiaf-client's "chain" subcommand
// group: full-read, tail (by block count), and since (by hash).
func chainCmd() *cobra.Command {
	var nodeAddr string
	cmd := &cobra.Command{Use: "chain", Short: "read a running node's chain"}
	cmd.PersistentFlags().StringVar(&nodeAddr, "node", "http://127.0.0.1:8080", "base URL of the target node")

	cmd.AddCommand(&cobra.Command{
		Use:   "full-read",
		Short: "read the full chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			return readGet(nodeAddr, "/api/v1/chain")
		},
	})

	var tailN uint64
	tailCmd := &cobra.Command{
		Use:   "tail",
		Short: "read the last n blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return readGet(nodeAddr, fmt.Sprintf("/api/v1/chain/tail/%d", tailN))
		},
	}
	tailCmd.Flags().Uint64VarP(&tailN, "number", "n", 10, "number of trailing blocks to read")
	cmd.AddCommand(tailCmd)

	var sinceHash string
	sinceCmd := &cobra.Command{
		Use:   "since",
		Short: "read blocks appended after the given hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sinceHash == "" {
				return fmt.Errorf("chain since: --hash is required")
			}
			return readGet(nodeAddr, "/api/v1/chain/since/"+sinceHash)
		},
	}
	sinceCmd.Flags().StringVarP(&sinceHash, "hash", "a", "", "read blocks after hash H")
	cmd.AddCommand(sinceCmd)

	return cmd
}
