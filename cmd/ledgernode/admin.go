package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"tiafledger/wire"
)

// adminCmd is a thin HTTP client over a running node's admin
// endpoints, letting an operator manage peers without crafting
// requests by hand.
func adminCmd() *cobra.Command {
	var nodeAddr string
	var adminKey string

	cmd := &cobra.Command{Use: "admin", Short: "manage peers on a running node"}
	cmd.PersistentFlags().StringVar(&nodeAddr, "node", "http://127.0.0.1:8080", "base URL of the target node")
	cmd.PersistentFlags().StringVar(&adminKey, "admin-key", "", "admin key for the target node")

	for _, kind := range []string{"upstream", "downstream"} {
		kind := kind
		peerCmd := &cobra.Command{Use: kind}

		peerCmd.AddCommand(&cobra.Command{
			Use:   "list",
			Short: "list registered " + kind + " hosts",
			RunE: func(cmd *cobra.Command, args []string) error {
				return adminGet(nodeAddr, adminKey, "/api/v1/admin/"+kind)
			},
		})

		addCmd := &cobra.Command{
			Use:   "add [url...]",
			Short: "register " + kind + " hosts",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return adminPost(nodeAddr, adminKey, "/api/v1/admin/"+kind, wire.PeerSet{URLs: args})
			},
		}
		peerCmd.AddCommand(addCmd)

		removeCmd := &cobra.Command{
			Use:   "remove [url...]",
			Short: "deregister " + kind + " hosts",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return adminDelete(nodeAddr, adminKey, "/api/v1/admin/"+kind, wire.PeerSet{URLs: args})
			},
		}
		peerCmd.AddCommand(removeCmd)

		peerCmd.AddCommand(&cobra.Command{
			Use:   "toggle",
			Short: "flip the sweeping gate for " + kind + " hosts",
			RunE: func(cmd *cobra.Command, args []string) error {
				return adminPost(nodeAddr, adminKey, "/api/v1/admin/"+kind+"/toggle", nil)
			},
		})

		cmd.AddCommand(peerCmd)
	}

	return cmd
}

func adminGet(nodeAddr, adminKey, path string) error {
	req, err := http.NewRequest(http.MethodGet, nodeAddr+path, nil)
	if err != nil {
		return err
	}
	return doAdminRequest(req, adminKey)
}

func adminPost(nodeAddr, adminKey, path string, body any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(http.MethodPost, nodeAddr+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return doAdminRequest(req, adminKey)
}

func adminDelete(nodeAddr, adminKey, path string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodDelete, nodeAddr+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return doAdminRequest(req, adminKey)
}

func doAdminRequest(req *http.Request, adminKey string) error {
	req.Header.Set("X-TIAF-ADMIN-KEY", adminKey)
	return doRequest(req)
}

// readGet hits one of the unauthenticated read endpoints (chain,
// statistics, query) with a plain GET — no admin key required.
func readGet(nodeAddr, path string) error {
	req, err := http.NewRequest(http.MethodGet, nodeAddr+path, nil)
	if err != nil {
		return err
	}
	return doRequest(req)
}

func doRequest(req *http.Request) error {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("node returned %d: %s", resp.StatusCode, out)
	}
	fmt.Println(string(out))
	return nil
}
