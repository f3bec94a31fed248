package config

import (
	"testing"

	"tiafledger/internal/testutil"
)

func TestLoadFillsDefaultsAndRandomNodeID(t *testing.T) {
	sb, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("new sandbox: %v", err)
	}
	defer sb.Cleanup()

	toml := `
downstreams = ["http://peer-a:8080"]
upstreams = ["http://peer-b:8080"]
`
	if err := sb.WriteFile("node.toml", []byte(toml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(sb.Path("node.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NodeID == "" || len(cfg.NodeID) != 16 {
		t.Fatalf("expected a 16-char random node id, got %q", cfg.NodeID)
	}
	if cfg.Port != 8080 || cfg.LogLevel != "info" || cfg.WorkerPeriod != "15s" {
		t.Fatalf("expected defaults to fill unset fields, got %+v", cfg)
	}
	if len(cfg.Downstreams) != 1 || cfg.Downstreams[0] != "http://peer-a:8080" {
		t.Fatalf("expected downstreams from file, got %v", cfg.Downstreams)
	}
}

func TestLoadKeepsExplicitNodeID(t *testing.T) {
	sb, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("new sandbox: %v", err)
	}
	defer sb.Cleanup()

	if err := sb.WriteFile("node.toml", []byte(`node_id = "fixed-id"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(sb.Path("node.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NodeID != "fixed-id" {
		t.Fatalf("expected explicit node id to survive, got %q", cfg.NodeID)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	sb, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("new sandbox: %v", err)
	}
	defer sb.Cleanup()

	if _, err := Load(sb.Path("missing.toml")); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
