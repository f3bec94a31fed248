// Package config provides a reusable loader for node configuration
// files and environment variables. It is versioned so that the CLI
// and the HTTP boundary can both depend on a stable API contract.
//
// Version: v0.1.0
package config

import (
	"crypto/rand"
	"path/filepath"

	"github.com/spf13/viper"

	"tiafledger/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// nodeIDAlphabet is used to generate a random node id when the config
// file omits node_id.
const nodeIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Config is the unified node configuration. It mirrors the TOML shape
// described in the interface spec: node_id, ip, port, downstreams,
// upstreams, log_level, plus the operational knobs a real deployment
// needs (admin_key, worker_period).
type Config struct {
	NodeID       string   `mapstructure:"node_id" json:"node_id"`
	IP           string   `mapstructure:"ip" json:"ip"`
	Port         int      `mapstructure:"port" json:"port"`
	Downstreams  []string `mapstructure:"downstreams" json:"downstreams"`
	Upstreams    []string `mapstructure:"upstreams" json:"upstreams"`
	LogLevel     string   `mapstructure:"log_level" json:"log_level"`
	AdminKey     string   `mapstructure:"admin_key" json:"admin_key"`
	WorkerPeriod string   `mapstructure:"worker_period" json:"worker_period"`
	MempoolBound int      `mapstructure:"mempool_bound" json:"mempool_bound"`
}

// defaults are the starting values that the file (and env overlay)
// then override; any field the file leaves unset keeps its default.
func defaults() Config {
	return Config{
		IP:           "0.0.0.0",
		Port:         8080,
		LogLevel:     "info",
		WorkerPeriod: "15s",
		MempoolBound: 10000,
	}
}

// Load reads the TOML config file at path and overlays any matching
// environment variables. A random 16-char alphanumeric node id is
// filled in if the file leaves NodeID empty. Viper's TOML codec is
// pelletier/go-toml/v2.
func Load(path string) (*Config, error) {
	cfg := defaults()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config "+filepath.Base(path))
	}
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	if cfg.NodeID == "" {
		id, err := randomNodeID(16)
		if err != nil {
			return nil, utils.Wrap(err, "generate node id")
		}
		cfg.NodeID = id
	}
	return &cfg, nil
}

// randomNodeID returns a random alphanumeric string of length n, read
// from crypto/rand so node ids never collide by virtue of a weak seed.
func randomNodeID(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = nodeIDAlphabet[int(b)%len(nodeIDAlphabet)]
	}
	return string(out), nil
}
