// Command ledgernode runs a single append-only log node: the HTTP
// boundary, the mempool, the chain, and the three periodic
// replication workers.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tiafledger/core"
	"tiafledger/httpapi"
	"tiafledger/pkg/config"
	"tiafledger/pkg/utils"
	"tiafledger/replication"
)

func main() {
	root := &cobra.Command{Use: "ledgernode"}
	root.AddCommand(runCmd())
	root.AddCommand(adminCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(statisticsCmd())
	root.AddCommand(chainCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var configPath string
	var bindOverride string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "start the node: HTTP boundary, mempool, chain, and replication workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNode(configPath, bindOverride)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", utils.EnvOrDefault("LEDGERNODE_CONFIG", "ledgernode.toml"), "path to the node's TOML config file")
	cmd.Flags().StringVar(&bindOverride, "bind", "", "override ip:port from the config file")
	return cmd
}

func runNode(configPath, bindOverride string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return utils.Wrap(err, "load config")
	}

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return utils.Wrap(err, "parse log_level")
	}
	logger.SetLevel(level)
	logger.WithField("node_id", cfg.NodeID).Info("starting node")

	period, err := time.ParseDuration(cfg.WorkerPeriod)
	if err != nil {
		return utils.Wrap(err, "parse worker_period")
	}

	chain := core.NewChain()
	pool := core.NewMemPool(cfg.MempoolBound)
	upstreams := core.NewUpstreams()
	downstreams := core.NewDownstreams()
	for _, url := range cfg.Upstreams {
		upstreams.Add(url)
	}
	for _, url := range cfg.Downstreams {
		downstreams.Add(url)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := &http.Client{Timeout: 10 * time.Second}

	sealer := &replication.Sealer{Pool: pool, Chain: chain, Logger: logger, Period: period, Jitter: 0.05}
	puller := &replication.Puller{Chain: chain, Upstreams: upstreams, HTTPClient: client, Logger: logger, Period: period, Jitter: 0.05}
	notifier := &replication.Notifier{Pool: pool, Downstreams: downstreams, HTTPClient: client, Logger: logger, Period: period, Jitter: 0.05}

	go sealer.Run(ctx)
	go puller.Run(ctx)
	go notifier.Run(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.IP, cfg.Port)
	if bindOverride != "" {
		addr = bindOverride
	}
	srv := httpapi.New(addr, &httpapi.Server{
		Chain:       chain,
		Pool:        pool,
		Upstreams:   upstreams,
		Downstreams: downstreams,
		NodeID:      cfg.NodeID,
		AdminKey:    cfg.AdminKey,
		Logger:      logger,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return utils.Wrap(err, "http server")
		}
		return nil
	}
}
