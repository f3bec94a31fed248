package replication

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"tiafledger/core"
)

// Notifier is the downstream-sweeping worker: it snapshots the
// mempool's current records under a read lock, releases it, then
// forwards every record to every downstream host. Delivery is
// deliberately at-least-once — receivers deduplicate by record hash.
type Notifier struct {
	Pool        *core.MemPool
	Downstreams *core.Downstreams
	HTTPClient  *http.Client
	Logger      *logrus.Logger
	Period      time.Duration
	Jitter      float64
}

// Run blocks, ticking until ctx is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	run(ctx, n.Period, n.Jitter, n.tick)
}

func (n *Notifier) tick(ctx context.Context) {
	if !n.Downstreams.IsSweeping() {
		return
	}
	records := n.Pool.Contents()
	if len(records) == 0 {
		return
	}
	for _, host := range n.Downstreams.Snapshot() {
		n.notifyHost(ctx, host, records)
	}
}

func (n *Notifier) notifyHost(ctx context.Context, host core.WriteHost, records []core.Record) {
	var lastHash string
	for _, r := range records {
		if err := n.pushRecord(ctx, host.URL, r); err != nil {
			n.Logger.WithField("downstream", host.URL).WithError(err).Warn("notifier: push failed; continuing to next record")
			continue
		}
		lastHash = r.Hash
	}
	if lastHash != "" {
		n.Downstreams.MarkPushed(host.URL, lastHash, time.Now())
	}
}

func (n *Notifier) pushRecord(ctx context.Context, baseURL string, r core.Record) error {
	body, err := json.Marshal(r)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/v1/record", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return core.NewTransportError(resp.StatusCode)
	}
	return nil
}
