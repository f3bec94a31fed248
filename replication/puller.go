package replication

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"tiafledger/core"
	"tiafledger/wire"
)

// Puller is the upstream-sweeping worker: for each upstream host it
// fetches the chain since the last hash it knows for that host,
// finds the graft point against the local chain, and extends the
// local chain from there.
type Puller struct {
	Chain      *core.Chain
	Upstreams  *core.Upstreams
	HTTPClient *http.Client
	Logger     *logrus.Logger
	Period     time.Duration
	Jitter     float64
}

// Run blocks, ticking until ctx is cancelled.
func (p *Puller) Run(ctx context.Context) {
	run(ctx, p.Period, p.Jitter, p.tick)
}

func (p *Puller) tick(ctx context.Context) {
	if !p.Upstreams.IsSweeping() {
		return
	}
	for _, host := range p.Upstreams.Snapshot() {
		if err := p.sweepHost(ctx, host); err != nil {
			p.Logger.WithField("upstream", host.URL).WithError(err).Warn("puller: sweep failed; continuing to next host")
		}
	}
}

func (p *Puller) sweepHost(ctx context.Context, host core.ReadHost) error {
	since := host.LatestHash
	if since == "" {
		genesis, _ := p.Chain.Get(0)
		since = genesis.Hash
	}

	partial, err := p.fetchSince(ctx, host.URL, since)
	if err != nil {
		return err
	}
	if partial.TotalLength <= p.Chain.Len() {
		return nil
	}
	graftIdx := -1
	for i, b := range partial.PartialBlocks {
		if !p.Chain.BlockSeen(b.Hash) {
			graftIdx = i
			break
		}
	}
	if graftIdx == -1 {
		p.Logger.WithField("upstream", host.URL).Info("puller: peer reports more blocks but none are new to us")
		return nil
	}
	toGraft := partial.PartialBlocks[graftIdx:]
	for i, b := range toGraft {
		if err := b.Validate(); err != nil {
			return err
		}
		if i > 0 && b.PreviousHash != toGraft[i-1].Hash {
			return errors.New("puller: fetched blocks are not hash-linked")
		}
	}
	if err := p.Chain.AppendBlocks(toGraft); err != nil {
		return err
	}
	last := toGraft[len(toGraft)-1]
	p.Upstreams.MarkSwept(host.URL, last.Hash, time.Now())
	return nil
}

func (p *Puller) fetchSince(ctx context.Context, baseURL, hash string) (wire.ChainPartial, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/v1/chain/since/"+hash, nil)
	if err != nil {
		return wire.ChainPartial{}, err
	}
	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return wire.ChainPartial{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return wire.ChainPartial{}, core.NewTransportError(resp.StatusCode)
	}
	var partial wire.ChainPartial
	if err := json.NewDecoder(resp.Body).Decode(&partial); err != nil {
		return wire.ChainPartial{}, err
	}
	return partial, nil
}
