package replication

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"tiafledger/core"
)

// Sealer periodically drains the mempool and seals its contents into
// a new chain block. It is the only worker that ever holds the
// mempool-write and chain-write locks in the same tick — and even
// then never overlapping: it drains under the mempool lock, releases,
// then appends under the chain lock.
type Sealer struct {
	Pool   *core.MemPool
	Chain  *core.Chain
	Logger *logrus.Logger
	Period time.Duration
	Jitter float64
}

// Run blocks, ticking until ctx is cancelled.
func (s *Sealer) Run(ctx context.Context) {
	run(ctx, s.Period, s.Jitter, s.tick)
}

func (s *Sealer) tick(_ context.Context) {
	if s.Pool.Length() == 0 {
		return
	}
	drained := s.Pool.Reset()
	if len(drained) == 0 {
		return
	}
	if _, err := s.Chain.AppendNewRecords(drained); err != nil {
		s.Logger.WithError(err).Warn("sealer: failed to append drained records; they are lost from this node")
		return
	}
	s.Logger.WithField("count", len(drained)).Info("sealer: sealed mempool into a new block")
}
