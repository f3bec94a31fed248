// Package replication runs the three periodic background workers that
// reconcile a node's local chain against its peers: sealing pending
// mempool records into blocks, pulling longer chains from upstreams,
// and pushing pending records to downstreams.
package replication

import (
	"context"
	"math/rand"
	"time"
)

// jitteredPeriod returns base perturbed by up to +/-fraction, so that
// many nodes started at the same moment do not all tick in lockstep.
func jitteredPeriod(base time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return base
	}
	delta := (rand.Float64()*2 - 1) * fraction
	return time.Duration(float64(base) * (1 + delta))
}

// run calls tick once per jittered period until ctx is cancelled. Each
// worker owns its own goroutine and ticker so that one worker's tick
// duration never perturbs another's schedule.
func run(ctx context.Context, base time.Duration, jitter float64, tick func(context.Context)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(jitteredPeriod(base, jitter)):
			tick(ctx)
		}
	}
}
