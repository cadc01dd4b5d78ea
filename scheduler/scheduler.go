// Package scheduler implements the tip-advance notifier of spec.md §2
// "Scheduler glue": a purely reactive hook that, on every tip advance,
// fans out pruning, vote broadcast, and governance-trigger aging without
// ever blocking the caller.
package scheduler

import (
	"context"
	"time"

	"github.com/dashpay/mnengine/governance"
	"github.com/dashpay/mnengine/logs"
	"github.com/dashpay/mnengine/panics"
	"github.com/dashpay/mnengine/payments"
)

var log = logs.RegisterSubSystem("SCHD")

// RelayFunc broadcasts a locally produced vote to the peer-gossip layer.
// Implementations must not block: spec.md §5 requires gossip send to be a
// non-blocking queue-push.
type RelayFunc func(*payments.Vote)

// Scheduler fans out the work triggered by chain tip advance: pruning
// aged votes and tallies, running the self-voting loop, and sweeping
// aged-out governance triggers. It owns no locks of its own — all
// mutation happens inside Engine and TriggerManager, each independently
// guarded.
type Scheduler struct {
	engine   *payments.Engine
	triggers *governance.TriggerManager
	relay    RelayFunc

	wrap func(func())
}

// New returns a Scheduler wiring engine and triggers together. relay is
// called, from a background goroutine, with any vote this node's own
// self-voting loop produces.
func New(engine *payments.Engine, triggers *governance.TriggerManager, relay RelayFunc) *Scheduler {
	return &Scheduler{
		engine:   engine,
		triggers: triggers,
		relay:    relay,
		wrap:     panics.GoroutineWrapperFunc(log),
	}
}

// OnTipAdvance is the reactive entry point: the chain-consensus
// collaborator calls this once per accepted block. It updates the
// cached tip synchronously, then dispatches pruning, self-voting, and
// trigger-sweep as independent, non-blocking background goroutines. ctx
// governs cancellation between each dispatched loop's locked sections;
// no in-flight signature verification is interrupted mid-operation
// (spec.md §5).
func (s *Scheduler) OnTipAdvance(ctx context.Context, height int32) {
	s.engine.UpdatedTip(height)

	s.wrap(func() {
		if ctx.Err() != nil {
			return
		}
		removed := s.engine.PruneToTip()
		if len(removed) > 0 {
			log.Debugf("pruned %d tally heights below tip %d", len(removed), height)
		}
	})

	s.wrap(func() {
		if ctx.Err() != nil {
			return
		}
		vote, ok := s.engine.VoteForNextHeight()
		if !ok {
			return
		}
		log.Debugf("cast self vote for height %d", vote.Height)
		if s.relay != nil {
			s.relay(vote)
		}
	})

	s.wrap(func() {
		if ctx.Err() != nil {
			return
		}
		s.triggers.Sweep(height, time.Now().Unix())
	})
}

// Run starts a periodic governance-trigger sweep independent of tip
// advance, so triggers age out even during a long gap between blocks. It
// blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, currentHeight func() int32, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.triggers.Sweep(currentHeight(), time.Now().Unix())
		}
	}
}
