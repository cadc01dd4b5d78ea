package payments

import (
	"github.com/dashpay/mnengine/chainparams"
	"github.com/dashpay/mnengine/logs"
	"github.com/dashpay/mnengine/masternode"
	"github.com/dashpay/mnengine/peerscore"
	"github.com/sasha-s/go-deadlock"
)

var log = logs.RegisterSubSystem("MNPY")

// Engine owns the per-height PayeeTally map and the VoteStore, and drives
// vote ingest, quorum evaluation, coinbase filling, block validation, and
// the self-voting loop for regular blocks (spec.md §4.3).
type Engine struct {
	params   *chainparams.Params
	registry masternode.Registry
	scores   *peerscore.Table

	votes *VoteStore

	tallyMu  deadlock.RWMutex
	tallies  map[int32]*Tally
	cachedTip int32

	// self identifies this node's own masternode identity, if it is
	// operating as one. Set via SetSelfIdentity; nil means "not a
	// masternode", so VoteForNextHeight is a no-op.
	self *SelfIdentity
}

// SelfIdentity is this node's own masternode identity, used only by the
// self-voting loop (spec.md §4.3 "Voting loop").
type SelfIdentity struct {
	Outpoint masternode.Outpoint
	SignVote func(digest []byte) []byte
}

// New returns an Engine with an empty VoteStore and tally map.
func New(params *chainparams.Params, registry masternode.Registry, scores *peerscore.Table) *Engine {
	return &Engine{
		params:   params,
		registry: registry,
		scores:   scores,
		votes:    NewVoteStore(),
		tallies:  make(map[int32]*Tally),
	}
}

// SetSelfIdentity configures this node to participate in the self-voting
// loop as the masternode identified by outpoint, signing with signVote.
func (e *Engine) SetSelfIdentity(outpoint masternode.Outpoint, signVote func(digest []byte) []byte) {
	e.self = &SelfIdentity{Outpoint: outpoint, SignVote: signVote}
}

// VoteStore exposes the underlying vote store, e.g. for persistence.
func (e *Engine) VoteStore() *VoteStore { return e.votes }

// Tip returns the last height this Engine was told about via UpdatedTip.
func (e *Engine) Tip() int32 {
	e.tallyMu.RLock()
	defer e.tallyMu.RUnlock()
	return e.cachedTip
}

// UpdatedTip records the new chain tip, used by ingest's range check and by
// Prune's window computation.
func (e *Engine) UpdatedTip(height int32) {
	e.tallyMu.Lock()
	defer e.tallyMu.Unlock()
	e.cachedTip = height
}

// StorageLimit returns the number of most-recent heights retained, per
// spec.md §4.3: max(registry_size * coefficient, min_blocks_to_store).
func (e *Engine) StorageLimit() int32 {
	fromRegistry := int32(float64(e.registry.Size()) * e.params.StorageCoefficient)
	if fromRegistry < e.params.MinBlocksToStore {
		return e.params.MinBlocksToStore
	}
	return fromRegistry
}

// getOrCreateTally returns the tally for height, creating it if absent.
// Callers must hold tallyMu for writing.
func (e *Engine) getOrCreateTally(height int32) *Tally {
	t, ok := e.tallies[height]
	if !ok {
		t = NewTally(height)
		e.tallies[height] = t
	}
	return t
}

// TallyForHeight returns a snapshot-safe read view of the tally at height,
// or nil if none exists. The returned *Tally must not be mutated by the
// caller.
func (e *Engine) TallyForHeight(height int32) *Tally {
	e.tallyMu.RLock()
	defer e.tallyMu.RUnlock()
	return e.tallies[height]
}

// IsEnoughData reports whether the engine has retained a plausible amount
// of vote history: at least one tally block and at least
// SignaturesTotal verified votes, a coarse health check mirroring
// CMasternodePayments::IsEnoughData.
func (e *Engine) IsEnoughData() bool {
	e.tallyMu.RLock()
	blocks := len(e.tallies)
	e.tallyMu.RUnlock()
	return blocks > 0 && e.votes.Count() >= e.params.SignaturesTotal
}
