package governance

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"

	"github.com/dashpay/mnengine/chainparams"
)

// ErrUnknownObject is returned by Add when objects has no record of hash.
var ErrUnknownObject = errors.New("governance: unknown governance object")

// ErrNotATrigger is returned by Add when the backing object is not flagged
// as a trigger-type governance object.
var ErrNotATrigger = errors.New("governance: object is not a trigger")

// ErrInvalidEventHeight is returned by Add when a trigger's
// event_block_height does not itself land on a governance height. The
// original's CGovernanceBlockManager::IsGovernanceBlockTriggered requires
// CGovernanceBlock::IsValidBlockHeight to hold before a trigger is
// considered active at all; rejecting the off-cycle height here keeps
// every consumer of BestForHeight (the gate, the builder, execution
// marking) from ever seeing one.
var ErrInvalidEventHeight = errors.New("governance: trigger event_block_height is not a governance height")

// TriggerManager tracks the set of active governance-block triggers, per
// spec.md §4.4. Grounded on
// original_source/src/masternodes/governance-classes.h's
// CGovernanceTriggerManager.
type TriggerManager struct {
	mu deadlock.RWMutex
	triggers *triggerSet

	params  *chainparams.Params
	objects ObjectStore
}

// NewTriggerManager returns an empty TriggerManager parameterized by
// params (money range, network for address decoding) and backed by
// objects for resolving governance-object state.
func NewTriggerManager(params *chainparams.Params, objects ObjectStore) *TriggerManager {
	return &TriggerManager{
		triggers: newTriggerSet(),
		params:   params,
		objects:  objects,
	}
}

// Add parses the governance object named by hash into a trigger, if one
// isn't already tracked for that hash (spec.md §4.4 "add"). It is a no-op,
// not an error, if hash is already tracked.
func (m *TriggerManager) Add(hash chainhash.Hash) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.triggers.get(hash); ok {
		return nil
	}

	obj, ok := m.objects.Lookup(hash)
	if !ok {
		return ErrUnknownObject
	}
	if !obj.IsTriggerType() {
		return ErrNotATrigger
	}

	eventHeight, payments, err := parseTriggerPayload(obj.TriggerPayload(), m.params.Net, m.params.MoneyRangeMax)
	if err != nil {
		obj.MarkForDeletion(0)
		return err
	}
	if !IsGovernanceHeight(eventHeight, m.params) {
		obj.MarkForDeletion(0)
		return ErrInvalidEventHeight
	}

	m.triggers.put(&Block{
		ObjectHash:  hash,
		EventHeight: eventHeight,
		Payments:    payments,
		Status:      StatusValid,
	})
	return nil
}

// ActiveTriggers returns every trigger whose backing object still
// resolves, per spec.md §4.4 "active_triggers".
func (m *TriggerManager) ActiveTriggers() []*Block {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Block, 0, len(m.triggers.byHash))
	for hash, b := range m.triggers.byHash {
		if _, ok := m.objects.Lookup(hash); ok {
			out = append(out, b)
		}
	}
	return out
}

// BestForHeight returns the active trigger with event_height == height and
// the highest funding-signal yes-count among those whose backing object is
// currently funding-cached, per spec.md §4.4 "best_for_height".
func (m *TriggerManager) BestForHeight(height int32) (*Block, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.triggers.bestForHeight(height, m.objects)
}

// Lookup returns the trigger tracked for hash, regardless of whether its
// backing object still resolves.
func (m *TriggerManager) Lookup(hash chainhash.Hash) (*Block, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.triggers.get(hash)
}

// MarkExecuted transitions the trigger named by hash to StatusExecuted,
// called by the top-level gate once the chain has accepted a block
// matching it (spec.md §4.5 "On success, mark trigger status := Executed
// after the block is accepted by the chain").
func (m *TriggerManager) MarkExecuted(hash chainhash.Hash) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.triggers.get(hash); ok {
		b.Status = StatusExecuted
	}
}
