package gate

import (
	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"

	"github.com/dashpay/mnengine/chainparams"
	"github.com/dashpay/mnengine/coinbase"
	"github.com/dashpay/mnengine/governance"
	"github.com/dashpay/mnengine/masternode"
	"github.com/dashpay/mnengine/payments"
)

// Gate is the top-level BlockPaymentGate of spec.md §4.6: it decides, for
// any candidate coinbase at height H, whether the regular-block or
// governance-block regime applies, and dispatches to the matching
// validator or builder. Grounded on
// original_source/src/masternodes/masternode-payments.cpp's free
// functions IsBlockValueValid / IsBlockPayeeValid / FillBlockPayments.
type Gate struct {
	params   *chainparams.Params
	engine   *payments.Engine
	triggers *governance.TriggerManager
	registry masternode.Registry

	mu      deadlock.Mutex
	enforce bool
}

// New returns a Gate wiring engine (regular-block payments) and triggers
// (governance-block payments) together, both consulting registry to know
// whether the node is synced enough to enforce either regime.
func New(params *chainparams.Params, engine *payments.Engine, triggers *governance.TriggerManager, registry masternode.Registry) *Gate {
	return &Gate{
		params:   params,
		engine:   engine,
		triggers: triggers,
		registry: registry,
		enforce:  true,
	}
}

// SetEnforceMasternodePayments toggles whether IsBlockPayeeValid rejects a
// block that fails the regular-block payee predicate, or merely warns and
// accepts. Upstream this tracks a pre-activation window measured from the
// last checkpoint; deciding that window is the chain-consensus
// collaborator's job (spec.md §1), so the caller drives this flag
// directly.
func (g *Gate) SetEnforceMasternodePayments(enforce bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enforce = enforce
}

func (g *Gate) enforceMasternodePayments() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enforce
}

// IsBlockValueValid checks that tx's total output value is consistent
// with height's regime, per spec.md §4.6 "is_block_value_valid".
func (g *Gate) IsBlockValueValid(tx *coinbase.Tx, height int32, reward int64) error {
	value := tx.TotalOutputValue()
	governanceCeiling := reward + governance.PaymentsLimit(height, g.params)

	if !g.registry.IsSynced() {
		if governance.IsGovernanceHeight(height, g.params) {
			if value > governanceCeiling {
				return errors.Wrapf(ErrExceedsGovernanceCeiling, "value %d, ceiling %d", value, governanceCeiling)
			}
			return nil
		}
		if value > reward {
			return errors.Wrapf(ErrExceedsBlockReward, "value %d, reward %d", value, reward)
		}
		return nil
	}

	if trigger, ok := g.triggers.BestForHeight(height); ok {
		if err := governance.IsValid(tx, height, reward, trigger, g.params); err != nil {
			return errors.Wrap(ErrInvalidGovernanceBlock, err.Error())
		}
		return nil
	}

	if value > reward {
		return errors.Wrapf(ErrExceedsBlockReward, "value %d, reward %d", value, reward)
	}
	return nil
}

// IsBlockPayeeValid checks that tx pays the payee(s) the active regime
// requires at height, per spec.md §4.6 "is_block_payee_valid".
func (g *Gate) IsBlockPayeeValid(tx *coinbase.Tx, height int32, reward int64) error {
	if !g.registry.IsSynced() {
		return nil
	}

	if trigger, ok := g.triggers.BestForHeight(height); ok {
		if err := governance.IsValid(tx, height, reward, trigger, g.params); err != nil {
			return errors.Wrap(ErrInvalidGovernanceBlock, err.Error())
		}
		return nil
	}

	if err := g.engine.IsTransactionValid(tx, height, reward); err != nil {
		if g.enforceMasternodePayments() {
			return errors.Wrapf(ErrInvalidPayee, "%s\n%s", err, diagnosticString(tx))
		}
		return nil
	}
	return nil
}

// NotifyBlockAccepted marks the trigger active at height as Executed, if
// one exists. The chain-consensus collaborator calls this once the block
// at height has been accepted by the chain — trigger execution is a
// property of chain acceptance, not of validation alone, so it lives at
// the gate rather than inside GovernanceBlockValidator (spec.md §4.5).
func (g *Gate) NotifyBlockAccepted(height int32) {
	if trigger, ok := g.triggers.BestForHeight(height); ok {
		g.triggers.MarkExecuted(trigger.ObjectHash)
	}
}

// Fill builds the coinbase outputs height's regime requires, per
// spec.md §4.6 "fill".
func (g *Gate) Fill(tx *coinbase.Tx, height int32, reward int64) {
	if trigger, ok := g.triggers.BestForHeight(height); ok {
		governance.Fill(tx, trigger)
		return
	}
	g.engine.FillBlockPayee(tx, height, reward)
}
