// Package governance implements the governance-block trigger manager of
// spec.md §4.4-4.5: parsing governance objects into payment schedules,
// tracking their validity and age, and validating or building the
// coinbase outputs a governance (super) block requires.
package governance

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dashpay/mnengine/script"
)

// Status is a trigger's position in the lifecycle of spec.md §4.7.
type Status int

const (
	// StatusUnknown is the zero value: not yet parsed.
	StatusUnknown Status = iota
	// StatusValid means the trigger parsed successfully and its backing
	// object still resolves and is still marked as a trigger.
	StatusValid
	// StatusExecuted means a coinbase matching this trigger's payment
	// schedule was accepted by the chain at event_height.
	StatusExecuted
	// StatusErrorInvalid means the backing object vanished or stopped
	// being a trigger; sweep() sets it and removes the trigger in the same
	// pass. A payload that fails to parse is never tracked at all.
	StatusErrorInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExecuted:
		return "executed"
	case StatusErrorInvalid:
		return "error-invalid"
	default:
		return "unknown"
	}
}

// Payment is one address/amount pair inside a governance block's payment
// schedule, per spec.md §3 "GovernancePayment".
type Payment struct {
	Payee  script.Script
	Amount int64
}

// Block is a governance-object trigger parsed into a payment schedule for
// one specific height, per spec.md §3 "GovernanceBlock (trigger)".
// Grounded on original_source/src/masternodes/governance-classes.h's
// CGovernanceBlock.
type Block struct {
	ObjectHash  chainhash.Hash
	EventHeight int32
	Payments    []Payment
	Status      Status
}

// TotalAmount sums the amount of every payment in the schedule.
func (b *Block) TotalAmount() int64 {
	var total int64
	for _, p := range b.Payments {
		total += p.Amount
	}
	return total
}

// Object is the read-only view of a governance object this package needs:
// its raw trigger payload, whether it is still flagged as a trigger type,
// and its funding-signal state. The governance-object gossip layer that
// actually stores and tallies these objects is an external collaborator
// (spec.md §1); this interface names only the shape this package consults.
type Object interface {
	// IsTriggerType reports whether the object is still flagged as a
	// trigger-type governance object; sweep() invalidates a trigger whose
	// backing object no longer is.
	IsTriggerType() bool

	// TriggerPayload returns the object's raw JSON trigger payload.
	TriggerPayload() []byte

	// IsFundingCached reports whether the object's cached funding-signal
	// flag is currently set, the gate best_for_height consults.
	IsFundingCached() bool

	// AbsoluteYesCount returns the funding signal's absolute yes-count,
	// used to choose among multiple active triggers at one height (the
	// highest count wins).
	AbsoluteYesCount() int64

	// MarkForDeletion flags the object for deletion at deletionTime
	// (unix seconds), mirroring CGovernanceObject::fExpired /
	// nDeletionTime.
	MarkForDeletion(deletionTime int64)
}

// ObjectStore resolves a governance-object hash to its current Object
// state. Lookup returns ok=false once an object has been fully removed
// from the gossip layer's store.
type ObjectStore interface {
	Lookup(hash chainhash.Hash) (Object, bool)
}
