// Package gate implements BlockPaymentGate, the top-level dispatcher of
// spec.md §4.6: at any height it decides regular vs governance regime,
// routes to the matching validator or builder, and enforces the reward
// ceiling.
package gate

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/dashpay/mnengine/coinbase"
)

// ErrExceedsGovernanceCeiling is returned by IsBlockValueValid when the
// node isn't synced and the coinbase value exceeds reward plus the
// governance payments limit at a governance height.
var ErrExceedsGovernanceCeiling = errors.New("gate: coinbase value exceeds governance ceiling")

// ErrExceedsBlockReward is returned by IsBlockValueValid when the coinbase
// value exceeds the plain block reward at a non-governance height, or
// while unsynced outside a governance height.
var ErrExceedsBlockReward = errors.New("gate: coinbase value exceeds block reward")

// ErrInvalidGovernanceBlock is returned when a governance block is
// triggered at height but the candidate coinbase does not satisfy the
// trigger's payment schedule.
var ErrInvalidGovernanceBlock = errors.New("gate: triggered governance block failed validation")

// ErrInvalidPayee is returned by IsBlockPayeeValid when no governance
// trigger is active at height, the regular-block payee predicate rejects
// tx, and masternode payment enforcement is currently on. A tx that fails
// an active trigger gets ErrInvalidGovernanceBlock instead.
var ErrInvalidPayee = errors.New("gate: invalid block payee")

// diagnosticString formats a diagnostic dump of a rejected candidate
// coinbase for operator-facing error messages, in the same
// spew.Sdump-based style the teacher pack uses for ad hoc struct dumps.
func diagnosticString(tx *coinbase.Tx) string {
	return spew.Sdump(tx)
}
