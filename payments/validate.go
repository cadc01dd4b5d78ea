package payments

import (
	"github.com/dashpay/mnengine/coinbase"
	"github.com/dashpay/mnengine/script"
	"github.com/pkg/errors"
)

// ValidationFailure carries the diagnostic payload of a rejected
// regular-block payment check: the list of payees that did meet quorum,
// for the caller to log or surface to an operator (spec.md §4.3
// "Block validation").
type ValidationFailure struct {
	PossiblePayees []script.Script
}

func (f *ValidationFailure) Error() string {
	return "payments: no coinbase output matches a quorum payee at the required amount"
}

// IsTransactionValid runs the regular-block payment predicate of spec.md
// §4.3 "Block validation" against tx at height H with the given block
// reward. It returns nil if tx satisfies the predicate, or a
// *ValidationFailure wrapped with errors.WithStack describing why not.
//
// A height with fewer than SignaturesRequired votes for any payee is
// accepted unconditionally: there isn't enough network evidence yet to
// second-guess the miner, so validation defers to the chain.
func (e *Engine) IsTransactionValid(tx *coinbase.Tx, height int32, reward int64) error {
	tally := e.TallyForHeight(height)
	if tally == nil || tally.MaxVotes() < e.params.SignaturesRequired {
		return nil
	}

	payment := e.PaymentForHeight(reward)
	low, high := payment, payment+e.params.PaymentTolerance

	possible := tally.PayeesWithVotesAtLeast(e.params.SignaturesRequired)
	for _, payee := range possible {
		for _, out := range tx.Outputs {
			if script.Script(out.Script).Equal(payee) && out.Value >= low && out.Value <= high {
				return nil
			}
		}
	}
	return errors.WithStack(&ValidationFailure{PossiblePayees: possible})
}
