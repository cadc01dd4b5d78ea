package governance

import (
	"github.com/pkg/errors"

	"github.com/dashpay/mnengine/chainparams"
	"github.com/dashpay/mnengine/coinbase"
)

// ErrWrongHeight is returned by IsValid when height is not a governance
// height.
var ErrWrongHeight = errors.New("governance: height is not a governance height")

// ErrTooFewOutputs is returned when the coinbase has fewer outputs than
// the trigger has payments, leaving no room for all of them.
var ErrTooFewOutputs = errors.New("governance: too few coinbase outputs for trigger payments")

// ErrPaymentsExceedLimit is returned when the trigger's total payment
// amount exceeds the governance payments limit for height.
var ErrPaymentsExceedLimit = errors.New("governance: trigger payments exceed payments limit")

// ErrBlockValueExceedsLimit is returned when the coinbase pays out more
// than reward plus the trigger's total payment amount.
var ErrBlockValueExceedsLimit = errors.New("governance: coinbase value exceeds reward plus payments")

// ErrPaymentNotFound is returned when a required trigger payment does not
// appear, in order, among the coinbase outputs.
var ErrPaymentNotFound = errors.New("governance: required trigger payment not found in coinbase")

// IsValid checks tx against trigger's payment schedule at height with the
// given block reward, per spec.md §4.5 "Validator is_valid". Grounded on
// original_source/src/masternodes/governance-classes.cpp's
// CGovernanceBlock::IsValid.
func IsValid(tx *coinbase.Tx, height int32, reward int64, trigger *Block, params *chainparams.Params) error {
	if !IsGovernanceHeight(height, params) {
		return ErrWrongHeight
	}

	nOutputs := len(tx.Outputs)
	nPayments := len(trigger.Payments)
	if nOutputs < nPayments {
		return ErrTooFewOutputs
	}

	totalPayments := trigger.TotalAmount()
	paymentsLimit := PaymentsLimit(height, params)
	if totalPayments > paymentsLimit {
		return errors.Wrapf(ErrPaymentsExceedLimit, "payments %d, limit %d", totalPayments, paymentsLimit)
	}

	blockValue := tx.TotalOutputValue()
	if blockValue > reward+totalPayments {
		return errors.Wrapf(ErrBlockValueExceedsLimit, "block value %d, limit %d", blockValue, reward+totalPayments)
	}

	// Ordered inclusion check: each payment must appear, in order, among
	// the coinbase outputs starting no earlier than the previous match.
	voutIndex := 0
	for i, payment := range trigger.Payments {
		matched := false
		for j := voutIndex; j < nOutputs; j++ {
			out := tx.Outputs[j]
			if out.Script.Equal(payment.Payee) && out.Value == payment.Amount {
				voutIndex = j
				matched = true
				break
			}
		}
		if !matched {
			return errors.Wrapf(ErrPaymentNotFound, "payment %d of %d to %s", i, nPayments, payment.Payee)
		}
	}

	return nil
}
