package governance

import "github.com/dashpay/mnengine/coinbase"

// Fill appends one coinbase output per payment in trigger's schedule, in
// order, per spec.md §4.5 "Builder create". Callers must have already
// confirmed height is a governance height and trigger is non-nil; a nil
// trigger leaves tx unmodified, matching "if no best trigger at H, do
// nothing" upstream.
func Fill(tx *coinbase.Tx, trigger *Block) {
	if trigger == nil {
		return
	}
	for _, payment := range trigger.Payments {
		tx.AppendOutput(payment.Amount, payment.Payee)
	}
}
