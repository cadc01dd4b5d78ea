package payments

import "github.com/dashpay/mnengine/coinbase"

// FillBlockPayee builds the regular-block coinbase payout: it subtracts
// the masternode payment from tx.Outputs[0]'s value and appends a new
// output paying the selected payee, per spec.md §4.6 "fill" regular
// builder. It is a no-op if WinningPayee cannot determine a payee, or if
// tx has no outputs to subtract from.
func (e *Engine) FillBlockPayee(tx *coinbase.Tx, height int32, reward int64) {
	if len(tx.Outputs) == 0 {
		return
	}
	payee, ok := e.WinningPayee(height)
	if !ok {
		return
	}
	payment := e.PaymentForHeight(reward)
	tx.Outputs[0].Value -= payment
	tx.AppendOutput(payment, payee)
}
