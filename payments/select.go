package payments

import "github.com/dashpay/mnengine/script"

// WinningPayee selects the payee for a regular block at height, per
// spec.md §4.3 "Winner selection": prefer the tally's best payee if one
// exists, else fall back to the registry's deterministic
// longest-time-since-last-paid computation. The second return is false if
// neither source can produce a payee, in which case the caller must leave
// the coinbase unmodified.
func (e *Engine) WinningPayee(height int32) (script.Script, bool) {
	if tally := e.TallyForHeight(height); tally != nil {
		if payee, ok := tally.BestPayee(); ok {
			return payee, true
		}
	}

	outpoint, ok := e.registry.NextPayee(e.params.MinConfirmations, e.params.MnUpdateThreshold)
	if !ok {
		return nil, false
	}
	info, ok := e.registry.Lookup(outpoint)
	if !ok {
		return nil, false
	}
	return script.Script(info.PayoutScript), true
}

// PaymentForHeight computes the masternode payment amount given the full
// block reward, per spec.md §4.3: a fixed fraction of the subsidy, taken
// from chainparams.Params.MasternodePaymentShare. The caller (the
// chain-consensus collaborator) supplies reward directly rather than the
// Engine re-deriving it, matching FillBlockPayments's blockReward
// parameter upstream.
func (e *Engine) PaymentForHeight(reward int64) int64 {
	return int64(float64(reward) * e.params.MasternodePaymentShare)
}
