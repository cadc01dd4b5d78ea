package payments

import "github.com/dashpay/mnengine/wire"

// LowDataFanout bounds how many low-data heights a single Sync call
// includes, keeping the low-data pass itself resource-bounded per
// spec.md §5's peer-resource caps.
const LowDataFanout = 4

// SyncWindow is the width, in blocks, of the broad inventory window
// requested after the low-data pass.
const SyncWindow = 20

// Sync builds the inventory a responding node answers a `mnpaymentsync`
// with: it first scans the SyncWindow heights below tip for "low data"
// blocks — those with fewer than SignaturesTotal recorded votes for their
// best payee — and advertises whatever votes are already known for up to
// LowDataFanout of them, then advertises every vote hash in the broad
// [tip, tip+SyncWindow) window. Grounded on
// original_source/src/masternodes/masternode-payments.cpp's Sync and
// RequestLowDataPaymentBlocks.
func (e *Engine) Sync(tip int32) *wire.MsgInvPayment {
	inv := &wire.MsgInvPayment{}

	lowData := 0
	for h := tip - SyncWindow; h < tip && lowData < LowDataFanout; h++ {
		tally := e.TallyForHeight(h)
		if tally == nil || tally.MaxVotes() >= e.params.SignaturesTotal {
			continue
		}
		for _, hash := range tally.VoteHashes() {
			inv.Invs = append(inv.Invs, wire.InvVect{Type: wire.InvVectPaymentVote, Hash: hash})
		}
		lowData++
	}

	for h := tip; h < tip+SyncWindow; h++ {
		tally := e.TallyForHeight(h)
		if tally == nil {
			continue
		}
		for _, hash := range tally.VoteHashes() {
			inv.Invs = append(inv.Invs, wire.InvVect{Type: wire.InvVectPaymentVote, Hash: hash})
		}
	}

	return inv
}
