// Package payments implements the regular-block payment-vote engine of
// spec.md §4.1-4.3: PayeeTally, VoteStore, and PaymentEngine.
package payments

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dashpay/mnengine/masternode"
	"github.com/dashpay/mnengine/script"
	mnwire "github.com/dashpay/mnengine/wire"
)

// Vote is a single masternode's payment vote for one height, per spec.md §3.
type Vote struct {
	Voter     masternode.Outpoint
	Height    int32
	Payee     script.Script
	Signature []byte
}

// IsVerified reports whether v carries a signature. An unverified vote is a
// placeholder recorded only to prevent re-processing an already-seen hash
// (spec.md §4.2).
func (v *Vote) IsVerified() bool {
	return len(v.Signature) > 0
}

func (v *Vote) toWire() *mnwire.MsgPaymentVote {
	return &mnwire.MsgPaymentVote{
		Voter:     v.Voter,
		Height:    v.Height,
		Payee:     []byte(v.Payee),
		Signature: v.Signature,
	}
}

// Hash computes the deterministic vote hash: it does not depend on the
// signature (spec.md §3).
func (v *Vote) Hash() chainhash.Hash {
	return v.toWire().Hash()
}

// SigningDigest returns the digest signed by the raw-hash scheme.
func (v *Vote) SigningDigest() []byte {
	return v.toWire().SigningDigest()
}

// Equal reports whether v and other describe the same (voter, height,
// payee) triple, ignoring signature bytes.
func (v *Vote) Equal(other *Vote) bool {
	if v.Height != other.Height {
		return false
	}
	if v.Voter.Hash != other.Voter.Hash || v.Voter.Index != other.Voter.Index {
		return false
	}
	return bytes.Equal(v.Payee, other.Payee)
}
