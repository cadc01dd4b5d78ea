package wire

import (
	"bytes"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcdwire "github.com/btcsuite/btcd/wire"
)

// CmdPaymentVote is the primary payment-vote message command
// ("mnw" in spec.md §6).
const CmdPaymentVote = "mnw"

// MaxPaymentVoteScriptLen bounds a decoded payee script, guarding against a
// peer claiming an implausibly large output script.
const MaxPaymentVoteScriptLen = 10000

// MaxPaymentVoteSigLen bounds a decoded signature.
const MaxPaymentVoteSigLen = 150

// MsgPaymentVote is the wire form of a PaymentVote: payload =
// (voter, height, payee-script, signature), per spec.md §6.
type MsgPaymentVote struct {
	Voter     Outpoint
	Height    int32
	Payee     []byte
	Signature []byte
}

// Outpoint identifies a masternode's collateral UTXO: the voter identity.
// It is a type alias for btcd's wire.OutPoint so this package, masternode.Info,
// and any code that already works with btcd-style outpoints share one type.
type Outpoint = btcdwire.OutPoint

// Encode writes the full message, including the signature, to w.
func (m *MsgPaymentVote) Encode(w io.Writer) error {
	return WriteElements(w, &m.Voter.Hash, m.Voter.Index, m.Height, m.Payee, m.Signature)
}

// Decode reads a full message, including the signature, from r.
func (m *MsgPaymentVote) Decode(r io.Reader) error {
	if err := ReadElements(r, &m.Voter.Hash, &m.Voter.Index, &m.Height); err != nil {
		return err
	}
	if err := ReadElement(r, &m.Payee); err != nil {
		return err
	}
	if len(m.Payee) > MaxPaymentVoteScriptLen {
		return errPayloadTooLarge("payee script", len(m.Payee), MaxPaymentVoteScriptLen)
	}
	if err := ReadElement(r, &m.Signature); err != nil {
		return err
	}
	if len(m.Signature) > MaxPaymentVoteSigLen {
		return errPayloadTooLarge("signature", len(m.Signature), MaxPaymentVoteSigLen)
	}
	return nil
}

// Command returns the protocol command string for the message.
func (m *MsgPaymentVote) Command() string { return CmdPaymentVote }

// MaxPayloadLength returns the maximum length the payload can be.
func (m *MsgPaymentVote) MaxPayloadLength() uint32 {
	return chainhash.HashSize + 4 + 4 + 4 + MaxPaymentVoteScriptLen + 4 + MaxPaymentVoteSigLen
}

// serializeWithoutSignature writes everything SigningDigest is derived
// from, excluding the signature. Hash serializes the same fields in a
// different order and does not call this.
func (m *MsgPaymentVote) serializeWithoutSignature(w io.Writer) error {
	return WriteElements(w, &m.Voter.Hash, m.Voter.Index, m.Height, m.Payee)
}

// Hash computes the deterministic vote hash used as the VoteStore key and
// inventory identifier: double-SHA256 of (payee, height, voter).
func (m *MsgPaymentVote) Hash() chainhash.Hash {
	var buf bytes.Buffer
	// Payee and height first, then voter, matching spec.md §3's ordering
	// ("digest of (payee, height, voter)").
	_ = WriteElements(&buf, m.Payee, m.Height, &m.Voter.Hash, m.Voter.Index)
	return chainhash.DoubleHashH(buf.Bytes())
}

// SigningDigest returns the digest signed by the raw-hash scheme: the
// double-SHA256 of serialize(vote-without-signature).
func (m *MsgPaymentVote) SigningDigest() []byte {
	var buf bytes.Buffer
	_ = m.serializeWithoutSignature(&buf)
	h := chainhash.DoubleHashH(buf.Bytes())
	return h[:]
}

func errPayloadTooLarge(what string, got, max int) error {
	return &payloadTooLargeError{what: what, got: got, max: max}
}

type payloadTooLargeError struct {
	what     string
	got, max int
}

func (e *payloadTooLargeError) Error() string {
	return e.what + " exceeds maximum payload length"
}
