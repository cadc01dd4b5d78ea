package wire

import (
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

// Command strings for the remaining messages of spec.md §6.
const (
	CmdPaymentSync     = "mnpaymentsync"
	CmdSyncStatusCount = "ssc"
	CmdInvPayment      = "inv"
	CmdGetData         = "getdata"
)

// MaxInvPerPaymentSync bounds a single inventory batch.
const MaxInvPerPaymentSync = 20 * 200 // 20 heights x SIGNATURES_TOTAL-ish fanout, generously bounded.

// MsgPaymentSync requests a sync of payment votes. A responding node answers
// with an inv of vote hashes for heights in [tip, tip+20), per spec.md §6.
type MsgPaymentSync struct {
	// Nonce disambiguates repeated sync requests from the same peer; zero
	// means "full sync", matching CMasternodePayments::Sync's
	// nCountNeeded=0 special case in the source.
	Nonce uint64
}

// Encode writes the message to w.
func (m *MsgPaymentSync) Encode(w io.Writer) error { return WriteElement(w, m.Nonce) }

// Decode reads the message from r.
func (m *MsgPaymentSync) Decode(r io.Reader) error { return ReadElement(r, &m.Nonce) }

// Command returns the protocol command string.
func (m *MsgPaymentSync) Command() string { return CmdPaymentSync }

// MaxPayloadLength returns the maximum payload length.
func (m *MsgPaymentSync) MaxPayloadLength() uint32 { return 8 }

// InvVectType distinguishes what an inventory hash refers to.
type InvVectType uint32

const (
	// InvVectPaymentVote identifies a primary payment vote hash.
	InvVectPaymentVote InvVectType = iota
	// InvVectPaymentBlock identifies a payment-block (governance trigger)
	// hash.
	InvVectPaymentBlock
)

// InvVect is a single (type, hash) inventory entry.
type InvVect struct {
	Type InvVectType
	Hash chainhash.Hash
}

// MsgInvPayment announces or requests payment-related inventory: vote
// hashes for a sync response, or a getdata request for specific votes.
type MsgInvPayment struct {
	Invs []InvVect
}

// Encode writes the message to w.
func (m *MsgInvPayment) Encode(w io.Writer) error {
	if err := WriteElement(w, uint32(len(m.Invs))); err != nil {
		return err
	}
	for _, inv := range m.Invs {
		if err := WriteElements(w, uint32(inv.Type), &inv.Hash); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads the message from r.
func (m *MsgInvPayment) Decode(r io.Reader) error {
	var count uint32
	if err := ReadElement(r, &count); err != nil {
		return err
	}
	if count > MaxInvPerPaymentSync {
		return errors.Errorf("wire: inv count %d exceeds max %d", count, MaxInvPerPaymentSync)
	}
	m.Invs = make([]InvVect, count)
	for i := range m.Invs {
		var t uint32
		if err := ReadElements(r, &t, &m.Invs[i].Hash); err != nil {
			return err
		}
		m.Invs[i].Type = InvVectType(t)
	}
	return nil
}

// Command returns the protocol command string.
func (m *MsgInvPayment) Command() string { return CmdInvPayment }

// MaxPayloadLength returns the maximum payload length.
func (m *MsgInvPayment) MaxPayloadLength() uint32 {
	return 4 + MaxInvPerPaymentSync*(4+chainhash.HashSize)
}

// MsgSyncStatusCount is sent after a sync batch: (asset-id, count).
type MsgSyncStatusCount struct {
	AssetID uint32
	Count   uint32
}

// Encode writes the message to w.
func (m *MsgSyncStatusCount) Encode(w io.Writer) error {
	return WriteElements(w, m.AssetID, m.Count)
}

// Decode reads the message from r.
func (m *MsgSyncStatusCount) Decode(r io.Reader) error {
	return ReadElements(r, &m.AssetID, &m.Count)
}

// Command returns the protocol command string.
func (m *MsgSyncStatusCount) Command() string { return CmdSyncStatusCount }

// MaxPayloadLength returns the maximum payload length.
func (m *MsgSyncStatusCount) MaxPayloadLength() uint32 { return 8 }

// AssetPaymentVoteSync is the asset-id used for payment-vote sync progress
// reporting via MsgSyncStatusCount.
const AssetPaymentVoteSync uint32 = 4
