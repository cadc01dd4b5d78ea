package wire

import "io"

// CmdPaymentVoteBundle is the secondary payment-vote track's command. The
// secondary track exists only so the wire shape and persisted blob remain
// forward-compatible with a peer that still sends it (spec.md §9); no code
// in this repo processes the votes it carries.
const CmdPaymentVoteBundle = "mnwb"

// MaxVotesPerBundle bounds a single bundle's vote count.
const MaxVotesPerBundle = 64

// MsgPaymentVoteBundle is the secondary payment-vote track: a bundle of
// votes for one height. It decodes and encodes but its contents are never
// ingested into VoteStore or PayeeTally.
type MsgPaymentVoteBundle struct {
	Height int32
	Votes  []MsgPaymentVote
}

// Encode writes the message to w.
func (m *MsgPaymentVoteBundle) Encode(w io.Writer) error {
	if err := WriteElements(w, m.Height, uint32(len(m.Votes))); err != nil {
		return err
	}
	for i := range m.Votes {
		if err := m.Votes[i].Encode(w); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads the message from r.
func (m *MsgPaymentVoteBundle) Decode(r io.Reader) error {
	var count uint32
	if err := ReadElements(r, &m.Height, &count); err != nil {
		return err
	}
	if count > MaxVotesPerBundle {
		return errPayloadTooLarge("vote bundle", int(count), MaxVotesPerBundle)
	}
	m.Votes = make([]MsgPaymentVote, count)
	for i := range m.Votes {
		if err := m.Votes[i].Decode(r); err != nil {
			return err
		}
	}
	return nil
}

// Command returns the protocol command string.
func (m *MsgPaymentVoteBundle) Command() string { return CmdPaymentVoteBundle }

// MaxPayloadLength returns the maximum payload length.
func (m *MsgPaymentVoteBundle) MaxPayloadLength() uint32 {
	single := (&MsgPaymentVote{}).MaxPayloadLength()
	return 8 + MaxVotesPerBundle*single
}
