package wire

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

func TestMsgPaymentSyncEncodeDecodeRoundTrip(t *testing.T) {
	want := &MsgPaymentSync{Nonce: 987654321}

	var buf bytes.Buffer
	if err := want.Encode(&buf); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	got := &MsgPaymentSync{}
	if err := got.Decode(&buf); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got.Nonce != want.Nonce {
		t.Errorf("expected nonce %d, got %d", want.Nonce, got.Nonce)
	}
	if got.Command() != CmdPaymentSync {
		t.Errorf("expected command %q, got %q", CmdPaymentSync, got.Command())
	}
}

func TestMsgInvPaymentEncodeDecodeRoundTrip(t *testing.T) {
	var h1, h2 chainhash.Hash
	h1[0] = 1
	h2[0] = 2
	want := &MsgInvPayment{
		Invs: []InvVect{
			{Type: InvVectPaymentVote, Hash: h1},
			{Type: InvVectPaymentBlock, Hash: h2},
		},
	}

	var buf bytes.Buffer
	if err := want.Encode(&buf); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	got := &MsgInvPayment{}
	if err := got.Decode(&buf); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(got.Invs) != 2 || got.Invs[0] != want.Invs[0] || got.Invs[1] != want.Invs[1] {
		t.Errorf("round trip mismatch: got %+v, want %+v", got.Invs, want.Invs)
	}
	if got.Command() != CmdInvPayment {
		t.Errorf("expected command %q, got %q", CmdInvPayment, got.Command())
	}
}

func TestMsgInvPaymentEncodeDecodeEmpty(t *testing.T) {
	want := &MsgInvPayment{}

	var buf bytes.Buffer
	if err := want.Encode(&buf); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	got := &MsgInvPayment{}
	if err := got.Decode(&buf); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(got.Invs) != 0 {
		t.Errorf("expected no invs, got %d", len(got.Invs))
	}
}

func TestMsgInvPaymentDecodeRejectsOversizedCount(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteElement(&buf, uint32(MaxInvPerPaymentSync+1)); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if err := (&MsgInvPayment{}).Decode(&buf); err == nil {
		t.Fatal("expected an error decoding an inv count exceeding MaxInvPerPaymentSync")
	}
}

func TestMsgSyncStatusCountEncodeDecodeRoundTrip(t *testing.T) {
	want := &MsgSyncStatusCount{AssetID: AssetPaymentVoteSync, Count: 17}

	var buf bytes.Buffer
	if err := want.Encode(&buf); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	got := &MsgSyncStatusCount{}
	if err := got.Decode(&buf); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got.AssetID != want.AssetID || got.Count != want.Count {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if got.Command() != CmdSyncStatusCount {
		t.Errorf("expected command %q, got %q", CmdSyncStatusCount, got.Command())
	}
}
