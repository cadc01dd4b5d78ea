package payments

import (
	"errors"
	"testing"

	"github.com/dashpay/mnengine/coinbase"
	"github.com/dashpay/mnengine/masternode"
)

func TestIsTransactionValidAcceptsBelowQuorum(t *testing.T) {
	engine, registry := newTestEngine()
	priv, pub := testKeyPair(1)
	outpoint := testOutpoint(1)
	registry.add(&masternode.Info{Outpoint: outpoint, PubKey: pub, CollateralAge: 100, ActiveSince: 1})

	v := signedVote(priv, outpoint, 10, "payee-a")
	if _, err := engine.IngestVote("peer1", 2, 2, v); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	// engine.params.SignaturesRequired is 2 on regtest; a single vote is
	// below quorum, so the block must be accepted unconditionally.
	tx := &coinbase.Tx{Outputs: []coinbase.Output{{Value: 1000}}}
	if err := engine.IsTransactionValid(tx, 10, 5000); err != nil {
		t.Fatalf("expected a below-quorum height to be accepted unconditionally, got %v", err)
	}
}

func TestIsTransactionValidAcceptsMatchingPayout(t *testing.T) {
	engine, registry := newTestEngine()
	priv1, pub1 := testKeyPair(1)
	priv2, pub2 := testKeyPair(2)
	out1, out2 := testOutpoint(1), testOutpoint(2)
	registry.add(&masternode.Info{Outpoint: out1, PubKey: pub1, CollateralAge: 100, ActiveSince: 1})
	registry.add(&masternode.Info{Outpoint: out2, PubKey: pub2, CollateralAge: 100, ActiveSince: 1})

	v1 := signedVote(priv1, out1, 10, "payee-a")
	v2 := signedVote(priv2, out2, 10, "payee-a")
	if _, err := engine.IngestVote("peer1", 2, 2, v1); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, err := engine.IngestVote("peer2", 2, 2, v2); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	reward := int64(5000)
	payment := engine.PaymentForHeight(reward)
	tx := &coinbase.Tx{Outputs: []coinbase.Output{
		{Value: reward - payment},
		{Value: payment, Script: []byte("payee-a")},
	}}

	if err := engine.IsTransactionValid(tx, 10, reward); err != nil {
		t.Fatalf("expected a matching payout to be valid, got %v", err)
	}
}

func TestIsTransactionValidRejectsMissingPayout(t *testing.T) {
	engine, registry := newTestEngine()
	priv1, pub1 := testKeyPair(1)
	priv2, pub2 := testKeyPair(2)
	out1, out2 := testOutpoint(1), testOutpoint(2)
	registry.add(&masternode.Info{Outpoint: out1, PubKey: pub1, CollateralAge: 100, ActiveSince: 1})
	registry.add(&masternode.Info{Outpoint: out2, PubKey: pub2, CollateralAge: 100, ActiveSince: 1})

	v1 := signedVote(priv1, out1, 10, "payee-a")
	v2 := signedVote(priv2, out2, 10, "payee-a")
	if _, err := engine.IngestVote("peer1", 2, 2, v1); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, err := engine.IngestVote("peer2", 2, 2, v2); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	reward := int64(5000)
	tx := &coinbase.Tx{Outputs: []coinbase.Output{{Value: reward}}}

	err := engine.IsTransactionValid(tx, 10, reward)
	if err == nil {
		t.Fatal("expected a missing masternode payout to be rejected")
	}
	var failure *ValidationFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected a *ValidationFailure, got %v", err)
	}
	if len(failure.PossiblePayees) != 1 || !failure.PossiblePayees[0].Equal([]byte("payee-a")) {
		t.Fatalf("expected payee-a listed as a possible payee, got %v", failure.PossiblePayees)
	}
}
