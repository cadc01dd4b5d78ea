package payments

import (
	"testing"

	"github.com/dashpay/mnengine/masternode"
)

func TestPruneToTip(t *testing.T) {
	engine, registry := newTestEngine()
	priv, pub := testKeyPair(1)
	outpoint := testOutpoint(1)
	registry.add(&masternode.Info{Outpoint: outpoint, PubKey: pub, CollateralAge: 100, ActiveSince: 1})

	v := signedVote(priv, outpoint, 10, "payee-a")
	if _, err := engine.IngestVote("peer1", 2, 2, v); err != nil {
		t.Fatalf("unexpected error ingesting vote: %s", err)
	}

	engine.UpdatedTip(1000)

	removedHeights := engine.PruneToTip()
	if len(removedHeights) != 1 || removedHeights[0] != 10 {
		t.Fatalf("expected height 10 to be pruned, got %v", removedHeights)
	}
	if engine.TallyForHeight(10) != nil {
		t.Fatal("expected the tally at height 10 to be gone after pruning")
	}
	if engine.votes.HasVerified(v.Hash()) {
		t.Fatal("expected the vote to be pruned from the vote store")
	}
}
