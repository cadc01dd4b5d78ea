package payments

import (
	"testing"

	"github.com/dashpay/mnengine/masternode"
	"github.com/dashpay/mnengine/wire"
)

// addVoteAtHeight records v directly into the tally at height, bypassing the
// full ingest pipeline so tests can shape tallies precisely.
func addVoteAtHeight(e *Engine, height int32, voter masternode.Outpoint, payee string) *Vote {
	v := &Vote{Voter: voter, Height: height, Payee: []byte(payee)}
	e.tallyMu.Lock()
	tally := e.getOrCreateTally(height)
	tally.AddVote(v)
	e.tallyMu.Unlock()
	return v
}

func TestSyncAdvertisesLowDataHeightVotes(t *testing.T) {
	engine, _ := newTestEngine()
	engine.UpdatedTip(100)

	v := addVoteAtHeight(engine, 90, testOutpoint(1), "payee")

	inv := engine.Sync(100)
	if len(inv.Invs) != 1 {
		t.Fatalf("expected 1 advertised vote, got %d", len(inv.Invs))
	}
	if inv.Invs[0].Type != wire.InvVectPaymentVote || inv.Invs[0].Hash != v.Hash() {
		t.Errorf("expected the low-data vote's hash to be advertised, got %+v", inv.Invs[0])
	}
}

func TestSyncSkipsHeightsWithEnoughVotes(t *testing.T) {
	engine, _ := newTestEngine() // RegressionNetParams: SignaturesTotal = 3
	engine.UpdatedTip(100)

	addVoteAtHeight(engine, 90, testOutpoint(1), "payee")
	addVoteAtHeight(engine, 90, testOutpoint(2), "payee")
	addVoteAtHeight(engine, 90, testOutpoint(3), "payee")

	inv := engine.Sync(100)
	if len(inv.Invs) != 0 {
		t.Fatalf("expected a height at quorum to be skipped as low-data, got %d invs", len(inv.Invs))
	}
}

func TestSyncBoundsLowDataFanout(t *testing.T) {
	engine, _ := newTestEngine()
	engine.UpdatedTip(100)

	// 6 distinct low-data heights within [tip-SyncWindow, tip), each with
	// exactly one vote — more than LowDataFanout.
	heights := []int32{80, 82, 84, 86, 88, 90}
	for i, h := range heights {
		addVoteAtHeight(engine, h, testOutpoint(uint32(i+1)), "payee")
	}

	inv := engine.Sync(100)
	if len(inv.Invs) != LowDataFanout {
		t.Fatalf("expected exactly LowDataFanout=%d advertised votes, got %d", LowDataFanout, len(inv.Invs))
	}
}

func TestSyncAdvertisesBroadWindowVotes(t *testing.T) {
	engine, _ := newTestEngine()
	engine.UpdatedTip(100)

	v := addVoteAtHeight(engine, 105, testOutpoint(1), "payee")

	inv := engine.Sync(100)
	if len(inv.Invs) != 1 {
		t.Fatalf("expected 1 advertised vote from the broad window, got %d", len(inv.Invs))
	}
	if inv.Invs[0].Hash != v.Hash() {
		t.Errorf("expected the broad-window vote's hash to be advertised, got %+v", inv.Invs[0])
	}
}

func TestSyncIgnoresVotesOutsideEitherWindow(t *testing.T) {
	engine, _ := newTestEngine()
	engine.UpdatedTip(100)

	addVoteAtHeight(engine, 50, testOutpoint(1), "payee")  // before the low-data window
	addVoteAtHeight(engine, 130, testOutpoint(2), "payee") // after the broad window

	inv := engine.Sync(100)
	if len(inv.Invs) != 0 {
		t.Fatalf("expected no votes advertised outside either window, got %d", len(inv.Invs))
	}
}

func TestSyncCombinesLowDataAndBroadWindows(t *testing.T) {
	engine, _ := newTestEngine()
	engine.UpdatedTip(100)

	lowDataVote := addVoteAtHeight(engine, 95, testOutpoint(1), "payee")
	broadVote := addVoteAtHeight(engine, 110, testOutpoint(2), "payee")

	inv := engine.Sync(100)
	if len(inv.Invs) != 2 {
		t.Fatalf("expected 2 advertised votes, got %d", len(inv.Invs))
	}

	var sawLowData, sawBroad bool
	for _, iv := range inv.Invs {
		if iv.Hash == lowDataVote.Hash() {
			sawLowData = true
		}
		if iv.Hash == broadVote.Hash() {
			sawBroad = true
		}
	}
	if !sawLowData || !sawBroad {
		t.Fatalf("expected both the low-data and broad-window votes to be advertised, got %+v", inv.Invs)
	}
}
