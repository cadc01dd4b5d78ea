package payments

import "testing"

func TestVoteStoreMarkSeen(t *testing.T) {
	store := NewVoteStore()
	v := testVote(1, 100, "payee-a")

	if store.MarkSeen(v.Hash()) {
		t.Fatal("expected first MarkSeen to report not-already-known")
	}
	if !store.MarkSeen(v.Hash()) {
		t.Fatal("expected second MarkSeen of the same hash to report already-known")
	}
}

func TestVoteStoreInsertVerified(t *testing.T) {
	store := NewVoteStore()
	v := testVote(1, 100, "payee-a")
	v.Signature = []byte{0x01}

	if err := store.InsertVerified(v); err != nil {
		t.Fatalf("unexpected error inserting a fresh vote: %s", err)
	}
	if !store.HasVerified(v.Hash()) {
		t.Fatal("expected the vote to be verified after insertion")
	}
	got, ok := store.Get(v.Hash())
	if !ok || !got.Equal(v) {
		t.Fatal("expected Get to return the inserted vote")
	}
	height, ok := store.LastVoteHeight(v.Voter)
	if !ok || height != v.Height {
		t.Fatalf("expected LastVoteHeight to report %d, got %d (ok=%v)", v.Height, height, ok)
	}
}

func TestVoteStoreInsertVerifiedAlreadyKnown(t *testing.T) {
	store := NewVoteStore()
	v := testVote(1, 100, "payee-a")
	v.Signature = []byte{0x01}

	if err := store.InsertVerified(v); err != nil {
		t.Fatalf("unexpected error on first insert: %s", err)
	}

	dup := testVote(1, 100, "payee-a")
	dup.Signature = []byte{0x01}
	if err := store.InsertVerified(dup); err != ErrAlreadyKnown {
		t.Fatalf("expected ErrAlreadyKnown for a byte-identical vote, got %v", err)
	}
}

func TestVoteStoreInsertVerifiedDuplicateForHeight(t *testing.T) {
	store := NewVoteStore()
	v1 := testVote(1, 100, "payee-a")
	v1.Signature = []byte{0x01}
	if err := store.InsertVerified(v1); err != nil {
		t.Fatalf("unexpected error on first insert: %s", err)
	}

	// Same voter, same height, different payee: a different hash, but the
	// double-vote guard must still reject it.
	v2 := testVote(1, 100, "payee-b")
	v2.Signature = []byte{0x02}
	if err := store.InsertVerified(v2); err != ErrDuplicateForHeight {
		t.Fatalf("expected ErrDuplicateForHeight, got %v", err)
	}
}

func TestVoteStoreInsertVerifiedAllowsNewHeightFromSameVoter(t *testing.T) {
	store := NewVoteStore()
	v1 := testVote(1, 100, "payee-a")
	v1.Signature = []byte{0x01}
	if err := store.InsertVerified(v1); err != nil {
		t.Fatalf("unexpected error on first insert: %s", err)
	}

	v2 := testVote(1, 101, "payee-a")
	v2.Signature = []byte{0x02}
	if err := store.InsertVerified(v2); err != nil {
		t.Fatalf("expected a vote for a new height from the same voter to be accepted, got %v", err)
	}

	height, ok := store.LastVoteHeight(v1.Voter)
	if !ok || height != 101 {
		t.Fatalf("expected LastVoteHeight to advance to 101, got %d (ok=%v)", height, ok)
	}
}

func TestVoteStorePrune(t *testing.T) {
	store := NewVoteStore()
	older := testVote(1, 90, "payee-a")
	older.Signature = []byte{0x01}
	newer := testVote(2, 110, "payee-b")
	newer.Signature = []byte{0x02}

	if err := store.InsertVerified(older); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := store.InsertVerified(newer); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	removed := store.Prune(100)
	if len(removed) != 1 || removed[0] != older.Hash() {
		t.Fatalf("expected Prune(100) to remove only the height-90 vote, got %v", removed)
	}
	if store.HasVerified(older.Hash()) {
		t.Fatal("expected the pruned vote to no longer be verified")
	}
	if !store.HasVerified(newer.Hash()) {
		t.Fatal("expected the height-110 vote to survive pruning")
	}

	// lastVoteHeight is never pruned: the double-vote guard must still see
	// the pruned voter's last height.
	height, ok := store.LastVoteHeight(older.Voter)
	if !ok || height != 90 {
		t.Fatalf("expected LastVoteHeight to survive pruning, got %d (ok=%v)", height, ok)
	}
}

func TestVoteStoreCount(t *testing.T) {
	store := NewVoteStore()
	if store.Count() != 0 {
		t.Fatalf("expected an empty store to have Count()==0, got %d", store.Count())
	}
	v := testVote(1, 100, "payee-a")
	v.Signature = []byte{0x01}
	if err := store.InsertVerified(v); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if store.Count() != 1 {
		t.Fatalf("expected Count()==1 after one insert, got %d", store.Count())
	}
}
