package payments

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dashpay/mnengine/masternode"
	mnwire "github.com/dashpay/mnengine/wire"
	"github.com/sasha-s/go-deadlock"
)

// VoteStore holds every verified payment vote currently retained, plus the
// bookkeeping needed to enforce at-most-one current vote per masternode per
// height. Grounded on
// original_source/src/masternodes/masternode-payments.h's
// mapMasternodePaymentVotesPrimary / mapMasternodesLastVote.
//
// Guarded by its own deadlock.RWMutex, per spec.md §5's lock-ordering rule:
// composite operations that also touch a Tally map must acquire the tally
// lock first.
type VoteStore struct {
	mu deadlock.RWMutex

	// verified holds only votes that have passed signature verification.
	verified map[chainhash.Hash]*Vote

	// seen holds every hash observed so far, verified or not, so a
	// duplicate hash is dropped before any work is repeated
	// (spec.md §4.3 step 4).
	seen map[chainhash.Hash]struct{}

	// lastVoteHeight is the height of the most recent verified vote from
	// each voter. It is never pruned: it exists purely to enforce the
	// double-vote guard and must satisfy spec.md §8 property 2
	// (non-decreasing per voter) even after old votes age out of verified.
	lastVoteHeight map[masternode.Outpoint]int32

	// secondary is the inert secondary vote-track storage (spec.md §9,
	// SPEC_FULL.md §4.8): round-tripped through persistence but never read
	// by any ingest or selection path.
	secondary map[int32][]mnwire.MsgPaymentVoteBundle
}

// NewVoteStore returns an empty VoteStore.
func NewVoteStore() *VoteStore {
	return &VoteStore{
		verified:       make(map[chainhash.Hash]*Vote),
		seen:           make(map[chainhash.Hash]struct{}),
		lastVoteHeight: make(map[masternode.Outpoint]int32),
		secondary:      make(map[int32][]mnwire.MsgPaymentVoteBundle),
	}
}

// MarkSeen records hash as observed if it wasn't already, returning true iff
// it was already known (verified or not) — the caller should drop the vote
// silently in that case (spec.md §4.3 step 3-4).
func (s *VoteStore) MarkSeen(hash chainhash.Hash) (alreadyKnown bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[hash]; ok {
		return true
	}
	s.seen[hash] = struct{}{}
	return false
}

// HasVerified reports whether hash names a verified vote.
func (s *VoteStore) HasVerified(hash chainhash.Hash) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.verified[hash]
	return ok
}

// Get returns the verified vote for hash, if any.
func (s *VoteStore) Get(hash chainhash.Hash) (*Vote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.verified[hash]
	return v, ok
}

// LastVoteHeight returns the height of the latest verified vote from voter.
func (s *VoteStore) LastVoteHeight(voter masternode.Outpoint) (int32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.lastVoteHeight[voter]
	return h, ok
}

// InsertVerified records v as verified. It fails with ErrAlreadyKnown if
// v.Hash() is already verified, or ErrDuplicateForHeight if voter's most
// recent verified vote height equals v.Height (spec.md §4.2). Only that
// latest height is compared; an earlier height the voter already voted at
// is not rejected.
func (s *VoteStore) InsertVerified(v *Vote) error {
	hash := v.Hash()
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.verified[hash]; ok {
		return ErrAlreadyKnown
	}
	if last, ok := s.lastVoteHeight[v.Voter]; ok && last == v.Height {
		return ErrDuplicateForHeight
	}
	s.verified[hash] = v
	s.seen[hash] = struct{}{}
	if last, ok := s.lastVoteHeight[v.Voter]; !ok || v.Height > last {
		s.lastVoteHeight[v.Voter] = v.Height
	}
	return nil
}

// Prune removes every verified vote with height < belowHeight and returns
// their hashes. lastVoteHeight entries are never pruned (see field doc).
func (s *VoteStore) Prune(belowHeight int32) []chainhash.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []chainhash.Hash
	for hash, v := range s.verified {
		if v.Height < belowHeight {
			delete(s.verified, hash)
			delete(s.seen, hash)
			removed = append(removed, hash)
		}
	}
	for height := range s.secondary {
		if height < belowHeight {
			delete(s.secondary, height)
		}
	}
	return removed
}

// Count returns the number of verified votes currently retained.
func (s *VoteStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.verified)
}

// PutSecondaryBundle stores an inert secondary-track bundle so it
// round-trips through persistence. It is never consulted by ingest or
// selection.
func (s *VoteStore) PutSecondaryBundle(height int32, bundle mnwire.MsgPaymentVoteBundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secondary[height] = append(s.secondary[height], bundle)
}
