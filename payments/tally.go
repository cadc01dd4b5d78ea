package payments

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dashpay/mnengine/script"
)

// payeeEntry tracks the vote hashes naming one payee at one height. Vote
// count is len(voteHashes). Grounded on
// original_source/src/masternodes/masternode-payments.h's CMasternodePayee.
type payeeEntry struct {
	payee      script.Script
	voteHashes map[chainhash.Hash]struct{}
	// insertOrder is set once, when the entry is first created, to the
	// entry's position in Tally.order. BestPayee's "first-inserted"
	// tie-break comes from iterating Tally.order, not from this field.
	insertOrder int
}

func (e *payeeEntry) voteCount() int { return len(e.voteHashes) }

func (e *payeeEntry) addVoteHash(h chainhash.Hash) {
	if e.voteHashes == nil {
		e.voteHashes = make(map[chainhash.Hash]struct{})
	}
	e.voteHashes[h] = struct{}{}
}

func (e *payeeEntry) hasVoteHash(h chainhash.Hash) bool {
	_, ok := e.voteHashes[h]
	return ok
}

// Tally aggregates votes per payee for a single height. At most one entry
// exists per distinct payee script. Grounded on
// CMasternodeBlockPayees.
type Tally struct {
	Height int32
	// order preserves insertion order for a deterministic, if
	// cross-node-arbitrary, tie-break (spec.md §4.1).
	order   []*payeeEntry
	byPayee map[string]*payeeEntry
}

// NewTally returns an empty tally for height.
func NewTally(height int32) *Tally {
	return &Tally{Height: height, byPayee: make(map[string]*payeeEntry)}
}

// AddVote records v against its payee's entry, creating the entry if this
// is the first vote seen for that payee at this height. Idempotent: adding
// the same vote hash twice has no additional effect.
func (t *Tally) AddVote(v *Vote) {
	key := string(v.Payee)
	entry, ok := t.byPayee[key]
	if !ok {
		entry = &payeeEntry{payee: v.Payee, insertOrder: len(t.order)}
		t.byPayee[key] = entry
		t.order = append(t.order, entry)
	}
	entry.addVoteHash(v.Hash())
}

// BestPayee returns the payee with the maximum vote count, breaking ties by
// first-inserted. The second return is false if the tally has no entries.
//
// Cross-node tie-break is not guaranteed to agree between nodes that
// observed votes in a different order; callers must not treat BestPayee as
// consensus-critical on its own — see quorum enforcement in
// Engine.IsTransactionValid.
func (t *Tally) BestPayee() (script.Script, bool) {
	var best *payeeEntry
	for _, entry := range t.order {
		if best == nil || entry.voteCount() > best.voteCount() {
			best = entry
		}
	}
	if best == nil {
		return nil, false
	}
	return best.payee, true
}

// HasPayeeWithVotes reports whether some entry for payee has at least n
// votes.
func (t *Tally) HasPayeeWithVotes(payee script.Script, n int) bool {
	entry, ok := t.byPayee[string(payee)]
	if !ok {
		return false
	}
	return entry.voteCount() >= n
}

// MaxVotes returns the highest vote count across all payees at this height,
// or 0 if the tally is empty.
func (t *Tally) MaxVotes() int {
	max := 0
	for _, entry := range t.order {
		if c := entry.voteCount(); c > max {
			max = c
		}
	}
	return max
}

// PayeesWithVotesAtLeast returns every payee whose vote count is >= n, in
// insertion order — used to build the diagnostic list of possible payees
// for a ValidationFailure (spec.md §4.3, scenario S2).
func (t *Tally) PayeesWithVotesAtLeast(n int) []script.Script {
	var out []script.Script
	for _, entry := range t.order {
		if entry.voteCount() >= n {
			out = append(out, entry.payee)
		}
	}
	return out
}

// VoteHashes returns the hash of every vote recorded in the tally, across
// all payee entries, in no particular order — used to build inventory
// advertisements for a sync response.
func (t *Tally) VoteHashes() []chainhash.Hash {
	var out []chainhash.Hash
	for _, entry := range t.order {
		for h := range entry.voteHashes {
			out = append(out, h)
		}
	}
	return out
}

// containsHash reports whether any entry references h, the Tally side of
// the VoteStore/Tally cross-invariant (spec.md §8, property 1). Nothing in
// this package calls it.
func (t *Tally) containsHash(h chainhash.Hash) bool {
	for _, entry := range t.order {
		if entry.hasVoteHash(h) {
			return true
		}
	}
	return false
}
