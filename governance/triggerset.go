package governance

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// triggerSet is the by-hash map of active governance-block triggers, per
// spec.md §3 "TriggerSet". At most one entry per object hash.
type triggerSet struct {
	byHash map[chainhash.Hash]*Block
}

func newTriggerSet() *triggerSet {
	return &triggerSet{byHash: make(map[chainhash.Hash]*Block)}
}

func (s *triggerSet) get(hash chainhash.Hash) (*Block, bool) {
	b, ok := s.byHash[hash]
	return b, ok
}

func (s *triggerSet) put(b *Block) {
	s.byHash[b.ObjectHash] = b
}

func (s *triggerSet) remove(hash chainhash.Hash) {
	delete(s.byHash, hash)
}

// bestForHeight returns the trigger with the highest AbsoluteYesCount among
// those with matching event height whose backing object is funding-cached,
// breaking ties by the lexicographically smallest object hash for a
// deterministic (if arbitrary) choice across nodes, since downstream
// validation is exact-match (spec.md §4.4).
func (s *triggerSet) bestForHeight(height int32, objects ObjectStore) (*Block, bool) {
	var best *Block
	var bestYes int64
	for hash, b := range s.byHash {
		if b.EventHeight != height {
			continue
		}
		obj, ok := objects.Lookup(hash)
		if !ok || !obj.IsFundingCached() {
			continue
		}
		yes := obj.AbsoluteYesCount()
		if best == nil || yes > bestYes || (yes == bestYes && bytes.Compare(hash[:], best.ObjectHash[:]) < 0) {
			best = b
			bestYes = yes
		}
	}
	return best, best != nil
}
