package payments

// PruneToTip evicts every retained vote and tally below the current
// storage window (tip - StorageLimit()), mirroring
// CMasternodePayments::CheckAndRemove's tip-advance sweep. Callers should
// invoke this after each UpdatedTip call once the new tip has settled.
func (e *Engine) PruneToTip() []int32 {
	tip := e.Tip()
	belowHeight := tip - e.StorageLimit()

	removedHashes := e.votes.Prune(belowHeight)
	log.Debugf("pruned %d votes below height %d", len(removedHashes), belowHeight)

	e.tallyMu.Lock()
	var removedHeights []int32
	for height := range e.tallies {
		if height < belowHeight {
			delete(e.tallies, height)
			removedHeights = append(removedHeights, height)
		}
	}
	e.tallyMu.Unlock()

	return removedHeights
}
