package payments

import "github.com/dashpay/mnengine/masternode"

// fakeRegistry is an in-memory masternode.Registry for tests: rank is
// simply insertion order among all entries, with no age/active threshold,
// which is all IngestVote's rank check needs.
type fakeRegistry struct {
	synced  bool
	order   []masternode.Outpoint
	entries map[masternode.Outpoint]*masternode.Info
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{entries: make(map[masternode.Outpoint]*masternode.Info)}
}

func (r *fakeRegistry) add(info *masternode.Info) {
	r.order = append(r.order, info.Outpoint)
	r.entries[info.Outpoint] = info
}

func (r *fakeRegistry) IsSynced() bool { return r.synced }

func (r *fakeRegistry) Size() int { return len(r.entries) }

func (r *fakeRegistry) Lookup(outpoint masternode.Outpoint) (*masternode.Info, bool) {
	info, ok := r.entries[outpoint]
	return info, ok
}

func (r *fakeRegistry) RankOf(outpoint masternode.Outpoint, seedHeight int32) (int, bool) {
	for i, o := range r.order {
		if o == outpoint {
			return i + 1, true
		}
	}
	return 0, false
}

func (r *fakeRegistry) NextPayee(minCollateralAge, minActiveTime int32) (masternode.Outpoint, bool) {
	var best *masternode.Info
	for _, o := range r.order {
		info := r.entries[o]
		if info.CollateralAge < minCollateralAge || info.ActiveSince < minActiveTime {
			continue
		}
		if best == nil || info.LastPaidBlock < best.LastPaidBlock {
			best = info
		}
	}
	if best == nil {
		return masternode.Outpoint{}, false
	}
	return best.Outpoint, true
}

func (r *fakeRegistry) RequestUpdate(outpoint masternode.Outpoint) {}
