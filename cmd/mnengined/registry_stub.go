package main

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/sasha-s/go-deadlock"

	"github.com/dashpay/mnengine/governance"
	"github.com/dashpay/mnengine/masternode"
)

// standaloneRegistry is a minimal in-memory stand-in for the masternode-list
// registry spec.md §1 names as an external collaborator. A real deployment
// replaces it with the host node's own masternode-list manager; this stub
// exists only so mnengined can start up and run its self-tests
// (regtest/local use) without one, in the same spirit as
// kaspanet-kaspad/stability-tests' in-process test doubles.
type standaloneRegistry struct {
	mu      deadlock.RWMutex
	synced  bool
	entries map[masternode.Outpoint]*masternode.Info
}

func newStandaloneRegistry() *standaloneRegistry {
	return &standaloneRegistry{entries: make(map[masternode.Outpoint]*masternode.Info)}
}

func (r *standaloneRegistry) IsSynced() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.synced
}

func (r *standaloneRegistry) setSynced(synced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.synced = synced
}

func (r *standaloneRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *standaloneRegistry) Lookup(outpoint masternode.Outpoint) (*masternode.Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.entries[outpoint]
	return info, ok
}

func (r *standaloneRegistry) RankOf(outpoint masternode.Outpoint, seedHeight int32) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.entries[outpoint]; !ok {
		return 0, false
	}
	return 1, true
}

func (r *standaloneRegistry) NextPayee(minCollateralAge, minActiveTime int32) (masternode.Outpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var best *masternode.Info
	for _, info := range r.entries {
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

func (r *standaloneRegistry) RequestUpdate(outpoint masternode.Outpoint) {}

// standaloneObjectStore is the analogous stand-in for the governance-object
// store: a real deployment resolves governance object hashes against the
// host node's governance-object manager (vote-tallied proposals and
// triggers received over the p2p network).
type standaloneObjectStore struct {
	mu      deadlock.RWMutex
	objects map[chainhash.Hash]governance.Object
}

func newStandaloneObjectStore() *standaloneObjectStore {
	return &standaloneObjectStore{objects: make(map[chainhash.Hash]governance.Object)}
}

func (s *standaloneObjectStore) Lookup(hash chainhash.Hash) (governance.Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[hash]
	return obj, ok
}
