// Package masternode declares the narrow interface this subsystem uses to
// consult the masternode-list registry. The registry itself — deciding
// which outpoints are currently active masternodes, their collateral age,
// and their deterministic rank at a given seed height — is an external
// collaborator (spec.md §1); this package only names the shape of that
// collaborator, grounded on original_source/src/masternodes/masternode.cpp's
// GetMasternodeRank / GetNextMasternodeInQueueForPayment.
package masternode

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/wire"
)

// Outpoint identifies a masternode by its collateral UTXO. It is the voter
// identity used throughout the payment-vote engine.
type Outpoint = wire.OutPoint

// Info is the subset of registry-tracked masternode state this subsystem
// needs to rank, pay, and verify votes from a masternode.
type Info struct {
	Outpoint      Outpoint
	PubKey        *btcec.PublicKey
	PayoutScript  []byte
	CollateralAge int32 // confirmations on the collateral outpoint
	ActiveSince   int32 // blocks this masternode has been active, compared against NextPayee's minActiveTime
	LastPaidBlock int32
}

// Registry is the read-only lookup/rank API this subsystem consumes. A real
// implementation is backed by the node's masternode-list manager; tests use
// an in-memory fake.
type Registry interface {
	// IsSynced reports whether the local masternode list is fully synced to
	// the network. Vote ingest and self-voting are both suppressed until
	// this is true (spec.md §4.3 step 2).
	IsSynced() bool

	// Size returns the number of currently active masternodes, used to
	// compute the vote/tally storage window.
	Size() int

	// Lookup returns the registry entry for outpoint, or ok=false if the
	// registry has no record of it (spec.md §7 UnknownVoter).
	Lookup(outpoint Outpoint) (info *Info, ok bool)

	// RankOf returns the deterministic rank (1 = highest) of outpoint among
	// active masternodes, seeded at seedHeight, or ok=false if outpoint is
	// not currently active. Rank seeding at (vote.height - 101) is the
	// caller's responsibility (spec.md §4.3 step 6).
	RankOf(outpoint Outpoint, seedHeight int32) (rank int, ok bool)

	// NextPayee returns the outpoint of the masternode that should be paid
	// next: the eligible masternode with the longest time since last paid,
	// among those meeting the minimum collateral age and active-time
	// requirements. ok is false if no masternode currently qualifies.
	NextPayee(minCollateralAge, minActiveTime int32) (outpoint Outpoint, ok bool)

	// RequestUpdate asks the registry to refresh its record for outpoint,
	// used when a vote names an UnknownVoter (spec.md §7).
	RequestUpdate(outpoint Outpoint)
}
