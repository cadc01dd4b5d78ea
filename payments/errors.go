package payments

import "github.com/pkg/errors"

// Sentinel error kinds for vote ingest, per spec.md §7. Wrap with
// errors.Wrap for a stack trace; compare with errors.Is against these
// values to recover the kind.
var (
	// ErrAlreadyKnown is returned by VoteStore.InsertVerified when the
	// vote's hash is already marked verified.
	ErrAlreadyKnown = errors.New("payments: vote hash already known")

	// ErrDuplicateForHeight is returned by VoteStore.InsertVerified when
	// the voter's most recent verified vote is already at that height.
	ErrDuplicateForHeight = errors.New("payments: voter already voted at this height")

	// ErrRange indicates a vote height outside the acceptance window.
	ErrRange = errors.New("payments: vote height outside acceptance window")

	// ErrRank indicates the voter is not within the top-ranked set.
	ErrRank = errors.New("payments: voter not in top ranked set")

	// ErrSignature indicates signature verification failed.
	ErrSignature = errors.New("payments: signature verification failed")

	// ErrUnknownVoter indicates the registry has no record of the voter.
	ErrUnknownVoter = errors.New("payments: unknown voter")

	// ErrNotSynced indicates the node is not yet synced to the masternode
	// registry.
	ErrNotSynced = errors.New("payments: masternode registry not synced")

	// ErrPeerProtocolTooOld indicates a peer below the minimum protocol
	// version sent a payment message.
	ErrPeerProtocolTooOld = errors.New("payments: peer protocol version too old")
)
