package payments

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/dashpay/mnengine/crypto"
	"github.com/dashpay/mnengine/masternode"
	"github.com/dashpay/mnengine/peerscore"
	"github.com/dashpay/mnengine/script"
	"github.com/pkg/errors"
)

// IngestResult reports the outcome of a single IngestVote call, distinct
// from the error return so callers can tell "dropped, no misbehavior" apart
// from "dropped, peer scored" without inspecting error strings.
type IngestResult struct {
	Accepted         bool
	MisbehaviorDelta int
	ShouldRelay      bool
}

// IngestVote runs the peer vote-ingest pipeline of spec.md §4.3 steps 1-10.
// peerProtoVersion and minProtoVersion gate step 1; peer is the misbehavior
// accounting key for step 6/8's score increments (recorded under
// peerscore.Table's own lock, never under the tally lock, per spec.md §5).
func (e *Engine) IngestVote(peer string, peerProtoVersion, minProtoVersion uint32, v *Vote) (IngestResult, error) {
	// Step 1: minimum protocol version.
	if peerProtoVersion < minProtoVersion {
		return IngestResult{}, ErrPeerProtocolTooOld
	}

	// Step 2: registry must be synced.
	if !e.registry.IsSynced() {
		return IngestResult{}, ErrNotSynced
	}

	hash := v.Hash()

	// Step 3+4: already verified, or already seen as an unverified
	// placeholder -> drop silently, no error surfaced to the caller beyond
	// "not accepted".
	if e.votes.HasVerified(hash) {
		return IngestResult{}, nil
	}
	if alreadyKnown := e.votes.MarkSeen(hash); alreadyKnown {
		return IngestResult{}, nil
	}

	tip := e.Tip()
	storageLimit := e.StorageLimit()

	// Step 5: range check.
	if v.Height < tip-storageLimit || v.Height > tip+20 {
		return IngestResult{}, errors.Wrapf(ErrRange, "vote height %d outside [%d, %d]", v.Height, tip-storageLimit, tip+20)
	}

	isFutureHeight := v.Height > tip

	// Step 6: rank check, seeded at height-101.
	rankSeed := v.Height - 101
	rank, ok := e.registry.RankOf(v.Voter, rankSeed)
	if !ok || rank > e.params.SignaturesTotal {
		if isFutureHeight {
			delta := e.scores.Add(peer, peerscore.ScoreRankViolation)
			return IngestResult{MisbehaviorDelta: peerscore.ScoreRankViolation}, errors.Wrapf(ErrRank,
				"voter rank %d exceeds SignaturesTotal=%d (peer score now %d)", rank, e.params.SignaturesTotal, delta)
		}
		return IngestResult{}, errors.Wrap(ErrRank, "voter out of rank for historic height, dropped")
	}

	// Step 7: fetch voter pubkey.
	info, ok := e.registry.Lookup(v.Voter)
	if !ok {
		e.registry.RequestUpdate(v.Voter)
		return IngestResult{}, ErrUnknownVoter
	}

	// Step 8: signature verification, scheme selected by tip vs threshold,
	// but either scheme is accepted (spec.md §9 transition-window rule).
	if !e.verifySignature(info.PubKey, v) {
		if isFutureHeight {
			delta := e.scores.Add(peer, peerscore.ScoreSignatureFailure)
			return IngestResult{MisbehaviorDelta: peerscore.ScoreSignatureFailure}, errors.Wrapf(ErrSignature,
				"signature check failed (peer score now %d)", delta)
		}
		return IngestResult{}, ErrSignature
	}

	// Step 9+10: double-vote guard and insertion, atomic inside
	// InsertVerified. Tally lock is acquired first, per spec.md §5's fixed
	// lock order (tallies before votes).
	e.tallyMu.Lock()
	tally := e.getOrCreateTally(v.Height)
	err := e.votes.InsertVerified(v)
	if err != nil {
		e.tallyMu.Unlock()
		return IngestResult{}, err
	}
	tally.AddVote(v)
	e.tallyMu.Unlock()

	return IngestResult{Accepted: true, ShouldRelay: true}, nil
}

func (e *Engine) verifySignature(pubKey *btcec.PublicKey, v *Vote) bool {
	rawDigest := v.SigningDigest()
	legacyMessage := crypto.LegacyMessage(shortOutpoint(v.Voter), v.Height, payeeASMOrHex(v.Payee))

	if e.Tip() > e.params.SignHashThreshold {
		return crypto.VerifyEither(pubKey, rawDigest, legacyMessage, v.Signature)
	}
	return crypto.VerifyLegacyMessage(pubKey, legacyMessage, v.Signature) ||
		crypto.VerifyRawHash(pubKey, rawDigest, v.Signature)
}

func shortOutpoint(o masternode.Outpoint) string {
	return o.Hash.String()[:8]
}

func payeeASMOrHex(payee []byte) string {
	asm, err := script.Script(payee).ASM()
	if err != nil {
		return script.Script(payee).String()
	}
	return asm
}
