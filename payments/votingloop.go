package payments

import (
	"github.com/dashpay/mnengine/crypto"
)

// selfVoteLookahead is the number of blocks past the tip a self-operated
// masternode votes for, per spec.md §4.3 "Voting loop".
const selfVoteLookahead = 10

// VoteForNextHeight runs one iteration of the self-voting loop: if this
// node is operating as a masternode (SetSelfIdentity was called) and is
// still within the top ranked set, it asks the registry for the next
// payee, signs a fresh vote for tip+selfVoteLookahead, records it locally,
// and returns it for the caller to relay. It returns (nil, false) if this
// node isn't voting this round, for any reason short of an error.
func (e *Engine) VoteForNextHeight() (*Vote, bool) {
	if e.self == nil {
		return nil, false
	}

	targetHeight := e.Tip() + selfVoteLookahead
	rankSeed := targetHeight - 101
	rank, ok := e.registry.RankOf(e.self.Outpoint, rankSeed)
	if !ok || rank > e.params.SignaturesTotal {
		return nil, false
	}

	payeeOutpoint, ok := e.registry.NextPayee(e.params.MinConfirmations, e.params.MnUpdateThreshold)
	if !ok {
		return nil, false
	}
	info, ok := e.registry.Lookup(payeeOutpoint)
	if !ok {
		return nil, false
	}

	v := &Vote{
		Voter:  e.self.Outpoint,
		Height: targetHeight,
		Payee:  info.PayoutScript,
	}

	if e.Tip() > e.params.SignHashThreshold {
		v.Signature = e.self.SignVote(v.SigningDigest())
	} else {
		message := crypto.LegacyMessage(shortOutpoint(e.self.Outpoint), targetHeight, payeeASMOrHex(v.Payee))
		v.Signature = e.self.SignVote(crypto.DoubleSHA256(message))
	}

	e.tallyMu.Lock()
	tally := e.getOrCreateTally(targetHeight)
	err := e.votes.InsertVerified(v)
	if err != nil {
		e.tallyMu.Unlock()
		return nil, false
	}
	tally.AddVote(v)
	e.tallyMu.Unlock()

	return v, true
}
