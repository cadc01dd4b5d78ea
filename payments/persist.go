package payments

import (
	"io"

	"github.com/pkg/errors"

	mnwire "github.com/dashpay/mnengine/wire"
)

// persistFormatVersion is bumped whenever the on-disk blob layout changes.
// Load rejects any other version outright rather than guessing at a
// migration.
const persistFormatVersion uint32 = 1

// ErrUnsupportedPersistVersion is returned by Load when the blob's version
// field doesn't match persistFormatVersion.
var ErrUnsupportedPersistVersion = errors.New("payments: unsupported persisted state version")

// Save writes the current verified-vote set and secondary-track bundles to
// w in the versioned, length-prefixed framing of spec.md §6 "Persisted
// state", using the same WriteElement-based encoding the wire messages
// use rather than a general-purpose serialization library. The
// per-height tally map is not written separately (see DESIGN.md): it is
// entirely a function of the verified votes and is rebuilt by Load.
func (e *Engine) Save(w io.Writer) error {
	e.votes.mu.RLock()
	votes := make([]*Vote, 0, len(e.votes.verified))
	for _, v := range e.votes.verified {
		votes = append(votes, v)
	}
	secondary := make(map[int32][]mnwire.MsgPaymentVoteBundle, len(e.votes.secondary))
	for height, bundles := range e.votes.secondary {
		secondary[height] = bundles
	}
	e.votes.mu.RUnlock()

	if err := mnwire.WriteElements(w, persistFormatVersion, uint32(len(votes))); err != nil {
		return err
	}
	for _, v := range votes {
		if err := v.toWire().Encode(w); err != nil {
			return errors.Wrap(err, "payments: encoding verified vote")
		}
	}

	var bundleCount int
	for _, bundles := range secondary {
		bundleCount += len(bundles)
	}
	if err := mnwire.WriteElement(w, uint32(bundleCount)); err != nil {
		return err
	}
	for _, bundles := range secondary {
		for i := range bundles {
			if err := bundles[i].Encode(w); err != nil {
				return errors.Wrap(err, "payments: encoding secondary bundle")
			}
		}
	}
	return nil
}

// Load reads a blob written by Save into a fresh Engine state, discarding
// any vote outside the current storage window (spec.md §6: "any votes out
// of the current height window are discarded on load"). It replaces the
// Engine's VoteStore and tally map wholesale; callers should call this
// once at startup before ingest begins.
func (e *Engine) Load(r io.Reader) error {
	var version, voteCount uint32
	if err := mnwire.ReadElements(r, &version, &voteCount); err != nil {
		return errors.Wrap(err, "payments: reading persisted state header")
	}
	if version != persistFormatVersion {
		return errors.Wrapf(ErrUnsupportedPersistVersion, "got version %d, want %d", version, persistFormatVersion)
	}

	tip := e.Tip()
	storageLimit := e.StorageLimit()
	minHeight := tip - storageLimit

	votes := NewVoteStore()
	tallies := make(map[int32]*Tally)

	for i := uint32(0); i < voteCount; i++ {
		var wv mnwire.MsgPaymentVote
		if err := wv.Decode(r); err != nil {
			return errors.Wrap(err, "payments: decoding persisted vote")
		}
		if tip != 0 && wv.Height < minHeight {
			continue
		}
		v := &Vote{Voter: wv.Voter, Height: wv.Height, Payee: wv.Payee, Signature: wv.Signature}
		if err := votes.InsertVerified(v); err != nil {
			continue
		}
		tally, ok := tallies[v.Height]
		if !ok {
			tally = NewTally(v.Height)
			tallies[v.Height] = tally
		}
		tally.AddVote(v)
	}

	var bundleCount uint32
	if err := mnwire.ReadElement(r, &bundleCount); err != nil {
		return errors.Wrap(err, "payments: reading persisted secondary bundle count")
	}
	for i := uint32(0); i < bundleCount; i++ {
		var bundle mnwire.MsgPaymentVoteBundle
		if err := bundle.Decode(r); err != nil {
			return errors.Wrap(err, "payments: decoding persisted secondary bundle")
		}
		if tip == 0 || bundle.Height >= minHeight {
			votes.PutSecondaryBundle(bundle.Height, bundle)
		}
	}

	e.tallyMu.Lock()
	e.votes = votes
	e.tallies = tallies
	e.tallyMu.Unlock()

	return nil
}
