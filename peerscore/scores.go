// Package peerscore accounts for peer misbehavior discovered while
// processing payment votes, under its own lock — separate from the tally
// and vote-store locks per spec.md §5 ("increments to a peer's score are
// recorded under a separate peer-scoring lock; never under the tally
// lock"). Naming and constant style are grounded on
// kaspanet-kaspad/peer/banscores.go.
package peerscore

import "github.com/sasha-s/go-deadlock"

// Score values for payment-vote misbehavior (spec.md §7).
const (
	// ScoreRankViolation is added when a future-height vote comes from a
	// voter outside the top-ranked set (spec.md §4.3 step 6).
	ScoreRankViolation = 20

	// ScoreSignatureFailure is added when signature verification fails for
	// a known voter on a future-height vote (spec.md §4.3 step 8).
	ScoreSignatureFailure = 20

	// ScoreBanThreshold is the cumulative score at which a caller should
	// disconnect and ban the peer. This subsystem only accumulates scores;
	// acting on the threshold is the connection layer's job.
	ScoreBanThreshold = 100
)

// Table accumulates misbehavior scores per peer, identified by an opaque
// key the connection layer controls (address, node ID, ...).
type Table struct {
	mu     deadlock.Mutex
	scores map[string]int
}

// NewTable returns an empty score table.
func NewTable() *Table {
	return &Table{scores: make(map[string]int)}
}

// Add increments peer's score by delta and returns the new total.
func (t *Table) Add(peer string, delta int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scores[peer] += delta
	return t.scores[peer]
}

// Score returns peer's current accumulated score.
func (t *Table) Score(peer string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scores[peer]
}

// ShouldBan reports whether peer has crossed ScoreBanThreshold.
func (t *Table) ShouldBan(peer string) bool {
	return t.Score(peer) >= ScoreBanThreshold
}

// Reset clears peer's accumulated score, e.g. on reconnect.
func (t *Table) Reset(peer string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.scores, peer)
}
