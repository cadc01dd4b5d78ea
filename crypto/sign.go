// Package crypto implements the two payment-vote signing schemes named in
// spec.md §6: a raw-hash scheme used once the tip has passed the network's
// sign-hash threshold, and a legacy message-string scheme used before it.
// Both are ECDSA over secp256k1 via btcec/v2, in the same style
// Stackerstan-mindmachine and nostrocket-engine use for their own identity
// signatures.
package crypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Scheme selects which of the two payment-vote signing schemes to use.
type Scheme int

const (
	// SchemeRawHash signs the double-SHA256 of
	// serialize(vote-without-signature).
	SchemeRawHash Scheme = iota
	// SchemeLegacyMessage signs the ASCII string
	// "<voter-short>|<height>|<payee-asm>".
	SchemeLegacyMessage
)

func doubleHash(b []byte) []byte {
	return DoubleSHA256(b)
}

// DoubleSHA256 returns the double-SHA256 digest of b, the same message
// digest the legacy signing scheme signs and verifies.
func DoubleSHA256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// LegacyMessage builds the pre-threshold signing payload for a vote.
func LegacyMessage(voterShort string, height int32, payeeASM string) []byte {
	return []byte(fmt.Sprintf("%s|%d|%s", voterShort, height, payeeASM))
}

// SignRawHash signs digest (already the vote's signing digest, the
// double-SHA256 of the vote serialized without its signature; not the
// vote's hash) with privKey and returns a DER-encoded signature.
func SignRawHash(privKey *btcec.PrivateKey, digest []byte) []byte {
	sig := ecdsa.Sign(privKey, digest)
	return sig.Serialize()
}

// SignLegacyMessage signs the double-SHA256 of message with privKey, the
// same digest construction Bitcoin-derived message signing uses.
func SignLegacyMessage(privKey *btcec.PrivateKey, message []byte) []byte {
	sig := ecdsa.Sign(privKey, doubleHash(message))
	return sig.Serialize()
}

// VerifyRawHash reports whether sig is a valid signature over digest by
// pubKey.
func VerifyRawHash(pubKey *btcec.PublicKey, digest, sig []byte) bool {
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return parsed.Verify(digest, pubKey)
}

// VerifyLegacyMessage reports whether sig is a valid signature over the
// double-SHA256 of message by pubKey.
func VerifyLegacyMessage(pubKey *btcec.PublicKey, message, sig []byte) bool {
	return VerifyRawHash(pubKey, doubleHash(message), sig)
}

// VerifyEither tries both signature schemes in sequence, as spec.md §9
// requires when decoding a vote of unknown origin near the transition
// window: either succeeding is accepted.
func VerifyEither(pubKey *btcec.PublicKey, rawDigest, legacyMessage, sig []byte) bool {
	return VerifyRawHash(pubKey, rawDigest, sig) || VerifyLegacyMessage(pubKey, legacyMessage, sig)
}
