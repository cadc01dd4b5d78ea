// Package script defines the opaque payee-destination byte string used
// throughout the payment and governance-block subsystem, plus the address
// decoding path governance payments use to derive one.
package script

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/pkg/errors"
)

// Script is an opaque byte string identifying a payment destination.
// Equality is byte-equal.
type Script []byte

// Equal reports whether s and other name the same destination.
func (s Script) Equal(other Script) bool {
	return bytes.Equal(s, other)
}

// String returns the hex encoding of s.
func (s Script) String() string {
	return hex.EncodeToString(s)
}

// ASM returns the disassembled script-language form of s, e.g.
// "OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY OP_CHECKSIG", used to build the
// legacy message-string signing payload (spec.md §6).
func (s Script) ASM() (string, error) {
	asm, err := txscript.DisasmString(s)
	if err != nil {
		return "", errors.Wrap(err, "disassembling script")
	}
	return asm, nil
}

// FromAddress decodes a text address against net and returns the standard
// output script that pays it, the path governance payments (spec.md §4.4)
// use. Regular masternode payouts use the registry's PayoutScript instead.
func FromAddress(address string, net *chaincfg.Params) (Script, error) {
	addr, err := btcutil.DecodeAddress(address, net)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding address %q", address)
	}
	if !addr.IsForNet(net) {
		return nil, errors.Errorf("address %q is not intended for network %s", address, net.Name)
	}
	out, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "building output script for %q", address)
	}
	return Script(out), nil
}
