// Package wire implements the peer-facing message shapes of spec.md §6:
// vote gossip, sync requests and their inventory-count acknowledgement.
// Encoding follows the same "WriteElement dispatches on concrete type"
// convention used across the teacher's wire/serialization packages, kept
// deliberately small since the only element types this subsystem's messages
// need are integers, byte slices, and 32-byte hashes.
package wire

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("wire: no encoding for this type")

// MaxVarBytesLen bounds any single length-prefixed byte slice this package
// decodes, guarding a malicious or corrupt peer from claiming an enormous
// allocation via a forged length prefix.
const MaxVarBytesLen = 1 << 20 // 1 MiB

// WriteElement writes the little-endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	switch e := element.(type) {
	case int32:
		return binary.Write(w, binary.LittleEndian, e)
	case uint32:
		return binary.Write(w, binary.LittleEndian, e)
	case int64:
		return binary.Write(w, binary.LittleEndian, e)
	case uint64:
		return binary.Write(w, binary.LittleEndian, e)
	case uint8:
		return binary.Write(w, binary.LittleEndian, e)
	case bool:
		var b uint8
		if e {
			b = 1
		}
		return binary.Write(w, binary.LittleEndian, b)
	case chainhash.Hash:
		_, err := w.Write(e[:])
		return err
	case *chainhash.Hash:
		_, err := w.Write(e[:])
		return err
	case []byte:
		if err := WriteElement(w, uint32(len(e))); err != nil {
			return err
		}
		_, err := w.Write(e)
		return err
	case string:
		return WriteElement(w, []byte(e))
	}
	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
}

// WriteElements writes multiple items to w in order.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		if err := WriteElement(w, element); err != nil {
			return err
		}
	}
	return nil
}

// ReadElement reads the next sequence of bytes from r into element,
// depending on element's concrete pointer type.
func ReadElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *int32:
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return err
		}
		*e = v
		return nil
	case *uint32:
		return binary.Read(r, binary.LittleEndian, e)
	case *int64:
		var v int64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return err
		}
		*e = v
		return nil
	case *uint64:
		return binary.Read(r, binary.LittleEndian, e)
	case *uint8:
		return binary.Read(r, binary.LittleEndian, e)
	case *bool:
		var b uint8
		if err := binary.Read(r, binary.LittleEndian, &b); err != nil {
			return err
		}
		*e = b != 0
		return nil
	case *chainhash.Hash:
		_, err := io.ReadFull(r, e[:])
		return err
	case *[]byte:
		var length uint32
		if err := ReadElement(r, &length); err != nil {
			return err
		}
		if length > MaxVarBytesLen {
			return errors.Errorf("wire: byte slice length %d exceeds max %d", length, MaxVarBytesLen)
		}
		buf := make([]byte, length)
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		*e = buf
		return nil
	case *string:
		var buf []byte
		if err := ReadElement(r, &buf); err != nil {
			return err
		}
		*e = string(buf)
		return nil
	}
	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
}

// ReadElements reads multiple items from r in order.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		if err := ReadElement(r, element); err != nil {
			return err
		}
	}
	return nil
}

// IsMalformedError reports whether err indicates a truncated or otherwise
// malformed wire payload rather than a transport-level failure.
func IsMalformedError(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

// Message is implemented by every message type in this package, in the same
// shape the teacher's wire.Message implementations use.
type Message interface {
	Encode(w io.Writer) error
	Decode(r io.Reader) error
	Command() string
	MaxPayloadLength() uint32
}
