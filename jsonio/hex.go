// Package jsonio is the JSON adapter (spec §6): the only place the engine
// touches I/O. Every wire integer is big-endian; every hash, address, and
// gindex is lowercase, 0x-prefixed hex.
package jsonio

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bf-rollup/obf/merkle"
	"github.com/bf-rollup/obf/state"
)

func encodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

// EncodeRoot renders a 32-byte root as lowercase 0x-hex.
func EncodeRoot(r merkle.Root) string { return encodeHex(r[:]) }

// DecodeRoot parses a 32-byte 0x-hex root.
func DecodeRoot(s string) (merkle.Root, error) {
	var r merkle.Root
	b, err := decodeHex(s)
	if err != nil {
		return r, fmt.Errorf("jsonio: invalid root %q: %w", s, err)
	}
	if len(b) != 32 {
		return r, fmt.Errorf("jsonio: root %q is %d bytes, want 32", s, len(b))
	}
	copy(r[:], b)
	return r, nil
}

// EncodeGindex renders a generalized index as a 32-byte big-endian
// 0x-hex value, the same width as a root, per spec §6's wire format.
func EncodeGindex(g merkle.Gindex) string {
	var b [32]byte
	binary.BigEndian.PutUint64(b[24:], g)
	return encodeHex(b[:])
}

// DecodeGindex parses a 32-byte big-endian 0x-hex generalized index.
func DecodeGindex(s string) (merkle.Gindex, error) {
	b, err := decodeHex(s)
	if err != nil {
		return 0, fmt.Errorf("jsonio: invalid gindex %q: %w", s, err)
	}
	if len(b) != 32 {
		return 0, fmt.Errorf("jsonio: gindex %q is %d bytes, want 32", s, len(b))
	}
	for _, c := range b[:24] {
		if c != 0 {
			return 0, fmt.Errorf("jsonio: gindex %q overflows 64 bits", s)
		}
	}
	return binary.BigEndian.Uint64(b[24:]), nil
}

// EncodeAddress renders a 20-byte sender address as 0x-hex.
func EncodeAddress(a state.Address) string { return encodeHex(a[:]) }

// DecodeAddress parses a 20-byte 0x-hex sender address.
func DecodeAddress(s string) (state.Address, error) {
	var a state.Address
	b, err := decodeHex(s)
	if err != nil {
		return a, fmt.Errorf("jsonio: invalid address %q: %w", s, err)
	}
	if len(b) != 20 {
		return a, fmt.Errorf("jsonio: address %q is %d bytes, want 20", s, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// EncodeBytes renders an arbitrary byte string as 0x-hex.
func EncodeBytes(b []byte) string { return encodeHex(b) }

// DecodeBytes parses an arbitrary 0x-hex byte string.
func DecodeBytes(s string) ([]byte, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("jsonio: invalid byte string %q: %w", s, err)
	}
	return b, nil
}
