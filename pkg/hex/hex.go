// Package hex handles the optionally 0x-prefixed hex encoding the staking
// backend uses for transaction payloads.
package hex

import (
	"encoding/hex"
	"strings"
)

// Encode returns the 0x-prefixed hex encoding of bz.
func Encode(bz []byte) string {
	return "0x" + hex.EncodeToString(bz)
}

// Decode decodes a hex string, accepting an optional 0x prefix.
func Decode(str string) ([]byte, error) {
	return hex.DecodeString(TrimPrefix(str))
}

// TrimPrefix strips a leading 0x, if present.
func TrimPrefix(str string) string {
	return strings.TrimPrefix(str, "0x")
}

// IsHex reports whether str parses as hex after prefix stripping.
func IsHex(str string) bool {
	_, err := Decode(str)
	return err == nil
}
