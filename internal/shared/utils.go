// Package shared provides helpers for random identifiers and wiping
// sensitive buffers.
package shared

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// UppercaseDigits is the alphabet used for storage-safe random names.
const UppercaseDigits = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MakeRandHexString reads size bytes from crypto/rand and returns them hex
// encoded, so the result is 2*size characters long.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// RandomString returns n characters drawn uniformly from alphabet using
// crypto/rand.
func RandomString(n int, alphabet string) (string, error) {
	if alphabet == "" {
		return "", fmt.Errorf("empty alphabet")
	}
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

// WipeByteArray overwrites b with zeros. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
