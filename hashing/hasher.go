// Package hashing wraps the BLAKE3 hash function used by every component of
// this module and the CSPRNG that salts and nonces are drawn from. All
// digests are rendered as lowercase hex for interchange.
package hashing

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"
	"lukechampine.com/blake3"
)

// DigestSize is the default digest length in bytes.
const DigestSize = 32

// Hasher computes lowercase hex digests. Implementations must be safe for
// concurrent use. Mixing hashers between issuance and verification breaks
// every commitment check, so a credential and its presentations must be
// produced and verified with the same one.
type Hasher interface {
	Sum(data []byte) string
	SumWithLength(data []byte, n int) (string, error)
}

// Blake3 is the default Hasher. The zero value is ready to use.
type Blake3 struct{}

// Sum returns the 256-bit BLAKE3 digest of data.
func (Blake3) Sum(data []byte) string {
	d := blake3.Sum256(data)
	return hex.EncodeToString(d[:])
}

// SumWithLength returns the first n bytes of the BLAKE3 XOF over data.
func (Blake3) SumWithLength(data []byte, n int) (string, error) {
	if n <= 0 {
		return "", errors.Errorf("invalid digest length %d", n)
	}
	h := blake3.New(n, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

var defaultHasher = Blake3{}

// Default returns the hasher components fall back to when none is
// configured. It is a fixed value, not a settable registry.
func Default() Hasher {
	return defaultHasher
}

// Sum hashes data with the default hasher.
func Sum(data []byte) string {
	return defaultHasher.Sum(data)
}

// SumString hashes text with the default hasher.
func SumString(text string) string {
	return defaultHasher.Sum([]byte(text))
}

// SumWithLength hashes data to an n-byte digest with the default hasher.
func SumWithLength(data []byte, n int) (string, error) {
	return defaultHasher.SumWithLength(data, n)
}

// Sum160 returns a 160-bit digest, the first 20 bytes of the XOF output.
func Sum160(data []byte) string {
	out, err := defaultHasher.SumWithLength(data, 20)
	if err != nil {
		panic(err) // unreachable, length is fixed
	}
	return out
}

// RandomHex returns n cryptographically random bytes as lowercase hex.
func RandomHex(n int) (string, error) {
	if n <= 0 {
		return "", errors.Errorf("invalid random length %d", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}
	return hex.EncodeToString(buf), nil
}
