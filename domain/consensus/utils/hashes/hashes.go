package hashes

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"math/big"

	"github.com/pkg/errors"
)

// HashWriter is used to incrementally hash data without concatenating all of
// it into a single buffer. Finalize returns the hex-encoded SHA-256 digest.
type HashWriter struct {
	inner hash.Hash
}

// NewHashWriter returns a new HashWriter
func NewHashWriter() HashWriter {
	return HashWriter{sha256.New()}
}

// WriteString writes s to the hash. SHA-256 writes never fail.
func (h HashWriter) WriteString(s string) {
	_, err := h.inner.Write([]byte(s))
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. SHA256's digest should never return an error"))
	}
}

// Finalize returns the hex-encoded digest of everything written so far
func (h HashWriter) Finalize() string {
	return hex.EncodeToString(h.inner.Sum(nil))
}

// HashString returns the hex-encoded SHA-256 digest of s
func HashString(s string) string {
	digest := sha256.Sum256([]byte(s))
	return hex.EncodeToString(digest[:])
}

// ToBig interprets a hex-encoded hash as a big-endian unsigned integer
func ToBig(hash string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(hash, 16)
	if !ok || value.Sign() < 0 {
		return nil, errors.Errorf("%q is not a hex-encoded hash", hash)
	}
	return value, nil
}
