// Package cryptox collects the small hashing and randomness helpers used by
// the client and the backend double.
package cryptox

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// StableFraction maps key onto [0,1). Equal keys always give equal values,
// across processes and platforms.
func StableFraction(key string) float64 {
	sum := blake2b.Sum256([]byte(key))
	// top 53 bits: exactly representable, strictly below 1
	return float64(binary.BigEndian.Uint64(sum[:8])>>11) / (1 << 53)
}

// RandomDigits returns n random decimal digits, the first one non-zero.
func RandomDigits(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid length %d", n)
	}
	lo := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n-1)), nil)
	span := new(big.Int).Mul(lo, big.NewInt(9))

	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return v.Add(v, lo).String(), nil
}

// RandomHex returns size random bytes, hex-encoded.
func RandomHex(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
