// Package utils provides utility functions for the application.
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// uidAlphabet is the URL-safe alphabet used for generated short link identifiers
const uidAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var uidBase = big.NewInt(int64(len(uidAlphabet)))

// GenerateUID returns a random base62 identifier of length n.
// It does not guarantee uniqueness; the unique index on short_links.uid is
// the authority, and creation retries on a collision.
func GenerateUID(n int) (string, error) {
	if n <= 0 {
		n = DefaultUIDLength
	}
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, uidBase)
		if err != nil {
			return "", fmt.Errorf("failed to draw random index: %w", err)
		}
		b.WriteByte(uidAlphabet[idx.Int64()])
	}
	return b.String(), nil
}
