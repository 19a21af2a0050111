package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows a future change of algorithm.
const (
	DomainSelectionSet = "boostcard/selection-set/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SetHash computes the content address of a selection-set document.
// Two documents that differ only in key order or whitespace hash equally.
func SetHash(doc Value) (string, error) {
	canonical, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("SetHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSelectionSet, canonical), nil
}
