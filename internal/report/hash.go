package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainReport is the hash domain for snapshots. The version suffix allows
// the algorithm to change without colliding with old hashes.
const DomainReport = "gedcheck/report/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns the content hash of the snapshot's canonical JSON.
func Hash(s Snapshot) (string, error) {
	data, err := s.Canonical()
	if err != nil {
		return "", fmt.Errorf("hash snapshot: %w", err)
	}
	return hashWithDomain(DomainReport, data), nil
}
