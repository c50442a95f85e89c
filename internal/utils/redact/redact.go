// Package redact hashes identifying values (client IPs, transaction ids) before they reach logs.
package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hasher produces short salted digests that stay stable within one deployment.
type Hasher struct {
	salt string
}

func NewHasher(salt string) *Hasher {
	return &Hasher{salt: salt}
}

// Hash returns the first 12 hex characters of sha256(salt + value).
func (h *Hasher) Hash(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(h.salt + value))
	return hex.EncodeToString(sum[:])[:12]
}

// IP hashes a client address, keeping the literal "unknown" readable.
func (h *Hasher) IP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}
	return "ip:" + h.Hash(ip)
}

// TransactionID keeps the last two characters so operators can match a report.
func (h *Hasher) TransactionID(trxID string) string {
	trxID = strings.TrimSpace(trxID)
	if len(trxID) < 3 {
		return "trx:" + h.Hash(trxID)
	}
	return "trx:" + h.Hash(trxID) + "~" + trxID[len(trxID)-2:]
}
