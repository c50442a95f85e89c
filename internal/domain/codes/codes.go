// Package codes normalizes and validates the identifiers users type in: page codes,
// payment transaction ids and sender phone suffixes.
package codes

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const (
	// MinCodeLength is the shortest code accepted at any boundary.
	MinCodeLength = 3

	// GeneratedCodeLength is the length of codes minted for new pages.
	GeneratedCodeLength = 7

	// CodeAlphabet omits I, O, 0 and 1 so codes survive being read aloud.
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var (
	transactionIDPattern = regexp.MustCompile(`^[A-Z0-9]{9,12}$`)
	senderSuffixPattern  = regexp.MustCompile(`^[0-9]{3}$`)
)

// NormalizeCode trims, upper-cases and drops everything outside [A-Z0-9_-].
func NormalizeCode(s string) string {
	return keep(strings.ToUpper(strings.TrimSpace(s)), func(c byte) bool {
		return isUpperAlnum(c) || c == '_' || c == '-'
	})
}

// NormalizeTransactionID trims, upper-cases and drops everything outside [A-Z0-9].
func NormalizeTransactionID(s string) string {
	return keep(strings.ToUpper(strings.TrimSpace(s)), isUpperAlnum)
}

// ValidTransactionID expects an already normalized id.
func ValidTransactionID(s string) bool {
	return transactionIDPattern.MatchString(s)
}

func ValidSenderSuffix(s string) bool {
	return senderSuffixPattern.MatchString(strings.TrimSpace(s))
}

// ValidCode expects an already normalized code.
func ValidCode(s string) bool {
	return len(s) >= MinCodeLength
}

// NewCode returns a random code drawn from CodeAlphabet.
func NewCode() (string, error) {
	alphabetLen := big.NewInt(int64(len(CodeAlphabet)))
	result := make([]byte, GeneratedCodeLength)

	for i := range result {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("generate random index: %w", err)
		}
		result[i] = CodeAlphabet[idx.Int64()]
	}

	return string(result), nil
}

// NewSecret returns 16 random bytes hex encoded.
func NewSecret() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func keep(s string, allowed func(byte) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if allowed(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isUpperAlnum(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
