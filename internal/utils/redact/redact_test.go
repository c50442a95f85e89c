package redact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashIsStableAndSalted(t *testing.T) {
	a := NewHasher("salt-a")
	b := NewHasher("salt-b")

	assert.Equal(t, a.Hash("10.0.0.1"), a.Hash("10.0.0.1"))
	assert.NotEqual(t, a.Hash("10.0.0.1"), b.Hash("10.0.0.1"))
	assert.Len(t, a.Hash("10.0.0.1"), 12)
	assert.Equal(t, "", a.Hash("  "))
}

func TestIPAndTransactionID(t *testing.T) {
	h := NewHasher("salt")

	assert.Equal(t, "unknown", h.IP("unknown"))
	assert.Equal(t, "unknown", h.IP(""))
	assert.True(t, strings.HasPrefix(h.IP("203.0.113.7"), "ip:"))
	assert.NotContains(t, h.IP("203.0.113.7"), "203.0.113.7")

	masked := h.TransactionID("ABCDE1234F")
	assert.True(t, strings.HasSuffix(masked, "~4F"))
	assert.NotContains(t, masked, "ABCDE")
}
