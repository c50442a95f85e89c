package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-unlock/internal/domain/plan"
	"love-unlock/internal/domain/unlock"
)

func TestPrintLedger(t *testing.T) {
	var buf bytes.Buffer
	err := printLedger(&buf, []*unlock.Request{{
		TransactionID: "AB12CD34EF",
		Code:          "K7Q2MZX",
		Plan:          plan.Romance,
		Amount:        decimal.NewFromInt(99),
		SenderSuffix:  "123",
		CreatedAt:     time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "CREATED")
	assert.Contains(t, out, "2024-02-14T10:00:00Z")
	assert.Contains(t, out, "ROM99")
	assert.Contains(t, out, "99.00")
	assert.Contains(t, out, "AB12CD34EF")
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"migrate"},
		{"plan", "set"},
		{"ratelimit", "purge"},
		{"ledger", "list"},
		{"ledger", "reconcile"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
