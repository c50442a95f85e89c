package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-unlock/internal/domain/page"
	"love-unlock/internal/domain/plan"
)

func TestPageCacheExpiresEntries(t *testing.T) {
	c, err := NewPageCache(4, time.Minute)
	require.NoError(t, err)
	now := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Add("ABC1234", &page.Page{Code: "ABC1234", Plan: plan.Free})

	got, ok := c.Get("ABC1234")
	require.True(t, ok)
	got.Plan = plan.Ultimate

	again, ok := c.Get("ABC1234")
	require.True(t, ok)
	assert.Equal(t, plan.Free, again.Plan, "cached value must not be shared")

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("ABC1234")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestPageCacheEvictsAndPurges(t *testing.T) {
	c, err := NewPageCache(2, time.Minute)
	require.NoError(t, err)

	c.Add("A", &page.Page{Code: "A"})
	c.Add("B", &page.Page{Code: "B"})
	c.Add("C", &page.Page{Code: "C"})

	_, ok := c.Get("A")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	c.Remove("B")
	_, ok = c.Get("B")
	assert.False(t, ok)

	c.Purge()
	assert.Zero(t, c.Len())
}
