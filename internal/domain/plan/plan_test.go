package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want Plan
	}{
		{"", Free},
		{"free", Free},
		{" rom99 ", Romance},
		{"ULT199", Ultimate},
		{"crush49", Crush},
		{"PLATINUM", Free},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestHas(t *testing.T) {
	for _, f := range allFeatures {
		assert.True(t, Has(Ultimate, f), "ULT199 should have %s", f)
	}

	assert.True(t, Has(Romance, FeatureTemplates))
	assert.True(t, Has(Romance, FeatureVoice))
	assert.False(t, Has(Romance, FeatureHD))

	assert.True(t, Has(Free, FeatureProposal))
	assert.False(t, Has(Free, FeatureTemplates))
	assert.False(t, Has(Crush, FeatureTemplates))
	assert.True(t, Has(Crush, FeatureShare))

	assert.False(t, Has(Plan("nonsense"), FeatureTemplates))
}

func TestLimitsAndPricing(t *testing.T) {
	assert.Equal(t, 5, LimitsFor(Free).Memories)
	assert.Equal(t, 10, LimitsFor(Crush).Memories)
	assert.Equal(t, UnlimitedMemories, LimitsFor(Romance).Memories)
	assert.True(t, LimitsFor(Ultimate).HD)
	assert.False(t, LimitsFor(Romance).HD)

	amount, ok := Amount(Romance)
	require.True(t, ok)
	assert.Equal(t, "99", amount.String())

	amount, ok = Amount(Ultimate)
	require.True(t, ok)
	assert.Equal(t, "199", amount.String())

	_, ok = Amount(Crush)
	assert.False(t, ok)
	_, ok = Amount(Free)
	assert.False(t, ok)

	assert.True(t, IsPaid(Romance))
	assert.True(t, IsPaid(Ultimate))
	assert.False(t, IsPaid(Crush))
	assert.False(t, IsPaid(Free))
}

func TestAllDescribesEveryTier(t *testing.T) {
	all := All()
	require.Len(t, all, 4)
	assert.Equal(t, Free, all[0].Plan)
	assert.Nil(t, all[0].Price)
	require.NotNil(t, all[3].Price)
	assert.Equal(t, "199.00", *all[3].Price)
	assert.Equal(t, Currency, all[3].Currency)
	assert.Len(t, all[3].Features, len(allFeatures))
}
