package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"love-unlock/internal/domain/unlock"
)

func TestUnlockRecorderCountsOutcome(t *testing.T) {
	before := testutil.ToFloat64(UnlockAttemptsTotal.WithLabelValues(unlock.OutcomeRateLimited))

	NewUnlockRecorder().UnlockAttempt(unlock.OutcomeRateLimited)

	after := testutil.ToFloat64(UnlockAttemptsTotal.WithLabelValues(unlock.OutcomeRateLimited))
	assert.Equal(t, before+1, after)
}
