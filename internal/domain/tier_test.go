package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustDate(t *testing.T, year int, month time.Month, day int) time.Time {
	t.Helper()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestTierRanks(t *testing.T) {
	assert.Equal(t, 1, TierDebutant.Rank())
	assert.Equal(t, 2, TierMedium.Rank())
	assert.Equal(t, 3, TierExpert.Rank())
	assert.Equal(t, 0, Tier("gold").Rank())
}

func TestTierAtLeast(t *testing.T) {
	tests := []struct {
		name  string
		tier  Tier
		other Tier
		want  bool
	}{
		{name: "debutant reaches debutant", tier: TierDebutant, other: TierDebutant, want: true},
		{name: "debutant below medium", tier: TierDebutant, other: TierMedium, want: false},
		{name: "debutant below expert", tier: TierDebutant, other: TierExpert, want: false},
		{name: "medium reaches debutant", tier: TierMedium, other: TierDebutant, want: true},
		{name: "medium below expert", tier: TierMedium, other: TierExpert, want: false},
		{name: "expert reaches everything", tier: TierExpert, other: TierExpert, want: true},
		{name: "unknown tier reaches nothing valid", tier: Tier("gold"), other: TierDebutant, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tier.AtLeast(tt.other))
		})
	}
}

func TestTierValid(t *testing.T) {
	assert.True(t, TierDebutant.Valid())
	assert.True(t, TierMedium.Valid())
	assert.True(t, TierExpert.Valid())
	assert.False(t, Tier("").Valid())
	assert.False(t, Tier("gold").Valid())
}

func TestPaymentIntervalAddTo(t *testing.T) {
	start := mustDate(t, 2025, 3, 15)
	assert.Equal(t, mustDate(t, 2025, 4, 15), IntervalMonthly.AddTo(start))
	assert.Equal(t, mustDate(t, 2026, 3, 15), IntervalAnnual.AddTo(start))
}
