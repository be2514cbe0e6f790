package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func donationOn(date time.Time) Donation {
	return Donation{ID: "d", DonorID: "donor", DonationDate: date}
}

func TestComputeEligibilityNeverDonated(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got := ComputeEligibility(now, nil)

	assert.True(t, got.IsEligible)
	assert.Nil(t, got.LastDonationDate)
	assert.Equal(t, 0, got.TotalDonations)
}

func TestComputeEligibilityBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		daysAgo  time.Duration
		eligible bool
	}{
		{"91 days ago", 91 * 24 * time.Hour, true},
		{"90 days ago exactly", 90 * 24 * time.Hour, false},
		{"89 days ago", 89 * 24 * time.Hour, false},
		{"yesterday", 24 * time.Hour, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeEligibility(now, []Donation{donationOn(now.Add(-tc.daysAgo))})
			assert.Equal(t, tc.eligible, got.IsEligible)
		})
	}
}

func TestComputeEligibilityPicksMaxDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	oldest := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	latest := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	// Unordered input; the engine must not assume any ordering.
	got := ComputeEligibility(now, []Donation{
		donationOn(latest),
		donationOn(oldest),
		donationOn(time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC)),
	})

	require.NotNil(t, got.LastDonationDate)
	assert.Equal(t, latest, *got.LastDonationDate)
	assert.Equal(t, 3, got.TotalDonations)
	assert.False(t, got.IsEligible)
}

func TestComputeEligibilityDuplicateDates(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	got := ComputeEligibility(now, []Donation{donationOn(date), donationOn(date)})

	require.NotNil(t, got.LastDonationDate)
	assert.Equal(t, date, *got.LastDonationDate)
	assert.Equal(t, 2, got.TotalDonations)
	assert.True(t, got.IsEligible)
}
