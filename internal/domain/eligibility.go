package domain

import "time"

// EligibilityWindow is the minimum elapsed time since a donor's most recent
// donation before they may donate again. The threshold is a fixed 90 days of
// wall-clock time, not calendar-month arithmetic, and is the single
// authoritative definition for filtering and broadcast gating.
const EligibilityWindow = 90 * 24 * time.Hour

// Eligibility is the derived donation-history verdict for one donor. It is
// computed on demand and never persisted.
type Eligibility struct {
	LastDonationDate *time.Time
	TotalDonations   int
	IsEligible       bool
}

// ComputeEligibility maps a donor's full donation history to an eligibility
// verdict as of now. The input order is not assumed. A donor with no
// donations is always eligible.
func ComputeEligibility(now time.Time, donations []Donation) Eligibility {
	if len(donations) == 0 {
		return Eligibility{IsEligible: true}
	}

	last := donations[0].DonationDate
	for _, d := range donations[1:] {
		if d.DonationDate.After(last) {
			last = d.DonationDate
		}
	}

	return Eligibility{
		LastDonationDate: &last,
		TotalDonations:   len(donations),
		IsEligible:       now.Sub(last) > EligibilityWindow,
	}
}
