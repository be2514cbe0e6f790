package domain

import "time"

// Donation is a single recorded blood donation. DonationDate carries day
// granularity only; duplicate dates for one donor are valid records.
type Donation struct {
	ID           string
	DonorID      string
	DonationDate time.Time
	Location     string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DonationWithDonor joins a donation with its donor for listing screens.
type DonationWithDonor struct {
	Donation Donation
	Donor    Donor
}

// DonationStats summarizes donation activity for the dashboard.
type DonationStats struct {
	Total      int
	Last30Days int
	Last90Days int
}
