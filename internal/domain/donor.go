package domain

import "time"

// Donor is a registered blood donor.
type Donor struct {
	ID           string
	Name         string
	BloodGroup   string
	Phone        string
	Province     string
	District     string
	Municipality string
	CreatedAt    time.Time
}

// DonorWithEligibility pairs a donor with its derived eligibility verdict.
type DonorWithEligibility struct {
	Donor       Donor
	Eligibility Eligibility
}
