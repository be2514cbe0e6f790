package domain

import "context"

// DonorRepository defines persistence for donors.
type DonorRepository interface {
	Create(ctx context.Context, donor *Donor) error
	GetByID(ctx context.Context, id string) (*Donor, error)
	Update(ctx context.Context, donor *Donor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter CohortFilter) ([]Donor, error)
	ListWithEligibility(ctx context.Context) ([]DonorWithEligibility, error)
	DistinctValues(ctx context.Context, field string) ([]string, error)
	Count(ctx context.Context) (int, error)
	ListRecent(ctx context.Context, limit int) ([]Donor, error)
}

// DonationRepository defines persistence for donation records.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	Update(ctx context.Context, donation *Donation) error
	Delete(ctx context.Context, id string) error
	ListByDonor(ctx context.Context, donorID string) ([]Donation, error)
	ListWithDonors(ctx context.Context) ([]DonationWithDonor, error)
	Stats(ctx context.Context) (*DonationStats, error)
}

// OrgProfileRepository stores the single organization settings row.
type OrgProfileRepository interface {
	Get(ctx context.Context) (*OrgProfile, error)
	Upsert(ctx context.Context, profile *OrgProfile) error
}
