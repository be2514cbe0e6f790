package handlers

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"rakta/internal/domain"
	"rakta/internal/infra"
)

func testApp() *App {
	discard := infra.Logger(zerolog.New(io.Discard))
	return &App{
		Donors:     &fakeDonorRepo{},
		Donations:  &fakeDonationRepo{},
		OrgProfile: &fakeOrgProfileRepo{},
		Logger:     &discard,
		JWTSecret:  "test-secret",
	}
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeDonorRepo struct {
	donors          []domain.Donor
	withEligibility []domain.DonorWithEligibility
	created         []domain.Donor
	err             error
}

func (f *fakeDonorRepo) Create(_ context.Context, donor *domain.Donor) error {
	if f.err != nil {
		return f.err
	}
	if donor.ID == "" {
		donor.ID = "generated-id"
	}
	f.created = append(f.created, *donor)
	return nil
}

func (f *fakeDonorRepo) GetByID(_ context.Context, id string) (*domain.Donor, error) {
	for _, d := range f.donors {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDonorRepo) Update(_ context.Context, donor *domain.Donor) error {
	for _, d := range f.donors {
		if d.ID == donor.ID {
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeDonorRepo) Delete(_ context.Context, id string) error {
	for _, d := range f.donors {
		if d.ID == id {
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeDonorRepo) List(_ context.Context, filter domain.CohortFilter) ([]domain.Donor, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Donor
	for _, d := range f.donors {
		if filter.Matches(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDonorRepo) ListWithEligibility(_ context.Context) ([]domain.DonorWithEligibility, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.withEligibility, nil
}

func (f *fakeDonorRepo) DistinctValues(_ context.Context, field string) ([]string, error) {
	if field != "blood_group" && field != "province" && field != "district" && field != "municipality" {
		return nil, domain.ErrNotFound
	}
	seen := map[string]bool{}
	var out []string
	for _, d := range f.donors {
		v := d.Province
		if field == "blood_group" {
			v = d.BloodGroup
		}
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeDonorRepo) Count(context.Context) (int, error) {
	return len(f.donors), nil
}

func (f *fakeDonorRepo) ListRecent(_ context.Context, limit int) ([]domain.Donor, error) {
	if limit > len(f.donors) {
		limit = len(f.donors)
	}
	return f.donors[:limit], nil
}

type fakeDonationRepo struct {
	byDonor map[string][]domain.Donation
	joined  []domain.DonationWithDonor
	stats   domain.DonationStats
	created []domain.Donation
	err     error
}

func (f *fakeDonationRepo) Create(_ context.Context, donation *domain.Donation) error {
	if f.err != nil {
		return f.err
	}
	if donation.ID == "" {
		donation.ID = "generated-id"
	}
	f.created = append(f.created, *donation)
	return nil
}

func (f *fakeDonationRepo) Update(_ context.Context, donation *domain.Donation) error {
	if donation.ID == "missing" {
		return domain.ErrNotFound
	}
	return nil
}

func (f *fakeDonationRepo) Delete(_ context.Context, id string) error {
	if id == "missing" {
		return domain.ErrNotFound
	}
	return nil
}

func (f *fakeDonationRepo) ListByDonor(_ context.Context, donorID string) ([]domain.Donation, error) {
	return f.byDonor[donorID], nil
}

func (f *fakeDonationRepo) ListWithDonors(context.Context) ([]domain.DonationWithDonor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.joined, nil
}

func (f *fakeDonationRepo) Stats(context.Context) (*domain.DonationStats, error) {
	return &f.stats, nil
}

type fakeOrgProfileRepo struct {
	profile *domain.OrgProfile
	saved   *domain.OrgProfile
}

func (f *fakeOrgProfileRepo) Get(context.Context) (*domain.OrgProfile, error) {
	if f.profile == nil {
		return nil, domain.ErrNotFound
	}
	return f.profile, nil
}

func (f *fakeOrgProfileRepo) Upsert(_ context.Context, profile *domain.OrgProfile) error {
	f.saved = profile
	return nil
}
