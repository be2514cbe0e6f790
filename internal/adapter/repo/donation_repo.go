package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rakta/internal/domain"
	"rakta/internal/sqlinline"
)

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool, now: time.Now}
}

// Create inserts a new donation record.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) error {
	if donation.ID == "" {
		donation.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, sqlinline.QInsertDonation,
		donation.ID, donation.DonorID, donation.DonationDate, donation.Location, donation.Notes)
	return err
}

// Update rewrites a donation's mutable fields.
func (r *DonationRepositoryPG) Update(ctx context.Context, donation *domain.Donation) error {
	tag, err := r.pool.Exec(ctx, sqlinline.QUpdateDonation,
		donation.ID, donation.DonationDate, donation.Location, donation.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a single donation record.
func (r *DonationRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, sqlinline.QDeleteDonation, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByDonor returns one donor's donations, newest first.
func (r *DonationRepositoryPG) ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QListDonationsByDonor, donorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.DonorID, &d.DonationDate, &d.Location, &d.Notes, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// ListWithDonors returns every donation joined with its donor, newest first.
func (r *DonationRepositoryPG) ListWithDonors(ctx context.Context) ([]domain.DonationWithDonor, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QListDonationsWithDonors)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.DonationWithDonor
	for rows.Next() {
		var item domain.DonationWithDonor
		if err := rows.Scan(
			&item.Donation.ID, &item.Donation.DonorID, &item.Donation.DonationDate,
			&item.Donation.Location, &item.Donation.Notes, &item.Donation.CreatedAt, &item.Donation.UpdatedAt,
			&item.Donor.ID, &item.Donor.Name, &item.Donor.BloodGroup, &item.Donor.Phone,
			&item.Donor.Province, &item.Donor.District, &item.Donor.Municipality, &item.Donor.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Stats summarizes donation volume for the dashboard.
func (r *DonationRepositoryPG) Stats(ctx context.Context) (*domain.DonationStats, error) {
	now := r.now()
	row := r.pool.QueryRow(ctx, sqlinline.QDonationStats,
		now.Add(-30*24*time.Hour), now.Add(-90*24*time.Hour))

	var stats domain.DonationStats
	if err := row.Scan(&stats.Total, &stats.Last30Days, &stats.Last90Days); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.DonationStats{}, nil
		}
		return nil, err
	}
	return &stats, nil
}
