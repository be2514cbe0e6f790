package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rakta/internal/domain"
	"rakta/internal/sqlinline"
)

// DonorRepositoryPG implements domain.DonorRepository using PostgreSQL.
type DonorRepositoryPG struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewDonorRepository creates a new donor repo.
func NewDonorRepository(pool *pgxpool.Pool) *DonorRepositoryPG {
	return &DonorRepositoryPG{pool: pool, now: time.Now}
}

// Create inserts a new donor record, assigning an id when absent.
func (r *DonorRepositoryPG) Create(ctx context.Context, donor *domain.Donor) error {
	if donor.ID == "" {
		donor.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, sqlinline.QInsertDonor,
		donor.ID, donor.Name, donor.BloodGroup, donor.Phone, donor.Province, donor.District, donor.Municipality)
	return err
}

// GetByID fetches a single donor.
func (r *DonorRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donor, error) {
	row := r.pool.QueryRow(ctx, sqlinline.QGetDonorByID, id)
	var d domain.Donor
	err := row.Scan(&d.ID, &d.Name, &d.BloodGroup, &d.Phone, &d.Province, &d.District, &d.Municipality, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Update rewrites a donor's mutable fields.
func (r *DonorRepositoryPG) Update(ctx context.Context, donor *domain.Donor) error {
	tag, err := r.pool.Exec(ctx, sqlinline.QUpdateDonor,
		donor.ID, donor.Name, donor.BloodGroup, donor.Phone, donor.Province, donor.District, donor.Municipality)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a donor; donations cascade at the store level.
func (r *DonorRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, sqlinline.QDeleteDonor, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns donors matching every set filter field, newest first.
func (r *DonorRepositoryPG) List(ctx context.Context, filter domain.CohortFilter) ([]domain.Donor, error) {
	query := strings.Builder{}
	query.WriteString(sqlinline.QListDonorsBase)
	var args []any
	var conds []string
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("blood_group", filter.BloodGroup)
	add("province", filter.Province)
	add("district", filter.District)
	add("municipality", filter.Municipality)
	if len(conds) > 0 {
		query.WriteString("where " + strings.Join(conds, " and ") + "\n")
	}
	query.WriteString("order by created_at desc;")

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDonors(rows)
}

// ListWithEligibility returns every donor paired with its derived eligibility
// verdict, computed from the full donation history as of now.
func (r *DonorRepositoryPG) ListWithEligibility(ctx context.Context) ([]domain.DonorWithEligibility, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QListDonorsWithDonationDates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	order := []string{}
	byID := map[string]*struct {
		donor     domain.Donor
		donations []domain.Donation
	}{}

	for rows.Next() {
		var d domain.Donor
		var date *time.Time
		if err := rows.Scan(&d.ID, &d.Name, &d.BloodGroup, &d.Phone, &d.Province, &d.District, &d.Municipality, &d.CreatedAt, &date); err != nil {
			return nil, err
		}
		entry, ok := byID[d.ID]
		if !ok {
			entry = &struct {
				donor     domain.Donor
				donations []domain.Donation
			}{donor: d}
			byID[d.ID] = entry
			order = append(order, d.ID)
		}
		if date != nil {
			entry.donations = append(entry.donations, domain.Donation{DonorID: d.ID, DonationDate: *date})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	now := r.now()
	out := make([]domain.DonorWithEligibility, 0, len(order))
	for _, id := range order {
		entry := byID[id]
		out = append(out, domain.DonorWithEligibility{
			Donor:       entry.donor,
			Eligibility: domain.ComputeEligibility(now, entry.donations),
		})
	}
	return out, nil
}

// donorColumns whitelists the fields exposed to DistinctValues.
var donorColumns = map[string]string{
	"blood_group":  "blood_group",
	"province":     "province",
	"district":     "district",
	"municipality": "municipality",
}

// DistinctValues lists the distinct non-empty values of one filterable column,
// for populating filter dropdowns.
func (r *DonorRepositoryPG) DistinctValues(ctx context.Context, field string) ([]string, error) {
	col, ok := donorColumns[field]
	if !ok {
		return nil, fmt.Errorf("unsupported field %q", field)
	}
	rows, err := r.pool.Query(ctx, fmt.Sprintf(sqlinline.QDistinctDonorValues, col, col, col))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Count returns the total donor count.
func (r *DonorRepositoryPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, sqlinline.QCountDonors).Scan(&n)
	return n, err
}

// ListRecent returns the most recently registered donors.
func (r *DonorRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.Donor, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QListRecentDonors, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDonors(rows)
}

func scanDonors(rows pgx.Rows) ([]domain.Donor, error) {
	var items []domain.Donor
	for rows.Next() {
		var d domain.Donor
		if err := rows.Scan(&d.ID, &d.Name, &d.BloodGroup, &d.Phone, &d.Province, &d.District, &d.Municipality, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
