package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rakta/internal/domain"
	"rakta/internal/sqlinline"
)

// OrgProfileRepositoryPG stores the single organization settings row.
type OrgProfileRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewOrgProfileRepository creates a new org profile repo.
func NewOrgProfileRepository(pool *pgxpool.Pool) *OrgProfileRepositoryPG {
	return &OrgProfileRepositoryPG{pool: pool}
}

// Get fetches the settings row.
func (r *OrgProfileRepositoryPG) Get(ctx context.Context) (*domain.OrgProfile, error) {
	row := r.pool.QueryRow(ctx, sqlinline.QGetOrgProfile)
	var p domain.OrgProfile
	err := row.Scan(&p.OrgName, &p.ContactPhone, &p.Province, &p.District, &p.Municipality, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert writes the settings row, creating it on first save.
func (r *OrgProfileRepositoryPG) Upsert(ctx context.Context, profile *domain.OrgProfile) error {
	_, err := r.pool.Exec(ctx, sqlinline.QUpsertOrgProfile,
		profile.OrgName, profile.ContactPhone, profile.Province, profile.District, profile.Municipality)
	return err
}
