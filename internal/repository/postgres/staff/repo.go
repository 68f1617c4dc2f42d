package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	authuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/auth"
)

type StaffRow struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash string
	IsActive     bool
}

type StaffRepo struct {
	db *pgxpool.Pool
}

func NewStaffRepo(db *pgxpool.Pool) *StaffRepo {
	return &StaffRepo{db: db}
}

func (r *StaffRepo) FindByEmail(ctx context.Context, email string) (*StaffRow, error) {
	const q = `
SELECT id::text, name, email, role, password_hash, is_active
FROM staff
WHERE email = $1
LIMIT 1;
`
	row := r.db.QueryRow(ctx, q, email)

	var out StaffRow
	if err := row.Scan(&out.ID, &out.Name, &out.Email, &out.Role, &out.PasswordHash, &out.IsActive); err != nil {
		return nil, err
	}
	return &out, nil
}

// StaffFinderAdapter narrows the repo to the login usecase's interface.
type StaffFinderAdapter struct {
	repo *StaffRepo
}

func NewStaffFinderAdapter(repo *StaffRepo) *StaffFinderAdapter {
	return &StaffFinderAdapter{repo: repo}
}

func (a *StaffFinderAdapter) FindByEmail(ctx context.Context, email string) (*authuc.Staff, error) {
	r, err := a.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &authuc.Staff{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Role:         r.Role,
		PasswordHash: r.PasswordHash,
		IsActive:     r.IsActive,
	}, nil
}

var _ authuc.StaffFinder = (*StaffFinderAdapter)(nil)
