package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MethodRow struct {
	ID       string
	Name     string
	Kind     string
	IsActive bool
}

type MethodRepo struct {
	db *pgxpool.Pool
}

func NewMethodRepo(db *pgxpool.Pool) *MethodRepo {
	return &MethodRepo{db: db}
}

const methodReturning = `id::text, name, kind, is_active`

func scanMethod(row pgx.Row) (*MethodRow, error) {
	var out MethodRow
	if err := row.Scan(&out.ID, &out.Name, &out.Kind, &out.IsActive); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *MethodRepo) Create(ctx context.Context, name, kind string) (*MethodRow, error) {
	const q = `
INSERT INTO payment_methods (name, kind)
VALUES ($1, $2)
RETURNING ` + methodReturning + `;`
	return scanMethod(r.db.QueryRow(ctx, q, name, kind))
}

func (r *MethodRepo) List(ctx context.Context, onlyActive bool) ([]MethodRow, error) {
	const q = `
SELECT ` + methodReturning + `
FROM payment_methods
WHERE ($1 = false OR is_active)
ORDER BY name ASC;
`
	rows, err := r.db.Query(ctx, q, onlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MethodRow, 0, 8)
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *MethodRepo) Update(ctx context.Context, id string, name *string, kind *string, isActive *bool) (*MethodRow, error) {
	const q = `
UPDATE payment_methods
SET name = COALESCE($2, name),
    kind = COALESCE($3, kind),
    is_active = COALESCE($4, is_active),
    updated_at = now()
WHERE id = $1::uuid
RETURNING ` + methodReturning + `;`
	return scanMethod(r.db.QueryRow(ctx, q, id, name, kind, isActive))
}

func (r *MethodRepo) FindActive(ctx context.Context, id string) (*MethodRow, error) {
	const q = `
SELECT ` + methodReturning + `
FROM payment_methods
WHERE id = $1::uuid AND is_active;
`
	return scanMethod(r.db.QueryRow(ctx, q, id))
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
