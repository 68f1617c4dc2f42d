package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IngredientRow struct {
	ID          string
	Name        string
	Unit        string
	StockOnHand string
	MinStock    string
	IsActive    bool
}

type IngredientRepo struct {
	db *pgxpool.Pool
}

func NewIngredientRepo(db *pgxpool.Pool) *IngredientRepo {
	return &IngredientRepo{db: db}
}

func (r *IngredientRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.db.BeginTx(ctx, pgx.TxOptions{})
}

const ingredientReturning = `id::text, name, unit, stock_on_hand::text, min_stock::text, is_active`

func scanIngredient(row pgx.Row) (*IngredientRow, error) {
	var out IngredientRow
	if err := row.Scan(&out.ID, &out.Name, &out.Unit, &out.StockOnHand, &out.MinStock, &out.IsActive); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *IngredientRepo) Create(ctx context.Context, name, unit, minStock string) (*IngredientRow, error) {
	const q = `
INSERT INTO ingredients (name, unit, min_stock)
VALUES ($1, $2, $3::numeric)
RETURNING ` + ingredientReturning + `;`
	return scanIngredient(r.db.QueryRow(ctx, q, name, unit, minStock))
}

func (r *IngredientRepo) List(ctx context.Context, lowOnly bool) ([]IngredientRow, error) {
	const q = `
SELECT ` + ingredientReturning + `
FROM ingredients
WHERE ($1 = false OR stock_on_hand <= min_stock)
ORDER BY name ASC;
`
	rows, err := r.db.Query(ctx, q, lowOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]IngredientRow, 0, 20)
	for rows.Next() {
		it, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func (r *IngredientRepo) Update(ctx context.Context, id string, name *string, minStock *string, isActive *bool) (*IngredientRow, error) {
	const q = `
UPDATE ingredients
SET name = COALESCE($2, name),
    min_stock = COALESCE($3::numeric, min_stock),
    is_active = COALESCE($4, is_active),
    updated_at = now()
WHERE id = $1::uuid
RETURNING ` + ingredientReturning + `;`
	return scanIngredient(r.db.QueryRow(ctx, q, id, name, minStock, isActive))
}

func lockIngredient(ctx context.Context, tx pgx.Tx, id string) (stockOnHand string, err error) {
	const q = `
SELECT stock_on_hand::text
FROM ingredients
WHERE id = $1::uuid
FOR UPDATE;
`
	if err := tx.QueryRow(ctx, q, id).Scan(&stockOnHand); err != nil {
		return "", err
	}
	return stockOnHand, nil
}

// applyMovement shifts stock by delta, guarded against going negative.
func applyMovement(ctx context.Context, tx pgx.Tx, id, delta string) (*IngredientRow, error) {
	const q = `
UPDATE ingredients
SET stock_on_hand = stock_on_hand + $2::numeric,
    updated_at = now()
WHERE id = $1::uuid
  AND stock_on_hand + $2::numeric >= 0
RETURNING ` + ingredientReturning + `;`
	return scanIngredient(tx.QueryRow(ctx, q, id, delta))
}

func insertMovement(ctx context.Context, tx pgx.Tx, ingredientID, delta, reason string, note *string) error {
	const q = `
INSERT INTO ingredient_movements (ingredient_id, delta, reason, note)
VALUES ($1::uuid, $2::numeric, $3, $4);
`
	_, err := tx.Exec(ctx, q, ingredientID, delta, reason, note)
	return err
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
