package postgres

import (
	"context"

	"github.com/google/uuid"

	ingredientuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/ingredient"
)

type IngredientStoreAdapter struct {
	repo *IngredientRepo
}

func NewIngredientStoreAdapter(repo *IngredientRepo) *IngredientStoreAdapter {
	return &IngredientStoreAdapter{repo: repo}
}

func (a *IngredientStoreAdapter) Create(ctx context.Context, name, unit, minStock string) (*ingredientuc.Ingredient, error) {
	row, err := a.repo.Create(ctx, name, unit, minStock)
	if err != nil {
		return nil, err
	}
	return mapIngredientRowToUC(row), nil
}

func (a *IngredientStoreAdapter) List(ctx context.Context, lowOnly bool) ([]ingredientuc.Ingredient, error) {
	rows, err := a.repo.List(ctx, lowOnly)
	if err != nil {
		return nil, err
	}
	out := make([]ingredientuc.Ingredient, 0, len(rows))
	for i := range rows {
		out = append(out, *mapIngredientRowToUC(&rows[i]))
	}
	return out, nil
}

func (a *IngredientStoreAdapter) Update(ctx context.Context, id string, name *string, minStock *string, isActive *bool) (*ingredientuc.Ingredient, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ingredientuc.ErrNotFound
	}
	row, err := a.repo.Update(ctx, id, name, minStock, isActive)
	if err != nil {
		if isNoRows(err) {
			return nil, ingredientuc.ErrNotFound
		}
		return nil, err
	}
	return mapIngredientRowToUC(row), nil
}

func (a *IngredientStoreAdapter) Move(ctx context.Context, id string, delta string, reason string, note *string) (*ingredientuc.Ingredient, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ingredientuc.ErrNotFound
	}

	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := lockIngredient(ctx, tx, id); err != nil {
		if isNoRows(err) {
			return nil, ingredientuc.ErrNotFound
		}
		return nil, err
	}

	row, err := applyMovement(ctx, tx, id, delta)
	if err != nil {
		if isNoRows(err) {
			// the guarded UPDATE matched nothing: stock would go negative
			return nil, ingredientuc.ErrInsufficientStock
		}
		return nil, err
	}

	if err := insertMovement(ctx, tx, id, delta, reason, note); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return mapIngredientRowToUC(row), nil
}

func mapIngredientRowToUC(r *IngredientRow) *ingredientuc.Ingredient {
	return &ingredientuc.Ingredient{
		ID:          r.ID,
		Name:        r.Name,
		Unit:        r.Unit,
		StockOnHand: r.StockOnHand,
		MinStock:    r.MinStock,
		IsActive:    r.IsActive,
	}
}

// Compile-time check
var _ ingredientuc.Store = (*IngredientStoreAdapter)(nil)
