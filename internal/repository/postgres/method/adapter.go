package postgres

import (
	"context"

	"github.com/google/uuid"

	checkoutuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/checkout"
	methoduc "github.com/nicklvs1307/gestao-sub001/internal/usecase/method"
)

type MethodStoreAdapter struct {
	repo *MethodRepo
}

func NewMethodStoreAdapter(repo *MethodRepo) *MethodStoreAdapter {
	return &MethodStoreAdapter{repo: repo}
}

func (a *MethodStoreAdapter) Create(ctx context.Context, name, kind string) (*methoduc.Method, error) {
	row, err := a.repo.Create(ctx, name, kind)
	if err != nil {
		return nil, err
	}
	return mapMethodRowToUC(row), nil
}

func (a *MethodStoreAdapter) List(ctx context.Context, onlyActive bool) ([]methoduc.Method, error) {
	rows, err := a.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]methoduc.Method, 0, len(rows))
	for i := range rows {
		out = append(out, *mapMethodRowToUC(&rows[i]))
	}
	return out, nil
}

func (a *MethodStoreAdapter) Update(ctx context.Context, id string, name *string, kind *string, isActive *bool) (*methoduc.Method, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, methoduc.ErrNotFound
	}
	row, err := a.repo.Update(ctx, id, name, kind, isActive)
	if err != nil {
		if isNoRows(err) {
			return nil, methoduc.ErrNotFound
		}
		return nil, err
	}
	return mapMethodRowToUC(row), nil
}

func (a *MethodStoreAdapter) FindActive(ctx context.Context, id string) (*methoduc.Method, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, methoduc.ErrNotFound
	}
	row, err := a.repo.FindActive(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, methoduc.ErrNotFound
		}
		return nil, err
	}
	return mapMethodRowToUC(row), nil
}

func mapMethodRowToUC(r *MethodRow) *methoduc.Method {
	return &methoduc.Method{
		ID:       r.ID,
		Name:     r.Name,
		Kind:     r.Kind,
		IsActive: r.IsActive,
	}
}

// Compile-time check
var _ methoduc.Store = (*MethodStoreAdapter)(nil)

// CheckoutMethodSource bridges the method store into the checkout's
// narrower resolver interface.
type CheckoutMethodSource struct {
	uc *methoduc.Usecase
}

func NewCheckoutMethodSource(uc *methoduc.Usecase) *CheckoutMethodSource {
	return &CheckoutMethodSource{uc: uc}
}

func (s *CheckoutMethodSource) FindActive(ctx context.Context, id string) (*checkoutuc.Method, error) {
	m, err := s.uc.FindActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return &checkoutuc.Method{ID: m.ID, Name: m.Name, Kind: m.Kind}, nil
}

var _ checkoutuc.MethodSource = (*CheckoutMethodSource)(nil)
