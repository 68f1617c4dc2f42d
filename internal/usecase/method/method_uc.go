package method

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("payment method not found")
)

const (
	KindCash  = "cash"
	KindCard  = "card"
	KindPix   = "pix"
	KindOther = "other"
)

type Method struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	IsActive bool   `json:"isActive"`
}

type Store interface {
	Create(ctx context.Context, name, kind string) (*Method, error)
	List(ctx context.Context, onlyActive bool) ([]Method, error)
	Update(ctx context.Context, id string, name *string, kind *string, isActive *bool) (*Method, error)
	FindActive(ctx context.Context, id string) (*Method, error)
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

type CreateInput struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Method, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || !isValidKind(in.Kind) {
		return nil, ErrInvalidInput
	}
	return u.store.Create(ctx, in.Name, in.Kind)
}

func (u *Usecase) List(ctx context.Context, onlyActive bool) ([]Method, error) {
	return u.store.List(ctx, onlyActive)
}

type UpdateInput struct {
	Name     *string `json:"name"`
	Kind     *string `json:"kind"`
	IsActive *bool   `json:"isActive"`
}

func (u *Usecase) Update(ctx context.Context, id string, in UpdateInput) (*Method, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, ErrInvalidInput
	}
	if in.Kind != nil && !isValidKind(*in.Kind) {
		return nil, ErrInvalidInput
	}
	return u.store.Update(ctx, id, in.Name, in.Kind, in.IsActive)
}

// FindActive resolves a method for checkout; inactive methods resolve
// to ErrNotFound on purpose.
func (u *Usecase) FindActive(ctx context.Context, id string) (*Method, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return u.store.FindActive(ctx, id)
}

func isValidKind(k string) bool {
	switch k {
	case KindCash, KindCard, KindPix, KindOther:
		return true
	default:
		return false
	}
}
