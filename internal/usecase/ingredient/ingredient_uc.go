package ingredient

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("ingredient not found")
	ErrInsufficientStock = errors.New("movement would drive stock negative")
)

const (
	ReasonPurchase    = "purchase"
	ReasonConsumption = "consumption"
	ReasonAdjustment  = "adjustment"
	ReasonWaste       = "waste"
)

// Quantities are numeric(12,3) strings at the boundary; kitchens count
// in grams and milliliters, not cents.
type Ingredient struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Unit        string `json:"unit"` // kg | g | l | ml | un
	StockOnHand string `json:"stockOnHand"`
	MinStock    string `json:"minStock"`
	IsActive    bool   `json:"isActive"`
}

type Movement struct {
	ID           string `json:"id"`
	IngredientID string `json:"ingredientId"`
	Delta        string `json:"delta"`
	Reason       string `json:"reason"`
	Note         *string `json:"note,omitempty"`
}

type Store interface {
	Create(ctx context.Context, name, unit, minStock string) (*Ingredient, error)
	List(ctx context.Context, lowOnly bool) ([]Ingredient, error)
	Update(ctx context.Context, id string, name *string, minStock *string, isActive *bool) (*Ingredient, error)
	// Move locks the ingredient row, applies the delta and rejects a
	// result below zero.
	Move(ctx context.Context, id string, delta string, reason string, note *string) (*Ingredient, error)
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

type CreateInput struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	MinStock string `json:"minStock"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Ingredient, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || !isValidUnit(in.Unit) {
		return nil, ErrInvalidInput
	}
	if in.MinStock == "" {
		in.MinStock = "0"
	}
	if !isNumeric(in.MinStock) {
		return nil, ErrInvalidInput
	}
	return u.store.Create(ctx, in.Name, in.Unit, in.MinStock)
}

func (u *Usecase) List(ctx context.Context, lowOnly bool) ([]Ingredient, error) {
	return u.store.List(ctx, lowOnly)
}

type UpdateInput struct {
	Name     *string `json:"name"`
	MinStock *string `json:"minStock"`
	IsActive *bool   `json:"isActive"`
}

func (u *Usecase) Update(ctx context.Context, id string, in UpdateInput) (*Ingredient, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, ErrInvalidInput
	}
	if in.MinStock != nil && !isNumeric(*in.MinStock) {
		return nil, ErrInvalidInput
	}
	return u.store.Update(ctx, id, in.Name, in.MinStock, in.IsActive)
}

type MoveInput struct {
	Delta  string  `json:"delta"` // signed, e.g. "-0.250"
	Reason string  `json:"reason"`
	Note   *string `json:"note"`
}

func (u *Usecase) Move(ctx context.Context, id string, in MoveInput) (*Ingredient, error) {
	if id == "" || !isValidReason(in.Reason) {
		return nil, ErrInvalidInput
	}
	d, err := strconv.ParseFloat(strings.Replace(in.Delta, ",", ".", 1), 64)
	if err != nil || d == 0 {
		return nil, ErrInvalidInput
	}
	delta := strconv.FormatFloat(d, 'f', 3, 64)
	return u.store.Move(ctx, id, delta, in.Reason, in.Note)
}

func isValidUnit(u string) bool {
	switch u {
	case "kg", "g", "l", "ml", "un":
		return true
	default:
		return false
	}
}

func isValidReason(r string) bool {
	switch r {
	case ReasonPurchase, ReasonConsumption, ReasonAdjustment, ReasonWaste:
		return true
	default:
		return false
	}
}

func isNumeric(s string) bool {
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	return err == nil && f >= 0
}
