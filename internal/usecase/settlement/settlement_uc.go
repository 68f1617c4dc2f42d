package settlement

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrStaffMissing    = errors.New("staff not found")
	ErrNothingToSettle = errors.New("no unsettled orders for staff")
)

// Settlement closes out a staff member's accumulated dues: every
// delivered-and-paid order served by them since their last settlement.
type Settlement struct {
	ID          string    `json:"id"`
	StaffID     string    `json:"staffId"`
	StaffName   string    `json:"staffName"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	OrderCount  int       `json:"orderCount"`
	TotalAmount string    `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Outstanding is one staff member's accrued, not-yet-settled dues.
type Outstanding struct {
	StaffID       string     `json:"staffId"`
	StaffName     string     `json:"staffName"`
	Role          string     `json:"role"`
	OrderCount    int        `json:"orderCount"`
	AccruedAmount string     `json:"accruedAmount"`
	OldestOrderAt *time.Time `json:"oldestOrderAt,omitempty"`
}

type Store interface {
	Outstanding(ctx context.Context) ([]Outstanding, error)
	// Close must be atomic: sum the staff's unsettled orders, insert the
	// settlement row and stamp the covered orders in one DB tx.
	Close(ctx context.Context, staffID string) (*Settlement, error)
	ListByStaff(ctx context.Context, staffID string, limit, offset int) ([]Settlement, error)
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

func (u *Usecase) Outstanding(ctx context.Context) ([]Outstanding, error) {
	return u.store.Outstanding(ctx)
}

func (u *Usecase) Close(ctx context.Context, staffID string) (*Settlement, error) {
	if staffID == "" {
		return nil, ErrInvalidInput
	}
	return u.store.Close(ctx, staffID)
}

func (u *Usecase) ListByStaff(ctx context.Context, staffID string, limit, offset int) ([]Settlement, error) {
	if staffID == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.store.ListByStaff(ctx, staffID, limit, offset)
}
