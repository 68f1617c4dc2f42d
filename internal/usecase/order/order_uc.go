package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nicklvs1307/gestao-sub001/internal/money"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

const (
	StatusReceived  = "received"  // placed, waiting for the kitchen
	StatusPreparing = "preparing" // on the line
	StatusReady     = "ready"     // plated, waiting for pickup/delivery
	StatusDelivered = "delivered" // handed over
	StatusCancelled = "cancelled"
)

type Store interface {
	Create(ctx context.Context, in CreateInput, items []ItemToInsert) (*Order, error)
	List(ctx context.Context, q ListQuery) ([]Order, error)
	GetView(ctx context.Context, id string) (*View, error)
	GetStatus(ctx context.Context, id string) (string, error)
	UpdateStatus(ctx context.Context, id string, status string) (*Order, error)
	Board(ctx context.Context) ([]BoardEntry, error)
}

// ItemToInsert carries a line with its amounts already computed, so the
// adapter only persists.
type ItemToInsert struct {
	Name       string
	Qty        int
	UnitAmount money.Cents
	LineTotal  money.Cents
}

// Publisher fans out order-changed events to display surfaces.
type Publisher interface {
	OrderChanged(ctx context.Context, orderID, event string) error
}

// Notifier pings the customer when their order is ready. Best effort:
// a failed notification never fails the transition.
type Notifier interface {
	OrderReady(ctx context.Context, phone, customerName string) error
}

type Usecase struct {
	store    Store
	events   Publisher
	notifier Notifier
}

func New(store Store, events Publisher, notifier Notifier) *Usecase {
	return &Usecase{store: store, events: events, notifier: notifier}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Order, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if in.CustomerName == "" && in.TableNumber == nil {
		return nil, ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, ErrInvalidInput
	}

	items := make([]ItemToInsert, 0, len(in.Items))
	for _, it := range in.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" || it.Qty <= 0 {
			return nil, ErrInvalidInput
		}
		unit, err := money.Parse(it.UnitAmount)
		if err != nil || unit < 0 {
			return nil, fmt.Errorf("%w: bad unit amount for %q", ErrInvalidInput, name)
		}
		items = append(items, ItemToInsert{
			Name:       name,
			Qty:        it.Qty,
			UnitAmount: unit,
			LineTotal:  unit * money.Cents(it.Qty),
		})
	}

	out, err := u.store.Create(ctx, in, items)
	if err != nil {
		return nil, err
	}

	_ = u.events.OrderChanged(ctx, out.ID, "order.created")
	return out, nil
}

func (u *Usecase) List(ctx context.Context, q ListQuery) ([]Order, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Status != nil && !isValidStatus(*q.Status) {
		return nil, ErrInvalidStatus
	}
	return u.store.List(ctx, q)
}

func (u *Usecase) GetView(ctx context.Context, id string) (*View, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return u.store.GetView(ctx, id)
}

// Board lists every open order for the kitchen display, oldest first.
func (u *Usecase) Board(ctx context.Context) ([]BoardEntry, error) {
	return u.store.Board(ctx)
}

func (u *Usecase) UpdateStatus(ctx context.Context, id string, in UpdateStatusInput) (*Order, error) {
	if id == "" || in.Status == "" {
		return nil, ErrInvalidInput
	}
	if !isValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	cur, err := u.store.GetStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isValidTransition(cur, in.Status) {
		return nil, ErrInvalidTransition
	}

	out, err := u.store.UpdateStatus(ctx, id, in.Status)
	if err != nil {
		return nil, err
	}

	_ = u.events.OrderChanged(ctx, out.ID, "order.status."+out.Status)

	if out.Status == StatusReady && out.CustomerPhone != nil && u.notifier != nil {
		if err := u.notifier.OrderReady(ctx, *out.CustomerPhone, out.CustomerName); err != nil {
			log.Printf("order %s: ready notification failed: %v", out.ID, err)
		}
	}

	return out, nil
}

func isValidStatus(s string) bool {
	switch s {
	case StatusReceived, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Cancellation is only allowed while the kitchen can still stop the
// order; once plated it has to be delivered.
func isValidTransition(from, to string) bool {
	switch from {
	case StatusReceived:
		return to == StatusPreparing || to == StatusCancelled
	case StatusPreparing:
		return to == StatusReady || to == StatusCancelled
	case StatusReady:
		return to == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false
	default:
		return false
	}
}
