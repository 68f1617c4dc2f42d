package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/nicklvs1307/gestao-sub001/internal/money"
)

// Snapshot is the read-only order view a checkout works against. The
// backend owns it; a session only ever holds a copy.
type Snapshot struct {
	OrderID       string
	Status        string
	PaymentStatus string
	Lines         []OrderLine
}

type SettleItem struct {
	ItemID    string
	Qty       int
	UnitPrice money.Cents
}

type SettleInput struct {
	OrderID   string
	StaffID   string
	Items     []SettleItem
	Tenders   []Tender
	Discount  money.Cents
	Surcharge money.Cents
}

type SettleResult struct {
	PaymentID     string
	PaymentStatus string
	PaidAmount    money.Cents
}

// Store persists settlements. Settle must be atomic: it re-validates
// the selected quantities against the current paid state under a row
// lock and either applies the whole settlement or nothing.
type Store interface {
	Snapshot(ctx context.Context, orderID string) (*Snapshot, error)
	Settle(ctx context.Context, in SettleInput) (*SettleResult, error)
}

type Method struct {
	ID   string
	Name string
	Kind string
}

// MethodSource resolves tender method ids against the active set.
type MethodSource interface {
	FindActive(ctx context.Context, id string) (*Method, error)
}

// Sessions is the scratch store for in-progress checkouts. Load returns
// ErrSessionMissing when nothing is in progress.
type Sessions interface {
	Load(ctx context.Context, orderID, staffID string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, orderID, staffID string) error
}

// Publisher fans out order-changed events so display surfaces refetch.
type Publisher interface {
	OrderChanged(ctx context.Context, orderID, event string) error
}

type Usecase struct {
	store    Store
	methods  MethodSource
	sessions Sessions
	events   Publisher
}

func New(store Store, methods MethodSource, sessions Sessions, events Publisher) *Usecase {
	return &Usecase{store: store, methods: methods, sessions: sessions, events: events}
}

// Start opens a fresh checkout for the order, replacing any in-progress
// session for the same cashier.
func (u *Usecase) Start(ctx context.Context, orderID, staffID string) (*Session, error) {
	if orderID == "" || staffID == "" {
		return nil, ErrInvalidInput
	}
	snap, err := u.store.Snapshot(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !openForCheckout(snap) {
		return nil, ErrOrderClosed
	}
	s := NewSession(orderID, staffID, snap.Lines)
	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (u *Usecase) Get(ctx context.Context, orderID, staffID string) (*Session, error) {
	return u.sessions.Load(ctx, orderID, staffID)
}

// Cancel abandons the in-progress checkout without touching the order.
func (u *Usecase) Cancel(ctx context.Context, orderID, staffID string) error {
	return u.sessions.Delete(ctx, orderID, staffID)
}

func (u *Usecase) AddUnit(ctx context.Context, orderID, staffID, itemID string) (*Session, error) {
	return u.apply(ctx, orderID, staffID, func(s *Session) error { return s.AddUnit(itemID) })
}

func (u *Usecase) AddAllOutstanding(ctx context.Context, orderID, staffID, itemID string) (*Session, error) {
	return u.apply(ctx, orderID, staffID, func(s *Session) error { return s.AddAllOutstanding(itemID) })
}

func (u *Usecase) SelectAllOutstanding(ctx context.Context, orderID, staffID string) (*Session, error) {
	return u.apply(ctx, orderID, staffID, func(s *Session) error {
		s.SelectAllOutstanding()
		return nil
	})
}

func (u *Usecase) RemoveUnit(ctx context.Context, orderID, staffID, itemID string) (*Session, error) {
	return u.apply(ctx, orderID, staffID, func(s *Session) error { return s.RemoveUnit(itemID) })
}

func (u *Usecase) RemoveAll(ctx context.Context, orderID, staffID, itemID string) (*Session, error) {
	return u.apply(ctx, orderID, staffID, func(s *Session) error { return s.RemoveAll(itemID) })
}

// SetAdjustments updates discount and/or surcharge. Nil leaves the
// current value alone; amounts accept comma or dot separators.
func (u *Usecase) SetAdjustments(ctx context.Context, orderID, staffID string, discount, surcharge *string) (*Session, error) {
	return u.apply(ctx, orderID, staffID, func(s *Session) error {
		if discount != nil {
			c, err := money.Parse(*discount)
			if err != nil {
				return ErrInvalidAmount
			}
			if err := s.SetDiscount(c); err != nil {
				return err
			}
		}
		if surcharge != nil {
			c, err := money.Parse(*surcharge)
			if err != nil {
				return ErrInvalidAmount
			}
			if err := s.SetSurcharge(c); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddTender validates and appends one payment entry. The amount text
// accepts comma or dot as the fractional separator.
func (u *Usecase) AddTender(ctx context.Context, orderID, staffID, methodID, amountText string) (*Session, error) {
	if strings.TrimSpace(methodID) == "" {
		return nil, ErrNoMethodSelected
	}
	amount, err := money.ParsePositive(amountText)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	m, err := u.methods.FindActive(ctx, methodID)
	if err != nil || m == nil {
		return nil, ErrNoMethodSelected
	}
	return u.apply(ctx, orderID, staffID, func(s *Session) error {
		return s.AddTender(m.ID, m.Name, amount)
	})
}

func (u *Usecase) RemoveTender(ctx context.Context, orderID, staffID string, index int) (*Session, error) {
	return u.apply(ctx, orderID, staffID, func(s *Session) error { return s.RemoveTender(index) })
}

// Submit runs the settlement. Preconditions are checked locally before
// any request: at least one tender and a tendered amount covering the
// total due. On success the scratch state is cleared and the session is
// rebuilt from a fresh snapshot so newly paid lines show as paid. On
// failure the session is left exactly as it was so the cashier retries
// without re-entering anything.
func (u *Usecase) Submit(ctx context.Context, orderID, staffID string) (*Session, *SettleResult, error) {
	s, err := u.sessions.Load(ctx, orderID, staffID)
	if err != nil {
		return nil, nil, err
	}
	if !s.CanSubmit() {
		return s, nil, ErrInsufficientPayment
	}

	in := SettleInput{
		OrderID:   s.OrderID,
		StaffID:   s.StaffID,
		Tenders:   s.Tenders,
		Discount:  s.Discount,
		Surcharge: s.Surcharge,
	}
	for _, sel := range s.Selection {
		in.Items = append(in.Items, SettleItem{ItemID: sel.ItemID, Qty: sel.Qty, UnitPrice: sel.UnitPrice})
	}

	s.State = StateSubmitting
	res, err := u.store.Settle(ctx, in)
	if err != nil {
		// session in redis is untouched; only the transient state flips back
		s.State = StateIdle
		return s, nil, err
	}

	_ = u.events.OrderChanged(ctx, s.OrderID, "order.paid")

	snap, err := u.store.Snapshot(ctx, s.OrderID)
	if err != nil {
		// settlement committed; surface the refetch failure but drop the stale scratch
		_ = u.sessions.Delete(ctx, orderID, staffID)
		return nil, res, fmt.Errorf("settled but refetch failed: %w", err)
	}

	s.Reset(snap.Lines)
	s.State = StateConfirmed
	if err := u.sessions.Save(ctx, s); err != nil {
		return s, res, nil
	}
	return s, res, nil
}

func (u *Usecase) apply(ctx context.Context, orderID, staffID string, fn func(*Session) error) (*Session, error) {
	s, err := u.sessions.Load(ctx, orderID, staffID)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return s, err
	}
	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func openForCheckout(snap *Snapshot) bool {
	if snap.Status == "cancelled" {
		return false
	}
	return snap.PaymentStatus != "paid"
}
