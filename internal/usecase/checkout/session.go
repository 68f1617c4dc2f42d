package checkout

import (
	"errors"

	"github.com/nicklvs1307/gestao-sub001/internal/money"
)

var (
	ErrInvalidAmount       = errors.New("invalid tender amount")
	ErrNoMethodSelected    = errors.New("no payment method selected")
	ErrInsufficientPayment = errors.New("tendered amount below total due")
	ErrItemUnknown         = errors.New("item not on the order")
	ErrNothingOutstanding  = errors.New("nothing left to select for item")
	ErrNotSelected         = errors.New("item not in the selection")
	ErrNoSuchTender        = errors.New("no tender at that position")
	ErrItemUnavailable     = errors.New("selection exceeds outstanding quantity")
	ErrSessionMissing      = errors.New("no checkout in progress")
	ErrOrderClosed         = errors.New("order not open for checkout")
	ErrInvalidInput        = errors.New("invalid input")
)

const (
	StateIdle       = "idle"
	StateSubmitting = "submitting"
	StateConfirmed  = "confirmed"
)

// OrderLine is the checkout-relevant slice of an order item snapshot.
type OrderLine struct {
	ItemID    string      `json:"itemId"`
	Name      string      `json:"name"`
	UnitPrice money.Cents `json:"unitPrice"`
	Qty       int         `json:"qty"`
	PaidQty   int         `json:"paidQty"`
}

// Outstanding is the portion of the line not yet marked paid.
func (l OrderLine) Outstanding() int { return l.Qty - l.PaidQty }

// Selected is one entry of the transient selected-for-payment list.
type Selected struct {
	ItemID    string      `json:"itemId"`
	Name      string      `json:"name"`
	UnitPrice money.Cents `json:"unitPrice"`
	Qty       int         `json:"qty"`
}

// Tender is one payment-method-and-amount entry applied toward the total.
type Tender struct {
	MethodID string      `json:"methodId"`
	Method   string      `json:"method"`
	Amount   money.Cents `json:"amount"`
}

// Session holds the in-progress payment state for one order and one
// cashier. It is a plain value: every mutation keeps the invariant that
// the selection is a subset of the order's unpaid lines with
// 1 <= selected qty <= outstanding qty, and the suggested next tender
// always equals the freshly computed remaining balance.
//
// Sessions are scratch state. They live in redis with a TTL and are
// never the source of truth for what has actually been paid.
type Session struct {
	OrderID   string      `json:"orderId"`
	StaffID   string      `json:"staffId"`
	Lines     []OrderLine `json:"lines"`
	Selection []Selected  `json:"selection"`
	Tenders   []Tender    `json:"tenders"`
	Discount  money.Cents `json:"discount"`
	Surcharge money.Cents `json:"surcharge"`
	Suggested money.Cents `json:"suggested"`
	State     string      `json:"state"`
}

func NewSession(orderID, staffID string, lines []OrderLine) *Session {
	s := &Session{
		OrderID:   orderID,
		StaffID:   staffID,
		Lines:     lines,
		Selection: []Selected{},
		Tenders:   []Tender{},
		State:     StateIdle,
	}
	s.refreshSuggestion()
	return s
}

func (s *Session) line(itemID string) *OrderLine {
	for i := range s.Lines {
		if s.Lines[i].ItemID == itemID {
			return &s.Lines[i]
		}
	}
	return nil
}

func (s *Session) selected(itemID string) *Selected {
	for i := range s.Selection {
		if s.Selection[i].ItemID == itemID {
			return &s.Selection[i]
		}
	}
	return nil
}

// AddUnit adds one unit of the item to the selection, capped at the
// item's outstanding quantity.
func (s *Session) AddUnit(itemID string) error {
	l := s.line(itemID)
	if l == nil {
		return ErrItemUnknown
	}
	sel := s.selected(itemID)
	cur := 0
	if sel != nil {
		cur = sel.Qty
	}
	if cur >= l.Outstanding() {
		return ErrNothingOutstanding
	}
	if sel == nil {
		s.Selection = append(s.Selection, Selected{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Qty:       1,
		})
	} else {
		sel.Qty++
	}
	s.refreshSuggestion()
	return nil
}

// AddAllOutstanding selects the item's full outstanding quantity.
func (s *Session) AddAllOutstanding(itemID string) error {
	l := s.line(itemID)
	if l == nil {
		return ErrItemUnknown
	}
	if l.Outstanding() <= 0 {
		return ErrNothingOutstanding
	}
	if sel := s.selected(itemID); sel != nil {
		sel.Qty = l.Outstanding()
	} else {
		s.Selection = append(s.Selection, Selected{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Qty:       l.Outstanding(),
		})
	}
	s.refreshSuggestion()
	return nil
}

// SelectAllOutstanding replaces the whole selection with every unpaid
// line at full outstanding quantity (the "pay everything" shortcut).
func (s *Session) SelectAllOutstanding() {
	s.Selection = s.Selection[:0]
	for _, l := range s.Lines {
		if l.Outstanding() <= 0 {
			continue
		}
		s.Selection = append(s.Selection, Selected{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Qty:       l.Outstanding(),
		})
	}
	s.refreshSuggestion()
}

// RemoveUnit takes one unit of the item out of the selection, dropping
// the entry entirely when its quantity reaches zero.
func (s *Session) RemoveUnit(itemID string) error {
	sel := s.selected(itemID)
	if sel == nil {
		return ErrNotSelected
	}
	sel.Qty--
	if sel.Qty <= 0 {
		s.dropSelected(itemID)
	}
	s.refreshSuggestion()
	return nil
}

// RemoveAll drops the item from the selection regardless of quantity.
func (s *Session) RemoveAll(itemID string) error {
	if s.selected(itemID) == nil {
		return ErrNotSelected
	}
	s.dropSelected(itemID)
	s.refreshSuggestion()
	return nil
}

func (s *Session) dropSelected(itemID string) {
	for i := range s.Selection {
		if s.Selection[i].ItemID == itemID {
			s.Selection = append(s.Selection[:i], s.Selection[i+1:]...)
			return
		}
	}
}

func (s *Session) SetDiscount(c money.Cents) error {
	if c < 0 {
		return ErrInvalidAmount
	}
	s.Discount = c
	s.refreshSuggestion()
	return nil
}

func (s *Session) SetSurcharge(c money.Cents) error {
	if c < 0 {
		return ErrInvalidAmount
	}
	s.Surcharge = c
	s.refreshSuggestion()
	return nil
}

// AddTender appends a validated payment entry. The amount must already
// be parsed and positive; method resolution happens in the usecase.
func (s *Session) AddTender(methodID, methodName string, amount money.Cents) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	s.Tenders = append(s.Tenders, Tender{MethodID: methodID, Method: methodName, Amount: amount})
	s.refreshSuggestion()
	return nil
}

func (s *Session) RemoveTender(index int) error {
	if index < 0 || index >= len(s.Tenders) {
		return ErrNoSuchTender
	}
	s.Tenders = append(s.Tenders[:index], s.Tenders[index+1:]...)
	s.refreshSuggestion()
	return nil
}

// Subtotal is the sum over the selection of unit price times quantity.
func (s *Session) Subtotal() money.Cents {
	var sum money.Cents
	for _, sel := range s.Selection {
		sum += sel.UnitPrice * money.Cents(sel.Qty)
	}
	return sum
}

// TotalDue is subtotal + surcharge - discount. Deliberately not clamped
// at zero: a negative value means the discount exceeds the selection.
func (s *Session) TotalDue() money.Cents {
	return s.Subtotal() + s.Surcharge - s.Discount
}

func (s *Session) Tendered() money.Cents {
	var sum money.Cents
	for _, t := range s.Tenders {
		sum += t.Amount
	}
	return sum
}

// Remaining is the balance still to collect, floored at zero.
func (s *Session) Remaining() money.Cents {
	r := s.TotalDue() - s.Tendered()
	if r < 0 {
		return 0
	}
	return r
}

// CanSubmit reports whether settlement is allowed: at least one tender
// and the tendered amount covering the total due.
func (s *Session) CanSubmit() bool {
	return len(s.Tenders) > 0 && s.Tendered() >= s.TotalDue()
}

// Reset clears selection, tenders, discount and surcharge after a
// confirmed settlement.
func (s *Session) Reset(lines []OrderLine) {
	s.Lines = lines
	s.Selection = []Selected{}
	s.Tenders = []Tender{}
	s.Discount = 0
	s.Surcharge = 0
	s.State = StateIdle
	s.refreshSuggestion()
}

func (s *Session) refreshSuggestion() {
	s.Suggested = s.Remaining()
}
