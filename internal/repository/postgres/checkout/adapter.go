package postgres

import (
	"context"
	"fmt"

	"github.com/nicklvs1307/gestao-sub001/internal/money"
	checkoutuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/checkout"
	orderuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/order"
)

type CheckoutStoreAdapter struct {
	repo *CheckoutRepo
}

func NewCheckoutStoreAdapter(repo *CheckoutRepo) *CheckoutStoreAdapter {
	return &CheckoutStoreAdapter{repo: repo}
}

func (a *CheckoutStoreAdapter) Snapshot(ctx context.Context, orderID string) (*checkoutuc.Snapshot, error) {
	status, paymentStatus, err := a.repo.getOrderState(ctx, orderID)
	if err != nil {
		if isNoRows(err) {
			return nil, orderuc.ErrNotFound
		}
		return nil, err
	}

	lines, err := a.repo.listLines(ctx, orderID)
	if err != nil {
		return nil, err
	}

	snap := &checkoutuc.Snapshot{
		OrderID:       orderID,
		Status:        status,
		PaymentStatus: paymentStatus,
		Lines:         make([]checkoutuc.OrderLine, 0, len(lines)),
	}
	for _, l := range lines {
		unit, err := money.Parse(l.UnitAmount)
		if err != nil {
			return nil, fmt.Errorf("bad unit amount on item %s: %w", l.ItemID, err)
		}
		snap.Lines = append(snap.Lines, checkoutuc.OrderLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: unit,
			Qty:       l.Qty,
			PaidQty:   l.PaidQty,
		})
	}
	return snap, nil
}

// Settle applies a whole settlement in one DB transaction. The order
// row lock serializes concurrent checkouts; every item is re-validated
// against its current outstanding quantity under the lock, so a stale
// selection fails with ErrItemUnavailable instead of double-paying.
func (a *CheckoutStoreAdapter) Settle(ctx context.Context, in checkoutuc.SettleInput) (*checkoutuc.SettleResult, error) {
	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	status, err := lockOrderForSettle(ctx, tx, in.OrderID)
	if err != nil {
		if isNoRows(err) {
			return nil, orderuc.ErrNotFound
		}
		return nil, err
	}
	if status == orderuc.StatusCancelled {
		return nil, checkoutuc.ErrOrderClosed
	}

	// settlement subtotal comes from the DB prices, not the session copy
	var subtotal money.Cents
	type lockedItem struct {
		id     string
		qty    int
		amount money.Cents
	}
	locked := make([]lockedItem, 0, len(in.Items))
	for _, it := range in.Items {
		unitStr, outstanding, err := lockItemOutstanding(ctx, tx, in.OrderID, it.ItemID)
		if err != nil {
			if isNoRows(err) {
				return nil, checkoutuc.ErrItemUnknown
			}
			return nil, err
		}
		if it.Qty <= 0 || it.Qty > outstanding {
			return nil, fmt.Errorf("%w: item=%s outstanding=%d requested=%d",
				checkoutuc.ErrItemUnavailable, it.ItemID, outstanding, it.Qty)
		}
		unit, err := money.Parse(unitStr)
		if err != nil {
			return nil, err
		}
		lineAmount := unit * money.Cents(it.Qty)
		subtotal += lineAmount
		locked = append(locked, lockedItem{id: it.ItemID, qty: it.Qty, amount: lineAmount})
	}

	applied := subtotal + in.Surcharge - in.Discount

	var takenBy *string
	if in.StaffID != "" {
		takenBy = &in.StaffID
	}
	paymentID, err := insertPayment(ctx, tx, in.OrderID, takenBy,
		applied.String(), in.Discount.String(), in.Surcharge.String())
	if err != nil {
		return nil, err
	}

	for _, t := range in.Tenders {
		if err := insertPaymentTender(ctx, tx, paymentID, t.MethodID, t.Method, t.Amount.String()); err != nil {
			return nil, err
		}
	}

	for _, it := range locked {
		if err := insertPaymentItem(ctx, tx, paymentID, it.id, it.qty, it.amount.String()); err != nil {
			return nil, err
		}
		if err := bumpItemPaidQty(ctx, tx, it.id, it.qty); err != nil {
			return nil, err
		}
	}

	paymentStatus, paidStr, err := recomputeOrderPaymentState(ctx, tx, in.OrderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	paid, _ := money.Parse(paidStr)
	return &checkoutuc.SettleResult{
		PaymentID:     paymentID,
		PaymentStatus: paymentStatus,
		PaidAmount:    paid,
	}, nil
}

// Compile-time check
var _ checkoutuc.Store = (*CheckoutStoreAdapter)(nil)
