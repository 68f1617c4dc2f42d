package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CheckoutRepo struct {
	db *pgxpool.Pool
}

func NewCheckoutRepo(db *pgxpool.Pool) *CheckoutRepo {
	return &CheckoutRepo{db: db}
}

func (r *CheckoutRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.db.BeginTx(ctx, pgx.TxOptions{})
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

type snapshotLineRow struct {
	ItemID     string
	Name       string
	UnitAmount string
	Qty        int
	PaidQty    int
}

func (r *CheckoutRepo) getOrderState(ctx context.Context, orderID string) (status, paymentStatus string, err error) {
	const q = `SELECT status, payment_status FROM orders WHERE id = $1::uuid;`
	if err := r.db.QueryRow(ctx, q, orderID).Scan(&status, &paymentStatus); err != nil {
		return "", "", err
	}
	return status, paymentStatus, nil
}

func (r *CheckoutRepo) listLines(ctx context.Context, orderID string) ([]snapshotLineRow, error) {
	const q = `
SELECT id::text, name, unit_amount::text, qty, paid_qty
FROM order_items
WHERE order_id = $1::uuid
ORDER BY created_at ASC;
`
	rows, err := r.db.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]snapshotLineRow, 0, 10)
	for rows.Next() {
		var l snapshotLineRow
		if err := rows.Scan(&l.ItemID, &l.Name, &l.UnitAmount, &l.Qty, &l.PaidQty); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// lockOrderForSettle locks the order row so concurrent settlements for
// the same order serialize on the database.
func lockOrderForSettle(ctx context.Context, tx pgx.Tx, orderID string) (status string, err error) {
	const q = `
SELECT status
FROM orders
WHERE id = $1::uuid
FOR UPDATE;
`
	if err := tx.QueryRow(ctx, q, orderID).Scan(&status); err != nil {
		return "", err
	}
	return status, nil
}

// lockItemOutstanding locks one order item and returns its current
// unit amount and outstanding quantity.
func lockItemOutstanding(ctx context.Context, tx pgx.Tx, orderID, itemID string) (unitAmount string, outstanding int, err error) {
	const q = `
SELECT unit_amount::text, qty - paid_qty
FROM order_items
WHERE id = $1::uuid AND order_id = $2::uuid
FOR UPDATE;
`
	if err := tx.QueryRow(ctx, q, itemID, orderID).Scan(&unitAmount, &outstanding); err != nil {
		return "", 0, err
	}
	return unitAmount, outstanding, nil
}

func insertPayment(ctx context.Context, tx pgx.Tx, orderID string, takenBy *string, amount, discount, surcharge string) (paymentID string, err error) {
	const q = `
INSERT INTO payments (order_id, taken_by, amount, discount, surcharge)
VALUES ($1::uuid, $2::uuid, $3::numeric, $4::numeric, $5::numeric)
RETURNING id::text;
`
	if err := tx.QueryRow(ctx, q, orderID, takenBy, amount, discount, surcharge).Scan(&paymentID); err != nil {
		return "", err
	}
	return paymentID, nil
}

func insertPaymentTender(ctx context.Context, tx pgx.Tx, paymentID, methodID, methodName, amount string) error {
	const q = `
INSERT INTO payment_tenders (payment_id, method_id, method_name, amount)
VALUES ($1::uuid, $2::uuid, $3, $4::numeric);
`
	_, err := tx.Exec(ctx, q, paymentID, methodID, methodName, amount)
	return err
}

func insertPaymentItem(ctx context.Context, tx pgx.Tx, paymentID, itemID string, qty int, amount string) error {
	const q = `
INSERT INTO payment_items (payment_id, order_item_id, qty, amount)
VALUES ($1::uuid, $2::uuid, $3, $4::numeric);
`
	_, err := tx.Exec(ctx, q, paymentID, itemID, qty, amount)
	return err
}

func bumpItemPaidQty(ctx context.Context, tx pgx.Tx, itemID string, qty int) error {
	const q = `
UPDATE order_items
SET paid_qty = paid_qty + $2
WHERE id = $1::uuid
  AND paid_qty + $2 <= qty;
`
	ct, err := tx.Exec(ctx, q, itemID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.New("paid_qty bump exceeded item qty")
	}
	return nil
}

// recomputeOrderPaymentState derives paid_amount from posted payments
// and payment_status from the per-item paid quantities: an order is
// paid exactly when every line is fully allocated, regardless of the
// discounts applied along the way.
func recomputeOrderPaymentState(ctx context.Context, tx pgx.Tx, orderID string) (paymentStatus string, paidAmount string, err error) {
	const q = `
WITH paid AS (
  SELECT COALESCE(SUM(amount), 0)::numeric AS paid_amount
  FROM payments
  WHERE order_id = $1::uuid
),
items AS (
  SELECT
    COALESCE(SUM(qty), 0) AS total_qty,
    COALESCE(SUM(paid_qty), 0) AS total_paid_qty
  FROM order_items
  WHERE order_id = $1::uuid
),
upd AS (
  UPDATE orders o
  SET
    paid_amount = paid.paid_amount,
    payment_status = CASE
      WHEN items.total_paid_qty = 0 THEN 'unpaid'
      WHEN items.total_paid_qty < items.total_qty THEN 'partial'
      ELSE 'paid'
    END,
    updated_at = now()
  FROM paid, items
  WHERE o.id = $1::uuid
  RETURNING o.payment_status, o.paid_amount::text
)
SELECT * FROM upd;
`
	if err := tx.QueryRow(ctx, q, orderID).Scan(&paymentStatus, &paidAmount); err != nil {
		return "", "", err
	}
	return paymentStatus, paidAmount, nil
}
