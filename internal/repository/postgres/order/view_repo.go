package postgres

import (
	"context"
	"time"
)

type OrderViewHeaderRow struct {
	ID            string
	TableNumber   *int
	CustomerName  string
	CustomerPhone *string
	ServedBy      *string
	ServedByName  *string
	Status        string
	PaymentStatus string
	TotalAmount   string
	PaidAmount    string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OrderViewPaymentRow struct {
	ID        string
	Method    string
	Amount    string
	Discount  string
	Surcharge string
	PaidAt    time.Time
	TakenBy   *string
}

func (r *OrderRepo) GetViewHeader(ctx context.Context, id string) (*OrderViewHeaderRow, error) {
	const q = `
SELECT
  o.id::text,
  o.table_number,
  o.customer_name,
  o.customer_phone,
  o.served_by::text,
  s.name,
  o.status,
  o.payment_status,
  o.total_amount::text,
  o.paid_amount::text,
  o.notes,
  o.created_at,
  o.updated_at
FROM orders o
LEFT JOIN staff s ON s.id = o.served_by
WHERE o.id = $1::uuid;
`
	row := r.db.QueryRow(ctx, q, id)
	var out OrderViewHeaderRow
	if err := row.Scan(
		&out.ID,
		&out.TableNumber,
		&out.CustomerName,
		&out.CustomerPhone,
		&out.ServedBy,
		&out.ServedByName,
		&out.Status,
		&out.PaymentStatus,
		&out.TotalAmount,
		&out.PaidAmount,
		&out.Notes,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetViewPayments flattens each settlement into one row: the amount is
// what was applied to the bill, the method column aggregates the tender
// method names ("Dinheiro + Pix" for a split).
func (r *OrderRepo) GetViewPayments(ctx context.Context, id string) ([]OrderViewPaymentRow, error) {
	const q = `
SELECT
  p.id::text,
  COALESCE((
    SELECT string_agg(t.method_name, ' + ' ORDER BY t.created_at)
    FROM payment_tenders t
    WHERE t.payment_id = p.id
  ), '') AS method,
  p.amount::text,
  p.discount::text,
  p.surcharge::text,
  p.paid_at,
  s.name
FROM payments p
LEFT JOIN staff s ON s.id = p.taken_by
WHERE p.order_id = $1::uuid
ORDER BY p.paid_at DESC, p.created_at DESC;
`
	rows, err := r.db.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OrderViewPaymentRow, 0, 5)
	for rows.Next() {
		var p OrderViewPaymentRow
		if err := rows.Scan(&p.ID, &p.Method, &p.Amount, &p.Discount, &p.Surcharge, &p.PaidAt, &p.TakenBy); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type BoardRow struct {
	ID           string
	TableNumber  *int
	CustomerName string
	Status       string
	CreatedAt    time.Time
	ItemName     string
	ItemQty      int
}

// ListBoard returns one row per item of every open order, oldest order
// first, so the adapter can group them into display cards.
func (r *OrderRepo) ListBoard(ctx context.Context) ([]BoardRow, error) {
	const q = `
SELECT
  o.id::text,
  o.table_number,
  o.customer_name,
  o.status,
  o.created_at,
  oi.name,
  oi.qty
FROM orders o
JOIN order_items oi ON oi.order_id = o.id
WHERE o.status IN ('received', 'preparing', 'ready')
ORDER BY o.created_at ASC, oi.created_at ASC;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BoardRow, 0, 20)
	for rows.Next() {
		var b BoardRow
		if err := rows.Scan(&b.ID, &b.TableNumber, &b.CustomerName, &b.Status, &b.CreatedAt, &b.ItemName, &b.ItemQty); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
