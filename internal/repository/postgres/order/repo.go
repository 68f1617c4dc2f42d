package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRow struct {
	ID            string
	TableNumber   *int
	CustomerName  string
	CustomerPhone *string
	ServedBy      *string
	Status        string
	PaymentStatus string
	TotalAmount   string
	PaidAmount    string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OrderItemRow struct {
	ID         string
	OrderID    string
	Name       string
	Qty        int
	PaidQty    int
	UnitAmount string
	LineTotal  string
	CreatedAt  time.Time
}

type OrderRepo struct {
	db *pgxpool.Pool
}

func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.db.BeginTx(ctx, pgx.TxOptions{})
}

const orderReturning = `
id::text, table_number, customer_name, customer_phone, served_by::text,
status, payment_status, total_amount::text, paid_amount::text, notes,
created_at, updated_at`

func scanOrder(row pgx.Row) (*OrderRow, error) {
	var out OrderRow
	if err := row.Scan(
		&out.ID,
		&out.TableNumber,
		&out.CustomerName,
		&out.CustomerPhone,
		&out.ServedBy,
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

func insertOrder(ctx context.Context, tx pgx.Tx, tableNumber *int, customerName string, customerPhone, servedBy, notes *string) (*OrderRow, error) {
	const q = `
INSERT INTO orders (table_number, customer_name, customer_phone, served_by, notes)
VALUES ($1, $2, $3, $4::uuid, $5)
RETURNING ` + orderReturning + `;`
	return scanOrder(tx.QueryRow(ctx, q, tableNumber, customerName, customerPhone, servedBy, notes))
}

func insertOrderItem(ctx context.Context, tx pgx.Tx, orderID, name string, qty int, unitAmount, lineTotal string) (*OrderItemRow, error) {
	const q = `
INSERT INTO order_items (order_id, name, qty, unit_amount, line_total)
VALUES ($1::uuid, $2, $3, $4::numeric, $5::numeric)
RETURNING id::text, order_id::text, name, qty, paid_qty, unit_amount::text, line_total::text, created_at;
`
	row := tx.QueryRow(ctx, q, orderID, name, qty, unitAmount, lineTotal)

	var out OrderItemRow
	if err := row.Scan(&out.ID, &out.OrderID, &out.Name, &out.Qty, &out.PaidQty, &out.UnitAmount, &out.LineTotal, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func updateOrderTotal(ctx context.Context, tx pgx.Tx, orderID string, totalAmount string) (*OrderRow, error) {
	const q = `
UPDATE orders
SET total_amount = $2::numeric,
    updated_at = now()
WHERE id = $1::uuid
RETURNING ` + orderReturning + `;`
	return scanOrder(tx.QueryRow(ctx, q, orderID, totalAmount))
}

func (r *OrderRepo) List(ctx context.Context, limit, offset int, status *string) ([]OrderRow, error) {
	const q = `
SELECT ` + orderReturning + `
FROM orders
WHERE ($3::text IS NULL OR status = $3)
ORDER BY created_at DESC
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.Query(ctx, q, limit, offset, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OrderRow, 0, limit)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) GetStatus(ctx context.Context, id string) (string, error) {
	const q = `SELECT status FROM orders WHERE id = $1::uuid;`
	var status string
	if err := r.db.QueryRow(ctx, q, id).Scan(&status); err != nil {
		return "", err
	}
	return status, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status string) (*OrderRow, error) {
	const q = `
UPDATE orders
SET status = $2,
    updated_at = now()
WHERE id = $1::uuid
RETURNING ` + orderReturning + `;`
	return scanOrder(r.db.QueryRow(ctx, q, id, status))
}

func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]OrderItemRow, error) {
	const q = `
SELECT id::text, order_id::text, name, qty, paid_qty, unit_amount::text, line_total::text, created_at
FROM order_items
WHERE order_id = $1::uuid
ORDER BY created_at ASC;
`
	rows, err := r.db.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OrderItemRow, 0, 10)
	for rows.Next() {
		var it OrderItemRow
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Name, &it.Qty, &it.PaidQty, &it.UnitAmount, &it.LineTotal, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
