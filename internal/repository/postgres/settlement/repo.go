package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettlementRow struct {
	ID          string
	StaffID     string
	StaffName   string
	PeriodStart time.Time
	PeriodEnd   time.Time
	OrderCount  int
	TotalAmount string
	CreatedAt   time.Time
}

type OutstandingRow struct {
	StaffID       string
	StaffName     string
	Role          string
	OrderCount    int
	AccruedAmount string
	OldestOrderAt *time.Time
}

type SettlementRepo struct {
	db *pgxpool.Pool
}

func NewSettlementRepo(db *pgxpool.Pool) *SettlementRepo {
	return &SettlementRepo{db: db}
}

func (r *SettlementRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.db.BeginTx(ctx, pgx.TxOptions{})
}

// Outstanding lists per-staff dues: delivered-and-paid orders they
// served that no settlement has stamped yet.
func (r *SettlementRepo) Outstanding(ctx context.Context) ([]OutstandingRow, error) {
	const q = `
SELECT
  s.id::text,
  s.name,
  s.role,
  COUNT(o.id) AS order_count,
  COALESCE(SUM(o.paid_amount), 0)::numeric::text AS accrued,
  MIN(o.created_at) AS oldest
FROM staff s
JOIN orders o ON o.served_by = s.id
WHERE o.settlement_id IS NULL
  AND o.status = 'delivered'
  AND o.payment_status = 'paid'
GROUP BY s.id, s.name, s.role
ORDER BY s.name ASC;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OutstandingRow, 0, 10)
	for rows.Next() {
		var o OutstandingRow
		if err := rows.Scan(&o.StaffID, &o.StaffName, &o.Role, &o.OrderCount, &o.AccruedAmount, &o.OldestOrderAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func staffExists(ctx context.Context, tx pgx.Tx, staffID string) (name string, err error) {
	const q = `SELECT name FROM staff WHERE id = $1::uuid;`
	if err := tx.QueryRow(ctx, q, staffID).Scan(&name); err != nil {
		return "", err
	}
	return name, nil
}

// lockUnsettledOrders locks the staff member's unsettled orders and
// returns their count, total and the covered period.
func lockUnsettledOrders(ctx context.Context, tx pgx.Tx, staffID string) (count int, total string, start, end *time.Time, err error) {
	const q = `
SELECT
  COUNT(*),
  COALESCE(SUM(paid_amount), 0)::numeric::text,
  MIN(created_at),
  MAX(created_at)
FROM (
  SELECT paid_amount, created_at
  FROM orders
  WHERE served_by = $1::uuid
    AND settlement_id IS NULL
    AND status = 'delivered'
    AND payment_status = 'paid'
  FOR UPDATE
) locked;
`
	if err := tx.QueryRow(ctx, q, staffID).Scan(&count, &total, &start, &end); err != nil {
		return 0, "", nil, nil, err
	}
	return count, total, start, end, nil
}

func insertSettlement(ctx context.Context, tx pgx.Tx, staffID string, start, end time.Time, orderCount int, total string) (*SettlementRow, error) {
	const q = `
INSERT INTO staff_settlements (staff_id, period_start, period_end, order_count, total_amount)
VALUES ($1::uuid, $2, $3, $4, $5::numeric)
RETURNING id::text, staff_id::text, period_start, period_end, order_count, total_amount::text, created_at;
`
	row := tx.QueryRow(ctx, q, staffID, start, end, orderCount, total)

	var out SettlementRow
	if err := row.Scan(&out.ID, &out.StaffID, &out.PeriodStart, &out.PeriodEnd, &out.OrderCount, &out.TotalAmount, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func stampOrdersSettled(ctx context.Context, tx pgx.Tx, staffID, settlementID string) error {
	const q = `
UPDATE orders
SET settlement_id = $2::uuid,
    updated_at = now()
WHERE served_by = $1::uuid
  AND settlement_id IS NULL
  AND status = 'delivered'
  AND payment_status = 'paid';
`
	_, err := tx.Exec(ctx, q, staffID, settlementID)
	return err
}

func (r *SettlementRepo) ListByStaff(ctx context.Context, staffID string, limit, offset int) ([]SettlementRow, error) {
	const q = `
SELECT
  ss.id::text,
  ss.staff_id::text,
  s.name,
  ss.period_start,
  ss.period_end,
  ss.order_count,
  ss.total_amount::text,
  ss.created_at
FROM staff_settlements ss
JOIN staff s ON s.id = ss.staff_id
WHERE ss.staff_id = $1::uuid
ORDER BY ss.created_at DESC
LIMIT $2 OFFSET $3;
`
	rows, err := r.db.Query(ctx, q, staffID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SettlementRow, 0, limit)
	for rows.Next() {
		var s SettlementRow
		if err := rows.Scan(&s.ID, &s.StaffID, &s.StaffName, &s.PeriodStart, &s.PeriodEnd, &s.OrderCount, &s.TotalAmount, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
