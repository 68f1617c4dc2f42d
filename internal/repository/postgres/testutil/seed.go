package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func MustInsertStaff(t *testing.T, db *pgxpool.Pool, name, role string) string {
	t.Helper()

	email := fmt.Sprintf("%s.%d@example.com", role, time.Now().UnixNano())

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO staff (name, email, role, password_hash, is_active)
		VALUES ($1, $2, $3, '$2a$10$fake.hash.for.tests.only', true)
		RETURNING id::text
	`, name, email, role).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func MustInsertMethod(t *testing.T, db *pgxpool.Pool, name, kind string) string {
	t.Helper()

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO payment_methods (name, kind, is_active)
		VALUES ($1, $2, true)
		RETURNING id::text
	`, name, kind).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func MustInsertOrder(t *testing.T, db *pgxpool.Pool, customerName string, servedBy *string) string {
	t.Helper()

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO orders (customer_name, served_by)
		VALUES ($1, $2::uuid)
		RETURNING id::text
	`, customerName, servedBy).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func MustInsertOrderItem(t *testing.T, db *pgxpool.Pool, orderID, name string, qty int, unitAmount string) string {
	t.Helper()

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO order_items (order_id, name, qty, unit_amount, line_total)
		VALUES ($1::uuid, $2, $3, $4::numeric, ($3 * $4::numeric))
		RETURNING id::text
	`, orderID, name, qty, unitAmount).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = db.Exec(context.Background(), `
		UPDATE orders
		SET total_amount = (SELECT COALESCE(SUM(line_total), 0) FROM order_items WHERE order_id = $1::uuid)
		WHERE id = $1::uuid
	`, orderID)
	require.NoError(t, err)

	return id
}
