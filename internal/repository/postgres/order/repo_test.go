package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/gestao-sub001/internal/money"
	"github.com/nicklvs1307/gestao-sub001/internal/repository/postgres/testutil"
	orderuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/order"
)

func mustCents(t *testing.T, s string) money.Cents {
	t.Helper()
	c, err := money.Parse(s)
	require.NoError(t, err)
	return c
}

func TestOrderAdapter_CreateComputesTotal(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)

	staffID := testutil.MustInsertStaff(t, pool, "Bia", "waiter")
	adapter := NewOrderStoreAdapter(NewOrderRepo(pool))

	table := 7
	o, err := adapter.Create(context.Background(), orderuc.CreateInput{
		TableNumber:  &table,
		CustomerName: "Carlos",
		ServedBy:     &staffID,
	}, []orderuc.ItemToInsert{
		{Name: "X-Burger", Qty: 2, UnitAmount: mustCents(t, "12.50"), LineTotal: mustCents(t, "25.00")},
		{Name: "Suco", Qty: 1, UnitAmount: mustCents(t, "8.00"), LineTotal: mustCents(t, "8.00")},
	})
	require.NoError(t, err)
	require.Equal(t, orderuc.StatusReceived, o.Status)
	require.Equal(t, "33.00", o.TotalAmount)
	require.Len(t, o.Items, 2)
	require.Equal(t, 0, o.Items[0].PaidQty)
}

func TestOrderAdapter_ListFiltersByStatus(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)

	adapter := NewOrderStoreAdapter(NewOrderRepo(pool))
	ctx := context.Background()

	a := testutil.MustInsertOrder(t, pool, "A", nil)
	testutil.MustInsertOrder(t, pool, "B", nil)

	_, err := adapter.UpdateStatus(ctx, a, orderuc.StatusPreparing)
	require.NoError(t, err)

	preparing := orderuc.StatusPreparing
	got, err := adapter.List(ctx, orderuc.ListQuery{Limit: 20, Status: &preparing})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, a, got[0].ID)

	all, err := adapter.List(ctx, orderuc.ListQuery{Limit: 20})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestOrderAdapter_BoardShowsOnlyOpenOrders(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)

	adapter := NewOrderStoreAdapter(NewOrderRepo(pool))
	ctx := context.Background()

	open := testutil.MustInsertOrder(t, pool, "Open", nil)
	testutil.MustInsertOrderItem(t, pool, open, "Pizza", 1, "30.00")

	done := testutil.MustInsertOrder(t, pool, "Done", nil)
	testutil.MustInsertOrderItem(t, pool, done, "Suco", 1, "8.00")
	_, err := adapter.UpdateStatus(ctx, done, orderuc.StatusDelivered)
	require.NoError(t, err)

	board, err := adapter.Board(ctx)
	require.NoError(t, err)
	require.Len(t, board, 1)
	require.Equal(t, open, board[0].ID)
	require.Len(t, board[0].Items, 1)
	require.Equal(t, "Pizza", board[0].Items[0].Name)
}

func TestOrderAdapter_GetViewIncludesPayments(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)

	staffID := testutil.MustInsertStaff(t, pool, "Ana", "cashier")
	methodID := testutil.MustInsertMethod(t, pool, "Pix", "pix")
	orderID := testutil.MustInsertOrder(t, pool, "Carlos", &staffID)
	itemID := testutil.MustInsertOrderItem(t, pool, orderID, "Pizza", 1, "30.00")

	ctx := context.Background()

	var paymentID string
	err := pool.QueryRow(ctx, `
		INSERT INTO payments (order_id, taken_by, amount, discount, surcharge)
		VALUES ($1::uuid, $2::uuid, 30.00, 0, 0)
		RETURNING id::text
	`, orderID, staffID).Scan(&paymentID)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `
		INSERT INTO payment_tenders (payment_id, method_id, method_name, amount)
		VALUES ($1::uuid, $2::uuid, 'Pix', 30.00)
	`, paymentID, methodID)
	require.NoError(t, err)

	_, err = pool.Exec(ctx,
		`UPDATE order_items SET paid_qty = qty WHERE id = $1::uuid`, itemID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx,
		`UPDATE orders SET paid_amount = 30.00, payment_status = 'paid' WHERE id = $1::uuid`, orderID)
	require.NoError(t, err)

	adapter := NewOrderStoreAdapter(NewOrderRepo(pool))
	view, err := adapter.GetView(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, "paid", view.PaymentStatus)
	require.Len(t, view.Payments, 1)
	require.Equal(t, "30.00", view.Payments[0].Amount)
	require.Equal(t, "0.00", view.BalanceDue)
}
