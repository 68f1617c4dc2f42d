package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/gestao-sub001/internal/money"
	"github.com/nicklvs1307/gestao-sub001/internal/repository/postgres/testutil"
	checkoutuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/checkout"
	orderuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/order"
)

func cents(t *testing.T, s string) money.Cents {
	t.Helper()
	c, err := money.Parse(s)
	require.NoError(t, err)
	return c
}

func TestSettle_FullPaymentMarksOrderPaid(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)

	staffID := testutil.MustInsertStaff(t, pool, "Ana", "cashier")
	methodID := testutil.MustInsertMethod(t, pool, "Dinheiro", "cash")
	orderID := testutil.MustInsertOrder(t, pool, "Carlos", &staffID)
	itemID := testutil.MustInsertOrderItem(t, pool, orderID, "X-Burger", 2, "12.50")

	adapter := NewCheckoutStoreAdapter(NewCheckoutRepo(pool))

	res, err := adapter.Settle(context.Background(), checkoutuc.SettleInput{
		OrderID: orderID,
		StaffID: staffID,
		Items:   []checkoutuc.SettleItem{{ItemID: itemID, Qty: 2}},
		Tenders: []checkoutuc.Tender{
			{MethodID: methodID, Method: "Dinheiro", Amount: cents(t, "25.00")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "paid", res.PaymentStatus)
	require.Equal(t, cents(t, "25.00"), res.PaidAmount)

	snap, err := adapter.Snapshot(context.Background(), orderID)
	require.NoError(t, err)
	require.Equal(t, "paid", snap.PaymentStatus)
	require.Equal(t, 2, snap.Lines[0].PaidQty)
}

func TestSettle_PartialThenRemainderPaid(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)

	staffID := testutil.MustInsertStaff(t, pool, "Ana", "cashier")
	methodID := testutil.MustInsertMethod(t, pool, "Pix", "pix")
	orderID := testutil.MustInsertOrder(t, pool, "Carlos", &staffID)
	itemID := testutil.MustInsertOrderItem(t, pool, orderID, "X-Burger", 3, "10.00")

	adapter := NewCheckoutStoreAdapter(NewCheckoutRepo(pool))
	ctx := context.Background()

	res, err := adapter.Settle(ctx, checkoutuc.SettleInput{
		OrderID: orderID,
		StaffID: staffID,
		Items:   []checkoutuc.SettleItem{{ItemID: itemID, Qty: 1}},
		Tenders: []checkoutuc.Tender{{MethodID: methodID, Method: "Pix", Amount: cents(t, "10.00")}},
	})
	require.NoError(t, err)
	require.Equal(t, "partial", res.PaymentStatus)

	res, err = adapter.Settle(ctx, checkoutuc.SettleInput{
		OrderID: orderID,
		StaffID: staffID,
		Items:   []checkoutuc.SettleItem{{ItemID: itemID, Qty: 2}},
		Tenders: []checkoutuc.Tender{{MethodID: methodID, Method: "Pix", Amount: cents(t, "20.00")}},
	})
	require.NoError(t, err)
	require.Equal(t, "paid", res.PaymentStatus)
	require.Equal(t, cents(t, "30.00"), res.PaidAmount)
}

func TestSettle_DiscountAppliedToStoredAmount(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)

	staffID := testutil.MustInsertStaff(t, pool, "Ana", "cashier")
	methodID := testutil.MustInsertMethod(t, pool, "Dinheiro", "cash")
	orderID := testutil.MustInsertOrder(t, pool, "Carlos", &staffID)
	itemID := testutil.MustInsertOrderItem(t, pool, orderID, "Pizza", 1, "30.00")

	adapter := NewCheckoutStoreAdapter(NewCheckoutRepo(pool))

	res, err := adapter.Settle(context.Background(), checkoutuc.SettleInput{
		OrderID:  orderID,
		StaffID:  staffID,
		Items:    []checkoutuc.SettleItem{{ItemID: itemID, Qty: 1}},
		Tenders:  []checkoutuc.Tender{{MethodID: methodID, Method: "Dinheiro", Amount: cents(t, "25.00")}},
		Discount: cents(t, "5.00"),
	})
	require.NoError(t, err)
	require.Equal(t, "paid", res.PaymentStatus)
	require.Equal(t, cents(t, "25.00"), res.PaidAmount)
}

func TestSettle_StaleSelectionRejected(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)

	staffID := testutil.MustInsertStaff(t, pool, "Ana", "cashier")
	methodID := testutil.MustInsertMethod(t, pool, "Dinheiro", "cash")
	orderID := testutil.MustInsertOrder(t, pool, "Carlos", &staffID)
	itemID := testutil.MustInsertOrderItem(t, pool, orderID, "X-Burger", 2, "12.50")

	adapter := NewCheckoutStoreAdapter(NewCheckoutRepo(pool))
	ctx := context.Background()

	// first cashier pays both units
	_, err := adapter.Settle(ctx, checkoutuc.SettleInput{
		OrderID: orderID,
		StaffID: staffID,
		Items:   []checkoutuc.SettleItem{{ItemID: itemID, Qty: 2}},
		Tenders: []checkoutuc.Tender{{MethodID: methodID, Method: "Dinheiro", Amount: cents(t, "25.00")}},
	})
	require.NoError(t, err)

	// a second, stale selection of the same units must fail
	_, err = adapter.Settle(ctx, checkoutuc.SettleInput{
		OrderID: orderID,
		StaffID: staffID,
		Items:   []checkoutuc.SettleItem{{ItemID: itemID, Qty: 1}},
		Tenders: []checkoutuc.Tender{{MethodID: methodID, Method: "Dinheiro", Amount: cents(t, "12.50")}},
	})
	require.ErrorIs(t, err, checkoutuc.ErrItemUnavailable)

	// nothing from the failed attempt stuck
	snap, err := adapter.Snapshot(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, 2, snap.Lines[0].PaidQty)
}

func TestSettle_CancelledOrderRejected(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)

	staffID := testutil.MustInsertStaff(t, pool, "Ana", "cashier")
	methodID := testutil.MustInsertMethod(t, pool, "Dinheiro", "cash")
	orderID := testutil.MustInsertOrder(t, pool, "Carlos", &staffID)
	itemID := testutil.MustInsertOrderItem(t, pool, orderID, "X-Burger", 1, "12.50")

	_, err := pool.Exec(context.Background(),
		`UPDATE orders SET status = 'cancelled' WHERE id = $1::uuid`, orderID)
	require.NoError(t, err)

	adapter := NewCheckoutStoreAdapter(NewCheckoutRepo(pool))

	_, err = adapter.Settle(context.Background(), checkoutuc.SettleInput{
		OrderID: orderID,
		StaffID: staffID,
		Items:   []checkoutuc.SettleItem{{ItemID: itemID, Qty: 1}},
		Tenders: []checkoutuc.Tender{{MethodID: methodID, Method: "Dinheiro", Amount: cents(t, "12.50")}},
	})
	require.ErrorIs(t, err, checkoutuc.ErrOrderClosed)
}

func TestSnapshot_UnknownOrder(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)

	adapter := NewCheckoutStoreAdapter(NewCheckoutRepo(pool))

	_, err := adapter.Snapshot(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, orderuc.ErrNotFound)
}
