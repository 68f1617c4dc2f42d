package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/gestao-sub001/internal/repository/postgres/testutil"
	settlementuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/settlement"
)

func TestClose_StampsOrdersAndSumsDues(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)
	ctx := context.Background()

	staffID := testutil.MustInsertStaff(t, pool, "Bia", "waiter")

	for i := 0; i < 2; i++ {
		orderID := testutil.MustInsertOrder(t, pool, "Cliente", &staffID)
		testutil.MustInsertOrderItem(t, pool, orderID, "Pizza", 1, "30.00")
		_, err := pool.Exec(ctx, `
			UPDATE orders
			SET status = 'delivered', payment_status = 'paid', paid_amount = 30.00
			WHERE id = $1::uuid
		`, orderID)
		require.NoError(t, err)
	}

	adapter := NewSettlementStoreAdapter(NewSettlementRepo(pool))

	out, err := adapter.Outstanding(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, staffID, out[0].StaffID)
	require.Equal(t, 2, out[0].OrderCount)
	require.Equal(t, "60.00", out[0].AccruedAmount)

	s, err := adapter.Close(ctx, staffID)
	require.NoError(t, err)
	require.Equal(t, 2, s.OrderCount)
	require.Equal(t, "60.00", s.TotalAmount)
	require.Equal(t, "Bia", s.StaffName)

	// covered orders are stamped, so dues reset
	out, err = adapter.Outstanding(ctx)
	require.NoError(t, err)
	require.Empty(t, out)

	// and a second close has nothing left
	_, err = adapter.Close(ctx, staffID)
	require.ErrorIs(t, err, settlementuc.ErrNothingToSettle)

	hist, err := adapter.ListByStaff(ctx, staffID, 20, 0)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	require.Equal(t, s.ID, hist[0].ID)
}

func TestClose_UnknownStaff(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)

	adapter := NewSettlementStoreAdapter(NewSettlementRepo(pool))

	_, err := adapter.Close(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, settlementuc.ErrStaffMissing)

	_, err = adapter.Close(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, settlementuc.ErrStaffMissing)
}

func TestOutstanding_IgnoresUndeliveredOrUnpaid(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)
	ctx := context.Background()

	staffID := testutil.MustInsertStaff(t, pool, "Bia", "waiter")

	// delivered but unpaid
	a := testutil.MustInsertOrder(t, pool, "A", &staffID)
	_, err := pool.Exec(ctx, `UPDATE orders SET status = 'delivered' WHERE id = $1::uuid`, a)
	require.NoError(t, err)

	// paid but still in the kitchen
	b := testutil.MustInsertOrder(t, pool, "B", &staffID)
	_, err = pool.Exec(ctx, `UPDATE orders SET payment_status = 'paid', paid_amount = 10.00 WHERE id = $1::uuid`, b)
	require.NoError(t, err)

	adapter := NewSettlementStoreAdapter(NewSettlementRepo(pool))

	out, err := adapter.Outstanding(ctx)
	require.NoError(t, err)
	require.Empty(t, out)
}
