package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/gestao-sub001/internal/repository/postgres/testutil"
	methoduc "github.com/nicklvs1307/gestao-sub001/internal/usecase/method"
)

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }

func TestUpdate_RenameAndToggle(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)
	ctx := context.Background()

	adapter := NewMethodStoreAdapter(NewMethodRepo(pool))

	m, err := adapter.Create(ctx, "Dinheiro", "cash")
	require.NoError(t, err)

	m, err = adapter.Update(ctx, m.ID, strptr("Especie"), nil, nil)
	require.NoError(t, err)
	require.Equal(t, "Especie", m.Name)
	require.Equal(t, "cash", m.Kind)
	require.True(t, m.IsActive)

	m, err = adapter.Update(ctx, m.ID, nil, nil, boolptr(false))
	require.NoError(t, err)
	require.False(t, m.IsActive)

	// deactivated methods are invisible to checkout
	_, err = adapter.FindActive(ctx, m.ID)
	require.ErrorIs(t, err, methoduc.ErrNotFound)
}

func TestUpdate_UnknownMethod(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)

	adapter := NewMethodStoreAdapter(NewMethodRepo(pool))

	_, err := adapter.Update(context.Background(), "00000000-0000-0000-0000-000000000000", strptr("X"), nil, nil)
	require.ErrorIs(t, err, methoduc.ErrNotFound)
}

func TestList_OnlyActiveFilters(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	testutil.TruncateAll(t, pool)
	ctx := context.Background()

	adapter := NewMethodStoreAdapter(NewMethodRepo(pool))

	_, err := adapter.Create(ctx, "Pix", "pix")
	require.NoError(t, err)
	off, err := adapter.Create(ctx, "Cartao", "card")
	require.NoError(t, err)
	_, err = adapter.Update(ctx, off.ID, nil, nil, boolptr(false))
	require.NoError(t, err)

	active, err := adapter.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "Pix", active[0].Name)

	all, err := adapter.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
