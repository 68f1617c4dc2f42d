package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	created  []ItemToInsert
	statuses map[string]string
}

func (f *fakeStore) Create(ctx context.Context, in CreateInput, items []ItemToInsert) (*Order, error) {
	f.created = items
	return &Order{ID: "o1", CustomerName: in.CustomerName, Status: StatusReceived, PaymentStatus: "unpaid"}, nil
}

func (f *fakeStore) List(ctx context.Context, q ListQuery) ([]Order, error) { return nil, nil }

func (f *fakeStore) GetView(ctx context.Context, id string) (*View, error) { return nil, ErrNotFound }

func (f *fakeStore) GetStatus(ctx context.Context, id string) (string, error) {
	s, ok := f.statuses[id]
	if !ok {
		return "", ErrNotFound
	}
	return s, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id string, status string) (*Order, error) {
	f.statuses[id] = status
	return &Order{ID: id, Status: status}, nil
}

func (f *fakeStore) Board(ctx context.Context) ([]BoardEntry, error) { return nil, nil }

type nopPublisher struct{}

func (nopPublisher) OrderChanged(ctx context.Context, orderID, event string) error { return nil }

func TestCreate_ValidatesItems(t *testing.T) {
	store := &fakeStore{statuses: map[string]string{}}
	uc := New(store, nopPublisher{}, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, CreateInput{CustomerName: "Ana"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Create(ctx, CreateInput{
		CustomerName: "Ana",
		Items:        []CreateItemIn{{Name: "X-Salada", Qty: 0, UnitAmount: "18,00"}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Create(ctx, CreateInput{
		CustomerName: "Ana",
		Items:        []CreateItemIn{{Name: "X-Salada", Qty: 1, UnitAmount: "dezoito"}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	out, err := uc.Create(ctx, CreateInput{
		CustomerName: "Ana",
		Items: []CreateItemIn{
			{Name: "X-Salada", Qty: 2, UnitAmount: "18,00"},
			{Name: "Suco de Laranja", Qty: 1, UnitAmount: "8.50"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, StatusReceived, out.Status)
	require.Len(t, store.created, 2)
	require.Equal(t, "36.00", store.created[0].LineTotal.String())
	require.Equal(t, "8.50", store.created[1].LineTotal.String())
}

func TestCreate_TableWithoutNameIsEnough(t *testing.T) {
	store := &fakeStore{statuses: map[string]string{}}
	uc := New(store, nopPublisher{}, nil)

	table := 7
	_, err := uc.Create(context.Background(), CreateInput{
		TableNumber: &table,
		Items:       []CreateItemIn{{Name: "Chopp", Qty: 2, UnitAmount: "9.90"}},
	})
	require.NoError(t, err)
}

func TestUpdateStatus_TransitionTable(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{StatusReceived, StatusPreparing, true},
		{StatusReceived, StatusCancelled, true},
		{StatusReceived, StatusReady, false},
		{StatusReceived, StatusDelivered, false},
		{StatusPreparing, StatusReady, true},
		{StatusPreparing, StatusCancelled, true},
		{StatusPreparing, StatusDelivered, false},
		{StatusReady, StatusDelivered, true},
		{StatusReady, StatusCancelled, false},
		{StatusDelivered, StatusReady, false},
		{StatusCancelled, StatusReceived, false},
	}

	for _, tc := range cases {
		store := &fakeStore{statuses: map[string]string{"o1": tc.from}}
		uc := New(store, nopPublisher{}, nil)

		_, err := uc.UpdateStatus(context.Background(), "o1", UpdateStatusInput{Status: tc.to})
		if tc.ok {
			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			require.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	store := &fakeStore{statuses: map[string]string{"o1": StatusReceived}}
	uc := New(store, nopPublisher{}, nil)

	_, err := uc.UpdateStatus(context.Background(), "o1", UpdateStatusInput{Status: "burned"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}
