package checkout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/gestao-sub001/internal/money"
)

func threeLines() []OrderLine {
	return []OrderLine{
		{ItemID: "i1", Name: "X-Burger", UnitPrice: 1000, Qty: 1},
		{ItemID: "i2", Name: "Pizza Calabresa", UnitPrice: 1550, Qty: 1},
		{ItemID: "i3", Name: "Guarana Lata", UnitPrice: 225, Qty: 1},
	}
}

// Selection can never exceed an item's outstanding quantity.
func TestSession_SelectionCappedAtOutstanding(t *testing.T) {
	s := NewSession("o1", "staff1", []OrderLine{
		{ItemID: "i1", Name: "Coxinha", UnitPrice: 500, Qty: 3, PaidQty: 1},
	})

	require.NoError(t, s.AddUnit("i1"))
	require.NoError(t, s.AddUnit("i1"))
	require.ErrorIs(t, s.AddUnit("i1"), ErrNothingOutstanding)
	require.Equal(t, 2, s.Selection[0].Qty)

	// AddAllOutstanding lands on the same cap
	require.NoError(t, s.AddAllOutstanding("i1"))
	require.Equal(t, 2, s.Selection[0].Qty)
}

func TestSession_AddUnitUnknownItem(t *testing.T) {
	s := NewSession("o1", "staff1", threeLines())
	require.ErrorIs(t, s.AddUnit("nope"), ErrItemUnknown)
	require.Empty(t, s.Selection)
}

// addUnit followed by removeUnit restores the prior selection.
func TestSession_AddRemoveUnitAreInverse(t *testing.T) {
	s := NewSession("o1", "staff1", threeLines())

	require.NoError(t, s.AddUnit("i1"))
	before := len(s.Selection)
	subtotalBefore := s.Subtotal()

	require.NoError(t, s.AddUnit("i2"))
	require.NoError(t, s.RemoveUnit("i2"))

	require.Len(t, s.Selection, before)
	require.Equal(t, subtotalBefore, s.Subtotal())
	require.ErrorIs(t, s.RemoveUnit("i2"), ErrNotSelected)
}

func TestSession_RemoveAllDropsEntry(t *testing.T) {
	s := NewSession("o1", "staff1", []OrderLine{
		{ItemID: "i1", Name: "Pastel", UnitPrice: 700, Qty: 4},
	})
	require.NoError(t, s.AddAllOutstanding("i1"))
	require.Equal(t, 4, s.Selection[0].Qty)

	require.NoError(t, s.RemoveAll("i1"))
	require.Empty(t, s.Selection)
	require.ErrorIs(t, s.RemoveAll("i1"), ErrNotSelected)
}

func TestSession_SelectAllOutstandingSkipsPaidLines(t *testing.T) {
	s := NewSession("o1", "staff1", []OrderLine{
		{ItemID: "i1", Name: "Feijoada", UnitPrice: 3200, Qty: 2, PaidQty: 2},
		{ItemID: "i2", Name: "Caipirinha", UnitPrice: 1800, Qty: 3, PaidQty: 1},
	})
	s.SelectAllOutstanding()

	require.Len(t, s.Selection, 1)
	require.Equal(t, "i2", s.Selection[0].ItemID)
	require.Equal(t, 2, s.Selection[0].Qty)
}

// totalDue = subtotal + surcharge - discount, exactly.
// Three items 10.00 + 15.50 + 2.25 fully selected, discount 5.00:
// subtotal 27.75, totalDue 22.75.
func TestSession_Totals(t *testing.T) {
	s := NewSession("o1", "staff1", threeLines())
	s.SelectAllOutstanding()
	require.NoError(t, s.SetDiscount(500))

	require.Equal(t, money.Cents(2775), s.Subtotal())
	require.Equal(t, money.Cents(2275), s.TotalDue())
	require.Equal(t, money.Cents(2275), s.Remaining())

	require.NoError(t, s.SetSurcharge(100))
	require.Equal(t, money.Cents(2375), s.TotalDue())
}

// A discount larger than the selection leaves totalDue negative
// (not clamped) while remaining floors at zero.
func TestSession_NegativeTotalDueNotClamped(t *testing.T) {
	s := NewSession("o1", "staff1", []OrderLine{
		{ItemID: "i1", Name: "Cafe", UnitPrice: 300, Qty: 1},
	})
	s.SelectAllOutstanding()
	require.NoError(t, s.SetDiscount(1000))

	require.Equal(t, money.Cents(-700), s.TotalDue())
	require.Equal(t, money.Cents(0), s.Remaining())
}

// The suggested next tender always tracks the freshly computed
// remaining balance through selection, adjustment and tender changes.
func TestSession_SuggestionFollowsRemaining(t *testing.T) {
	s := NewSession("o1", "staff1", threeLines())
	s.SelectAllOutstanding()
	require.Equal(t, money.Cents(2775), s.Suggested)

	require.NoError(t, s.SetDiscount(500))
	require.Equal(t, money.Cents(2275), s.Suggested)

	require.NoError(t, s.AddTender("m1", "Dinheiro", 2000))
	require.Equal(t, money.Cents(275), s.Suggested)

	require.NoError(t, s.RemoveUnit("i3"))
	require.Equal(t, money.Cents(50), s.Suggested)

	require.NoError(t, s.RemoveTender(0))
	require.Equal(t, money.Cents(2050), s.Suggested)
}

func TestSession_CanSubmitGating(t *testing.T) {
	s := NewSession("o1", "staff1", threeLines())
	s.SelectAllOutstanding()

	// no tender yet
	require.False(t, s.CanSubmit())

	require.NoError(t, s.AddTender("m1", "Dinheiro", 2000))
	require.False(t, s.CanSubmit())

	require.NoError(t, s.AddTender("m2", "Pix", 775))
	require.True(t, s.CanSubmit())

	// overpayment stays allowed
	require.NoError(t, s.AddTender("m1", "Dinheiro", 5000))
	require.True(t, s.CanSubmit())
}

func TestSession_RemoveTenderBounds(t *testing.T) {
	s := NewSession("o1", "staff1", threeLines())
	require.ErrorIs(t, s.RemoveTender(0), ErrNoSuchTender)

	require.NoError(t, s.AddTender("m1", "Cartao", 100))
	require.ErrorIs(t, s.RemoveTender(1), ErrNoSuchTender)
	require.ErrorIs(t, s.RemoveTender(-1), ErrNoSuchTender)
	require.NoError(t, s.RemoveTender(0))
	require.Empty(t, s.Tenders)
}

func TestSession_ResetClearsEverything(t *testing.T) {
	s := NewSession("o1", "staff1", threeLines())
	s.SelectAllOutstanding()
	require.NoError(t, s.SetDiscount(100))
	require.NoError(t, s.SetSurcharge(50))
	require.NoError(t, s.AddTender("m1", "Dinheiro", 3000))

	paid := []OrderLine{
		{ItemID: "i1", Name: "X-Burger", UnitPrice: 1000, Qty: 1, PaidQty: 1},
	}
	s.Reset(paid)

	require.Empty(t, s.Selection)
	require.Empty(t, s.Tenders)
	require.Equal(t, money.Cents(0), s.Discount)
	require.Equal(t, money.Cents(0), s.Surcharge)
	require.Equal(t, money.Cents(0), s.Suggested)
	require.Equal(t, StateIdle, s.State)
	require.Equal(t, paid, s.Lines)
}
