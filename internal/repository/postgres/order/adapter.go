package postgres

import (
	"context"

	"github.com/nicklvs1307/gestao-sub001/internal/money"
	orderuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/order"
)

type OrderStoreAdapter struct {
	repo *OrderRepo
}

func NewOrderStoreAdapter(repo *OrderRepo) *OrderStoreAdapter {
	return &OrderStoreAdapter{repo: repo}
}

func (a *OrderStoreAdapter) Create(ctx context.Context, in orderuc.CreateInput, items []orderuc.ItemToInsert) (*orderuc.Order, error) {
	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	head, err := insertOrder(ctx, tx, in.TableNumber, in.CustomerName, in.CustomerPhone, in.ServedBy, in.Notes)
	if err != nil {
		return nil, err
	}

	var total money.Cents
	itemRows := make([]OrderItemRow, 0, len(items))
	for _, it := range items {
		row, err := insertOrderItem(ctx, tx, head.ID, it.Name, it.Qty, it.UnitAmount.String(), it.LineTotal.String())
		if err != nil {
			return nil, err
		}
		total += it.LineTotal
		itemRows = append(itemRows, *row)
	}

	head, err = updateOrderTotal(ctx, tx, head.ID, total.String())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	out := mapOrderRowToUC(head)
	for i := range itemRows {
		out.Items = append(out.Items, mapItemRowToUC(&itemRows[i]))
	}
	return out, nil
}

func (a *OrderStoreAdapter) List(ctx context.Context, q orderuc.ListQuery) ([]orderuc.Order, error) {
	rows, err := a.repo.List(ctx, q.Limit, q.Offset, q.Status)
	if err != nil {
		return nil, err
	}
	out := make([]orderuc.Order, 0, len(rows))
	for i := range rows {
		out = append(out, *mapOrderRowToUC(&rows[i]))
	}
	return out, nil
}

func (a *OrderStoreAdapter) GetView(ctx context.Context, id string) (*orderuc.View, error) {
	head, err := a.repo.GetViewHeader(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, orderuc.ErrNotFound
		}
		return nil, err
	}

	items, err := a.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	pays, err := a.repo.GetViewPayments(ctx, id)
	if err != nil {
		return nil, err
	}

	total, _ := money.Parse(head.TotalAmount)
	paid, _ := money.Parse(head.PaidAmount)

	v := &orderuc.View{
		ID:            head.ID,
		TableNumber:   head.TableNumber,
		CustomerName:  head.CustomerName,
		CustomerPhone: head.CustomerPhone,
		ServedBy:      head.ServedBy,
		ServedByName:  head.ServedByName,
		Status:        head.Status,
		PaymentStatus: head.PaymentStatus,
		TotalAmount:   head.TotalAmount,
		PaidAmount:    head.PaidAmount,
		BalanceDue:    (total - paid).String(),
		Notes:         head.Notes,
		CreatedAt:     head.CreatedAt,
		UpdatedAt:     head.UpdatedAt,
		Items:         make([]orderuc.ViewItem, 0, len(items)),
		Payments:      make([]orderuc.ViewPay, 0, len(pays)),
	}

	for _, it := range items {
		v.Items = append(v.Items, orderuc.ViewItem{
			ID:          it.ID,
			Name:        it.Name,
			Qty:         it.Qty,
			PaidQty:     it.PaidQty,
			Outstanding: it.Qty - it.PaidQty,
			UnitAmount:  it.UnitAmount,
			LineTotal:   it.LineTotal,
		})
	}
	for _, p := range pays {
		v.Payments = append(v.Payments, orderuc.ViewPay{
			ID:        p.ID,
			Method:    p.Method,
			Amount:    p.Amount,
			Discount:  p.Discount,
			Surcharge: p.Surcharge,
			PaidAt:    p.PaidAt,
			TakenBy:   p.TakenBy,
		})
	}
	return v, nil
}

func (a *OrderStoreAdapter) GetStatus(ctx context.Context, id string) (string, error) {
	status, err := a.repo.GetStatus(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return "", orderuc.ErrNotFound
		}
		return "", err
	}
	return status, nil
}

func (a *OrderStoreAdapter) UpdateStatus(ctx context.Context, id string, status string) (*orderuc.Order, error) {
	row, err := a.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if isNoRows(err) {
			return nil, orderuc.ErrNotFound
		}
		return nil, err
	}
	return mapOrderRowToUC(row), nil
}

func (a *OrderStoreAdapter) Board(ctx context.Context) ([]orderuc.BoardEntry, error) {
	rows, err := a.repo.ListBoard(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]orderuc.BoardEntry, 0, 10)
	for _, r := range rows {
		if len(out) == 0 || out[len(out)-1].ID != r.ID {
			out = append(out, orderuc.BoardEntry{
				ID:           r.ID,
				TableNumber:  r.TableNumber,
				CustomerName: r.CustomerName,
				Status:       r.Status,
				CreatedAt:    r.CreatedAt,
			})
		}
		last := &out[len(out)-1]
		last.Items = append(last.Items, orderuc.BoardItem{Name: r.ItemName, Qty: r.ItemQty})
	}
	return out, nil
}

func mapOrderRowToUC(r *OrderRow) *orderuc.Order {
	return &orderuc.Order{
		ID:            r.ID,
		TableNumber:   r.TableNumber,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ServedBy:      r.ServedBy,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		TotalAmount:   r.TotalAmount,
		PaidAmount:    r.PaidAmount,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func mapItemRowToUC(r *OrderItemRow) orderuc.Item {
	return orderuc.Item{
		ID:         r.ID,
		OrderID:    r.OrderID,
		Name:       r.Name,
		Qty:        r.Qty,
		PaidQty:    r.PaidQty,
		UnitAmount: r.UnitAmount,
		LineTotal:  r.LineTotal,
		CreatedAt:  r.CreatedAt,
	}
}

// Compile-time check
var _ orderuc.Store = (*OrderStoreAdapter)(nil)
