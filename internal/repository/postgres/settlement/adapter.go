package postgres

import (
	"context"

	"github.com/google/uuid"

	settlementuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/settlement"
)

type SettlementStoreAdapter struct {
	repo *SettlementRepo
}

func NewSettlementStoreAdapter(repo *SettlementRepo) *SettlementStoreAdapter {
	return &SettlementStoreAdapter{repo: repo}
}

func (a *SettlementStoreAdapter) Outstanding(ctx context.Context) ([]settlementuc.Outstanding, error) {
	rows, err := a.repo.Outstanding(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]settlementuc.Outstanding, 0, len(rows))
	for _, r := range rows {
		out = append(out, settlementuc.Outstanding{
			StaffID:       r.StaffID,
			StaffName:     r.StaffName,
			Role:          r.Role,
			OrderCount:    r.OrderCount,
			AccruedAmount: r.AccruedAmount,
			OldestOrderAt: r.OldestOrderAt,
		})
	}
	return out, nil
}

func (a *SettlementStoreAdapter) Close(ctx context.Context, staffID string) (*settlementuc.Settlement, error) {
	if _, err := uuid.Parse(staffID); err != nil {
		return nil, settlementuc.ErrStaffMissing
	}

	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	staffName, err := staffExists(ctx, tx, staffID)
	if err != nil {
		if isNoRows(err) {
			return nil, settlementuc.ErrStaffMissing
		}
		return nil, err
	}

	count, total, start, end, err := lockUnsettledOrders(ctx, tx, staffID)
	if err != nil {
		return nil, err
	}
	if count == 0 || start == nil || end == nil {
		return nil, settlementuc.ErrNothingToSettle
	}

	row, err := insertSettlement(ctx, tx, staffID, *start, *end, count, total)
	if err != nil {
		return nil, err
	}

	if err := stampOrdersSettled(ctx, tx, staffID, row.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	out := mapSettlementRowToUC(row)
	out.StaffName = staffName
	return out, nil
}

func (a *SettlementStoreAdapter) ListByStaff(ctx context.Context, staffID string, limit, offset int) ([]settlementuc.Settlement, error) {
	if _, err := uuid.Parse(staffID); err != nil {
		return nil, settlementuc.ErrStaffMissing
	}
	rows, err := a.repo.ListByStaff(ctx, staffID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]settlementuc.Settlement, 0, len(rows))
	for i := range rows {
		out = append(out, *mapSettlementRowToUC(&rows[i]))
	}
	return out, nil
}

func mapSettlementRowToUC(r *SettlementRow) *settlementuc.Settlement {
	return &settlementuc.Settlement{
		ID:          r.ID,
		StaffID:     r.StaffID,
		StaffName:   r.StaffName,
		PeriodStart: r.PeriodStart,
		PeriodEnd:   r.PeriodEnd,
		OrderCount:  r.OrderCount,
		TotalAmount: r.TotalAmount,
		CreatedAt:   r.CreatedAt,
	}
}

// Compile-time check
var _ settlementuc.Store = (*SettlementStoreAdapter)(nil)
