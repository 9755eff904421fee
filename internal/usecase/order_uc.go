package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/woodline/backend/internal/domain"
)

type OrderUC struct {
	Orders domain.OrderRepo
}

func (uc *OrderUC) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Order, error) {
	return uc.Orders.ListByProfile(ctx, profileID)
}

func (uc *OrderUC) GetByNumber(ctx context.Context, profileID uuid.UUID, number string) (*domain.Order, error) {
	if number == "" {
		return nil, domain.ErrNotFound
	}
	return uc.Orders.FindByNumber(ctx, profileID, number)
}

// AdvanceStatus is advisory housekeeping: pending orders move to
// processing, anything else is untouched. Safe to skip or repeat.
func (uc *OrderUC) AdvanceStatus(ctx context.Context, orderID uuid.UUID) error {
	return uc.Orders.AdvanceStatus(ctx, orderID)
}

func (uc *OrderUC) AdvanceAllPending(ctx context.Context) (int64, error) {
	return uc.Orders.AdvanceAllPending(ctx)
}
