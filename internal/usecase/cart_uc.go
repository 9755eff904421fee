package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/woodline/backend/internal/domain"
)

type CartUC struct {
	Carts    domain.CartRepo
	Products domain.ProductRepo
}

// AddLine merges quantities when the product is already in the cart. Stock
// is not validated here; only checkout checks it.
func (uc *CartUC) AddLine(ctx context.Context, profileID, productID uuid.UUID, qty int) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	if _, err := uc.Products.FindByID(ctx, productID); err != nil {
		return err
	}
	return uc.Carts.AddItem(ctx, profileID, productID, qty)
}

// RemoveLine succeeds whether or not the product is in the cart.
func (uc *CartUC) RemoveLine(ctx context.Context, profileID, productID uuid.UUID) error {
	return uc.Carts.RemoveItem(ctx, profileID, productID)
}

func (uc *CartUC) GetCart(ctx context.Context, profileID uuid.UUID) (*domain.Cart, error) {
	return uc.Carts.GetByProfile(ctx, profileID)
}
