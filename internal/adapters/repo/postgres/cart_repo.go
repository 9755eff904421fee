package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/woodline/backend/internal/domain"
)

type CartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) GetByProfile(ctx context.Context, profileID uuid.UUID) (*domain.Cart, error) {
	return getOrCreateCart(r.db.WithContext(ctx), profileID)
}

// getOrCreateCart covers carts provisioned before this code path existed.
// Registration already creates the cart, so the create branch is rare.
func getOrCreateCart(db *gorm.DB, profileID uuid.UUID) (*domain.Cart, error) {
	var cart domain.Cart
	err := db.Preload("Items.Product").First(&cart, "profile_id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = domain.Cart{ID: uuid.New(), ProfileID: profileID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepo) AddItem(ctx context.Context, profileID, productID uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, profileID)
		if err != nil {
			return err
		}

		var item domain.CartItem
		err = tx.First(&item, "cart_id = ? AND product_id = ?", cart.ID, productID).Error
		switch {
		case err == nil:
			item.Quantity += qty
			return tx.Save(&item).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = domain.CartItem{
				ID:        uuid.New(),
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  qty,
			}
			return tx.Create(&item).Error
		default:
			return err
		}
	})
}

// RemoveItem deletes the matching line. A missing line is not an error.
func (r *CartRepo) RemoveItem(ctx context.Context, profileID, productID uuid.UUID) error {
	cart, err := getOrCreateCart(r.db.WithContext(ctx), profileID)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Delete(&domain.CartItem{}).Error
}
