package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/woodline/backend/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// lockForUpdate takes a row-level write lock on postgres. SQLite allows a
// single writer at a time, so the clause is redundant there and not valid
// syntax.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// PlaceFromCart converts the profile's cart into an order. Everything runs
// in one transaction: order and item rows, stock decrements and the cart
// wipe commit together, or the whole checkout rolls back.
func (r *OrderRepo) PlaceFromCart(ctx context.Context, params domain.PlaceOrderParams) (*domain.Order, error) {
	var placed *domain.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart domain.Cart
		if err := tx.Preload("Items").First(&cart, "profile_id = ?", params.ProfileID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return domain.ErrEmptyCart
		}

		order := domain.Order{
			ID:              uuid.New(),
			ProfileID:       params.ProfileID,
			Number:          params.Number,
			Status:          domain.OrderStatusPending,
			TotalAmount:     decimal.Zero,
			ShippingAddress: params.ShippingAddress,
			Phone:           params.Phone,
			Notes:           params.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicate
			}
			return err
		}

		total := decimal.Zero
		for _, ci := range cart.Items {
			var product domain.Product
			if err := lockForUpdate(tx).First(&product, "id = ?", ci.ProductID).Error; err != nil {
				return err
			}

			if product.Stock < ci.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   ci.Quantity,
					Available:   product.Stock,
				}
			}

			item := domain.OrderItem{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  ci.Quantity,
				Price:     product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			total = total.Add(item.LineTotal())

			if err := tx.Model(&domain.Product{}).Where("id = ?", product.ID).
				UpdateColumn("stock", gorm.Expr("stock - ?", ci.Quantity)).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&domain.Order{}).Where("id = ?", order.ID).
			Update("total_amount", total).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}

		var full domain.Order
		if err := tx.Preload("Items.Product").First(&full, "id = ?", order.ID).Error; err != nil {
			return err
		}
		placed = &full
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items.Product").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) FindByNumber(ctx context.Context, profileID uuid.UUID, number string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items.Product").
		First(&o, "profile_id = ? AND number = ?", profileID, number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Order, error) {
	var list []domain.Order
	if err := r.db.WithContext(ctx).Preload("Items.Product").
		Where("profile_id = ?", profileID).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// AdvanceStatus moves a pending order to processing. Orders in any other
// state are left alone.
func (r *OrderRepo) AdvanceStatus(ctx context.Context, orderID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND status = ?", orderID, domain.OrderStatusPending).
		Update("status", domain.OrderStatusProcessing)
	return res.Error
}

func (r *OrderRepo) AdvanceAllPending(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("status = ?", domain.OrderStatusPending).
		Update("status", domain.OrderStatusProcessing)
	return res.RowsAffected, res.Error
}
