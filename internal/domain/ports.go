package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CategoryRepo interface {
	Save(ctx context.Context, c *Category) error
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	ListActive(ctx context.Context) ([]Category, error)
	SlugTaken(ctx context.Context, slug string) (bool, error)
}

type ProductRepo interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	SlugTaken(ctx context.Context, slug string) (bool, error)
}

type UserRepo interface {
	// Register persists the user, its profile and an empty cart in a single
	// transaction, so no user ever exists without both.
	Register(ctx context.Context, u *User, p *Profile) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	ProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	ProfileByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	SaveProfile(ctx context.Context, p *Profile) error
}

type CartRepo interface {
	GetByProfile(ctx context.Context, profileID uuid.UUID) (*Cart, error)
	AddItem(ctx context.Context, profileID, productID uuid.UUID, qty int) error
	RemoveItem(ctx context.Context, profileID, productID uuid.UUID) error
}

type PlaceOrderParams struct {
	ProfileID       uuid.UUID
	Number          string
	ShippingAddress string
	Phone           string
	Notes           string
}

type OrderRepo interface {
	// PlaceFromCart runs the checkout transaction: order creation, price
	// snapshots, stock decrements and cart clearing commit together or not
	// at all.
	PlaceFromCart(ctx context.Context, params PlaceOrderParams) (*Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, profileID uuid.UUID, number string) (*Order, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]Order, error)
	AdvanceStatus(ctx context.Context, orderID uuid.UUID) error
	AdvanceAllPending(ctx context.Context) (int64, error)
}

// Dispatcher hands completed work to the background side of the system.
// Both calls are fire-and-forget: they never block and their failures are
// not observable to the caller.
type Dispatcher interface {
	OrderConfirmation(orderID uuid.UUID)
	StatusAdvance(orderID uuid.UUID, after time.Duration)
}
