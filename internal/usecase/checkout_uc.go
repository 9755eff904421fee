package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/woodline/backend/internal/domain"
)

// DefaultStatusAdvanceDelay is how long an order stays pending before the
// background side moves it to processing.
const DefaultStatusAdvanceDelay = 5 * time.Minute

type CheckoutInput struct {
	ShippingAddress string
	Phone           string
	Notes           string
}

type CheckoutUC struct {
	Orders   domain.OrderRepo
	Users    domain.UserRepo
	Dispatch domain.Dispatcher

	// StatusAdvanceDelay overrides DefaultStatusAdvanceDelay when set.
	StatusAdvanceDelay time.Duration
}

// Checkout converts the profile's cart into an order. The persistence side
// is atomic; notification dispatch happens after commit and cannot fail the
// checkout.
func (uc *CheckoutUC) Checkout(ctx context.Context, profileID uuid.UUID, in CheckoutInput) (*domain.Order, error) {
	profile, err := uc.Users.ProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	address := in.ShippingAddress
	if address == "" {
		address = profile.Address
	}
	phone := in.Phone
	if phone == "" {
		phone = profile.Phone
	}

	order, err := uc.Orders.PlaceFromCart(ctx, domain.PlaceOrderParams{
		ProfileID:       profileID,
		Number:          NewOrderNumber(),
		ShippingAddress: address,
		Phone:           phone,
		Notes:           in.Notes,
	})
	if err != nil {
		return nil, err
	}

	if uc.Dispatch != nil {
		uc.Dispatch.OrderConfirmation(order.ID)
		uc.Dispatch.StatusAdvance(order.ID, uc.statusDelay())
	}
	return order, nil
}

func (uc *CheckoutUC) statusDelay() time.Duration {
	if uc.StatusAdvanceDelay > 0 {
		return uc.StatusAdvanceDelay
	}
	return DefaultStatusAdvanceDelay
}

// NewOrderNumber builds a printable unique order number: a UTC timestamp
// plus a random disambiguator. Callers only rely on uniqueness, not format.
func NewOrderNumber() string {
	return time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString()[:8]
}
