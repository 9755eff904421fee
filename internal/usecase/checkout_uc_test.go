package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodline/backend/internal/domain"
)

func TestCheckoutHappyPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	profile := env.createProfile(t, "alice")
	product := env.createProduct(t, "Oak Table", 10.00, 5)

	carts := &CartUC{Carts: env.Carts, Products: env.Products}
	require.NoError(t, carts.AddLine(ctx, profile.ID, product.ID, 3))

	dispatch := &fakeDispatcher{}
	uc := &CheckoutUC{Orders: env.Orders, Users: env.Users, Dispatch: dispatch}

	order, err := uc.Checkout(ctx, profile.ID, CheckoutInput{Notes: "leave at the door"})
	require.NoError(t, err)

	assert.Equal(t, "30.00", order.TotalAmount.StringFixed(2))
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.Number)
	assert.Equal(t, "leave at the door", order.Notes)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, "10.00", order.Items[0].Price.StringFixed(2))

	assert.Equal(t, 2, env.stockOf(t, product.ID))
	assert.EqualValues(t, 0, env.cartLineCount(t, profile.ID))

	require.Len(t, dispatch.confirmations, 1)
	assert.Equal(t, order.ID, dispatch.confirmations[0])
	require.Len(t, dispatch.advances, 1)
	assert.Equal(t, DefaultStatusAdvanceDelay, dispatch.delays[0])
}

func TestCheckoutShippingFallback(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uc := &CheckoutUC{Orders: env.Orders, Users: env.Users}
	carts := &CartUC{Carts: env.Carts, Products: env.Products}

	t.Run("explicit input wins", func(t *testing.T) {
		profile := env.createProfile(t, "bob")
		product := env.createProduct(t, "Desk A", 5.00, 10)
		require.NoError(t, carts.AddLine(ctx, profile.ID, product.ID, 1))

		order, err := uc.Checkout(ctx, profile.ID, CheckoutInput{ShippingAddress: "99 Elm St", Phone: "555-9999"})
		require.NoError(t, err)
		assert.Equal(t, "99 Elm St", order.ShippingAddress)
		assert.Equal(t, "555-9999", order.Phone)
	})

	t.Run("falls back to profile", func(t *testing.T) {
		profile := env.createProfile(t, "carol")
		product := env.createProduct(t, "Desk B", 5.00, 10)
		require.NoError(t, carts.AddLine(ctx, profile.ID, product.ID, 1))

		order, err := uc.Checkout(ctx, profile.ID, CheckoutInput{})
		require.NoError(t, err)
		assert.Equal(t, "12 Main St", order.ShippingAddress)
		assert.Equal(t, "555-0100", order.Phone)
	})

	t.Run("empty when profile has none", func(t *testing.T) {
		profile := env.createProfile(t, "dave")
		profile.Address = ""
		profile.Phone = ""
		require.NoError(t, env.Users.SaveProfile(ctx, profile))
		product := env.createProduct(t, "Desk C", 5.00, 10)
		require.NoError(t, carts.AddLine(ctx, profile.ID, product.ID, 1))

		order, err := uc.Checkout(ctx, profile.ID, CheckoutInput{})
		require.NoError(t, err)
		assert.Equal(t, "", order.ShippingAddress)
		assert.Equal(t, "", order.Phone)
	})
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	profile := env.createProfile(t, "erin")
	cheap := env.createProduct(t, "Stool", 10.00, 10)
	scarce := env.createProduct(t, "Rare Chair", 10.00, 2)

	carts := &CartUC{Carts: env.Carts, Products: env.Products}
	require.NoError(t, carts.AddLine(ctx, profile.ID, cheap.ID, 2))
	require.NoError(t, carts.AddLine(ctx, profile.ID, scarce.ID, 3))

	uc := &CheckoutUC{Orders: env.Orders, Users: env.Users}
	_, err := uc.Checkout(ctx, profile.ID, CheckoutInput{})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Rare Chair", stockErr.ProductName)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	// full rollback: no orders, no order items, stock untouched, cart intact
	var orders, items int64
	require.NoError(t, env.db.Model(&domain.Order{}).Count(&orders).Error)
	require.NoError(t, env.db.Model(&domain.OrderItem{}).Count(&items).Error)
	assert.EqualValues(t, 0, orders)
	assert.EqualValues(t, 0, items)
	assert.Equal(t, 10, env.stockOf(t, cheap.ID))
	assert.Equal(t, 2, env.stockOf(t, scarce.ID))
	assert.EqualValues(t, 2, env.cartLineCount(t, profile.ID))
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	profile := env.createProfile(t, "frank")
	product := env.createProduct(t, "Bench", 10.00, 5)

	carts := &CartUC{Carts: env.Carts, Products: env.Products}
	dispatch := &fakeDispatcher{}
	uc := &CheckoutUC{Orders: env.Orders, Users: env.Users, Dispatch: dispatch}

	_, err := uc.Checkout(ctx, profile.ID, CheckoutInput{})
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, dispatch.confirmations)

	// a successful checkout clears the cart, so an immediate retry fails too
	require.NoError(t, carts.AddLine(ctx, profile.ID, product.ID, 1))
	_, err = uc.Checkout(ctx, profile.ID, CheckoutInput{})
	require.NoError(t, err)

	_, err = uc.Checkout(ctx, profile.ID, CheckoutInput{})
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, 4, env.stockOf(t, product.ID))
}

func TestCheckoutSnapshotsPriceAtOrderTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	profile := env.createProfile(t, "grace")
	product := env.createProduct(t, "Lamp", 20.00, 5)

	carts := &CartUC{Carts: env.Carts, Products: env.Products}
	require.NoError(t, carts.AddLine(ctx, profile.ID, product.ID, 1))

	uc := &CheckoutUC{Orders: env.Orders, Users: env.Users}
	order, err := uc.Checkout(ctx, profile.ID, CheckoutInput{})
	require.NoError(t, err)

	// price change after checkout must not affect the snapshot
	require.NoError(t, env.db.Model(&domain.Product{}).Where("id = ?", product.ID).
		Update("price", "99.99").Error)

	reloaded, err := env.Orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "20.00", reloaded.Items[0].Price.StringFixed(2))
	assert.Equal(t, "20.00", reloaded.TotalAmount.StringFixed(2))
}

func TestCheckoutMissingProfile(t *testing.T) {
	env := newTestEnv(t)
	uc := &CheckoutUC{Orders: env.Orders, Users: env.Users}

	_, err := uc.Checkout(context.Background(), uuid.New(), CheckoutInput{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConcurrentCheckoutsNeverOversell(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Last Units", 10.00, 5)
	carts := &CartUC{Carts: env.Carts, Products: env.Products}
	uc := &CheckoutUC{Orders: env.Orders, Users: env.Users}

	profiles := []*domain.Profile{
		env.createProfile(t, "racer1"),
		env.createProfile(t, "racer2"),
	}
	for _, p := range profiles {
		require.NoError(t, carts.AddLine(ctx, p.ID, product.ID, 3))
	}

	var wg sync.WaitGroup
	results := make([]error, len(profiles))
	for i, p := range profiles {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			_, results[i] = uc.Checkout(ctx, id, CheckoutInput{})
		}(i, p.ID)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		// the loser may observe depleted stock or transient contention,
		// but must never partially commit
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			assert.Equal(t, "Last Units", stockErr.ProductName)
		}
	}
	assert.LessOrEqual(t, successes, 1, "stock 5 cannot satisfy two checkouts of 3")

	final := env.stockOf(t, product.ID)
	assert.GreaterOrEqual(t, final, 0, "stock must never go negative")
	assert.Equal(t, 5-3*successes, final)
}

func TestOrderNumbersAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		n := NewOrderNumber()
		require.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}
