package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodline/backend/internal/domain"
)

func placeOrder(t *testing.T, env *testEnv, username string) *domain.Order {
	t.Helper()
	ctx := context.Background()
	profile := env.createProfile(t, username)
	product := env.createProduct(t, "Chair "+username, 25.00, 10)
	carts := &CartUC{Carts: env.Carts, Products: env.Products}
	require.NoError(t, carts.AddLine(ctx, profile.ID, product.ID, 2))
	uc := &CheckoutUC{Orders: env.Orders, Users: env.Users}
	order, err := uc.Checkout(ctx, profile.ID, CheckoutInput{})
	require.NoError(t, err)
	return order
}

func TestAdvanceStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uc := &OrderUC{Orders: env.Orders}

	order := placeOrder(t, env, "alice")
	require.NoError(t, uc.AdvanceStatus(ctx, order.ID))

	got, err := env.Orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, got.Status)

	// advancing twice is a no-op: processing orders stay processing
	require.NoError(t, uc.AdvanceStatus(ctx, order.ID))
	got, err = env.Orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, got.Status)
}

func TestAdvanceStatusLeavesOtherStatesAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uc := &OrderUC{Orders: env.Orders}

	order := placeOrder(t, env, "bob")
	require.NoError(t, env.db.Model(&domain.Order{}).Where("id = ?", order.ID).
		Update("status", domain.OrderStatusShipped).Error)

	require.NoError(t, uc.AdvanceStatus(ctx, order.ID))
	got, err := env.Orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, got.Status)
}

func TestAdvanceAllPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uc := &OrderUC{Orders: env.Orders}

	first := placeOrder(t, env, "carol")
	second := placeOrder(t, env, "dave")
	shipped := placeOrder(t, env, "erin")
	require.NoError(t, env.db.Model(&domain.Order{}).Where("id = ?", shipped.ID).
		Update("status", domain.OrderStatusShipped).Error)

	n, err := uc.AdvanceAllPending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	for _, id := range []struct {
		order *domain.Order
		want  domain.OrderStatus
	}{
		{first, domain.OrderStatusProcessing},
		{second, domain.OrderStatusProcessing},
		{shipped, domain.OrderStatusShipped},
	} {
		got, err := env.Orders.FindByID(ctx, id.order.ID)
		require.NoError(t, err)
		assert.Equal(t, id.want, got.Status)
	}
}

func TestListAndGetByNumber(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uc := &OrderUC{Orders: env.Orders}

	order := placeOrder(t, env, "frank")
	other := placeOrder(t, env, "grace")

	list, err := uc.ListByProfile(ctx, order.ProfileID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, order.Number, list[0].Number)

	got, err := uc.GetByNumber(ctx, order.ProfileID, order.Number)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// orders are profile-scoped
	_, err = uc.GetByNumber(ctx, order.ProfileID, other.Number)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
