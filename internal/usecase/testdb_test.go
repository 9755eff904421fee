package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/woodline/backend/internal/adapters/repo/postgres"
	"github.com/woodline/backend/internal/domain"
)

var testDBSeq atomic.Int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_busy_timeout=5000", name, testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Category{},
		&domain.Product{},
		&domain.User{},
		&domain.Profile{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
	))
	return db
}

type testEnv struct {
	db         *gorm.DB
	Users      *postgres.UserRepo
	Categories *postgres.CategoryRepo
	Products   *postgres.ProductRepo
	Carts      *postgres.CartRepo
	Orders     *postgres.OrderRepo
}

func newTestEnv(t *testing.T) *testEnv {
	db := openTestDB(t)
	return &testEnv{
		db:         db,
		Users:      postgres.NewUserRepo(db),
		Categories: postgres.NewCategoryRepo(db),
		Products:   postgres.NewProductRepo(db),
		Carts:      postgres.NewCartRepo(db),
		Orders:     postgres.NewOrderRepo(db),
	}
}

func (e *testEnv) createProfile(t *testing.T, username string) *domain.Profile {
	t.Helper()
	user := domain.User{ID: uuid.New(), Username: username, Email: username + "@example.com", PasswordHash: "x"}
	profile := domain.Profile{ID: uuid.New(), FirstName: "Test", LastName: "User", Phone: "555-0100", Address: "12 Main St"}
	require.NoError(t, e.Users.Register(context.Background(), &user, &profile))
	return &profile
}

func (e *testEnv) createProduct(t *testing.T, name string, price float64, stock int) *domain.Product {
	t.Helper()
	cat := domain.Category{ID: uuid.New(), Name: "Cat " + name, Slug: Slugify("cat " + name), IsActive: true}
	require.NoError(t, e.db.Create(&cat).Error)
	p := domain.Product{
		ID:          uuid.New(),
		Name:        name,
		Slug:        Slugify(name),
		CategoryID:  cat.ID,
		Price:       decimal.NewFromFloat(price),
		Stock:       stock,
		IsAvailable: true,
	}
	require.NoError(t, e.db.Create(&p).Error)
	return &p
}

func (e *testEnv) stockOf(t *testing.T, productID uuid.UUID) int {
	t.Helper()
	var p domain.Product
	require.NoError(t, e.db.First(&p, "id = ?", productID).Error)
	return p.Stock
}

func (e *testEnv) cartLineCount(t *testing.T, profileID uuid.UUID) int64 {
	t.Helper()
	var cart domain.Cart
	require.NoError(t, e.db.First(&cart, "profile_id = ?", profileID).Error)
	var n int64
	require.NoError(t, e.db.Model(&domain.CartItem{}).Where("cart_id = ?", cart.ID).Count(&n).Error)
	return n
}

// fakeDispatcher records fire-and-forget submissions.
type fakeDispatcher struct {
	confirmations []uuid.UUID
	advances      []uuid.UUID
	delays        []time.Duration
}

func (d *fakeDispatcher) OrderConfirmation(orderID uuid.UUID) {
	d.confirmations = append(d.confirmations, orderID)
}

func (d *fakeDispatcher) StatusAdvance(orderID uuid.UUID, after time.Duration) {
	d.advances = append(d.advances, orderID)
	d.delays = append(d.delays, after)
}
