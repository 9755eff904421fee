package app

import (
	"net/http"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/woodline/backend/internal/adapters/httpserver"
	"github.com/woodline/backend/internal/adapters/notify"
	"github.com/woodline/backend/internal/adapters/repo/postgres"
	"github.com/woodline/backend/internal/domain"
	"github.com/woodline/backend/internal/usecase"
)

type App struct {
	DB         *gorm.DB
	Catalog    *usecase.CatalogUC
	Accounts   *usecase.AccountUC
	Carts      *usecase.CartUC
	Checkout   *usecase.CheckoutUC
	Orders     *usecase.OrderUC
	Dispatcher *notify.Queue
}

func New(db *gorm.DB) (*App, error) {
	categoryRepo := postgres.NewCategoryRepo(db)
	productRepo := postgres.NewProductRepo(db)
	userRepo := postgres.NewUserRepo(db)
	cartRepo := postgres.NewCartRepo(db)
	orderRepo := postgres.NewOrderRepo(db)

	mailer := notify.NewMailer(
		envOr("SMTP_HOST", "localhost"),
		envIntOr("SMTP_PORT", 587),
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASSWORD"),
		envOr("SMTP_FROM", "shop@woodline.local"),
	)
	dispatcher := notify.NewQueue(orderRepo, userRepo, mailer, envIntOr("NOTIFY_BUFFER", 64))

	return &App{
		DB:         db,
		Catalog:    &usecase.CatalogUC{Categories: categoryRepo, Products: productRepo},
		Accounts:   &usecase.AccountUC{Users: userRepo},
		Carts:      &usecase.CartUC{Carts: cartRepo, Products: productRepo},
		Checkout:   &usecase.CheckoutUC{Orders: orderRepo, Users: userRepo, Dispatch: dispatcher},
		Orders:     &usecase.OrderUC{Orders: orderRepo},
		Dispatcher: dispatcher,
	}, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Catalog, a.Accounts, a.Carts, a.Checkout, a.Orders)
}

func (a *App) Close() {
	a.Dispatcher.Close()
}

func (a *App) Migrate() error {
	return a.DB.AutoMigrate(
		&domain.Category{},
		&domain.Product{},
		&domain.User{},
		&domain.Profile{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
	)
}

// Seed loads a handful of demo categories and products into an empty
// catalog.
func (a *App) Seed() error {
	var count int64
	if err := a.DB.Model(&domain.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	living := domain.Category{ID: uuid.New(), Name: "Living Room", Slug: "living-room", IsActive: true}
	bedroom := domain.Category{ID: uuid.New(), Name: "Bedroom", Slug: "bedroom", IsActive: true}
	office := domain.Category{ID: uuid.New(), Name: "Office", Slug: "office", IsActive: true}
	for _, c := range []domain.Category{living, bedroom, office} {
		if err := a.DB.Create(&c).Error; err != nil {
			return err
		}
	}

	products := []domain.Product{
		{ID: uuid.New(), Name: "Oak Coffee Table", Slug: "oak-coffee-table", CategoryID: living.ID, Price: decimal.NewFromFloat(249.00), Stock: 12, IsAvailable: true, Featured: true, Color: "brown", Material: "wood"},
		{ID: uuid.New(), Name: "Linen Sofa", Slug: "linen-sofa", CategoryID: living.ID, Price: decimal.NewFromFloat(899.00), Stock: 4, IsAvailable: true, Color: "beige", Material: "textile"},
		{ID: uuid.New(), Name: "Walnut Bed Frame", Slug: "walnut-bed-frame", CategoryID: bedroom.ID, Price: decimal.NewFromFloat(649.50), Stock: 6, IsAvailable: true, Color: "brown", Material: "wood"},
		{ID: uuid.New(), Name: "Steel Desk", Slug: "steel-desk", CategoryID: office.ID, Price: decimal.NewFromFloat(329.99), Stock: 9, IsAvailable: true, Color: "black", Material: "metal"},
		{ID: uuid.New(), Name: "Leather Office Chair", Slug: "leather-office-chair", CategoryID: office.ID, Price: decimal.NewFromFloat(419.00), Stock: 15, IsAvailable: true, Featured: true, Color: "black", Material: "leather"},
	}
	for _, p := range products {
		if err := a.DB.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
