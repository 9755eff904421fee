package httpserver

import (
	"net/http"

	"github.com/woodline/backend/internal/usecase"
)

type Server struct {
	mux      *http.ServeMux
	catalog  *usecase.CatalogUC
	accounts *usecase.AccountUC
	carts    *usecase.CartUC
	checkout *usecase.CheckoutUC
	orders   *usecase.OrderUC
}

func New(catalog *usecase.CatalogUC, accounts *usecase.AccountUC, carts *usecase.CartUC, checkout *usecase.CheckoutUC, orders *usecase.OrderUC) http.Handler {
	s := &Server{
		mux:      http.NewServeMux(),
		catalog:  catalog,
		accounts: accounts,
		carts:    carts,
		checkout: checkout,
		orders:   orders,
	}
	s.routes()
	return Chain(s.mux,
		Recovery,
		RequestID,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/categories", s.handleCategories)
	s.mux.HandleFunc("/api/products", s.handleProducts)
	s.mux.HandleFunc("/api/products/", s.handleProductBySlug)

	s.mux.HandleFunc("/api/auth/register", s.handleRegister)
	s.mux.HandleFunc("/api/auth/login", s.handleLogin)
	s.mux.HandleFunc("/api/profile", s.handleProfile)

	s.mux.HandleFunc("/api/cart", s.handleCart)
	s.mux.HandleFunc("/api/cart/add", s.handleCartAdd)
	s.mux.HandleFunc("/api/cart/remove", s.handleCartRemove)

	s.mux.HandleFunc("/api/checkout", s.handleCheckout)

	s.mux.HandleFunc("/api/orders", s.handleOrders)
	s.mux.HandleFunc("/api/orders/advance", s.handleOrdersAdvance)
	s.mux.HandleFunc("/api/orders/export", s.handleOrdersExport)
	s.mux.HandleFunc("/api/orders/", s.handleOrderByNumber)
}
