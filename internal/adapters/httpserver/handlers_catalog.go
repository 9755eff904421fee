package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/woodline/backend/internal/domain"
)

type categoryResponse struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type productResponse struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	IsAvailable bool   `json:"is_available"`
	Featured    bool   `json:"featured"`
	Color       string `json:"color"`
	Material    string `json:"material"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		Name:        p.Name,
		Slug:        p.Slug,
		Category:    p.Category.Slug,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Stock:       p.Stock,
		IsAvailable: p.IsAvailable,
		Featured:    p.Featured,
		Color:       p.Color,
		Material:    p.Material,
	}
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	cats, err := s.catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryResponse{Name: c.Name, Slug: c.Slug, Description: c.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	f := domain.ProductFilter{
		CategorySlug:  q.Get("category"),
		Query:         q.Get("q"),
		Sort:          q.Get("sort"),
		OnlyAvailable: q.Get("available") == "true",
		OnlyFeatured:  q.Get("featured") == "true",
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		f.Page = page
	}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil && size > 0 {
		f.PageSize = size
	}

	products, total, err := s.catalog.ListProducts(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": total, "products": out})
}

func (s *Server) handleProductBySlug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	slug := strings.TrimPrefix(r.URL.Path, "/api/products/")
	product, err := s.catalog.GetProduct(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}
