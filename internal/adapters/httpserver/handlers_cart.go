package httpserver

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/woodline/backend/internal/domain"
)

type cartLineResponse struct {
	ProductID string `json:"product_id"`
	Product   string `json:"product"`
	Slug      string `json:"slug"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LinePrice string `json:"line_price"`
}

type cartResponse struct {
	Items      []cartLineResponse `json:"items"`
	TotalPrice string             `json:"total_price"`
	TotalItems int                `json:"total_items"`
}

func toCartResponse(c *domain.Cart) cartResponse {
	items := make([]cartLineResponse, 0, len(c.Items))
	for i := range c.Items {
		ci := &c.Items[i]
		items = append(items, cartLineResponse{
			ProductID: ci.ProductID.String(),
			Product:   ci.Product.Name,
			Slug:      ci.Product.Slug,
			UnitPrice: ci.Product.Price.StringFixed(2),
			Quantity:  ci.Quantity,
			LinePrice: ci.LinePrice().StringFixed(2),
		})
	}
	return cartResponse{
		Items:      items,
		TotalPrice: c.TotalPrice().StringFixed(2),
		TotalItems: c.TotalItems(),
	}
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing profile"})
		return
	}
	cart, err := s.carts.GetCart(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(cart))
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing profile"})
		return
	}
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product_id"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if err := s.carts.AddLine(r.Context(), id, productID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "added"})
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing profile"})
		return
	}
	var req struct {
		ProductID string `json:"product_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product_id"})
		return
	}
	if err := s.carts.RemoveLine(r.Context(), id, productID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "removed"})
}
