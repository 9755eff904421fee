package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/woodline/backend/internal/domain"
	"github.com/woodline/backend/internal/usecase"
)

type orderLineResponse struct {
	ProductID string `json:"product_id"`
	Product   string `json:"product"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	LineTotal string `json:"line_total"`
}

type orderResponse struct {
	Number          string              `json:"number"`
	Status          string              `json:"status"`
	TotalAmount     string              `json:"total_amount"`
	ShippingAddress string              `json:"shipping_address"`
	Phone           string              `json:"phone"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []orderLineResponse `json:"items"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	items := make([]orderLineResponse, 0, len(o.Items))
	for i := range o.Items {
		oi := &o.Items[i]
		items = append(items, orderLineResponse{
			ProductID: oi.ProductID.String(),
			Product:   oi.Product.Name,
			Quantity:  oi.Quantity,
			Price:     oi.Price.StringFixed(2),
			LineTotal: oi.LineTotal().StringFixed(2),
		})
	}
	return orderResponse{
		Number:          o.Number,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount.StringFixed(2),
		ShippingAddress: o.ShippingAddress,
		Phone:           o.Phone,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		Items:           items,
	}
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
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
		ShippingAddress string `json:"shipping_address"`
		Phone           string `json:"phone"`
		Notes           string `json:"notes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	order, err := s.checkout.Checkout(r.Context(), id, usecase.CheckoutInput{
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing profile"})
		return
	}
	orders, err := s.orders.ListByProfile(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOrderByNumber(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing profile"})
		return
	}
	number := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	order, err := s.orders.GetByNumber(r.Context(), id, number)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// handleOrdersAdvance is the housekeeping hook an external scheduler calls
// to move all pending orders to processing.
func (s *Server) handleOrdersAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	n, err := s.orders.AdvanceAllPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"advanced": n})
}

func (s *Server) handleOrdersExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing profile"})
		return
	}
	orders, err := s.orders.ListByProfile(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	f := excelize.NewFile()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)
	headers := []string{"Number", "Status", "Total", "Shipping Address", "Phone", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, o := range orders {
		values := []any{
			o.Number,
			string(o.Status),
			o.TotalAmount.StringFixed(2),
			o.ShippingAddress,
			o.Phone,
			o.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=orders-%s.xlsx", time.Now().Format("20060102")))
	if err := f.Write(w); err != nil {
		writeError(w, err)
	}
}
