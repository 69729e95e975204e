// Package pos contains the staff-facing point-of-sale API handlers.
package pos

import (
	"net/http"
	"time"

	"github.com/rmoralesp/bodega/internal/domain"
	"github.com/rmoralesp/bodega/internal/handler"
	"github.com/rmoralesp/bodega/internal/telemetry"
	"github.com/rmoralesp/bodega/internal/validate"
)

// StaffIDHeader carries the verified staff member forwarded by the gateway.
const StaffIDHeader = "X-Staff-Id"

// SaleHandler records and retrieves in-store sales.
type SaleHandler struct {
	sales   domain.POSService
	metrics *telemetry.BusinessMetrics
}

// NewSaleHandler creates a new POS sale handler.
func NewSaleHandler(sales domain.POSService, metrics *telemetry.BusinessMetrics) *SaleHandler {
	return &SaleHandler{
		sales:   sales,
		metrics: metrics,
	}
}

type saleLineRequest struct {
	VariantID      string `json:"variant_id" validate:"required"`
	Quantity       int32  `json:"quantity" validate:"required,gt=0"`
	UnitPriceCents int32  `json:"unit_price_cents" validate:"gte=0"`
}

type createSaleRequest struct {
	PaymentMethod string            `json:"payment_method" validate:"required"`
	DiscountCents int32             `json:"discount_cents" validate:"gte=0"`
	Lines         []saleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type saleItemResponse struct {
	ID             string `json:"id"`
	VariantID      string `json:"variant_id"`
	DisplayName    string `json:"display_name"`
	VariantLabel   string `json:"variant_label"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int32  `json:"unit_price_cents"`
	LineTotalCents int32  `json:"line_total_cents"`
}

type saleResponse struct {
	ID            string             `json:"id"`
	SaleNumber    string             `json:"sale_number"`
	CashierID     string             `json:"cashier_id"`
	PaymentMethod string             `json:"payment_method"`
	SubtotalCents int32              `json:"subtotal_cents"`
	DiscountCents int32              `json:"discount_cents"`
	TotalCents    int32              `json:"total_cents"`
	Items         []saleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
}

func newSaleResponse(detail *domain.SaleDetail) saleResponse {
	resp := saleResponse{
		ID:            detail.Sale.ID,
		SaleNumber:    detail.Sale.SaleNumber,
		CashierID:     detail.Sale.CashierID,
		PaymentMethod: detail.Sale.PaymentMethod,
		SubtotalCents: detail.Sale.SubtotalCents,
		DiscountCents: detail.Sale.DiscountCents,
		TotalCents:    detail.Sale.TotalCents,
		CreatedAt:     detail.Sale.CreatedAt,
	}
	for _, item := range detail.Items {
		resp.Items = append(resp.Items, saleItemResponse{
			ID:             item.ID,
			VariantID:      item.VariantID,
			DisplayName:    item.DisplayName,
			VariantLabel:   item.VariantLabel,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: item.LineTotalCents,
		})
	}
	return resp
}

// Create handles POST /pos/sales.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	cashierID := r.Header.Get(StaffIDHeader)
	if cashierID == "" {
		handler.ErrorResponse(w, r, &domain.Error{
			Code:    domain.EUNAUTHORIZED,
			Message: "Staff authentication required",
		})
		return
	}

	var req createSaleRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	lines := make([]domain.SaleLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, domain.SaleLineInput{
			VariantID:      line.VariantID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		})
	}

	detail, err := h.sales.CreateSale(r.Context(), domain.CreateSaleParams{
		CashierID:     cashierID,
		PaymentMethod: req.PaymentMethod,
		DiscountCents: req.DiscountCents,
		Lines:         lines,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.SalesRecorded.Inc()
		h.metrics.SaleValue.Observe(float64(detail.Sale.TotalCents))
	}
	handler.JSON(w, http.StatusCreated, newSaleResponse(detail))
}

// Get handles GET /pos/sales/{saleId}.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.sales.GetSale(r.Context(), r.PathValue("saleId"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, newSaleResponse(detail))
}
