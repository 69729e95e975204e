package storefront

import (
	"net/http"

	"github.com/rmoralesp/bodega/internal/domain"
	"github.com/rmoralesp/bodega/internal/handler"
	"github.com/rmoralesp/bodega/internal/telemetry"
	"github.com/rmoralesp/bodega/internal/validate"
)

// CheckoutHandler compiles the caller's cart into an order.
type CheckoutHandler struct {
	checkout domain.CheckoutService
	metrics  *telemetry.BusinessMetrics
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkout domain.CheckoutService, metrics *telemetry.BusinessMetrics) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		metrics:  metrics,
	}
}

type checkoutRequest struct {
	DeliveryType  string `json:"delivery_type" validate:"required,oneof=home_delivery store_pickup"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	AddressID     string `json:"address_id"`
	Notes         string `json:"notes"`
}

// Create handles POST /checkout. Requires an authenticated customer.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkoutRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	detail, err := h.checkout.CreateOrder(ctx, domain.CreateOrderParams{
		CustomerID:    domain.CustomerIDFromContext(ctx),
		DeliveryType:  domain.DeliveryType(req.DeliveryType),
		PaymentMethod: req.PaymentMethod,
		AddressID:     req.AddressID,
		Notes:         req.Notes,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if h.metrics != nil {
		deliveryType := string(detail.Order.DeliveryType)
		h.metrics.OrdersCreated.WithLabelValues(deliveryType).Inc()
		h.metrics.OrderValue.WithLabelValues(deliveryType).Observe(float64(detail.Order.TotalCents))
		h.metrics.OrderItemCount.Observe(float64(len(detail.Items)))
	}

	handler.JSON(w, http.StatusCreated, newOrderResponse(detail.Order, detail.Items))
}
