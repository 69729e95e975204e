package storefront

import (
	"net/http"

	"github.com/rmoralesp/bodega/internal/domain"
	"github.com/rmoralesp/bodega/internal/handler"
	"github.com/rmoralesp/bodega/internal/telemetry"
)

// OrdersHandler serves a customer's order history.
type OrdersHandler struct {
	orders  domain.OrderService
	metrics *telemetry.BusinessMetrics
}

// NewOrdersHandler creates a new orders handler.
func NewOrdersHandler(orders domain.OrderService, metrics *telemetry.BusinessMetrics) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		metrics: metrics,
	}
}

// List handles GET /orders.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.orders.ListOrders(ctx, domain.CustomerIDFromContext(ctx))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, newOrderResponse(order, nil))
	}
	handler.JSON(w, http.StatusOK, map[string]any{"orders": resp})
}

// Get handles GET /orders/{orderId}.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	detail, err := h.orders.GetOrder(ctx, domain.CustomerIDFromContext(ctx), r.PathValue("orderId"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, newOrderResponse(detail.Order, detail.Items))
}

// GetByNumber handles GET /orders/number/{orderNumber}.
func (h *OrdersHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	detail, err := h.orders.GetOrderByNumber(ctx, domain.CustomerIDFromContext(ctx), r.PathValue("orderNumber"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, newOrderResponse(detail.Order, detail.Items))
}

// Cancel handles POST /orders/{orderId}/cancel.
func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	detail, err := h.orders.CancelOrder(ctx, domain.CustomerIDFromContext(ctx), r.PathValue("orderId"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.OrdersCancelled.Inc()
	}
	handler.JSON(w, http.StatusOK, newOrderResponse(detail.Order, detail.Items))
}
