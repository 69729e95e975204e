package pos

import (
	"net/http"

	"github.com/rmoralesp/bodega/internal/domain"
	"github.com/rmoralesp/bodega/internal/handler"
	"github.com/rmoralesp/bodega/internal/validate"
)

// OrderStatusHandler moves storefront orders along the fulfillment workflow.
// This is a staff operation; customers only cancel through their own surface.
type OrderStatusHandler struct {
	orders domain.OrderService
}

// NewOrderStatusHandler creates a new order status handler.
func NewOrderStatusHandler(orders domain.OrderService) *OrderStatusHandler {
	return &OrderStatusHandler{orders: orders}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Update handles POST /pos/orders/{orderId}/status.
func (h *OrderStatusHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(StaffIDHeader) == "" {
		handler.ErrorResponse(w, r, &domain.Error{
			Code:    domain.EUNAUTHORIZED,
			Message: "Staff authentication required",
		})
		return
	}

	var req updateStatusRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	detail, err := h.orders.UpdateStatus(r.Context(), r.PathValue("orderId"), domain.OrderStatus(req.Status))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]any{
		"id":           detail.Order.ID,
		"order_number": detail.Order.OrderNumber,
		"status":       detail.Order.Status,
	})
}
