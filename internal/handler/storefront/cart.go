// Package storefront contains the customer-facing JSON API handlers.
package storefront

import (
	"net/http"

	"github.com/rmoralesp/bodega/internal/cookie"
	"github.com/rmoralesp/bodega/internal/domain"
	"github.com/rmoralesp/bodega/internal/handler"
	"github.com/rmoralesp/bodega/internal/service"
	"github.com/rmoralesp/bodega/internal/telemetry"
	"github.com/rmoralesp/bodega/internal/validate"
)

// CartHandler handles all cart routes. Every route operates on "the
// caller's cart": identity from the auth gateway wins, the session cookie
// covers guests, and a brand-new guest gets a cart plus a cookie on the way
// out.
type CartHandler struct {
	carts   domain.CartService
	cookies *cookie.Config
	metrics *telemetry.BusinessMetrics
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts domain.CartService, cookies *cookie.Config, metrics *telemetry.BusinessMetrics) *CartHandler {
	return &CartHandler{
		carts:   carts,
		cookies: cookies,
		metrics: metrics,
	}
}

// resolveCart finds or creates the caller's cart and refreshes the session
// cookie when a new anonymous cart was minted.
func (h *CartHandler) resolveCart(w http.ResponseWriter, r *http.Request) (*domain.Cart, error) {
	ctx := r.Context()

	customerID := domain.CustomerIDFromContext(ctx)
	sessionToken := cookie.Get(r, cookie.CartCookieName)

	cart, newToken, err := h.carts.ResolveCart(ctx, customerID, sessionToken)
	if err != nil {
		return nil, err
	}
	if newToken != "" {
		h.cookies.SetCart(w, newToken, int(service.DefaultAnonymousRetention.Seconds()))
		if h.metrics != nil {
			h.metrics.CartsCreated.WithLabelValues("anonymous").Inc()
		}
	}
	return cart, nil
}

// View handles GET /cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	cart, err := h.resolveCart(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	summary, err := h.carts.GetCartSummary(r.Context(), cart.ID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, newCartResponse(summary))
}

type addItemRequest struct {
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int32  `json:"quantity" validate:"required,gt=0"`
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cart, err := h.resolveCart(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	summary, err := h.carts.AddItem(r.Context(), cart.ID, req.VariantID, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.CartItemsAdded.Add(float64(req.Quantity))
	}
	handler.JSON(w, http.StatusOK, newCartResponse(summary))
}

type updateItemRequest struct {
	Quantity int32 `json:"quantity" validate:"gte=0"`
}

// UpdateItem handles PATCH /cart/items/{lineId}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	lineID := r.PathValue("lineId")

	var req updateItemRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cart, err := h.resolveCart(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	summary, err := h.carts.UpdateItemQuantity(r.Context(), cart.ID, lineID, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, newCartResponse(summary))
}

// RemoveItem handles DELETE /cart/items/{lineId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	lineID := r.PathValue("lineId")

	cart, err := h.resolveCart(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	summary, err := h.carts.RemoveItem(r.Context(), cart.ID, lineID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, newCartResponse(summary))
}

// Claim handles POST /cart/claim. Called right after login, it folds the
// guest cart identified by the session cookie into the customer's cart and
// retires the cookie. When the merge itself fails the customer still gets
// their cart; the cookie stays so a later claim can retry the fold.
func (h *CartHandler) Claim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customerID := domain.CustomerIDFromContext(ctx)
	sessionToken := cookie.Get(r, cookie.CartCookieName)

	cart, retired, err := h.carts.MergeOnLogin(ctx, sessionToken, customerID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if sessionToken != "" && retired {
		h.cookies.ClearCart(w)
		if h.metrics != nil {
			h.metrics.CartsMerged.Inc()
		}
	}

	summary, err := h.carts.GetCartSummary(ctx, cart.ID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, newCartResponse(summary))
}
