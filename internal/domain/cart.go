package domain

import (
	"context"
	"time"
)

// Cart domain errors.
var (
	ErrCartNotFound      = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrLineNotFound      = &Error{Code: ENOTFOUND, Message: "Cart line not found"}
	ErrInvalidQuantity   = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrCartLimitExceeded = &Error{Code: ECONFLICT, Message: "Cart unit limit exceeded"}
	ErrInsufficientStock = &Error{Code: ECONFLICT, Message: "Insufficient stock"}
	ErrVariantNotFound   = &Error{Code: ENOTFOUND, Message: "Variant not found"}
)

// CartService provides business logic for shopping cart operations.
type CartService interface {
	// ResolveCart finds or creates the single cart for the given identity.
	// A customer ID always wins over a session token. When a fresh anonymous
	// cart is created, the returned token is non-empty and must be propagated
	// back to the client by the caller.
	ResolveCart(ctx context.Context, customerID, sessionToken string) (*Cart, string, error)

	// GetCartSummary retrieves a cart with all lines and calculated totals.
	GetCartSummary(ctx context.Context, cartID string) (*CartSummary, error)

	// AddItem adds a variant to the cart. Repeated adds for the same variant
	// accumulate quantity on a single line; the unit price is re-captured
	// from the catalog on every add.
	AddItem(ctx context.Context, cartID, variantID string, quantity int32) (*CartSummary, error)

	// UpdateItemQuantity sets a line's quantity to an absolute value.
	// Quantity 0 removes the line.
	UpdateItemQuantity(ctx context.Context, cartID, lineID string, quantity int32) (*CartSummary, error)

	// RemoveItem deletes a line from the cart.
	RemoveItem(ctx context.Context, cartID, lineID string) (*CartSummary, error)

	// MergeOnLogin folds the anonymous cart for sessionToken into the
	// authenticated cart for customerID, then retires the anonymous cart.
	// Returns the authenticated cart. retired reports whether the session
	// token is spent and the client may drop it; a failed merge is logged,
	// leaves retired false, and never blocks the login flow.
	MergeOnLogin(ctx context.Context, sessionToken, customerID string) (cart *Cart, retired bool, err error)
}

// Cart represents a lightweight cart view model.
// Exactly one of CustomerID or SessionToken is set for a persisted cart.
type Cart struct {
	ID           string
	CustomerID   string
	SessionToken string
	ExpiresAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Anonymous reports whether the cart belongs to an unauthenticated session.
func (c *Cart) Anonymous() bool {
	return c.CustomerID == ""
}

// Expired reports whether an anonymous cart's retention window has passed.
// Authenticated carts never expire.
func (c *Cart) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// CartSummary aggregates cart information with lines and calculated totals.
type CartSummary struct {
	Cart          Cart
	Items         []CartItem
	SubtotalCents int32
	ItemCount     int32
}

// CartItem represents a cart line with resolved display details and totals.
type CartItem struct {
	ID             string
	CartID         string
	VariantID      string
	DisplayName    string
	VariantLabel   string
	Quantity       int32
	UnitPriceCents int32
	LineTotalCents int32
}
