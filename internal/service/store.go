package service

import (
	"context"
	"time"

	"github.com/rmoralesp/bodega/internal/domain"
)

// Store is the persistence boundary for the cart and checkout core.
// The postgres package provides the production implementation; tests inject
// mocks. Methods that read a missing row return domain.ErrNotFound.
//
// Concurrency contract: UpsertCartItem must accumulate quantity atomically
// under the (cart_id, variant_id) uniqueness constraint, and MergeCarts and
// CreateOrderFromCart must each apply all of their effects in a single
// transaction.
type Store interface {
	// Carts
	GetCartByID(ctx context.Context, cartID string) (*domain.Cart, error)
	GetCartByCustomer(ctx context.Context, customerID string) (*domain.Cart, error)
	// GetCartBySessionToken treats an expired anonymous cart as missing.
	GetCartBySessionToken(ctx context.Context, token string) (*domain.Cart, error)
	CreateCustomerCart(ctx context.Context, customerID string) (*domain.Cart, error)
	CreateAnonymousCart(ctx context.Context, token string, expiresAt time.Time) (*domain.Cart, error)
	// DeleteExpiredAnonymousCarts purges anonymous carts past their expiry.
	DeleteExpiredAnonymousCarts(ctx context.Context, now time.Time) (int64, error)

	// Cart lines
	GetCartItems(ctx context.Context, cartID string) ([]domain.CartItem, error)
	GetCartItem(ctx context.Context, cartID, lineID string) (*domain.CartItem, error)
	// UpsertCartItem adds quantity to the variant's line, creating it if
	// absent, and re-captures the unit price in the same statement.
	UpsertCartItem(ctx context.Context, cartID, variantID string, quantity, unitPriceCents int32) error
	SetCartItemQuantity(ctx context.Context, cartID, lineID string, quantity int32) error
	DeleteCartItem(ctx context.Context, cartID, lineID string) error
	// MergeCarts folds every line of fromCartID into toCartID (quantities
	// accumulate per variant, captured prices move with new lines) and
	// deletes the source cart, atomically.
	MergeCarts(ctx context.Context, fromCartID, toCartID string) error

	// Addresses (ownership-scoped lookup only)
	GetAddress(ctx context.Context, addressID, customerID string) (*domain.Address, error)

	// Orders
	// CreateOrderFromCart allocates the next year-scoped order number,
	// persists the order with its item snapshots, decrements stock with a
	// conditional update, and clears the source cart - one transaction.
	// Returns domain.ErrInsufficientStock if any decrement would oversell.
	CreateOrderFromCart(ctx context.Context, params OrderRecordParams) (*domain.OrderDetail, error)
	GetOrder(ctx context.Context, orderID string) (*domain.OrderDetail, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.OrderDetail, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	// UpdateOrderStatus transitions orderID from one status to another,
	// conditionally on the current status still matching. Returns
	// domain.ErrNotFound when the order is missing or the status moved.
	UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error

	// POS sales
	// CreateSale persists a staff sale with item snapshots and decrements
	// stock conditionally, atomically.
	CreateSale(ctx context.Context, params SaleRecordParams) (*domain.SaleDetail, error)
	GetSale(ctx context.Context, saleID string) (*domain.SaleDetail, error)
}

// OrderRecordParams carries a fully computed order into the store.
// Totals arrive pre-computed by the checkout service; the store persists
// them verbatim and owns only number allocation, stock decrement, and
// cart clearing.
type OrderRecordParams struct {
	CustomerID       string
	CartID           string
	NumberPrefix     string
	DeliveryType     domain.DeliveryType
	PaymentMethod    string
	Status           domain.OrderStatus
	SubtotalCents    int32
	DeliveryFeeCents int32
	DiscountCents    int32
	TotalCents       int32
	ShippingAddress  domain.AddressSnapshot
	Notes            string
	Items            []OrderItemParams
}

// OrderItemParams is one snapshotted line for a new order or sale.
type OrderItemParams struct {
	VariantID      string
	DisplayName    string
	VariantLabel   string
	Quantity       int32
	UnitPriceCents int32
	LineTotalCents int32
}

// SaleRecordParams carries a computed POS sale into the store.
type SaleRecordParams struct {
	CashierID     string
	NumberPrefix  string
	PaymentMethod string
	SubtotalCents int32
	DiscountCents int32
	TotalCents    int32
	Items         []OrderItemParams
}
