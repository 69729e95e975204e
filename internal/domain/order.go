package domain

import (
	"context"
	"fmt"
	"time"
)

// Order domain errors.
var (
	ErrOrderNotFound          = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrEmptyCart              = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrAddressNotFound        = &Error{Code: ENOTFOUND, Message: "Address not found"}
	ErrInvalidStateTransition = &Error{Code: ECONFLICT, Message: "Invalid order status transition"}
)

// OrderStatus is the workflow state of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// orderTransitions encodes the forward edges of the order workflow.
// CANCELLED is handled separately: it is reachable from any non-terminal state.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed},
	OrderStatusConfirmed:      {OrderStatusPreparing},
	OrderStatusPreparing:      {OrderStatusReadyForPickup, OrderStatusOutForDelivery},
	OrderStatusReadyForPickup: {OrderStatusDelivered},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal workflow step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == OrderStatusCancelled {
		return !s.Terminal()
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReadyForPickup, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// FormatOrderNumber builds the human-readable order number from a store
// prefix, the allocation year, and a year-scoped sequence, e.g. BDG-2026-000042.
// The sequence is zero-padded to six digits and grows past that if needed.
func FormatOrderNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, year, seq)
}

// DeliveryType selects how an order reaches the customer.
type DeliveryType string

const (
	DeliveryTypeHomeDelivery DeliveryType = "home_delivery"
	DeliveryTypeStorePickup  DeliveryType = "store_pickup"
)

// Valid reports whether d is a known delivery type.
func (d DeliveryType) Valid() bool {
	return d == DeliveryTypeHomeDelivery || d == DeliveryTypeStorePickup
}

// Order is an immutable record compiled from a cart at checkout.
// Line items and the shipping address are snapshots: later catalog or
// address edits never alter a past order.
type Order struct {
	ID               string
	OrderNumber      string
	CustomerID       string
	DeliveryType     DeliveryType
	PaymentMethod    string
	Status           OrderStatus
	SubtotalCents    int32
	DeliveryFeeCents int32
	DiscountCents    int32
	TotalCents       int32
	ShippingAddress  AddressSnapshot
	Notes            string
	CreatedAt        time.Time
}

// OrderItem is a snapshotted line within an order.
type OrderItem struct {
	ID             string
	OrderID        string
	VariantID      string
	DisplayName    string
	VariantLabel   string
	Quantity       int32
	UnitPriceCents int32
	LineTotalCents int32
}

// OrderDetail aggregates an order with its items.
type OrderDetail struct {
	Order Order
	Items []OrderItem
}

// Address is a customer-owned delivery address.
type Address struct {
	ID         string
	CustomerID string
	FullName   string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Phone      string
}

// AddressSnapshot is the literal copy of an address stored on an order.
// It survives deletion of the source address.
type AddressSnapshot struct {
	FullName   string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Phone      string
}

// Snapshot copies an address into an order-embedded snapshot.
func (a Address) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		FullName:   a.FullName,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Phone:      a.Phone,
	}
}

// CreateOrderParams contains checkout input for compiling a cart into an order.
type CreateOrderParams struct {
	CustomerID    string
	DeliveryType  DeliveryType
	PaymentMethod string
	AddressID     string
	Notes         string
}

// CheckoutService converts a customer's cart into an immutable order.
type CheckoutService interface {
	// CreateOrder snapshots the customer's cart into an order, computes
	// totals server-side, allocates the next year-scoped order number, and
	// clears the cart - all atomically. A confirmation notification is
	// dispatched after commit without blocking the result.
	CreateOrder(ctx context.Context, params CreateOrderParams) (*OrderDetail, error)
}

// OrderService provides read and lifecycle operations on existing orders.
type OrderService interface {
	// GetOrder retrieves an order by ID, scoped to its owning customer.
	GetOrder(ctx context.Context, customerID, orderID string) (*OrderDetail, error)

	// GetOrderByNumber retrieves an order by its human-readable number.
	GetOrderByNumber(ctx context.Context, customerID, orderNumber string) (*OrderDetail, error)

	// ListOrders lists a customer's orders, newest first.
	ListOrders(ctx context.Context, customerID string) ([]Order, error)

	// UpdateStatus moves an order along the status workflow.
	UpdateStatus(ctx context.Context, orderID string, next OrderStatus) (*OrderDetail, error)

	// CancelOrder transitions an order to CANCELLED if it is not terminal.
	CancelOrder(ctx context.Context, customerID, orderID string) (*OrderDetail, error)
}
