// Package domain provides core business types and context helpers for bodega.
//
// Context helpers centralize request-scoped data access so identity handling
// stays consistent across handlers, services, and middleware.
package domain

import (
	"context"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	// customerContextKey stores customer identity in context.
	customerContextKey contextKey = iota

	// requestIDContextKey stores the request ID for tracing.
	requestIDContextKey
)

// Customer represents the authenticated shopper attached to a request.
// This is a minimal struct for context storage.
type Customer struct {
	ID    string
	Email string
}

// NewContextWithCustomer returns a new context with the customer attached.
func NewContextWithCustomer(ctx context.Context, customer *Customer) context.Context {
	return context.WithValue(ctx, customerContextKey, customer)
}

// CustomerFromContext retrieves the customer from context.
// Returns nil if no customer is present.
func CustomerFromContext(ctx context.Context) *Customer {
	customer, _ := ctx.Value(customerContextKey).(*Customer)
	return customer
}

// CustomerIDFromContext retrieves the customer ID from context.
// Returns empty string if no customer is present.
func CustomerIDFromContext(ctx context.Context) string {
	if customer := CustomerFromContext(ctx); customer != nil {
		return customer.ID
	}
	return ""
}

// IsAuthenticated returns true if there is a customer in context.
func IsAuthenticated(ctx context.Context) bool {
	return CustomerFromContext(ctx) != nil
}

// NewContextWithRequestID returns a new context with the request ID attached.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if no request ID is present.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}
