// Package notification dispatches customer-facing messages through an
// external messaging collaborator. Dispatch is fire-and-forget from the
// core's perspective: a failed send never fails the operation that
// triggered it.
package notification

import (
	"context"
)

// Template names for customer notifications.
const (
	TemplateOrderConfirmation = "order_confirmation"
	TemplateOrderCancelled    = "order_cancelled"
	TemplateOrderStatusUpdate = "order_status_update"
)

// Dispatcher sends a templated notification to a customer.
type Dispatcher interface {
	// Send publishes a notification. The core never consumes a delivery
	// result; errors only inform logging at the call site.
	Send(ctx context.Context, customerID, template string, data map[string]any) error
}
