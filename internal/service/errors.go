package service

import (
	"fmt"

	"github.com/rmoralesp/bodega/internal/domain"
)

// Error constructors used across services. Each wraps the matching domain
// sentinel so callers can test with errors.Is while the message carries the
// concrete constraint that was violated.

func insufficientStockError(op string, available int32) error {
	return &domain.Error{
		Code:    domain.ECONFLICT,
		Op:      op,
		Message: fmt.Sprintf("Only %d left in stock", available),
		Err:     domain.ErrInsufficientStock,
	}
}

func cartLimitError(op string, limit int32) error {
	return &domain.Error{
		Code:    domain.ECONFLICT,
		Op:      op,
		Message: fmt.Sprintf("Cart cannot hold more than %d units", limit),
		Err:     domain.ErrCartLimitExceeded,
	}
}

func invalidTransitionError(op string, from, to domain.OrderStatus) error {
	return &domain.Error{
		Code:    domain.ECONFLICT,
		Op:      op,
		Message: fmt.Sprintf("Cannot change order status from %s to %s", from, to),
		Err:     domain.ErrInvalidStateTransition,
	}
}
