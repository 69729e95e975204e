package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rmoralesp/bodega/internal/domain"
	"github.com/rmoralesp/bodega/internal/notification"
)

type orderService struct {
	store      Store
	dispatcher notification.Dispatcher
	logger     *slog.Logger
}

// NewOrderService creates the order read and lifecycle service.
func NewOrderService(store Store, dispatcher notification.Dispatcher, logger *slog.Logger) domain.OrderService {
	return &orderService{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// GetOrder retrieves an order by ID. Orders belonging to another customer
// are reported as missing rather than forbidden, so order IDs cannot be
// probed for existence.
func (s *orderService) GetOrder(ctx context.Context, customerID, orderID string) (*domain.OrderDetail, error) {
	const op = "OrderService.GetOrder"

	detail, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapError(op, domain.ErrOrderNotFound)
		}
		return nil, domain.WrapError(op, err)
	}
	if detail.Order.CustomerID != customerID {
		return nil, domain.WrapError(op, domain.ErrOrderNotFound)
	}
	return detail, nil
}

func (s *orderService) GetOrderByNumber(ctx context.Context, customerID, orderNumber string) (*domain.OrderDetail, error) {
	const op = "OrderService.GetOrderByNumber"

	detail, err := s.store.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapError(op, domain.ErrOrderNotFound)
		}
		return nil, domain.WrapError(op, err)
	}
	if detail.Order.CustomerID != customerID {
		return nil, domain.WrapError(op, domain.ErrOrderNotFound)
	}
	return detail, nil
}

func (s *orderService) ListOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	const op = "OrderService.ListOrders"

	orders, err := s.store.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, domain.WrapError(op, err)
	}
	return orders, nil
}

// UpdateStatus moves an order one step along the workflow. The store update
// is conditional on the current status, so two concurrent transitions cannot
// both win. Customers are notified of the new status after commit.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.OrderDetail, error) {
	const op = "OrderService.UpdateStatus"

	if !next.Valid() {
		return nil, domain.Errorf(op, domain.EINVALID, "Unknown order status %q", next)
	}

	detail, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapError(op, domain.ErrOrderNotFound)
		}
		return nil, domain.WrapError(op, err)
	}

	from := detail.Order.Status
	if !from.CanTransitionTo(next) {
		return nil, invalidTransitionError(op, from, next)
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, from, next); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Lost a race with another transition.
			return nil, invalidTransitionError(op, from, next)
		}
		return nil, domain.WrapError(op, err)
	}
	detail.Order.Status = next

	template := notification.TemplateOrderStatusUpdate
	if next == domain.OrderStatusCancelled {
		template = notification.TemplateOrderCancelled
	}
	notifyAsync(ctx, s.dispatcher, s.logger, detail.Order.CustomerID, template, map[string]any{
		"order_id":     detail.Order.ID,
		"order_number": detail.Order.OrderNumber,
		"status":       string(next),
	})

	return detail, nil
}

// CancelOrder cancels a customer's own order, if it has not reached a
// terminal state.
func (s *orderService) CancelOrder(ctx context.Context, customerID, orderID string) (*domain.OrderDetail, error) {
	const op = "OrderService.CancelOrder"

	detail, err := s.GetOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, domain.WrapError(op, err)
	}
	if detail.Order.Status.Terminal() {
		return nil, invalidTransitionError(op, detail.Order.Status, domain.OrderStatusCancelled)
	}

	return s.UpdateStatus(ctx, orderID, domain.OrderStatusCancelled)
}
