package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmoralesp/bodega/internal/domain"
	"github.com/rmoralesp/bodega/internal/notification"
)

func orderFixture(status domain.OrderStatus) *domain.OrderDetail {
	return &domain.OrderDetail{
		Order: domain.Order{
			ID:          "order-1",
			OrderNumber: "BDG-2026-000042",
			CustomerID:  "cust-1",
			Status:      status,
			TotalCents:  2700,
		},
		Items: []domain.OrderItem{
			{ID: "item-1", OrderID: "order-1", VariantID: "var-1", Quantity: 2},
		},
	}
}

func TestGetOrder_ScopedToOwner(t *testing.T) {
	store := &mockStore{
		GetOrderFunc: func(ctx context.Context, orderID string) (*domain.OrderDetail, error) {
			return orderFixture(domain.OrderStatusPending), nil
		},
	}
	svc := NewOrderService(store, &notification.MockDispatcher{}, testLogger())

	detail, err := svc.GetOrder(context.Background(), "cust-1", "order-1")
	require.NoError(t, err)
	assert.Equal(t, "BDG-2026-000042", detail.Order.OrderNumber)

	// Another customer's probe looks identical to a missing order.
	_, err = svc.GetOrder(context.Background(), "cust-2", "order-1")
	assert.True(t, errors.Is(err, domain.ErrOrderNotFound))
}

func TestGetOrderByNumber(t *testing.T) {
	store := &mockStore{
		GetOrderByNumberFunc: func(ctx context.Context, orderNumber string) (*domain.OrderDetail, error) {
			if orderNumber != "BDG-2026-000042" {
				return nil, domain.ErrNotFound
			}
			return orderFixture(domain.OrderStatusConfirmed), nil
		},
	}
	svc := NewOrderService(store, &notification.MockDispatcher{}, testLogger())

	detail, err := svc.GetOrderByNumber(context.Background(), "cust-1", "BDG-2026-000042")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, detail.Order.Status)

	_, err = svc.GetOrderByNumber(context.Background(), "cust-1", "BDG-2026-999999")
	assert.True(t, errors.Is(err, domain.ErrOrderNotFound))
}

func TestUpdateStatus_WalksTheWorkflow(t *testing.T) {
	tests := []struct {
		from    domain.OrderStatus
		to      domain.OrderStatus
		allowed bool
	}{
		{domain.OrderStatusPending, domain.OrderStatusConfirmed, true},
		{domain.OrderStatusConfirmed, domain.OrderStatusPreparing, true},
		{domain.OrderStatusPreparing, domain.OrderStatusReadyForPickup, true},
		{domain.OrderStatusPreparing, domain.OrderStatusOutForDelivery, true},
		{domain.OrderStatusReadyForPickup, domain.OrderStatusDelivered, true},
		{domain.OrderStatusOutForDelivery, domain.OrderStatusDelivered, true},
		{domain.OrderStatusPending, domain.OrderStatusPreparing, false},
		{domain.OrderStatusPending, domain.OrderStatusDelivered, false},
		{domain.OrderStatusConfirmed, domain.OrderStatusPending, false},
		{domain.OrderStatusDelivered, domain.OrderStatusPending, false},
		{domain.OrderStatusPending, domain.OrderStatusCancelled, true},
		{domain.OrderStatusOutForDelivery, domain.OrderStatusCancelled, true},
		{domain.OrderStatusDelivered, domain.OrderStatusCancelled, false},
		{domain.OrderStatusCancelled, domain.OrderStatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			store := &mockStore{
				GetOrderFunc: func(ctx context.Context, orderID string) (*domain.OrderDetail, error) {
					return orderFixture(tt.from), nil
				},
			}
			svc := NewOrderService(store, &notification.MockDispatcher{}, testLogger())

			detail, err := svc.UpdateStatus(context.Background(), "order-1", tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, detail.Order.Status)
			} else {
				require.True(t, errors.Is(err, domain.ErrInvalidStateTransition))
				assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
			}
		})
	}
}

func TestUpdateStatus_ConcurrentTransitionLoses(t *testing.T) {
	store := &mockStore{
		GetOrderFunc: func(ctx context.Context, orderID string) (*domain.OrderDetail, error) {
			return orderFixture(domain.OrderStatusPending), nil
		},
		UpdateOrderStatusFunc: func(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
			// Someone else moved the order between read and write.
			return domain.ErrNotFound
		},
	}
	svc := NewOrderService(store, &notification.MockDispatcher{}, testLogger())

	_, err := svc.UpdateStatus(context.Background(), "order-1", domain.OrderStatusConfirmed)
	assert.True(t, errors.Is(err, domain.ErrInvalidStateTransition))
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewOrderService(&mockStore{}, &notification.MockDispatcher{}, testLogger())

	_, err := svc.UpdateStatus(context.Background(), "order-1", "SHIPPED")
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestUpdateStatus_NotifiesCustomer(t *testing.T) {
	store := &mockStore{
		GetOrderFunc: func(ctx context.Context, orderID string) (*domain.OrderDetail, error) {
			return orderFixture(domain.OrderStatusPending), nil
		},
	}
	dispatcher := &notification.MockDispatcher{}
	svc := NewOrderService(store, dispatcher, testLogger())

	_, err := svc.UpdateStatus(context.Background(), "order-1", domain.OrderStatusConfirmed)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(dispatcher.Sends()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, notification.TemplateOrderStatusUpdate, dispatcher.Sends()[0].Template)
}

func TestCancelOrder(t *testing.T) {
	store := &mockStore{
		GetOrderFunc: func(ctx context.Context, orderID string) (*domain.OrderDetail, error) {
			return orderFixture(domain.OrderStatusPreparing), nil
		},
	}
	dispatcher := &notification.MockDispatcher{}
	svc := NewOrderService(store, dispatcher, testLogger())

	detail, err := svc.CancelOrder(context.Background(), "cust-1", "order-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, detail.Order.Status)

	require.Eventually(t, func() bool {
		return len(dispatcher.Sends()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, notification.TemplateOrderCancelled, dispatcher.Sends()[0].Template)
}

func TestCancelOrder_TerminalAndForeign(t *testing.T) {
	store := &mockStore{
		GetOrderFunc: func(ctx context.Context, orderID string) (*domain.OrderDetail, error) {
			return orderFixture(domain.OrderStatusDelivered), nil
		},
	}
	svc := NewOrderService(store, &notification.MockDispatcher{}, testLogger())

	_, err := svc.CancelOrder(context.Background(), "cust-1", "order-1")
	assert.True(t, errors.Is(err, domain.ErrInvalidStateTransition))

	_, err = svc.CancelOrder(context.Background(), "cust-2", "order-1")
	assert.True(t, errors.Is(err, domain.ErrOrderNotFound))
}

func TestListOrders(t *testing.T) {
	store := &mockStore{
		ListOrdersByCustomerFunc: func(ctx context.Context, customerID string) ([]domain.Order, error) {
			return []domain.Order{
				{ID: "order-2", OrderNumber: "BDG-2026-000002"},
				{ID: "order-1", OrderNumber: "BDG-2026-000001"},
			}, nil
		},
	}
	svc := NewOrderService(store, &notification.MockDispatcher{}, testLogger())

	orders, err := svc.ListOrders(context.Background(), "cust-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "order-2", orders[0].ID, "newest first")
}
