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

var testSettings = StoreSettings{
	OrderNumberPrefix:    "BDG",
	HomeDeliveryFeeCents: 500,
	PickupAddress: domain.AddressSnapshot{
		FullName: "Bodega Central",
		Line1:    "Av. Siempre Viva 742",
		City:     "Springfield",
	},
}

func checkoutFixture() *mockStore {
	return &mockStore{
		GetCartByCustomerFunc: func(ctx context.Context, customerID string) (*domain.Cart, error) {
			return &domain.Cart{ID: "cart-1", CustomerID: customerID}, nil
		},
		GetCartItemsFunc: func(ctx context.Context, cartID string) ([]domain.CartItem, error) {
			return []domain.CartItem{
				{ID: "line-1", VariantID: "var-1", DisplayName: "Olive Oil", VariantLabel: "500ml",
					Quantity: 2, UnitPriceCents: 950, LineTotalCents: 1900},
				{ID: "line-2", VariantID: "var-2", DisplayName: "Sea Salt", VariantLabel: "1kg",
					Quantity: 1, UnitPriceCents: 300, LineTotalCents: 300},
			}, nil
		},
		GetAddressFunc: func(ctx context.Context, addressID, customerID string) (*domain.Address, error) {
			return &domain.Address{
				ID: addressID, CustomerID: customerID,
				FullName: "Ana Perez", Line1: "Calle 1", City: "Lima", State: "LI",
				PostalCode: "15001", Phone: "999888777",
			}, nil
		},
		CreateOrderFromCartFunc: func(ctx context.Context, params OrderRecordParams) (*domain.OrderDetail, error) {
			order := domain.Order{
				ID:               "order-1",
				OrderNumber:      domain.FormatOrderNumber(params.NumberPrefix, 2026, 1),
				CustomerID:       params.CustomerID,
				DeliveryType:     params.DeliveryType,
				PaymentMethod:    params.PaymentMethod,
				Status:           params.Status,
				SubtotalCents:    params.SubtotalCents,
				DeliveryFeeCents: params.DeliveryFeeCents,
				DiscountCents:    params.DiscountCents,
				TotalCents:       params.TotalCents,
				ShippingAddress:  params.ShippingAddress,
				Notes:            params.Notes,
				CreatedAt:        time.Now(),
			}
			items := make([]domain.OrderItem, len(params.Items))
			for i, it := range params.Items {
				items[i] = domain.OrderItem{
					ID: "item-" + it.VariantID, OrderID: order.ID, VariantID: it.VariantID,
					DisplayName: it.DisplayName, VariantLabel: it.VariantLabel,
					Quantity: it.Quantity, UnitPriceCents: it.UnitPriceCents, LineTotalCents: it.LineTotalCents,
				}
			}
			return &domain.OrderDetail{Order: order, Items: items}, nil
		},
	}
}

func TestCreateOrder_HomeDelivery(t *testing.T) {
	store := checkoutFixture()
	var recorded OrderRecordParams
	inner := store.CreateOrderFromCartFunc
	store.CreateOrderFromCartFunc = func(ctx context.Context, params OrderRecordParams) (*domain.OrderDetail, error) {
		recorded = params
		return inner(ctx, params)
	}
	dispatcher := &notification.MockDispatcher{}
	svc := NewCheckoutService(store, dispatcher, testSettings, testLogger())

	detail, err := svc.CreateOrder(context.Background(), domain.CreateOrderParams{
		CustomerID:    "cust-1",
		DeliveryType:  domain.DeliveryTypeHomeDelivery,
		PaymentMethod: "cash_on_delivery",
		AddressID:     "addr-1",
		Notes:         "ring twice",
	})
	require.NoError(t, err)

	assert.Equal(t, "BDG-2026-000001", detail.Order.OrderNumber)
	assert.Equal(t, domain.OrderStatusPending, detail.Order.Status)
	assert.Equal(t, int32(2200), recorded.SubtotalCents)
	assert.Equal(t, int32(500), recorded.DeliveryFeeCents)
	assert.Equal(t, int32(0), recorded.DiscountCents)
	assert.Equal(t, recorded.SubtotalCents+recorded.DeliveryFeeCents-recorded.DiscountCents, recorded.TotalCents)
	assert.Equal(t, "Ana Perez", recorded.ShippingAddress.FullName, "address is snapshotted onto the order")
	require.Len(t, recorded.Items, 2)
	assert.Equal(t, int32(950), recorded.Items[0].UnitPriceCents, "captured cart price, not a client amount")

	require.Eventually(t, func() bool {
		return len(dispatcher.Sends()) == 1
	}, time.Second, 10*time.Millisecond, "confirmation dispatch after checkout")
	sent := dispatcher.Sends()[0]
	assert.Equal(t, notification.TemplateOrderConfirmation, sent.Template)
	assert.Equal(t, "cust-1", sent.CustomerID)
}

func TestCreateOrder_StorePickupUsesStoreAddress(t *testing.T) {
	store := checkoutFixture()
	store.GetAddressFunc = func(ctx context.Context, addressID, customerID string) (*domain.Address, error) {
		t.Fatal("pickup orders must not resolve a customer address")
		return nil, nil
	}
	var recorded OrderRecordParams
	inner := store.CreateOrderFromCartFunc
	store.CreateOrderFromCartFunc = func(ctx context.Context, params OrderRecordParams) (*domain.OrderDetail, error) {
		recorded = params
		return inner(ctx, params)
	}
	svc := NewCheckoutService(store, &notification.MockDispatcher{}, testSettings, testLogger())

	_, err := svc.CreateOrder(context.Background(), domain.CreateOrderParams{
		CustomerID:    "cust-1",
		DeliveryType:  domain.DeliveryTypeStorePickup,
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, int32(0), recorded.DeliveryFeeCents)
	assert.Equal(t, "Bodega Central", recorded.ShippingAddress.FullName)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	store := checkoutFixture()
	store.GetCartItemsFunc = func(ctx context.Context, cartID string) ([]domain.CartItem, error) {
		return nil, nil
	}
	svc := NewCheckoutService(store, &notification.MockDispatcher{}, testSettings, testLogger())

	_, err := svc.CreateOrder(context.Background(), domain.CreateOrderParams{
		CustomerID:    "cust-1",
		DeliveryType:  domain.DeliveryTypeStorePickup,
		PaymentMethod: "card",
	})
	assert.True(t, errors.Is(err, domain.ErrEmptyCart))
}

func TestCreateOrder_NoCartMeansEmptyCart(t *testing.T) {
	store := checkoutFixture()
	store.GetCartByCustomerFunc = nil // default: not found
	svc := NewCheckoutService(store, &notification.MockDispatcher{}, testSettings, testLogger())

	_, err := svc.CreateOrder(context.Background(), domain.CreateOrderParams{
		CustomerID:    "cust-1",
		DeliveryType:  domain.DeliveryTypeStorePickup,
		PaymentMethod: "card",
	})
	assert.True(t, errors.Is(err, domain.ErrEmptyCart))
}

func TestCreateOrder_MissingAddress(t *testing.T) {
	store := checkoutFixture()
	store.GetAddressFunc = nil // default: not found
	svc := NewCheckoutService(store, &notification.MockDispatcher{}, testSettings, testLogger())

	_, err := svc.CreateOrder(context.Background(), domain.CreateOrderParams{
		CustomerID:    "cust-1",
		DeliveryType:  domain.DeliveryTypeHomeDelivery,
		PaymentMethod: "card",
		AddressID:     "addr-unknown",
	})
	assert.True(t, errors.Is(err, domain.ErrAddressNotFound))

	// A home delivery without any address at all fails the same way.
	_, err = svc.CreateOrder(context.Background(), domain.CreateOrderParams{
		CustomerID:    "cust-1",
		DeliveryType:  domain.DeliveryTypeHomeDelivery,
		PaymentMethod: "card",
	})
	assert.True(t, errors.Is(err, domain.ErrAddressNotFound))
}

func TestCreateOrder_ValidatesInput(t *testing.T) {
	svc := NewCheckoutService(checkoutFixture(), &notification.MockDispatcher{}, testSettings, testLogger())

	_, err := svc.CreateOrder(context.Background(), domain.CreateOrderParams{
		DeliveryType: domain.DeliveryTypeStorePickup, PaymentMethod: "card",
	})
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))

	_, err = svc.CreateOrder(context.Background(), domain.CreateOrderParams{
		CustomerID: "cust-1", DeliveryType: "drone", PaymentMethod: "card",
	})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = svc.CreateOrder(context.Background(), domain.CreateOrderParams{
		CustomerID: "cust-1", DeliveryType: domain.DeliveryTypeStorePickup,
	})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestCreateOrder_InsufficientStockSurfaces(t *testing.T) {
	store := checkoutFixture()
	store.CreateOrderFromCartFunc = func(ctx context.Context, params OrderRecordParams) (*domain.OrderDetail, error) {
		return nil, &domain.Error{
			Code:    domain.ECONFLICT,
			Message: "Not enough stock for Olive Oil",
			Err:     domain.ErrInsufficientStock,
		}
	}
	dispatcher := &notification.MockDispatcher{}
	svc := NewCheckoutService(store, dispatcher, testSettings, testLogger())

	_, err := svc.CreateOrder(context.Background(), domain.CreateOrderParams{
		CustomerID:    "cust-1",
		DeliveryType:  domain.DeliveryTypeStorePickup,
		PaymentMethod: "card",
	})
	require.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Empty(t, dispatcher.Sends(), "no notification for a failed checkout")
}

func TestCreateOrder_NotificationFailureDoesNotFailCheckout(t *testing.T) {
	dispatcher := &notification.MockDispatcher{
		SendFunc: func(ctx context.Context, customerID, template string, data map[string]any) error {
			return errors.New("broker unavailable")
		},
	}
	svc := NewCheckoutService(checkoutFixture(), dispatcher, testSettings, testLogger())

	_, err := svc.CreateOrder(context.Background(), domain.CreateOrderParams{
		CustomerID:    "cust-1",
		DeliveryType:  domain.DeliveryTypeStorePickup,
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(dispatcher.Sends()) == 1
	}, time.Second, 10*time.Millisecond)
}
