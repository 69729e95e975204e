package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rmoralesp/bodega/internal/domain"
	"github.com/rmoralesp/bodega/internal/notification"
)

// notifyTimeout bounds the post-commit notification dispatch.
const notifyTimeout = 5 * time.Second

// StoreSettings holds per-deployment storefront configuration consumed at
// checkout time.
type StoreSettings struct {
	// OrderNumberPrefix heads every order number, e.g. "BDG" in BDG-2026-000042.
	OrderNumberPrefix string

	// HomeDeliveryFeeCents is the flat fee charged for home delivery.
	HomeDeliveryFeeCents int32

	// PickupAddress is the physical store location snapshotted onto
	// store-pickup orders.
	PickupAddress domain.AddressSnapshot
}

type checkoutService struct {
	store      Store
	dispatcher notification.Dispatcher
	settings   StoreSettings
	logger     *slog.Logger
}

// NewCheckoutService creates the checkout service.
func NewCheckoutService(store Store, dispatcher notification.Dispatcher, settings StoreSettings, logger *slog.Logger) domain.CheckoutService {
	return &checkoutService{
		store:      store,
		dispatcher: dispatcher,
		settings:   settings,
		logger:     logger,
	}
}

// CreateOrder compiles the customer's cart into an immutable order.
// Totals are computed here from the captured cart prices; client-supplied
// amounts are never trusted. Order insert, stock decrement, number
// allocation, and cart clearing commit in one transaction in the store.
func (s *checkoutService) CreateOrder(ctx context.Context, params domain.CreateOrderParams) (*domain.OrderDetail, error) {
	const op = "CheckoutService.CreateOrder"

	if params.CustomerID == "" {
		return nil, domain.Errorf(op, domain.EUNAUTHORIZED, "Authentication required")
	}
	if !params.DeliveryType.Valid() {
		return nil, domain.Errorf(op, domain.EINVALID, "Unknown delivery type %q", params.DeliveryType)
	}
	if params.PaymentMethod == "" {
		return nil, domain.Errorf(op, domain.EINVALID, "Payment method is required")
	}

	cart, err := s.store.GetCartByCustomer(ctx, params.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapError(op, domain.ErrEmptyCart)
		}
		return nil, domain.WrapError(op, err)
	}

	items, err := s.store.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, domain.WrapError(op, err)
	}
	if len(items) == 0 {
		return nil, domain.WrapError(op, domain.ErrEmptyCart)
	}

	var shipping domain.AddressSnapshot
	var deliveryFee int32
	switch params.DeliveryType {
	case domain.DeliveryTypeHomeDelivery:
		if params.AddressID == "" {
			return nil, domain.WrapError(op, domain.ErrAddressNotFound)
		}
		address, err := s.store.GetAddress(ctx, params.AddressID, params.CustomerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.WrapError(op, domain.ErrAddressNotFound)
			}
			return nil, domain.WrapError(op, err)
		}
		shipping = address.Snapshot()
		deliveryFee = s.settings.HomeDeliveryFeeCents
	case domain.DeliveryTypeStorePickup:
		shipping = s.settings.PickupAddress
	}

	var subtotal int32
	orderItems := make([]OrderItemParams, 0, len(items))
	for _, item := range items {
		subtotal += item.LineTotalCents
		orderItems = append(orderItems, OrderItemParams{
			VariantID:      item.VariantID,
			DisplayName:    item.DisplayName,
			VariantLabel:   item.VariantLabel,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: item.LineTotalCents,
		})
	}

	var discount int32 // no promotions yet
	total := subtotal + deliveryFee - discount

	detail, err := s.store.CreateOrderFromCart(ctx, OrderRecordParams{
		CustomerID:       params.CustomerID,
		CartID:           cart.ID,
		NumberPrefix:     s.settings.OrderNumberPrefix,
		DeliveryType:     params.DeliveryType,
		PaymentMethod:    params.PaymentMethod,
		Status:           domain.OrderStatusPending,
		SubtotalCents:    subtotal,
		DeliveryFeeCents: deliveryFee,
		DiscountCents:    discount,
		TotalCents:       total,
		ShippingAddress:  shipping,
		Notes:            params.Notes,
		Items:            orderItems,
	})
	if err != nil {
		return nil, domain.WrapError(op, err)
	}

	notifyAsync(ctx, s.dispatcher, s.logger, detail.Order.CustomerID, notification.TemplateOrderConfirmation, map[string]any{
		"order_id":     detail.Order.ID,
		"order_number": detail.Order.OrderNumber,
		"total_cents":  detail.Order.TotalCents,
	})

	return detail, nil
}
