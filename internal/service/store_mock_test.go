package service

import (
	"context"
	"time"

	"github.com/rmoralesp/bodega/internal/domain"
)

// mockStore implements Store with overridable function fields. Unset getters
// report domain.ErrNotFound; unset mutations succeed.
type mockStore struct {
	GetCartByIDFunc                func(ctx context.Context, cartID string) (*domain.Cart, error)
	GetCartByCustomerFunc          func(ctx context.Context, customerID string) (*domain.Cart, error)
	GetCartBySessionTokenFunc      func(ctx context.Context, token string) (*domain.Cart, error)
	CreateCustomerCartFunc         func(ctx context.Context, customerID string) (*domain.Cart, error)
	CreateAnonymousCartFunc        func(ctx context.Context, token string, expiresAt time.Time) (*domain.Cart, error)
	DeleteExpiredAnonymousCartsFunc func(ctx context.Context, now time.Time) (int64, error)

	GetCartItemsFunc        func(ctx context.Context, cartID string) ([]domain.CartItem, error)
	GetCartItemFunc         func(ctx context.Context, cartID, lineID string) (*domain.CartItem, error)
	UpsertCartItemFunc      func(ctx context.Context, cartID, variantID string, quantity, unitPriceCents int32) error
	SetCartItemQuantityFunc func(ctx context.Context, cartID, lineID string, quantity int32) error
	DeleteCartItemFunc      func(ctx context.Context, cartID, lineID string) error
	MergeCartsFunc          func(ctx context.Context, fromCartID, toCartID string) error

	GetAddressFunc func(ctx context.Context, addressID, customerID string) (*domain.Address, error)

	CreateOrderFromCartFunc  func(ctx context.Context, params OrderRecordParams) (*domain.OrderDetail, error)
	GetOrderFunc             func(ctx context.Context, orderID string) (*domain.OrderDetail, error)
	GetOrderByNumberFunc     func(ctx context.Context, orderNumber string) (*domain.OrderDetail, error)
	ListOrdersByCustomerFunc func(ctx context.Context, customerID string) ([]domain.Order, error)
	UpdateOrderStatusFunc    func(ctx context.Context, orderID string, from, to domain.OrderStatus) error

	CreateSaleFunc func(ctx context.Context, params SaleRecordParams) (*domain.SaleDetail, error)
	GetSaleFunc    func(ctx context.Context, saleID string) (*domain.SaleDetail, error)
}

func (m *mockStore) GetCartByID(ctx context.Context, cartID string) (*domain.Cart, error) {
	if m.GetCartByIDFunc != nil {
		return m.GetCartByIDFunc(ctx, cartID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetCartByCustomer(ctx context.Context, customerID string) (*domain.Cart, error) {
	if m.GetCartByCustomerFunc != nil {
		return m.GetCartByCustomerFunc(ctx, customerID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetCartBySessionToken(ctx context.Context, token string) (*domain.Cart, error) {
	if m.GetCartBySessionTokenFunc != nil {
		return m.GetCartBySessionTokenFunc(ctx, token)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CreateCustomerCart(ctx context.Context, customerID string) (*domain.Cart, error) {
	if m.CreateCustomerCartFunc != nil {
		return m.CreateCustomerCartFunc(ctx, customerID)
	}
	return &domain.Cart{ID: "cart-" + customerID, CustomerID: customerID}, nil
}

func (m *mockStore) CreateAnonymousCart(ctx context.Context, token string, expiresAt time.Time) (*domain.Cart, error) {
	if m.CreateAnonymousCartFunc != nil {
		return m.CreateAnonymousCartFunc(ctx, token, expiresAt)
	}
	return &domain.Cart{ID: "anon-cart", SessionToken: token, ExpiresAt: &expiresAt}, nil
}

func (m *mockStore) DeleteExpiredAnonymousCarts(ctx context.Context, now time.Time) (int64, error) {
	if m.DeleteExpiredAnonymousCartsFunc != nil {
		return m.DeleteExpiredAnonymousCartsFunc(ctx, now)
	}
	return 0, nil
}

func (m *mockStore) GetCartItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	if m.GetCartItemsFunc != nil {
		return m.GetCartItemsFunc(ctx, cartID)
	}
	return nil, nil
}

func (m *mockStore) GetCartItem(ctx context.Context, cartID, lineID string) (*domain.CartItem, error) {
	if m.GetCartItemFunc != nil {
		return m.GetCartItemFunc(ctx, cartID, lineID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) UpsertCartItem(ctx context.Context, cartID, variantID string, quantity, unitPriceCents int32) error {
	if m.UpsertCartItemFunc != nil {
		return m.UpsertCartItemFunc(ctx, cartID, variantID, quantity, unitPriceCents)
	}
	return nil
}

func (m *mockStore) SetCartItemQuantity(ctx context.Context, cartID, lineID string, quantity int32) error {
	if m.SetCartItemQuantityFunc != nil {
		return m.SetCartItemQuantityFunc(ctx, cartID, lineID, quantity)
	}
	return nil
}

func (m *mockStore) DeleteCartItem(ctx context.Context, cartID, lineID string) error {
	if m.DeleteCartItemFunc != nil {
		return m.DeleteCartItemFunc(ctx, cartID, lineID)
	}
	return nil
}

func (m *mockStore) MergeCarts(ctx context.Context, fromCartID, toCartID string) error {
	if m.MergeCartsFunc != nil {
		return m.MergeCartsFunc(ctx, fromCartID, toCartID)
	}
	return nil
}

func (m *mockStore) GetAddress(ctx context.Context, addressID, customerID string) (*domain.Address, error) {
	if m.GetAddressFunc != nil {
		return m.GetAddressFunc(ctx, addressID, customerID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CreateOrderFromCart(ctx context.Context, params OrderRecordParams) (*domain.OrderDetail, error) {
	if m.CreateOrderFromCartFunc != nil {
		return m.CreateOrderFromCartFunc(ctx, params)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetOrder(ctx context.Context, orderID string) (*domain.OrderDetail, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, orderID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.OrderDetail, error) {
	if m.GetOrderByNumberFunc != nil {
		return m.GetOrderByNumberFunc(ctx, orderNumber)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	if m.ListOrdersByCustomerFunc != nil {
		return m.ListOrdersByCustomerFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *mockStore) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(ctx, orderID, from, to)
	}
	return nil
}

func (m *mockStore) CreateSale(ctx context.Context, params SaleRecordParams) (*domain.SaleDetail, error) {
	if m.CreateSaleFunc != nil {
		return m.CreateSaleFunc(ctx, params)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetSale(ctx context.Context, saleID string) (*domain.SaleDetail, error) {
	if m.GetSaleFunc != nil {
		return m.GetSaleFunc(ctx, saleID)
	}
	return nil, domain.ErrNotFound
}
