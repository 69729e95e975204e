package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rmoralesp/bodega/internal/catalog"
	"github.com/rmoralesp/bodega/internal/domain"
)

// Default cart constraints, applied when CartConfig leaves them zero.
const (
	DefaultMaxCartUnits       = 50
	DefaultAnonymousRetention = 7 * 24 * time.Hour
)

// CartConfig tunes cart behavior per deployment.
type CartConfig struct {
	// MaxCartUnits caps the total units a cart may hold across all lines.
	MaxCartUnits int32

	// AnonymousRetention is how long an untouched anonymous cart survives.
	AnonymousRetention time.Duration
}

type cartService struct {
	store   Store
	catalog catalog.Reader
	cfg     CartConfig
	logger  *slog.Logger
}

// NewCartService creates a cart service backed by the given store and catalog.
func NewCartService(store Store, catalogReader catalog.Reader, cfg CartConfig, logger *slog.Logger) domain.CartService {
	if cfg.MaxCartUnits <= 0 {
		cfg.MaxCartUnits = DefaultMaxCartUnits
	}
	if cfg.AnonymousRetention <= 0 {
		cfg.AnonymousRetention = DefaultAnonymousRetention
	}
	return &cartService{
		store:   store,
		catalog: catalogReader,
		cfg:     cfg,
		logger:  logger,
	}
}

// ResolveCart finds or creates the single cart for the caller's identity.
// Identity wins: an authenticated customer always gets their customer cart,
// even if the request also carries a session token.
func (s *cartService) ResolveCart(ctx context.Context, customerID, sessionToken string) (*domain.Cart, string, error) {
	const op = "CartService.ResolveCart"

	if customerID != "" {
		cart, err := s.store.GetCartByCustomer(ctx, customerID)
		if err == nil {
			return cart, "", nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.WrapError(op, err)
		}
		cart, err = s.store.CreateCustomerCart(ctx, customerID)
		if err != nil {
			return nil, "", domain.WrapError(op, err)
		}
		return cart, "", nil
	}

	if sessionToken != "" {
		cart, err := s.store.GetCartBySessionToken(ctx, sessionToken)
		if err == nil {
			return cart, "", nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.WrapError(op, err)
		}
		// Token unknown or cart expired; fall through to a fresh one.
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return nil, "", domain.WrapError(op, err)
	}
	expiresAt := time.Now().Add(s.cfg.AnonymousRetention)
	cart, err := s.store.CreateAnonymousCart(ctx, token, expiresAt)
	if err != nil {
		return nil, "", domain.WrapError(op, err)
	}
	return cart, token, nil
}

func (s *cartService) GetCartSummary(ctx context.Context, cartID string) (*domain.CartSummary, error) {
	const op = "CartService.GetCartSummary"

	cart, err := s.store.GetCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapError(op, domain.ErrCartNotFound)
		}
		return nil, domain.WrapError(op, err)
	}

	items, err := s.store.GetCartItems(ctx, cartID)
	if err != nil {
		return nil, domain.WrapError(op, err)
	}

	summary := &domain.CartSummary{
		Cart:  *cart,
		Items: items,
	}
	for _, item := range items {
		summary.SubtotalCents += item.LineTotalCents
		summary.ItemCount += item.Quantity
	}
	return summary, nil
}

// AddItem puts quantity more units of a variant into the cart. A repeated
// add for the same variant accumulates onto the existing line and re-captures
// the catalog price. The cart-wide unit ceiling is enforced here and only
// here; absolute quantity updates bypass it.
func (s *cartService) AddItem(ctx context.Context, cartID, variantID string, quantity int32) (*domain.CartSummary, error) {
	const op = "CartService.AddItem"

	if quantity <= 0 {
		return nil, domain.WrapError(op, domain.ErrInvalidQuantity)
	}

	if _, err := s.store.GetCartByID(ctx, cartID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapError(op, domain.ErrCartNotFound)
		}
		return nil, domain.WrapError(op, err)
	}

	variant, err := s.catalog.GetVariant(ctx, variantID)
	if err != nil {
		if errors.Is(err, catalog.ErrVariantNotFound) {
			return nil, domain.WrapError(op, domain.ErrVariantNotFound)
		}
		return nil, domain.WrapError(op, err)
	}

	items, err := s.store.GetCartItems(ctx, cartID)
	if err != nil {
		return nil, domain.WrapError(op, err)
	}

	var totalUnits, lineUnits int32
	for _, item := range items {
		totalUnits += item.Quantity
		if item.VariantID == variantID {
			lineUnits = item.Quantity
		}
	}

	if lineUnits+quantity > variant.AvailableStock {
		return nil, insufficientStockError(op, variant.AvailableStock)
	}
	if totalUnits+quantity > s.cfg.MaxCartUnits {
		return nil, cartLimitError(op, s.cfg.MaxCartUnits)
	}

	if err := s.store.UpsertCartItem(ctx, cartID, variantID, quantity, variant.UnitPriceCents); err != nil {
		return nil, domain.WrapError(op, err)
	}

	return s.GetCartSummary(ctx, cartID)
}

// UpdateItemQuantity sets a line to an absolute quantity. Zero removes the
// line. Stock is re-checked against the new quantity; the captured unit
// price is left as is.
func (s *cartService) UpdateItemQuantity(ctx context.Context, cartID, lineID string, quantity int32) (*domain.CartSummary, error) {
	const op = "CartService.UpdateItemQuantity"

	if quantity < 0 {
		return nil, domain.WrapError(op, domain.ErrInvalidQuantity)
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, cartID, lineID)
	}

	item, err := s.store.GetCartItem(ctx, cartID, lineID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapError(op, domain.ErrLineNotFound)
		}
		return nil, domain.WrapError(op, err)
	}

	variant, err := s.catalog.GetVariant(ctx, item.VariantID)
	if err != nil {
		if errors.Is(err, catalog.ErrVariantNotFound) {
			return nil, domain.WrapError(op, domain.ErrVariantNotFound)
		}
		return nil, domain.WrapError(op, err)
	}
	if quantity > variant.AvailableStock {
		return nil, insufficientStockError(op, variant.AvailableStock)
	}

	if err := s.store.SetCartItemQuantity(ctx, cartID, lineID, quantity); err != nil {
		return nil, domain.WrapError(op, err)
	}

	return s.GetCartSummary(ctx, cartID)
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, lineID string) (*domain.CartSummary, error) {
	const op = "CartService.RemoveItem"

	if err := s.store.DeleteCartItem(ctx, cartID, lineID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapError(op, domain.ErrLineNotFound)
		}
		return nil, domain.WrapError(op, err)
	}

	return s.GetCartSummary(ctx, cartID)
}
