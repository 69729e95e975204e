package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rmoralesp/bodega/internal/domain"
)

// MergeOnLogin folds the anonymous cart identified by sessionToken into the
// customer's cart and retires the anonymous one. Quantities accumulate per
// variant; captured prices travel with lines that are new to the customer
// cart. Merged quantities are not re-validated against stock or the cart
// ceiling: checkout is the authoritative gate, and rejecting a login over a
// cart constraint would be worse than an oversized cart.
//
// A merge failure never reaches the login flow. It is logged and the
// customer's cart comes back with retired=false, so the caller keeps the
// session token and a later claim can pick the anonymous cart up again.
func (s *cartService) MergeOnLogin(ctx context.Context, sessionToken, customerID string) (*domain.Cart, bool, error) {
	const op = "CartService.MergeOnLogin"

	authCart, _, err := s.ResolveCart(ctx, customerID, "")
	if err != nil {
		return nil, false, domain.WrapError(op, err)
	}

	if sessionToken == "" {
		return authCart, false, nil
	}

	anonCart, err := s.store.GetCartBySessionToken(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Stale token; nothing to fold, safe to drop.
			return authCart, true, nil
		}
		s.logMergeFailure(customerID, err)
		return authCart, false, nil
	}
	if !anonCart.Anonymous() {
		// Token somehow resolved to a claimed cart; leave it alone.
		return authCart, true, nil
	}

	items, err := s.store.GetCartItems(ctx, anonCart.ID)
	if err != nil {
		s.logMergeFailure(customerID, err)
		return authCart, false, nil
	}
	if len(items) == 0 {
		// Nothing to carry over; the empty cart ages out on its own.
		return authCart, true, nil
	}

	if err := s.store.MergeCarts(ctx, anonCart.ID, authCart.ID); err != nil {
		s.logMergeFailure(customerID, err)
		return authCart, false, nil
	}

	s.logger.Info("merged anonymous cart on login",
		slog.String("customer_id", customerID),
		slog.String("anonymous_cart_id", anonCart.ID),
		slog.String("cart_id", authCart.ID),
		slog.Int("lines", len(items)),
	)

	return authCart, true, nil
}

func (s *cartService) logMergeFailure(customerID string, err error) {
	s.logger.Error("cart merge failed on login, keeping anonymous cart",
		slog.String("customer_id", customerID),
		slog.String("error", err.Error()),
	)
}
