package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rmoralesp/bodega/internal/domain"
)

const cartColumns = `id::text, COALESCE(customer_id::text, ''), COALESCE(session_token, ''), expires_at, created_at, updated_at`

func scanCart(row pgx.Row) (*domain.Cart, error) {
	var c domain.Cart
	err := row.Scan(&c.ID, &c.CustomerID, &c.SessionToken, &c.ExpiresAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan cart: %w", err)
	}
	return &c, nil
}

func (s *Store) GetCartByID(ctx context.Context, cartID string) (*domain.Cart, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+cartColumns+` FROM carts WHERE id = $1`, cartID)
	return scanCart(row)
}

func (s *Store) GetCartByCustomer(ctx context.Context, customerID string) (*domain.Cart, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+cartColumns+` FROM carts WHERE customer_id = $1`, customerID)
	return scanCart(row)
}

// GetCartBySessionToken looks up an anonymous cart. A cart past its expiry
// is treated as missing; the cleanup worker deletes the row later.
func (s *Store) GetCartBySessionToken(ctx context.Context, token string) (*domain.Cart, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+cartColumns+` FROM carts
		 WHERE session_token = $1 AND (expires_at IS NULL OR expires_at > now())`, token)
	return scanCart(row)
}

// CreateCustomerCart creates the customer's cart, or returns the existing
// one if a concurrent request created it first. The unique constraint on
// customer_id makes the upsert race-free.
func (s *Store) CreateCustomerCart(ctx context.Context, customerID string) (*domain.Cart, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO carts (customer_id) VALUES ($1)
		 ON CONFLICT (customer_id) DO UPDATE SET updated_at = now()
		 RETURNING `+cartColumns, customerID)
	return scanCart(row)
}

func (s *Store) CreateAnonymousCart(ctx context.Context, token string, expiresAt time.Time) (*domain.Cart, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO carts (session_token, expires_at) VALUES ($1, $2)
		 RETURNING `+cartColumns, token, expiresAt)
	return scanCart(row)
}

func (s *Store) DeleteExpiredAnonymousCarts(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM carts WHERE customer_id IS NULL AND expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired carts: %w", err)
	}
	return tag.RowsAffected(), nil
}

const cartItemQuery = `
	SELECT ci.id::text, ci.cart_id::text, ci.variant_id::text,
	       pv.display_name, pv.variant_label,
	       ci.quantity, ci.unit_price_cents,
	       ci.quantity * ci.unit_price_cents
	FROM cart_items ci
	JOIN product_variants pv ON pv.id = ci.variant_id`

func scanCartItem(row pgx.Row) (*domain.CartItem, error) {
	var item domain.CartItem
	err := row.Scan(&item.ID, &item.CartID, &item.VariantID,
		&item.DisplayName, &item.VariantLabel,
		&item.Quantity, &item.UnitPriceCents, &item.LineTotalCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan cart item: %w", err)
	}
	return &item, nil
}

func (s *Store) GetCartItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	rows, err := s.pool.Query(ctx,
		cartItemQuery+` WHERE ci.cart_id = $1 ORDER BY ci.created_at, ci.id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *Store) GetCartItem(ctx context.Context, cartID, lineID string) (*domain.CartItem, error) {
	row := s.pool.QueryRow(ctx,
		cartItemQuery+` WHERE ci.cart_id = $1 AND ci.id = $2`, cartID, lineID)
	return scanCartItem(row)
}

// UpsertCartItem adds quantity onto the variant's line, creating it if
// absent. The conditional update accumulates atomically, so two concurrent
// adds both land. The unit price is re-captured on every add.
func (s *Store) UpsertCartItem(ctx context.Context, cartID, variantID string, quantity, unitPriceCents int32) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO cart_items (cart_id, variant_id, quantity, unit_price_cents)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (cart_id, variant_id) DO UPDATE
		 SET quantity = cart_items.quantity + EXCLUDED.quantity,
		     unit_price_cents = EXCLUDED.unit_price_cents,
		     updated_at = now()`,
		cartID, variantID, quantity, unitPriceCents)
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return nil
}

func (s *Store) SetCartItemQuantity(ctx context.Context, cartID, lineID string, quantity int32) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now()
		 WHERE cart_id = $1 AND id = $2`, cartID, lineID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCartItem(ctx context.Context, cartID, lineID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, lineID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MergeCarts folds every line of the source cart into the destination cart
// and deletes the source, in one transaction. Matching variants accumulate
// quantity; lines new to the destination keep their captured price.
func (s *Store) MergeCarts(ctx context.Context, fromCartID, toCartID string) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO cart_items (cart_id, variant_id, quantity, unit_price_cents)
		 SELECT $2, variant_id, quantity, unit_price_cents
		 FROM cart_items WHERE cart_id = $1
		 ON CONFLICT (cart_id, variant_id) DO UPDATE
		 SET quantity = cart_items.quantity + EXCLUDED.quantity,
		     updated_at = now()`,
		fromCartID, toCartID)
	if err != nil {
		return fmt.Errorf("failed to merge cart items: %w", err)
	}

	// Source lines go with the cart via ON DELETE CASCADE.
	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, fromCartID); err != nil {
		return fmt.Errorf("failed to delete merged cart: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, toCartID); err != nil {
		return fmt.Errorf("failed to touch destination cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit merge: %w", err)
	}
	return nil
}
