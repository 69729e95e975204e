package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rmoralesp/bodega/internal/domain"
	"github.com/rmoralesp/bodega/internal/service"
)

// nextNumber allocates the next sequence value for a counter scope within a
// year. The upsert holds a row lock until commit, so numbers within a scope
// and year are gapless under concurrency. Each January the year changes and
// numbering restarts at 1.
func nextNumber(ctx context.Context, tx pgx.Tx, scope string, year int) (int64, error) {
	var seq int64
	err := tx.QueryRow(ctx,
		`INSERT INTO order_counters (scope, year, last_number) VALUES ($1, $2, 1)
		 ON CONFLICT (scope, year) DO UPDATE
		 SET last_number = order_counters.last_number + 1
		 RETURNING last_number`,
		scope, year).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s number: %w", scope, err)
	}
	return seq, nil
}

// decrementStock reduces a variant's stock inside tx, conditionally on
// enough being available. A zero-row update means either a vanished variant
// or an oversell; both abort the transaction.
func decrementStock(ctx context.Context, tx pgx.Tx, variantID string, quantity int32, displayName string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE product_variants SET available_stock = available_stock - $2
		 WHERE id = $1 AND available_stock >= $2`,
		variantID, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.Error{
			Code:    domain.ECONFLICT,
			Message: fmt.Sprintf("Not enough stock for %s", displayName),
			Err:     domain.ErrInsufficientStock,
		}
	}
	return nil
}

const orderColumns = `id::text, order_number, customer_id::text, delivery_type, payment_method, status,
	subtotal_cents, delivery_fee_cents, discount_cents, total_cents,
	ship_full_name, ship_line1, ship_line2, ship_city, ship_state, ship_postal_code, ship_phone,
	notes, created_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.DeliveryType, &o.PaymentMethod, &o.Status,
		&o.SubtotalCents, &o.DeliveryFeeCents, &o.DiscountCents, &o.TotalCents,
		&o.ShippingAddress.FullName, &o.ShippingAddress.Line1, &o.ShippingAddress.Line2,
		&o.ShippingAddress.City, &o.ShippingAddress.State, &o.ShippingAddress.PostalCode,
		&o.ShippingAddress.Phone,
		&o.Notes, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return &o, nil
}

// CreateOrderFromCart persists an order with its item snapshots, allocates
// the order number, decrements stock, and clears the source cart, all in one
// transaction. Any failure, including an oversell, rolls the whole thing back.
func (s *Store) CreateOrderFromCart(ctx context.Context, params service.OrderRecordParams) (*domain.OrderDetail, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	seq, err := nextNumber(ctx, tx, "order", now.Year())
	if err != nil {
		return nil, err
	}
	orderNumber := domain.FormatOrderNumber(params.NumberPrefix, now.Year(), seq)

	for _, item := range params.Items {
		if err := decrementStock(ctx, tx, item.VariantID, item.Quantity, item.DisplayName); err != nil {
			return nil, err
		}
	}

	order := domain.Order{
		OrderNumber:      orderNumber,
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
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (order_number, customer_id, delivery_type, payment_method, status,
		    subtotal_cents, delivery_fee_cents, discount_cents, total_cents,
		    ship_full_name, ship_line1, ship_line2, ship_city, ship_state, ship_postal_code, ship_phone,
		    notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING id::text, created_at`,
		order.OrderNumber, order.CustomerID, order.DeliveryType, order.PaymentMethod, order.Status,
		order.SubtotalCents, order.DeliveryFeeCents, order.DiscountCents, order.TotalCents,
		order.ShippingAddress.FullName, order.ShippingAddress.Line1, order.ShippingAddress.Line2,
		order.ShippingAddress.City, order.ShippingAddress.State, order.ShippingAddress.PostalCode,
		order.ShippingAddress.Phone,
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	items := make([]domain.OrderItem, 0, len(params.Items))
	for _, item := range params.Items {
		var id string
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, variant_id, display_name, variant_label,
			    quantity, unit_price_cents, line_total_cents)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id::text`,
			order.ID, item.VariantID, item.DisplayName, item.VariantLabel,
			item.Quantity, item.UnitPriceCents, item.LineTotalCents,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
		items = append(items, domain.OrderItem{
			ID:             id,
			OrderID:        order.ID,
			VariantID:      item.VariantID,
			DisplayName:    item.DisplayName,
			VariantLabel:   item.VariantLabel,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: item.LineTotalCents,
		})
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, params.CartID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, params.CartID); err != nil {
		return nil, fmt.Errorf("failed to touch cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return &domain.OrderDetail{Order: order, Items: items}, nil
}

func (s *Store) getOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::text, order_id::text, variant_id::text, display_name, variant_label,
		        quantity, unit_price_cents, line_total_cents
		 FROM order_items WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.VariantID, &item.DisplayName, &item.VariantLabel,
			&item.Quantity, &item.UnitPriceCents, &item.LineTotalCents)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) getOrderDetail(ctx context.Context, row pgx.Row) (*domain.OrderDetail, error) {
	order, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	items, err := s.getOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &domain.OrderDetail{Order: *order, Items: items}, nil
}

func (s *Store) GetOrder(ctx context.Context, orderID string) (*domain.OrderDetail, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)
	return s.getOrderDetail(ctx, row)
}

func (s *Store) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.OrderDetail, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
	return s.getOrderDetail(ctx, row)
}

func (s *Store) ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus transitions an order conditionally on its current
// status. Zero rows affected means the order is missing or another
// transition won; callers distinguish by reloading if they care.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		orderID, from, to)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
