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

// CreateSale persists a point-of-sale sale with item snapshots and stock
// decrements in one transaction. Sale numbers draw from their own counter
// scope, so storefront orders and POS sales never share a sequence.
func (s *Store) CreateSale(ctx context.Context, params service.SaleRecordParams) (*domain.SaleDetail, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	seq, err := nextNumber(ctx, tx, "pos", now.Year())
	if err != nil {
		return nil, err
	}

	sale := domain.Sale{
		SaleNumber:    domain.FormatOrderNumber(params.NumberPrefix, now.Year(), seq),
		CashierID:     params.CashierID,
		PaymentMethod: params.PaymentMethod,
		SubtotalCents: params.SubtotalCents,
		DiscountCents: params.DiscountCents,
		TotalCents:    params.TotalCents,
	}

	for _, item := range params.Items {
		if err := decrementStock(ctx, tx, item.VariantID, item.Quantity, item.DisplayName); err != nil {
			return nil, err
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO pos_sales (sale_number, cashier_id, payment_method,
		    subtotal_cents, discount_cents, total_cents)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id::text, created_at`,
		sale.SaleNumber, sale.CashierID, sale.PaymentMethod,
		sale.SubtotalCents, sale.DiscountCents, sale.TotalCents,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sale: %w", err)
	}

	items := make([]domain.SaleItem, 0, len(params.Items))
	for _, item := range params.Items {
		var id string
		err = tx.QueryRow(ctx,
			`INSERT INTO pos_sale_items (sale_id, variant_id, display_name, variant_label,
			    quantity, unit_price_cents, line_total_cents)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id::text`,
			sale.ID, item.VariantID, item.DisplayName, item.VariantLabel,
			item.Quantity, item.UnitPriceCents, item.LineTotalCents,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to insert sale item: %w", err)
		}
		items = append(items, domain.SaleItem{
			ID:             id,
			SaleID:         sale.ID,
			VariantID:      item.VariantID,
			DisplayName:    item.DisplayName,
			VariantLabel:   item.VariantLabel,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: item.LineTotalCents,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	return &domain.SaleDetail{Sale: sale, Items: items}, nil
}

func (s *Store) GetSale(ctx context.Context, saleID string) (*domain.SaleDetail, error) {
	var sale domain.Sale
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, sale_number, cashier_id::text, payment_method,
		        subtotal_cents, discount_cents, total_cents, created_at
		 FROM pos_sales WHERE id = $1`, saleID,
	).Scan(&sale.ID, &sale.SaleNumber, &sale.CashierID, &sale.PaymentMethod,
		&sale.SubtotalCents, &sale.DiscountCents, &sale.TotalCents, &sale.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan sale: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, sale_id::text, variant_id::text, display_name, variant_label,
		        quantity, unit_price_cents, line_total_cents
		 FROM pos_sale_items WHERE sale_id = $1 ORDER BY created_at, id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items: %w", err)
	}
	defer rows.Close()

	var items []domain.SaleItem
	for rows.Next() {
		var item domain.SaleItem
		err := rows.Scan(&item.ID, &item.SaleID, &item.VariantID, &item.DisplayName, &item.VariantLabel,
			&item.Quantity, &item.UnitPriceCents, &item.LineTotalCents)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.SaleDetail{Sale: sale, Items: items}, nil
}
