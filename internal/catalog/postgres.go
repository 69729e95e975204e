package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresReader reads variants from the product_variants table.
type PostgresReader struct {
	pool *pgxpool.Pool
}

// NewPostgresReader creates a catalog reader backed by the given pool.
func NewPostgresReader(pool *pgxpool.Pool) *PostgresReader {
	return &PostgresReader{pool: pool}
}

// GetVariant returns the current catalog state for a variant.
func (r *PostgresReader) GetVariant(ctx context.Context, variantID string) (*Variant, error) {
	const q = `
SELECT id::text, display_name, variant_label, unit_price_cents, available_stock
FROM product_variants
WHERE id = $1
`
	var v Variant
	err := r.pool.QueryRow(ctx, q, variantID).Scan(
		&v.ID,
		&v.DisplayName,
		&v.VariantLabel,
		&v.UnitPriceCents,
		&v.AvailableStock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVariantNotFound
		}
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}
	return &v, nil
}
