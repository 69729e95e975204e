// Package catalog exposes the product catalog to the cart and checkout core.
// The core never computes prices on its own; every price and stock figure
// comes from a Reader.
package catalog

import (
	"context"
)

// Variant is a purchasable product configuration with its own price and stock.
type Variant struct {
	ID             string
	DisplayName    string
	VariantLabel   string
	UnitPriceCents int32
	AvailableStock int32
}

// Reader resolves variant identifiers to current price, stock, and display
// metadata. The catalog is read-only from the core's perspective: stock
// decrements happen inside the order transaction so an oversell rolls the
// whole order back.
type Reader interface {
	// GetVariant returns the current catalog state for a variant.
	// Returns ErrVariantNotFound if the catalog has no such variant.
	GetVariant(ctx context.Context, variantID string) (*Variant, error)
}
