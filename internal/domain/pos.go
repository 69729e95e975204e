package domain

import (
	"context"
	"time"
)

// POS domain errors.
var (
	ErrSaleNotFound = &Error{Code: ENOTFOUND, Message: "Sale not found"}
	ErrEmptySale    = &Error{Code: EINVALID, Message: "Sale has no items"}
)

// Sale is a staff-operated, cart-less point-of-sale record.
// It mirrors Order structurally but is created in a single step from
// staff-supplied lines, decrementing stock at the same moment.
type Sale struct {
	ID            string
	SaleNumber    string
	CashierID     string
	PaymentMethod string
	SubtotalCents int32
	DiscountCents int32
	TotalCents    int32
	CreatedAt     time.Time
}

// SaleItem is a snapshotted line within a sale.
type SaleItem struct {
	ID             string
	SaleID         string
	VariantID      string
	DisplayName    string
	VariantLabel   string
	Quantity       int32
	UnitPriceCents int32
	LineTotalCents int32
}

// SaleDetail aggregates a sale with its items.
type SaleDetail struct {
	Sale  Sale
	Items []SaleItem
}

// SaleLineInput is one staff-entered line of a POS sale.
type SaleLineInput struct {
	VariantID      string
	Quantity       int32
	UnitPriceCents int32
}

// CreateSaleParams contains staff input for a POS sale.
type CreateSaleParams struct {
	CashierID     string
	PaymentMethod string
	DiscountCents int32
	Lines         []SaleLineInput
}

// POSService records in-store sales without a cart.
type POSService interface {
	// CreateSale validates staff-entered lines against the catalog,
	// decrements stock, computes totals server-side, and persists the sale
	// atomically.
	CreateSale(ctx context.Context, params CreateSaleParams) (*SaleDetail, error)

	// GetSale retrieves a sale by ID.
	GetSale(ctx context.Context, saleID string) (*SaleDetail, error)
}
