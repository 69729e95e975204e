package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rmoralesp/bodega/internal/catalog"
	"github.com/rmoralesp/bodega/internal/domain"
)

type posService struct {
	store   Store
	catalog catalog.Reader
	prefix  string
	logger  *slog.Logger
}

// NewPOSService creates the point-of-sale service. prefix heads sale
// numbers, e.g. "POS" in POS-2026-000007.
func NewPOSService(store Store, catalogReader catalog.Reader, prefix string, logger *slog.Logger) domain.POSService {
	return &posService{
		store:   store,
		catalog: catalogReader,
		prefix:  prefix,
		logger:  logger,
	}
}

// CreateSale records an in-store sale from staff-entered lines. Each line's
// variant must exist; a zero unit price means "charge the catalog price",
// while a positive one is a staff override. Stock decrements happen in the
// same transaction as the sale insert.
func (s *posService) CreateSale(ctx context.Context, params domain.CreateSaleParams) (*domain.SaleDetail, error) {
	const op = "POSService.CreateSale"

	if params.CashierID == "" {
		return nil, domain.Errorf(op, domain.EINVALID, "Cashier is required")
	}
	if params.PaymentMethod == "" {
		return nil, domain.Errorf(op, domain.EINVALID, "Payment method is required")
	}
	if len(params.Lines) == 0 {
		return nil, domain.WrapError(op, domain.ErrEmptySale)
	}
	if params.DiscountCents < 0 {
		return nil, domain.Errorf(op, domain.EINVALID, "Discount cannot be negative")
	}

	var subtotal int32
	items := make([]OrderItemParams, 0, len(params.Lines))
	for _, line := range params.Lines {
		if line.Quantity <= 0 {
			return nil, domain.WrapError(op, domain.ErrInvalidQuantity)
		}
		if line.UnitPriceCents < 0 {
			return nil, domain.Errorf(op, domain.EINVALID, "Unit price cannot be negative")
		}

		variant, err := s.catalog.GetVariant(ctx, line.VariantID)
		if err != nil {
			if errors.Is(err, catalog.ErrVariantNotFound) {
				return nil, domain.WrapError(op, domain.ErrVariantNotFound)
			}
			return nil, domain.WrapError(op, err)
		}
		if line.Quantity > variant.AvailableStock {
			return nil, insufficientStockError(op, variant.AvailableStock)
		}

		unitPrice := line.UnitPriceCents
		if unitPrice == 0 {
			unitPrice = variant.UnitPriceCents
		}
		lineTotal := unitPrice * line.Quantity
		subtotal += lineTotal

		items = append(items, OrderItemParams{
			VariantID:      variant.ID,
			DisplayName:    variant.DisplayName,
			VariantLabel:   variant.VariantLabel,
			Quantity:       line.Quantity,
			UnitPriceCents: unitPrice,
			LineTotalCents: lineTotal,
		})
	}

	if params.DiscountCents > subtotal {
		return nil, domain.Errorf(op, domain.EINVALID, "Discount cannot exceed the subtotal")
	}
	total := subtotal - params.DiscountCents

	detail, err := s.store.CreateSale(ctx, SaleRecordParams{
		CashierID:     params.CashierID,
		NumberPrefix:  s.prefix,
		PaymentMethod: params.PaymentMethod,
		SubtotalCents: subtotal,
		DiscountCents: params.DiscountCents,
		TotalCents:    total,
		Items:         items,
	})
	if err != nil {
		return nil, domain.WrapError(op, err)
	}

	s.logger.Info("recorded point-of-sale sale",
		slog.String("sale_id", detail.Sale.ID),
		slog.String("sale_number", detail.Sale.SaleNumber),
		slog.Int("total_cents", int(detail.Sale.TotalCents)),
	)

	return detail, nil
}

func (s *posService) GetSale(ctx context.Context, saleID string) (*domain.SaleDetail, error) {
	const op = "POSService.GetSale"

	detail, err := s.store.GetSale(ctx, saleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapError(op, domain.ErrSaleNotFound)
		}
		return nil, domain.WrapError(op, err)
	}
	return detail, nil
}
