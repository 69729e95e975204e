package storefront

import (
	"time"

	"github.com/rmoralesp/bodega/internal/domain"
)

// JSON response shapes for the storefront API.

type cartItemResponse struct {
	ID             string `json:"id"`
	VariantID      string `json:"variant_id"`
	DisplayName    string `json:"display_name"`
	VariantLabel   string `json:"variant_label"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int32  `json:"unit_price_cents"`
	LineTotalCents int32  `json:"line_total_cents"`
}

type cartResponse struct {
	CartID        string             `json:"cart_id"`
	Items         []cartItemResponse `json:"items"`
	SubtotalCents int32              `json:"subtotal_cents"`
	ItemCount     int32              `json:"item_count"`
}

func newCartResponse(summary *domain.CartSummary) cartResponse {
	items := make([]cartItemResponse, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, cartItemResponse{
			ID:             item.ID,
			VariantID:      item.VariantID,
			DisplayName:    item.DisplayName,
			VariantLabel:   item.VariantLabel,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: item.LineTotalCents,
		})
	}
	return cartResponse{
		CartID:        summary.Cart.ID,
		Items:         items,
		SubtotalCents: summary.SubtotalCents,
		ItemCount:     summary.ItemCount,
	}
}

type addressResponse struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

type orderItemResponse struct {
	ID             string `json:"id"`
	VariantID      string `json:"variant_id"`
	DisplayName    string `json:"display_name"`
	VariantLabel   string `json:"variant_label"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int32  `json:"unit_price_cents"`
	LineTotalCents int32  `json:"line_total_cents"`
}

type orderResponse struct {
	ID               string              `json:"id"`
	OrderNumber      string              `json:"order_number"`
	Status           string              `json:"status"`
	DeliveryType     string              `json:"delivery_type"`
	PaymentMethod    string              `json:"payment_method"`
	SubtotalCents    int32               `json:"subtotal_cents"`
	DeliveryFeeCents int32               `json:"delivery_fee_cents"`
	DiscountCents    int32               `json:"discount_cents"`
	TotalCents       int32               `json:"total_cents"`
	ShippingAddress  addressResponse     `json:"shipping_address"`
	Notes            string              `json:"notes,omitempty"`
	Items            []orderItemResponse `json:"items,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

func newOrderResponse(order domain.Order, items []domain.OrderItem) orderResponse {
	resp := orderResponse{
		ID:               order.ID,
		OrderNumber:      order.OrderNumber,
		Status:           string(order.Status),
		DeliveryType:     string(order.DeliveryType),
		PaymentMethod:    order.PaymentMethod,
		SubtotalCents:    order.SubtotalCents,
		DeliveryFeeCents: order.DeliveryFeeCents,
		DiscountCents:    order.DiscountCents,
		TotalCents:       order.TotalCents,
		ShippingAddress: addressResponse{
			FullName:   order.ShippingAddress.FullName,
			Line1:      order.ShippingAddress.Line1,
			Line2:      order.ShippingAddress.Line2,
			City:       order.ShippingAddress.City,
			State:      order.ShippingAddress.State,
			PostalCode: order.ShippingAddress.PostalCode,
			Phone:      order.ShippingAddress.Phone,
		},
		Notes:     order.Notes,
		CreatedAt: order.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, orderItemResponse{
			ID:             item.ID,
			VariantID:      item.VariantID,
			DisplayName:    item.DisplayName,
			VariantLabel:   item.VariantLabel,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: item.LineTotalCents,
		})
	}
	return resp
}
