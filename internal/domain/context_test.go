package domain

import (
	"context"
	"testing"
)

func TestCustomerContext(t *testing.T) {
	t.Run("CustomerFromContext returns nil when no customer", func(t *testing.T) {
		ctx := context.Background()
		if customer := CustomerFromContext(ctx); customer != nil {
			t.Errorf("expected nil customer, got %+v", customer)
		}
	})

	t.Run("CustomerFromContext returns customer when set", func(t *testing.T) {
		ctx := context.Background()
		expected := &Customer{ID: "cust-1", Email: "ana@example.com"}
		ctx = NewContextWithCustomer(ctx, expected)

		customer := CustomerFromContext(ctx)
		if customer == nil {
			t.Fatal("expected customer, got nil")
		}
		if customer.ID != expected.ID {
			t.Errorf("expected ID %q, got %q", expected.ID, customer.ID)
		}
		if customer.Email != expected.Email {
			t.Errorf("expected Email %q, got %q", expected.Email, customer.Email)
		}
	})

	t.Run("CustomerIDFromContext returns empty string when no customer", func(t *testing.T) {
		ctx := context.Background()
		if id := CustomerIDFromContext(ctx); id != "" {
			t.Errorf("expected empty ID, got %q", id)
		}
	})

	t.Run("CustomerIDFromContext returns ID when customer set", func(t *testing.T) {
		ctx := NewContextWithCustomer(context.Background(), &Customer{ID: "cust-1"})
		if id := CustomerIDFromContext(ctx); id != "cust-1" {
			t.Errorf("expected cust-1, got %q", id)
		}
	})

	t.Run("IsAuthenticated", func(t *testing.T) {
		if IsAuthenticated(context.Background()) {
			t.Error("background context should not be authenticated")
		}
		ctx := NewContextWithCustomer(context.Background(), &Customer{ID: "cust-1"})
		if !IsAuthenticated(ctx) {
			t.Error("context with customer should be authenticated")
		}
	})
}

func TestRequestIDContext(t *testing.T) {
	t.Run("empty when unset", func(t *testing.T) {
		if id := RequestIDFromContext(context.Background()); id != "" {
			t.Errorf("expected empty request ID, got %q", id)
		}
	})

	t.Run("round trips", func(t *testing.T) {
		ctx := NewContextWithRequestID(context.Background(), "req-123")
		if id := RequestIDFromContext(ctx); id != "req-123" {
			t.Errorf("expected req-123, got %q", id)
		}
	})
}
