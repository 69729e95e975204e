package catalog

import (
	"context"
)

// MockReader is a test implementation of Reader.
type MockReader struct {
	GetVariantFunc func(ctx context.Context, variantID string) (*Variant, error)
}

// GetVariant delegates to the configured function or reports not found.
func (m *MockReader) GetVariant(ctx context.Context, variantID string) (*Variant, error) {
	if m.GetVariantFunc != nil {
		return m.GetVariantFunc(ctx, variantID)
	}
	return nil, ErrVariantNotFound
}
