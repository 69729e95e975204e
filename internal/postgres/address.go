package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rmoralesp/bodega/internal/domain"
)

// GetAddress retrieves an address only if it belongs to the given customer.
// Another customer's address is indistinguishable from a missing one.
func (s *Store) GetAddress(ctx context.Context, addressID, customerID string) (*domain.Address, error) {
	var a domain.Address
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, customer_id::text, full_name, line1, COALESCE(line2, ''),
		        city, state, postal_code, phone
		 FROM addresses WHERE id = $1 AND customer_id = $2`,
		addressID, customerID,
	).Scan(&a.ID, &a.CustomerID, &a.FullName, &a.Line1, &a.Line2,
		&a.City, &a.State, &a.PostalCode, &a.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan address: %w", err)
	}
	return &a, nil
}
