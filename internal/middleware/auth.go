package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/rmoralesp/bodega/internal/domain"
)

// Identity headers set by the authenticating gateway in front of this
// service. The gateway terminates sessions and forwards the verified
// customer; this service never sees credentials.
const (
	CustomerIDHeader    = "X-Customer-Id"
	CustomerEmailHeader = "X-Customer-Email"
)

// Identity attaches the gateway-verified customer to the request context.
// Requests without the header proceed anonymously.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customerID := r.Header.Get(CustomerIDHeader)
		if customerID != "" {
			ctx := domain.NewContextWithCustomer(r.Context(), &domain.Customer{
				ID:    customerID,
				Email: r.Header.Get(CustomerEmailHeader),
			})
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCustomer rejects unauthenticated requests with 401.
func RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !domain.IsAuthenticated(r.Context()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"code":    domain.EUNAUTHORIZED,
					"message": "Authentication required",
				},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
