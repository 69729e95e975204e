// Package worker runs periodic background maintenance tasks.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/rmoralesp/bodega/internal/telemetry"
)

// CleanupConfig holds cart cleanup worker configuration.
type CleanupConfig struct {
	// Interval is how often to sweep for expired carts.
	Interval time.Duration
}

// CartStore is the slice of the storage layer the cleanup worker needs.
type CartStore interface {
	DeleteExpiredAnonymousCarts(ctx context.Context, now time.Time) (int64, error)
}

// CartCleanup deletes anonymous carts whose retention window has passed.
// Expired carts are already invisible to lookups; this reclaims the rows.
type CartCleanup struct {
	config  CleanupConfig
	store   CartStore
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

// NewCartCleanup creates a new cart cleanup worker.
func NewCartCleanup(store CartStore, metrics *telemetry.BusinessMetrics, config CleanupConfig, logger *slog.Logger) *CartCleanup {
	if config.Interval == 0 {
		config.Interval = time.Hour
	}
	return &CartCleanup{
		config:  config,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Start sweeps on a ticker until the context is cancelled. One sweep runs
// immediately on startup.
func (w *CartCleanup) Start(ctx context.Context) error {
	w.logger.Info("cart cleanup worker starting", "interval", w.config.Interval)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("cart cleanup worker shutting down")
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *CartCleanup) sweep(ctx context.Context) {
	deleted, err := w.store.DeleteExpiredAnonymousCarts(ctx, time.Now())
	if err != nil {
		w.logger.Error("expired cart sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		w.logger.Info("removed expired anonymous carts", "count", deleted)
		if w.metrics != nil {
			w.metrics.CartsExpired.Add(float64(deleted))
		}
	}
}
