package service

import (
	"context"
	"log/slog"

	"github.com/rmoralesp/bodega/internal/notification"
)

// notifyAsync dispatches a notification without blocking or failing the
// caller. The parent's cancellation is detached so an already-finished
// request cannot abort the send; failures are logged and swallowed.
func notifyAsync(ctx context.Context, dispatcher notification.Dispatcher, logger *slog.Logger, customerID, template string, data map[string]any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := dispatcher.Send(ctx, customerID, template, data); err != nil {
			logger.Error("notification dispatch failed",
				slog.String("template", template),
				slog.String("customer_id", customerID),
				slog.String("error", err.Error()),
			)
		}
	}()
}
