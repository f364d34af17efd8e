// Package async runs best-effort background tasks whose failure must never
// reach the caller. Visit tracking and owner notifications use it: the page
// response is already on the wire when these run, so errors are logged and
// dropped by contract.
package async

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTimeout bounds detached tasks so a stuck write cannot leak a goroutine.
const DefaultTimeout = 10 * time.Second

// Run executes fn on its own goroutine with a fresh, time-bounded context.
// The task is deliberately detached from the request context: the request
// finishing (or failing) must not cancel the side effect.
func Run(log *slog.Logger, name string, fn func(ctx context.Context) error) {
	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("background task panicked",
					slog.String("task", name),
					slog.Any("panic", r),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			log.Error("background task failed",
				slog.String("task", name),
				slog.Any("error", err),
			)
		}
	}()
}
