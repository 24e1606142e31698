package async

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/utils/logging"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// It creates a background context carrying the logger with a fresh trace ID
// and handles errors and panics.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	logger := logging.From(ctx).With("trace_id", uuid.New().String())
	bgCtx := logging.With(context.Background(), logger)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
