package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	runIDKey   ctxKey = "run_id"
	triggerKey ctxKey = "trigger"
)

// WithRunID stores the batch run ID in the context.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// NewRun returns a context carrying a freshly generated run ID.
func NewRun(ctx context.Context) (context.Context, uuid.UUID) {
	id := uuid.New()
	return WithRunID(ctx, id), id
}

// RunIDFromCtx extracts the run ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func RunIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithTrigger stores the name of what started the current run
// ("cli", "cron").
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey, trigger)
}

// TriggerFromCtx extracts the trigger name from the context.
// Returns an empty string if absent.
func TriggerFromCtx(ctx context.Context) string {
	s, _ := ctx.Value(triggerKey).(string)
	return s
}
