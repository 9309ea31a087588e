package logging

import (
	"context"
	"log/slog"
)

type launchIDKey struct{}

// WithLaunchID stores a launch correlation identifier on ctx.
func WithLaunchID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, launchIDKey{}, id)
}

// LaunchIDFromContext returns the launch identifier stored by WithLaunchID.
func LaunchIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(launchIDKey{}).(string)
	return id, ok && id != ""
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if id, ok := LaunchIDFromContext(ctx); ok {
		return logger.With(slog.String(FieldLaunchID, id))
	}
	return logger
}
