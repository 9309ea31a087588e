package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldPID is the key for operating-system process identifiers.
	FieldPID = "pid"
	// FieldDaemon is the key for the managed daemon's process name.
	FieldDaemon = "daemon"
	// FieldLaunchID is the key correlating every record of one launch attempt.
	FieldLaunchID = "launch_id"
	// FieldErrno is the key for raw operating-system error codes.
	FieldErrno = "errno"
	// FieldStage is the key for the launch stage that failed.
	FieldStage = "stage"
	// FieldError is the key for error values.
	FieldError = "error"
)

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// Error wraps err under the standard error key.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
