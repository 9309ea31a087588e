// Package logging assembles structured slog loggers and formatting helpers used
// across tenebractl.
//
// It owns the configurable console/JSON handlers, tees output into an
// optional size-rotated log file, and defines the standard field keys the
// lifecycle controller attaches to its records (component, pid, daemon,
// launch_id). The package also provides a no-op logger for tests and wiring
// code that cannot fail.
package logging
