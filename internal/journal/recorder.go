package journal

import (
	"context"
	"log/slog"
	"time"

	"tenebractl/internal/daemonctl"
	"tenebractl/internal/logging"
)

// Recorder returns a daemonctl event observer that appends every event to s.
// Write failures are logged and never interrupt the lifecycle operation.
func Recorder(s *Store, logger *slog.Logger) func(daemonctl.Event) {
	logger = logging.NewComponentLogger(logger, "journal")
	return func(ev daemonctl.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err := s.Append(ctx, Entry{
			LaunchID:  ev.LaunchID,
			Action:    string(ev.Action),
			Outcome:   string(ev.Outcome),
			PID:       ev.PID,
			Errno:     ev.Errno,
			Detail:    ev.Detail,
			CreatedAt: ev.At,
		})
		if err != nil {
			logger.Warn("journal write failed", logging.Error(err))
		}
	}
}
