package daemonctl

import "time"

// Action is a lifecycle operation recorded by OnEvent observers.
type Action string

const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"
)

// Outcome classifies how an Action ended.
type Outcome string

const (
	OutcomeOK         Outcome = "ok"
	OutcomeFailed     Outcome = "failed"
	OutcomeNotRunning Outcome = "not_running"
	OutcomeTimeout    Outcome = "timeout"
)

// Event describes one lifecycle outcome.
type Event struct {
	LaunchID string
	Action   Action
	Outcome  Outcome
	PID      int
	Errno    int
	Detail   string
	At       time.Time
}
