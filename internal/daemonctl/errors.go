package daemonctl

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrNotRunning indicates discovery found no daemon process to act on.
	ErrNotRunning = errors.New("daemon not running")
	// ErrStopTimeout indicates the daemon accepted the termination request but
	// had not exited when the stop deadline passed.
	ErrStopTimeout = errors.New("daemon did not exit before the stop timeout")
	// ErrControllerBusy indicates another tenebractl invocation holds the controller lock.
	ErrControllerBusy = errors.New("another tenebractl command is already controlling the daemon")
)

// LaunchStage names the step of a launch that failed.
type LaunchStage string

const (
	StageResolve LaunchStage = "resolve"
	StagePipe    LaunchStage = "pipe"
	StageSpawn   LaunchStage = "spawn"
	StageStdio   LaunchStage = "stdio"
	StageExec    LaunchStage = "exec"
	StageService LaunchStage = "service"
)

// Startup reports whether the failure happened inside the child after it was
// created, as opposed to the controller failing to create it.
func (s LaunchStage) Startup() bool {
	return s == StageStdio || s == StageExec
}

// LaunchError is returned by Start when the daemon did not start.
type LaunchError struct {
	Stage LaunchStage
	Errno syscall.Errno
	Err   error
}

func (e *LaunchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("launch %s: %v", e.Stage, e.Err)
	case e.Errno != 0:
		return fmt.Sprintf("launch %s: %v (errno %d)", e.Stage, e.Errno, int(e.Errno))
	default:
		return fmt.Sprintf("launch %s failed", e.Stage)
	}
}

func (e *LaunchError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if e.Errno != 0 {
		return e.Errno
	}
	return nil
}

// Code returns the operating-system error code, or 0 when none applies.
func (e *LaunchError) Code() int {
	return int(e.Errno)
}

// SignalError is returned by Stop when the operating system rejected the
// termination request.
type SignalError struct {
	PID   int
	Errno syscall.Errno
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("terminate pid %d: %v (errno %d)", e.PID, e.Errno, int(e.Errno))
}

func (e *SignalError) Unwrap() error {
	return e.Errno
}

// Code returns the operating-system error code.
func (e *SignalError) Code() int {
	return int(e.Errno)
}

func newLaunchError(stage LaunchStage, err error) *LaunchError {
	return &LaunchError{Stage: stage, Errno: errnoOf(err), Err: err}
}

// errnoOf extracts the innermost syscall.Errno from err, or 0.
func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return 0
}
