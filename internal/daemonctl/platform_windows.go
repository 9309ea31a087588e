//go:build windows

package daemonctl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc/mgr"
)

type windowsPlatform struct{}

func newPlatform() platform {
	return windowsPlatform{}
}

// launch asks the service control manager to start the daemon's service.
// The SCM does not report the resulting process id.
func (windowsPlatform) launch(_ context.Context, req launchRequest) (launchedChild, error) {
	m, err := mgr.Connect()
	if err != nil {
		return launchedChild{}, newLaunchError(StageService, fmt.Errorf("connect to service manager: %w", err))
	}
	defer m.Disconnect()

	s, err := m.OpenService(req.ServiceName)
	if err != nil {
		return launchedChild{}, newLaunchError(StageService, fmt.Errorf("open service %q: %w", req.ServiceName, err))
	}
	defer s.Close()

	if err := s.Start(req.Args...); err != nil {
		return launchedChild{}, newLaunchError(StageService, fmt.Errorf("start service %q: %w", req.ServiceName, err))
	}
	return launchedChild{}, nil
}

func (windowsPlatform) terminate(pid int) error {
	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE|windows.SYNCHRONIZE, false, uint32(pid))
	if err != nil {
		return &SignalError{PID: pid, Errno: errnoOf(err)}
	}
	defer windows.CloseHandle(h)
	if err := windows.TerminateProcess(h, 1); err != nil {
		return &SignalError{PID: pid, Errno: errnoOf(err)}
	}
	return nil
}

// awaitExit waits on the process handle in poll-sized slices so ctx is honoured.
func (windowsPlatform) awaitExit(ctx context.Context, pid int, poll time.Duration, _ func(int) bool) error {
	h, err := windows.OpenProcess(windows.SYNCHRONIZE, false, uint32(pid))
	if err != nil {
		if errors.Is(err, windows.ERROR_INVALID_PARAMETER) {
			return nil
		}
		return fmt.Errorf("open process %d: %w", pid, err)
	}
	defer windows.CloseHandle(h)

	slice := uint32(poll / time.Millisecond)
	if slice == 0 {
		slice = 1
	}
	for {
		event, err := windows.WaitForSingleObject(h, slice)
		if err != nil {
			return fmt.Errorf("wait for process %d: %w", pid, err)
		}
		if event == windows.WAIT_OBJECT_0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}
