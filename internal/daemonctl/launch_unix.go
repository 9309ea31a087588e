//go:build unix

package daemonctl

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// The helper exits with these statuses after reporting an errno so the
// parent can tell which step failed.
const (
	helperExitStdio = 3
	helperExitExec  = 4
)

// handshakeFD is the descriptor the helper inherits the pipe's write end on.
const handshakeFD = 3

type unixPlatform struct {
	executable func() (string, error)
}

func newPlatform() platform {
	return unixPlatform{executable: os.Executable}
}

// launch re-executes the current binary as the launch helper in a new
// session. The helper redirects stdio, resolves the daemon on PATH and
// replaces itself with it. The pipe's write end is close-on-exec in the
// helper, so EOF on the read end means the exec succeeded; four bytes mean
// it failed and carry the errno.
func (p unixPlatform) launch(ctx context.Context, req launchRequest) (launchedChild, error) {
	self, err := p.executable()
	if err != nil {
		return launchedChild{}, newLaunchError(StageResolve, err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		return launchedChild{}, newLaunchError(StagePipe, err)
	}
	defer r.Close()

	args := append([]string{HelperArg, req.StdioPath, req.Name}, req.Args...)
	cmd := exec.Command(self, args...)
	cmd.ExtraFiles = []*os.File{w}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		w.Close()
		return launchedChild{}, newLaunchError(StageSpawn, err)
	}
	w.Close()

	errno, reported, err := readHandshake(ctx, r)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return launchedChild{}, &LaunchError{Stage: StageSpawn, Errno: unix.ETIMEDOUT, Err: fmt.Errorf("await launch handshake: %w", err)}
	}
	if !reported {
		return launchedChild{pid: cmd.Process.Pid, cmd: cmd}, nil
	}

	stage := StageExec
	var exitErr *exec.ExitError
	if waitErr := cmd.Wait(); errors.As(waitErr, &exitErr) && exitErr.ExitCode() == helperExitStdio {
		stage = StageStdio
	}
	return launchedChild{}, &LaunchError{Stage: stage, Errno: errno}
}

// readHandshake blocks until the helper either closes the pipe or writes an
// errno. A short read followed by EOF is treated as success.
func readHandshake(ctx context.Context, r *os.File) (syscall.Errno, bool, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = r.SetReadDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = r.SetReadDeadline(time.Now())
	})
	defer stop()

	var buf [4]byte
	n, err := io.ReadFull(r, buf[:])
	switch {
	case n == len(buf):
		return syscall.Errno(int32(binary.NativeEndian.Uint32(buf[:]))), true, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return 0, false, nil
	default:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, false, ctxErr
		}
		return 0, false, err
	}
}

func (unixPlatform) terminate(pid int) error {
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		return &SignalError{PID: pid, Errno: errnoOf(err)}
	}
	return nil
}

// awaitExit polls until pid is gone. A zombie counts as gone: signal 0
// still succeeds on it, but it will never run again.
func (unixPlatform) awaitExit(ctx context.Context, pid int, poll time.Duration, zombie func(pid int) bool) error {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		if !processAlive(pid) || (zombie != nil && zombie(pid)) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// processAlive probes pid with signal 0. EPERM means the process exists but
// belongs to someone else.
func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
