//go:build unix

package daemonctl

import (
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// runHelper expects: stdio path (may be empty), daemon name, daemon args.
// It only returns on failure, after writing the errno to the handshake pipe.
func runHelper(args []string) int {
	syscall.CloseOnExec(handshakeFD)

	if len(args) < 2 {
		reportErrno(unix.EINVAL)
		return helperExitExec
	}
	stdioPath, name, daemonArgs := args[0], args[1], args[2:]

	if err := redirectStdio(stdioPath); err != nil {
		reportErrno(errnoOr(err, unix.EIO))
		return helperExitStdio
	}

	path, err := exec.LookPath(name)
	if err != nil && !errors.Is(err, exec.ErrDot) {
		switch {
		case errors.Is(err, fs.ErrPermission):
			reportErrno(unix.EACCES)
		default:
			reportErrno(unix.ENOENT)
		}
		return helperExitExec
	}

	argv := append([]string{name}, daemonArgs...)
	err = unix.Exec(path, argv, os.Environ())
	reportErrno(errnoOr(err, unix.ENOEXEC))
	return helperExitExec
}

// redirectStdio points stdin at the null device and stdout/stderr at path,
// or at the null device when path is empty.
func redirectStdio(path string) error {
	null, err := unix.Open(os.DevNull, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return err
	}
	out := null
	if path != "" {
		out, err = unix.Open(path, unix.O_WRONLY|unix.O_CREAT|unix.O_APPEND|unix.O_CLOEXEC, 0o644)
		if err != nil {
			return err
		}
	}
	for fd, src := range []int{null, out, out} {
		if err := dupOnto(src, fd); err != nil {
			return err
		}
	}
	if null > 2 {
		unix.Close(null)
	}
	if out != null && out > 2 {
		unix.Close(out)
	}
	return nil
}

func reportErrno(errno syscall.Errno) {
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], uint32(int32(errno)))
	_, _ = unix.Write(handshakeFD, buf[:])
}

func errnoOr(err error, fallback syscall.Errno) syscall.Errno {
	if errno := errnoOf(err); errno != 0 {
		return errno
	}
	return fallback
}
