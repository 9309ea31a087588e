//go:build unix

package daemonctl

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"tenebractl/internal/testsupport"
)

func handshakePipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return r, w
}

func TestReadHandshakeEOFMeansStarted(t *testing.T) {
	r, w := handshakePipe(t)
	w.Close()

	_, reported, err := readHandshake(context.Background(), r)
	if err != nil || reported {
		t.Fatalf("readHandshake = reported %v, err %v", reported, err)
	}
}

func TestReadHandshakeShortReadMeansStarted(t *testing.T) {
	r, w := handshakePipe(t)
	if _, err := w.Write([]byte{1, 2}); err != nil {
		t.Fatalf("write: %v", err)
	}
	w.Close()

	_, reported, err := readHandshake(context.Background(), r)
	if err != nil || reported {
		t.Fatalf("readHandshake = reported %v, err %v", reported, err)
	}
}

func TestReadHandshakeDecodesErrno(t *testing.T) {
	r, w := handshakePipe(t)
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], uint32(syscall.ENOENT))
	if _, err := w.Write(buf[:]); err != nil {
		t.Fatalf("write: %v", err)
	}

	errno, reported, err := readHandshake(context.Background(), r)
	if err != nil {
		t.Fatalf("readHandshake returned error: %v", err)
	}
	if !reported || errno != syscall.ENOENT {
		t.Fatalf("readHandshake = %v, reported %v", errno, reported)
	}
}

func TestReadHandshakeHonoursDeadline(t *testing.T) {
	r, _ := handshakePipe(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, reported, err := readHandshake(ctx, r)
	if err == nil || reported {
		t.Fatalf("expected a timeout, got reported %v, err %v", reported, err)
	}
	if elapsed := time.Since(started); elapsed > 2*time.Second {
		t.Fatalf("readHandshake blocked for %s", elapsed)
	}
}

func TestReadHandshakeHonoursCancellation(t *testing.T) {
	r, _ := handshakePipe(t)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, _, err := readHandshake(ctx, r)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLaunchKillsSilentHelperOnTimeout(t *testing.T) {
	// Holds the inherited handshake descriptor open without ever writing.
	script := filepath.Join(t.TempDir(), "silent-helper")
	testsupport.WriteFile(t, script, "#!/bin/sh\nexec sleep 30\n", 0o755)
	p := unixPlatform{executable: func() (string, error) { return script, nil }}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	started := time.Now()
	child, err := p.launch(ctx, launchRequest{Name: "tenebra", StdioPath: os.DevNull})
	if err == nil {
		_ = child.cmd.Process.Kill()
		_ = child.cmd.Wait()
		t.Fatalf("expected launch to time out, got pid %d", child.pid)
	}
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected LaunchError, got %v", err)
	}
	if launchErr.Stage != StageSpawn || launchErr.Errno != unix.ETIMEDOUT {
		t.Fatalf("unexpected launch error %+v", launchErr)
	}
	if elapsed := time.Since(started); elapsed > 5*time.Second {
		t.Fatalf("launch returned after %s", elapsed)
	}
}
