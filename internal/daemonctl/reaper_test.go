//go:build unix

package daemonctl

import (
	"os/exec"
	"testing"
	"time"
)

func TestReaperCollectsAdoptedChild(t *testing.T) {
	cmd := exec.Command("/bin/sh", "-c", "exit 0")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start child: %v", err)
	}
	r := NewReaper()
	r.Adopt(cmd)

	done, ok := r.Done(cmd.Process.Pid)
	if !ok {
		// The child may already have been collected.
		return
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reaper never observed child exit")
	}
	deadline := time.Now().Add(time.Second)
	for r.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if r.Len() != 0 {
		t.Fatalf("expected child to be forgotten, %d remain", r.Len())
	}
}

func TestReaperDoneUnknownPID(t *testing.T) {
	if _, ok := NewReaper().Done(123456); ok {
		t.Fatal("expected unknown pid")
	}
}
