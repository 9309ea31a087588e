package daemonctl

import (
	"os/exec"
	"sync"
)

// Reaper waits on every child the controller launched so none of them is
// left as a zombie, and lets Stop wait for a child's exit directly.
type Reaper struct {
	mu       sync.Mutex
	children map[int]*child
}

type child struct {
	done chan struct{}
	err  error
}

// NewReaper returns an empty reaper.
func NewReaper() *Reaper {
	return &Reaper{children: make(map[int]*child)}
}

var processReaper = NewReaper()

// DefaultReaper returns the process-wide reaper shared by controllers that do
// not supply their own.
func DefaultReaper() *Reaper {
	return processReaper
}

// Adopt takes ownership of a started command and waits for it in the background.
func (r *Reaper) Adopt(cmd *exec.Cmd) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	pid := cmd.Process.Pid
	c := &child{done: make(chan struct{})}
	r.mu.Lock()
	r.children[pid] = c
	r.mu.Unlock()

	go func() {
		c.err = cmd.Wait()
		close(c.done)
		r.mu.Lock()
		if r.children[pid] == c {
			delete(r.children, pid)
		}
		r.mu.Unlock()
	}()
}

// Done returns a channel closed when the adopted child pid exits. The second
// result is false when pid is not an adopted child.
func (r *Reaper) Done(pid int) (<-chan struct{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.children[pid]
	if !ok {
		return nil, false
	}
	return c.done, true
}

// Len reports how many adopted children are still running.
func (r *Reaper) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.children)
}
