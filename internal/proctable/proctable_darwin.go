//go:build darwin

package proctable

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MAXCOMLEN is 16; p_comm keeps 16 bytes plus the terminator.
const commLimit = 16

// Sysctl reads the kernel's process list for one user.
type Sysctl struct {
	UID int
}

// Default returns the platform's process table.
func Default() Source {
	return Sysctl{UID: os.Getuid()}
}

// List asks kern.proc.uid for every process owned by UID.
func (s Sysctl) List() ([]Entry, error) {
	procs, err := unix.SysctlKinfoProcSlice("kern.proc.uid", s.UID)
	if err != nil {
		return nil, fmt.Errorf("sysctl kern.proc.uid: %w", err)
	}
	entries := make([]Entry, 0, len(procs))
	for i := range procs {
		p := &procs[i]
		entries = append(entries, kinfoEntry(p))
	}
	return entries, nil
}

// Probe asks kern.proc.pid for a single process.
func (s Sysctl) Probe(pid int) (Entry, bool, error) {
	if pid <= 0 {
		return Entry{}, false, nil
	}
	p, err := unix.SysctlKinfoProc("kern.proc.pid", pid)
	if err != nil {
		return Entry{}, false, fmt.Errorf("sysctl kern.proc.pid: %w", err)
	}
	// An exited pid comes back as a zeroed record.
	if int(p.Proc.P_pid) != pid {
		return Entry{}, false, nil
	}
	return kinfoEntry(p), true, nil
}

func kinfoEntry(p *unix.KinfoProc) Entry {
	state := ""
	if p.Proc.P_stat == 5 { // SZOMB
		state = "Z"
	}
	return Entry{
		PID:   int(p.Proc.P_pid),
		UID:   int(p.Eproc.Pcred.P_ruid),
		Name:  unix.ByteSliceToString(p.Proc.P_comm[:]),
		State: state,
	}
}
