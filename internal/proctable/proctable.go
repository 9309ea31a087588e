package proctable

import (
	"os"
	"strings"
)

// UnknownUID marks entries whose owner the platform does not report.
const UnknownUID = -1

// Entry is one row of the process table.
type Entry struct {
	PID   int
	UID   int
	Name  string
	State string
}

// Zombie reports whether the entry has exited and awaits reaping.
func (e Entry) Zombie() bool {
	return strings.HasPrefix(e.State, "Z")
}

// Source lists processes.
type Source interface {
	List() ([]Entry, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() ([]Entry, error)

// List calls f.
func (f SourceFunc) List() ([]Entry, error) { return f() }

// Filter selects the entries that belong to the daemon named name.
type Filter struct {
	Name    string
	UID     int
	SelfPID int
}

// CurrentUserFilter builds the standard filter: same owner, never ourselves.
func CurrentUserFilter(name string) Filter {
	return Filter{Name: name, UID: os.Getuid(), SelfPID: os.Getpid()}
}

// Match reports whether e satisfies the filter.
func (f Filter) Match(e Entry) bool {
	if e.PID <= 0 || e.PID == f.SelfPID {
		return false
	}
	if e.Zombie() {
		return false
	}
	if e.UID != UnknownUID && f.UID >= 0 && e.UID != f.UID {
		return false
	}
	return nameMatches(e.Name, f.Name)
}

// Find returns the first entry from src accepted by f.
func Find(src Source, f Filter) (Entry, bool, error) {
	entries, err := src.List()
	if err != nil {
		return Entry{}, false, err
	}
	for _, e := range entries {
		if f.Match(e) {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

// Prober is implemented by sources that can read a single process without
// listing the whole table.
type Prober interface {
	Probe(pid int) (Entry, bool, error)
}

// Lookup returns the entry for pid, using src's Probe when it has one.
func Lookup(src Source, pid int) (Entry, bool, error) {
	if p, ok := src.(Prober); ok {
		return p.Probe(pid)
	}
	entries, err := src.List()
	if err != nil {
		return Entry{}, false, err
	}
	for _, e := range entries {
		if e.PID == pid {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

func truncateName(name string, limit int) string {
	if limit > 0 && len(name) > limit {
		return name[:limit]
	}
	return name
}
