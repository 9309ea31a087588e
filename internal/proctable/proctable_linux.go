//go:build linux

package proctable

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TASK_COMM_LEN is 16 including the terminator.
const commLimit = 15

const defaultProcRoot = "/proc"

// ProcFS reads the process table from a procfs mount.
type ProcFS struct {
	Root string
}

// Default returns the platform's process table.
func Default() Source {
	return ProcFS{Root: defaultProcRoot}
}

// List scans every numeric directory under the procfs root. Processes that
// exit mid-scan, or whose status cannot be read, are skipped.
func (p ProcFS) List() ([]Entry, error) {
	root := p.Root
	if root == "" {
		root = defaultProcRoot
	}
	dirents, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(d.Name())
		if err != nil || pid <= 0 {
			continue
		}
		entry, ok := readProcEntry(filepath.Join(root, d.Name()), pid)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Probe reads /proc/<pid> directly. A missing directory is not an error.
func (p ProcFS) Probe(pid int) (Entry, bool, error) {
	root := p.Root
	if root == "" {
		root = defaultProcRoot
	}
	if pid <= 0 {
		return Entry{}, false, nil
	}
	entry, ok := readProcEntry(filepath.Join(root, strconv.Itoa(pid)), pid)
	return entry, ok, nil
}

func readProcEntry(dir string, pid int) (Entry, bool) {
	status, err := os.ReadFile(filepath.Join(dir, "status"))
	if err != nil {
		return Entry{}, false
	}
	entry := Entry{PID: pid, UID: UnknownUID}
	scanner := bufio.NewScanner(bytes.NewReader(status))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Name":
			entry.Name = value
		case "State":
			entry.State = value
		case "Uid":
			// real, effective, saved, filesystem
			fields := strings.Fields(value)
			if len(fields) > 0 {
				if uid, err := strconv.Atoi(fields[0]); err == nil {
					entry.UID = uid
				}
			}
		}
	}
	// status escapes some bytes in Name; comm is the raw value.
	if comm, err := os.ReadFile(filepath.Join(dir, "comm")); err == nil {
		entry.Name = strings.TrimSuffix(string(comm), "\n")
	}
	return entry, entry.Name != ""
}
