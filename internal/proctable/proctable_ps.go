//go:build unix && !linux && !darwin

package proctable

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// BSD kernels keep MAXCOMLEN (19) bytes of the command name.
const commLimit = 19

// PS reads the process table by running ps(1).
type PS struct {
	Path string
}

// Default returns the platform's process table.
func Default() Source {
	return PS{Path: "ps"}
}

// List runs ps and parses its pid, uid, state and command columns.
func (p PS) List() ([]Entry, error) {
	path := p.Path
	if path == "" {
		path = "ps"
	}
	out, err := exec.Command(path, "-axo", "pid=,uid=,stat=,comm=").Output()
	if err != nil {
		return nil, fmt.Errorf("run ps: %w", err)
	}
	return parsePS(out), nil
}

func parsePS(out []byte) []Entry {
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		uid, err := strconv.Atoi(fields[1])
		if err != nil {
			uid = UnknownUID
		}
		entries = append(entries, Entry{
			PID:   pid,
			UID:   uid,
			State: fields[2],
			Name:  strings.Join(fields[3:], " "),
		})
	}
	return entries
}
