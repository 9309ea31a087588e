//go:build windows

package proctable

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Toolhelp walks a CreateToolhelp32Snapshot of every process.
type Toolhelp struct{}

// Default returns the platform's process table.
func Default() Source {
	return Toolhelp{}
}

// List returns every process in the snapshot. Windows does not expose the
// owner cheaply, so UID is always UnknownUID.
func (Toolhelp) List() ([]Entry, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("create process snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var pe windows.ProcessEntry32
	pe.Size = uint32(unsafe.Sizeof(pe))
	if err := windows.Process32First(snapshot, &pe); err != nil {
		return nil, fmt.Errorf("read first process: %w", err)
	}
	var entries []Entry
	for {
		entries = append(entries, Entry{
			PID:  int(pe.ProcessID),
			UID:  UnknownUID,
			Name: windows.UTF16ToString(pe.ExeFile[:]),
		})
		if err := windows.Process32Next(snapshot, &pe); err != nil {
			if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
				break
			}
			return nil, fmt.Errorf("read next process: %w", err)
		}
	}
	return entries, nil
}

func nameMatches(entryName, want string) bool {
	if want == "" {
		return false
	}
	if !strings.HasSuffix(strings.ToLower(want), ".exe") {
		want += ".exe"
	}
	return strings.EqualFold(entryName, want)
}
