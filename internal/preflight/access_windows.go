//go:build windows

package preflight

import (
	"os"
	"path/filepath"
)

// Windows has no access(2); probe by creating and removing a file.
func accessReadWrite(path string) error {
	f, err := os.CreateTemp(path, ".tenebractl-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(filepath.Clean(name))
}
