package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// stubDaemonScript idles until SIGTERM, then exits cleanly.
const stubDaemonScript = `#!/bin/sh
trap 'exit 0' TERM
echo "stub daemon started"
while :; do sleep 0.1; done
`

// UniqueDaemonName returns a process name short enough to survive the
// kernel's comm truncation and unlikely to collide with anything running.
func UniqueDaemonName() string {
	return "tnb" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// StubDaemon installs an executable shell script under a unique name in a
// temp directory prepended to PATH, and returns the name.
func StubDaemon(t testing.TB) string {
	t.Helper()

	name := UniqueDaemonName()
	dir := t.TempDir()
	WriteFile(t, filepath.Join(dir, name), stubDaemonScript, 0o755)
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return name
}

// MissingDaemon returns a unique name that resolves to nothing on PATH.
func MissingDaemon(t testing.TB) string {
	t.Helper()
	t.Setenv("PATH", t.TempDir()+string(os.PathListSeparator)+os.Getenv("PATH"))
	return UniqueDaemonName()
}
