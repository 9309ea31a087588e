//go:build linux

package proctable

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProc(t *testing.T, root, pid, status, comm string) {
	t.Helper()
	dir := filepath.Join(root, pid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if status != "" {
		if err := os.WriteFile(filepath.Join(dir, "status"), []byte(status), 0o644); err != nil {
			t.Fatalf("write status: %v", err)
		}
	}
	if comm != "" {
		if err := os.WriteFile(filepath.Join(dir, "comm"), []byte(comm+"\n"), 0o644); err != nil {
			t.Fatalf("write comm: %v", err)
		}
	}
}

func TestProcFSListParsesStatusAndComm(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, "100", "Name:\ttenebra\nState:\tS (sleeping)\nUid:\t1000\t1001\t1001\t1001\n", "tenebra")
	writeProc(t, root, "101", "Name:\tdead\nState:\tZ (zombie)\nUid:\t1000\t1000\t1000\t1000\n", "dead")
	writeProc(t, root, "102", "", "nostatus")
	if err := os.MkdirAll(filepath.Join(root, "self-not-a-pid"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	entries, err := ProcFS{Root: root}.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	byPID := map[int]Entry{}
	for _, e := range entries {
		byPID[e.PID] = e
	}
	got := byPID[100]
	if got.Name != "tenebra" || got.UID != 1000 || got.State != "S (sleeping)" {
		t.Fatalf("unexpected entry for 100: %+v", got)
	}
	if !byPID[101].Zombie() {
		t.Fatalf("expected 101 to be a zombie: %+v", byPID[101])
	}
}

func TestNameMatchesTruncatesToCommLimit(t *testing.T) {
	long := "tenebra-daemon-extended"
	if !nameMatches(long[:commLimit], long) {
		t.Fatal("expected truncated comm to match long daemon name")
	}
	if nameMatches("tenebra", "tenebra-daemon-extended") {
		t.Fatal("unexpected match on short name")
	}
}

func TestDefaultListIncludesSelf(t *testing.T) {
	entries, err := Default().List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	self := os.Getpid()
	for _, e := range entries {
		if e.PID == self {
			if e.UID != os.Getuid() {
				t.Fatalf("self uid = %d, want %d", e.UID, os.Getuid())
			}
			return
		}
	}
	t.Fatalf("pid %d not found in %d entries", self, len(entries))
}

func TestProcFSProbeReadsOnePID(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, "100", "Name:\ttenebra\nState:\tS (sleeping)\nUid:\t1000\t1000\t1000\t1000\n", "tenebra")
	writeProc(t, root, "101", "Name:\ttenebra\nState:\tZ (zombie)\nUid:\t1000\t1000\t1000\t1000\n", "tenebra")
	src := ProcFS{Root: root}

	entry, ok, err := src.Probe(100)
	if err != nil || !ok {
		t.Fatalf("Probe(100) = %+v, %v, %v", entry, ok, err)
	}
	if entry.Zombie() {
		t.Fatalf("unexpected zombie state %q", entry.State)
	}

	entry, ok, err = Lookup(src, 101)
	if err != nil || !ok || !entry.Zombie() {
		t.Fatalf("Lookup(101) = %+v, %v, %v", entry, ok, err)
	}

	if _, ok, err := src.Probe(102); ok || err != nil {
		t.Fatalf("Probe of missing pid = %v, %v", ok, err)
	}
}
