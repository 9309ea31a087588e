package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a unix shell")
	}
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	reqs := []Requirement{
		{Name: "Present", Command: "present"},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Optional", Command: "also-not-present", Optional: true},
		{Name: "Blank"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available || results[0].Path != present {
		t.Fatalf("expected first requirement to resolve to %s, got %#v", present, results[0])
	}
	if results[0].Detail != "" || results[0].Severity() != "ok" {
		t.Fatalf("unexpected detail for available dependency: %#v", results[0])
	}

	if results[1].Available || results[1].Detail == "" || results[1].Severity() != "error" {
		t.Fatalf("expected missing required binary, got %#v", results[1])
	}
	if results[2].Severity() != "warn" {
		t.Fatalf("expected optional binary to warn, got %#v", results[2])
	}
	if results[3].Detail != "command not configured" {
		t.Fatalf("unexpected blank command detail %q", results[3].Detail)
	}
}
