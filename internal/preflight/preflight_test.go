package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tenebractl/internal/config"
	"tenebractl/internal/settings"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckWritableParent_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")
	result := CheckWritableParent("settings", path)
	if !result.Passed {
		t.Fatalf("expected creatable path to pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckWritableParent_FileInTheWay(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckWritableParent("settings", filepath.Join(f, "tenebra"))
	if result.Passed {
		t.Fatal("expected failure when an ancestor is a file")
	}
}

func TestCheckReadableFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "cert.pem")
	if err := os.WriteFile(f, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if r := CheckReadableFile("cert", f); !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if r := CheckReadableFile("cert", filepath.Join(dir, "missing.pem")); r.Passed {
		t.Fatal("expected failure for missing file")
	}
	if r := CheckReadableFile("cert", dir); r.Passed {
		t.Fatal("expected failure for directory")
	}
}

func TestRunAllReportsMissingDaemonAndCert(t *testing.T) {
	base := t.TempDir()
	t.Setenv("PATH", base)
	cfg := config.Default()
	cfg.Daemon.Name = "tenebra-preflight-missing"
	cfg.Paths.StateDir = base

	s := settings.Defaults("linux")
	s.Cert = filepath.Join(base, "missing-cert.pem")

	results := RunAll(context.Background(), &cfg, filepath.Join(base, "tenebra", "config.toml"), s)
	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Name] = r
	}
	if r, ok := byName["Daemon"]; !ok || r.Passed || r.Severity() != "error" {
		t.Fatalf("expected failing daemon check, got %+v", r)
	}
	if r := byName["State directory"]; !r.Passed {
		t.Fatalf("expected state directory to pass, got %+v", r)
	}
	if r := byName["Settings directory"]; !r.Passed {
		t.Fatalf("expected settings directory to pass, got %+v", r)
	}
	if r, ok := byName["Certificate"]; !ok || r.Passed {
		t.Fatalf("expected failing certificate check, got %+v", r)
	}
	if _, ok := byName["Private key"]; ok {
		t.Fatal("private key check should be skipped when unset")
	}
	if len(Failed(results)) != 2 {
		t.Fatalf("expected 2 failures, got %+v", Failed(results))
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if got := RunAll(context.Background(), nil, "", settings.Settings{}); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
