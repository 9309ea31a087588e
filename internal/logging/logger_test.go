package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tenebractl/internal/config"
	"tenebractl/internal/logging"
)

func TestConsoleLoggerRendersComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "daemonctl")
	logger.Info("daemon started", slog.Int(logging.FieldPID, 4242), slog.String(logging.FieldDaemon, "tenebra"))

	out := buf.String()
	if !strings.Contains(out, "INFO [daemonctl] – daemon started") {
		t.Fatalf("missing header, got %q", out)
	}
	if !strings.Contains(out, "    - pid: 4242\n") {
		t.Fatalf("missing pid field, got %q", out)
	}
	if strings.Contains(out, "component") {
		t.Fatalf("component should be rendered in header only, got %q", out)
	}
	if strings.Contains(out, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", out)
	}
}

func TestConsoleLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestJSONLoggerUsesShortKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Error("launch failed", logging.Error(errors.New("boom")))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["level"] != "error" || record["msg"] != "launch failed" || record["error"] != "boom" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesRotatedFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "tenebractl.log")

	var console bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &console)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("to both sinks", slog.Int(logging.FieldPID, 7))

	data, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to both sinks"`) {
		t.Fatalf("file sink missing record: %q", data)
	}
	if !strings.Contains(console.String(), "to both sinks") {
		t.Fatalf("console sink missing record: %q", console.String())
	}
}

func TestWithContextAddsLaunchID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := logging.WithLaunchID(context.Background(), "abc123")
	logging.WithContext(ctx, logger).Info("launching")
	if !strings.Contains(buf.String(), "launch_id: abc123") {
		t.Fatalf("expected launch id, got %q", buf.String())
	}
	if _, ok := logging.LaunchIDFromContext(context.Background()); ok {
		t.Fatal("expected no launch id on bare context")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should not be enabled")
	}
	logging.NewComponentLogger(nil, "x").Info("ignored")
}
