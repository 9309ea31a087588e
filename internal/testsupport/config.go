package testsupport

import (
	"path/filepath"
	"testing"

	"tenebractl/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Settings.Path = filepath.Join(base, "tenebra", "config.toml")
	cfgVal.Daemon.StopTimeoutSeconds = 5
	cfgVal.Daemon.StartTimeoutSeconds = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDaemonName overrides the managed daemon's process name.
func WithDaemonName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Daemon.Name = name
	}
}

// WithDaemonLog sends daemon stdout/stderr to a file under the test directory.
func WithDaemonLog(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Daemon.LogFile = filepath.Join(b.baseDir, name)
	}
}

// BaseDir returns the temp directory backing the config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
