package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tenebractl/internal/config"
	"tenebractl/internal/daemonctl"
	"tenebractl/internal/journal"
	"tenebractl/internal/logging"
	"tenebractl/internal/settings"
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// ensureLogger builds the diagnostic logger once. Console output goes to
// stderr so command output on stdout stays parseable.
func (c *commandContext) ensureLogger(stderr io.Writer) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		c.logger, c.loggerErr = logging.NewFromConfig(c.configValue(), stderr)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) settingsPath() (string, error) {
	var override string
	if cfg := c.configValue(); cfg != nil {
		override = cfg.Settings.Path
	}
	path, err := settings.ResolvePath(override)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return path, nil
}

// loadSettings reads the daemon settings document. A missing document yields
// the platform defaults and exists=false.
func (c *commandContext) loadSettings() (s settings.Settings, path string, exists bool, err error) {
	path, err = c.settingsPath()
	if err != nil {
		return settings.Settings{}, "", false, err
	}
	s, err = settings.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings.Defaults(runtime.GOOS), path, false, nil
	}
	if err != nil {
		return settings.Settings{}, path, false, err
	}
	return s, path, true, nil
}

// readOnlyController builds a controller for discovery-only commands. It
// neither takes the lock nor records events.
func (c *commandContext) readOnlyController(cmd *cobra.Command) (*daemonctl.Controller, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return daemonctl.New(daemonctl.OptionsFromConfig(cfg), logger), nil
}

// withController runs fn while holding the controller lock, with lifecycle
// events journaled and the settings gate installed ahead of every launch.
func (c *commandContext) withController(cmd *cobra.Command, fn func(*daemonctl.Controller) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	settingsPath, err := c.settingsPath()
	if err != nil {
		return err
	}

	lock, err := daemonctl.AcquireLock(cfg.LockPath())
	if err != nil {
		return err
	}
	defer lock.Release()

	opts := daemonctl.OptionsFromConfig(cfg)
	opts.BeforeLaunch = settingsGate(settingsPath, logger)

	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		logger.Warn("lifecycle journal unavailable", logging.Error(err))
	} else {
		defer store.Close()
		opts.OnEvent = journal.Recorder(store, logger)
	}

	return fn(daemonctl.New(opts, logger))
}

// settingsGate persists the daemon settings before launch, writing defaults
// when the document is missing, and refuses to launch with invalid values.
func settingsGate(path string, logger *slog.Logger) func(context.Context) error {
	return func(ctx context.Context) error {
		s, created, err := settings.EnsureSaved(path)
		if err != nil {
			return fmt.Errorf("save daemon settings: %w", err)
		}
		if created {
			logging.WithContext(ctx, logger).Info("wrote default daemon settings", slog.String("path", path))
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("daemon settings %s: %w", path, err)
		}
		return nil
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
