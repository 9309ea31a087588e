package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDaemon(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDaemon() error {
	if strings.ContainsAny(c.Daemon.Name, `/\`) {
		return fmt.Errorf("daemon.name must be a bare executable name, got %q", c.Daemon.Name)
	}
	if c.Daemon.PollIntervalMillis < 1 {
		return errors.New("daemon.poll_interval_ms must be positive")
	}
	if c.Daemon.StopTimeoutSeconds < 1 {
		return errors.New("daemon.stop_timeout_seconds must be positive")
	}
	if c.Daemon.StartTimeoutSeconds < 1 {
		return errors.New("daemon.start_timeout_seconds must be positive")
	}
	if c.Daemon.WatchIntervalSeconds < 1 {
		return errors.New("daemon.watch_interval_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging rotation limits must not be negative")
	}
	return nil
}
