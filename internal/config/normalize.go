package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeDaemon()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeDaemon() {
	if value, ok := os.LookupEnv("TENEBRACTL_DAEMON_NAME"); ok && strings.TrimSpace(value) != "" {
		c.Daemon.Name = value
	}
	c.Daemon.Name = strings.TrimSpace(c.Daemon.Name)
	if c.Daemon.Name == "" {
		c.Daemon.Name = defaultDaemonName
	}
	c.Daemon.ServiceName = strings.TrimSpace(c.Daemon.ServiceName)
	if c.Daemon.ServiceName == "" {
		c.Daemon.ServiceName = defaultServiceName
	}
	if c.Daemon.PollIntervalMillis == 0 {
		c.Daemon.PollIntervalMillis = defaultPollIntervalMillis
	}
	if c.Daemon.StopTimeoutSeconds == 0 {
		c.Daemon.StopTimeoutSeconds = defaultStopTimeoutSeconds
	}
	if c.Daemon.StartTimeoutSeconds == 0 {
		c.Daemon.StartTimeoutSeconds = defaultStartTimeoutSeconds
	}
	if c.Daemon.WatchIntervalSeconds == 0 {
		c.Daemon.WatchIntervalSeconds = defaultWatchIntervalSeconds
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Settings.Path = strings.TrimSpace(c.Settings.Path); c.Settings.Path != "" {
		if c.Settings.Path, err = expandPath(c.Settings.Path); err != nil {
			return fmt.Errorf("settings.path: %w", err)
		}
	}
	if c.Daemon.LogFile = strings.TrimSpace(c.Daemon.LogFile); c.Daemon.LogFile != "" {
		if c.Daemon.LogFile, err = expandPath(c.Daemon.LogFile); err != nil {
			return fmt.Errorf("daemon.log_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	if value, ok := os.LookupEnv("TENEBRACTL_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.File = strings.TrimSpace(c.Logging.File); c.Logging.File != "" {
		var err error
		if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
