// Package config loads, normalizes, and validates tenebractl configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TENEBRACTL_DAEMON_NAME. The Config type centralizes every knob the
// lifecycle controller and CLI need: which daemon to manage, how long to wait
// for it, where the daemon settings document lives, and how to log.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
