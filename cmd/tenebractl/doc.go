// Package main hosts the tenebractl CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into lifecycle calls on
// internal/daemonctl, edits of the daemon's settings document, and reads of
// the lifecycle journal. Configuration resolution, logger construction, and
// the cross-process controller lock live in context.go so subcommands only
// describe what they print.
//
// main intercepts the hidden launch-helper argument before Cobra parses
// anything; the controller re-executes this binary in that mode to start the
// daemon.
package main
