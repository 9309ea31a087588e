// Package journal records daemon lifecycle actions in a SQLite database.
//
// Every start and stop the controller performs, successful or not, becomes
// one row keyed by time and, for launches, by the launch identifier. The
// history command reads the rows back newest first.
package journal
