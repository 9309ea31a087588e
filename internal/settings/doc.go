// Package settings reads and writes the tenebra daemon's flat TOML settings
// document.
//
// The controller treats the document as a gate: Start refuses to launch
// until EnsureSaved has confirmed the file exists and parses. The package
// also knows each key's type, default, and which platforms honour it, so the
// CLI can edit the file without understanding the daemon itself.
package settings
