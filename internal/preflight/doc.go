// Package preflight provides readiness checks for the executables, paths and
// files the tenebra daemon depends on.
//
// The CLI status command renders every check. The start gate only refuses to
// launch on the settings checks; a missing daemon binary is reported by the
// launch itself with its errno.
package preflight
