// Package proctable enumerates the processes visible to the current user.
//
// Each platform supplies its own Source: linux scans /proc, darwin asks the
// kernel through sysctl, the remaining unix systems parse ps(1), and windows
// walks a Toolhelp32 snapshot. Callers match entries by name with Match,
// which applies the platform's comm truncation and case rules.
package proctable
