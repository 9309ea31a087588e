// Package daemonlog reads the file that receives the daemon's stdout and
// stderr.
//
// Reads are bounded: Last keeps a ring of the trailing lines and Since only
// consumes complete lines, so a line the daemon is still writing is returned
// once its newline lands. Follow polls rather than watching the file, and a
// file that shrank (truncated or rotated away) is read again from the start.
package daemonlog
