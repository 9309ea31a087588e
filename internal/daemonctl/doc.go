// Package daemonctl finds, launches, and stops the tenebra daemon as an
// operating-system process.
//
// Discovery matches the process table by name and owner and never returns
// the calling process. Start launches the daemon detached from the caller's
// session and reports synchronously whether stdio redirection and image
// replacement succeeded. Stop sends a termination request and returns only
// once the process has verifiably exited or the stop timeout elapses.
//
// A Controller is not safe for concurrent lifecycle calls; CLI invocations
// serialize through AcquireLock.
package daemonctl
