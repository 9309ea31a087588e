package main

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"

	"tenebractl/internal/daemonctl"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the daemon unless it is already running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withController(cmd, func(ctl *daemonctl.Controller) error {
				state, result, err := ctl.EnsureStarted(cmd.Context())
				if err != nil {
					return describeStartError(ctl.Name(), err)
				}
				switch state {
				case daemonctl.StartStateAlreadyRunning:
					fmt.Fprintf(stdout, "Daemon already running%s\n", pidSuffix(result.PID))
				default:
					fmt.Fprintf(stdout, "Daemon started%s\n", pidSuffix(result.PID))
				}
				return nil
			})
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon and wait for it to exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withController(cmd, func(ctl *daemonctl.Controller) error {
				result, err := ctl.Stop(cmd.Context())
				if errors.Is(err, daemonctl.ErrNotRunning) {
					fmt.Fprintln(stdout, "Daemon is not running")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Daemon stopped%s\n", pidSuffix(result.PID))
				return nil
			})
		},
	}

	restartCmd := &cobra.Command{
		Use:   "restart",
		Short: "Stop the daemon if running, then start it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withController(cmd, func(ctl *daemonctl.Controller) error {
				result, err := ctl.Restart(cmd.Context())
				if result.WasRunning {
					fmt.Fprintf(stdout, "Daemon stopped%s\n", pidSuffix(result.Stop.PID))
				}
				if err != nil {
					return describeStartError(ctl.Name(), err)
				}
				fmt.Fprintf(stdout, "Daemon restarted%s\n", pidSuffix(result.Start.PID))
				return nil
			})
		},
	}

	return []*cobra.Command{startCmd, stopCmd, restartCmd}
}

// describeStartError adds a hint for the launch failures users can fix.
func describeStartError(name string, err error) error {
	var launchErr *daemonctl.LaunchError
	if !errors.As(err, &launchErr) {
		return err
	}
	switch {
	case errors.Is(err, syscall.ENOENT) && launchErr.Stage != daemonctl.StageStdio:
		return fmt.Errorf("%w; is %q installed and on PATH?", err, name)
	case errors.Is(err, syscall.EACCES):
		return fmt.Errorf("%w; check permissions on %q and the daemon log file", err, name)
	default:
		return err
	}
}

// pidSuffix is empty when the pid is unknown, as for service starts on windows.
func pidSuffix(pid int) string {
	if pid <= 0 {
		return ""
	}
	return fmt.Sprintf(" (pid %d)", pid)
}
