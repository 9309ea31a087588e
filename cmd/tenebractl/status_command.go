package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tenebractl/internal/certinfo"
	"tenebractl/internal/daemonctl"
	"tenebractl/internal/preflight"
	"tenebractl/internal/settings"
)

type statusPayload struct {
	Daemon   daemonPayload   `json:"daemon"`
	Settings settingsPayload `json:"settings"`
	Checks   []checkPayload  `json:"checks"`
}

type daemonPayload struct {
	Name      string    `json:"name"`
	Running   bool      `json:"running"`
	PID       int       `json:"pid,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

type settingsPayload struct {
	Path         string `json:"path"`
	Exists       bool   `json:"exists"`
	ShareAddress string `json:"share_address,omitempty"`
	Error        string `json:"error,omitempty"`
}

type checkPayload struct {
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Detail   string `json:"detail"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the daemon is running and check its prerequisites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := ctx.readOnlyController(cmd)
			if err != nil {
				return err
			}
			payload := buildStatusPayload(cmd, ctx, ctl)

			stdout := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(stdout, payload)
			}

			colorize := shouldColorize(stdout)
			status := daemonctl.Status{
				Running: payload.Daemon.Running,
				PID:     payload.Daemon.PID,
				Name:    payload.Daemon.Name,
			}
			printSection(stdout, "Daemon", []string{daemonStatusLine(status, colorize)}, colorize)
			fmt.Fprintln(stdout)
			printSection(stdout, "Settings", settingsLines(payload.Settings, colorize), colorize)
			fmt.Fprintln(stdout)

			lines := make([]string, 0, len(payload.Checks))
			for _, check := range payload.Checks {
				lines = append(lines, renderStatusLine(check.Name, statusKindFromSeverity(check.Severity), check.Detail, colorize))
			}
			printSection(stdout, "Preflight", lines, colorize)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}

func buildStatusPayload(cmd *cobra.Command, ctx *commandContext, ctl *daemonctl.Controller) statusPayload {
	status := ctl.Status(cmd.Context())
	payload := statusPayload{
		Daemon: daemonPayload{
			Name:      status.Name,
			Running:   status.Running,
			PID:       status.PID,
			CheckedAt: status.CheckedAt,
		},
	}

	s, path, exists, err := ctx.loadSettings()
	payload.Settings.Path = path
	payload.Settings.Exists = exists
	if err != nil {
		payload.Settings.Error = err.Error()
		s = settings.Settings{}
	} else {
		payload.Settings.ShareAddress = certinfo.ShareAddress(s.Cert, s.Port)
	}

	for _, result := range preflight.RunAll(cmd.Context(), ctx.configValue(), path, s) {
		payload.Checks = append(payload.Checks, checkPayload{
			Name:     result.Name,
			Severity: result.Severity(),
			Detail:   result.Detail,
		})
	}
	return payload
}

func settingsLines(p settingsPayload, colorize bool) []string {
	switch {
	case p.Error != "":
		return []string{renderStatusLine("Document", statusError, p.Error, colorize)}
	case !p.Exists:
		return []string{
			renderStatusLine("Document", statusInfo, p.Path+" (defaults; written on start)", colorize),
			renderStatusLine("Share address", statusInfo, p.ShareAddress, colorize),
		}
	default:
		return []string{
			renderStatusLine("Document", statusOK, p.Path, colorize),
			renderStatusLine("Share address", statusInfo, p.ShareAddress, colorize),
		}
	}
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a line whenever the daemon starts or stops",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := ctx.readOnlyController(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("interval") {
				interval = ctx.configValue().WatchInterval()
			}
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}

			stdout := cmd.OutOrStdout()
			ctl.Watch(cmd.Context(), interval, func(status daemonctl.Status) {
				fmt.Fprintln(stdout, watchLine(status))
			})
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Polling interval")
	return cmd
}

func watchLine(status daemonctl.Status) string {
	ts := status.CheckedAt.Format(time.RFC3339)
	if status.Running {
		return fmt.Sprintf("%s %s running (pid %d)", ts, status.Name, status.PID)
	}
	return fmt.Sprintf("%s %s not running", ts, status.Name)
}
