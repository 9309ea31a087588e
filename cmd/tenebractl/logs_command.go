package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tenebractl/internal/daemonlog"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Display daemon output captured in daemon.log_file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.Daemon.LogFile
			if path == "" {
				return errors.New("daemon.log_file is not set; daemon output is discarded")
			}
			if lines < 0 {
				return fmt.Errorf("lines must not be negative, got %d", lines)
			}

			var chunk daemonlog.Chunk
			if lines == 0 {
				chunk, err = daemonlog.Since(path, 0)
			} else {
				chunk, err = daemonlog.Last(path, lines)
			}
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			for _, line := range chunk.Lines {
				fmt.Fprintln(stdout, line)
			}
			if !follow {
				if len(chunk.Lines) == 0 {
					fmt.Fprintln(stdout, "No log entries available")
				}
				return nil
			}
			return daemonlog.Follow(cmd.Context(), path, chunk.Offset, 0, func(batch []string) {
				for _, line := range batch {
					fmt.Fprintln(stdout, line)
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow log output")
	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "Number of lines to show (0 for all)")
	return cmd
}
