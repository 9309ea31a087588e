package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tenebractl/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent start and stop attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("limit must be positive, got %d", limit)
			}
			store, err := journal.Open(ctx.configValue().JournalPath())
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			if asJSON {
				if entries == nil {
					entries = []journal.Entry{}
				}
				return writeJSON(stdout, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(stdout, "No lifecycle history recorded")
				return nil
			}
			fmt.Fprint(stdout, renderTable(historyColumns, historyRows(entries)))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")

	cmd.AddCommand(newHistoryPruneCommand(ctx))
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete history entries older than a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive, got %s", olderThan)
			}
			store, err := journal.Open(ctx.configValue().JournalPath())
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d history entries\n", removed)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Age beyond which entries are removed")
	return cmd
}

var historyColumns = []column{
	{header: "ID", align: alignRight},
	{header: "Time"},
	{header: "Action"},
	{header: "Outcome"},
	{header: "PID", align: alignRight},
	{header: "Errno", align: alignRight},
	{header: "Detail", maxWidth: 60},
}

func historyRows(entries []journal.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Action,
			e.Outcome,
			optionalInt(e.PID),
			optionalInt(e.Errno),
			e.Detail,
		})
	}
	return rows
}

func optionalInt(v int) string {
	if v == 0 {
		return "-"
	}
	return strconv.Itoa(v)
}
