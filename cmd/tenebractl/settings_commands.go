package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"tenebractl/internal/settings"
)

const secretMask = "********"

type settingPayload struct {
	Key        string `json:"key"`
	Value      string `json:"value,omitempty"`
	Set        bool   `json:"set"`
	Applicable bool   `json:"applicable"`
}

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and edit the daemon's settings document",
	}

	settingsCmd.AddCommand(newSettingsShowCommand(ctx))
	settingsCmd.AddCommand(newSettingsGetCommand(ctx))
	settingsCmd.AddCommand(newSettingsSetCommand(ctx))
	settingsCmd.AddCommand(newSettingsUnsetCommand(ctx))
	settingsCmd.AddCommand(newSettingsPathCommand(ctx))

	return settingsCmd
}

func newSettingsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var reveal bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List every setting with its current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, exists, err := ctx.loadSettings()
			if err != nil {
				return err
			}

			entries := settingEntries(s, runtime.GOOS, reveal)
			stdout := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(stdout, entries)
			}

			if !exists {
				fmt.Fprintf(stdout, "%s does not exist yet; showing defaults\n", path)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				info, _ := settings.Lookup(e.Key)
				value := e.Value
				if !e.Set {
					value = "(unset)"
				}
				note := ""
				if !e.Applicable {
					note = "not used on " + runtime.GOOS
				}
				rows = append(rows, []string{info.Label(), e.Key, value, note})
			}
			fmt.Fprint(stdout, renderTable([]column{
				{header: "Setting"},
				{header: "Key"},
				{header: "Value", maxWidth: 48},
				{header: "Notes"},
			}, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "Show secret values")
	return cmd
}

func settingEntries(s settings.Settings, goos string, reveal bool) []settingPayload {
	keys := settings.Keys()
	entries := make([]settingPayload, 0, len(keys))
	for _, info := range keys {
		value, present, _ := s.Get(info.Name)
		if info.Secret && value != "" && !reveal {
			value = secretMask
		}
		entries = append(entries, settingPayload{
			Key:        info.Name,
			Value:      value,
			Set:        present,
			Applicable: settings.Applicable(info.Name, goos),
		})
	}
	return entries
}

func newSettingsGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, _, err := ctx.loadSettings()
			if err != nil {
				return err
			}
			value, present, err := s.Get(args[0])
			if err != nil {
				return err
			}
			if !present {
				return fmt.Errorf("%s is not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newSettingsSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting and save the document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]
			s, path, _, err := ctx.loadSettings()
			if err != nil {
				return err
			}
			if err := s.Set(key, raw); err != nil {
				return err
			}
			before := s
			s = s.Normalize(runtime.GOOS)
			if err := s.Validate(); err != nil {
				return err
			}
			if err := settings.Save(path, s); err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			value, _, _ := s.Get(key)
			if info, _ := settings.Lookup(key); info.Secret {
				value = secretMask
			}
			fmt.Fprintf(stdout, "Set %s = %s\n", key, value)
			for _, changed := range coupledChanges(before, s) {
				fmt.Fprintf(stdout, "Also set %s = %s\n", changed.Key, changed.Value)
			}
			if !settings.Applicable(key, runtime.GOOS) {
				fmt.Fprintf(stdout, "Note: the daemon ignores %s on %s\n", key, runtime.GOOS)
			}
			return nil
		},
	}
}

// coupledChanges lists keys that normalization changed as a side effect.
func coupledChanges(before, after settings.Settings) []settingPayload {
	var changed []settingPayload
	for _, info := range settings.Keys() {
		was, _, _ := before.Get(info.Name)
		now, present, _ := after.Get(info.Name)
		if was != now {
			changed = append(changed, settingPayload{Key: info.Name, Value: now, Set: present})
		}
	}
	return changed
}

func newSettingsUnsetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Clear an optional setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, _, err := ctx.loadSettings()
			if err != nil {
				return err
			}
			if err := s.Unset(args[0]); err != nil {
				return err
			}
			if err := settings.Save(path, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])
			return nil
		},
	}
}

func newSettingsPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings document location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.settingsPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
