package main

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"tenebractl/internal/settings"
)

func TestSettingsSetGetUnset(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.cfg.Settings.Path

	out, _, err := runCLI(t, []string{"settings", "path"}, env.configPath)
	if err != nil {
		t.Fatalf("settings path: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Fatalf("settings path = %q, want %q", strings.TrimSpace(out), path)
	}

	out, _, err = runCLI(t, []string{"settings", "set", "port", "9443"}, env.configPath)
	if err != nil {
		t.Fatalf("settings set: %v", err)
	}
	requireContains(t, out, "Set port = 9443")

	s, err := settings.Load(path)
	if err != nil {
		t.Fatalf("load saved settings: %v", err)
	}
	if s.Port != 9443 {
		t.Fatalf("saved port = %d, want 9443", s.Port)
	}

	out, _, err = runCLI(t, []string{"settings", "get", "port"}, env.configPath)
	if err != nil {
		t.Fatalf("settings get: %v", err)
	}
	if strings.TrimSpace(out) != "9443" {
		t.Fatalf("settings get port = %q", out)
	}

	if _, _, err := runCLI(t, []string{"settings", "set", "endx", "1920"}, env.configPath); err != nil {
		t.Fatalf("settings set endx: %v", err)
	}
	out, _, err = runCLI(t, []string{"settings", "unset", "endx"}, env.configPath)
	if err != nil {
		t.Fatalf("settings unset: %v", err)
	}
	requireContains(t, out, "Unset endx")
	if _, _, err := runCLI(t, []string{"settings", "get", "endx"}, env.configPath); err == nil {
		t.Fatal("expected get of unset optional key to fail")
	}

	if _, _, err := runCLI(t, []string{"settings", "unset", "port"}, env.configPath); err == nil {
		t.Fatal("expected unset of required key to fail")
	}
}

func TestSettingsSetRejectsInvalidValues(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"settings", "set", "target_bitrate", "20000"}, env.configPath); err == nil {
		t.Fatal("expected out-of-range bitrate to fail")
	}
	if _, _, err := runCLI(t, []string{"settings", "set", "port", "not-a-port"}, env.configPath); err == nil {
		t.Fatal("expected unparseable port to fail")
	}
	if _, _, err := runCLI(t, []string{"settings", "set", "nonsense", "1"}, env.configPath); err == nil {
		t.Fatal("expected unknown key to fail")
	}
	if _, err := os.Stat(env.cfg.Settings.Path); !os.IsNotExist(err) {
		t.Fatalf("rejected edits must not create the document, stat err=%v", err)
	}
}

func TestSettingsSetReportsCoupledChanges(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"settings", "set", "full_chroma", "true"}, env.configPath); err != nil {
		t.Fatalf("set full_chroma: %v", err)
	}
	out, _, err := runCLI(t, []string{"settings", "set", "hwencode", "true"}, env.configPath)
	if err != nil {
		t.Fatalf("set hwencode: %v", err)
	}
	requireContains(t, out, "Also set full_chroma = false")
}

func TestSettingsShowMasksSecrets(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"settings", "set", "password", "hunter2"}, env.configPath); err != nil {
		t.Fatalf("set password: %v", err)
	}

	out, _, err := runCLI(t, []string{"settings", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("settings show: %v", err)
	}
	if strings.Contains(out, "hunter2") {
		t.Fatalf("show leaked the password: %q", out)
	}
	requireContains(t, out, secretMask)
	requireContains(t, out, "Target Bitrate")

	out, _, err = runCLI(t, []string{"settings", "show", "--json", "--reveal"}, env.configPath)
	if err != nil {
		t.Fatalf("settings show --json: %v", err)
	}
	var entries []settingPayload
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode show json: %v\n%s", err, out)
	}
	found := false
	for _, e := range entries {
		if e.Key == "password" {
			found = true
			if e.Value != "hunter2" {
				t.Fatalf("reveal should show password, got %q", e.Value)
			}
		}
	}
	if !found {
		t.Fatal("password key missing from json output")
	}
}

func TestSettingsShowDefaultsWhenMissing(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"settings", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("settings show: %v", err)
	}
	requireContains(t, out, "does not exist yet")
	requireContains(t, out, "8080")
}
