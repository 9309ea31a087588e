package preflight

import (
	"context"
	"path/filepath"

	"tenebractl/internal/config"
	"tenebractl/internal/deps"
	"tenebractl/internal/settings"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Optional checks warn instead of failing.
	Optional bool
}

// Severity classifies the result for display.
func (r Result) Severity() string {
	switch {
	case r.Passed:
		return "ok"
	case r.Optional:
		return "warn"
	default:
		return "error"
	}
}

// RunAll executes every check for cfg and the daemon settings s stored at
// settingsPath.
func RunAll(ctx context.Context, cfg *config.Config, settingsPath string, s settings.Settings) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(ctx, cfg) {
		detail := status.Detail
		if status.Available {
			detail = status.Path
		}
		results = append(results, Result{
			Name:     status.Name,
			Passed:   status.Available,
			Detail:   detail,
			Optional: status.Optional,
		})
	}

	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	results = append(results, CheckWritableParent("Settings directory", filepath.Dir(settingsPath)))

	if s.Cert != "" {
		results = append(results, CheckReadableFile("Certificate", s.Cert))
	}
	if s.Key != "" {
		results = append(results, CheckReadableFile("Private key", s.Key))
	}
	return results
}

// CheckSystemDeps evaluates the executables the controller launches.
func CheckSystemDeps(_ context.Context, cfg *config.Config) []deps.Status {
	return deps.CheckBinaries([]deps.Requirement{
		{
			Name:        "Daemon",
			Command:     cfg.Daemon.Name,
			Description: "Launched by tenebractl start",
		},
	})
}

// Failed returns the results that did not pass and are not optional.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, r)
		}
	}
	return failed
}
