package config

const (
	defaultDaemonName           = "tenebra"
	defaultServiceName          = "Tenebra"
	defaultPollIntervalMillis   = 10
	defaultStopTimeoutSeconds   = 10
	defaultStartTimeoutSeconds  = 5
	defaultWatchIntervalSeconds = 2
	defaultStateDir             = "~/.local/state/tenebractl"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogMaxSizeMB         = 10
	defaultLogMaxBackups        = 3
	defaultLogMaxAgeDays        = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Daemon: Daemon{
			Name:                 defaultDaemonName,
			ServiceName:          defaultServiceName,
			PollIntervalMillis:   defaultPollIntervalMillis,
			StopTimeoutSeconds:   defaultStopTimeoutSeconds,
			StartTimeoutSeconds:  defaultStartTimeoutSeconds,
			WatchIntervalSeconds: defaultWatchIntervalSeconds,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
