package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
)

// Settings mirrors the daemon's config.toml.
type Settings struct {
	Password            string  `toml:"password"`
	Port                uint16  `toml:"port"`
	TargetBitrate       uint32  `toml:"target_bitrate"`
	WindowsMonitorIndex int     `toml:"windows_monitor_index"`
	WindowsCaptureAPI   string  `toml:"windows_capture_api"`
	StartX              uint16  `toml:"startx"`
	StartY              uint16  `toml:"starty"`
	EndX                *uint16 `toml:"endx,omitempty"`
	EndY                *uint16 `toml:"endy,omitempty"`
	VBVBufCapacity      uint16  `toml:"vbv_buf_capacity"`
	TCPUPnP             bool    `toml:"tcp_upnp"`
	SoundForwarding     bool    `toml:"sound_forwarding"`
	HWEncode            bool    `toml:"hwencode"`
	VAPostProc          bool    `toml:"vapostproc"`
	FullChroma          bool    `toml:"full_chroma"`
	NoBWE               bool    `toml:"no_bwe"`
	Cert                string  `toml:"cert"`
	Key                 string  `toml:"key"`
}

// legacyKeys holds keys older daemon releases wrote.
type legacyKeys struct {
	HWEncode *bool `toml:"hwencode"`
	VAAPI    *bool `toml:"vaapi"`
}

// Defaults returns the values the daemon assumes on goos.
func Defaults(goos string) Settings {
	return Settings{
		Port:                8080,
		TargetBitrate:       4000,
		WindowsMonitorIndex: -1,
		WindowsCaptureAPI:   CaptureDXGI,
		VBVBufCapacity:      120,
		TCPUPnP:             true,
		SoundForwarding:     goos != "darwin",
	}
}

// DefaultPath returns the settings document location the daemon reads on goos.
func DefaultPath(goos string) (string, error) {
	switch goos {
	case "windows":
		return `C:\tenebra\config.toml`, nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", "tenebra", "config.toml"), nil
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "tenebra", "config.toml"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, ".config", "tenebra", "config.toml"), nil
	}
}

// ResolvePath returns override when set, otherwise the platform default.
func ResolvePath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return DefaultPath(runtime.GOOS)
}

// Load parses the document at path on top of the platform defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data, runtime.GOOS)
}

// Parse decodes a settings document. Missing keys take goos defaults and a
// legacy vaapi key stands in for hwencode.
func Parse(data []byte, goos string) (Settings, error) {
	s := Defaults(goos)
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	var legacy legacyKeys
	if err := toml.Unmarshal(data, &legacy); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if legacy.HWEncode == nil && legacy.VAAPI != nil {
		s.HWEncode = *legacy.VAAPI
	}
	return s, nil
}

// Save writes s to path atomically under an advisory lock on path+".lock".
func Save(path string, s Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock settings: %w", err)
	}
	defer lock.Unlock()

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod settings: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// EnsureSaved guarantees a parseable document exists at path, writing the
// platform defaults when the file is missing. It reports whether the file was
// created.
func EnsureSaved(path string) (Settings, bool, error) {
	s, err := Load(path)
	if err == nil {
		return s, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, false, err
	}
	s = Defaults(runtime.GOOS)
	if err := Save(path, s); err != nil {
		return Settings{}, false, err
	}
	return s, true, nil
}
