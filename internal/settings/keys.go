package settings

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the TOML type a key holds.
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindUint16 Kind = "u16"
	KindUint32 Kind = "u32"
)

// KeyInfo describes one settings key.
type KeyInfo struct {
	Name        string
	Kind        Kind
	Optional    bool
	Secret      bool
	Description string
	// Platforms lists the GOOS values that honour the key. Empty means all.
	Platforms []string
	get       func(*Settings) (string, bool)
	set       func(*Settings, string) error
	unset     func(*Settings)
}

// Label returns the key as a human-readable title.
func (k KeyInfo) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(k.Name, "_", " "))
}

var (
	notDarwin   = []string{"linux", "freebsd", "openbsd", "netbsd", "windows"}
	windowsOnly = []string{"windows"}
	unixLike    = []string{"linux", "freebsd", "openbsd", "netbsd"}
)

var registry = []KeyInfo{
	stringKey("password", "Password clients must present", func(s *Settings) *string { return &s.Password }, true),
	uint16Key("port", "Listening port", func(s *Settings) *uint16 { return &s.Port }),
	{
		Name: "target_bitrate", Kind: KindUint32, Description: "Target bitrate in kbit/s",
		get: func(s *Settings) (string, bool) { return strconv.FormatUint(uint64(s.TargetBitrate), 10), true },
		set: func(s *Settings, raw string) error {
			v, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return err
			}
			s.TargetBitrate = uint32(v)
			return nil
		},
	},
	{
		Name: "windows_monitor_index", Kind: KindInt, Description: "Monitor to capture (-1 = primary monitor)", Platforms: windowsOnly,
		get: func(s *Settings) (string, bool) { return strconv.Itoa(s.WindowsMonitorIndex), true },
		set: func(s *Settings, raw string) error {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			s.WindowsMonitorIndex = v
			return nil
		},
	},
	{
		Name: "windows_capture_api", Kind: KindString, Description: "Screen capture API (dxgi or wgc)", Platforms: windowsOnly,
		get: func(s *Settings) (string, bool) { return s.WindowsCaptureAPI, true },
		set: func(s *Settings, raw string) error {
			raw = strings.ToLower(raw)
			if raw != CaptureDXGI && raw != CaptureWGC {
				return fmt.Errorf("expected %q or %q", CaptureDXGI, CaptureWGC)
			}
			s.WindowsCaptureAPI = raw
			return nil
		},
	},
	withPlatforms(uint16Key("startx", "X coordinate to stream from", func(s *Settings) *uint16 { return &s.StartX }), notDarwin),
	withPlatforms(uint16Key("starty", "Y coordinate to stream from", func(s *Settings) *uint16 { return &s.StartY }), notDarwin),
	withPlatforms(optionalUint16Key("endx", "X coordinate to stop streaming at", func(s *Settings) **uint16 { return &s.EndX }), notDarwin),
	withPlatforms(optionalUint16Key("endy", "Y coordinate to stop streaming at", func(s *Settings) **uint16 { return &s.EndY }), notDarwin),
	uint16Key("vbv_buf_capacity", "Video buffering verifier capacity in ms", func(s *Settings) *uint16 { return &s.VBVBufCapacity }),
	boolKey("tcp_upnp", "Forward ICE-TCP ports with UPnP", func(s *Settings) *bool { return &s.TCPUPnP }),
	withPlatforms(boolKey("sound_forwarding", "Forward system audio", func(s *Settings) *bool { return &s.SoundForwarding }), notDarwin),
	boolKey("hwencode", "Hardware-accelerated video encoding", func(s *Settings) *bool { return &s.HWEncode }),
	withPlatforms(boolKey("vapostproc", "VA-API video conversion", func(s *Settings) *bool { return &s.VAPostProc }), unixLike),
	boolKey("full_chroma", "Encode without chroma downsampling", func(s *Settings) *bool { return &s.FullChroma }),
	boolKey("no_bwe", "Disable bandwidth estimation", func(s *Settings) *bool { return &s.NoBWE }),
	stringKey("cert", "Certificate chain file (PEM)", func(s *Settings) *string { return &s.Cert }, false),
	stringKey("key", "Private key file (PEM)", func(s *Settings) *string { return &s.Key }, false),
}

// Keys lists every known key in document order.
func Keys() []KeyInfo {
	return append([]KeyInfo(nil), registry...)
}

// Lookup returns the description of key.
func Lookup(key string) (KeyInfo, bool) {
	for _, info := range registry {
		if info.Name == key {
			return info, true
		}
	}
	return KeyInfo{}, false
}

// Applicable reports whether the daemon honours key on goos.
func Applicable(key, goos string) bool {
	info, ok := Lookup(key)
	if !ok {
		return false
	}
	if len(info.Platforms) == 0 {
		return true
	}
	for _, p := range info.Platforms {
		if p == goos {
			return true
		}
	}
	return false
}

// Get renders key's value. The second result is false for an unset optional key.
func (s *Settings) Get(key string) (string, bool, error) {
	info, ok := Lookup(key)
	if !ok {
		return "", false, fmt.Errorf("unknown settings key %q", key)
	}
	value, present := info.get(s)
	return value, present, nil
}

// Set parses raw according to key's type and stores it.
func (s *Settings) Set(key, raw string) error {
	info, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("unknown settings key %q", key)
	}
	if err := info.set(s, strings.TrimSpace(raw)); err != nil {
		return fmt.Errorf("%s: invalid %s value %q: %w", key, info.Kind, raw, err)
	}
	return nil
}

// Unset clears an optional key.
func (s *Settings) Unset(key string) error {
	info, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("unknown settings key %q", key)
	}
	if !info.Optional {
		return fmt.Errorf("%s is required and cannot be unset", key)
	}
	info.unset(s)
	return nil
}

func withPlatforms(info KeyInfo, platforms []string) KeyInfo {
	info.Platforms = platforms
	return info
}

func stringKey(name, desc string, field func(*Settings) *string, secret bool) KeyInfo {
	return KeyInfo{
		Name: name, Kind: KindString, Description: desc, Secret: secret,
		get: func(s *Settings) (string, bool) { return *field(s), true },
		set: func(s *Settings, raw string) error {
			*field(s) = raw
			return nil
		},
	}
}

func boolKey(name, desc string, field func(*Settings) *bool) KeyInfo {
	return KeyInfo{
		Name: name, Kind: KindBool, Description: desc,
		get: func(s *Settings) (string, bool) { return strconv.FormatBool(*field(s)), true },
		set: func(s *Settings, raw string) error {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			*field(s) = v
			return nil
		},
	}
}

func uint16Key(name, desc string, field func(*Settings) *uint16) KeyInfo {
	return KeyInfo{
		Name: name, Kind: KindUint16, Description: desc,
		get: func(s *Settings) (string, bool) { return strconv.FormatUint(uint64(*field(s)), 10), true },
		set: func(s *Settings, raw string) error {
			v, err := strconv.ParseUint(raw, 10, 16)
			if err != nil {
				return err
			}
			*field(s) = uint16(v)
			return nil
		},
	}
}

func optionalUint16Key(name, desc string, field func(*Settings) **uint16) KeyInfo {
	return KeyInfo{
		Name: name, Kind: KindUint16, Description: desc, Optional: true,
		get: func(s *Settings) (string, bool) {
			if p := *field(s); p != nil {
				return strconv.FormatUint(uint64(*p), 10), true
			}
			return "", false
		},
		set: func(s *Settings, raw string) error {
			v, err := strconv.ParseUint(raw, 10, 16)
			if err != nil {
				return err
			}
			u := uint16(v)
			*field(s) = &u
			return nil
		},
		unset: func(s *Settings) { *field(s) = nil },
	}
}
