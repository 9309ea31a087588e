package settings

import (
	"errors"
	"fmt"
)

// Capture APIs accepted by windows_capture_api.
const (
	CaptureDXGI = "dxgi"
	CaptureWGC  = "wgc"
)

// Validate checks ranges the daemon enforces.
func (s Settings) Validate() error {
	if s.TargetBitrate < 50 || s.TargetBitrate > 12000 {
		return fmt.Errorf("target_bitrate must be between 50 and 12000, got %d", s.TargetBitrate)
	}
	if s.VBVBufCapacity < 1 || s.VBVBufCapacity > 1000 {
		return fmt.Errorf("vbv_buf_capacity must be between 1 and 1000, got %d", s.VBVBufCapacity)
	}
	if s.WindowsMonitorIndex < -1 || s.WindowsMonitorIndex > 65535 {
		return fmt.Errorf("windows_monitor_index must be between -1 and 65535, got %d", s.WindowsMonitorIndex)
	}
	switch s.WindowsCaptureAPI {
	case CaptureDXGI, CaptureWGC:
	default:
		return fmt.Errorf("windows_capture_api must be %q or %q, got %q", CaptureDXGI, CaptureWGC, s.WindowsCaptureAPI)
	}
	if s.EndX != nil && *s.EndX < s.StartX {
		return errors.New("endx must not be less than startx")
	}
	if s.EndY != nil && *s.EndY < s.StartY {
		return errors.New("endy must not be less than starty")
	}
	return nil
}

// Normalize applies the couplings between encoder options on goos: hardware
// encoding forces chroma downsampling, VA-API conversion needs hardware
// encoding, and VideoToolbox disables bandwidth estimation.
func (s Settings) Normalize(goos string) Settings {
	if s.HWEncode {
		s.FullChroma = false
		if goos == "darwin" {
			s.NoBWE = true
		}
	}
	if !s.HWEncode || goos == "darwin" || goos == "windows" {
		s.VAPostProc = false
	}
	return s
}
