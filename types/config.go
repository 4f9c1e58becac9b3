package types

// RGBCalConfig is supplied on topic "config/rgbcal".
type RGBCalConfig struct {
	PollIntervalMs   uint32        `json:"poll_interval_ms" yaml:"poll_interval_ms"`
	InitialFrameRate RefreshRate   `json:"initial_frame_rate" yaml:"initial_frame_rate"`
	// InitialLevels is nil for all channels at maximum; {0,0,0} starts dark.
	InitialLevels *ChannelLevels `json:"initial_levels,omitempty" yaml:"initial_levels,omitempty"`
	UIFrameRate      RefreshRate   `json:"ui_frame_rate" yaml:"ui_frame_rate"`
}

// HeartbeatConfig is supplied on topic "config/heartbeat".
type HeartbeatConfig struct {
	IntervalS uint32 `json:"interval" yaml:"interval"`
}

// DeviceConfig is the full per-device configuration document.
type DeviceConfig struct {
	HAL       HALConfig       `json:"hal" yaml:"hal"`
	RGBCal    RGBCalConfig    `json:"rgbcal" yaml:"rgbcal"`
	Heartbeat HeartbeatConfig `json:"heartbeat" yaml:"heartbeat"`
}
