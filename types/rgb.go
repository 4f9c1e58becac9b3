package types

// Levels is the count of discrete brightness and frame-rate steps.
const Levels = 16

// RawMax is the largest raw knob sample the sensor reports.
const RawMax = 0x7fff

// Channel indices into ChannelLevels.
const (
	Red   = 0
	Green = 1
	Blue  = 2
)

// ChannelNames are the display labels, indexed by channel.
var ChannelNames = [3]string{"red", "green", "blue"}

// Level is a quantized step in [0, Levels-1].
type Level uint32

// Valid reports whether l is within [0, Levels-1].
func (l Level) Valid() bool { return l < Levels }

// ChannelLevels holds the target level per channel (red, green, blue).
type ChannelLevels [3]Level

// Valid reports whether every channel level is in range.
func (c ChannelLevels) Valid() bool {
	for _, l := range c {
		if !l.Valid() {
			return false
		}
	}
	return true
}

// RefreshRate is the number of full three-channel sweeps per second.
// It must never be zero.
type RefreshRate uint32

const (
	// FrameRateStep is the rate increment per knob level; also the floor.
	FrameRateStep RefreshRate = 10
	// MinFrameRate is the rate selected at knob level 0.
	MinFrameRate = FrameRateStep
	// MaxFrameRate is the rate selected at knob level Levels-1.
	MaxFrameRate = RefreshRate(Levels-1)*FrameRateStep + FrameRateStep
	// DefaultFrameRate is the UI's frame rate before the first knob reading.
	DefaultFrameRate RefreshRate = 100
)

// FrameRateFor maps a knob level to a refresh rate (level*10 + 10).
func FrameRateFor(l Level) RefreshRate {
	return RefreshRate(l)*FrameRateStep + FrameRateStep
}

// LevelFor inverts FrameRateFor. Rates below the floor map to level 0.
func LevelFor(r RefreshRate) Level {
	if r < FrameRateStep {
		return 0
	}
	return Level((r - FrameRateStep) / FrameRateStep)
}

// Settings is the pair consumed by the pulse generator on every sweep.
type Settings struct {
	Levels    ChannelLevels `json:"levels" yaml:"levels"`
	FrameRate RefreshRate   `json:"frame_rate" yaml:"frame_rate"`
}

// DefaultSettings is all channels at maximum and a moderate frame rate.
func DefaultSettings() Settings {
	return Settings{
		Levels:    ChannelLevels{Levels - 1, Levels - 1, Levels - 1},
		FrameRate: DefaultFrameRate,
	}
}

// Snapshot is the retained telemetry published on rgbcal/state.
type Snapshot struct {
	Settings
	Target  string `json:"target"`
	Seq     uint32 `json:"seq"`
	TSms    int64  `json:"ts_ms"`
	Session string `json:"session,omitempty"` // per-run ID, if the host assigns one
}
