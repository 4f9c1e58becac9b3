package rgbcal

import (
	"context"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bradlet/hw-rgbcal/bus"
	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/services/hal"
	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/logx"
)

// Config is the runtime form of types.RGBCalConfig.
type Config struct {
	PollInterval time.Duration
	// InitialFrameRate seeds the store and the pulse generator's first tick.
	InitialFrameRate types.RefreshRate
	InitialLevels    types.ChannelLevels
	// UIFrameRate seeds the UI's shadow before the first knob reading.
	UIFrameRate types.RefreshRate
	Names       [3]string
}

// DefaultConfig is all channels at maximum.
func DefaultConfig() Config {
	d := types.DefaultSettings()
	return Config{
		PollInterval:     DefaultPollInterval,
		InitialFrameRate: 50,
		InitialLevels:    d.Levels,
		UIFrameRate:      d.FrameRate,
		Names:            types.ChannelNames,
	}
}

// ConfigFrom fills zero or nil fields of c from DefaultConfig.
func ConfigFrom(c types.RGBCalConfig) Config {
	out := DefaultConfig()
	if c.PollIntervalMs > 0 {
		out.PollInterval = time.Duration(c.PollIntervalMs) * time.Millisecond
	}
	if c.InitialFrameRate > 0 {
		out.InitialFrameRate = c.InitialFrameRate
	}
	if c.InitialLevels != nil {
		out.InitialLevels = *c.InitialLevels
	}
	if c.UIFrameRate > 0 {
		out.UIFrameRate = c.UIFrameRate
	}
	return out
}

// Deps are the collaborators Run needs. Console, Conn, Session and
// Sleeper are optional.
type Deps struct {
	Knob    hal.Sensor
	ButtonA hal.Button
	ButtonB hal.Button
	LEDs    [3]hal.Output
	Console io.Writer
	Conn    *bus.Connection
	Session string
	Sleeper Sleeper
}

// DepsFromBoard takes the devices from an opened board.
func DepsFromBoard(b *hal.Board) Deps {
	return Deps{Knob: b.Knob, ButtonA: b.ButtonA, ButtonB: b.ButtonB, LEDs: b.LEDs}
}

// Run calibrates the knob, then runs the UI and pulse generator loops
// together. Neither loop ends on its own; whichever returns first ends
// Run with errcode.LoopExited.
func Run(ctx context.Context, cfg Config, d Deps) error {
	log := logx.Named("rgbcal")

	store, err := NewStore(types.Settings{Levels: cfg.InitialLevels, FrameRate: cfg.InitialFrameRate})
	if err != nil {
		return errcode.Wrap(errcode.Of(err), "rgbcal store", err)
	}

	log.Info("calibrating knob")
	knob, err := NewKnob(ctx, d.Knob)
	if err != nil {
		return errcode.Wrap(errcode.NotCalibrated, "rgbcal knob", err)
	}

	names := cfg.Names
	if names == ([3]string{}) {
		names = types.ChannelNames
	}
	ui := NewUI(UIConfig{
		Knob:         knob,
		ButtonA:      d.ButtonA,
		ButtonB:      d.ButtonB,
		Store:        store,
		Display:      NewDisplay(d.Console, names),
		Telemetry:    d.Conn,
		Session:      d.Session,
		Sleeper:      d.Sleeper,
		PollInterval: cfg.PollInterval,
		Initial:      types.Settings{Levels: cfg.InitialLevels, FrameRate: cfg.UIFrameRate},
	})
	rgb := NewRGB(d.LEDs, store, cfg.InitialFrameRate, d.Sleeper)

	log.Info("running", "poll_ms", cfg.PollInterval.Milliseconds(), "frame_rate", uint32(cfg.InitialFrameRate))

	// Each loop's return cancels the other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return exited("ui", ui.Run(gctx)) })
	g.Go(func() error { return exited("rgb", rgb.Run(gctx)) })
	err = g.Wait()
	log.Error("loop exited", "err", err)
	return err
}

func exited(loop string, err error) error {
	return errcode.Wrap(errcode.LoopExited, loop, err)
}
