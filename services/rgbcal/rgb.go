package rgbcal

import (
	"context"
	"time"

	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/services/hal"
	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/timex"
)

// Phase is one channel's slice of a sweep.
type Phase struct {
	On  time.Duration
	Off time.Duration
}

// TickTime is the smallest unit of a sweep at rate r: one second split
// over three channels of types.Levels ticks, truncated to whole µs.
func TickTime(r types.RefreshRate) time.Duration {
	if r == 0 {
		panic(errcode.ZeroFrameRate)
	}
	return timex.Micros(timex.PeriodUs(3 * types.Levels * uint32(r)))
}

// SweepPlan returns the on/off durations each channel gets for s.
func SweepPlan(s types.Settings) [3]Phase {
	tick := TickTime(s.FrameRate)
	var p [3]Phase
	for i, l := range s.Levels {
		p[i] = Phase{
			On:  time.Duration(l) * tick,
			Off: time.Duration(types.Levels-l) * tick,
		}
	}
	return p
}

// RGB drives the three LED channels one after another. Each channel is
// active for level ticks, then all channels idle for the remaining ticks.
type RGB struct {
	leds  [3]hal.Output
	store *Store
	sleep Sleeper

	// Shadow of the store for the current sweep.
	levels types.ChannelLevels
	tick   time.Duration
}

// NewRGB starts with all channels dark and the tick for initialRate.
func NewRGB(leds [3]hal.Output, store *Store, initialRate types.RefreshRate, sleep Sleeper) *RGB {
	if sleep == nil {
		sleep = TimerSleeper
	}
	return &RGB{
		leds:  leds,
		store: store,
		sleep: sleep,
		tick:  TickTime(initialRate),
	}
}

// Step runs one channel's slice. Zero-length phases are skipped.
func (r *RGB) Step(ctx context.Context, led int) error {
	level := r.levels[led]
	if level > 0 {
		r.leds[led].SetActive()
		err := r.sleep.Sleep(ctx, time.Duration(level)*r.tick)
		r.leds[led].SetInactive()
		if err != nil {
			return err
		}
	}
	if off := types.Levels - level; off > 0 {
		return r.sleep.Sleep(ctx, time.Duration(off)*r.tick)
	}
	return nil
}

// Sweep reads the store once and steps every channel with that copy.
func (r *RGB) Sweep(ctx context.Context) error {
	s := r.store.Read()
	r.levels = s.Levels
	r.tick = TickTime(s.FrameRate)
	for led := range r.leds {
		if err := r.Step(ctx, led); err != nil {
			return err
		}
	}
	return nil
}

// Run sweeps until ctx is done.
func (r *RGB) Run(ctx context.Context) error {
	for {
		if err := r.Sweep(ctx); err != nil {
			return err
		}
	}
}
