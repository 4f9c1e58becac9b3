package rgbcal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/services/hal"
	"github.com/bradlet/hw-rgbcal/types"
)

func newTestRGB(t *testing.T, s types.Settings) (*RGB, *Store, *recorder) {
	t.Helper()
	st, err := NewStore(s)
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	leds := [3]hal.Output{fakeLED{rec, 0}, fakeLED{rec, 1}, fakeLED{rec, 2}}
	return NewRGB(leds, st, s.FrameRate, recordSleeper(rec)), st, rec
}

func TestTickTime(t *testing.T) {
	cases := []struct {
		rate types.RefreshRate
		want time.Duration
	}{
		{10, 2083 * time.Microsecond},
		{50, 416 * time.Microsecond},
		{60, 347 * time.Microsecond},
		{100, 208 * time.Microsecond},
		{160, 130 * time.Microsecond},
	}
	for _, tc := range cases {
		if got := TickTime(tc.rate); got != tc.want {
			t.Errorf("TickTime(%d) = %v, want %v", tc.rate, got, tc.want)
		}
	}
	expectPanic(t, errcode.ZeroFrameRate, func() { TickTime(0) })
}

func TestSweepPlan_TotalIsOnePeriod(t *testing.T) {
	levelSets := []types.ChannelLevels{{0, 0, 0}, {15, 15, 15}, {0, 7, 15}, {3, 9, 1}}
	for r := types.MinFrameRate; r <= types.MaxFrameRate; r += types.FrameRateStep {
		for _, ls := range levelSets {
			plan := SweepPlan(types.Settings{Levels: ls, FrameRate: r})
			var total time.Duration
			for _, p := range plan {
				total += p.On + p.Off
			}
			period := time.Second / time.Duration(r)
			tick := TickTime(r)
			if total > period || period-total >= tick {
				t.Fatalf("rate %d levels %v: sweep %v, period %v, tick %v", r, ls, total, period, tick)
			}
		}
	}
}

func TestSweepPlan_EdgeLevels(t *testing.T) {
	plan := SweepPlan(types.Settings{Levels: types.ChannelLevels{0, types.Levels - 1, 8}, FrameRate: 100})
	tick := TickTime(100)
	if plan[0].On != 0 || plan[0].Off != types.Levels*tick {
		t.Fatalf("level 0: %+v", plan[0])
	}
	if plan[1].On != (types.Levels-1)*tick || plan[1].Off != tick {
		t.Fatalf("top level: %+v", plan[1])
	}
	if plan[2].On != 8*tick || plan[2].Off != 8*tick {
		t.Fatalf("mid level: %+v", plan[2])
	}
}

func TestStep_SkipsZeroActivePhase(t *testing.T) {
	r, _, rec := newTestRGB(t, types.Settings{Levels: types.ChannelLevels{0, 15, 5}, FrameRate: 100})
	ctx := context.Background()
	if err := r.Sweep(ctx); err != nil {
		t.Fatal(err)
	}
	tick := TickTime(100)
	want := []event{
		{kind: "sleep", d: 16 * tick},
		{kind: "on", led: 1}, {kind: "sleep", d: 15 * tick}, {kind: "off", led: 1}, {kind: "sleep", d: tick},
		{kind: "on", led: 2}, {kind: "sleep", d: 5 * tick}, {kind: "off", led: 2}, {kind: "sleep", d: 11 * tick},
	}
	got := rec.take()
	if len(got) != len(want) {
		t.Fatalf("events = %+v\nwant %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStep_NeverLeavesChannelActiveOnCancel(t *testing.T) {
	st, _ := NewStore(types.Settings{Levels: types.ChannelLevels{4, 4, 4}, FrameRate: 100})
	rec := &recorder{}
	leds := [3]hal.Output{fakeLED{rec, 0}, fakeLED{rec, 1}, fakeLED{rec, 2}}
	ctx, cancel := context.WithCancel(context.Background())
	cancelOnSleep := SleeperFunc(func(context.Context, time.Duration) error {
		cancel()
		return ctx.Err()
	})
	r := NewRGB(leds, st, 100, cancelOnSleep)
	if err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	evs := rec.take()
	if len(evs) != 2 || evs[0].kind != "on" || evs[1].kind != "off" {
		t.Fatalf("events = %+v", evs)
	}
}

func TestSweep_ReadsStoreOncePerSweep(t *testing.T) {
	r, st, rec := newTestRGB(t, types.Settings{Levels: types.ChannelLevels{2, 2, 2}, FrameRate: 100})
	ctx := context.Background()

	// Publish mid-sweep: the running sweep keeps its copy.
	published := false
	r.sleep = SleeperFunc(func(ctx context.Context, d time.Duration) error {
		if !published {
			st.Publish(types.Settings{Levels: types.ChannelLevels{9, 9, 9}, FrameRate: 60})
			published = true
		}
		return recordSleeper(rec).Sleep(ctx, d)
	})
	if err := r.Sweep(ctx); err != nil {
		t.Fatal(err)
	}
	old := TickTime(100)
	for _, e := range rec.take() {
		if e.kind == "sleep" && e.d != 2*old && e.d != 14*old {
			t.Fatalf("sweep used new settings mid-sweep: %v", e.d)
		}
	}

	if err := r.Sweep(ctx); err != nil {
		t.Fatal(err)
	}
	tick := TickTime(60)
	var total time.Duration
	for _, e := range rec.take() {
		if e.kind == "sleep" {
			total += e.d
		}
	}
	if total != 48*tick {
		t.Fatalf("second sweep total %v, want %v", total, 48*tick)
	}
}

func TestScenario_FrameRateSixty(t *testing.T) {
	// Knob at level 5 with no buttons: rate 60, sweep about 16667 µs.
	r, st, rec := newTestRGB(t, types.Settings{Levels: types.ChannelLevels{15, 15, 15}, FrameRate: 100})
	st.PublishFrameRate(types.FrameRateFor(5))
	if err := r.Sweep(context.Background()); err != nil {
		t.Fatal(err)
	}
	var total time.Duration
	for _, e := range rec.take() {
		if e.kind == "sleep" {
			total += e.d
		}
	}
	want := time.Second / 60
	if d := want - total; d < 0 || d >= TickTime(60) {
		t.Fatalf("sweep %v, want within one tick of %v", total, want)
	}
}
