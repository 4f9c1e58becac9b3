package rgbcal

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ---- fakes ----

// fakeSensor returns queued raw samples; the last one repeats.
type fakeSensor struct {
	mu         sync.Mutex
	raw        []int32
	last       int32
	calibrated bool
	calErr     error
	sampleErr  error
	samples    int
}

func (s *fakeSensor) Calibrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calErr != nil {
		return s.calErr
	}
	s.calibrated = true
	return ctx.Err()
}

func (s *fakeSensor) Sample() (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.calibrated {
		return 0, errors.New("fakeSensor: sampled before calibration")
	}
	if s.sampleErr != nil {
		return 0, s.sampleErr
	}
	s.samples++
	if len(s.raw) > 0 {
		s.last = s.raw[0]
		s.raw = s.raw[1:]
	}
	return s.last, nil
}

func (s *fakeSensor) set(raw int32) {
	s.mu.Lock()
	s.raw = nil
	s.last = raw
	s.mu.Unlock()
}

type fakeButton struct {
	mu      sync.Mutex
	pressed bool
}

func (b *fakeButton) Pressed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pressed
}

func (b *fakeButton) set(p bool) {
	b.mu.Lock()
	b.pressed = p
	b.mu.Unlock()
}

// event is one observable action of the pulse generator.
type event struct {
	kind string // "on", "off", "sleep"
	led  int
	d    time.Duration
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) add(e event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) take() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

type fakeLED struct {
	rec *recorder
	led int
}

func (l fakeLED) SetActive()   { l.rec.add(event{kind: "on", led: l.led}) }
func (l fakeLED) SetInactive() { l.rec.add(event{kind: "off", led: l.led}) }

// recordSleeper records durations without waiting.
func recordSleeper(rec *recorder) Sleeper {
	return SleeperFunc(func(ctx context.Context, d time.Duration) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec.add(event{kind: "sleep", d: d})
		return nil
	})
}

// yieldSleeper waits briefly so concurrent loops make progress.
var yieldSleeper = SleeperFunc(func(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(10 * time.Microsecond):
		return nil
	}
})
