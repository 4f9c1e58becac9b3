// services/hal/platform/factories_host.go
//go:build !rp2040 && !rp2350 && !rpi

package platform

import (
	"context"
	"io"
	"os"
	"sync"

	"tinygo.org/x/drivers"

	"github.com/bradlet/hw-rgbcal/services/hal"
	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/mathx"
)

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements hal.GPIOPin for host-side tests and the simulator.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    hal.Pull
}

func (p *FakePin) ConfigureInput(pull hal.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	// An idle pulled line settles to its pull level.
	switch pull {
	case hal.PullUp:
		p.level = true
	case hal.PullDown:
		p.level = false
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

// IsOutput reports whether the pin was last configured as an output.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

func (p *FakePin) Number() int { return p.number }

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (hal.GPIOPin, bool) {
	return f.pin(n), n >= 0
}

func (f *HostPinFactory) pin(n int) *FakePin {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p
}

// Get exposes the underlying *FakePin so a test or simulator can drive it.
func (f *HostPinFactory) Get(n int) *FakePin { return f.pin(n) }

// ----------------------------- ADC (host) ------------------------------------

// FakeADC is a scriptable analog channel. Each Update consumes the next
// queued sample; once the queue is empty the last value repeats.
type FakeADC struct {
	mu         sync.Mutex
	pin        int
	queue      []int32
	raw        int32
	calibrated bool
	updates    int
}

var _ drivers.Sensor = (*FakeADC)(nil)

func (a *FakeADC) Calibrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	a.calibrated = true
	a.mu.Unlock()
	return nil
}

func (a *FakeADC) Update(which drivers.Measurement) error {
	if which&drivers.Voltage == 0 {
		return nil
	}
	a.mu.Lock()
	if len(a.queue) > 0 {
		a.raw = a.queue[0]
		a.queue = a.queue[1:]
	}
	a.updates++
	a.mu.Unlock()
	return nil
}

func (a *FakeADC) Raw() int32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return mathx.Clamp(a.raw, 0, types.RawMax)
}

// Push queues raw samples for subsequent Updates.
func (a *FakeADC) Push(samples ...int32) {
	a.mu.Lock()
	a.queue = append(a.queue, samples...)
	a.mu.Unlock()
}

// Set replaces the queue with a constant reading.
func (a *FakeADC) Set(raw int32) {
	a.mu.Lock()
	a.queue = a.queue[:0]
	a.raw = raw
	a.mu.Unlock()
}

// Updates reports how many samples were taken.
func (a *FakeADC) Updates() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.updates
}

// HostADCFactory hands out one FakeADC per pin.
type HostADCFactory struct {
	mu   sync.Mutex
	adcs map[int]*FakeADC
}

func (f *HostADCFactory) ByPin(n int) (hal.ADC, bool) {
	return f.Get(n), n >= 0
}

// Get exposes the FakeADC behind pin n.
func (f *HostADCFactory) Get(n int) *FakeADC {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adcs == nil {
		f.adcs = make(map[int]*FakeADC)
	}
	a, ok := f.adcs[n]
	if !ok {
		a = &FakeADC{pin: n}
		f.adcs[n] = a
	}
	return a
}

// Host bundles the fake factories so callers can reach the fakes.
type Host struct {
	Pins *HostPinFactory
	ADCs *HostADCFactory
}

// NewHost returns empty fake factories.
func NewHost() *Host {
	return &Host{Pins: &HostPinFactory{}, ADCs: &HostADCFactory{}}
}

func (h *Host) Factories() hal.Factories { return hal.Factories{Pins: h.Pins, ADCs: h.ADCs} }

// DefaultFactories provides host fakes.
func DefaultFactories() hal.Factories { return NewHost().Factories() }

// DefaultConsole is where the diagnostic display writes.
func DefaultConsole() io.Writer { return os.Stdout }
