package hal

import (
	"context"
	"errors"
	"sync"

	"tinygo.org/x/drivers"
)

// ---- fakes ----

type fakePin struct {
	mu    sync.Mutex
	level bool
	mode  string // "input" or "output"
	pull  Pull
	num   int
	sets  int
}

func (p *fakePin) ConfigureInput(pull Pull) error {
	p.mu.Lock()
	p.mode, p.pull = "input", pull
	p.mu.Unlock()
	return nil
}
func (p *fakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.mode, p.level = "output", initial
	p.mu.Unlock()
	return nil
}
func (p *fakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.sets++
	p.mu.Unlock()
}
func (p *fakePin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}
func (p *fakePin) Number() int { return p.num }

type fakeADC struct {
	mu         sync.Mutex
	samples    []int32
	raw        int32
	calibrated bool
	calErr     error
	updErr     error
	updates    int
}

var _ drivers.Sensor = (*fakeADC)(nil)

func (a *fakeADC) Calibrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.calErr != nil {
		return a.calErr
	}
	a.calibrated = true
	return nil
}

func (a *fakeADC) Update(which drivers.Measurement) error {
	if which&drivers.Voltage == 0 {
		return errors.New("fakeADC: only voltage")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.updErr != nil {
		return a.updErr
	}
	a.updates++
	if len(a.samples) > 0 {
		a.raw = a.samples[0]
		a.samples = a.samples[1:]
	}
	return nil
}

func (a *fakeADC) Raw() int32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.raw
}

// fakeFactories satisfies both PinFactory and ADCFactory.
type fakeFactories struct {
	pins map[int]*fakePin
	adcs map[int]*fakeADC
}

func newFakeFactories() *fakeFactories {
	return &fakeFactories{pins: map[int]*fakePin{}, adcs: map[int]*fakeADC{}}
}

func (f *fakeFactories) ByNumber(n int) (GPIOPin, bool) {
	if n > 28 {
		return nil, false
	}
	p, ok := f.pins[n]
	if !ok {
		p = &fakePin{num: n}
		f.pins[n] = p
	}
	return p, true
}

func (f *fakeFactories) ByPin(n int) (ADC, bool) {
	if n < 26 || n > 28 {
		return nil, false
	}
	a, ok := f.adcs[n]
	if !ok {
		a = &fakeADC{}
		f.adcs[n] = a
	}
	return a, true
}

func (f *fakeFactories) factories() Factories { return Factories{Pins: f, ADCs: f} }
