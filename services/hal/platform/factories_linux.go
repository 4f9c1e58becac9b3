// services/hal/platform/factories_linux.go
//go:build linux && rpi && !tinygo

package platform

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/warthog618/gpiod"
	"tinygo.org/x/drivers"

	"github.com/bradlet/hw-rgbcal/services/hal"
	"github.com/bradlet/hw-rgbcal/x/logx"
)

const (
	gpioChip = "gpiochip0"
	// IIO channel exposing the knob; pin numbers map to in_voltageN_raw.
	iioDevice = "/sys/bus/iio/devices/iio:device0"
)

// DefaultFactories opens gpiochip0 for digital lines and the first IIO
// device for the knob. A missing chip leaves the pin factory unset so
// hal.Open fails with hal_not_ready.
func DefaultFactories() hal.Factories {
	f := hal.Factories{ADCs: iioFactory{dir: iioDevice}}
	chip, err := gpiod.NewChip(gpioChip, gpiod.WithConsumer("rgbcal"))
	if err != nil {
		logx.L().Error("open gpio chip", "chip", gpioChip, "err", err)
		return f
	}
	f.Pins = &gpiodFactory{chip: chip}
	return f
}

// DefaultConsole is where the diagnostic display writes.
func DefaultConsole() io.Writer { return os.Stdout }

// ---- GPIO via gpiod ----

type gpiodFactory struct{ chip *gpiod.Chip }

func (f *gpiodFactory) ByNumber(n int) (hal.GPIOPin, bool) {
	if n < 0 || n >= f.chip.Lines() {
		return nil, false
	}
	return &gpiodPin{chip: f.chip, n: n}, true
}

// gpiodPin requests its line lazily when first configured and re-requests
// on direction changes.
type gpiodPin struct {
	chip *gpiod.Chip
	n    int
	line *gpiod.Line
}

func (p *gpiodPin) ConfigureInput(pull hal.Pull) error {
	var bias gpiod.LineReqOption = gpiod.WithBiasDisabled
	switch pull {
	case hal.PullUp:
		bias = gpiod.WithPullUp
	case hal.PullDown:
		bias = gpiod.WithPullDown
	}
	p.release()
	l, err := p.chip.RequestLine(p.n, gpiod.AsInput, bias)
	if err != nil {
		return err
	}
	p.line = l
	return nil
}

func (p *gpiodPin) ConfigureOutput(initial bool) error {
	p.release()
	l, err := p.chip.RequestLine(p.n, gpiod.AsOutput(b2i(initial)))
	if err != nil {
		return err
	}
	p.line = l
	return nil
}

func (p *gpiodPin) Set(level bool) {
	if p.line != nil {
		_ = p.line.SetValue(b2i(level))
	}
}

func (p *gpiodPin) Get() bool {
	if p.line == nil {
		return false
	}
	v, err := p.line.Value()
	return err == nil && v != 0
}

func (p *gpiodPin) Number() int { return p.n }

func (p *gpiodPin) release() {
	if p.line != nil {
		_ = p.line.Close()
		p.line = nil
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ---- ADC via IIO sysfs ----

type iioFactory struct{ dir string }

func (f iioFactory) ByPin(n int) (hal.ADC, bool) {
	path := f.dir + "/in_voltage" + strconv.Itoa(n) + "_raw"
	if _, err := os.Stat(path); err != nil {
		return nil, false
	}
	return &iioADC{path: path}, true
}

type iioADC struct {
	path string
	raw  int32
}

// Calibrate checks the channel is readable; the kernel driver owns any
// hardware calibration.
func (a *iioADC) Calibrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := a.read()
	return err
}

func (a *iioADC) Update(which drivers.Measurement) error {
	if which&drivers.Voltage == 0 {
		return nil
	}
	v, err := a.read()
	if err != nil {
		return err
	}
	a.raw = v
	return nil
}

func (a *iioADC) Raw() int32 { return a.raw }

func (a *iioADC) read() (int32, error) {
	b, err := os.ReadFile(a.path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
