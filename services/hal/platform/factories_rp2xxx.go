// services/hal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"context"
	"io"
	"machine"

	"github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"

	"github.com/bradlet/hw-rgbcal/services/hal"
)

// DefaultFactories maps logical numbers directly to machine.Pin(n), which
// matches Pico/Pico 2 GP numbering. ADC inputs are GP26..GP28.
func DefaultFactories() hal.Factories {
	machine.InitADC()
	return hal.Factories{Pins: rp2PinFactory{}, ADCs: rp2ADCFactory{}}
}

// DefaultConsole configures UART1 on its default pins at 115200 baud.
// println output keeps going to USB.
func DefaultConsole() io.Writer {
	u := uartx.UART1
	if err := u.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART1_TX_PIN,
		RX:       machine.UART1_RX_PIN,
	}); err != nil {
		return machine.Serial
	}
	return u
}

// ---- GPIO ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (hal.GPIOPin, bool) {
	// RP2 user GPIOs are GP0..GP28.
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull hal.Pull) error {
	var mode machine.PinMode
	switch pull {
	case hal.PullUp:
		mode = machine.PinInputPullup
	case hal.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

// ---- ADC ----

type rp2ADCFactory struct{}

func (rp2ADCFactory) ByPin(n int) (hal.ADC, bool) {
	if n < 26 || n > 28 {
		return nil, false
	}
	a := machine.ADC{Pin: machine.Pin(n)}
	if err := a.Configure(machine.ADCConfig{}); err != nil {
		return nil, false
	}
	return &rp2ADC{a: a}, true
}

type rp2ADC struct {
	a   machine.ADC
	raw int32
}

// Calibrate runs one throwaway conversion; the RP2 ADC has no
// calibration cycle. Warm-up samples are taken by the knob device.
func (r *rp2ADC) Calibrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_ = r.a.Get()
	return nil
}

// Update takes one conversion. machine.ADC reports 16-bit values; the
// shift brings them to [0, 0x7fff].
func (r *rp2ADC) Update(which drivers.Measurement) error {
	if which&drivers.Voltage != 0 {
		r.raw = int32(r.a.Get() >> 1)
	}
	return nil
}

func (r *rp2ADC) Raw() int32 { return r.raw }
