// services/hal/types.go
package hal

import (
	"context"

	"tinygo.org/x/drivers"
)

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// GPIOPin is one digital line as provided by the platform.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// PinFactory supplies GPIO pins by the configured number scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---- Analog abstractions ----

// ADC is one analog input channel. Update(drivers.Voltage) takes a fresh
// sample which Raw then reports, already clamped to [0, types.RawMax].
// Calibrate must complete before the first Update is trusted.
type ADC interface {
	drivers.Sensor
	Calibrate(ctx context.Context) error
	Raw() int32
}

// ADCFactory supplies analog channels by pin number.
type ADCFactory interface {
	ByPin(pin int) (ADC, bool)
}

// Factories bundles what a platform provides to Open.
type Factories struct {
	Pins PinFactory
	ADCs ADCFactory
}

// ---- Devices handed to services ----

// Button reports the logical pressed state of an input line.
type Button interface {
	Pressed() bool
}

// Output drives a line to its logical active or inactive state.
type Output interface {
	SetActive()
	SetInactive()
}

// Sensor is the knob as seen by services: calibrate once, then sample.
type Sensor interface {
	Calibrate(ctx context.Context) error
	Sample() (int32, error)
}

// Device is anything a builder produces.
type Device interface {
	ID() string
	Close() error
}
