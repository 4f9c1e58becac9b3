package hal

import (
	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/types"
)

func init() { RegisterBuilder(types.DeviceLED, doutBuilder{}) }

type doutBuilder struct{}

func (doutBuilder) Build(in BuildInput) (Device, error) {
	p, ok := in.Params.(types.LEDParams)
	if !ok || p.Pin < 0 {
		return nil, errcode.InvalidParams
	}
	pin, err := in.Res.ClaimPin(in.DeviceID, p.Pin)
	if err != nil {
		return nil, err
	}
	d := &OutputDevice{
		id:        in.DeviceID,
		pin:       pin,
		pinN:      p.Pin,
		activeLow: p.ActiveLow,
		res:       in.Res,
	}
	// Start inactive.
	if err := pin.ConfigureOutput(d.physical(false)); err != nil {
		in.Res.ReleasePin(in.DeviceID, p.Pin)
		return nil, err
	}
	return d, nil
}

// OutputDevice is a digital output with optional active-low polarity.
type OutputDevice struct {
	id        string
	pin       GPIOPin
	pinN      int
	activeLow bool
	res       *Resources
}

func (d *OutputDevice) ID() string { return d.id }

func (d *OutputDevice) SetActive()   { d.pin.Set(d.physical(true)) }
func (d *OutputDevice) SetInactive() { d.pin.Set(d.physical(false)) }

// Active reports the current logical state.
func (d *OutputDevice) Active() bool { return d.pin.Get() != d.activeLow }

// Close drives the line inactive and releases the pin.
func (d *OutputDevice) Close() error {
	d.SetInactive()
	d.res.ReleasePin(d.id, d.pinN)
	return nil
}

func (d *OutputDevice) physical(on bool) bool {
	if d.activeLow {
		return !on
	}
	return on
}
