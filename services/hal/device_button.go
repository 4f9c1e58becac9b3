package hal

import (
	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/types"
)

func init() { RegisterBuilder(types.DeviceButton, buttonBuilder{}) }

type buttonBuilder struct{}

func (buttonBuilder) Build(in BuildInput) (Device, error) {
	p, ok := in.Params.(types.ButtonParams)
	if !ok || p.Pin < 0 {
		return nil, errcode.InvalidParams
	}
	pin, err := in.Res.ClaimPin(in.DeviceID, p.Pin)
	if err != nil {
		return nil, err
	}
	if err := pin.ConfigureInput(ParsePull(p.Pull)); err != nil {
		in.Res.ReleasePin(in.DeviceID, p.Pin)
		return nil, err
	}
	return &ButtonDevice{
		id:     in.DeviceID,
		pinN:   p.Pin,
		gpio:   pin,
		invert: p.Invert,
		res:    in.Res,
	}, nil
}

// ButtonDevice is a GPIO input read on demand. With Invert set a low
// line reads as pressed.
type ButtonDevice struct {
	id     string
	pinN   int
	gpio   GPIOPin
	invert bool
	res    *Resources
}

func (d *ButtonDevice) ID() string { return d.id }

// Pressed samples the line and applies the configured polarity.
func (d *ButtonDevice) Pressed() bool { return d.logicalPressed(d.gpio.Get()) }

func (d *ButtonDevice) Close() error {
	d.res.ReleasePin(d.id, d.pinN)
	return nil
}

func (d *ButtonDevice) logicalPressed(level bool) bool {
	if d.invert {
		return !level
	}
	return level
}
