package config

import (
	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/conv"
	"github.com/bradlet/hw-rgbcal/x/mathx"
)

// Upper bound accepted for configured rates; the knob never exceeds
// types.MaxFrameRate but a fixed start rate may.
const maxConfigRate = 1000

var requiredDevices = [...]struct{ id, typ string }{
	{types.IDKnob, types.DeviceKnob},
	{types.IDButtonA, types.DeviceButton},
	{types.IDButtonB, types.DeviceButton},
	{types.IDRed, types.DeviceLED},
	{types.IDGreen, types.DeviceLED},
	{types.IDBlue, types.DeviceLED},
}

// Validate checks a device config. Zero rgbcal and heartbeat fields are
// allowed and select defaults.
func Validate(c types.DeviceConfig) error {
	if err := validateHAL(c.HAL); err != nil {
		return err
	}
	r := c.RGBCal
	if r.InitialLevels != nil && !r.InitialLevels.Valid() {
		return invalid(errcode.LevelOutOfRange, "initial_levels")
	}
	if r.InitialFrameRate != 0 && !mathx.Between(r.InitialFrameRate, 1, maxConfigRate) {
		return invalid(errcode.InvalidParams, "initial_frame_rate")
	}
	if r.UIFrameRate != 0 && !mathx.Between(r.UIFrameRate, 1, maxConfigRate) {
		return invalid(errcode.InvalidParams, "ui_frame_rate")
	}
	if r.PollIntervalMs > 10_000 {
		return invalid(errcode.InvalidParams, "poll_interval_ms")
	}
	return nil
}

func validateHAL(h types.HALConfig) error {
	for _, req := range requiredDevices {
		d, ok := h.Find(req.id)
		if !ok {
			return invalid(errcode.UnknownDevice, "missing "+req.id)
		}
		if d.Type != req.typ {
			return invalid(errcode.InvalidParams, req.id+" must be "+req.typ)
		}
	}
	pins := make(map[int]string, len(h.Devices))
	for _, d := range h.Devices {
		pin, ok := paramsPin(d)
		if !ok {
			return invalid(errcode.InvalidParams, "params for "+d.ID)
		}
		if pin < 0 {
			return invalid(errcode.UnknownPin, d.ID)
		}
		if other, dup := pins[pin]; dup {
			var b [20]byte
			return invalid(errcode.PinInUse, "pin "+string(conv.Utoa(b[:], uint64(pin)))+" used by "+other+" and "+d.ID)
		}
		pins[pin] = d.ID
	}
	return nil
}

func paramsPin(d types.HALDevice) (int, bool) {
	switch d.Type {
	case types.DeviceKnob:
		p, ok := d.Params.(types.KnobParams)
		return p.Pin, ok
	case types.DeviceButton:
		p, ok := d.Params.(types.ButtonParams)
		return p.Pin, ok
	case types.DeviceLED:
		p, ok := d.Params.(types.LEDParams)
		return p.Pin, ok
	}
	return 0, false
}

func invalid(c errcode.Code, msg string) error {
	return &errcode.E{C: c, Op: "config validate", Msg: msg}
}
