// services/hal/hal.go
package hal

import (
	"go.uber.org/multierr"

	"github.com/bradlet/hw-rgbcal/bus"
	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/timex"
)

// Board is the set of devices the calibration tool runs on.
type Board struct {
	Knob    Sensor
	ButtonA Button
	ButtonB Button
	LEDs    [3]Output // indexed by types.Red, types.Green, types.Blue

	devices []Device
}

// Open builds every configured device and binds the well-known IDs. On any
// failure the devices built so far are closed again.
func Open(cfg types.HALConfig, f Factories) (*Board, error) {
	res := newResources(f)
	b := &Board{}
	byID := make(map[string]Device, len(cfg.Devices))

	for _, dc := range cfg.Devices {
		if _, dup := byID[dc.ID]; dup {
			b.Close()
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "hal open", Msg: "duplicate id " + dc.ID}
		}
		bld, ok := findBuilder(dc.Type)
		if !ok {
			b.Close()
			return nil, &errcode.E{C: errcode.Unsupported, Op: "hal open", Msg: dc.Type}
		}
		dev, err := bld.Build(BuildInput{DeviceID: dc.ID, Type: dc.Type, Params: dc.Params, Res: res})
		if err != nil {
			b.Close()
			return nil, &errcode.E{C: errcode.Of(err), Op: "build " + dc.ID, Err: err}
		}
		b.devices = append(b.devices, dev)
		byID[dc.ID] = dev
	}

	var err error
	if b.Knob, err = lookup[Sensor](byID, types.IDKnob); err != nil {
		b.Close()
		return nil, err
	}
	if b.ButtonA, err = lookup[Button](byID, types.IDButtonA); err != nil {
		b.Close()
		return nil, err
	}
	if b.ButtonB, err = lookup[Button](byID, types.IDButtonB); err != nil {
		b.Close()
		return nil, err
	}
	for i, id := range [3]string{types.IDRed, types.IDGreen, types.IDBlue} {
		if b.LEDs[i], err = lookup[Output](byID, id); err != nil {
			b.Close()
			return nil, err
		}
	}
	return b, nil
}

func lookup[T any](byID map[string]Device, id string) (T, error) {
	var zero T
	d, ok := byID[id]
	if !ok {
		return zero, &errcode.E{C: errcode.UnknownDevice, Op: "hal open", Msg: "missing " + id}
	}
	v, ok := d.(T)
	if !ok {
		return zero, &errcode.E{C: errcode.UnknownDevice, Op: "hal open", Msg: "wrong type for " + id}
	}
	return v, nil
}

// Close releases every device in reverse build order.
func (b *Board) Close() error {
	var err error
	for i := len(b.devices) - 1; i >= 0; i-- {
		err = multierr.Combine(err, b.devices[i].Close())
	}
	b.devices = nil
	return err
}

// PublishState publishes the retained HAL state record.
func PublishState(conn *bus.Connection, level, status string, err error) {
	st := types.HALState{Level: level, Status: status, TSms: timex.NowMs()}
	if err != nil {
		st.Error = err.Error()
	}
	conn.Publish(conn.NewMessage(bus.T("hal", "state"), st, true))
}
