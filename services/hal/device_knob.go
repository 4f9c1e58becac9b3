package hal

import (
	"context"
	"sync"

	"tinygo.org/x/drivers"

	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/mathx"
)

func init() { RegisterBuilder(types.DeviceKnob, knobBuilder{}) }

type knobBuilder struct{}

func (knobBuilder) Build(in BuildInput) (Device, error) {
	p, ok := in.Params.(types.KnobParams)
	if !ok || p.Pin < 0 {
		return nil, errcode.InvalidParams
	}
	adc, err := in.Res.ClaimADC(in.DeviceID, p.Pin)
	if err != nil {
		return nil, err
	}
	return &KnobDevice{id: in.DeviceID, pinN: p.Pin, warmup: p.WarmupN, adc: adc, res: in.Res}, nil
}

// KnobDevice is the analog knob. Sample refuses to run before Calibrate
// has completed.
type KnobDevice struct {
	id     string
	pinN   int
	warmup int
	adc    ADC
	res    *Resources

	mu         sync.Mutex
	calibrated bool
}

func (d *KnobDevice) ID() string { return d.id }

// Calibrate blocks until the converter reports calibration complete, then
// discards the configured number of warm-up samples.
func (d *KnobDevice) Calibrate(ctx context.Context) error {
	if err := d.adc.Calibrate(ctx); err != nil {
		return errcode.Wrap(errcode.NotCalibrated, "knob calibrate", err)
	}
	for i := 0; i < d.warmup; i++ {
		if err := ctx.Err(); err != nil {
			return errcode.Wrap(errcode.NotCalibrated, "knob warm-up", err)
		}
		if err := d.adc.Update(drivers.Voltage); err != nil {
			return errcode.Wrap(errcode.NotCalibrated, "knob warm-up", err)
		}
	}
	d.mu.Lock()
	d.calibrated = true
	d.mu.Unlock()
	return nil
}

// Sample takes one fresh reading clamped to [0, types.RawMax].
func (d *KnobDevice) Sample() (int32, error) {
	d.mu.Lock()
	ok := d.calibrated
	d.mu.Unlock()
	if !ok {
		return 0, errcode.NotCalibrated
	}
	if err := d.adc.Update(drivers.Voltage); err != nil {
		return 0, errcode.Wrap(errcode.Error, "knob sample", err)
	}
	return mathx.Clamp(d.adc.Raw(), 0, types.RawMax), nil
}

func (d *KnobDevice) Close() error {
	d.res.ReleasePin(d.id, d.pinN)
	return nil
}
