package rgbcal

import (
	"context"

	"github.com/bradlet/hw-rgbcal/services/hal"
	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/mathx"
)

// Scale divides the raw sample before it is spread over the levels.
const rawScale = 10000

// Quantize maps a raw knob sample onto [0, types.Levels-1]. The two
// outermost levels cover a wider slice of input than interior ones so the
// extremes are easy to reach.
func Quantize(raw int32) types.Level {
	raw = mathx.Clamp(raw, 0, types.RawMax)
	v := float32(raw) / rawScale
	v = v*float32(types.Levels+2) - 2
	v = mathx.Clamp(v, 0, float32(types.Levels-1))
	// v is non-negative, so conversion floors.
	return types.Level(v)
}

// Knob is a calibrated sensor read as quantized levels.
type Knob struct {
	s hal.Sensor
}

// NewKnob calibrates s and blocks until it is ready.
func NewKnob(ctx context.Context, s hal.Sensor) (*Knob, error) {
	if err := s.Calibrate(ctx); err != nil {
		return nil, err
	}
	return &Knob{s: s}, nil
}

// Measure takes one fresh sample and quantizes it.
func (k *Knob) Measure() (types.Level, error) {
	raw, err := k.s.Sample()
	if err != nil {
		return 0, err
	}
	return Quantize(raw), nil
}
