package rgbcal

import (
	"context"
	"errors"
	"testing"

	"github.com/bradlet/hw-rgbcal/types"
)

func TestQuantize_Endpoints(t *testing.T) {
	if got := Quantize(0); got != 0 {
		t.Fatalf("Quantize(0) = %d, want 0", got)
	}
	if got := Quantize(types.RawMax); got != types.Levels-1 {
		t.Fatalf("Quantize(0x7fff) = %d, want %d", got, types.Levels-1)
	}
}

func TestQuantize_Table(t *testing.T) {
	cases := []struct {
		raw  int32
		want types.Level
	}{
		{-100, 0},
		{0, 0},
		{1111, 0}, // 1111/10000*18-2 = -0.0002
		{1112, 0},
		{1667, 1}, // 1.0006
		{3889, 5}, // 5.0002
		{5000, 7},
		{9443, 14},
		{9445, 15},
		{20000, 15},
		{types.RawMax + 1000, 15},
	}
	for _, tc := range cases {
		if got := Quantize(tc.raw); got != tc.want {
			t.Errorf("Quantize(%d) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestQuantize_RangeAndMonotonic(t *testing.T) {
	prev := Quantize(0)
	for raw := int32(0); raw <= types.RawMax; raw++ {
		l := Quantize(raw)
		if !l.Valid() {
			t.Fatalf("Quantize(%d) = %d out of range", raw, l)
		}
		if l < prev {
			t.Fatalf("not monotonic at %d: %d after %d", raw, l, prev)
		}
		prev = l
	}
}

func TestQuantize_DeadBands(t *testing.T) {
	// Both extreme levels cover more raw input than any interior level.
	var width [types.Levels]int
	for raw := int32(0); raw <= types.RawMax; raw++ {
		width[Quantize(raw)]++
	}
	for l := 1; l < types.Levels-1; l++ {
		if width[0] <= width[l] {
			t.Fatalf("level 0 width %d not wider than level %d width %d", width[0], l, width[l])
		}
		if width[types.Levels-1] <= width[l] {
			t.Fatalf("top level width %d not wider than level %d width %d", width[types.Levels-1], l, width[l])
		}
	}
}

func TestNewKnob_CalibratesFirst(t *testing.T) {
	s := &fakeSensor{last: 5000}
	k, err := NewKnob(context.Background(), s)
	if err != nil {
		t.Fatalf("NewKnob: %v", err)
	}
	if !s.calibrated {
		t.Fatal("sensor not calibrated")
	}
	l, err := k.Measure()
	if err != nil || l != 7 {
		t.Fatalf("Measure = %d, %v; want 7", l, err)
	}
}

func TestNewKnob_Errors(t *testing.T) {
	cause := errors.New("no adc")
	if _, err := NewKnob(context.Background(), &fakeSensor{calErr: cause}); !errors.Is(err, cause) {
		t.Fatalf("want calibration error, got %v", err)
	}
	s := &fakeSensor{}
	k, err := NewKnob(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	s.sampleErr = cause
	if _, err := k.Measure(); !errors.Is(err, cause) {
		t.Fatalf("want sample error, got %v", err)
	}
}
