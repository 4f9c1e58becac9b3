package timex

import (
	"testing"
	"time"
)

func TestPeriodUs(t *testing.T) {
	cases := []struct {
		hz   uint32
		want uint64
	}{
		{0, 0},
		{10, 100_000},
		{60, 16_666},
		{100, 10_000},
		{160, 6_250},
	}
	for _, tc := range cases {
		if got := PeriodUs(tc.hz); got != tc.want {
			t.Errorf("PeriodUs(%d) = %d, want %d", tc.hz, got, tc.want)
		}
	}
}

func TestMicros(t *testing.T) {
	if got := Micros(1250); got != 1250*time.Microsecond {
		t.Fatalf("Micros(1250) = %v", got)
	}
}
