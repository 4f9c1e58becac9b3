package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodUs returns the period in microseconds of a repeating event at freqHz.
// freqHz==0 yields 0; callers decide whether that is meaningful.
func PeriodUs(freqHz uint32) uint64 {
	if freqHz == 0 {
		return 0
	}
	return 1_000_000 / uint64(freqHz)
}

// Micros converts a microsecond count into a time.Duration.
func Micros(us uint64) time.Duration { return time.Duration(us) * time.Microsecond }
