package hal

import (
	"strings"

	"github.com/bradlet/hw-rgbcal/x/conv"
)

// Shared helpers used by GPIO code.

// ParsePull converts a config string to a Pull. Unknown strings map to PullNone.
func ParsePull(s string) Pull {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "pullup":
		return PullUp
	case "down", "pulldown":
		return PullDown
	default:
		return PullNone
	}
}

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	default:
		return "none"
	}
}

func itoa(n int) string {
	var buf [20]byte
	return string(conv.Itoa(buf[:], int64(n)))
}
