package rgbcal

import (
	"io"

	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/conv"
)

// Display prints the current settings for the person calibrating.
// Output is best-effort; write errors are dropped.
type Display struct {
	w     io.Writer
	names [3]string
	buf   []byte
}

func NewDisplay(w io.Writer, names [3]string) *Display {
	if w == nil {
		w = io.Discard
	}
	return &Display{w: w, names: names, buf: make([]byte, 0, 64)}
}

// Show writes a blank line, one "name: level" line per channel and the
// frame rate.
func (d *Display) Show(s types.Settings) {
	b := append(d.buf[:0], '\n')
	for i, l := range s.Levels {
		b = conv.AppendField(b, d.names[i], uint64(l))
	}
	b = conv.AppendField(b, "frame rate", uint64(s.FrameRate))
	d.buf = b
	_, _ = d.w.Write(b)
}
