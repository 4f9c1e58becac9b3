package rgbcal

import (
	"sync"

	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/types"
)

// Store is the settings tuple shared by the UI and the pulse generator.
// One lock guards the whole tuple; critical sections only copy.
type Store struct {
	mu sync.Mutex
	s  types.Settings
}

// NewStore validates and installs the initial settings.
func NewStore(initial types.Settings) (*Store, error) {
	if err := check(initial); err != nil {
		return nil, err
	}
	return &Store{s: initial}, nil
}

// Read returns a consistent copy of the settings.
func (st *Store) Read() types.Settings {
	st.mu.Lock()
	s := st.s
	st.mu.Unlock()
	return s
}

// Publish replaces the whole tuple.
func (st *Store) Publish(s types.Settings) {
	mustCheck(s)
	st.mu.Lock()
	st.s = s
	st.mu.Unlock()
}

// PublishLevels replaces the channel levels only.
func (st *Store) PublishLevels(l types.ChannelLevels) {
	if !l.Valid() {
		panic(errcode.LevelOutOfRange)
	}
	st.mu.Lock()
	st.s.Levels = l
	st.mu.Unlock()
}

// PublishFrameRate replaces the frame rate only.
func (st *Store) PublishFrameRate(r types.RefreshRate) {
	if r == 0 {
		panic(errcode.ZeroFrameRate)
	}
	st.mu.Lock()
	st.s.FrameRate = r
	st.mu.Unlock()
}

func check(s types.Settings) error {
	if s.FrameRate == 0 {
		return errcode.ZeroFrameRate
	}
	if !s.Levels.Valid() {
		return errcode.LevelOutOfRange
	}
	return nil
}

// Values reaching the store are produced by the quantizer and the +10
// rate floor; anything else is a programming error.
func mustCheck(s types.Settings) {
	if err := check(s); err != nil {
		panic(err)
	}
}
