package rgbcal

import (
	"context"
	"time"

	"github.com/bradlet/hw-rgbcal/bus"
	"github.com/bradlet/hw-rgbcal/services/hal"
	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/timex"
)

// DefaultPollInterval is the input sampling period.
const DefaultPollInterval = 50 * time.Millisecond

// TopicState carries the retained types.Snapshot after every change.
var TopicState = bus.T("rgbcal", "state")

// Target is the parameter the knob currently adjusts.
type Target uint8

const (
	TargetFrameRate Target = iota
	TargetRed
	TargetGreen
	TargetBlue
)

func (t Target) String() string {
	switch t {
	case TargetRed:
		return "red"
	case TargetGreen:
		return "green"
	case TargetBlue:
		return "blue"
	default:
		return "frame rate"
	}
}

// Channel returns the LED channel index for a level target.
func (t Target) Channel() (int, bool) {
	switch t {
	case TargetRed:
		return types.Red, true
	case TargetGreen:
		return types.Green, true
	case TargetBlue:
		return types.Blue, true
	}
	return 0, false
}

// SelectTarget maps the instantaneous button state to a target.
func SelectTarget(aPressed, bPressed bool) Target {
	switch {
	case aPressed && bPressed:
		return TargetRed
	case aPressed:
		return TargetBlue
	case bPressed:
		return TargetGreen
	default:
		return TargetFrameRate
	}
}

// UIConfig wires a UI. Display, Telemetry and Sleeper are optional.
type UIConfig struct {
	Knob         *Knob
	ButtonA      hal.Button
	ButtonB      hal.Button
	Store        *Store
	Display      *Display
	Telemetry    *bus.Connection
	Sleeper      Sleeper
	PollInterval time.Duration
	// Session tags telemetry snapshots.
	Session string
	// Initial seeds the private shadow; the first Run cycle overwrites
	// the selected parameter from the knob.
	Initial types.Settings
}

// UI polls the knob and buttons and publishes changed settings.
type UI struct {
	knob    *Knob
	buttonA hal.Button
	buttonB hal.Button
	store   *Store
	display *Display
	conn    *bus.Connection
	sleep   Sleeper
	poll    time.Duration
	session string

	state types.Settings
	seq   uint32
}

func NewUI(c UIConfig) *UI {
	if c.Sleeper == nil {
		c.Sleeper = TimerSleeper
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Display == nil {
		c.Display = NewDisplay(nil, types.ChannelNames)
	}
	if c.Initial.FrameRate == 0 {
		c.Initial.FrameRate = types.DefaultFrameRate
	}
	return &UI{
		knob:    c.Knob,
		buttonA: c.ButtonA,
		buttonB: c.ButtonB,
		store:   c.Store,
		display: c.Display,
		conn:    c.Telemetry,
		sleep:   c.Sleeper,
		poll:    c.PollInterval,
		session: c.Session,
		state:   c.Initial,
	}
}

// State returns the UI's private copy of the settings.
func (u *UI) State() types.Settings { return u.state }

// Step polls once and commits if the selected parameter changed.
func (u *UI) Step(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	t, changed, err := u.poll1()
	if err != nil {
		return false, err
	}
	if changed {
		u.commit(t)
	}
	return changed, nil
}

// Run commits one reading unconditionally, then polls every interval
// until ctx is done or a read fails.
func (u *UI) Run(ctx context.Context) error {
	t, _, err := u.poll1()
	if err != nil {
		return err
	}
	u.commit(t)
	for {
		if err := u.sleep.Sleep(ctx, u.poll); err != nil {
			return err
		}
		if _, err := u.Step(ctx); err != nil {
			return err
		}
	}
}

func (u *UI) poll1() (Target, bool, error) {
	level, err := u.knob.Measure()
	if err != nil {
		return 0, false, err
	}
	t := SelectTarget(u.buttonA.Pressed(), u.buttonB.Pressed())
	return t, u.apply(t, level), nil
}

// apply writes l to the selected parameter and reports whether it moved.
// The frame rate is compared as a level but always rewritten from l, so
// an off-grid seed rate never survives a reading.
func (u *UI) apply(t Target, l types.Level) bool {
	if ch, ok := t.Channel(); ok {
		prev := u.state.Levels[ch]
		u.state.Levels[ch] = l
		return prev != l
	}
	prev := types.LevelFor(u.state.FrameRate)
	u.state.FrameRate = types.FrameRateFor(l)
	return prev != l
}

// commit shows the new settings before publishing them.
func (u *UI) commit(t Target) {
	u.display.Show(u.state)
	u.store.Publish(u.state)
	if u.conn != nil {
		u.seq++
		snap := types.Snapshot{Settings: u.state, Target: t.String(), Seq: u.seq, TSms: timex.NowMs(), Session: u.session}
		u.conn.Publish(u.conn.NewMessage(TopicState, snap, true))
	}
}
