package config

import "github.com/bradlet/hw-rgbcal/types"

// -----------------------------------------------------------------------------
// Built-in configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: the typed configuration for that board
// -----------------------------------------------------------------------------

func halConfig(knob, btnA, btnB int, leds [3]int, activeLow bool) types.HALConfig {
	btn := func(pin int) types.ButtonParams {
		return types.ButtonParams{Pin: pin, Pull: "up", Invert: true}
	}
	led := func(pin int) types.LEDParams {
		return types.LEDParams{Pin: pin, ActiveLow: activeLow}
	}
	return types.HALConfig{Devices: []types.HALDevice{
		{ID: types.IDKnob, Type: types.DeviceKnob, Params: types.KnobParams{Pin: knob, WarmupN: 16}},
		{ID: types.IDButtonA, Type: types.DeviceButton, Params: btn(btnA)},
		{ID: types.IDButtonB, Type: types.DeviceButton, Params: btn(btnB)},
		{ID: types.IDRed, Type: types.DeviceLED, Params: led(leds[types.Red])},
		{ID: types.IDGreen, Type: types.DeviceLED, Params: led(leds[types.Green])},
		{ID: types.IDBlue, Type: types.DeviceLED, Params: led(leds[types.Blue])},
	}}
}

var defaultRGBCal = types.RGBCalConfig{
	PollIntervalMs:   50,
	InitialFrameRate: 50,
	InitialLevels:    &types.ChannelLevels{types.Levels - 1, types.Levels - 1, types.Levels - 1},
	UIFrameRate:      types.DefaultFrameRate,
}

var embeddedConfigs = map[string]types.DeviceConfig{
	// Pico: potentiometer wiper on GP26/ADC0, buttons to ground on GP14/GP15,
	// common-cathode LED on GP16..GP18.
	"pico": {
		HAL:       halConfig(26, 14, 15, [3]int{16, 17, 18}, false),
		RGBCal:    defaultRGBCal,
		Heartbeat: types.HeartbeatConfig{IntervalS: 2},
	},
	// Host simulator: same numbering on fake pins.
	"host": {
		HAL:       halConfig(26, 14, 15, [3]int{16, 17, 18}, false),
		RGBCal:    defaultRGBCal,
		Heartbeat: types.HeartbeatConfig{IntervalS: 5},
	},
}
