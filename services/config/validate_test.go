package config

import (
	"testing"

	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/types"
)

func picoCopy() types.DeviceConfig {
	c := embeddedConfigs["pico"]
	c.HAL.Devices = append([]types.HALDevice(nil), c.HAL.Devices...)
	return c
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*types.DeviceConfig)
		want   errcode.Code
	}{
		{"ok", func(*types.DeviceConfig) {}, errcode.OK},
		{"zero rgbcal selects defaults", func(c *types.DeviceConfig) { c.RGBCal = types.RGBCalConfig{} }, errcode.OK},
		{"missing knob", func(c *types.DeviceConfig) { c.HAL.Devices = c.HAL.Devices[1:] }, errcode.UnknownDevice},
		{"wrong type", func(c *types.DeviceConfig) {
			c.HAL.Devices[1] = types.HALDevice{ID: types.IDButtonA, Type: types.DeviceLED, Params: types.LEDParams{Pin: 14}}
		}, errcode.InvalidParams},
		{"params mismatch", func(c *types.DeviceConfig) { c.HAL.Devices[3].Params = types.ButtonParams{Pin: 16} }, errcode.InvalidParams},
		{"shared pin", func(c *types.DeviceConfig) { c.HAL.Devices[4].Params = types.LEDParams{Pin: 16} }, errcode.PinInUse},
		{"negative pin", func(c *types.DeviceConfig) { c.HAL.Devices[5].Params = types.LEDParams{Pin: -1} }, errcode.UnknownPin},
		{"level too high", func(c *types.DeviceConfig) { c.RGBCal.InitialLevels = &types.ChannelLevels{15, 16, 15} }, errcode.LevelOutOfRange},
		{"all dark", func(c *types.DeviceConfig) { c.RGBCal.InitialLevels = &types.ChannelLevels{} }, errcode.OK},
		{"rate too high", func(c *types.DeviceConfig) { c.RGBCal.InitialFrameRate = 5000 }, errcode.InvalidParams},
		{"poll too slow", func(c *types.DeviceConfig) { c.RGBCal.PollIntervalMs = 60_000 }, errcode.InvalidParams},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := picoCopy()
			tc.mutate(&c)
			if got := errcode.Of(Validate(c)); got != tc.want {
				t.Fatalf("Validate = %q, want %q", got, tc.want)
			}
		})
	}
}
