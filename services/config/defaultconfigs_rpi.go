//go:build linux && rpi && !tinygo

package config

import (
	"github.com/warthog618/gpiod/device/rpi"

	"github.com/bradlet/hw-rgbcal/types"
)

// Raspberry Pi: BCM numbering on gpiochip0, knob on IIO channel 0,
// common-anode LED.
func init() {
	embeddedConfigs["rpi"] = types.DeviceConfig{
		HAL:       halConfig(0, rpi.GPIO23, rpi.GPIO24, [3]int{rpi.GPIO17, rpi.GPIO27, rpi.GPIO22}, true),
		RGBCal:    defaultRGBCal,
		Heartbeat: types.HeartbeatConfig{IntervalS: 10},
	}
}
