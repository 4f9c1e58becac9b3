//go:build linux && rpi && !tinygo

package main

import "time"

const (
	deviceID  = "rpi"
	bootDelay time.Duration = 0
)
