//go:build !rp2040 && !rp2350 && !rpi

package main

import "time"

const (
	deviceID  = "host"
	bootDelay time.Duration = 0
)
