// cmd/rgbcal/main.go
package main

import (
	"context"
	"time"

	"github.com/bradlet/hw-rgbcal/bus"
	"github.com/bradlet/hw-rgbcal/services/config"
	"github.com/bradlet/hw-rgbcal/services/hal"
	"github.com/bradlet/hw-rgbcal/services/hal/platform"
	"github.com/bradlet/hw-rgbcal/services/heartbeat"
	"github.com/bradlet/hw-rgbcal/services/rgbcal"
	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/logx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(bootDelay)
	println("boot")
	log := logx.Named("main")

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, deviceID)
	b := bus.NewBus(8)

	if err := config.NewConfigService().Start(ctx, b.NewConnection("config")); err != nil {
		panic(err.Error())
	}
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))

	conn := b.NewConnection("rgbcal")
	halCfg := mustRetained[types.HALConfig](conn, config.TopicHAL)
	rcCfg := mustRetained[types.RGBCalConfig](conn, config.TopicRGBCal)

	board, err := hal.Open(halCfg, platform.DefaultFactories())
	if err != nil {
		hal.PublishState(conn, "error", "open_failed", err)
		log.Error("hal open failed", "err", err)
		panic(err.Error())
	}
	hal.PublishState(conn, "ready", "configured", nil)

	deps := rgbcal.DepsFromBoard(board)
	deps.Console = platform.DefaultConsole()
	deps.Conn = conn

	err = rgbcal.Run(ctx, rgbcal.ConfigFrom(rcCfg), deps)
	log.Error("rgbcal stopped", "err", err)
	panic("fell off end of main loop")
}

func mustRetained[T any](conn *bus.Connection, topic bus.Topic) T {
	m, ok := conn.Retained(topic)
	if !ok {
		panic("no retained " + topic.String())
	}
	v, ok := m.Payload.(T)
	if !ok {
		panic("bad payload on " + topic.String())
	}
	return v
}
