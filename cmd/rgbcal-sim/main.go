//go:build !rp2040 && !rp2350 && !rpi && !tinygo

// Command rgbcal-sim runs the calibration loops on fake pins. The knob
// walks a scripted list of raw samples and the buttons cycle through
// none, A, B and A+B so every target gets exercised.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tarm/serial"

	"github.com/bradlet/hw-rgbcal/bus"
	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/services/config"
	"github.com/bradlet/hw-rgbcal/services/hal"
	"github.com/bradlet/hw-rgbcal/services/hal/platform"
	"github.com/bradlet/hw-rgbcal/services/heartbeat"
	"github.com/bradlet/hw-rgbcal/services/rgbcal"
	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/logx"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "YAML device config (default: built-in for -device)")
		device   = flag.String("device", "host", "built-in config to use")
		console  = flag.String("console", "", "serial device for the diagnostic display (default stdout)")
		baud     = flag.Int("baud", 115200, "baud rate for -console")
		script   = flag.String("knob", "0,4000,8000,12000,20000,32767", "comma-separated raw knob samples")
		step     = flag.Duration("step", 400*time.Millisecond, "time per knob sample")
		hold     = flag.Duration("hold", 3*time.Second, "time per button combination")
		duration = flag.Duration("duration", 0, "stop after this long (0 runs until interrupted)")
		verbose  = flag.Bool("v", false, "development logging")
	)
	flag.Parse()

	l, err := logx.New(*verbose)
	if err != nil {
		panic(err)
	}
	logx.Set(l)
	log := logx.Named("sim")

	samples, err := parseScript(*script)
	if err != nil {
		log.Error("bad -knob script", "err", err)
		os.Exit(2)
	}

	out, closeOut, err := openConsole(*console, *baud)
	if err != nil {
		log.Error("open console", "device", *console, "err", err)
		os.Exit(1)
	}
	defer closeOut()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}
	ctx = context.WithValue(ctx, config.CtxDeviceKey, *device)

	b := bus.NewBus(8)
	cfgSvc := config.NewConfigService()
	if *cfgPath != "" {
		c, err := config.LoadFile(*cfgPath)
		if err != nil {
			log.Error("load config", "path", *cfgPath, "err", err)
			os.Exit(1)
		}
		cfgSvc.Use(c)
	}
	if err := cfgSvc.Start(ctx, b.NewConnection("config")); err != nil {
		os.Exit(1)
	}
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))

	conn := b.NewConnection("rgbcal")
	halCfg := mustRetained[types.HALConfig](conn, config.TopicHAL)
	rcCfg := mustRetained[types.RGBCalConfig](conn, config.TopicRGBCal)

	host := platform.NewHost()
	board, err := hal.Open(halCfg, host.Factories())
	if err != nil {
		hal.PublishState(conn, "error", "open_failed", err)
		log.Error("hal open failed", "err", err)
		os.Exit(1)
	}
	defer board.Close()
	hal.PublishState(conn, "ready", "configured", nil)

	go driveInputs(ctx, host, halCfg, samples, *step, *hold)

	deps := rgbcal.DepsFromBoard(board)
	deps.Console = out
	deps.Conn = conn
	deps.Session = uuid.New().String()
	log.Info("simulation started", "session", deps.Session, "knob_samples", len(samples))

	err = rgbcal.Run(ctx, rgbcal.ConfigFrom(rcCfg), deps)
	if ctx.Err() != nil {
		log.Info("simulation finished", "err", err)
		return
	}
	log.Error("rgbcal stopped", "code", string(errcode.Of(err)), "err", err)
	panic("fell off end of main loop")
}

func parseScript(s string) ([]int32, error) {
	var out []int32
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseInt(f, 0, 32)
		if err != nil {
			return nil, err
		}
		out = append(out, int32(v))
	}
	if len(out) == 0 {
		return nil, errcode.InvalidParams
	}
	return out, nil
}

func openConsole(dev string, baud int) (io.Writer, func(), error) {
	if dev == "" {
		return os.Stdout, func() {}, nil
	}
	p, err := serial.OpenPort(&serial.Config{Name: dev, Baud: baud})
	if err != nil {
		return nil, nil, err
	}
	return p, func() { _ = p.Close() }, nil
}

// driveInputs moves the fake knob and buttons. Buttons are driven at the
// level that reads as pressed for their configured polarity.
func driveInputs(ctx context.Context, host *platform.Host, cfg types.HALConfig, samples []int32, step, hold time.Duration) {
	knob, _ := cfg.Find(types.IDKnob)
	adc := host.ADCs.Get(knob.Params.(types.KnobParams).Pin)

	type line struct {
		pin    *platform.FakePin
		invert bool
	}
	button := func(id string) line {
		d, _ := cfg.Find(id)
		p := d.Params.(types.ButtonParams)
		return line{pin: host.Pins.Get(p.Pin), invert: p.Invert}
	}
	a, bb := button(types.IDButtonA), button(types.IDButtonB)
	press := func(l line, on bool) { l.pin.Set(on != l.invert) }

	combos := [4][2]bool{{false, false}, {true, false}, {false, true}, {true, true}}
	knobTick := time.NewTicker(step)
	defer knobTick.Stop()
	btnTick := time.NewTicker(hold)
	defer btnTick.Stop()

	i, c := 0, 0
	adc.Set(samples[0])
	press(a, false)
	press(bb, false)
	for {
		select {
		case <-ctx.Done():
			return
		case <-knobTick.C:
			i = (i + 1) % len(samples)
			adc.Set(samples[i])
		case <-btnTick.C:
			c = (c + 1) % len(combos)
			press(a, combos[c][0])
			press(bb, combos[c][1])
		}
	}
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
