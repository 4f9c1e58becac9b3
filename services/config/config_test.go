// config/config_test.go
package config

import (
	"context"
	"testing"
	"time"

	"github.com/bradlet/hw-rgbcal/bus"
	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/types"
)

func TestEmbeddedConfigsAreValid(t *testing.T) {
	for dev, cfg := range embeddedConfigs {
		if err := Validate(cfg); err != nil {
			t.Errorf("%s: %v", dev, err)
		}
	}
}

func TestConfig_PublishRetainedPerSection(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "pico")
	if err := svc.Start(ctx, conn); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Subscribe after publish; retained messages should arrive immediately.
	sub := conn.Subscribe(bus.T(configPrefix, "#"))
	got := map[string]any{}
	deadline := time.After(600 * time.Millisecond)
	for len(got) < 3 {
		select {
		case m := <-sub.Channel():
			if m.Topic.Len() != 2 || m.Topic.At(0) != configPrefix {
				t.Fatalf("unexpected topic %v", m.Topic)
			}
			got[m.Topic.At(1)] = m.Payload
		case <-deadline:
			t.Fatalf("expected 3 retained sections, got %d (%v)", len(got), got)
		}
	}

	hal, ok := got["hal"].(types.HALConfig)
	if !ok || len(hal.Devices) != 6 {
		t.Fatalf("hal payload = %#v", got["hal"])
	}
	rc, ok := got["rgbcal"].(types.RGBCalConfig)
	if !ok || rc.PollIntervalMs != 50 || rc.InitialFrameRate != 50 {
		t.Fatalf("rgbcal payload = %#v", got["rgbcal"])
	}
	hb, ok := got["heartbeat"].(types.HeartbeatConfig)
	if !ok || hb.IntervalS != 2 {
		t.Fatalf("heartbeat payload = %#v", got["heartbeat"])
	}
}

func TestConfig_ResolveErrors(t *testing.T) {
	svc := NewConfigService()
	if _, err := svc.Resolve(context.Background()); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("missing device: %v", err)
	}
	ctx := context.WithValue(context.Background(), CtxDeviceKey, "toaster")
	if _, err := svc.Resolve(ctx); errcode.Of(err) != errcode.UnknownDevice {
		t.Fatalf("unknown device: %v", err)
	}
}

func TestConfig_LookupOverride(t *testing.T) {
	old := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) (types.DeviceConfig, bool) {
		c := embeddedConfigs["pico"]
		c.Heartbeat.IntervalS = 9
		return c, device == "bench"
	}
	t.Cleanup(func() { EmbeddedConfigLookup = old })

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "bench")
	cfg, err := NewConfigService().Resolve(ctx)
	if err != nil || cfg.Heartbeat.IntervalS != 9 {
		t.Fatalf("Resolve = %+v, %v", cfg.Heartbeat, err)
	}
}

func TestConfig_UseWinsOverDevice(t *testing.T) {
	svc := NewConfigService()
	c := embeddedConfigs["host"]
	c.RGBCal.PollIntervalMs = 10
	svc.Use(c)
	got, err := svc.Resolve(context.Background())
	if err != nil || got.RGBCal.PollIntervalMs != 10 {
		t.Fatalf("Resolve = %+v, %v", got.RGBCal, err)
	}
}
