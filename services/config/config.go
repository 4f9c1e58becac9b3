package config

import (
	"context"

	"github.com/bradlet/hw-rgbcal/bus"
	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/types"
	"github.com/bradlet/hw-rgbcal/x/logx"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxDeviceKey = "device" // context key used for device ID
)

// Section topics.
var (
	TopicHAL       = bus.T(configPrefix, "hal")
	TopicRGBCal    = bus.T(configPrefix, "rgbcal")
	TopicHeartbeat = bus.T(configPrefix, "heartbeat")
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) (types.DeviceConfig, bool) {
	c, ok := embeddedConfigs[device]
	return c, ok
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string

	override *types.DeviceConfig
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// Use pins cfg in place of the built-in config for the device.
func (s *ConfigService) Use(cfg types.DeviceConfig) { s.override = &cfg }

// Resolve returns the validated config for the device ID in ctx.
func (s *ConfigService) Resolve(ctx context.Context) (types.DeviceConfig, error) {
	if s.override != nil {
		return *s.override, Validate(*s.override)
	}
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return types.DeviceConfig{}, &errcode.E{C: errcode.InvalidParams, Op: serviceName, Msg: "missing device ID in context"}
	}
	cfg, ok := EmbeddedConfigLookup(device)
	if !ok {
		return types.DeviceConfig{}, &errcode.E{C: errcode.UnknownDevice, Op: serviceName, Msg: "no embedded config for device: " + device}
	}
	return cfg, Validate(cfg)
}

// Start publishes each section retained on config/<section>.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) error {
	log := logx.Named(s.Name)
	cfg, err := s.Resolve(ctx)
	if err != nil {
		log.Error("config rejected", "err", err)
		return err
	}
	conn.Publish(conn.NewMessage(TopicHAL, cfg.HAL, true))
	conn.Publish(conn.NewMessage(TopicRGBCal, cfg.RGBCal, true))
	conn.Publish(conn.NewMessage(TopicHeartbeat, cfg.Heartbeat, true))
	log.Info("config published", "devices", len(cfg.HAL.Devices))
	return nil
}
