//go:build !tinygo

package config

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bradlet/hw-rgbcal/errcode"
	"github.com/bradlet/hw-rgbcal/types"
)

// File layout. Device params are decoded once the type is known.
type fileConfig struct {
	HAL struct {
		Devices []fileDevice `yaml:"devices"`
	} `yaml:"hal"`
	RGBCal    types.RGBCalConfig    `yaml:"rgbcal"`
	Heartbeat types.HeartbeatConfig `yaml:"heartbeat"`
}

type fileDevice struct {
	ID     string    `yaml:"id"`
	Type   string    `yaml:"type"`
	Params yaml.Node `yaml:"params"`
}

// LoadFile reads and validates a YAML device config.
func LoadFile(path string) (types.DeviceConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return types.DeviceConfig{}, err
	}
	return Parse(b)
}

// Parse decodes and validates a YAML device config. Unknown keys are errors.
func Parse(data []byte) (types.DeviceConfig, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return types.DeviceConfig{}, errcode.Wrap(errcode.InvalidParams, "config parse", err)
	}

	out := types.DeviceConfig{RGBCal: fc.RGBCal, Heartbeat: fc.Heartbeat}
	for _, fd := range fc.HAL.Devices {
		p, err := decodeParams(fd.Type, &fd.Params)
		if err != nil {
			return types.DeviceConfig{}, &errcode.E{C: errcode.InvalidParams, Op: "config parse", Msg: fd.ID, Err: err}
		}
		out.HAL.Devices = append(out.HAL.Devices, types.HALDevice{ID: fd.ID, Type: fd.Type, Params: p})
	}
	return out, Validate(out)
}

func decodeParams(typ string, n *yaml.Node) (any, error) {
	if n.Kind == 0 {
		return nil, errcode.InvalidParams
	}
	switch typ {
	case types.DeviceKnob:
		var p types.KnobParams
		err := n.Decode(&p)
		return p, err
	case types.DeviceButton:
		p := types.ButtonParams{Pull: "up", Invert: true}
		err := n.Decode(&p)
		return p, err
	case types.DeviceLED:
		var p types.LEDParams
		err := n.Decode(&p)
		return p, err
	}
	return nil, errcode.Unsupported
}
