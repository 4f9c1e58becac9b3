package types

// ------------------------
// HAL configuration (topic "config/hal")
// ------------------------

// Device types understood by the HAL.
const (
	DeviceKnob   = "adc_knob"
	DeviceButton = "gpio_button"
	DeviceLED    = "gpio_dout"
)

// Well-known device IDs wired by the rgbcal service.
const (
	IDKnob    = "knob"
	IDButtonA = "btn_a"
	IDButtonB = "btn_b"
	IDRed     = "led_red"
	IDGreen   = "led_green"
	IDBlue    = "led_blue"
)

type HALConfig struct {
	Devices []HALDevice `json:"devices" yaml:"devices"`
}

type HALDevice struct {
	ID     string `json:"id" yaml:"id"`     // logical device id
	Type   string `json:"type" yaml:"type"` // e.g. "gpio_button"
	Params any    `json:"params" yaml:"-"`  // one of the *Params types below
}

// Find returns the device with the given id.
func (c HALConfig) Find(id string) (HALDevice, bool) {
	for _, d := range c.Devices {
		if d.ID == id {
			return d, true
		}
	}
	return HALDevice{}, false
}

// ------------------------
// Device params
// ------------------------

type KnobParams struct {
	Pin     int `json:"pin" yaml:"pin"`
	WarmupN int `json:"warmup_n" yaml:"warmup_n"` // samples discarded during calibration
}

type ButtonParams struct {
	Pin    int    `json:"pin" yaml:"pin"`
	Pull   string `json:"pull" yaml:"pull"`     // "none","up","down"
	Invert bool   `json:"invert" yaml:"invert"` // true if pressed == low
}

type LEDParams struct {
	Pin       int  `json:"pin" yaml:"pin"`
	ActiveLow bool `json:"active_low" yaml:"active_low"`
}

// HALState is the retained record on "hal/state".
type HALState struct {
	Level  string `json:"level"`  // "idle", "ready", "error", "stopped"
	Status string `json:"status"` // short reason
	Error  string `json:"error,omitempty"`
	TSms   int64  `json:"ts_ms"`
}
