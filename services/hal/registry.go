// services/hal/registry.go
package hal

import (
	"fmt"
	"sync"

	"github.com/bradlet/hw-rgbcal/errcode"
)

// BuildInput is provided to a device builder.
type BuildInput struct {
	DeviceID string
	Type     string
	Params   any
	Res      *Resources
}

// Builder constructs a Device from config and platform resources.
type Builder interface {
	Build(in BuildInput) (Device, error)
}

var (
	muBuilders sync.RWMutex
	builders   = map[string]Builder{}
)

// RegisterBuilder installs a builder for a given device type string.
// It panics on duplicate registration to catch mistakes at start-up.
func RegisterBuilder(deviceType string, b Builder) {
	muBuilders.Lock()
	defer muBuilders.Unlock()
	if deviceType == "" {
		panic("hal: empty device type for builder")
	}
	if _, exists := builders[deviceType]; exists {
		panic(fmt.Sprintf("hal: builder already registered for type %q", deviceType))
	}
	builders[deviceType] = b
}

// findBuilder looks up a registered builder by type.
func findBuilder(deviceType string) (Builder, bool) {
	muBuilders.RLock()
	defer muBuilders.RUnlock()
	b, ok := builders[deviceType]
	return b, ok
}

// Resources hands platform factories to builders and tracks pin ownership.
type Resources struct {
	f Factories

	mu     sync.Mutex
	owners map[int]string // pin -> device id
}

func newResources(f Factories) *Resources {
	return &Resources{f: f, owners: make(map[int]string)}
}

// ClaimPin reserves pin n for dev and returns the GPIO line.
func (r *Resources) ClaimPin(dev string, n int) (GPIOPin, error) {
	if r.f.Pins == nil {
		return nil, errcode.HALNotReady
	}
	if err := r.claim(dev, n); err != nil {
		return nil, err
	}
	p, ok := r.f.Pins.ByNumber(n)
	if !ok {
		r.ReleasePin(dev, n)
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "claim " + dev, Msg: itoa(n)}
	}
	return p, nil
}

// ClaimADC reserves pin n for dev and returns its analog channel.
func (r *Resources) ClaimADC(dev string, n int) (ADC, error) {
	if r.f.ADCs == nil {
		return nil, errcode.HALNotReady
	}
	if err := r.claim(dev, n); err != nil {
		return nil, err
	}
	a, ok := r.f.ADCs.ByPin(n)
	if !ok {
		r.ReleasePin(dev, n)
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "claim " + dev, Msg: itoa(n)}
	}
	return a, nil
}

func (r *Resources) claim(dev string, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, taken := r.owners[n]; taken && owner != dev {
		return &errcode.E{C: errcode.PinInUse, Op: "claim " + dev, Msg: "pin " + itoa(n) + " held by " + owner}
	}
	r.owners[n] = dev
	return nil
}

// ReleasePin frees pin n if dev owns it.
func (r *Resources) ReleasePin(dev string, n int) {
	r.mu.Lock()
	if r.owners[n] == dev {
		delete(r.owners, n)
	}
	r.mu.Unlock()
}
