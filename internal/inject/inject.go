// Package inject synthesizes wheel events toward a target window.
package inject

import (
	"errors"

	"swiftscroll/internal/engine"
)

// ErrInjection reports a failed synthetic emission. The engine keeps the
// pixels owed and retries on a later tick.
var ErrInjection = errors.New("failed to inject wheel event")

// WheelUnitsPerPixel scales engine pixels into the platform's
// notches-times-120 wheel units: the default 12 px step maps to one
// hardware notch of 120.
const WheelUnitsPerPixel = 10

// Units converts a signed pixel delta into wheel units
func Units(pixels int) int {
	return pixels * WheelUnitsPerPixel
}

var _ engine.Emitter = (*Injector)(nil)
