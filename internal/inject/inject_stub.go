//go:build !windows

package inject

import (
	"fmt"

	"swiftscroll/internal/engine"
)

// Stub injector for non-Windows platforms

// Injector is a stub wheel injector
type Injector struct{}

// NewInjector creates a stub injector
func NewInjector() *Injector {
	return &Injector{}
}

// EmitWheel reports that injection is unsupported on this platform
func (i *Injector) EmitWheel(t engine.Target, axis engine.Axis, pixels int) error {
	return fmt.Errorf("%w: not supported on this platform", ErrInjection)
}
