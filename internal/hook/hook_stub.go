//go:build !windows

package hook

import (
	"fmt"
)

// Stub implementation for non-Windows platforms

// Hook is a stub wheel interception layer
type Hook struct {
	OnWheel  func(*WheelEvent)
	OnHWheel func(*WheelEvent)
}

// New creates a stub hook
func New() *Hook {
	return &Hook{}
}

// SetShiftHorizontal is a no-op (stub)
func (h *Hook) SetShiftHorizontal(enabled bool) {}

// Install reports that hooks are unsupported on this platform
func (h *Hook) Install() error {
	return fmt.Errorf("%w: not supported on this platform", ErrInstallFailed)
}

// Uninstall is a no-op (stub)
func (h *Hook) Uninstall() error {
	return nil
}
