//go:build !windows

package hotkey

import (
	"fmt"
)

// Stub listener for non-Windows platforms

// Listener is a stub toggle-hotkey listener
type Listener struct{}

// NewListener creates a stub listener
func NewListener(onToggle func()) *Listener {
	return &Listener{}
}

// Start reports that global hotkeys are unsupported on this platform
func (l *Listener) Start() error {
	return fmt.Errorf("global hotkeys not supported on this platform")
}

// Stop is a no-op (stub)
func (l *Listener) Stop() error {
	return nil
}
