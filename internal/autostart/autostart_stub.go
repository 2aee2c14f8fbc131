//go:build !windows

package autostart

import (
	"fmt"
)

// Stub implementation for non-Windows platforms

// Enable reports that autostart is unsupported on this platform
func Enable() error {
	return fmt.Errorf("autostart not supported on this platform")
}

// Disable is a no-op (stub)
func Disable() error {
	return nil
}

// IsEnabled always reports false (stub)
func IsEnabled() bool {
	return false
}
