//go:build windows

package autostart

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows/registry"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// Enable registers the running executable in the current-user run key
func Enable() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open run key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(RunValueName, exe); err != nil {
		return fmt.Errorf("failed to write run entry: %w", err)
	}
	return nil
}

// Disable removes the run entry if present
func Disable() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open run key: %w", err)
	}
	defer key.Close()

	if err := key.DeleteValue(RunValueName); err != nil && err != registry.ErrNotExist {
		return fmt.Errorf("failed to delete run entry: %w", err)
	}
	return nil
}

// IsEnabled checks whether the run entry exists
func IsEnabled() bool {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer key.Close()

	_, _, err = key.GetStringValue(RunValueName)
	return err == nil
}
