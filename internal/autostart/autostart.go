// Package autostart manages the login auto-start registration.
package autostart

import (
	"log"
)

// RunValueName keys the current-user run entry
const RunValueName = "SwiftScroll"

// Sync reconciles the OS registration with the settings flag. Failures
// are logged and non-fatal.
func Sync(enabled bool) {
	var err error
	if enabled {
		err = Enable()
	} else {
		err = Disable()
	}
	if err != nil {
		log.Printf("Warning: autostart sync failed: %v", err)
	}
}
