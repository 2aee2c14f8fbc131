// Package target maps cursor coordinates to the destination window and
// its owning process, the "scroll what you hover" rule.
package target

import (
	"errors"
	"strings"
)

// ErrWindowLookup reports that no window could be resolved under the
// cursor. The caller drops or forwards the notch; nothing is emitted.
var ErrWindowLookup = errors.New("failed to resolve window under cursor")

// Info describes the destination of a notch
type Info struct {
	// Window receives the synthetic wheel events
	Window uintptr

	// PID of the window's owning process
	PID uint32

	// Process is the owning image-file stem: no extension, lowercase
	Process string
}

// Stem reduces a process image path to its comparison form: base name,
// extension stripped, lowercased. Separators are handled explicitly so
// behavior does not depend on the build platform.
func Stem(imagePath string) string {
	base := imagePath
	if i := strings.LastIndexAny(base, `\/`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return strings.ToLower(base)
}
