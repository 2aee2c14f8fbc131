// Package resolver selects the per-application scrolling behavior: the
// exclusion decision and the parameter profile the engine should run
// with for the process under the cursor.
package resolver

import (
	"swiftscroll/internal/config"
)

// ProfileKeyGlobal is the sentinel profile key meaning the global
// defaults apply. The orchestrator compares keys across calls and only
// reconfigures the engine when the key changes.
const ProfileKeyGlobal = "<global>"

// Result is the effective behavior for one process
type Result struct {
	// Excluded means the scroller acts as a pure pass-through
	Excluded bool

	// Params are the effective animation parameters
	Params config.ScrollParams

	// ProfileKey identifies the selected profile, or ProfileKeyGlobal
	ProfileKey string
}

// Resolve picks the behavior for a process name. All name comparisons
// are case-insensitive. A mapped-but-missing profile falls back to the
// global defaults.
func Resolve(s *config.Settings, process string) Result {
	if s.IsExcluded(process) {
		return Result{Excluded: true}
	}

	if name, ok := s.ProfileNameFor(process); ok {
		if p, err := s.FindProfile(name); err == nil {
			return Result{Params: p.ScrollParams, ProfileKey: p.Name}
		}
	}

	return Result{Params: s.ScrollParams, ProfileKey: ProfileKeyGlobal}
}
