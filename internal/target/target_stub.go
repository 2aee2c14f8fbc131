//go:build !windows

package target

import (
	"fmt"
)

// Stub resolver for non-Windows platforms

// Resolver is a stub window resolver
type Resolver struct{}

// NewResolver creates a stub resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve reports that window lookup is unsupported on this platform
func (r *Resolver) Resolve(x, y int32) (Info, error) {
	return Info{}, fmt.Errorf("%w: not supported on this platform", ErrWindowLookup)
}
