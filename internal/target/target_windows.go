//go:build windows

package target

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"swiftscroll/internal/winapi"
)

// Resolver answers window-under-point queries. Bursts of notches over
// the same window reuse the previous process lookup.
type Resolver struct {
	mu       sync.Mutex
	lastRoot uintptr
	lastInfo Info
}

// NewResolver creates a resolver with an empty cache
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve finds the window under the screen point and its owning
// process name
func (r *Resolver) Resolve(x, y int32) (Info, error) {
	pt := uintptr(uint32(x)) | uintptr(uint32(y))<<32
	hwnd, _, _ := winapi.WindowFromPoint.Call(pt)
	if hwnd == 0 {
		return Info{}, fmt.Errorf("%w: no window at (%d,%d)", ErrWindowLookup, x, y)
	}

	root, _, _ := winapi.GetAncestor.Call(hwnd, winapi.GA_ROOT)
	if root == 0 {
		root = hwnd
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if root == r.lastRoot {
		info := r.lastInfo
		info.Window = hwnd
		return info, nil
	}

	var pid uint32
	winapi.GetWindowThreadProcessId.Call(root, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return Info{}, fmt.Errorf("%w: no process for window %#x", ErrWindowLookup, root)
	}

	name, err := processImageStem(pid)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrWindowLookup, err)
	}

	info := Info{Window: hwnd, PID: pid, Process: name}
	r.lastRoot = root
	r.lastInfo = info
	return info, nil
}

// processImageStem returns the lowercase image-file name without its
// extension
func processImageStem(pid uint32) (string, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", fmt.Errorf("OpenProcess(%d): %w", pid, err)
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", fmt.Errorf("QueryFullProcessImageName(%d): %w", pid, err)
	}

	return Stem(windows.UTF16ToString(buf[:size])), nil
}
