// Package hook implements the global wheel interception layer: a
// system-wide low-level mouse hook that filters raw wheel events,
// swallows the notches the engine accepts, and forwards everything else
// up the chain.
package hook

import (
	"errors"
	"sync/atomic"
	"time"

	"swiftscroll/internal/winapi"
)

// ErrInstallFailed reports that the OS refused hook registration. It is
// non-fatal: the caller logs once and runs without smooth scrolling.
var ErrInstallFailed = errors.New("failed to install mouse hook")

// WheelEvent is a wheel notch published to subscribers. Setting Handled
// makes the layer swallow the event from the OS hook chain.
type WheelEvent struct {
	Delta   int
	X, Y    int32
	Handled bool
}

// Cache windows: wheel events arrive fast enough that repeated system
// queries would dominate hook latency, so key state and taskbar handles
// are reused within these intervals.
const (
	shiftCacheTTL   = 50 * time.Millisecond
	taskbarCacheTTL = 2 * time.Second
)

type action int

const (
	actForward action = iota
	actVertical
	actHorizontal
)

// keyCache samples a key state at most once per TTL
type keyCache struct {
	sample func() bool
	now    func() time.Time
	ttl    time.Duration
	at     time.Time
	down   bool
}

func (c *keyCache) held() bool {
	n := c.now()
	if c.at.IsZero() || n.Sub(c.at) >= c.ttl {
		c.down = c.sample()
		c.at = n
	}
	return c.down
}

// taskbarCache recognizes taskbar windows by handle equality against
// cached shell-tray lookups, refreshed every TTL
type taskbarCache struct {
	lookup   func() []uintptr
	windowAt func(x, y int32) uintptr
	now      func() time.Time
	ttl      time.Duration
	at       time.Time
	handles  []uintptr
}

func (c *taskbarCache) contains(x, y int32) bool {
	n := c.now()
	if c.at.IsZero() || n.Sub(c.at) >= c.ttl {
		c.handles = c.lookup()
		c.at = n
	}
	if len(c.handles) == 0 {
		return false
	}
	w := c.windowAt(x, y)
	if w == 0 {
		return false
	}
	for _, h := range c.handles {
		if h != 0 && h == w {
			return true
		}
	}
	return false
}

// filter is the OS-independent classification pipeline. The Windows
// callback feeds it the marshaled hook payload; everything here must
// stay cheap because it runs on every wheel notch.
type filter struct {
	shiftHorizontal atomic.Bool
	shift           keyCache
	taskbar         taskbarCache
}

func newFilter(sampleShift func() bool, lookupTray func() []uintptr, windowAt func(x, y int32) uintptr, now func() time.Time) *filter {
	return &filter{
		shift: keyCache{
			sample: sampleShift,
			now:    now,
			ttl:    shiftCacheTTL,
		},
		taskbar: taskbarCache{
			lookup:   lookupTray,
			windowAt: windowAt,
			now:      now,
			ttl:      taskbarCacheTTL,
		},
	}
}

// reset clears the caches, called on install
func (f *filter) reset() {
	f.shift.at = time.Time{}
	f.taskbar.at = time.Time{}
	f.taskbar.handles = nil
}

// classify decides what to do with a wheel message. Injected events and
// taskbar scrolling always forward unchanged; otherwise the Shift
// modifier routes vertical notches to the horizontal axis when enabled.
func (f *filter) classify(msg uint32, flags uint32, extra uintptr, x, y int32) action {
	if flags&(winapi.LLMHF_INJECTED|winapi.LLMHF_LOWER_IL_INJECTED) != 0 {
		return actForward
	}
	if extra == winapi.SyntheticExtraInfo {
		return actForward
	}
	if f.taskbar.contains(x, y) {
		return actForward
	}
	switch msg {
	case winapi.WM_MOUSEWHEEL:
		if f.shiftHorizontal.Load() && f.shift.held() {
			return actHorizontal
		}
		return actVertical
	case winapi.WM_MOUSEHWHEEL:
		return actHorizontal
	}
	return actForward
}
