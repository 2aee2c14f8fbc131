package hook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"swiftscroll/internal/winapi"
)

// fakeClock steps time manually for cache TTL tests
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type filterEnv struct {
	clock       *fakeClock
	shiftDown   bool
	shiftCalls  int
	trayHandles []uintptr
	trayCalls   int
	windowUnder uintptr
}

func newFilterEnv() (*filter, *filterEnv) {
	env := &filterEnv{clock: &fakeClock{t: time.Unix(1000, 0)}}
	f := newFilter(
		func() bool { env.shiftCalls++; return env.shiftDown },
		func() []uintptr { env.trayCalls++; return env.trayHandles },
		func(x, y int32) uintptr { return env.windowUnder },
		env.clock.now,
	)
	return f, env
}

func TestInjectedEventsForwardUnchanged(t *testing.T) {
	f, _ := newFilterEnv()

	assert.Equal(t, actForward,
		f.classify(winapi.WM_MOUSEWHEEL, winapi.LLMHF_INJECTED, 0, 0, 0))
	assert.Equal(t, actForward,
		f.classify(winapi.WM_MOUSEWHEEL, winapi.LLMHF_LOWER_IL_INJECTED, 0, 0, 0))
	assert.Equal(t, actForward,
		f.classify(winapi.WM_MOUSEHWHEEL, winapi.LLMHF_INJECTED|winapi.LLMHF_LOWER_IL_INJECTED, 0, 0, 0))
}

func TestSignatureTaggedEventsForwardUnchanged(t *testing.T) {
	f, _ := newFilterEnv()

	assert.Equal(t, actForward,
		f.classify(winapi.WM_MOUSEWHEEL, 0, winapi.SyntheticExtraInfo, 0, 0))
}

func TestTaskbarEventsForwardUnchanged(t *testing.T) {
	f, env := newFilterEnv()
	env.trayHandles = []uintptr{0xAA, 0xBB}
	env.windowUnder = 0xBB

	assert.Equal(t, actForward, f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 10, 10))

	// A non-taskbar window under the cursor publishes normally
	env.windowUnder = 0xCC
	env.clock.advance(taskbarCacheTTL)
	assert.Equal(t, actVertical, f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 10, 10))
}

func TestVerticalWheelRouting(t *testing.T) {
	f, env := newFilterEnv()

	assert.Equal(t, actVertical, f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 0, 0))

	// Shift held but conversion disabled: still vertical
	env.shiftDown = true
	env.clock.advance(time.Second)
	assert.Equal(t, actVertical, f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 0, 0))

	// Conversion enabled and Shift held: horizontal
	f.shiftHorizontal.Store(true)
	env.clock.advance(time.Second)
	assert.Equal(t, actHorizontal, f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 0, 0))
}

func TestHorizontalWheelAlwaysHorizontal(t *testing.T) {
	f, _ := newFilterEnv()
	assert.Equal(t, actHorizontal, f.classify(winapi.WM_MOUSEHWHEEL, 0, 0, 0, 0))

	f.shiftHorizontal.Store(true)
	assert.Equal(t, actHorizontal, f.classify(winapi.WM_MOUSEHWHEEL, 0, 0, 0, 0))
}

func TestUnknownMessageForwards(t *testing.T) {
	f, _ := newFilterEnv()
	assert.Equal(t, actForward, f.classify(0x0200, 0, 0, 0, 0)) // WM_MOUSEMOVE
}

func TestShiftStateCachedWithinWindow(t *testing.T) {
	f, env := newFilterEnv()
	f.shiftHorizontal.Store(true)

	f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 0, 0)
	f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 0, 0)
	f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 0, 0)
	assert.Equal(t, 1, env.shiftCalls, "shift sampled once within the cache window")

	env.clock.advance(shiftCacheTTL)
	f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 0, 0)
	assert.Equal(t, 2, env.shiftCalls, "cache expires after its TTL")
}

func TestTaskbarHandlesCachedWithinWindow(t *testing.T) {
	f, env := newFilterEnv()

	f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 0, 0)
	f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 0, 0)
	assert.Equal(t, 1, env.trayCalls)

	env.clock.advance(taskbarCacheTTL)
	f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 0, 0)
	assert.Equal(t, 2, env.trayCalls)
}

func TestResetClearsCaches(t *testing.T) {
	f, env := newFilterEnv()

	f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 0, 0)
	assert.Equal(t, 1, env.trayCalls)

	f.reset()
	f.classify(winapi.WM_MOUSEWHEEL, 0, 0, 0, 0)
	assert.Equal(t, 2, env.trayCalls, "install resets cached system queries")
}

func TestWheelDeltaExtraction(t *testing.T) {
	assert.Equal(t, 120, winapi.WheelDeltaFromMouseData(uint32(120)<<16))
	negDelta := int16(-120)
	assert.Equal(t, -120, winapi.WheelDeltaFromMouseData(uint32(uint16(negDelta))<<16))
	assert.Equal(t, 0, winapi.WheelDeltaFromMouseData(0))
}
