package scroller

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftscroll/internal/config"
	"swiftscroll/internal/engine"
	"swiftscroll/internal/hook"
	"swiftscroll/internal/target"
)

type fakeHook struct {
	installed  bool
	installs   int
	uninstalls int
	shiftFlag  bool
	installErr error
}

func (f *fakeHook) Install() error {
	f.installs++
	if f.installErr != nil {
		return f.installErr
	}
	f.installed = true
	return nil
}

func (f *fakeHook) Uninstall() error {
	f.uninstalls++
	f.installed = false
	return nil
}

func (f *fakeHook) SetShiftHorizontal(enabled bool) { f.shiftFlag = enabled }

type fakeEngine struct {
	running  bool
	absorbed []engine.Notch
	applied  []config.ScrollParams
}

func (f *fakeEngine) Start() error { f.running = true; return nil }

func (f *fakeEngine) Stop() error { f.running = false; return nil }

func (f *fakeEngine) Absorb(n engine.Notch) { f.absorbed = append(f.absorbed, n) }

func (f *fakeEngine) ApplySettings(p config.ScrollParams) { f.applied = append(f.applied, p) }

type fakeResolver struct {
	info target.Info
	err  error
}

func (f *fakeResolver) Resolve(x, y int32) (target.Info, error) { return f.info, f.err }

func newTestScroller(t *testing.T, mutate func(*config.Settings)) (*Scroller, *fakeHook, *fakeEngine, *fakeResolver) {
	t.Helper()
	mgr := config.NewManagerAt(filepath.Join(t.TempDir(), config.SettingsFileName))
	if mutate != nil {
		mgr.Update(mutate)
	}

	hk := &fakeHook{}
	eng := &fakeEngine{}
	res := &fakeResolver{info: target.Info{Window: 0x42, PID: 7, Process: "chrome"}}

	s := New(mgr, hk, eng, res)
	mgr.RegisterChangeCallback(s.OnSettingsChanged)
	require.NoError(t, s.Start())
	return s, hk, eng, res
}

func wheelEvent() *hook.WheelEvent {
	return &hook.WheelEvent{Delta: 120, X: 50, Y: 60}
}

func TestNotchSwallowedAndAbsorbed(t *testing.T) {
	s, _, eng, _ := newTestScroller(t, nil)

	ev := wheelEvent()
	s.HandleWheel(ev)

	assert.True(t, ev.Handled, "accepted notches are swallowed from the OS chain")
	require.Len(t, eng.absorbed, 1)
	n := eng.absorbed[0]
	assert.Equal(t, 120, n.Delta)
	assert.Equal(t, engine.AxisVertical, n.Axis)
	assert.Equal(t, uintptr(0x42), n.Target.Window)
	assert.Equal(t, int32(50), n.Target.X)
	assert.Equal(t, int32(60), n.Target.Y)
}

func TestDisabledPassesThrough(t *testing.T) {
	s, hk, eng, _ := newTestScroller(t, func(c *config.Settings) {
		c.Enabled = false
	})

	ev := wheelEvent()
	s.HandleWheel(ev)

	assert.False(t, ev.Handled, "disabled: the notch is not swallowed")
	assert.Empty(t, eng.absorbed, "disabled: nothing reaches the engine")
	assert.False(t, hk.installed)
	assert.False(t, eng.running)
}

func TestExcludedAppPassesThrough(t *testing.T) {
	s, _, eng, res := newTestScroller(t, func(c *config.Settings) {
		c.ExcludedApps = []string{"Notepad"}
	})
	res.info.Process = "notepad"

	ev := wheelEvent()
	s.HandleWheel(ev)

	assert.False(t, ev.Handled)
	assert.Empty(t, eng.absorbed)
}

func TestWindowLookupFailureForwardsUnchanged(t *testing.T) {
	s, _, eng, res := newTestScroller(t, nil)
	res.err = target.ErrWindowLookup

	ev := wheelEvent()
	s.HandleWheel(ev)

	assert.False(t, ev.Handled)
	assert.Empty(t, eng.absorbed)
}

func TestReverseWheelDirectionFlipsSign(t *testing.T) {
	s, _, eng, _ := newTestScroller(t, func(c *config.Settings) {
		c.ReverseWheelDirection = true
	})

	s.HandleWheel(wheelEvent())

	require.Len(t, eng.absorbed, 1)
	assert.Equal(t, -120, eng.absorbed[0].Delta)
}

func TestProfileKeyCachedAcrossNotches(t *testing.T) {
	s, _, eng, res := newTestScroller(t, func(c *config.Settings) {
		fast := config.Profile{Name: "Fast", ScrollParams: c.ScrollParams}
		fast.StepSizePx = 20
		c.Profiles = append(c.Profiles, fast)
		c.AppProfiles = []config.AppProfile{{AppName: "game", ProfileName: "Fast"}}
	})

	applied := len(eng.applied)
	s.HandleWheel(wheelEvent())
	s.HandleWheel(wheelEvent())
	s.HandleWheel(wheelEvent())
	assert.Equal(t, applied+1, len(eng.applied),
		"same profile key: the engine is reconfigured once, not per notch")

	// Hovering a process mapped to another profile reconfigures
	res.info.Process = "game"
	s.HandleWheel(wheelEvent())
	require.Equal(t, applied+2, len(eng.applied))
	assert.Equal(t, 20, eng.applied[len(eng.applied)-1].StepSizePx)
}

func TestSettingsChangeInvalidatesProfileKey(t *testing.T) {
	s, hk, eng, _ := newTestScroller(t, nil)

	s.HandleWheel(wheelEvent())
	before := len(eng.applied)

	s.cfgMgr.Update(func(c *config.Settings) {
		c.ShiftKeyHorizontal = false
		c.StepSizePx = 5
	})

	assert.False(t, hk.shiftFlag, "shift-horizontal flag propagates to the hook")

	s.HandleWheel(wheelEvent())
	assert.Greater(t, len(eng.applied), before,
		"a settings change forces the next notch to reconfigure the engine")
	assert.Equal(t, 5, eng.applied[len(eng.applied)-1].StepSizePx)
}

func TestDisableUninstallsHookThenStopsEngine(t *testing.T) {
	s, hk, eng, _ := newTestScroller(t, nil)
	require.True(t, hk.installed)
	require.True(t, eng.running)

	s.SetEnabled(false)
	assert.False(t, hk.installed)
	assert.False(t, eng.running)

	s.SetEnabled(true)
	assert.True(t, hk.installed)
	assert.True(t, eng.running)
}

func TestHookInstallFailureIsNonFatal(t *testing.T) {
	mgr := config.NewManagerAt(filepath.Join(t.TempDir(), config.SettingsFileName))
	hk := &fakeHook{installErr: hook.ErrInstallFailed}
	eng := &fakeEngine{}
	res := &fakeResolver{info: target.Info{Window: 1, Process: "chrome"}}

	s := New(mgr, hk, eng, res)
	require.NoError(t, s.Start(), "hook failure degrades, it does not abort startup")
	assert.True(t, eng.running)
}

func TestHorizontalNotchRoutesToHorizontalAxis(t *testing.T) {
	s, _, eng, _ := newTestScroller(t, nil)

	s.HandleHWheel(wheelEvent())

	require.Len(t, eng.absorbed, 1)
	assert.Equal(t, engine.AxisHorizontal, eng.absorbed[0].Axis)
}

func TestToggle(t *testing.T) {
	s, _, _, _ := newTestScroller(t, nil)

	assert.False(t, s.Toggle())
	assert.False(t, s.Enabled())
	assert.True(t, s.Toggle())
	assert.True(t, s.Enabled())
}
