// Package scroller wires the interception layer, the parameter
// resolver, and the engine together and manages enable/disable
// transitions.
package scroller

import (
	"log"
	"sync"
	"time"

	"swiftscroll/internal/config"
	"swiftscroll/internal/engine"
	"swiftscroll/internal/hook"
	"swiftscroll/internal/resolver"
	"swiftscroll/internal/target"
)

// WheelHook is the interception layer surface the orchestrator drives
type WheelHook interface {
	Install() error
	Uninstall() error
	SetShiftHorizontal(enabled bool)
}

// Engine is the animation core surface the orchestrator drives
type Engine interface {
	Start() error
	Stop() error
	Absorb(n engine.Notch)
	ApplySettings(params config.ScrollParams)
}

// TargetResolver maps cursor coordinates to a destination window
type TargetResolver interface {
	Resolve(x, y int32) (target.Info, error)
}

// Scroller is the orchestrator. It owns the published settings snapshot
// and the cached profile key.
type Scroller struct {
	cfgMgr *config.Manager
	hk     WheelHook
	eng    Engine
	res    TargetResolver
	now    func() time.Time

	mu         sync.Mutex
	settings   *config.Settings
	profileKey string
	active     bool
}

// New creates the orchestrator. Callers wire the hook's callbacks to
// HandleWheel / HandleHWheel.
func New(cfgMgr *config.Manager, hk WheelHook, eng Engine, res TargetResolver) *Scroller {
	s := &Scroller{
		cfgMgr:   cfgMgr,
		hk:       hk,
		eng:      eng,
		res:      res,
		now:      time.Now,
		settings: cfgMgr.Get(),
	}
	return s
}

// Start applies the current settings and brings the hook and engine up
// when the master flag is on. A hook install failure degrades to no
// smooth scrolling and is not fatal.
func (s *Scroller) Start() error {
	s.OnSettingsChanged()
	return nil
}

// Stop tears down in the required order: hook first so new notches stop
// immediately, then the engine, discarding in-flight animations.
func (s *Scroller) Stop() {
	s.hk.Uninstall()
	s.eng.Stop()

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}

// OnSettingsChanged is registered with the config manager. It takes a
// fresh snapshot, invalidates the cached profile key, propagates the
// Shift-horizontal flag, and reconciles the enabled state.
func (s *Scroller) OnSettingsChanged() {
	snapshot := s.cfgMgr.Get()

	s.mu.Lock()
	s.settings = snapshot
	s.profileKey = ""
	wasActive := s.active
	s.active = snapshot.Enabled
	s.mu.Unlock()

	s.hk.SetShiftHorizontal(snapshot.ShiftKeyHorizontal)
	s.eng.ApplySettings(snapshot.ScrollParams)

	switch {
	case snapshot.Enabled && !wasActive:
		s.eng.Start()
		if err := s.hk.Install(); err != nil {
			log.Printf("Warning: smooth scrolling unavailable: %v", err)
		}
	case !snapshot.Enabled && wasActive:
		s.hk.Uninstall()
		s.eng.Stop()
		log.Printf("Scroller: disabled, passing wheel events through")
	}
}

// SetEnabled flips the master flag through the config manager, which
// calls back into OnSettingsChanged.
func (s *Scroller) SetEnabled(enabled bool) {
	s.cfgMgr.Update(func(c *config.Settings) {
		c.Enabled = enabled
	})
	if err := s.cfgMgr.Save(); err != nil {
		log.Printf("Warning: %v", err)
	}
}

// Toggle flips the master flag and returns the new state
func (s *Scroller) Toggle() bool {
	enabled := !s.Enabled()
	s.SetEnabled(enabled)
	return enabled
}

// Enabled reports the master flag
func (s *Scroller) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Enabled
}

// HandleWheel processes a vertical notch published by the hook
func (s *Scroller) HandleWheel(ev *hook.WheelEvent) {
	s.handle(ev, engine.AxisVertical)
}

// HandleHWheel processes a horizontal notch published by the hook
func (s *Scroller) HandleHWheel(ev *hook.WheelEvent) {
	s.handle(ev, engine.AxisHorizontal)
}

// handle runs on the hook thread: snapshot read under a short lock,
// target and profile resolution, then a non-blocking publish to the
// engine. Leaving ev.Handled false forwards the notch to the OS
// unchanged.
func (s *Scroller) handle(ev *hook.WheelEvent, axis engine.Axis) {
	s.mu.Lock()
	snapshot := s.settings
	s.mu.Unlock()

	if !snapshot.Enabled {
		return
	}

	info, err := s.res.Resolve(ev.X, ev.Y)
	if err != nil {
		// No destination: keep default scrolling for this notch
		return
	}

	r := resolver.Resolve(snapshot, info.Process)
	if r.Excluded {
		return
	}

	s.mu.Lock()
	if r.ProfileKey != s.profileKey {
		s.profileKey = r.ProfileKey
		s.mu.Unlock()
		s.eng.ApplySettings(r.Params)
	} else {
		s.mu.Unlock()
	}

	delta := ev.Delta
	if r.Params.ReverseWheelDirection {
		delta = -delta
	}

	s.eng.Absorb(engine.Notch{
		Delta:  delta,
		Axis:   axis,
		Time:   s.now(),
		Target: engine.Target{Window: info.Window, X: ev.X, Y: ev.Y},
	})
	ev.Handled = true
}
