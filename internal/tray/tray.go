// Package tray provides the system tray surface using
// getlantern/systray: the master toggle, the preset catalog, and the
// settings link.
package tray

import (
	"github.com/getlantern/systray"
)

// Options wires tray actions back into the application
type Options struct {
	Tooltip string

	// Presets are the catalog entries shown in menu order
	Presets []string

	// Enabled reports the current master state for the checkbox
	Enabled func() bool

	OnToggleEnabled func()
	OnPreset        func(name string)
	OnOpenSettings  func()
	OnQuit          func()
}

// Tray manages the tray icon and menu
type Tray struct {
	opts        Options
	enabledItem *systray.MenuItem
	quitCh      chan struct{}
}

// New creates a tray. Run must be called from the main goroutine.
func New(opts Options) *Tray {
	return &Tray{
		opts:   opts,
		quitCh: make(chan struct{}),
	}
}

// Run starts the tray event loop (blocks)
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Stop quits the tray loop
func (t *Tray) Stop() {
	systray.Quit()
}

// SetEnabled syncs the checkbox with the master flag
func (t *Tray) SetEnabled(enabled bool) {
	if t.enabledItem == nil {
		return
	}
	if enabled {
		t.enabledItem.Check()
	} else {
		t.enabledItem.Uncheck()
	}
}

func (t *Tray) onReady() {
	systray.SetTitle("SwiftScroll")
	systray.SetTooltip(t.opts.Tooltip)
	systray.SetIcon(iconBytes())

	enabled := t.opts.Enabled != nil && t.opts.Enabled()
	t.enabledItem = systray.AddMenuItemCheckbox("Smooth scrolling", "Toggle smooth scrolling", enabled)
	t.watch(t.enabledItem, t.opts.OnToggleEnabled)

	systray.AddSeparator()
	for _, name := range t.opts.Presets {
		item := systray.AddMenuItem(name, "Apply preset")
		preset := name
		t.watch(item, func() {
			if t.opts.OnPreset != nil {
				t.opts.OnPreset(preset)
			}
		})
	}

	systray.AddSeparator()
	settings := systray.AddMenuItem("Open settings", "Open the settings page")
	t.watch(settings, t.opts.OnOpenSettings)

	quit := systray.AddMenuItem("Quit", "Exit SwiftScroll")
	t.watch(quit, func() {
		if t.opts.OnQuit != nil {
			t.opts.OnQuit()
		}
		systray.Quit()
	})
}

func (t *Tray) onExit() {
	close(t.quitCh)
}

// watch dispatches menu clicks until the tray exits
func (t *Tray) watch(item *systray.MenuItem, fn func()) {
	go func() {
		for {
			select {
			case <-item.ClickedCh:
				if fn != nil {
					fn()
				}
			case <-t.quitCh:
				return
			}
		}
	}()
}
