// Package config provides settings management for the smooth scroller.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Settings failures. Both are non-fatal: the loader falls back to
// compiled defaults and the process keeps running.
var (
	ErrSettingsLoad = errors.New("failed to load settings")
	ErrSettingsSave = errors.New("failed to save settings")

	// ErrProfileNotFound is returned when a profile name does not resolve
	ErrProfileNotFound = errors.New("profile not found")
)

// DefaultProfileName is the first profile in every settings file. It can
// be edited but never removed.
const DefaultProfileName = "Default"

// ScrollParams is the tuple of runtime parameters driving the engine.
// It appears twice in the settings document: once as the global defaults
// and once per named profile.
type ScrollParams struct {
	// StepSizePx is the pixels contributed by a single notch before
	// amplification. Clamped to 1..25.
	StepSizePx int `json:"step_size_px"`

	// AnimationTimeMs is the nominal lifetime of one notch's contribution
	AnimationTimeMs int `json:"animation_time_ms"`

	// AccelerationDeltaMs is the inter-notch interval below which
	// acceleration stacks
	AccelerationDeltaMs int `json:"acceleration_delta_ms"`

	// AccelerationMax caps the stacked acceleration multiplier
	AccelerationMax int `json:"acceleration_max"`

	// TailToHeadRatio is how much longer the decaying tail is than the
	// accelerating head
	TailToHeadRatio int `json:"tail_to_head_ratio"`

	// AnimationEasing selects the eased curve over the linear one
	AnimationEasing bool `json:"animation_easing"`

	// HorizontalSmoothness animates the horizontal axis; when false,
	// horizontal notches are emitted in a single burst
	HorizontalSmoothness bool `json:"horizontal_smoothness"`

	// ReverseWheelDirection flips the sign of incoming notches
	ReverseWheelDirection bool `json:"reverse_wheel_direction"`
}

// Profile is a named parameter tuple applied to specific processes
type Profile struct {
	Name string `json:"name"`
	ScrollParams
}

// AppProfile binds a process name to a profile name. Kept as a list
// rather than a map so insertion order survives round-trips.
type AppProfile struct {
	AppName     string `json:"app_name"`
	ProfileName string `json:"profile_name"`
}

// Settings is the application configuration
type Settings struct {
	// Enabled is the master kill-switch
	Enabled bool `json:"enabled"`

	// ShiftKeyHorizontal routes wheel+Shift to the horizontal axis
	ShiftKeyHorizontal bool `json:"shift_key_horizontal"`

	// StartOnBoot registers the executable in the current-user run key
	StartOnBoot bool `json:"start_on_boot"`

	// UIPort is the local port for the settings surface
	UIPort int `json:"ui_port"`

	// Global defaults for every animation parameter
	ScrollParams

	// ExcludedApps are process names the scroller passes through,
	// case-insensitive
	ExcludedApps []string `json:"excluded_apps"`

	// Profiles is the ordered profile list; the first entry is "Default"
	Profiles []Profile `json:"profiles"`

	// AppProfiles selects which profile applies to which process
	AppProfiles []AppProfile `json:"app_profiles"`
}

// Default returns the compiled defaults (the Windows Classic preset)
func Default() *Settings {
	params := PresetWindowsClassic.Params
	return &Settings{
		Enabled:            true,
		ShiftKeyHorizontal: true,
		StartOnBoot:        false,
		UIPort:             18090,
		ScrollParams:       params,
		ExcludedApps:       []string{},
		Profiles: []Profile{
			{Name: DefaultProfileName, ScrollParams: params},
		},
		AppProfiles: []AppProfile{},
	}
}

// Normalize clamps every parameter into its documented range and
// restores the structural invariants: a non-empty profile list headed by
// "Default" with case-insensitively unique names.
func (s *Settings) Normalize() {
	s.ScrollParams.clamp()

	seen := make(map[string]bool)
	profiles := s.Profiles[:0]
	for _, p := range s.Profiles {
		key := strings.ToLower(p.Name)
		if p.Name == "" || seen[key] {
			continue
		}
		seen[key] = true
		p.ScrollParams.clamp()
		profiles = append(profiles, p)
	}
	s.Profiles = profiles

	if len(s.Profiles) == 0 || !strings.EqualFold(s.Profiles[0].Name, DefaultProfileName) {
		if i := s.profileIndex(DefaultProfileName); i > 0 {
			def := s.Profiles[i]
			s.Profiles = append(s.Profiles[:i], s.Profiles[i+1:]...)
			s.Profiles = append([]Profile{def}, s.Profiles...)
		} else if i < 0 {
			def := Profile{Name: DefaultProfileName, ScrollParams: s.ScrollParams}
			s.Profiles = append([]Profile{def}, s.Profiles...)
		}
	}
}

func (p *ScrollParams) clamp() {
	if p.StepSizePx < 1 {
		p.StepSizePx = 1
	}
	if p.StepSizePx > 25 {
		p.StepSizePx = 25
	}
	if p.AnimationTimeMs < 1 {
		p.AnimationTimeMs = 1
	}
	if p.AccelerationDeltaMs < 0 {
		p.AccelerationDeltaMs = 0
	}
	if p.AccelerationMax < 1 {
		p.AccelerationMax = 1
	}
	if p.TailToHeadRatio < 1 {
		p.TailToHeadRatio = 1
	}
}

func (s *Settings) profileIndex(name string) int {
	for i := range s.Profiles {
		if strings.EqualFold(s.Profiles[i].Name, name) {
			return i
		}
	}
	return -1
}

// FindProfile looks up a profile by name, case-insensitive
func (s *Settings) FindProfile(name string) (*Profile, error) {
	if i := s.profileIndex(name); i >= 0 {
		return &s.Profiles[i], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// IsExcluded reports whether the process name is in the exclusion list
func (s *Settings) IsExcluded(process string) bool {
	for _, app := range s.ExcludedApps {
		if strings.EqualFold(app, process) {
			return true
		}
	}
	return false
}

// ProfileNameFor returns the profile name mapped to the process, if any
func (s *Settings) ProfileNameFor(process string) (string, bool) {
	for _, ap := range s.AppProfiles {
		if strings.EqualFold(ap.AppName, process) {
			return ap.ProfileName, true
		}
	}
	return "", false
}

// Clone returns a deep copy so published snapshots stay immutable
func (s *Settings) Clone() *Settings {
	out := *s
	out.ExcludedApps = append([]string(nil), s.ExcludedApps...)
	out.Profiles = append([]Profile(nil), s.Profiles...)
	out.AppProfiles = append([]AppProfile(nil), s.AppProfiles...)
	return &out
}

// SettingsFileName is the portable settings document kept beside the
// executable.
const SettingsFileName = "settings.json"

// Manager handles loading, saving and watching the settings document.
// Readers get an immutable snapshot; Set replaces it wholesale.
type Manager struct {
	mu        sync.Mutex
	path      string
	settings  *Settings
	onChanged func()
}

// NewManager creates a manager rooted beside the executable. A legacy
// per-user settings file is migrated into place on first start.
func NewManager() (*Manager, error) {
	path, err := settingsPath()
	if err != nil {
		return nil, err
	}
	migrateLegacy(path)

	return &Manager{
		path:     path,
		settings: Default(),
	}, nil
}

// NewManagerAt creates a manager for an explicit settings path
func NewManagerAt(path string) *Manager {
	return &Manager{
		path:     path,
		settings: Default(),
	}
}

// Path returns the settings file location
func (m *Manager) Path() string {
	return m.path
}

func settingsPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), SettingsFileName), nil
}

// migrateLegacy copies an older per-user settings file beside the
// executable when no portable file exists yet.
func migrateLegacy(portable string) {
	if _, err := os.Stat(portable); err == nil {
		return
	}
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return
	}
	legacy := filepath.Join(appData, "SwiftScroll", SettingsFileName)
	src, err := os.Open(legacy)
	if err != nil {
		return
	}
	defer src.Close()

	dst, err := os.Create(portable)
	if err != nil {
		log.Printf("Config: legacy settings found but migration failed: %v", err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		log.Printf("Config: legacy settings migration failed: %v", err)
		return
	}
	log.Printf("Config: migrated legacy settings from %s", legacy)
}

// Load reads the settings from disk. A missing or malformed file leaves
// the compiled defaults in place.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsLoad, err)
	}

	// Decode over a fresh default so missing fields inherit defaults and
	// unknown fields are ignored.
	loaded := Default()
	if err := json.Unmarshal(data, loaded); err != nil {
		log.Printf("Warning: malformed settings file, using defaults: %v", err)
		m.mu.Lock()
		m.settings = Default()
		m.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrSettingsLoad, err)
	}
	loaded.Normalize()

	m.mu.Lock()
	m.settings = loaded
	onChanged := m.onChanged
	m.mu.Unlock()
	if onChanged != nil {
		onChanged()
	}
	return nil
}

// Save writes the settings to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsSave, err)
	}

	log.Printf("Config: saving settings to %s (%d bytes)", m.path, len(data))
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsSave, err)
	}
	return nil
}

// Get returns the current settings snapshot. Callers must not mutate it;
// Set publishes a replacement instead.
func (m *Manager) Get() *Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// Set replaces the settings snapshot and notifies the change callback
func (m *Manager) Set(s *Settings) {
	s.Normalize()
	m.mu.Lock()
	m.settings = s
	onChanged := m.onChanged
	m.mu.Unlock()
	if onChanged != nil {
		onChanged()
	}
}

// Update clones the current snapshot, applies fn, and publishes the
// result.
func (m *Manager) Update(fn func(*Settings)) {
	m.mu.Lock()
	next := m.settings.Clone()
	m.mu.Unlock()
	fn(next)
	m.Set(next)
}

// RegisterChangeCallback registers a function called after every
// snapshot replacement
func (m *Manager) RegisterChangeCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
