package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempManager(t *testing.T) *Manager {
	t.Helper()
	return NewManagerAt(filepath.Join(t.TempDir(), SettingsFileName))
}

func TestDefaults(t *testing.T) {
	s := Default()

	assert.True(t, s.Enabled)
	assert.True(t, s.ShiftKeyHorizontal)
	assert.Equal(t, 12, s.StepSizePx)
	assert.Equal(t, 250, s.AnimationTimeMs)
	assert.Equal(t, 60, s.AccelerationDeltaMs)
	assert.Equal(t, 6, s.AccelerationMax)
	assert.Equal(t, 2, s.TailToHeadRatio)
	assert.True(t, s.AnimationEasing)
	assert.True(t, s.HorizontalSmoothness)
	assert.False(t, s.ReverseWheelDirection)

	require.Len(t, s.Profiles, 1)
	assert.Equal(t, DefaultProfileName, s.Profiles[0].Name)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := tempManager(t)
	m.Update(func(s *Settings) {
		s.StepSizePx = 7
		s.ReverseWheelDirection = true
		s.ExcludedApps = []string{"notepad", "mstsc"}
		reading := Profile{Name: "Reading", ScrollParams: s.ScrollParams}
		reading.AnimationTimeMs = 500
		s.Profiles = append(s.Profiles, reading)
		s.AppProfiles = []AppProfile{{AppName: "chrome", ProfileName: "Reading"}}
	})
	require.NoError(t, m.Save())

	reloaded := NewManagerAt(m.Path())
	require.NoError(t, reloaded.Load())

	assert.Equal(t, m.Get(), reloaded.Get(), "serialize then reload yields equal settings")
}

func TestUnknownFieldsIgnored(t *testing.T) {
	m := tempManager(t)
	data := `{
		"enabled": false,
		"step_size_px": 9,
		"some_future_field": {"nested": true},
		"theme": "dark"
	}`
	require.NoError(t, os.WriteFile(m.Path(), []byte(data), 0644))

	require.NoError(t, m.Load())
	s := m.Get()
	assert.False(t, s.Enabled)
	assert.Equal(t, 9, s.StepSizePx)
}

func TestMissingFieldsFallBackToDefaults(t *testing.T) {
	m := tempManager(t)
	require.NoError(t, os.WriteFile(m.Path(), []byte(`{"step_size_px": 3}`), 0644))

	require.NoError(t, m.Load())
	s := m.Get()
	assert.Equal(t, 3, s.StepSizePx)
	assert.Equal(t, 250, s.AnimationTimeMs, "absent keys keep compiled defaults")
	assert.True(t, s.Enabled)
}

func TestMalformedFileFallsBackToDefaults(t *testing.T) {
	m := tempManager(t)
	require.NoError(t, os.WriteFile(m.Path(), []byte(`{"enabled": tru`), 0644))

	err := m.Load()
	assert.ErrorIs(t, err, ErrSettingsLoad)
	assert.Equal(t, Default(), m.Get(), "a broken file never takes the process down")
}

func TestMissingFileKeepsDefaults(t *testing.T) {
	m := tempManager(t)
	require.NoError(t, m.Load())
	assert.Equal(t, Default(), m.Get())
}

func TestNormalizeClampsParameters(t *testing.T) {
	s := Default()
	s.StepSizePx = 99
	s.AnimationTimeMs = -5
	s.AccelerationDeltaMs = -1
	s.AccelerationMax = 0
	s.TailToHeadRatio = 0
	s.Normalize()

	assert.Equal(t, 25, s.StepSizePx)
	assert.Equal(t, 1, s.AnimationTimeMs)
	assert.Equal(t, 0, s.AccelerationDeltaMs)
	assert.Equal(t, 1, s.AccelerationMax)
	assert.Equal(t, 1, s.TailToHeadRatio)

	s.StepSizePx = 0
	s.Normalize()
	assert.Equal(t, 1, s.StepSizePx)
}

func TestNormalizeRestoresDefaultProfile(t *testing.T) {
	s := Default()
	s.Profiles = nil
	s.Normalize()

	require.NotEmpty(t, s.Profiles, "the profile list can never be empty")
	assert.Equal(t, DefaultProfileName, s.Profiles[0].Name)

	// Default is moved back to the front, never duplicated
	s.Profiles = []Profile{
		{Name: "Reading", ScrollParams: s.ScrollParams},
		{Name: "default", ScrollParams: s.ScrollParams},
	}
	s.Normalize()
	require.Len(t, s.Profiles, 2)
	assert.Equal(t, "default", s.Profiles[0].Name)
}

func TestNormalizeDropsDuplicateProfileNames(t *testing.T) {
	s := Default()
	s.Profiles = append(s.Profiles,
		Profile{Name: "Reading", ScrollParams: s.ScrollParams},
		Profile{Name: "READING", ScrollParams: s.ScrollParams},
		Profile{Name: "", ScrollParams: s.ScrollParams},
	)
	s.Normalize()

	require.Len(t, s.Profiles, 2)
	assert.Equal(t, DefaultProfileName, s.Profiles[0].Name)
	assert.Equal(t, "Reading", s.Profiles[1].Name)
}

func TestFindProfileCaseInsensitive(t *testing.T) {
	s := Default()
	p, err := s.FindProfile("default")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfileName, p.Name)

	_, err = s.FindProfile("nope")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestAppProfileOrderSurvivesRoundTrip(t *testing.T) {
	m := tempManager(t)
	m.Update(func(s *Settings) {
		s.AppProfiles = []AppProfile{
			{AppName: "b", ProfileName: "Default"},
			{AppName: "a", ProfileName: "Default"},
			{AppName: "c", ProfileName: "Default"},
		}
	})
	require.NoError(t, m.Save())

	reloaded := NewManagerAt(m.Path())
	require.NoError(t, reloaded.Load())
	got := reloaded.Get().AppProfiles
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].AppName)
	assert.Equal(t, "a", got[1].AppName)
	assert.Equal(t, "c", got[2].AppName)
}

func TestChangeCallbackFiresOnSet(t *testing.T) {
	m := tempManager(t)
	fired := 0
	m.RegisterChangeCallback(func() { fired++ })

	m.Update(func(s *Settings) { s.StepSizePx = 4 })
	assert.Equal(t, 1, fired)
	assert.Equal(t, 4, m.Get().StepSizePx)
}

func TestCloneIsDeep(t *testing.T) {
	s := Default()
	s.ExcludedApps = []string{"one"}
	c := s.Clone()
	c.ExcludedApps[0] = "two"
	c.Profiles[0].StepSizePx = 1

	assert.Equal(t, "one", s.ExcludedApps[0])
	assert.Equal(t, 12, s.Profiles[0].StepSizePx)
}

func TestPresetCatalog(t *testing.T) {
	p, ok := FindPreset("Windows Classic")
	require.True(t, ok)
	assert.Equal(t, PresetWindowsClassic.Params, p.Params)

	_, ok = FindPreset("No Such Preset")
	assert.False(t, ok)

	// Every preset survives its own clamps unchanged
	for _, preset := range Presets {
		clamped := preset.Params
		clamped.clamp()
		assert.Equal(t, preset.Params, clamped, preset.Name)
	}
}
