package config

// Preset is a named parameter tuple users can apply to the global
// defaults from the tray menu.
type Preset struct {
	Name   string
	Params ScrollParams
}

// PresetWindowsClassic matches the stock Windows wheel feel with a short
// eased glide. It is the compiled default.
var PresetWindowsClassic = Preset{
	Name: "Windows Classic",
	Params: ScrollParams{
		StepSizePx:            12,
		AnimationTimeMs:       250,
		AccelerationDeltaMs:   60,
		AccelerationMax:       6,
		TailToHeadRatio:       2,
		AnimationEasing:       true,
		HorizontalSmoothness:  true,
		ReverseWheelDirection: false,
	},
}

// Presets is the catalog shown in the tray, in menu order
var Presets = []Preset{
	PresetWindowsClassic,
	{
		Name: "Smooth",
		Params: ScrollParams{
			StepSizePx:           14,
			AnimationTimeMs:      400,
			AccelerationDeltaMs:  70,
			AccelerationMax:      7,
			TailToHeadRatio:      3,
			AnimationEasing:      true,
			HorizontalSmoothness: true,
		},
	},
	{
		Name: "Reading",
		Params: ScrollParams{
			StepSizePx:           8,
			AnimationTimeMs:      350,
			AccelerationDeltaMs:  50,
			AccelerationMax:      4,
			TailToHeadRatio:      3,
			AnimationEasing:      true,
			HorizontalSmoothness: true,
		},
	},
	{
		Name: "Precision",
		Params: ScrollParams{
			StepSizePx:           4,
			AnimationTimeMs:      150,
			AccelerationDeltaMs:  40,
			AccelerationMax:      2,
			TailToHeadRatio:      2,
			AnimationEasing:      false,
			HorizontalSmoothness: false,
		},
	},
	{
		Name: "Flick",
		Params: ScrollParams{
			StepSizePx:           20,
			AnimationTimeMs:      600,
			AccelerationDeltaMs:  90,
			AccelerationMax:      10,
			TailToHeadRatio:      4,
			AnimationEasing:      true,
			HorizontalSmoothness: true,
		},
	},
}

// FindPreset looks up a preset by name
func FindPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
