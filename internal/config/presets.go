package config

import "fmt"

// SpeedPreset represents a named movement speed.
type SpeedPreset string

const (
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedTurbo  SpeedPreset = "turbo"
)

// SpeedPresets lists the presets in ascending speed.
var SpeedPresets = []SpeedPreset{SpeedNormal, SpeedFast, SpeedTurbo}

// StepForPreset returns physics.step for a speed preset.
func StepForPreset(preset SpeedPreset) (int, error) {
	switch preset {
	case SpeedNormal:
		return 1, nil
	case SpeedFast:
		return 2, nil
	case SpeedTurbo:
		return 3, nil
	default:
		return 0, fmt.Errorf("config: unknown speed %q (want normal, fast or turbo)", preset)
	}
}

// ApplySpeedPreset modifies the config based on a speed preset.
// An empty preset leaves the config untouched.
func ApplySpeedPreset(cfg *Config, preset SpeedPreset) error {
	if preset == "" {
		return nil
	}
	step, err := StepForPreset(preset)
	if err != nil {
		return err
	}
	cfg.Physics.Step = step
	return nil
}
