package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			Step:      1,
			ActorSize: 20,
		},
		Input: InputConfig{
			HoldTicks: 12,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0,
		},
		Display: DisplayConfig{
			CellWidth: 2,
			ShowTimer: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMazeYAML
}
