// Package config provides YAML-based game configuration loading and
// speed presets for the maze.
package config

import (
	"errors"
	"fmt"
)

// Config contains all configuration for the maze game.
type Config struct {
	Physics   PhysicsConfig `yaml:"physics"`
	Input     InputConfig   `yaml:"input"`
	Audio     AudioConfig   `yaml:"audio"`
	Display   DisplayConfig `yaml:"display"`
	LevelsDir string        `yaml:"levels_dir"`
}

// PhysicsConfig defines movement parameters.
type PhysicsConfig struct {
	Step      int `yaml:"step"`       // world units per tick on each axis
	ActorSize int `yaml:"actor_size"` // side of the player's bounding box
}

// InputConfig defines how terminal key presses become held directions.
type InputConfig struct {
	// HoldTicks is how long a direction stays held after its last key
	// press. Terminals report presses and auto-repeat, never releases.
	HoldTicks int `yaml:"hold_ticks"`
}

// AudioConfig defines music and sound effect settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // exponent of 2 applied to the output
}

// DisplayConfig defines terminal rendering parameters.
type DisplayConfig struct {
	CellWidth int  `yaml:"cell_width"` // terminal columns per grid cell
	ShowTimer bool `yaml:"show_timer"`
}

// Validation errors.
var (
	ErrBadStep      = errors.New("config: physics.step must be between 1 and 10")
	ErrBadActorSize = errors.New("config: physics.actor_size must be positive")
	ErrBadHold      = errors.New("config: input.hold_ticks must be at least 1")
	ErrBadCellWidth = errors.New("config: display.cell_width must be 1 or 2")
	ErrBadVolume    = errors.New("config: audio.volume must be between -10 and 4")
)

// Validate checks that all values are usable.
func (c Config) Validate() error {
	var errs []error
	if c.Physics.Step < 1 || c.Physics.Step > 10 {
		errs = append(errs, fmt.Errorf("%w (got %d)", ErrBadStep, c.Physics.Step))
	}
	if c.Physics.ActorSize <= 0 {
		errs = append(errs, fmt.Errorf("%w (got %d)", ErrBadActorSize, c.Physics.ActorSize))
	}
	if c.Input.HoldTicks < 1 {
		errs = append(errs, fmt.Errorf("%w (got %d)", ErrBadHold, c.Input.HoldTicks))
	}
	if c.Display.CellWidth < 1 || c.Display.CellWidth > 2 {
		errs = append(errs, fmt.Errorf("%w (got %d)", ErrBadCellWidth, c.Display.CellWidth))
	}
	if c.Audio.Volume < -10 || c.Audio.Volume > 4 {
		errs = append(errs, fmt.Errorf("%w (got %g)", ErrBadVolume, c.Audio.Volume))
	}
	return errors.Join(errs...)
}
