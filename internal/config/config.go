// Package config provides YAML-based runtime settings for the game: tick
// rate, RNG seed, background audio, terminal input timing and logging.
package config

import "time"

// Settings contains all runtime configuration.
type Settings struct {
	Game  GameSettings  `yaml:"game"`
	Audio AudioSettings `yaml:"audio"`
	Input InputSettings `yaml:"input"`
	Log   LogSettings   `yaml:"log"`
}

// GameSettings controls the simulation clock and obstacle placement.
type GameSettings struct {
	TickRate int   `yaml:"tick_rate"` // Ticks per second
	Seed     int64 `yaml:"seed"`      // 0 means derive from the current time
}

// AudioSettings controls the looping background track.
type AudioSettings struct {
	Track   string `yaml:"track"`
	Enabled bool   `yaml:"enabled"`
}

// InputSettings tunes how terminal key events become held intents.
type InputSettings struct {
	HoldWindow time.Duration `yaml:"hold_window"`
}

// LogSettings controls the structured logger.
type LogSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// TickInterval returns the wall time between simulation ticks.
func (s Settings) TickInterval() time.Duration {
	if s.Game.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.Game.TickRate)
}
