package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Game: GameSettings{
			TickRate: 60,
			Seed:     0,
		},
		Audio: AudioSettings{
			Track:   "music.mp3",
			Enabled: true,
		},
		Input: InputSettings{
			HoldWindow: 150 * time.Millisecond,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultSettingsYAML
}
