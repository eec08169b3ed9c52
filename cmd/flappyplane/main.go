// flappyplane is a side-scrolling flight game for the terminal: steer a
// plane through gaps between towers with the keyboard or the mouse.
//
// Usage:
//
//	flappyplane              - Play (same as "flappyplane play")
//	flappyplane play         - Play
//	flappyplane config       - Print the effective settings as YAML
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible obstacles
//	--config <path>       - Settings file (default search: ~/.flappyplane, ./configs)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file while the game is on screen
//	--mute                - Start with the background track off
//	--track <path>        - MP3 file to loop in the background
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappyplane/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
	flagMute     bool
	flagTrack    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappyplane",
	Short: "Flappy Plane - fly through the towers in your terminal",
	Long: `Flappy Plane is a side-scrolling flight game for the terminal.
Pick keyboard or mouse control and fly through the gaps between towers.
Every ten points the game speeds up.

Available commands:
  play     - Start the game (default)
  config   - Print the effective settings

Examples:
  flappyplane
  flappyplane --seed 42 --mute
  flappyplane --log-file /tmp/flappyplane.log --log-level debug
  flappyplane config --config ./my-settings.yaml`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Start with the background track off")
	rootCmd.PersistentFlags().StringVar(&flagTrack, "track", "music.mp3", "MP3 file to loop in the background")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings reads the settings file and applies the flags the user set
// explicitly on top of it.
func loadSettings(cmd *cobra.Command) (config.Settings, string, error) {
	settings, source, err := config.Load(flagConfig)
	if err != nil {
		return settings, source, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		settings.Game.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		settings.Game.Seed = flagSeed
	}
	if flags.Changed("log-level") {
		settings.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		settings.Log.File = flagLogFile
	}
	if flags.Changed("mute") {
		settings.Audio.Enabled = !flagMute
	}
	if flags.Changed("track") {
		settings.Audio.Track = flagTrack
	}

	if err := settings.Validate(); err != nil {
		return settings, source, err
	}
	return settings, source, nil
}

// newLogger builds the logger for a command. fallback receives the output
// when no log file is configured. The returned func closes the log file.
func newLogger(settings config.LogSettings, fallback io.Writer) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(settings.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log: %w", err)
	}

	w := fallback
	closeFn := func() error { return nil }
	if settings.File != "" {
		f, err := os.OpenFile(settings.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("log: open %s: %w", settings.File, err)
		}
		w, closeFn = f, f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappyplane",
		Level:           level,
	})
	return logger, closeFn, nil
}
