package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappyplane/internal/audio"
	"github.com/vovakirdan/flappyplane/internal/game"
	"github.com/vovakirdan/flappyplane/internal/platform/tui"
	"github.com/vovakirdan/flappyplane/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game at the title screen.

Controls:
  Enter/Space  - Start, pick the highlighted control mode
  Up/W         - Climb (keyboard mode), highlight keyboard
  Down/S       - Dive (keyboard mode), highlight mouse
  Mouse        - Steer (mouse mode), click an option to pick it
  Esc          - Back to the title screen
  M            - Music on/off
  Tab          - Runs of this session (title screen)
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Examples:
  flappyplane play
  flappyplane play --fps 30
  flappyplane play --track ~/music/loop.mp3`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	settings, source, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the game, so logs go to a file or nowhere
	logger, closeLog, err := newLogger(settings.Log, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger.Info("settings loaded", "source", source, "fps", settings.Game.TickRate)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Runs are kept for this session only
	store, err := storage.Open(storage.MemoryDSN)
	if err != nil {
		logger.Warn("session ledger unavailable", "err", err)
		// Continue without storage - game still works
		store = nil
	}

	track, looper := openTrack(settings.Audio.Track, logger)

	runErr := tui.Run(tui.Options{
		Seed:         settings.Game.Seed,
		TickInterval: settings.TickInterval(),
		HoldWindow:   settings.Input.HoldWindow,
		Track:        track,
		AudioOn:      settings.Audio.Enabled,
		Store:        store,
		Logger:       logger,
		Width:        width,
		Height:       height,
	})

	if looper != nil {
		if err := looper.Close(); err != nil {
			logger.Warn("close track", "err", err)
		}
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game stopped", "err", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openTrack loads the background track. Any failure leaves the game silent.
func openTrack(path string, logger *log.Logger) (game.Track, *audio.Looper) {
	if path == "" {
		return nil, nil
	}
	looper, err := audio.Open(path, logger)
	if err != nil {
		logger.Warn("audio disabled", "track", path, "err", err)
		return nil, nil
	}
	return looper, looper
}
