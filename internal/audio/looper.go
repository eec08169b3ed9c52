// Package audio plays the looping background track.
package audio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
)

// Looper loops a decoded mp3 track through the speaker. Start rewinds to the
// beginning; Stop pauses. Both return immediately.
type Looper struct {
	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	logger   *log.Logger
	playing  bool
	closed   bool
}

// Open decodes the track at path and prepares the speaker for it. The track
// stays silent until Start. An error means audio is unavailable.
func Open(path string, logger *log.Logger) (*Looper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open track: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}

	// Initialize speaker with the track's sample rate and a 100ms buffer
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Millisecond*100)); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}

	l := &Looper{
		streamer: streamer,
		ctrl:     &beep.Ctrl{Streamer: beep.Loop(-1, streamer), Paused: true},
		logger:   logger,
	}
	speaker.Play(l.ctrl)

	logger.Debug("track loaded", "path", path, "rate", int(format.SampleRate), "length", format.SampleRate.D(streamer.Len()))
	return l, nil
}

// Start plays the track from the beginning.
func (l *Looper) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	speaker.Lock()
	if err := l.streamer.Seek(0); err != nil {
		l.logger.Warn("rewind track", "err", err)
	}
	l.ctrl.Paused = false
	speaker.Unlock()

	l.playing = true
}

// Stop pauses the track.
func (l *Looper) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || !l.playing {
		return
	}

	speaker.Lock()
	l.ctrl.Paused = true
	if err := l.streamer.Err(); err != nil {
		l.logger.Warn("track stream error", "err", err)
	}
	speaker.Unlock()

	l.playing = false
}

// Playing reports whether the track is audible.
func (l *Looper) Playing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.playing
}

// Close stops playback and releases the decoder. The speaker stays
// initialized for the life of the process.
func (l *Looper) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	l.playing = false

	speaker.Clear()
	if err := l.streamer.Close(); err != nil {
		return fmt.Errorf("audio: close track: %w", err)
	}
	return nil
}
