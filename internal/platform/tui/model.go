package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappyplane/internal/core"
	"github.com/vovakirdan/flappyplane/internal/game"
	"github.com/vovakirdan/flappyplane/internal/storage"
)

// Terminal size used until the first resize message arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures a game session.
type Options struct {
	Seed         int64         // Obstacle RNG seed, 0 derives one from the clock
	TickInterval time.Duration // Wall time between simulation ticks
	HoldWindow   time.Duration // How long a key press keeps an intent held
	Track        game.Track    // nil disables audio
	AudioOn      bool          // Start the track at launch
	Store        *storage.Store
	Logger       *log.Logger
	Width        int
	Height       int
}

// Model is the Bubble Tea model for a game session.
type Model struct {
	machine  *game.Machine
	scenery  *game.Scenery
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	latch    *intentLatch
	board    *RunsBoard // Non-nil while the runs board is open
	interval time.Duration
	now      func() time.Time
	phase    game.Phase
	width    int
	height   int
	quitting bool
}

// NewModel creates a new Bubble Tea model for a game session.
func NewModel(opts Options) Model {
	// Use time-based seed if not specified
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second / 60
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = defaultWidth, defaultHeight
	}

	h := help.New()
	h.Width = opts.Width

	m := Model{
		machine:  game.NewMachine(opts.Seed, opts.Track, opts.AudioOn),
		scenery:  game.NewScenery(opts.Seed),
		screen:   core.NewScreen(opts.Width, fieldRows(opts.Height)),
		store:    opts.Store,
		logger:   opts.Logger,
		keys:     DefaultKeyMap(),
		help:     h,
		latch:    newIntentLatch(opts.HoldWindow),
		interval: opts.TickInterval,
		now:      time.Now,
		phase:    game.PhaseMenu,
		width:    opts.Width,
		height:   opts.Height,
	}
	m.logger.Debug("session started", "seed", opts.Seed, "tick", opts.TickInterval, "audio", m.machine.AudioOn())
	return m
}

// fieldRows is the number of rows left for the playfield under the help bar.
func fieldRows(height int) int {
	if height <= 1 {
		return height
	}
	return height - 1
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionConfirm:
		m.machine.Confirm()

	case core.ActionCancel:
		m.machine.Cancel()

	case core.ActionUp:
		switch m.machine.Phase() {
		case game.PhaseControlSelect:
			m.machine.SelectUp()
		case game.PhasePlaying:
			m.latch.PressUp(m.now())
			m.machine.ReleaseDown()
			m.machine.PressUp()
		}

	case core.ActionDown:
		switch m.machine.Phase() {
		case game.PhaseControlSelect:
			m.machine.SelectDown()
		case game.PhasePlaying:
			m.latch.PressDown(m.now())
			m.machine.ReleaseUp()
			m.machine.PressDown()
		}

	case core.ActionToggleAudio:
		m.machine.ToggleAudio()
		m.logger.Info("audio toggled", "on", m.machine.AudioOn())

	case core.ActionRunsBoard:
		if m.machine.Phase() == game.PhaseMenu {
			board := NewRunsBoard(m.store, m.width, m.height)
			m.board = &board
		}
	}

	m.syncPhase()
	return m, nil
}

// updateBoard forwards messages to the open runs board.
func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	board, cmd := m.board.Update(msg)
	if board.Quitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if board.Closed() {
		m.board = nil
		return m, cmd
	}
	m.board = &board
	return m, cmd
}

// handleMouse maps pointer cells onto the playfield.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.board != nil {
		return m.updateBoard(msg)
	}

	v := game.Viewport{W: m.screen.Width(), H: m.screen.Height()}
	row := core.Clamp(msg.Y, 0, v.H-1)
	fx, fy := v.ToFieldX(msg.X), v.ToFieldY(row)

	m.machine.PointerMove(fy)
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.machine.PointerClick(fx, fy)
		m.syncPhase()
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, fieldRows(msg.Height))
	m.help.Width = msg.Width

	if m.board != nil {
		return m.updateBoard(msg)
	}
	return m, nil
}

// handleTick advances the simulation and the scenery by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.machine.Update()

	// Intents are applied before they expire so a single press lasts at
	// least one tick.
	up, down := m.latch.Expire(m.now())
	if !up {
		m.machine.ReleaseUp()
	}
	if !down {
		m.machine.ReleaseDown()
	}

	m.scenery.Advance(m.machine.Snapshot())

	if result.Run != nil {
		m.recordRun(*result.Run)
	}
	m.syncPhase()

	return m, tickCmd(m.interval)
}

// recordRun adds a finished run to the session ledger.
func (m Model) recordRun(run game.RunResult) {
	m.logger.Info("run ended",
		"score", run.Score,
		"mode", run.Mode,
		"speed", run.TopSpeed,
		"duration", run.Duration.Round(time.Millisecond),
		"best", run.NewBest,
	)

	if m.store == nil {
		return
	}
	_, err := m.store.RecordRun(storage.RunRecord{
		Mode:     run.Mode.String(),
		Score:    run.Score,
		TopSpeed: run.TopSpeed,
		Ticks:    run.Ticks,
		Duration: run.Duration,
		NewBest:  run.NewBest,
	})
	if err != nil {
		// Best-effort save, game continues regardless
		m.logger.Warn("record run", "err", err)
	}
}

// syncPhase logs phase changes and drops latched intents when a run ends
// or starts.
func (m *Model) syncPhase() {
	phase := m.machine.Phase()
	if phase == m.phase {
		return
	}
	m.logger.Debug("phase changed", "from", m.phase, "to", phase)
	m.latch.Reset()
	m.phase = phase
}

// saveScreenshot saves the current frame to a text file.
func (m *Model) saveScreenshot() {
	game.Render(m.screen, m.machine.Snapshot(), m.scenery)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".flappyplane", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}

	filename := fmt.Sprintf("flappyplane_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	game.Render(m.screen, m.machine.Snapshot(), m.scenery)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Machine returns the game state machine driven by the model.
func (m Model) Machine() *game.Machine {
	return m.machine
}

// Run starts the Bubble Tea program for a game session.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Report motion without a button held
	)

	_, err := p.Run()
	return err
}
