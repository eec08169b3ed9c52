package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappyplane/internal/game"
	"github.com/vovakirdan/flappyplane/internal/storage"
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestModel(t *testing.T, hold time.Duration) (Model, *storage.Store, *testClock) {
	t.Helper()
	store, err := storage.Open(storage.MemoryDSN)
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := &testClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewModel(Options{
		Seed:         1,
		TickInterval: time.Second / 60,
		HoldWindow:   hold,
		Store:        store,
		Width:        100,
		Height:       31,
	})
	m.now = clock.Now
	m.machine.SetClock(clock.Now)
	return m, store, clock
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func tick(t *testing.T, m Model, clock *testClock) Model {
	t.Helper()
	clock.Advance(time.Second / 60)
	return send(t, m, TickMsg(clock.Now()))
}

func TestModelStartsKeyboardRun(t *testing.T) {
	m, _, _ := newTestModel(t, time.Second)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Machine().Phase() != game.PhaseControlSelect {
		t.Fatalf("Phase = %v, expected control select", m.Machine().Phase())
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Machine().Phase() != game.PhasePlaying {
		t.Fatalf("Phase = %v, expected playing", m.Machine().Phase())
	}
	if m.Machine().Plane().Mode != game.ControlImpulse {
		t.Errorf("mode = %v, expected keyboard", m.Machine().Plane().Mode)
	}
}

func TestModelMouseClickStartsTrackingRun(t *testing.T) {
	m, _, _ := newTestModel(t, time.Second)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Cell (40, 17) on a 100x30 field is field point (202, 350).
	m = send(t, m, tea.MouseMsg{X: 40, Y: 17, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if m.Machine().Phase() != game.PhasePlaying {
		t.Fatalf("Phase = %v, expected playing", m.Machine().Phase())
	}
	if m.Machine().Plane().Mode != game.ControlTracking {
		t.Errorf("mode = %v, expected mouse", m.Machine().Plane().Mode)
	}
	if got := m.Machine().Snapshot().PointerY; got != 350 {
		t.Errorf("PointerY = %d, expected 350", got)
	}
}

func TestModelMouseMotionDoesNotClick(t *testing.T) {
	m, _, _ := newTestModel(t, time.Second)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = send(t, m, tea.MouseMsg{X: 40, Y: 17, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})

	if m.Machine().Phase() != game.PhaseControlSelect {
		t.Errorf("motion should not commit, got %v", m.Machine().Phase())
	}
}

func TestModelLatchReleasesIntent(t *testing.T) {
	m, _, clock := newTestModel(t, 100*time.Millisecond)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = tick(t, m, clock)
	if !m.Machine().Plane().Up {
		t.Fatal("climb intent should be held inside the window")
	}

	for i := 0; i < 10; i++ {
		m = tick(t, m, clock)
	}
	if m.Machine().Plane().Up {
		t.Error("climb intent should be released after the window")
	}
}

func TestModelOppositeKeyCancels(t *testing.T) {
	m, _, _ := newTestModel(t, time.Second)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})

	p := m.Machine().Plane()
	if p.Up || !p.Down {
		t.Errorf("dive should replace climb: up=%v down=%v", p.Up, p.Down)
	}
}

func TestModelRecordsFinishedRun(t *testing.T) {
	m, store, clock := newTestModel(t, time.Hour)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})

	for i := 0; i < 200 && m.Machine().Phase() == game.PhasePlaying; i++ {
		m = tick(t, m, clock)
	}
	if m.Machine().Phase() != game.PhaseGameOver {
		t.Fatalf("diving plane should crash, phase = %v", m.Machine().Phase())
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].Mode != "keyboard" || runs[0].Score != 0 || runs[0].Ticks == 0 {
		t.Errorf("recorded run = %+v", runs[0])
	}
	if runs[0].Duration <= 0 {
		t.Errorf("Duration = %v, expected positive", runs[0].Duration)
	}
}

func TestModelRunsBoard(t *testing.T) {
	m, store, _ := newTestModel(t, time.Second)
	if _, err := store.RecordRun(storage.RunRecord{Mode: "mouse", Score: 27, TopSpeed: 7}); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.board == nil {
		t.Fatal("tab should open the runs board from the menu")
	}
	view := m.View()
	for _, want := range []string{"BEST RUNS", "27", "CAPTAIN"} {
		if !strings.Contains(view, want) {
			t.Errorf("runs board missing %q", want)
		}
	}

	// Keys go to the board while it is open.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.board != nil {
		t.Fatal("enter should close the board")
	}
	if m.Machine().Phase() != game.PhaseMenu {
		t.Errorf("closing the board should not start the game, got %v", m.Machine().Phase())
	}
}

func TestModelRunsBoardOnlyFromMenu(t *testing.T) {
	m, _, _ := newTestModel(t, time.Second)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.board != nil {
		t.Error("runs board should only open from the title menu")
	}
}

func TestModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t, time.Second)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelViewShowsFieldAndHelp(t *testing.T) {
	m, _, _ := newTestModel(t, time.Second)

	view := m.View()
	if !strings.Contains(view, "F L A P P Y") {
		t.Error("view should show the title screen")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view should show the help bar")
	}
}

func TestModelResize(t *testing.T) {
	m, _, _ := newTestModel(t, time.Second)

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 120x39", m.screen.Width(), m.screen.Height())
	}
}

func TestModelAudioToggleWithoutTrack(t *testing.T) {
	m, _, _ := newTestModel(t, time.Second)

	m = send(t, m, runeKey('m'))

	if m.Machine().AudioOn() {
		t.Error("audio cannot turn on without a track")
	}
}
