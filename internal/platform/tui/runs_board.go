package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappyplane/internal/game"
	"github.com/vovakirdan/flappyplane/internal/storage"
)

// Runs board layout constants
const (
	boardMinWidth = 60  // Below this the board drops the date column
	maxRuns       = 100 // Max runs to load
)

// boardView selects which ordering the runs board shows.
type boardView int

const (
	boardTop boardView = iota
	boardRecent
)

func (v boardView) title() string {
	if v == boardRecent {
		return "RECENT RUNS"
	}
	return "BEST RUNS"
}

// RunsBoardKeyMap defines the key bindings for the runs board.
type RunsBoardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsBoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsBoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Back, k.Quit},
	}
}

// DefaultRunsBoardKeyMap returns default key bindings.
func DefaultRunsBoardKeyMap() RunsBoardKeyMap {
	return RunsBoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "enter"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsBoard lists the runs recorded in this session. It is shown on top of
// the title menu and hands control back when closed.
type RunsBoard struct {
	store    *storage.Store
	view     boardView
	runs     []storage.RunRecord
	summary  storage.Summary
	err      error
	table    table.Model
	help     help.Model
	keys     RunsBoardKeyMap
	width    int
	height   int
	closed   bool
	quitting bool
}

// NewRunsBoard creates a runs board and loads the best runs.
func NewRunsBoard(store *storage.Store, width, height int) RunsBoard {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	b := RunsBoard{
		store:  store,
		view:   boardTop,
		keys:   DefaultRunsBoardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	b.table = b.createTable()
	b.load()
	return b
}

// createTable creates a new table with columns fitted to the width.
func (b *RunsBoard) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 6},
		{Title: "Rank", Width: 11},
		{Title: "Mode", Width: 9},
		{Title: "Speed", Width: 6},
		{Title: "Time", Width: 8},
	}
	if b.width >= boardMinWidth {
		columns = append(columns, table.Column{Title: "When", Width: 9})
	}

	height := b.height - 10 // Leave room for title, summary, help and borders
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("24")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the runs for the current view and the summary.
func (b *RunsBoard) load() {
	b.runs, b.err = nil, nil
	if b.store == nil {
		b.updateTableRows()
		return
	}

	if b.view == boardRecent {
		b.runs, b.err = b.store.RecentRuns(maxRuns)
	} else {
		b.runs, b.err = b.store.TopRuns(maxRuns)
	}
	if b.err == nil {
		b.summary, b.err = b.store.Summary()
	}
	b.updateTableRows()
}

// updateTableRows fills the table from the loaded runs.
func (b *RunsBoard) updateTableRows() {
	wide := b.width >= boardMinWidth
	rows := make([]table.Row, len(b.runs))
	for i, r := range b.runs {
		score := fmt.Sprintf("%d", r.Score)
		if r.NewBest {
			score += "*"
		}
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			score,
			game.RankFor(r.Score).Title,
			r.Mode,
			fmt.Sprintf("%d", r.TopSpeed),
			formatDuration(r.Duration),
		}
		if wide {
			row = append(row, r.CreatedAt.Local().Format("15:04:05"))
		}
		rows[i] = row
	}
	b.table.SetRows(rows)

	// Reset cursor to top
	b.table.GotoTop()
}

// Update handles messages for the runs board.
func (b RunsBoard) Update(msg tea.Msg) (RunsBoard, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Quit):
			b.quitting = true
			return b, tea.Quit

		case key.Matches(msg, b.keys.Back):
			b.closed = true
			return b, nil

		case key.Matches(msg, b.keys.Switch):
			if b.view == boardTop {
				b.view = boardRecent
			} else {
				b.view = boardTop
			}
			b.load()
			return b, nil
		}

	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.table = b.createTable()
		b.updateTableRows()
		b.help.Width = msg.Width
		return b, nil
	}

	// Pass other messages to table for scrolling
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// View renders the runs board.
func (b RunsBoard) View() string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220"))
	sb.WriteString(titleStyle.Render(centerText(b.view.title(), b.width)))
	sb.WriteString("\n\n")

	summaryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	sb.WriteString(summaryStyle.Render(centerText(b.summaryLine(), b.width)))
	sb.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	sb.WriteString(tableStyle.Render(b.renderTableContent()))

	// Help bar
	sb.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	sb.WriteString(helpStyle.Render(b.help.View(b.keys)))

	return sb.String()
}

func (b RunsBoard) summaryLine() string {
	if b.summary.Runs == 0 {
		return "no runs this session"
	}
	return fmt.Sprintf("%d runs  |  best %d  |  avg %.1f  |  keyboard %d  mouse %d  |  %s airborne",
		b.summary.Runs,
		b.summary.BestScore,
		b.summary.AvgScore,
		b.summary.ByMode[game.ControlImpulse.String()],
		b.summary.ByMode[game.ControlTracking.String()],
		formatDuration(b.summary.TotalTime),
	)
}

// renderTableContent renders the table or an empty/error message.
func (b RunsBoard) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if b.err != nil {
		return emptyStyle.Render("Runs are unavailable:\n" + b.err.Error())
	}
	if len(b.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nTake off and set a score!")
	}

	return b.table.View()
}

// Closed returns true if the user left the board.
func (b RunsBoard) Closed() bool {
	return b.closed
}

// Quitting returns true if the user wants to quit entirely.
func (b RunsBoard) Quitting() bool {
	return b.quitting
}

func formatDuration(d time.Duration) string {
	return d.Round(100 * time.Millisecond).String()
}

// centerText pads text on the left so it is centered within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
