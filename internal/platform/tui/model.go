package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Model is the Bubble Tea model for playing snake.
type Model struct {
	engine *snake.Engine
	sub    *snake.Subscription
	store  *storage.Store
	logger *log.Logger

	keys    KeyMap
	help    help.Model
	screen  *core.Screen
	history HistoryView

	snap        snake.Snapshot
	best        int
	showHistory bool
	savedFor    string // Session whose game over was already recorded
	quitting    bool
}

// NewModel creates a model bound to an engine. store may be nil.
func NewModel(e *snake.Engine, store *storage.Store, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	snap := e.Snapshot()
	w, h := ScreenSize(snap.Width, snap.Height)

	m := Model{
		engine:  e,
		sub:     e.Subscribe(snake.DefaultEventBuffer),
		store:   store,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		screen:  core.NewScreen(w, h),
		history: NewHistoryView(w, h),
		snap:    snap,
	}
	m.best = m.loadBest()
	return m
}

// Init starts listening for engine events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.sub)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height-1) // Last row is the help bar
		m.history.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case EngineEventMsg:
		return m.handleEvent(snake.Event(msg))

	case subscriptionClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleEvent(evt snake.Event) (tea.Model, tea.Cmd) {
	m.snap = evt.Snapshot

	if evt.Kind == snake.EventGameOver {
		m.recordGameOver(evt.Snapshot)
	}
	return m, waitForEvent(m.sub)
}

// recordGameOver stores the finished game once per session.
func (m *Model) recordGameOver(snap snake.Snapshot) {
	if snap.SessionID == m.savedFor {
		return
	}
	m.savedFor = snap.SessionID
	m.best = max(m.best, snap.Score)

	if m.store == nil {
		return
	}
	_, err := m.store.SaveScore(storage.Entry{
		SessionID: snap.SessionID,
		Score:     snap.Score,
		Level:     snap.Level,
		Length:    snap.Len(),
	})
	if err != nil {
		m.logger.Error("failed to save score", "session", snap.SessionID, "err", err)
		return
	}
	m.logger.Info("score recorded", "session", snap.SessionID, "score", snap.Score)
}

func (m Model) loadBest() int {
	if m.store == nil {
		return 0
	}
	best, err := m.store.HighScore()
	if err != nil {
		m.logger.Warn("failed to load high score", "err", err)
		return 0
	}
	return best
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	if m.showHistory {
		switch action {
		case core.ActionQuit:
			return m.quit()
		case core.ActionHistory, core.ActionBack:
			m.showHistory = false
			return m, nil
		}
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}

	switch action {
	case core.ActionQuit:
		return m.quit()

	case core.ActionPlayPause:
		m.playPause()

	case core.ActionReset:
		m.engine.Reset()

	case core.ActionHistory:
		if m.engine.IsTicking() {
			m.engine.TogglePause()
		}
		m.history.Load(m.store)
		m.showHistory = true

	case core.ActionBack:
		m.help.ShowAll = !m.help.ShowAll

	default:
		if d, ok := DirectionFor(action); ok {
			m.engine.SetDirection(d)
		}
	}
	return m, nil
}

// playPause starts a new game when none is running (resetting a finished
// one first), and otherwise toggles pause.
func (m Model) playPause() {
	switch {
	case m.engine.State() == snake.StateGameOver:
		m.engine.Reset()
		m.engine.Start()
	case !m.engine.IsRunning():
		m.engine.Start()
	default:
		m.engine.TogglePause()
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.sub.Close()
	return m, tea.Quit
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHistory {
		return m.history.View() + "\n" + m.helpView()
	}

	DrawGame(m.screen, m.snap, m.best)
	return RenderScreen(m.screen) + "\n" + m.helpView()
}

func (m Model) helpView() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for the engine and blocks until the
// player quits. The engine keeps running; the caller closes it.
func Run(e *snake.Engine, store *storage.Store, logger *log.Logger) error {
	model := NewModel(e, store, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
