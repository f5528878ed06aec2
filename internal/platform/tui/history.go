package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

// maxHistory caps the rows loaded into the history table.
const maxHistory = 100

const bestMarker = "★"

// HistoryView is the score history table shown over the game.
type HistoryView struct {
	table  table.Model
	rows   []storage.RankedEntry
	stats  storage.Stats
	err    error
	width  int
	height int
}

// NewHistoryView creates an empty history view.
func NewHistoryView(width, height int) HistoryView {
	h := HistoryView{width: width, height: height}
	h.table = h.createTable()
	return h
}

func (h HistoryView) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "", Width: 2},
		{Title: "Score", Width: 7},
		{Title: "Level", Width: 6},
		{Title: "Length", Width: 7},
		{Title: "Played", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, h.height-8)), // Leave room for title, footer and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Load refreshes the rows from the store. A nil store shows an empty table.
func (h *HistoryView) Load(store *storage.Store) {
	h.rows, h.stats, h.err = nil, storage.Stats{}, nil
	if store != nil {
		entries, err := store.History(maxHistory)
		if err != nil {
			h.err = err
		} else {
			h.rows = storage.Rank(entries)
		}
		if stats, err := store.Stats(); err == nil {
			h.stats = stats
		}
	}
	h.table.SetRows(historyRows(h.rows))
	h.table.GotoTop()
}

func historyRows(ranked []storage.RankedEntry) []table.Row {
	rows := make([]table.Row, len(ranked))
	for i, r := range ranked {
		marker := ""
		if r.Best {
			marker = bestMarker
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.Rank),
			marker,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Length),
			r.CreatedAt.Format("15:04:05"),
		}
	}
	return rows
}

// Resize rebuilds the table for a new terminal size.
func (h *HistoryView) Resize(width, height int) {
	h.width, h.height = width, height
	h.table = h.createTable()
	h.table.SetRows(historyRows(h.rows))
}

// Update passes scrolling keys to the table.
func (h HistoryView) Update(msg tea.Msg) (HistoryView, tea.Cmd) {
	var cmd tea.Cmd
	h.table, cmd = h.table.Update(msg)
	return h, cmd
}

// View renders the history screen.
func (h HistoryView) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("SCORE HISTORY", h.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	switch {
	case h.err != nil:
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Render("History unavailable: " + h.err.Error())
	case len(h.rows) == 0:
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No games finished yet.\nHistory lasts until you quit.")
	default:
		content = h.table.View()
	}
	b.WriteString(centerBlock(boxStyle.Render(content), h.width))

	if h.stats.Games > 0 {
		footer := fmt.Sprintf("%d games  best %d  avg %.1f", h.stats.Games, h.stats.HighScore, h.stats.AvgScore)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(centerText(footer, h.width)))
	}

	return b.String()
}

// centerText pads text to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers a multi-line block within width.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
