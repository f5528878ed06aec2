package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorBorder:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorSnakeHead: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorSnakeBody: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorSnakeTail: lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	core.ColorFood:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBonus:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorHUD:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorMuted:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorAlert:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
}

// Board glyphs.
const (
	glyphHead  = '@'
	glyphBody  = 'o'
	glyphTail  = '.'
	glyphFood  = '*'
	glyphBonus = '$'
)

// Layout rows above and below the board.
const (
	hudRows    = 2 // Status line and separator
	footerRows = 1 // Bonus timer / hints
)

// ScreenSize returns the terminal size needed for a width x height grid.
func ScreenSize(width, height int) (int, int) {
	return width + 2, height + 2 + hudRows + footerRows
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// DrawGame draws the HUD, board and state overlay for snap. best is the
// highest recorded score.
func DrawGame(dst *core.Screen, snap snake.Snapshot, best int) {
	dst.Clear()

	needW, needH := ScreenSize(snap.Width, snap.Height)
	if dst.Width() < needW || dst.Height() < needH {
		drawOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	drawHUD(dst, snap, best)

	board := core.NewRect(0, hudRows, snap.Width+2, snap.Height+2)
	dst.DrawBox(board, core.ColorBorder)
	inner := board.Inset(1)

	if f, ok := snap.Food.Get(); ok {
		plot(dst, inner, f.Position, glyphFood, core.ColorFood)
	}
	if b, ok := snap.Bonus.Get(); ok {
		plot(dst, inner, b.Position, glyphBonus, core.ColorBonus)
	}
	drawSnake(dst, inner, snap.Segments)

	drawFooter(dst, snap, board.Bottom())

	switch snap.State {
	case snake.StateIdle:
		drawOverlay(dst, "SNAKE", "Press Space to start")
	case snake.StatePaused:
		drawOverlay(dst, "Paused", "Press Space to resume")
	case snake.StateGameOver:
		drawOverlay(dst, "Game Over", fmt.Sprintf("Score %d - Space to play again", snap.Score))
	}
}

func drawHUD(dst *core.Screen, snap snake.Snapshot, best int) {
	hud := fmt.Sprintf(" Score: %d  Level: %d  %s  Best: %d", snap.Score, snap.Level, snap.SpeedLabel, max(best, snap.Score))
	dst.DrawText(0, 0, hud, core.ColorHUD)
	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorBorder)
	}
}

// drawSnake paints tail first so the head wins on overlap.
func drawSnake(dst *core.Screen, inner core.Rect, segs []snake.GridPosition) {
	for i := len(segs) - 1; i >= 0; i-- {
		r, c := glyphBody, core.ColorSnakeBody
		switch {
		case i == 0:
			r, c = glyphHead, core.ColorSnakeHead
		case i == len(segs)-1:
			r, c = glyphTail, core.ColorSnakeTail
		}
		plot(dst, inner, segs[i], r, c)
	}
}

// plot draws a grid cell; cells outside the grid are skipped.
func plot(dst *core.Screen, inner core.Rect, p snake.GridPosition, r rune, c core.Color) {
	x, y := inner.X+p.X, inner.Y+p.Y
	if !inner.Contains(x, y) {
		return
	}
	dst.SetColored(x, y, r, c)
}

func drawFooter(dst *core.Screen, snap snake.Snapshot, y int) {
	if _, ok := snap.Bonus.Get(); ok {
		text := fmt.Sprintf(" Bonus $ %.1fs", snap.BonusRemaining.Round(100*time.Millisecond).Seconds())
		dst.DrawText(0, y, text, core.ColorBonus)
		return
	}
	dst.DrawText(0, y, fmt.Sprintf(" Length %d", snap.Len()), core.ColorMuted)
}

// drawOverlay draws a centered two-line message box.
func drawOverlay(dst *core.Screen, line1, line2 string) {
	n := max(len([]rune(line1)), len([]rune(line2)))
	box := dst.Bounds().Centered(n+4, 5)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorAlert)
	drawCentered(dst, box, box.Y+1, line1, core.ColorAlert)
	drawCentered(dst, box, box.Y+3, line2, core.ColorHUD)
}

func drawCentered(dst *core.Screen, box core.Rect, y int, text string, c core.Color) {
	n := len([]rune(text))
	dst.DrawText(box.X+(box.W-n)/2, y, text, c)
}
