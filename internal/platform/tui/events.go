// Package tui provides the Bubble Tea front-end for the snake engine.
// It maps keys to engine commands and redraws on engine events.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// EngineEventMsg carries one engine event into the Bubble Tea loop.
type EngineEventMsg snake.Event

// subscriptionClosedMsg is sent once the engine stops delivering events.
type subscriptionClosedMsg struct{}

// waitForEvent returns a command that blocks until the next engine event.
// The model re-issues it after every event, so at most one waiter exists.
func waitForEvent(sub *snake.Subscription) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-sub.Events()
		if !ok {
			return subscriptionClosedMsg{}
		}
		return EngineEventMsg(evt)
	}
}
