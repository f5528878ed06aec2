// Package autopilot steers a snake engine without a player. It is a greedy
// heuristic: avoid walls and the body, then close the distance to the
// bonus (if any) or the food.
package autopilot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Choose picks the next heading for the snapshot's snake.
// If every move is fatal it keeps the current heading.
func Choose(snap snake.Snapshot) snake.Direction {
	head, ok := snap.Head()
	if !ok {
		return snap.Direction
	}
	target, hasTarget := targetOf(snap)

	best := snap.Direction
	bestScore := -1 << 30
	for _, d := range snake.Directions {
		if d == snap.Direction.Opposite() {
			continue
		}
		next := head.Step(d)
		if isDanger(snap, next) {
			continue
		}

		// Room to move afterwards matters more than distance.
		score := 100 * openNeighbors(snap, next)
		if hasTarget {
			score -= distance(next, target)
		}
		if d == snap.Direction {
			score++ // prefer going straight on ties
		}
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}

func targetOf(snap snake.Snapshot) (snake.GridPosition, bool) {
	if b, ok := snap.Bonus.Get(); ok {
		return b.Position, true
	}
	if f, ok := snap.Food.Get(); ok {
		return f.Position, true
	}
	return snake.GridPosition{}, false
}

// isDanger reports whether moving the head onto p ends the game.
func isDanger(snap snake.Snapshot, p snake.GridPosition) bool {
	if p.X < 0 || p.X >= snap.Width || p.Y < 0 || p.Y >= snap.Height {
		return true
	}
	for _, seg := range snap.Segments {
		if seg == p {
			return true
		}
	}
	return false
}

func openNeighbors(snap snake.Snapshot, p snake.GridPosition) int {
	n := 0
	for _, d := range snake.Directions {
		if !isDanger(snap, p.Step(d)) {
			n++
		}
	}
	return n
}

func distance(a, b snake.GridPosition) int {
	return core.Abs(a.X-b.X) + core.Abs(a.Y-b.Y)
}

// Result summarizes a driven game.
type Result struct {
	Final    snake.Snapshot
	Eaten    int // Foods and bonuses consumed
	Updates  int
	GameOver bool
}

// Drive steers e from its event stream until the game ends, the
// subscription closes, or ctx is done. The engine must already be started
// or be started by the caller after Drive begins.
func Drive(ctx context.Context, e *snake.Engine, sub *snake.Subscription, logger *log.Logger) (Result, error) {
	res := Result{Final: e.Snapshot()}

	for {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		case evt, ok := <-sub.Events():
			if !ok {
				return res, nil
			}
			res.Final = evt.Snapshot

			switch evt.Kind {
			case snake.EventFoodEaten:
				res.Eaten++
				logger.Debug("ate", "kind", evt.Food.Kind, "points", evt.Food.Points, "score", evt.Snapshot.Score)
			case snake.EventGameOver:
				res.GameOver = true
				return res, nil
			case snake.EventUpdated:
				res.Updates++
				if evt.Snapshot.State == snake.StateRunning {
					e.SetDirection(Choose(evt.Snapshot))
				}
			}
		}
	}
}
