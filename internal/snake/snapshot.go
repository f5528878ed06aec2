package snake

import "time"

// State is the engine's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the engine state for rendering.
type Snapshot struct {
	SessionID string
	State     State
	Tick      uint64

	Width  int
	Height int

	Segments  []GridPosition // Head first
	Direction Direction

	Food           Optional[Food]
	Bonus          Optional[BonusFood]
	BonusRemaining time.Duration

	Score      int
	Level      int
	Interval   time.Duration
	SpeedLabel string

	Running bool // Start has been called since the last Reset
	Ticking bool // The tick timer is active
}

// Head returns the head position, or false for an empty snapshot.
func (s Snapshot) Head() (GridPosition, bool) {
	if len(s.Segments) == 0 {
		return GridPosition{}, false
	}
	return s.Segments[0], true
}

// Len returns the snake length.
func (s Snapshot) Len() int {
	return len(s.Segments)
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID:  e.sessionID,
		State:      e.stateLocked(),
		Tick:       e.tick,
		Width:      e.settings.Width,
		Height:     e.settings.Height,
		Segments:   e.snake.Segments(),
		Direction:  e.snake.Direction(),
		Food:       e.food,
		Bonus:      e.bonus,
		Score:      e.score,
		Level:      e.level,
		Interval:   e.interval,
		SpeedLabel: SpeedLabel(e.interval),
		Running:    e.running,
		Ticking:    e.ticking,
	}
	if b, ok := e.bonus.Get(); ok {
		snap.BonusRemaining = b.Remaining(e.clock.Now())
	}
	return snap
}

func (e *Engine) stateLocked() State {
	switch {
	case e.gameOver:
		return StateGameOver
	case !e.running:
		return StateIdle
	case e.ticking:
		return StateRunning
	default:
		return StatePaused
	}
}
