// Package snake implements the authoritative snake game engine: the grid,
// the snake body, food and bonus spawning, scoring, level/speed progression
// and the timers that advance the simulation.
//
// The package has no terminal or UI dependencies. Presentation layers drive
// it through Engine commands and observe it through event subscriptions.
package snake

import "fmt"

// GridPosition is an immutable cell coordinate on the game grid.
type GridPosition struct {
	X, Y int
}

// Pos is shorthand for GridPosition{X: x, Y: y}.
func Pos(x, y int) GridPosition {
	return GridPosition{X: x, Y: y}
}

// Add returns the position offset by dx, dy.
func (p GridPosition) Add(dx, dy int) GridPosition {
	return GridPosition{X: p.X + dx, Y: p.Y + dy}
}

// Step returns the neighbouring cell in direction d.
func (p GridPosition) Step(d Direction) GridPosition {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}

func (p GridPosition) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is a heading on the grid.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all headings in a stable order.
var Directions = [...]Direction{Up, Down, Left, Right}

// Delta returns the unit offset for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}
