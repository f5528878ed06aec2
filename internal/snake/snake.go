package snake

// InitialLength is the number of segments of a freshly created snake.
const InitialLength = 3

// Snake is the ordered body of the player's snake, head first.
//
// Direction changes are buffered: ChangeDirection only records the desired
// heading, which Move commits. Growth is queued and consumed one segment per
// Move.
type Snake struct {
	segments      []GridPosition // Head at index 0
	direction     Direction      // Heading used by the last Move
	desired       Direction      // Heading applied by the next Move
	pendingGrowth int
}

// CreateCentered returns a three-segment snake with its head at (x, y),
// the body extending to the left and heading right.
func CreateCentered(x, y int) *Snake {
	return &Snake{
		segments: []GridPosition{
			{X: x, Y: y},
			{X: x - 1, Y: y},
			{X: x - 2, Y: y},
		},
		direction: Right,
		desired:   Right,
	}
}

// newSnake builds a snake from explicit segments. Used by tests and replays.
func newSnake(segments []GridPosition, dir Direction) *Snake {
	segs := make([]GridPosition, len(segments))
	copy(segs, segments)
	return &Snake{segments: segs, direction: dir, desired: dir}
}

// Head returns the head position.
func (s *Snake) Head() GridPosition {
	return s.segments[0]
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.segments)
}

// Segments returns a copy of the body, head first.
func (s *Snake) Segments() []GridPosition {
	out := make([]GridPosition, len(s.segments))
	copy(out, s.segments)
	return out
}

// Direction returns the heading committed by the last move.
func (s *Snake) Direction() Direction {
	return s.direction
}

// DesiredDirection returns the heading the next move will use.
func (s *Snake) DesiredDirection() Direction {
	return s.desired
}

// PendingGrowth returns how many future moves will keep the tail.
func (s *Snake) PendingGrowth() int {
	return s.pendingGrowth
}

// ChangeDirection requests a new heading for the next move.
// The exact reverse of the committed heading is ignored.
func (s *Snake) ChangeDirection(d Direction) {
	if !d.Valid() || d == s.direction.Opposite() {
		return
	}
	if d == s.desired {
		return
	}
	s.desired = d
}

// Move commits the desired heading and advances the head one cell.
// The tail is dropped unless growth is pending.
func (s *Snake) Move() {
	s.direction = s.desired
	next := s.Head().Step(s.direction)

	s.segments = append(s.segments, GridPosition{})
	copy(s.segments[1:], s.segments)
	s.segments[0] = next

	if s.pendingGrowth > 0 {
		s.pendingGrowth--
		return
	}
	s.segments = s.segments[:len(s.segments)-1]
}

// Grow queues amount segments of growth. Non-positive amounts grow by one.
func (s *Snake) Grow(amount int) {
	if amount <= 0 {
		amount = 1
	}
	s.pendingGrowth += amount
}

// CollidesWithSelf reports whether the head overlaps any other segment.
// Call it after Move for the current tick.
func (s *Snake) CollidesWithSelf() bool {
	head := s.Head()
	for _, seg := range s.segments[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// Contains reports whether any segment occupies p.
func (s *Snake) Contains(p GridPosition) bool {
	for _, seg := range s.segments {
		if seg == p {
			return true
		}
	}
	return false
}
