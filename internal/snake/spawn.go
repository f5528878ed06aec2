package snake

// maxRandomAttempts bounds rejection sampling before falling back to a scan
// of every free cell. Both paths pick uniformly among free cells.
const maxRandomAttempts = 100

// freePositionLocked finds a random cell not covered by the snake, the food
// or the bonus. It returns false when the board has no free cell left.
func (e *Engine) freePositionLocked() (GridPosition, bool) {
	w, h := e.settings.Width, e.settings.Height

	for range maxRandomAttempts {
		p := GridPosition{X: e.rng.Intn(w), Y: e.rng.Intn(h)}
		if !e.occupiedLocked(p) {
			return p, true
		}
	}

	free := e.freeCellsLocked()
	if len(free) == 0 {
		return GridPosition{}, false
	}
	return free[e.rng.Intn(len(free))], true
}

// freeCellsLocked lists every unoccupied cell in row-major order.
func (e *Engine) freeCellsLocked() []GridPosition {
	var free []GridPosition
	for y := range e.settings.Height {
		for x := range e.settings.Width {
			p := GridPosition{X: x, Y: y}
			if !e.occupiedLocked(p) {
				free = append(free, p)
			}
		}
	}
	return free
}

func (e *Engine) occupiedLocked(p GridPosition) bool {
	if e.snake.Contains(p) {
		return true
	}
	if f, ok := e.food.Get(); ok && f.Position == p {
		return true
	}
	if b, ok := e.bonus.Get(); ok && b.Position == p {
		return true
	}
	return false
}

// spawnFoodLocked places a replacement normal food. The food is absent when
// the board is saturated.
func (e *Engine) spawnFoodLocked() Optional[Food] {
	e.food = None[Food]()
	pos, ok := e.freePositionLocked()
	if !ok {
		e.logger.Warn("no free cell for food", "length", e.snake.Len())
		return None[Food]()
	}
	return Some(Food{Position: pos, Points: e.settings.FoodPoints, Kind: FoodNormal})
}
