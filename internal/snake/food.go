package snake

import "time"

// FoodKind classifies a consumable. It is informational; the engine scores
// food by its Points and growth, not by its kind.
type FoodKind int

const (
	FoodNormal FoodKind = iota
	FoodFast
	FoodSlow
	FoodBonus
)

func (k FoodKind) String() string {
	switch k {
	case FoodNormal:
		return "normal"
	case FoodFast:
		return "fast"
	case FoodSlow:
		return "slow"
	case FoodBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// Food is a consumable placed on the grid.
type Food struct {
	Position GridPosition
	Points   int
	Kind     FoodKind
}

// BonusFood is a time-limited, higher-value consumable.
type BonusFood struct {
	Food
	Lifespan  time.Duration
	SpawnedAt time.Time
	// ID identifies this bonus instance within an engine. Expiry timers
	// compare it to the current bonus before clearing anything.
	ID uint64
}

// ExpiresAt returns the instant the bonus disappears.
func (b BonusFood) ExpiresAt() time.Time {
	return b.SpawnedAt.Add(b.Lifespan)
}

// Remaining returns the lifespan left at now, never negative.
func (b BonusFood) Remaining(now time.Time) time.Duration {
	left := b.ExpiresAt().Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Optional holds a value that may legitimately be absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether a value is held.
func (o Optional[T]) Present() bool {
	return o.ok
}
