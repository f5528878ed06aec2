package snake

import "time"

// Speed label thresholds, inclusive upper bounds on the tick interval.
const (
	veryFastMax = 80 * time.Millisecond
	fastMax     = 130 * time.Millisecond
	normalMax   = 200 * time.Millisecond
)

// LevelForScore derives the level from cumulative score.
func LevelForScore(score, pointsPerLevel int) int {
	if pointsPerLevel <= 0 || score < 0 {
		return 1
	}
	return 1 + score/pointsPerLevel
}

// IntervalForLevel returns the tick interval for level:
// max(min, base - (level-1)*step).
func IntervalForLevel(level int, base, step, min time.Duration) time.Duration {
	if level < 1 {
		level = 1
	}
	interval := base - time.Duration(level-1)*step
	if interval < min {
		return min
	}
	return interval
}

// SpeedLabel buckets a tick interval for display.
func SpeedLabel(interval time.Duration) string {
	switch {
	case interval <= veryFastMax:
		return "Very Fast"
	case interval <= fastMax:
		return "Fast"
	case interval <= normalMax:
		return "Normal"
	default:
		return "Slow"
	}
}
