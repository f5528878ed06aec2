// Package config provides YAML-based engine configuration loading and
// difficulty presets for the snake game.
package config

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// EngineConfig contains every tunable engine parameter.
type EngineConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Speed   SpeedConfig   `yaml:"speed"`
	Scoring ScoringConfig `yaml:"scoring"`
	Bonus   BonusConfig   `yaml:"bonus"`
	Seed    int64         `yaml:"seed"` // 0 seeds from the clock
}

// GridConfig defines the board size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpeedConfig defines the tick interval progression.
type SpeedConfig struct {
	BaseInterval   time.Duration `yaml:"base_interval"`
	IntervalStep   time.Duration `yaml:"interval_step"` // 0 keeps a fixed speed
	MinInterval    time.Duration `yaml:"min_interval"`
	PointsPerLevel int           `yaml:"points_per_level"`
}

// ScoringConfig defines what normal food is worth.
type ScoringConfig struct {
	FoodPoints int `yaml:"food_points"`
	FoodGrowth int `yaml:"food_growth"`
}

// BonusConfig defines the time-limited bonus food.
type BonusConfig struct {
	Points        int           `yaml:"points"`
	Growth        int           `yaml:"growth"`
	Lifespan      time.Duration `yaml:"lifespan"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	Chance        float64       `yaml:"chance"` // Probability per spawn check
}

// DefaultEngineConfig returns the hard-coded defaults, matching the embedded
// defaults/snake.yaml.
func DefaultEngineConfig() EngineConfig {
	return FromSettings(snake.DefaultSettings())
}

// FromSettings converts engine settings to their YAML form.
func FromSettings(s snake.Settings) EngineConfig {
	return EngineConfig{
		Grid: GridConfig{
			Width:  s.Width,
			Height: s.Height,
		},
		Speed: SpeedConfig{
			BaseInterval:   s.BaseInterval,
			IntervalStep:   s.IntervalStep,
			MinInterval:    s.MinInterval,
			PointsPerLevel: s.PointsPerLevel,
		},
		Scoring: ScoringConfig{
			FoodPoints: s.FoodPoints,
			FoodGrowth: s.FoodGrowth,
		},
		Bonus: BonusConfig{
			Points:        s.BonusPoints,
			Growth:        s.BonusGrowth,
			Lifespan:      s.BonusLifespan,
			SpawnInterval: s.BonusSpawnInterval,
			Chance:        s.BonusChance,
		},
		Seed: s.Seed,
	}
}

// Settings converts the configuration to engine settings.
func (c EngineConfig) Settings() snake.Settings {
	return snake.Settings{
		Width:              c.Grid.Width,
		Height:             c.Grid.Height,
		BaseInterval:       c.Speed.BaseInterval,
		IntervalStep:       c.Speed.IntervalStep,
		MinInterval:        c.Speed.MinInterval,
		PointsPerLevel:     c.Speed.PointsPerLevel,
		FoodPoints:         c.Scoring.FoodPoints,
		FoodGrowth:         c.Scoring.FoodGrowth,
		BonusPoints:        c.Bonus.Points,
		BonusGrowth:        c.Bonus.Growth,
		BonusLifespan:      c.Bonus.Lifespan,
		BonusSpawnInterval: c.Bonus.SpawnInterval,
		BonusChance:        c.Bonus.Chance,
		Seed:               c.Seed,
	}
}

// Validate reports every invalid field as one joined error.
func (c EngineConfig) Validate() error {
	return c.Settings().Validate()
}
