package snake

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Settings are the fixed parameters of an engine session.
type Settings struct {
	Width  int
	Height int

	BaseInterval time.Duration // Tick interval at level 1
	IntervalStep time.Duration // Reduction per level; 0 disables speed-up
	MinInterval  time.Duration // Floor for the tick interval

	PointsPerLevel int
	FoodPoints     int
	FoodGrowth     int

	BonusPoints        int
	BonusGrowth        int
	BonusLifespan      time.Duration
	BonusSpawnInterval time.Duration
	BonusChance        float64 // Probability per spawn check, 0..1

	Seed int64 // 0 seeds from the clock
}

// DefaultSettings returns the classic 40x30 game.
func DefaultSettings() Settings {
	return Settings{
		Width:              40,
		Height:             30,
		BaseInterval:       200 * time.Millisecond,
		IntervalStep:       22 * time.Millisecond,
		MinInterval:        40 * time.Millisecond,
		PointsPerLevel:     10,
		FoodPoints:         1,
		FoodGrowth:         1,
		BonusPoints:        5,
		BonusGrowth:        3,
		BonusLifespan:      6 * time.Second,
		BonusSpawnInterval: 10 * time.Second,
		BonusChance:        0.45,
	}
}

// MinGridSize is the smallest width or height that fits a new snake.
const MinGridSize = 5

// Validate reports every invalid field.
func (s Settings) Validate() error {
	var errs []error
	if s.Width < MinGridSize || s.Height < MinGridSize {
		errs = append(errs, fmt.Errorf("grid %dx%d is smaller than %dx%d", s.Width, s.Height, MinGridSize, MinGridSize))
	}
	if s.BaseInterval <= 0 || s.MinInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick intervals must be positive (base %v, min %v)", s.BaseInterval, s.MinInterval))
	}
	if s.MinInterval > s.BaseInterval {
		errs = append(errs, fmt.Errorf("min interval %v exceeds base interval %v", s.MinInterval, s.BaseInterval))
	}
	if s.IntervalStep < 0 {
		errs = append(errs, fmt.Errorf("interval step %v is negative", s.IntervalStep))
	}
	if s.PointsPerLevel <= 0 {
		errs = append(errs, fmt.Errorf("points per level must be positive, got %d", s.PointsPerLevel))
	}
	if s.FoodPoints <= 0 || s.BonusPoints <= 0 {
		errs = append(errs, fmt.Errorf("food and bonus points must be positive (food %d, bonus %d)", s.FoodPoints, s.BonusPoints))
	}
	if s.FoodGrowth <= 0 || s.BonusGrowth <= 0 {
		errs = append(errs, fmt.Errorf("growth must be positive (food %d, bonus %d)", s.FoodGrowth, s.BonusGrowth))
	}
	if s.BonusLifespan <= 0 || s.BonusSpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("bonus lifespan and spawn interval must be positive (%v, %v)", s.BonusLifespan, s.BonusSpawnInterval))
	}
	if s.BonusChance < 0 || s.BonusChance > 1 {
		errs = append(errs, fmt.Errorf("bonus chance %v outside [0, 1]", s.BonusChance))
	}
	return errors.Join(errs...)
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLogger sets the engine logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// Engine is the authoritative game simulation.
//
// All state is guarded by a single mutex; commands and timer callbacks take
// it for their whole duration. Timer callbacks carry the generation they were
// scheduled under and do nothing once that generation has been superseded.
type Engine struct {
	mu       sync.Mutex
	settings Settings
	bounds   core.Rect
	clock    Clock
	logger   *log.Logger
	rng      *rand.Rand

	sessionID string
	epoch     uint64 // Bumped by Reset; guards bonus expiry
	runGen    uint64 // Bumped whenever tick/spawn timers start or stop

	snake       *Snake
	food        Optional[Food]
	bonus       Optional[BonusFood]
	nextBonusID uint64

	score    int
	level    int
	interval time.Duration
	tick     uint64

	running  bool
	ticking  bool
	gameOver bool
	closed   bool

	tickTimer   Timer
	spawnTimer  Timer
	expiryTimer Timer

	subs      []*Subscription
	nextSubID uint64
}

// New creates an engine in the Idle state with a centered snake and food.
func New(settings Settings, opts ...Option) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("snake: invalid settings: %w", err)
	}

	e := &Engine{
		settings: settings,
		bounds:   core.NewRect(0, 0, settings.Width, settings.Height),
		clock:    SystemClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	seed := settings.Seed
	if seed == 0 {
		seed = e.clock.Now().UnixNano()
	}
	e.rng = rand.New(rand.NewSource(seed))

	e.mu.Lock()
	e.resetLocked()
	e.mu.Unlock()
	return e, nil
}

// Settings returns the parameters the engine was created with.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Reset stops all timers and starts a fresh Idle session.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.resetLocked()
	e.publishLocked(EventUpdated)
}

func (e *Engine) resetLocked() {
	e.stopTimersLocked()
	e.stopExpiryLocked()

	e.epoch++
	e.sessionID = uuid.NewString()
	e.score = 0
	e.level = 1
	e.tick = 0
	e.snake = CreateCentered(e.settings.Width/2, e.settings.Height/2)
	e.bonus = None[BonusFood]()
	e.food = e.spawnFoodLocked()
	e.interval = e.settings.BaseInterval
	e.running = false
	e.gameOver = false

	e.logger.Debug("session reset", "session", e.sessionID, "grid", fmt.Sprintf("%dx%d", e.settings.Width, e.settings.Height))
}

// Start begins ticking. Repeated calls while running are no-ops.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.running {
		return
	}

	e.running = true
	e.startTimersLocked()
	e.logger.Debug("session started", "session", e.sessionID, "interval", e.interval)
	e.publishLocked(EventUpdated)
}

// TogglePause stops a ticking game or resumes a paused one. From Idle it
// behaves like Start; after game over it does nothing until Reset.
func (e *Engine) TogglePause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.gameOver {
		return
	}

	switch {
	case !e.running:
		e.running = true
		e.startTimersLocked()
	case e.ticking:
		e.stopTimersLocked()
		e.logger.Debug("paused", "session", e.sessionID, "score", e.score)
	default:
		e.startTimersLocked()
		e.logger.Debug("resumed", "session", e.sessionID, "score", e.score)
	}
	e.publishLocked(EventUpdated)
}

// SetDirection requests a heading for the next move.
func (e *Engine) SetDirection(d Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snake.ChangeDirection(d)
}

// Step runs one simulation tick immediately, outside the timer schedule.
// It is ignored after game over.
func (e *Engine) Step() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.gameOver {
		return
	}
	e.tickLocked()
}

// Close stops every timer and ends all subscriptions. The engine ignores
// commands afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.stopTimersLocked()
	e.stopExpiryLocked()
	e.epoch++
	subs := e.subs
	e.subs = nil
	e.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// IsRunning reports whether Start has been called since the last Reset.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// IsTicking reports whether the tick timer is active.
func (e *Engine) IsTicking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticking
}

// Score returns the current score.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// tickLocked advances the snake and resolves collisions and consumption.
func (e *Engine) tickLocked() {
	e.tick++
	e.snake.Move()

	head := e.snake.Head()
	if !e.bounds.Contains(head.X, head.Y) || e.snake.CollidesWithSelf() {
		e.gameOverLocked()
		return
	}

	var eaten []Food
	if f, ok := e.food.Get(); ok && head == f.Position {
		e.snake.Grow(e.settings.FoodGrowth)
		e.score += f.Points
		e.food = e.spawnFoodLocked()
		eaten = append(eaten, f)
		e.recomputeLevelLocked()
	}

	if b, ok := e.bonus.Get(); ok && head == b.Position {
		e.snake.Grow(e.settings.BonusGrowth)
		e.score += b.Points
		e.bonus = None[BonusFood]()
		e.stopExpiryLocked()
		eaten = append(eaten, b.Food)
		e.recomputeLevelLocked()
	}

	if len(eaten) > 0 && len(e.subs) > 0 {
		snap := e.snapshotLocked()
		for _, f := range eaten {
			e.publishFoodLocked(snap, f)
		}
	}
	e.publishLocked(EventUpdated)
}

func (e *Engine) gameOverLocked() {
	e.stopTimersLocked()
	e.stopExpiryLocked()
	e.gameOver = true

	e.logger.Info("game over",
		"session", e.sessionID,
		"score", e.score,
		"level", e.level,
		"length", e.snake.Len(),
		"head", e.snake.Head(),
	)
	e.publishLocked(EventGameOver)
}

// recomputeLevelLocked updates level and interval after a score change.
// A new interval takes effect from the next scheduled tick.
func (e *Engine) recomputeLevelLocked() {
	level := LevelForScore(e.score, e.settings.PointsPerLevel)
	if level == e.level {
		return
	}
	e.level = level
	e.interval = IntervalForLevel(level, e.settings.BaseInterval, e.settings.IntervalStep, e.settings.MinInterval)
	e.logger.Debug("level up", "level", level, "interval", e.interval, "speed", SpeedLabel(e.interval))
}

// --- Timers ---

func (e *Engine) startTimersLocked() {
	e.stopTimersLocked()
	e.ticking = true
	e.scheduleTickLocked()
	e.scheduleSpawnLocked()
}

func (e *Engine) stopTimersLocked() {
	e.runGen++
	e.ticking = false
	if e.tickTimer != nil {
		e.tickTimer.Stop()
		e.tickTimer = nil
	}
	if e.spawnTimer != nil {
		e.spawnTimer.Stop()
		e.spawnTimer = nil
	}
}

func (e *Engine) stopExpiryLocked() {
	if e.expiryTimer != nil {
		e.expiryTimer.Stop()
		e.expiryTimer = nil
	}
}

func (e *Engine) scheduleTickLocked() {
	gen := e.runGen
	e.tickTimer = e.clock.AfterFunc(e.interval, func() {
		e.onTick(gen)
	})
}

func (e *Engine) scheduleSpawnLocked() {
	gen := e.runGen
	e.spawnTimer = e.clock.AfterFunc(e.settings.BonusSpawnInterval, func() {
		e.onBonusCheck(gen)
	})
}

func (e *Engine) onTick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.runGen || !e.ticking {
		return
	}

	e.tickLocked()
	if e.ticking {
		e.scheduleTickLocked()
	}
}

func (e *Engine) onBonusCheck(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.runGen || !e.ticking {
		return
	}

	e.trySpawnBonusLocked()
	e.scheduleSpawnLocked()
}

// trySpawnBonusLocked spawns a bonus with the configured probability when
// none is present, and schedules its expiry.
func (e *Engine) trySpawnBonusLocked() bool {
	if e.bonus.Present() {
		return false
	}
	if e.rng.Float64() >= e.settings.BonusChance {
		return false
	}
	pos, ok := e.freePositionLocked()
	if !ok {
		return false
	}

	e.nextBonusID++
	b := BonusFood{
		Food:      Food{Position: pos, Points: e.settings.BonusPoints, Kind: FoodBonus},
		Lifespan:  e.settings.BonusLifespan,
		SpawnedAt: e.clock.Now(),
		ID:        e.nextBonusID,
	}
	e.bonus = Some(b)

	epoch, id := e.epoch, b.ID
	e.stopExpiryLocked()
	e.expiryTimer = e.clock.AfterFunc(b.Lifespan, func() {
		e.onBonusExpired(epoch, id)
	})

	e.logger.Debug("bonus spawned", "id", id, "pos", pos, "lifespan", b.Lifespan)
	e.publishLocked(EventUpdated)
	return true
}

// onBonusExpired clears the bonus only if it is still the instance that
// scheduled this expiry, in the same session.
func (e *Engine) onBonusExpired(epoch, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if epoch != e.epoch || e.gameOver {
		return
	}
	cur, ok := e.bonus.Get()
	if !ok || cur.ID != id {
		return
	}

	e.bonus = None[BonusFood]()
	e.expiryTimer = nil
	e.logger.Debug("bonus expired", "id", id)
	e.publishLocked(EventUpdated)
}
