package snake

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func testSettings() Settings {
	s := DefaultSettings()
	s.Seed = 12345
	return s
}

func newTestEngine(t *testing.T, settings Settings) (*Engine, *manualClock) {
	t.Helper()
	clock := newManualClock()
	e, err := New(settings, WithClock(clock))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(e.Close)
	return e, clock
}

// placeFoodAhead puts a food worth points directly in front of the head.
func placeFoodAhead(e *Engine, points int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.snake.Head().Step(e.snake.DesiredDirection())
	e.food = Some(Food{Position: next, Points: points, Kind: FoodNormal})
}

// placeBonusAhead puts a bonus directly in front of the head.
func placeBonusAhead(e *Engine) BonusFood {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.snake.Head().Step(e.snake.DesiredDirection())
	e.nextBonusID++
	b := BonusFood{
		Food:      Food{Position: next, Points: e.settings.BonusPoints, Kind: FoodBonus},
		Lifespan:  e.settings.BonusLifespan,
		SpawnedAt: e.clock.Now(),
		ID:        e.nextBonusID,
	}
	e.bonus = Some(b)
	return b
}

// clearFood removes the food so random spawns cannot interfere.
func clearFood(e *Engine) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.food = None[Food]()
}

// drain returns every event currently buffered.
func drain(sub *Subscription) []Event {
	var events []Event
	for {
		select {
		case evt := <-sub.Events():
			events = append(events, evt)
		default:
			return events
		}
	}
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, evt := range events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewEngineIsIdle(t *testing.T) {
	e, _ := newTestEngine(t, testSettings())
	snap := e.Snapshot()

	if snap.State != StateIdle {
		t.Errorf("state = %v, expected idle", snap.State)
	}
	if head, _ := snap.Head(); head != Pos(20, 15) {
		t.Errorf("head = %v, expected (20,15)", head)
	}
	if snap.Len() != InitialLength {
		t.Errorf("len = %d, expected %d", snap.Len(), InitialLength)
	}
	if snap.Score != 0 || snap.Level != 1 {
		t.Errorf("score/level = %d/%d, expected 0/1", snap.Score, snap.Level)
	}
	if snap.Interval != 200*time.Millisecond || snap.SpeedLabel != "Normal" {
		t.Errorf("interval = %v (%s), expected 200ms Normal", snap.Interval, snap.SpeedLabel)
	}
	if snap.Running || snap.Ticking {
		t.Error("new engine should not be running")
	}
	if snap.Bonus.Present() {
		t.Error("new engine should have no bonus")
	}
	food, ok := snap.Food.Get()
	if !ok {
		t.Fatal("new engine should have food")
	}
	for _, seg := range snap.Segments {
		if seg == food.Position {
			t.Errorf("food spawned on snake at %v", food.Position)
		}
	}
	if snap.SessionID == "" {
		t.Error("session id should be set")
	}
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	s := testSettings()
	s.Width = 2
	s.BonusChance = 1.5
	s.MinInterval = time.Second

	_, err := New(s)
	if err == nil {
		t.Fatal("expected error for invalid settings")
	}
	for _, want := range []string{"grid", "bonus chance", "min interval"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestStartTicksAtInterval(t *testing.T) {
	e, clock := newTestEngine(t, testSettings())
	clearFood(e)
	sub := e.Subscribe(0)

	e.Start()
	e.Start() // no-op while running

	events := drain(sub)
	if len(events) != 1 || events[0].Kind != EventUpdated {
		t.Fatalf("Start should raise exactly one Updated, got %d events", len(events))
	}
	if e.State() != StateRunning {
		t.Fatalf("state = %v, expected running", e.State())
	}

	clock.Advance(199 * time.Millisecond)
	if e.Snapshot().Tick != 0 {
		t.Fatal("tick fired early")
	}
	clock.Advance(1 * time.Millisecond)

	snap := e.Snapshot()
	if snap.Tick != 1 {
		t.Fatalf("tick = %d, expected 1", snap.Tick)
	}
	if head, _ := snap.Head(); head != Pos(21, 15) {
		t.Errorf("head = %v, expected (21,15)", head)
	}
	if countKind(drain(sub), EventUpdated) != 1 {
		t.Error("each tick should raise Updated")
	}

	clock.Advance(1 * time.Second)
	if got := e.Snapshot().Tick; got != 6 {
		t.Errorf("tick = %d after 1.2s, expected 6", got)
	}
}

func TestLeftWallEndsGame(t *testing.T) {
	e, clock := newTestEngine(t, testSettings())
	sub := e.Subscribe(256)

	e.Start()
	e.SetDirection(Up)
	clock.Advance(200 * time.Millisecond) // head (20,14)
	e.SetDirection(Left)

	// 21 more moves take x from 20 to -1.
	clock.Advance(20 * 200 * time.Millisecond)
	if e.State() == StateGameOver {
		t.Fatalf("game ended early at head %v", e.Snapshot().Segments[0])
	}
	clock.Advance(200 * time.Millisecond)

	snap := e.Snapshot()
	if snap.State != StateGameOver {
		t.Fatalf("state = %v, expected game over", snap.State)
	}
	if head, _ := snap.Head(); head.X != -1 {
		t.Errorf("head = %v, expected x = -1", head)
	}
	if snap.Ticking {
		t.Error("tick timer should be stopped")
	}

	events := drain(sub)
	if countKind(events, EventGameOver) != 1 {
		t.Errorf("expected one GameOver event, got %d", countKind(events, EventGameOver))
	}
	if last := events[len(events)-1]; last.Kind != EventGameOver {
		t.Errorf("last event = %v, expected game_over", last.Kind)
	}

	// Nothing fires afterwards.
	clock.Advance(time.Minute)
	if extra := drain(sub); len(extra) != 0 {
		t.Errorf("got %d events after game over", len(extra))
	}
	if clock.pending() != 0 {
		t.Errorf("%d timers still pending after game over", clock.pending())
	}
}

func TestGameOverIsTerminalUntilReset(t *testing.T) {
	e, clock := newTestEngine(t, testSettings())
	e.Start()
	clock.Advance(20 * 200 * time.Millisecond) // right wall at x = 40

	if e.State() != StateGameOver {
		t.Fatalf("state = %v, expected game over", e.State())
	}

	e.Start()
	e.TogglePause()
	e.Step()
	if e.State() != StateGameOver || e.IsTicking() {
		t.Fatal("commands other than Reset should not leave game over")
	}

	e.Reset()
	snap := e.Snapshot()
	if snap.State != StateIdle || snap.Score != 0 || snap.Len() != InitialLength {
		t.Errorf("after reset: state %v score %d len %d", snap.State, snap.Score, snap.Len())
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	e, _ := newTestEngine(t, testSettings())
	clearFood(e)

	// A loop whose tail sits right of the head.
	e.mu.Lock()
	e.snake = newSnake([]GridPosition{{10, 10}, {9, 10}, {9, 11}, {10, 11}, {11, 11}, {11, 10}}, Up)
	e.snake.ChangeDirection(Right)
	e.mu.Unlock()

	// The tail leaves (11,10) in the same move, so the head may take it.
	e.Step()
	if e.State() == StateGameOver {
		t.Fatal("moving into the vacated tail cell should be safe")
	}

	// Turning down from (10,10) runs into (10,11), which is not the tail.
	e.mu.Lock()
	e.snake = newSnake([]GridPosition{{10, 10}, {9, 10}, {9, 11}, {10, 11}, {11, 11}}, Right)
	e.mu.Unlock()

	e.SetDirection(Down)
	e.Step()
	if e.State() != StateGameOver {
		t.Errorf("state = %v, expected game over on self collision", e.State())
	}
}

func TestFoodScoresAndGrows(t *testing.T) {
	e, _ := newTestEngine(t, testSettings())
	sub := e.Subscribe(0)

	placeFoodAhead(e, 1)
	e.Step()

	snap := e.Snapshot()
	if snap.Score != 1 {
		t.Errorf("score = %d, expected 1", snap.Score)
	}
	food, ok := snap.Food.Get()
	if !ok {
		t.Fatal("food should be respawned")
	}
	for _, seg := range snap.Segments {
		if seg == food.Position {
			t.Errorf("replacement food on snake at %v", food.Position)
		}
	}

	e.mu.Lock()
	pending := e.snake.PendingGrowth()
	e.mu.Unlock()
	if pending != 1 {
		t.Errorf("pending growth = %d, expected 1", pending)
	}

	e.Step()
	if got := e.Snapshot().Len(); got != InitialLength+1 {
		t.Errorf("len = %d, expected %d", got, InitialLength+1)
	}

	events := drain(sub)
	if len(events) < 2 || events[0].Kind != EventFoodEaten || events[1].Kind != EventUpdated {
		t.Fatalf("expected food_eaten then updated, got %v", events)
	}
	if events[0].Food.Kind != FoodNormal || events[0].Food.Points != 1 {
		t.Errorf("food event = %+v", events[0].Food)
	}
}

func TestLevelUpAtTenPoints(t *testing.T) {
	e, _ := newTestEngine(t, testSettings())

	for i := 1; i <= 9; i++ {
		placeFoodAhead(e, 1)
		e.Step()
	}
	snap := e.Snapshot()
	if snap.Score != 9 || snap.Level != 1 || snap.Interval != 200*time.Millisecond {
		t.Fatalf("after 9 foods: score %d level %d interval %v", snap.Score, snap.Level, snap.Interval)
	}

	placeFoodAhead(e, 1)
	e.Step()

	snap = e.Snapshot()
	if snap.Score != 10 || snap.Level != 2 {
		t.Errorf("score/level = %d/%d, expected 10/2", snap.Score, snap.Level)
	}
	if snap.Interval != 178*time.Millisecond {
		t.Errorf("interval = %v, expected 178ms", snap.Interval)
	}
	if snap.SpeedLabel != "Normal" {
		t.Errorf("speed label = %q", snap.SpeedLabel)
	}
}

func TestNewIntervalAppliesToNextTick(t *testing.T) {
	e, clock := newTestEngine(t, testSettings())
	e.mu.Lock()
	e.score = 9
	e.mu.Unlock()
	placeFoodAhead(e, 1)

	e.Start()
	clock.Advance(200 * time.Millisecond)
	if snap := e.Snapshot(); snap.Level != 2 || snap.Tick != 1 {
		t.Fatalf("level %d tick %d, expected 2/1", snap.Level, snap.Tick)
	}

	clock.Advance(177 * time.Millisecond)
	if e.Snapshot().Tick != 1 {
		t.Fatal("second tick fired before the new interval elapsed")
	}
	clock.Advance(1 * time.Millisecond)
	if e.Snapshot().Tick != 2 {
		t.Error("second tick should fire 178ms after the first")
	}
}

func TestFixedSpeedWithoutStep(t *testing.T) {
	s := testSettings()
	s.IntervalStep = 0
	e, _ := newTestEngine(t, s)

	for range 12 {
		placeFoodAhead(e, 1)
		e.Step()
	}
	snap := e.Snapshot()
	if snap.Level != 2 || snap.Interval != s.BaseInterval {
		t.Errorf("level %d interval %v, expected level 2 at base interval", snap.Level, snap.Interval)
	}
}

func TestBonusConsumption(t *testing.T) {
	e, _ := newTestEngine(t, testSettings())
	clearFood(e)
	sub := e.Subscribe(0)

	placeBonusAhead(e)
	e.Step()

	snap := e.Snapshot()
	if snap.Score != 5 {
		t.Errorf("score = %d, expected 5", snap.Score)
	}
	if snap.Bonus.Present() {
		t.Error("bonus should be cleared once eaten")
	}

	for range 3 {
		e.Step()
	}
	if got := e.Snapshot().Len(); got != InitialLength+3 {
		t.Errorf("len = %d, expected %d", got, InitialLength+3)
	}

	events := drain(sub)
	if events[0].Kind != EventFoodEaten || events[0].Food.Kind != FoodBonus {
		t.Errorf("first event = %v %v, expected bonus food_eaten", events[0].Kind, events[0].Food.Kind)
	}
}

func bonusSettings() Settings {
	s := testSettings()
	// Ticks effectively never fire, so only bonus timers matter.
	s.BaseInterval = time.Hour
	s.MinInterval = time.Hour
	s.BonusChance = 1
	s.BonusSpawnInterval = 4 * time.Second
	s.BonusLifespan = 3 * time.Second
	return s
}

func TestBonusSpawnAndExpiry(t *testing.T) {
	e, clock := newTestEngine(t, bonusSettings())
	sub := e.Subscribe(0)
	e.Start()
	drain(sub)

	clock.Advance(4 * time.Second)
	snap := e.Snapshot()
	bonus, ok := snap.Bonus.Get()
	if !ok {
		t.Fatal("bonus should spawn with chance 1")
	}
	if bonus.Points != 5 || bonus.Kind != FoodBonus || bonus.Lifespan != 3*time.Second {
		t.Errorf("bonus = %+v", bonus)
	}
	if snap.BonusRemaining != 3*time.Second {
		t.Errorf("remaining = %v, expected 3s", snap.BonusRemaining)
	}
	if food, _ := snap.Food.Get(); food.Position == bonus.Position {
		t.Error("bonus spawned on food")
	}
	if countKind(drain(sub), EventUpdated) != 1 {
		t.Error("bonus spawn should raise Updated")
	}

	clock.Advance(2 * time.Second)
	if got := e.Snapshot().BonusRemaining; got != time.Second {
		t.Errorf("remaining = %v, expected 1s", got)
	}

	clock.Advance(1 * time.Second) // t = 7s
	if e.Snapshot().Bonus.Present() {
		t.Fatal("bonus should expire after its lifespan")
	}
	if countKind(drain(sub), EventUpdated) != 1 {
		t.Error("expiry should raise Updated")
	}

	clock.Advance(1 * time.Second) // t = 8s, next spawn check
	next, ok := e.Snapshot().Bonus.Get()
	if !ok || next.ID == bonus.ID {
		t.Error("a new bonus instance should spawn at the next check")
	}
}

func TestBonusChanceZeroNeverSpawns(t *testing.T) {
	s := bonusSettings()
	s.BonusChance = 0
	e, clock := newTestEngine(t, s)
	e.Start()

	clock.Advance(time.Minute)
	if e.Snapshot().Bonus.Present() {
		t.Error("bonus spawned with chance 0")
	}
}

func TestExpiryIgnoresReplacedBonus(t *testing.T) {
	e, clock := newTestEngine(t, bonusSettings())
	e.Start()

	clock.Advance(4 * time.Second)
	first, ok := e.Snapshot().Bonus.Get()
	if !ok {
		t.Fatal("bonus should spawn")
	}

	e.mu.Lock()
	epoch := e.epoch
	e.mu.Unlock()

	// Consume the first bonus, then force a second one in the same session.
	e.mu.Lock()
	e.bonus = None[BonusFood]()
	e.stopExpiryLocked()
	e.mu.Unlock()
	second := placeBonusAhead(e)

	e.onBonusExpired(epoch, first.ID)
	cur, ok := e.Snapshot().Bonus.Get()
	if !ok || cur.ID != second.ID {
		t.Error("stale expiry cleared a different bonus instance")
	}
}

func TestResetCancelsBonusExpiry(t *testing.T) {
	e, clock := newTestEngine(t, bonusSettings())
	e.Start()

	clock.Advance(4 * time.Second)
	old, ok := e.Snapshot().Bonus.Get()
	if !ok {
		t.Fatal("bonus should spawn")
	}
	e.mu.Lock()
	oldEpoch := e.epoch
	e.mu.Unlock()

	clock.Advance(1 * time.Second) // t = 5s, old expiry due at 7s
	e.Reset()
	if e.Snapshot().Bonus.Present() {
		t.Fatal("reset should clear the bonus")
	}
	if clock.pending() != 0 {
		t.Errorf("%d timers pending after reset", clock.pending())
	}

	e.Start()
	clock.Advance(4 * time.Second) // t = 9s, new session bonus
	fresh, ok := e.Snapshot().Bonus.Get()
	if !ok {
		t.Fatal("new session should spawn a bonus")
	}

	// A late expiry from the previous session must not touch the new bonus.
	e.onBonusExpired(oldEpoch, old.ID)
	cur, ok := e.Snapshot().Bonus.Get()
	if !ok || cur.ID != fresh.ID {
		t.Error("previous session expiry cleared the new session's bonus")
	}

	clock.Advance(3 * time.Second) // fresh expires at 12s
	if e.Snapshot().Bonus.Present() {
		t.Error("new bonus should expire on its own schedule")
	}
}

func TestTogglePause(t *testing.T) {
	e, clock := newTestEngine(t, testSettings())
	clearFood(e)
	sub := e.Subscribe(0)

	e.TogglePause() // from idle behaves like Start
	if e.State() != StateRunning || !e.IsRunning() {
		t.Fatalf("state = %v, expected running", e.State())
	}
	clock.Advance(200 * time.Millisecond)

	e.TogglePause()
	if e.State() != StatePaused || e.IsTicking() {
		t.Fatalf("state = %v, expected paused", e.State())
	}
	clock.Advance(5 * time.Second)
	if got := e.Snapshot().Tick; got != 1 {
		t.Errorf("tick = %d while paused, expected 1", got)
	}

	e.TogglePause()
	if e.State() != StateRunning {
		t.Fatalf("state = %v, expected running", e.State())
	}
	clock.Advance(200 * time.Millisecond)
	if got := e.Snapshot().Tick; got != 2 {
		t.Errorf("tick = %d after resume, expected 2", got)
	}

	// idle->running, tick, pause, resume, tick
	if got := countKind(drain(sub), EventUpdated); got != 5 {
		t.Errorf("Updated events = %d, expected 5", got)
	}
}

func TestBonusExpiresWhilePaused(t *testing.T) {
	e, clock := newTestEngine(t, bonusSettings())
	e.Start()
	clock.Advance(4 * time.Second)
	if !e.Snapshot().Bonus.Present() {
		t.Fatal("bonus should spawn")
	}

	e.TogglePause()
	clock.Advance(3 * time.Second)
	if e.Snapshot().Bonus.Present() {
		t.Error("bonus lifespan runs independently of the tick timer")
	}
}

func TestResetDuringRunIsIdle(t *testing.T) {
	e, clock := newTestEngine(t, testSettings())
	first := e.Snapshot().SessionID
	e.Start()
	clock.Advance(time.Second)

	e.Reset()
	snap := e.Snapshot()
	if snap.State != StateIdle || snap.Tick != 0 || snap.Running {
		t.Errorf("after reset: state %v tick %d running %v", snap.State, snap.Tick, snap.Running)
	}
	if snap.SessionID == first {
		t.Error("reset should start a new session")
	}

	clock.Advance(time.Second)
	if e.Snapshot().Tick != 0 {
		t.Error("ticks from the previous run fired after reset")
	}
}

func TestStaleTickCallbackIgnored(t *testing.T) {
	e, _ := newTestEngine(t, testSettings())
	e.Start()

	e.mu.Lock()
	gen := e.runGen
	e.mu.Unlock()

	e.TogglePause()
	e.onTick(gen)
	if e.Snapshot().Tick != 0 {
		t.Error("tick from a superseded run generation mutated state")
	}
}

func TestFreePositionSaturatedBoard(t *testing.T) {
	s := testSettings()
	s.Width, s.Height = 5, 5
	e, _ := newTestEngine(t, s)

	// Serpentine covering all 25 cells except (4,4).
	var segs []GridPosition
	for y := range 5 {
		for i := range 5 {
			x := i
			if y%2 == 1 {
				x = 4 - i
			}
			if x == 4 && y == 4 {
				continue
			}
			segs = append(segs, Pos(x, y))
		}
	}

	e.mu.Lock()
	e.snake = newSnake(segs, Right)
	e.food = None[Food]()
	e.bonus = None[BonusFood]()

	p, ok := e.freePositionLocked()
	if !ok || p != Pos(4, 4) {
		t.Errorf("freePosition = %v/%v, expected the single free cell (4,4)", p, ok)
	}

	e.bonus = Some(BonusFood{Food: Food{Position: Pos(4, 4), Points: 5, Kind: FoodBonus}, ID: 99})
	if _, ok := e.freePositionLocked(); ok {
		t.Error("full board should report no free cell")
	}
	if e.spawnFoodLocked().Present() {
		t.Error("food should stay absent on a full board")
	}
	e.mu.Unlock()
}

func TestFoodNeverSpawnsOnOccupiedCells(t *testing.T) {
	s := testSettings()
	s.Width, s.Height = 8, 6
	e, _ := newTestEngine(t, s)
	placeBonusAhead(e)

	e.mu.Lock()
	defer e.mu.Unlock()
	bonus, _ := e.bonus.Get()
	for range 500 {
		f, ok := e.spawnFoodLocked().Get()
		if !ok {
			t.Fatal("board is not full")
		}
		if e.snake.Contains(f.Position) || f.Position == bonus.Position {
			t.Fatalf("food spawned on occupied cell %v", f.Position)
		}
		if !e.bounds.Contains(f.Position.X, f.Position.Y) {
			t.Fatalf("food out of bounds at %v", f.Position)
		}
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() Snapshot {
		e, clock := newTestEngine(t, testSettings())
		e.Start()
		e.SetDirection(Down)
		clock.Advance(time.Second)
		e.SetDirection(Left)
		clock.Advance(time.Second)
		return e.Snapshot()
	}

	a, b := run(), run()
	fa, _ := a.Food.Get()
	fb, _ := b.Food.Get()
	if a.Tick != b.Tick || a.Score != b.Score || fa != fb {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
	ha, _ := a.Head()
	hb, _ := b.Head()
	if ha != hb {
		t.Errorf("head mismatch %v vs %v", ha, hb)
	}
}

func TestSubscriptionDropsOldest(t *testing.T) {
	e, _ := newTestEngine(t, testSettings())
	clearFood(e)
	sub := e.Subscribe(1)

	e.Step()
	e.Step()
	e.Step()

	events := drain(sub)
	if len(events) != 1 {
		t.Fatalf("buffered %d events, expected 1", len(events))
	}
	if events[0].Snapshot.Tick != 3 {
		t.Errorf("kept tick %d, expected the latest (3)", events[0].Snapshot.Tick)
	}
}

func TestSubscriptionClose(t *testing.T) {
	e, _ := newTestEngine(t, testSettings())
	sub := e.Subscribe(4)
	other := e.Subscribe(4)

	sub.Close()
	sub.Close() // idempotent

	if _, ok := <-sub.Events(); ok {
		t.Error("events channel should be closed")
	}
	select {
	case <-sub.Done():
	default:
		t.Error("done should be closed")
	}

	e.Reset()
	if len(drain(other)) != 1 {
		t.Error("remaining subscriber should still receive events")
	}
}

func TestEngineCloseEndsSubscriptions(t *testing.T) {
	e, clock := newTestEngine(t, testSettings())
	sub := e.Subscribe(4)
	e.Start()

	e.Close()
	<-sub.Done()
	if clock.pending() != 0 {
		t.Errorf("%d timers pending after Close", clock.pending())
	}

	e.Start()
	if e.IsTicking() {
		t.Error("closed engine should ignore Start")
	}
}

func TestConcurrentCommands(t *testing.T) {
	s := testSettings()
	s.BaseInterval = time.Millisecond
	s.MinInterval = time.Millisecond
	s.BonusSpawnInterval = 2 * time.Millisecond
	s.BonusLifespan = 3 * time.Millisecond

	e, err := New(s)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer e.Close()

	sub := e.Subscribe(8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for evt := range sub.Events() {
			if evt.Snapshot.Len() < 1 {
				t.Error("snapshot with empty snake")
			}
		}
	}()

	var wg sync.WaitGroup
	for g := range 4 {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range 200 {
				switch (i + g) % 5 {
				case 0:
					e.SetDirection(Directions[(i+g)%4])
				case 1:
					e.TogglePause()
				case 2:
					if i%40 == 0 {
						e.Reset()
					}
					e.Start()
				case 3:
					snap := e.Snapshot()
					if snap.Level != LevelForScore(snap.Score, s.PointsPerLevel) {
						t.Errorf("level %d does not match score %d", snap.Level, snap.Score)
					}
				default:
					time.Sleep(100 * time.Microsecond)
				}
			}
		}(g)
	}
	wg.Wait()

	sub.Close()
	<-done
}
