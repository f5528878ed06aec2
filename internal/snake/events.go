package snake

import "sync"

// EventKind identifies an engine notification.
type EventKind int

const (
	// EventUpdated follows every committed state change.
	EventUpdated EventKind = iota
	// EventGameOver is raised once per collision.
	EventGameOver
	// EventFoodEaten is raised for each food or bonus consumed in a tick,
	// before that tick's EventUpdated.
	EventFoodEaten
)

func (k EventKind) String() string {
	switch k {
	case EventUpdated:
		return "updated"
	case EventGameOver:
		return "game_over"
	case EventFoodEaten:
		return "food_eaten"
	default:
		return "unknown"
	}
}

// Event is a notification with the state captured right after the mutation
// that raised it.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
	// Food is the consumed item for EventFoodEaten.
	Food Food
}

// DefaultEventBuffer is the subscription buffer used when none is given.
const DefaultEventBuffer = 64

// Subscription receives engine events on a buffered channel.
// When the buffer is full the oldest event is dropped, so a slow consumer
// never stalls the simulation and always sees the latest state.
type Subscription struct {
	id        uint64
	engine    *Engine
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// Events returns the channel events are delivered on. It is closed by Close.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Done is closed when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close detaches the subscription from the engine and closes its channels.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		if s.engine != nil {
			s.engine.unsubscribe(s.id)
		}
		close(s.done)
		close(s.events)
	})
}

// send delivers without blocking. Only called under the engine lock.
func (s *Subscription) send(evt Event) {
	select {
	case s.events <- evt:
		return
	default:
	}

	// Buffer full: drop the oldest and retry once.
	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
	default:
	}
}

// Subscribe registers a new listener. buffer <= 0 uses DefaultEventBuffer.
func (e *Engine) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextSubID++
	sub := &Subscription{
		id:     e.nextSubID,
		engine: e,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	e.subs = append(e.subs, sub)
	return sub
}

func (e *Engine) unsubscribe(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, sub := range e.subs {
		if sub.id == id {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			return
		}
	}
}

// publishLocked fans an event out to subscribers in registration order.
func (e *Engine) publishLocked(kind EventKind) {
	if len(e.subs) == 0 {
		return
	}
	evt := Event{Kind: kind, Snapshot: e.snapshotLocked()}
	for _, sub := range e.subs {
		sub.send(evt)
	}
}

func (e *Engine) publishFoodLocked(snap Snapshot, food Food) {
	evt := Event{Kind: EventFoodEaten, Snapshot: snap, Food: food}
	for _, sub := range e.subs {
		sub.send(evt)
	}
}
