package auth

import "sync"

// EventType distinguishes auth state transitions.
type EventType int

const (
	SignedIn EventType = iota
	SignedOut
)

// Event is one auth state change.
type Event struct {
	Type     EventType
	Identity *Identity // nil on SignedOut
}

// Watcher fans auth state changes out to subscribers. It is the analogue of
// the backend client's onAuthStateChange subscription: the shell subscribes
// on start and releases the subscription on shutdown.
type Watcher struct {
	mu   sync.Mutex
	subs map[int]func(Event)
	next int
}

func NewWatcher() *Watcher {
	return &Watcher{subs: make(map[int]func(Event))}
}

// Subscribe registers fn for future events.
func (w *Watcher) Subscribe(fn func(Event)) *Subscription {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.next
	w.next++
	w.subs[id] = fn
	return &Subscription{watcher: w, id: id}
}

// Publish delivers ev to every live subscriber.
func (w *Watcher) Publish(ev Event) {
	w.mu.Lock()
	fns := make([]func(Event), 0, len(w.subs))
	for _, fn := range w.subs {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Subscription is a live registration on a Watcher.
type Subscription struct {
	watcher *Watcher
	id      int
	once    sync.Once
}

// Unsubscribe releases the registration. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.watcher.mu.Lock()
		delete(s.watcher.subs, s.id)
		s.watcher.mu.Unlock()
	})
}
