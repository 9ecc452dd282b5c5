// Package state holds the in-memory board and fans changes out to observers.
package state

import "sync"

// Listener receives a private copy of the full sequence after every change.
type Listener[T any] func(items []T)

type subscription[T any] struct {
	id int
	fn Listener[T]
}

// List is an ordered, observable sequence.
//
// The mutex is held across mutate+notify, so listeners run one at a time,
// in registration order, and each sees the complete post-change state.
// A listener must not call back into the same List; hand the snapshot
// to another goroutine instead.
type List[T any] struct {
	mu        sync.Mutex
	items     []T
	listeners []subscription[T]
	nextID    int
}

// NewList returns a list seeded with a copy of items. Seeding does not notify.
func NewList[T any](items []T) *List[T] {
	l := &List[T]{}
	if len(items) > 0 {
		l.items = append([]T(nil), items...)
	}
	return l
}

// Subscribe appends fn to the observer list and returns a func that detaches it.
// The same fn may be registered more than once.
func (l *List[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.subscribe(fn)
}

// Watch is Subscribe plus an immediate call with the current sequence, done
// under the lock so no change can slip in between.
func (l *List[T]) Watch(fn Listener[T]) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.copyItems())
	return l.subscribe(fn)
}

// subscribe must be called with mu held.
func (l *List[T]) subscribe(fn Listener[T]) func() {
	id := l.nextID
	l.nextID++
	l.listeners = append(l.listeners, subscription[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, s := range l.listeners {
				if s.id == id {
					l.listeners = append(l.listeners[:i:i], l.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (l *List[T]) Snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.copyItems()
}

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Append adds v at the end and notifies.
func (l *List[T]) Append(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, v)
	l.notify()
}

// Update applies fn to the first element accepted by match.
// Observers are notified only when apply reports a change.
func (l *List[T]) Update(match func(T) bool, apply func(*T) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if !match(l.items[i]) {
			continue
		}
		if apply(&l.items[i]) {
			l.notify()
		}
		return
	}
}

// Find returns the first element accepted by match.
func (l *List[T]) Find(match func(T) bool) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, it := range l.items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// notify must be called with mu held.
func (l *List[T]) notify() {
	for _, s := range l.listeners {
		s.fn(l.copyItems())
	}
}

func (l *List[T]) copyItems() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}
