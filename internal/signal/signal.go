// Package signal provides a typed value holder with subscriptions.
//
// A Signal always carries a current value; subscribers receive that value
// immediately on Subscribe and every committed value afterwards. Callbacks
// run on the goroutine that committed the value, outside the internal lock.
package signal

import "sync"

// Signal holds a value of type T and notifies subscribers on change.
type Signal[T any] struct {
	mu   sync.Mutex
	val  T
	subs map[int]func(T)
	next int

	// eq, when set, suppresses notification of values equal to the
	// current one (distinct-until-changed).
	eq func(a, b T) bool
}

// New returns a Signal initialised with v.
func New[T any](v T) *Signal[T] {
	return &Signal[T]{val: v, subs: make(map[int]func(T))}
}

// NewDistinct returns a Signal that only notifies when the value changes
// under ==.
func NewDistinct[T comparable](v T) *Signal[T] {
	s := New(v)
	s.eq = func(a, b T) bool { return a == b }
	return s
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val
}

// Set commits v and notifies subscribers.
func (s *Signal[T]) Set(v T) {
	s.Update(func(T) T { return v })
}

// Update commits fn(current) atomically and returns the new value.
// fn runs under the signal's lock; it must not call back into the signal.
func (s *Signal[T]) Update(fn func(cur T) T) T {
	s.mu.Lock()
	v := fn(s.val)
	if s.eq != nil && s.eq(s.val, v) {
		s.mu.Unlock()
		return v
	}
	s.val = v
	subs := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
	return v
}

// Subscribe registers fn and invokes it once with the current value.
// The returned func removes the subscription; it is idempotent.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	cur := s.val
	s.mu.Unlock()

	fn(cur)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// View returns a read-only handle to the signal.
func (s *Signal[T]) View() View[T] { return View[T]{s: s} }

// View exposes a Signal without its mutators.
type View[T any] struct{ s *Signal[T] }

// Get returns the current value.
func (v View[T]) Get() T { return v.s.Get() }

// Subscribe registers fn; see Signal.Subscribe.
func (v View[T]) Subscribe(fn func(T)) func() { return v.s.Subscribe(fn) }
