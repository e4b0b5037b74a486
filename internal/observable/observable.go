// Package observable provides minimal push streams for wiring services to
// view models: replaying relays, non-replaying signals and a dispose bag that
// releases a group of subscriptions together.
package observable

import "sync"

// Observable is a stream that can be subscribed to.
type Observable[T any] interface {
	Subscribe(fn func(T)) Disposable
}

// Disposable releases a subscription. Dispose is idempotent.
type Disposable interface {
	Dispose()
}

type subscribers[T any] struct {
	mu   sync.RWMutex
	next uint64
	subs map[uint64]func(T)
}

func (s *subscribers[T]) add(fn func(T)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[uint64]func(T))
	}
	id := s.next
	s.next++
	s.subs[id] = fn
	return id
}

func (s *subscribers[T]) remove(id uint64) {
	s.mu.Lock()
	delete(s.subs, id)
	s.mu.Unlock()
}

// snapshot returns the current callbacks so they can be invoked without
// holding the lock.
func (s *subscribers[T]) snapshot() []func(T) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func (s *subscribers[T]) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Signal delivers values only to current subscribers.
type Signal[T any] struct {
	subs subscribers[T]
}

func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Emit delivers v to every subscriber.
func (s *Signal[T]) Emit(v T) {
	for _, fn := range s.subs.snapshot() {
		fn(v)
	}
}

func (s *Signal[T]) Subscribe(fn func(T)) Disposable {
	id := s.subs.add(fn)
	return newSubscription(func() { s.subs.remove(id) })
}

// Subscribers returns the number of live subscriptions.
func (s *Signal[T]) Subscribers() int {
	return s.subs.count()
}

// Relay holds the latest value and replays it to new subscribers. Delivery
// is serialized, so the last value a subscriber sees is always Value().
// Callbacks must not call Accept or Subscribe on the relay delivering to them.
type Relay[T any] struct {
	subs subscribers[T]

	// deliver is held across storing a value and fanning it out.
	deliver sync.Mutex

	mu    sync.RWMutex
	value T
	set   bool
}

func NewRelay[T any]() *Relay[T] {
	return &Relay[T]{}
}

// NewRelayWith builds a relay that already holds v.
func NewRelayWith[T any](v T) *Relay[T] {
	return &Relay[T]{value: v, set: true}
}

// Accept replaces the held value and delivers it to every subscriber.
func (r *Relay[T]) Accept(v T) {
	r.deliver.Lock()
	defer r.deliver.Unlock()

	r.mu.Lock()
	r.value = v
	r.set = true
	r.mu.Unlock()

	for _, fn := range r.subs.snapshot() {
		fn(v)
	}
}

// Value returns the held value and whether one was ever accepted.
func (r *Relay[T]) Value() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value, r.set
}

func (r *Relay[T]) Subscribe(fn func(T)) Disposable {
	r.deliver.Lock()
	defer r.deliver.Unlock()

	id := r.subs.add(fn)
	if v, ok := r.Value(); ok {
		fn(v)
	}
	return newSubscription(func() { r.subs.remove(id) })
}

// Subscribers returns the number of live subscriptions.
func (r *Relay[T]) Subscribers() int {
	return r.subs.count()
}

type subscription struct {
	once   sync.Once
	cancel func()
}

func newSubscription(cancel func()) *subscription {
	return &subscription{cancel: cancel}
}

func (s *subscription) Dispose() {
	s.once.Do(s.cancel)
}

// DisposeBag collects subscriptions and disposes them together. Anything
// added after Dispose is disposed immediately.
type DisposeBag struct {
	mu       sync.Mutex
	items    []Disposable
	disposed bool
}

func NewDisposeBag() *DisposeBag {
	return &DisposeBag{}
}

func (b *DisposeBag) Add(d Disposable) {
	if d == nil {
		return
	}
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		d.Dispose()
		return
	}
	b.items = append(b.items, d)
	b.mu.Unlock()
}

func (b *DisposeBag) Dispose() {
	b.mu.Lock()
	items := b.items
	b.items = nil
	b.disposed = true
	b.mu.Unlock()

	for _, d := range items {
		d.Dispose()
	}
}
