// Package state provides observable containers for values shared between the
// services and their readers.
package state

import "sync"

// Value holds one published value. Writers replace it with Set or Update; readers
// take the current value with Get or follow changes with Subscribe.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	version uint64
	subs    map[int]chan T
	nextSub int
}

// NewValue returns a container holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial, subs: make(map[int]chan T)}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Version counts how many times the value has been published.
func (v *Value[T]) Version() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.version
}

// Set overwrites the current value and notifies subscribers.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.publishLocked(next)
}

// Update applies fn to the current value and publishes the result as one step.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	next := fn(v.current)
	v.publishLocked(next)
	return next
}

// Subscribe returns a channel receiving every published value, newest wins when the
// reader falls behind, and a function that ends the subscription.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextSub
	v.nextSub++
	ch := make(chan T, 1)
	v.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			delete(v.subs, id)
			close(ch)
		})
	}
}

func (v *Value[T]) publishLocked(next T) {
	v.current = next
	v.version++
	for _, ch := range v.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}
