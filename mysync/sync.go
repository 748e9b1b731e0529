package mysync

import (
	"sync"
)

// Mutex guards a value of type T. T is usually a pointer, so that the
// value returned by Lock can be mutated in place.
type Mutex[T any] struct {
	mu sync.RWMutex
	v  T
}

type MutexUnlock struct {
	mu *sync.RWMutex
}

type MutexRUnlock struct {
	mu *sync.RWMutex
}

func NewMutex[T any](v T) *Mutex[T] {
	return &Mutex[T]{v: v}
}

func (mu *Mutex[T]) Lock() (T, MutexUnlock) {
	mu.mu.Lock()
	return mu.v, MutexUnlock{&mu.mu}
}

func (mu *Mutex[T]) RLock() (T, MutexRUnlock) {
	mu.mu.RLock()
	return mu.v, MutexRUnlock{&mu.mu}
}

// With calls fn with the value while holding the write lock.
func (mu *Mutex[T]) With(fn func(T)) {
	v, u := mu.Lock()
	defer u.Unlock()
	fn(v)
}

// RWith calls fn with the value while holding the read lock.
func (mu *Mutex[T]) RWith(fn func(T)) {
	v, u := mu.RLock()
	defer u.RUnlock()
	fn(v)
}

func (u MutexUnlock) Unlock()   { u.mu.Unlock() }
func (u MutexRUnlock) RUnlock() { u.mu.RUnlock() }
