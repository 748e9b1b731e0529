package mysync

import "fmt"

// Future is the result of a computation running on its own goroutine. It is
// polled from the window goroutine, once per frame, and never blocks there.
type Future[T any] struct {
	// Written once by the computation, read by Result
	result chan outcome[T]
	done   chan struct{}

	// Accessed by the owner only
	res    T
	resSet bool
}

type outcome[T any] struct {
	v     T
	panic any
}

// PanicError wraps a value recovered from a panicking computation. It is
// re-raised by Result so that the panic surfaces in the goroutine that
// consumes the result.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("panic in future: %v", e.Value)
}

// Go runs fn on a new goroutine. notify, if not nil, is called after fn has
// returned, typically to invalidate the window so that the next frame picks
// up the result.
func Go[T any](fn func() T, notify func()) *Future[T] {
	ft := &Future[T]{
		result: make(chan outcome[T], 1),
		done:   make(chan struct{}),
	}
	go func() {
		var out outcome[T]
		defer func() {
			if r := recover(); r != nil {
				out.panic = r
			}
			ft.result <- out
			close(ft.done)
			if notify != nil {
				notify()
			}
		}()
		out.v = fn()
	}()
	return ft
}

// Result returns the computation's result and reports whether it is
// available. It doesn't block. If the computation panicked, Result panics
// with a PanicError.
func (ft *Future[T]) Result() (T, bool) {
	if ft.resSet {
		return ft.res, true
	}
	select {
	case out := <-ft.result:
		if out.panic != nil {
			panic(PanicError{Value: out.panic})
		}
		ft.res = out.v
		ft.resSet = true
		return out.v, true
	default:
		return *new(T), false
	}
}

// Done returns a channel that is closed once the computation has finished.
func (ft *Future[T]) Done() <-chan struct{} {
	return ft.done
}

// Wait blocks until the computation has finished and returns its result.
func (ft *Future[T]) Wait() T {
	<-ft.done
	res, _ := ft.Result()
	return res
}
