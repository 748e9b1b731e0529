package mysync

import (
	"sync"
	"testing"
	"time"
)

func TestFutureResult(t *testing.T) {
	start := make(chan struct{})
	notified := make(chan struct{})
	ft := Go(func() int {
		<-start
		return 42
	}, func() { close(notified) })

	if _, ok := ft.Result(); ok {
		t.Fatal("Result available before the computation finished")
	}
	close(start)
	if got := ft.Wait(); got != 42 {
		t.Errorf("Wait()=%d, want 42", got)
	}
	if got, ok := ft.Result(); !ok || got != 42 {
		t.Errorf("Result()=(%d, %t), want (42, true)", got, ok)
	}
	select {
	case <-notified:
	case <-time.After(5 * time.Second):
		t.Error("notify wasn't called")
	}
}

func TestFuturePanic(t *testing.T) {
	ft := Go(func() int { panic("boom") }, nil)
	<-ft.Done()
	defer func() {
		r := recover()
		pe, ok := r.(PanicError)
		if !ok || pe.Value != "boom" {
			t.Errorf("recovered %#v, want PanicError{boom}", r)
		}
	}()
	ft.Result()
}

func TestMutexWith(t *testing.T) {
	n := 0
	mu := NewMutex(&n)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.With(func(v *int) { *v++ })
		}()
	}
	wg.Wait()
	var got int
	mu.RWith(func(v *int) { got = *v })
	if got != 50 {
		t.Errorf("counter=%d, want 50", got)
	}
}
