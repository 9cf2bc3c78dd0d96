package cmd

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesBursts(t *testing.T) {
	var runs int32
	fired := make(chan struct{}, 16)
	d := newDebouncer(20*time.Millisecond, func() {
		atomic.AddInt32(&runs, 1)
		fired <- struct{}{}
	})

	// A burst of concurrent triggers must collapse into one callback.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Trigger()
		}()
	}
	wg.Wait()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced callback never fired")
	}

	// A quiet period with no further triggers must not fire again.
	time.Sleep(80 * time.Millisecond)
	if n := atomic.LoadInt32(&runs); n != 1 {
		t.Fatalf("callback ran %d times for one burst, want 1", n)
	}
}

func TestDebouncer_LaterBurstFiresAgain(t *testing.T) {
	fired := make(chan struct{}, 2)
	d := newDebouncer(10*time.Millisecond, func() {
		fired <- struct{}{}
	})

	d.Trigger()
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("first burst never fired")
	}

	d.Trigger()
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("second burst never fired")
	}
}
