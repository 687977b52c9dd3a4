package sync

import (
	stdsync "sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// synchronous dispatcher for tests
func directDispatch(fn func()) { fn() }

func TestDebouncerCoalescesBurst(t *testing.T) {
	var fired int32
	d := NewDebouncer(30*time.Millisecond, directDispatch, func() {
		atomic.AddInt32(&fired, 1)
	})
	defer d.Stop()

	for i := 0; i < 50; i++ {
		d.Signal()
	}

	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fired), "no reload before the quiet window elapses")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired), "one reload per burst")
}

func TestDebouncerRestartsWindowOnSignal(t *testing.T) {
	var fired int32
	d := NewDebouncer(40*time.Millisecond, directDispatch, func() {
		atomic.AddInt32(&fired, 1)
	})
	defer d.Stop()

	// Keep signaling faster than the window; nothing may fire meanwhile.
	for i := 0; i < 5; i++ {
		d.Signal()
		time.Sleep(15 * time.Millisecond)
	}
	assert.Zero(t, atomic.LoadInt32(&fired))

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestDebouncerConcurrentSignals(t *testing.T) {
	var fired int32
	d := NewDebouncer(20*time.Millisecond, directDispatch, func() {
		atomic.AddInt32(&fired, 1)
	})
	defer d.Stop()

	var wg stdsync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				d.Signal()
			}
		}()
	}
	wg.Wait()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestDebouncerSignalDuringReload(t *testing.T) {
	var fired int32
	var d *Debouncer
	d = NewDebouncer(20*time.Millisecond, directDispatch, func() {
		if atomic.AddInt32(&fired, 1) == 1 {
			// The pending handle is cleared before the callback runs, so a
			// reentrant signal starts a fresh window.
			d.Signal()
		}
	})
	defer d.Stop()

	d.Signal()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fired))
}

func TestDebouncerStop(t *testing.T) {
	var fired int32
	d := NewDebouncer(20*time.Millisecond, directDispatch, func() {
		atomic.AddInt32(&fired, 1)
	})

	d.Signal()
	d.Stop()
	d.Signal() // ignored after stop

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fired))
}

func TestSerialDispatcherOrdering(t *testing.T) {
	d := NewSerialDispatcher()
	defer d.Close()

	var mu stdsync.Mutex
	var got []int
	done := make(chan struct{})

	for i := 0; i < 10; i++ {
		i := i
		d.Dispatch(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			if i == 9 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not drain")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestSerialDispatcherCloseIsIdempotent(t *testing.T) {
	d := NewSerialDispatcher()
	d.Close()
	d.Close()
	// A dispatch after close must not panic; the callback is dropped.
	d.Dispatch(func() {})
}
