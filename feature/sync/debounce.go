package sync

import (
	stdsync "sync"
	"time"
)

// DefaultDebounceWindow is the quiet period after the last raw change signal
// before a reload event fires.
const DefaultDebounceWindow = 500 * time.Millisecond

// Dispatcher hands a callback to the execution context reload events must be
// delivered on (the app's main/UI context). Tests can pass a synchronous
// dispatcher.
type Dispatcher func(fn func())

// Debouncer coalesces bursts of "storage changed" signals into a single
// reload event (trailing-edge debounce).
//
// Signal may be called from any goroutine, arbitrarily often, including
// concurrently. For any finite burst, exactly one reload fires, no earlier
// than the window after the burst's last signal. A signal arriving before
// the window elapses restarts it.
type Debouncer struct {
	mu       stdsync.Mutex
	window   time.Duration
	dispatch Dispatcher
	onReload func()
	timer    *time.Timer
	gen      uint64
	stopped  bool
}

// NewDebouncer creates a debouncer. A zero or negative window falls back to
// DefaultDebounceWindow.
func NewDebouncer(window time.Duration, dispatch Dispatcher, onReload func()) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{
		window:   window,
		dispatch: dispatch,
		onReload: onReload,
	}
}

// Signal records a raw change notification and restarts the quiet window.
func (d *Debouncer) Signal() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	// The generation guards against a timer that already fired but has not
	// taken the lock yet: its closure sees a stale generation and bails.
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() {
		d.fire(gen)
	})
}

// fire clears the pending handle before invoking the callback, so a
// reentrant Signal during callback execution schedules a fresh window.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.dispatch(d.onReload)
}

// Stop cancels any pending reload. Further signals are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// SerialDispatcher runs callbacks one at a time, in order, on a single
// goroutine. It stands in for the main/UI execution context of an app
// embedding this engine.
type SerialDispatcher struct {
	ch   chan func()
	once stdsync.Once
}

// NewSerialDispatcher starts the dispatcher goroutine.
func NewSerialDispatcher() *SerialDispatcher {
	d := &SerialDispatcher{ch: make(chan func(), 16)}
	go func() {
		for fn := range d.ch {
			fn()
		}
	}()
	return d
}

// Dispatch queues fn for execution on the dispatcher goroutine.
func (d *SerialDispatcher) Dispatch(fn func()) {
	defer func() {
		// A dispatch racing Close loses its callback; reloads are
		// best-effort by contract.
		_ = recover()
	}()
	d.ch <- fn
}

// Close stops the dispatcher goroutine.
func (d *SerialDispatcher) Close() {
	d.once.Do(func() { close(d.ch) })
}
