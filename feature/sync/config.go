package sync

import "time"

// Config holds tuning for the synchronization engine.
type Config struct {
	// DebounceWindowMS is the quiet period in milliseconds after the last
	// storage change signal before the reload event fires.
	DebounceWindowMS int `mapstructure:"debounce_window_ms" default:"500"`
}

// Window returns the debounce window as a duration.
func (c Config) Window() time.Duration {
	if c.DebounceWindowMS <= 0 {
		return DefaultDebounceWindow
	}
	return time.Duration(c.DebounceWindowMS) * time.Millisecond
}
