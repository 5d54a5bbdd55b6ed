package utils

import (
	"sync"
	"time"
)

// Debouncer delays a function until its input has been quiet for a fixed
// window. Each Trigger cancels the previously scheduled run and bumps a
// generation counter; a run that fires checks it is still the latest
// generation, so a stale timer that races Trigger cannot apply old work.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	gen   uint64
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the debounce window, superseding any pending run.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stale := gen != d.gen
		d.mu.Unlock()
		if !stale {
			fn()
		}
	})
}

// Cancel drops any pending run.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
