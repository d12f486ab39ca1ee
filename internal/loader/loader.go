// Package loader holds the shared loading indicator toggled around every
// request issued against the remote collection.
package loader

import "sync"

// Indicator is visible while at least one request is in flight. A nil
// *Indicator is valid and ignores every call.
type Indicator struct {
	mu       sync.Mutex
	inflight int
	watchers []func(visible bool)
}

// New returns a hidden indicator.
func New() *Indicator { return &Indicator{} }

// Begin marks a request as started.
func (i *Indicator) Begin() {
	if i == nil {
		return
	}
	i.mu.Lock()
	i.inflight++
	changed := i.inflight == 1
	watchers := i.snapshot()
	i.mu.Unlock()
	if changed {
		notify(watchers, true)
	}
}

// End marks a request as finished, whether it succeeded or failed.
func (i *Indicator) End() {
	if i == nil {
		return
	}
	i.mu.Lock()
	if i.inflight == 0 {
		i.mu.Unlock()
		return
	}
	i.inflight--
	changed := i.inflight == 0
	watchers := i.snapshot()
	i.mu.Unlock()
	if changed {
		notify(watchers, false)
	}
}

// Visible reports whether any request is outstanding.
func (i *Indicator) Visible() bool {
	if i == nil {
		return false
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.inflight > 0
}

// Watch registers fn to be called on every show/hide transition.
func (i *Indicator) Watch(fn func(visible bool)) {
	if i == nil || fn == nil {
		return
	}
	i.mu.Lock()
	i.watchers = append(i.watchers, fn)
	i.mu.Unlock()
}

// Track runs fn between Begin and End.
func (i *Indicator) Track(fn func() error) error {
	i.Begin()
	defer i.End()
	return fn()
}

func (i *Indicator) snapshot() []func(bool) {
	return append([]func(bool){}, i.watchers...)
}

func notify(watchers []func(bool), visible bool) {
	for _, fn := range watchers {
		fn(visible)
	}
}
