// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package integration

import (
	"sync"
	"time"

	"github.com/tomtom215/convivabridge/internal/metrics"
)

// deferrer debounces state transitions that players flap through. A pause
// immediately followed by a seek, or a stall that resolves within a frame,
// should not reach the sink as two transitions. Each event kind holds at
// most one pending timer; scheduling again replaces it. CancelAll stops
// every pending timer and invalidates timers that already fired but have
// not run yet.
type deferrer struct {
	mu      sync.Mutex
	delay   time.Duration
	epoch   uint64
	pending map[string]*time.Timer
}

func newDeferrer(delay time.Duration) *deferrer {
	return &deferrer{
		delay:   delay,
		pending: map[string]*time.Timer{},
	}
}

// Schedule runs fn after the debounce delay unless the same kind is
// rescheduled or CancelAll intervenes first. With a zero delay fn runs
// inline.
func (d *deferrer) Schedule(kind string, fn func()) {
	if d.delay <= 0 {
		metrics.RecordDeferredTransition(kind, "fired")
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[kind]; ok {
		prev.Stop()
		metrics.RecordDeferredTransition(kind, "replaced")
	}

	epoch := d.epoch
	d.pending[kind] = time.AfterFunc(d.delay, func() {
		if !d.claim(kind, epoch) {
			return
		}
		metrics.RecordDeferredTransition(kind, "fired")
		fn()
	})
}

// claim removes the pending entry and reports whether the timer is still
// valid. A fired timer from a cancelled epoch loses the race here.
func (d *deferrer) claim(kind string, epoch uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if epoch != d.epoch {
		return false
	}
	delete(d.pending, kind)
	return true
}

// CancelAll stops all pending timers and invalidates in-flight callbacks.
func (d *deferrer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.epoch++
	for kind, timer := range d.pending {
		timer.Stop()
		metrics.RecordDeferredTransition(kind, "cancelled")
		delete(d.pending, kind)
	}
}
