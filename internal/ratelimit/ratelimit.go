// Package ratelimit provides a dual sliding-window admission limiter for the
// upstream API: a per-second and a per-minute ceiling that must both admit a
// call before it proceeds. Calls block cooperatively and are admitted in
// request order; nothing is queued or reordered.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	limit  int
	period time.Duration
	stamps []time.Time
}

// prune drops stamps older than one period before now.
func (w *window) prune(now time.Time) {
	cutoff := now.Add(-w.period)
	i := 0
	for i < len(w.stamps) && !w.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}

// delay returns how long until a slot frees, or zero if one is free now.
func (w *window) delay(now time.Time) time.Duration {
	if len(w.stamps) < w.limit {
		return 0
	}
	return w.stamps[len(w.stamps)-w.limit].Add(w.period).Sub(now)
}

// DualWindow enforces both windows atomically behind one Admit call.
type DualWindow struct {
	mu     sync.Mutex
	second window
	minute window
	now    func() time.Time
}

func New(perSecond, perMinute int) *DualWindow {
	return &DualWindow{
		second: window{limit: perSecond, period: time.Second},
		minute: window{limit: perMinute, period: time.Minute},
		now:    time.Now,
	}
}

// Admit blocks until both windows have budget, then consumes one token from
// each. Returns early with the context error if ctx is done first.
func (d *DualWindow) Admit(ctx context.Context) error {
	for {
		d.mu.Lock()
		wait := d.tryConsume(d.now())
		d.mu.Unlock()

		if wait <= 0 {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Allow reports whether a call would be admitted right now, consuming budget
// when it is. Non-blocking variant used by tests and health reporting.
func (d *DualWindow) Allow() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tryConsume(d.now()) <= 0
}

// tryConsume consumes one token from each window when both admit, or returns
// the delay until the more constrained window frees a slot. Caller holds mu.
func (d *DualWindow) tryConsume(now time.Time) time.Duration {
	d.second.prune(now)
	d.minute.prune(now)

	sd := d.second.delay(now)
	md := d.minute.delay(now)
	if sd > 0 || md > 0 {
		if md > sd {
			return md
		}
		return sd
	}

	d.second.stamps = append(d.second.stamps, now)
	d.minute.stamps = append(d.minute.stamps, now)
	return 0
}
