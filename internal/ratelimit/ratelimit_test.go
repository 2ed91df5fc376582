package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets the tests walk time forward deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(perSecond, perMinute int) (*DualWindow, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	d := New(perSecond, perMinute)
	d.now = clock.now
	return d, clock
}

func TestPerSecondCeiling(t *testing.T) {
	d, clock := newTestLimiter(3, 100)

	for i := 0; i < 3; i++ {
		assert.True(t, d.Allow(), "call %d should be admitted", i)
	}
	assert.False(t, d.Allow(), "fourth call within the same second must be rejected")

	clock.advance(time.Second)
	assert.True(t, d.Allow(), "budget must free after the window passes")
}

func TestPerMinuteCeiling(t *testing.T) {
	d, clock := newTestLimiter(10, 5)

	// Spread calls so the per-second window never binds.
	for i := 0; i < 5; i++ {
		require.True(t, d.Allow())
		clock.advance(2 * time.Second)
	}
	assert.False(t, d.Allow(), "sixth call within the minute must be rejected")

	// First stamp was at t0; window frees once a full minute has passed it.
	clock.advance(51 * time.Second) // total elapsed: 61s since first call
	assert.True(t, d.Allow())
}

func TestRollingWindowNeverExceeded(t *testing.T) {
	const perSec, perMin = 4, 20
	d, clock := newTestLimiter(perSec, perMin)

	var admitted []time.Time
	for step := 0; step < 600; step++ {
		if d.Allow() {
			admitted = append(admitted, clock.t)
		}
		clock.advance(100 * time.Millisecond)
	}

	for i, ts := range admitted {
		secCount, minCount := 0, 0
		for j := i; j >= 0; j-- {
			age := ts.Sub(admitted[j])
			if age < time.Second {
				secCount++
			}
			if age < time.Minute {
				minCount++
			}
		}
		assert.LessOrEqual(t, secCount, perSec, "per-second ceiling exceeded at admission %d", i)
		assert.LessOrEqual(t, minCount, perMin, "per-minute ceiling exceeded at admission %d", i)
	}
}

func TestAdmitRespectsContext(t *testing.T) {
	d, _ := newTestLimiter(1, 1)
	require.True(t, d.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Budget is exhausted and the fake clock never advances, so Admit can only
	// return via the context.
	err := d.Admit(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAdmitPassesWhenBudgetFree(t *testing.T) {
	d, _ := newTestLimiter(2, 10)
	require.NoError(t, d.Admit(context.Background()))
	require.NoError(t, d.Admit(context.Background()))
}
