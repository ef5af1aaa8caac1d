package countdown_test

import (
	"sync"
	"testing"
	"time"

	"github.com/pakuni/go-pakuni/internal/countdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a constant time, keeping snapshot values deterministic
// across ticks.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// collector accumulates published snapshots in a thread-safe way.
type collector struct {
	mu    sync.Mutex
	snaps []countdown.Snapshot
}

func (c *collector) publish(s countdown.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snaps = append(c.snaps, s)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.snaps)
}

func (c *collector) all() []countdown.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]countdown.Snapshot, len(c.snaps))
	copy(out, c.snaps)
	return out
}

// TestTicker_ImmediateFirstSnapshot ensures consumers never wait a full
// interval for the initial value.
func TestTicker_ImmediateFirstSnapshot(t *testing.T) {
	clock := fixedClock{now: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)}
	target := clock.now.Add(48 * time.Hour)

	c := &collector{}
	// A very long interval: any snapshot observed must be the immediate one.
	ticker := countdown.Start(clock, time.Hour, target, c.publish)
	defer ticker.Stop()

	require.Eventually(t, func() bool { return c.count() >= 1 },
		time.Second, 5*time.Millisecond, "First snapshot must arrive without waiting for a tick")

	snaps := c.all()
	assert.Equal(t, countdown.Snapshot{Days: 2}, snaps[0])
}

// TestTicker_PeriodicDelivery verifies that snapshots keep flowing at the
// configured cadence.
func TestTicker_PeriodicDelivery(t *testing.T) {
	clock := fixedClock{now: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)}
	target := clock.now.Add(time.Hour)

	c := &collector{}
	ticker := countdown.Start(clock, 10*time.Millisecond, target, c.publish)
	defer ticker.Stop()

	require.Eventually(t, func() bool { return c.count() >= 5 },
		time.Second, 5*time.Millisecond, "Ticker must deliver repeated snapshots")

	// The clock is frozen, so every snapshot is identical.
	for _, s := range c.all() {
		assert.Equal(t, countdown.Snapshot{Hours: 1}, s)
	}
}

// TestTicker_StopIsSynchronous asserts the core cancellation contract: once
// Stop returns, no further snapshot is ever published.
func TestTicker_StopIsSynchronous(t *testing.T) {
	clock := fixedClock{now: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)}
	target := clock.now.Add(time.Hour)

	c := &collector{}
	ticker := countdown.Start(clock, time.Millisecond, target, c.publish)

	// Let it publish a few snapshots first.
	require.Eventually(t, func() bool { return c.count() >= 3 },
		time.Second, time.Millisecond)

	ticker.Stop()
	after := c.count()

	// Wait far longer than the interval; the count must not move.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, c.count(), "No snapshot may be published after Stop returns")
}

// TestTicker_StopIdempotent ensures repeated Stop calls are safe.
func TestTicker_StopIdempotent(t *testing.T) {
	clock := fixedClock{now: time.Now()}
	ticker := countdown.Start(clock, time.Millisecond, clock.now.Add(time.Hour), func(countdown.Snapshot) {})

	assert.NotPanics(t, func() {
		ticker.Stop()
		ticker.Stop()
		ticker.Stop()
	})
}

// TestTicker_ExpiredTarget verifies that a past target publishes expired
// snapshots rather than stopping on its own; teardown stays the caller's job.
func TestTicker_ExpiredTarget(t *testing.T) {
	clock := fixedClock{now: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)}
	target := clock.now.Add(-time.Hour)

	c := &collector{}
	ticker := countdown.Start(clock, 5*time.Millisecond, target, c.publish)
	defer ticker.Stop()

	require.Eventually(t, func() bool { return c.count() >= 3 },
		time.Second, time.Millisecond, "Expired targets must keep publishing")

	for _, s := range c.all() {
		assert.True(t, s.Expired)
	}
}
