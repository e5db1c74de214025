package supply

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingTracker_TrackAndResolve(t *testing.T) {
	tracker := NewPendingTracker(time.Minute)

	tracker.Track("corr-1", "Widget", 5)
	require.Equal(t, 1, tracker.Len())

	pending, ok := tracker.Resolve("corr-1")
	require.True(t, ok)
	assert.Equal(t, "Widget", pending.ItemID)
	assert.Equal(t, 5, pending.RequestedQuantity)
	assert.Equal(t, 0, tracker.Len())

	_, ok = tracker.Resolve("corr-1")
	assert.False(t, ok)
}

func TestPendingTracker_Expiry(t *testing.T) {
	tracker := NewPendingTracker(time.Minute)

	now := time.Now()
	tracker.now = func() time.Time { return now }
	tracker.Track("corr-1", "Widget", 5)

	tracker.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, ok := tracker.Resolve("corr-1")
	assert.False(t, ok)
}

func TestPendingTracker_ZeroTTLNeverExpires(t *testing.T) {
	tracker := NewPendingTracker(0)

	now := time.Now()
	tracker.now = func() time.Time { return now }
	tracker.Track("corr-1", "Widget", 5)

	tracker.now = func() time.Time { return now.Add(24 * time.Hour) }
	_, ok := tracker.Resolve("corr-1")
	assert.True(t, ok)
}

func TestPendingTracker_RunWithoutIntervalReturns(t *testing.T) {
	tracker := NewPendingTracker(0)
	tracker.Track("corr-1", "Widget", 5)

	done := make(chan struct{})
	close(done)
	tracker.Run(done, 0)

	assert.Equal(t, 1, tracker.Len())
}

func TestPendingTracker_Sweep(t *testing.T) {
	tracker := NewPendingTracker(time.Minute)

	now := time.Now()
	tracker.now = func() time.Time { return now }
	tracker.Track("old", "Widget", 5)

	tracker.now = func() time.Time { return now.Add(2 * time.Minute) }
	tracker.Track("fresh", "Gadget", 1)

	swept := tracker.Sweep()
	assert.Equal(t, 1, swept)
	assert.Equal(t, 1, tracker.Len())

	_, ok := tracker.Resolve("fresh")
	assert.True(t, ok)
}

func TestPendingTracker_Forget(t *testing.T) {
	tracker := NewPendingTracker(time.Minute)

	tracker.Track("corr-1", "Widget", 5)
	tracker.Forget("corr-1")

	_, ok := tracker.Resolve("corr-1")
	assert.False(t, ok)
}
