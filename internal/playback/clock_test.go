package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager()

	_, ok := m.Snapshot(1)
	assert.False(t, ok, "no clock before Configure")
	assert.False(t, m.Start(1))

	m.Configure(1, 600)

	snap, ok := m.Snapshot(1)
	require.True(t, ok)
	assert.Equal(t, 0, snap.Elapsed)
	assert.False(t, snap.Running)
	assert.Equal(t, "0:00", snap.ElapsedDisplay)
	assert.Equal(t, "10:00", snap.RemainingDisplay)

	// A paused clock does not advance.
	m.tick(5)
	snap, _ = m.Snapshot(1)
	assert.Equal(t, 0, snap.Elapsed)

	require.True(t, m.Start(1))
	m.tick(65)
	snap, _ = m.Snapshot(1)
	assert.Equal(t, 65, snap.Elapsed)
	assert.True(t, snap.Running)
	assert.Equal(t, "1:05", snap.ElapsedDisplay)
	assert.Equal(t, "8:55", snap.RemainingDisplay)

	require.True(t, m.Pause(1))
	m.tick(10)
	snap, _ = m.Snapshot(1)
	assert.Equal(t, 65, snap.Elapsed)

	require.True(t, m.Reset(1))
	snap, _ = m.Snapshot(1)
	assert.Equal(t, 0, snap.Elapsed)
	assert.False(t, snap.Running)
}

func TestManager_AutoPauseAtGameEnd(t *testing.T) {
	m := NewManager()
	m.Configure(7, 120)
	require.True(t, m.Start(7))

	m.tick(119)
	snap, _ := m.Snapshot(7)
	assert.True(t, snap.Running)
	assert.False(t, snap.Finished)

	m.tick(1)
	snap, _ = m.Snapshot(7)
	assert.Equal(t, 120, snap.Elapsed)
	assert.False(t, snap.Running, "clock auto-pauses at total game time")
	assert.True(t, snap.Finished)
	assert.Equal(t, "0:00", snap.RemainingDisplay)

	// A finished game cannot be restarted without a reset.
	assert.False(t, m.Start(7))
	require.True(t, m.Reset(7))
	assert.True(t, m.Start(7))
}

func TestManager_TickPastEndClampsElapsed(t *testing.T) {
	m := NewManager()
	m.Configure(3, 100)
	require.True(t, m.Start(3))

	m.tick(250)
	snap, _ := m.Snapshot(3)
	assert.Equal(t, 100, snap.Elapsed)
	assert.Equal(t, "0:00", snap.RemainingDisplay, "remaining never goes negative")
}

func TestManager_ConfigureReplacesClock(t *testing.T) {
	m := NewManager()
	m.Configure(5, 600)
	require.True(t, m.Start(5))
	m.tick(30)

	// Regeneration installs a fresh paused clock at zero.
	m.Configure(5, 400)
	snap, ok := m.Snapshot(5)
	require.True(t, ok)
	assert.Equal(t, 0, snap.Elapsed)
	assert.Equal(t, 400, snap.Total)
	assert.False(t, snap.Running)
}

func TestManager_ClocksAreIndependent(t *testing.T) {
	m := NewManager()
	m.Configure(1, 300)
	m.Configure(2, 300)
	require.True(t, m.Start(1))

	m.tick(10)
	first, _ := m.Snapshot(1)
	second, _ := m.Snapshot(2)
	assert.Equal(t, 10, first.Elapsed)
	assert.Equal(t, 0, second.Elapsed)
}
