package playback

import (
	"context"
	"log"
	"sync"
	"time"

	"lineup-rotation-backend/internal/rotation"
)

// clock is the playback state for one team's generated schedule. Elapsed
// time is owned exclusively by the manager's tick loop; the schedule it
// refers to is immutable, so readers only need the manager's lock for the
// scalar fields here.
type clock struct {
	elapsed int
	running bool
	total   int
}

// Snapshot is a read-only view of a team's playback state.
type Snapshot struct {
	Elapsed          int    `json:"elapsed"`
	Total            int    `json:"total"`
	Running          bool   `json:"running"`
	Finished         bool   `json:"finished"`
	ElapsedDisplay   string `json:"elapsedDisplay"`
	RemainingDisplay string `json:"remainingDisplay"`
}

// Manager owns one playback clock per team and advances every running clock
// once per second. Clocks exist only for teams with a generated schedule;
// regeneration replaces the clock wholesale.
type Manager struct {
	mu     sync.Mutex
	clocks map[int64]*clock
}

// NewManager creates an empty playback manager.
func NewManager() *Manager {
	return &Manager{clocks: make(map[int64]*clock)}
}

// Run drives all clocks with a one-second tick until the context is
// cancelled. Started once from main, like any background service.
func (m *Manager) Run(ctx context.Context) {
	log.Println("Starting playback clock service...")
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Playback clock service shutting down.")
			return
		case <-ticker.C:
			m.tick(1)
		}
	}
}

// tick advances every running clock and auto-pauses those that reach the
// end of their game.
func (m *Manager) tick(seconds int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.clocks {
		if !c.running {
			continue
		}
		c.elapsed += seconds
		if c.elapsed >= c.total {
			c.elapsed = c.total
			c.running = false
		}
	}
}

// Configure installs a fresh paused clock for the team, discarding any
// previous one. Called whenever a schedule is generated.
func (m *Manager) Configure(teamID int64, totalSeconds int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clocks[teamID] = &clock{total: totalSeconds}
}

// Start resumes the team's clock. Returns false when the team has no clock
// or its game already finished.
func (m *Manager) Start(teamID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clocks[teamID]
	if !ok || c.elapsed >= c.total {
		return false
	}
	c.running = true
	return true
}

// Pause stops the team's clock, keeping the elapsed time. Returns false
// when the team has no clock.
func (m *Manager) Pause(teamID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clocks[teamID]
	if !ok {
		return false
	}
	c.running = false
	return true
}

// Reset pauses the clock and rewinds it to zero. Returns false when the
// team has no clock.
func (m *Manager) Reset(teamID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clocks[teamID]
	if !ok {
		return false
	}
	c.elapsed = 0
	c.running = false
	return true
}

// Snapshot returns the current playback state for the team. The remaining
// time is clamped at zero so the display never formats a negative value.
func (m *Manager) Snapshot(teamID int64) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clocks[teamID]
	if !ok {
		return Snapshot{}, false
	}
	remaining := c.total - c.elapsed
	if remaining < 0 {
		remaining = 0
	}
	return Snapshot{
		Elapsed:          c.elapsed,
		Total:            c.total,
		Running:          c.running,
		Finished:         c.elapsed >= c.total,
		ElapsedDisplay:   rotation.FormatSeconds(c.elapsed),
		RemainingDisplay: rotation.FormatSeconds(remaining),
	}, true
}
