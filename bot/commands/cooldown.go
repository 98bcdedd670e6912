package commands

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CooldownStore rate-limits command use per key
type CooldownStore interface {
	// Acquire starts a cooldown window for key. If one is already running, ok is false
	// and remaining reports how long until it ends.
	Acquire(ctx context.Context, key string, window time.Duration) (remaining time.Duration, ok bool, err error)
}

// CooldownKey scopes a command cooldown to one member of one guild
func CooldownKey(command string, guildID, userID int64) string {
	return fmt.Sprintf("cooldown:%s:%d:%d", command, guildID, userID)
}

// MemoryCooldowns is an in-process CooldownStore
type MemoryCooldowns struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryCooldowns creates an empty in-process cooldown store
func NewMemoryCooldowns() *MemoryCooldowns {
	return &MemoryCooldowns{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Acquire implements CooldownStore
func (m *MemoryCooldowns) Acquire(_ context.Context, key string, window time.Duration) (time.Duration, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if until, ok := m.expires[key]; ok && now.Before(until) {
		return until.Sub(now), false, nil
	}

	m.expires[key] = now.Add(window)
	m.sweep(now)
	return 0, true, nil
}

// sweep drops expired entries once the map grows; caller holds mu
func (m *MemoryCooldowns) sweep(now time.Time) {
	if len(m.expires) < 1024 {
		return
	}
	for key, until := range m.expires {
		if !now.Before(until) {
			delete(m.expires, key)
		}
	}
}
