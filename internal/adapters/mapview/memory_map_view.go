package mapview

import (
	"context"
	"coordinate-converter-service/internal/domain"
	"errors"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	state  domain.MapState
	expiry time.Time
}

// MemoryMapView keeps map states in process memory. Views not touched within
// the TTL fall back to the default state and are swept periodically.
// It is safe for concurrent use.
type MemoryMapView struct {
	mu    sync.RWMutex
	views map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryMapView(ttl time.Duration) *MemoryMapView {
	return &MemoryMapView{
		views: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// StartCleanup removes expired views every interval until ctx is done.
func (m *MemoryMapView) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep()
			}
		}
	}()
}

func (m *MemoryMapView) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, v := range m.views {
		if now.After(v.expiry) {
			delete(m.views, k)
		}
	}
}

func (m *MemoryMapView) FlyTo(
	ctx context.Context,
	view string,
	c domain.Coordinate,
	minZoom int,
) (domain.MapState, error) {
	if strings.TrimSpace(view) == "" {
		return domain.MapState{}, errors.New("fly to: view id must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.currentLocked(view).FlyTo(c, minZoom)
	m.views[view] = memoryEntry{state: next, expiry: m.now().Add(m.ttl)}
	return next, nil
}

func (m *MemoryMapView) Current(ctx context.Context, view string) (domain.MapState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.currentLocked(view), nil
}

func (m *MemoryMapView) Reset(ctx context.Context, view string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.views, view)
	return nil
}

func (m *MemoryMapView) currentLocked(view string) domain.MapState {
	e, ok := m.views[view]
	if !ok || m.now().After(e.expiry) {
		return domain.DefaultMapState()
	}
	return e.state
}
