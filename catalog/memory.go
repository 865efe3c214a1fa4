package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"tripcraft/models"
)

// Memory is an in-process Store. It backs the service when no database is
// configured and serves as the fixture catalog in tests.
type Memory struct {
	regions *RegionTable

	mu          sync.RWMutex
	events      []models.CatalogEvent
	attractions []models.Attraction
	rides       []models.RideOffer
	joins       []Join
}

func NewMemory(regions *RegionTable, data Data) *Memory {
	return &Memory{
		regions:     regions,
		events:      slices.Clone(data.Events),
		attractions: slices.Clone(data.Attractions),
		rides:       slices.Clone(data.Rides),
	}
}

// NewSampleMemory returns a store with the demo catalog.
func NewSampleMemory(now time.Time) *Memory {
	r := DefaultRegions()
	return NewMemory(r, SampleData(now, r))
}

func (m *Memory) Regions() *RegionTable { return m.regions }

func (m *Memory) Events(ctx context.Context) ([]models.CatalogEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.events), nil
}

func (m *Memory) Event(ctx context.Context, id string) (models.CatalogEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.CatalogEvent{}, fmt.Errorf("event %q: %w", id, ErrNotFound)
}

func (m *Memory) Attractions(ctx context.Context) ([]models.Attraction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.attractions), nil
}

func (m *Memory) Attraction(ctx context.Context, id string) (models.Attraction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.attractions {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Attraction{}, fmt.Errorf("attraction %q: %w", id, ErrNotFound)
}

func (m *Memory) Rides(ctx context.Context, f models.RideFilter) ([]models.RideOffer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.RideOffer, 0, len(m.rides))
	for _, r := range m.rides {
		if matchRide(r, f) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) Ride(ctx context.Context, id string) (models.RideOffer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rides {
		if r.ID == id {
			return r, nil
		}
	}
	return models.RideOffer{}, fmt.Errorf("ride %q: %w", id, ErrNotFound)
}

func (m *Memory) AddEvent(ctx context.Context, e models.CatalogEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *Memory) DeleteEvent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.events, func(e models.CatalogEvent) bool { return e.ID == id })
	if idx < 0 {
		return fmt.Errorf("event %q: %w", id, ErrNotFound)
	}
	m.events = slices.Delete(m.events, idx, idx+1)
	return nil
}

func (m *Memory) AddRide(ctx context.Context, r models.RideOffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides = append(m.rides, r)
	return nil
}

// JoinRide takes one seat and returns how many are left.
func (m *Memory) JoinRide(ctx context.Context, id, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rides {
		if m.rides[i].ID != id {
			continue
		}
		if m.rides[i].Seats <= 0 {
			return 0, ErrNoSeats
		}
		m.rides[i].Seats--
		m.joins = append(m.joins, Join{PlanID: id, UserID: userID, JoinedAt: time.Now()})
		return m.rides[i].Seats, nil
	}
	return 0, fmt.Errorf("ride %q: %w", id, ErrNotFound)
}

func (m *Memory) JoinedRides(ctx context.Context, userID string) ([]Join, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Join
	for _, j := range m.joins {
		if j.UserID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}
