package appointmenttest

import (
	"context"
	"errors"
	"sync"

	"github.com/pranamithra/scheduler/internal/audit"
	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/domain/slot"
)

var errDuplicateToken = errors.New("duplicate qr token")

type cacheKey struct {
	doctorID uint
	date     string
}

// Cache is a map-backed AvailabilityCache that counts invalidations.
type Cache struct {
	mu          sync.Mutex
	entries     map[cacheKey]slot.Labels
	versions    map[cacheKey]int64
	Invalidated int
}

func NewCache() *Cache {
	return &Cache{
		entries:  map[cacheKey]slot.Labels{},
		versions: map[cacheKey]int64{},
	}
}

func (c *Cache) Get(_ context.Context, doctorID uint, date string) (slot.Labels, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.entries[cacheKey{doctorID, date}]
	return l, ok
}

func (c *Cache) Version(_ context.Context, doctorID uint, date string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[cacheKey{doctorID, date}]
}

func (c *Cache) Set(_ context.Context, doctorID uint, date string, version int64, labels slot.Labels) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey{doctorID, date}
	if c.versions[key] != version {
		return
	}
	c.entries[key] = labels
}

func (c *Cache) Invalidate(_ context.Context, doctorID uint, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey{doctorID, date}
	delete(c.entries, key)
	c.versions[key]++
	c.Invalidated++
}

// Sink records audit events.
type Sink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *Sink) Log(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *Sink) Actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

var (
	_ domain.AvailabilityCache = (*Cache)(nil)
	_ audit.Sink               = (*Sink)(nil)
)
