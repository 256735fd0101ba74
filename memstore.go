package fundamental

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/etnz/fundamental/date"
	"github.com/shopspring/decimal"
)

// Observation is a value of a path for an instrument, as published on a date.
type Observation struct {
	On    date.Date
	ID    ID
	Path  string
	Value decimal.Decimal
}

// series identifies one time series of the store.
type series struct {
	id   ID
	path string
}

// MemoryStore is an in-memory point-in-time Store.
//
// Each (instrument, path) pair owns a History of observations. Get returns the
// latest observation published on or before the requested date, so a query
// never sees data from its future.
type MemoryStore struct {
	mu     sync.RWMutex
	series map[series]*date.History[decimal.Decimal]
}

// NewMemoryStore returns a new empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{series: make(map[series]*date.History[decimal.Decimal])}
}

// Put records an observation. An existing observation for the same date,
// instrument and path is replaced.
func (s *MemoryStore) Put(o Observation) error {
	if err := ValidatePath(o.Path); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := series{o.ID, o.Path}
	h, ok := s.series[key]
	if !ok {
		h = new(date.History[decimal.Decimal])
		s.series[key] = h
	}
	h.Append(o.On, o.Value)
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, on date.Date, id ID, path string) (Value, error) {
	if err := ValidatePath(path); err != nil {
		return Absent(), err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.series[series{id, path}]
	if !ok {
		return Absent(), nil
	}
	d, ok := h.ValueAsOf(on)
	if !ok {
		return Absent(), nil
	}
	return V(d), nil
}

// Len returns the number of observations.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, h := range s.series {
		n += h.Len()
	}
	return n
}

// Observations returns all observations sorted by date, instrument and path.
func (s *MemoryStore) Observations() []Observation {
	s.mu.RLock()
	list := make([]Observation, 0, 1024)
	for key, h := range s.series {
		for on, v := range h.Values() {
			list = append(list, Observation{On: on, ID: key.id, Path: key.path, Value: v})
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(list, func(a, b Observation) int {
		return cmp.Or(
			a.On.Compare(b.On),
			cmp.Compare(a.ID, b.ID),
			cmp.Compare(a.Path, b.Path),
		)
	})
	return list
}
