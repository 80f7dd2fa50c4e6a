// Package memory provides an in-memory leave.Store for testing and demos.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gestionsiteccsa/conges-engine/leave"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type userYear struct {
	UserID string
	Year   int
}

// Store implements leave.Store with plain maps. Same not-found and duplicate
// semantics as the SQLite store.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	agents  map[string]leave.Agent
	cycles  map[userYear]leave.WeeklyCycle
	params  map[userYear]leave.YearParameters
	periods map[int64]leave.LeavePeriod
}

func New() *Store {
	return &Store{
		agents:  make(map[string]leave.Agent),
		cycles:  make(map[userYear]leave.WeeklyCycle),
		params:  make(map[userYear]leave.YearParameters),
		periods: make(map[int64]leave.LeavePeriod),
	}
}

func (s *Store) mintID() int64 {
	s.nextID++
	return s.nextID
}

// =============================================================================
// AGENTS
// =============================================================================

func (s *Store) SaveAgent(_ context.Context, a leave.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.CreatedAt.IsZero() {
		if existing, ok := s.agents[a.ID]; ok {
			a.CreatedAt = existing.CreatedAt
		} else {
			a.CreatedAt = time.Now().UTC()
		}
	}
	s.agents[a.ID] = a
	return nil
}

func (s *Store) GetAgent(_ context.Context, id string) (*leave.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.agents[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *Store) ListAgents(_ context.Context) ([]leave.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agents := make([]leave.Agent, 0, len(s.agents))
	for _, a := range s.agents {
		agents = append(agents, a)
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].Name < agents[j].Name })
	return agents, nil
}

func (s *Store) DeleteAgent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.agents, id)
	return nil
}

// =============================================================================
// CYCLES
// =============================================================================

func (s *Store) SaveCycle(_ context.Context, c leave.WeeklyCycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := userYear{UserID: c.UserID, Year: c.Year}
	existing, ok := s.cycles[k]
	if ok && existing.ID != c.ID {
		return leave.ErrDuplicate
	}
	if c.ID == 0 {
		c.ID = s.mintID()
	}
	if ok {
		c.CreatedAt = existing.CreatedAt
	} else if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.UpdatedAt = time.Now().UTC()
	s.cycles[k] = c
	return nil
}

func (s *Store) GetCycle(_ context.Context, userID string, year int) (*leave.WeeklyCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cycles[userYear{UserID: userID, Year: year}]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *Store) ListCycles(_ context.Context, userID string) ([]leave.WeeklyCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cycles []leave.WeeklyCycle
	for k, c := range s.cycles {
		if k.UserID == userID {
			cycles = append(cycles, c)
		}
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i].Year < cycles[j].Year })
	return cycles, nil
}

func (s *Store) DeleteCycle(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, c := range s.cycles {
		if c.ID == id {
			delete(s.cycles, k)
			return nil
		}
	}
	return nil
}

// =============================================================================
// PARAMETERS
// =============================================================================

func (s *Store) SaveParameters(_ context.Context, p leave.YearParameters) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := userYear{UserID: p.UserID, Year: p.Year}
	existing, ok := s.params[k]
	if ok && existing.ID != p.ID {
		return leave.ErrDuplicate
	}
	if p.ID == 0 {
		p.ID = s.mintID()
	}
	if ok {
		p.CreatedAt = existing.CreatedAt
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = time.Now().UTC()
	s.params[k] = p
	return nil
}

func (s *Store) GetParameters(_ context.Context, userID string, year int) (*leave.YearParameters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.params[userYear{UserID: userID, Year: year}]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) DeleteParameters(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, p := range s.params {
		if p.ID == id {
			delete(s.params, k)
			return nil
		}
	}
	return nil
}

// =============================================================================
// PERIODS
// =============================================================================

func (s *Store) SavePeriod(_ context.Context, p leave.LeavePeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.mintID()
	}
	if existing, ok := s.periods[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = time.Now().UTC()
	s.periods[p.ID] = p
	return nil
}

func (s *Store) GetPeriod(_ context.Context, id int64) (*leave.LeavePeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.periods[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) ListPeriods(_ context.Context, userID string, year int) ([]leave.LeavePeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var periods []leave.LeavePeriod
	for _, p := range s.periods {
		if p.UserID == userID && p.CivilYear == year {
			periods = append(periods, p)
		}
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Start.Before(periods[j].Start) })
	return periods, nil
}

func (s *Store) ListPeriodsByType(ctx context.Context, userID string, year int, t leave.LeaveType) ([]leave.LeavePeriod, error) {
	all, err := s.ListPeriods(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	var periods []leave.LeavePeriod
	for _, p := range all {
		if p.Type == t {
			periods = append(periods, p)
		}
	}
	return periods, nil
}

func (s *Store) DeletePeriod(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.periods, id)
	return nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agents = make(map[string]leave.Agent)
	s.cycles = make(map[userYear]leave.WeeklyCycle)
	s.params = make(map[userYear]leave.YearParameters)
	s.periods = make(map[int64]leave.LeavePeriod)
	return nil
}
