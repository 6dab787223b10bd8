// Package store keeps a client-side copy of the leave list. Every
// operation returns a new immutable Snapshot instead of mutating shared
// state in place.
package store

import (
	"context"
	"strings"
	"sync"

	"leavely/internal/calendar"
	"leavely/internal/models"
	"leavely/internal/service"
)

// Source is the backend the store syncs with. *service.LeaveService
// satisfies it.
type Source interface {
	List(ctx context.Context, filter service.ListFilter) ([]models.Leave, error)
	Create(ctx context.Context, input service.CreateLeaveInput) (*models.Leave, error)
	Update(ctx context.Context, id string, input service.UpdateLeaveInput) (*models.Leave, error)
	Delete(ctx context.Context, id string) error
}

// Snapshot is a point-in-time view of the leave list. Err carries the
// failure of the operation that produced it; Leaves then still holds the
// previous list.
type Snapshot struct {
	Leaves []models.Leave
	Err    error
}

// OnDay returns the leaves of the snapshot covering day.
func (s Snapshot) OnDay(day calendar.Date) []models.Leave {
	return calendar.CoveringDay(s.Leaves, day)
}

// ByMember returns the leaves whose name matches case-insensitively.
func (s Snapshot) ByMember(name string) []models.Leave {
	out := make([]models.Leave, 0)
	for _, l := range s.Leaves {
		if strings.EqualFold(l.Name, name) {
			out = append(out, l)
		}
	}
	return out
}

// Find returns the leave with id.
func (s Snapshot) Find(id string) (models.Leave, bool) {
	for _, l := range s.Leaves {
		if l.ID == id {
			return l, true
		}
	}
	return models.Leave{}, false
}

type Store struct {
	source Source

	mu     sync.RWMutex
	leaves []models.Leave
}

func New(source Source) *Store {
	return &Store{source: source}
}

// Snapshot returns the current list without contacting the source.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Leaves: clone(s.leaves)}
}

// Fetch replaces the list with the source's.
func (s *Store) Fetch(ctx context.Context) Snapshot {
	leaves, err := s.source.List(ctx, service.ListFilter{})
	if err != nil {
		return s.failed(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves = clone(leaves)
	return Snapshot{Leaves: clone(s.leaves)}
}

// Add creates a leave and puts it first.
func (s *Store) Add(ctx context.Context, input service.CreateLeaveInput) (Snapshot, *models.Leave) {
	created, err := s.source.Create(ctx, input)
	if err != nil {
		return s.failed(err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves = append([]models.Leave{*created}, s.leaves...)
	return Snapshot{Leaves: clone(s.leaves)}, created
}

// Remove deletes a leave.
func (s *Store) Remove(ctx context.Context, id string) Snapshot {
	if err := s.source.Delete(ctx, id); err != nil {
		return s.failed(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]models.Leave, 0, len(s.leaves))
	for _, l := range s.leaves {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.leaves = kept
	return Snapshot{Leaves: clone(s.leaves)}
}

// Update changes a leave and swaps in the stored result.
func (s *Store) Update(ctx context.Context, id string, input service.UpdateLeaveInput) Snapshot {
	updated, err := s.source.Update(ctx, id, input)
	if err != nil {
		return s.failed(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := clone(s.leaves)
	for i := range next {
		if next[i].ID == id {
			next[i] = *updated
		}
	}
	s.leaves = next
	return Snapshot{Leaves: clone(s.leaves)}
}

func (s *Store) failed(err error) Snapshot {
	snap := s.Snapshot()
	snap.Err = err
	return snap
}

func clone(leaves []models.Leave) []models.Leave {
	out := make([]models.Leave, len(leaves))
	copy(out, leaves)
	return out
}
