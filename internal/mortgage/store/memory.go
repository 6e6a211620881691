package store

import (
	"context"
	"sort"
	"sync"

	"mortgageledger/internal/mortgage/models"
	id "mortgageledger/pkg/domain"
	"mortgageledger/pkg/platform/sentinel"
)

// InMemory keeps the whole aggregate map behind a RWMutex and hands out deep
// copies, so readers observe either the pre- or post-payment state and never
// a mutation in flight. It favors clarity over performance.
type InMemory struct {
	mu        sync.RWMutex
	mortgages map[id.MortgageID]*models.Mortgage
}

func NewInMemory() *InMemory {
	return &InMemory{mortgages: make(map[id.MortgageID]*models.Mortgage)}
}

func (s *InMemory) Create(_ context.Context, m *models.Mortgage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.mortgages[m.ID]; exists {
		return sentinel.ErrConflict
	}
	s.mortgages[m.ID] = m.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, mortgageID id.MortgageID) (*models.Mortgage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mortgages[mortgageID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return m.Clone(), nil
}

func (s *InMemory) Update(_ context.Context, m *models.Mortgage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mortgages[m.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.mortgages[m.ID] = m.Clone()
	return nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Mortgage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Mortgage, 0, len(s.mortgages))
	for _, m := range s.mortgages {
		out = append(out, m.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
