package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"mortgageledger/internal/mortgage/models"
	id "mortgageledger/pkg/domain"
	"mortgageledger/pkg/money"
	"mortgageledger/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) newMortgage(client string) *models.Mortgage {
	now := time.Now().UTC()
	return &models.Mortgage{
		ID:                   id.NewMortgageID(),
		ClientName:           client,
		PropertyAddress:      "1 Test Lane",
		Principal:            money.FromMinor(10000000),
		TermMonths:           120,
		StartDate:            time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Status:               models.StatusActive,
		OutstandingPrincipal: money.FromMinor(10000000),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func (s *MemoryStoreSuite) TestCreateAndFind() {
	s.Run("creates and finds by ID", func() {
		m := s.newMortgage("Grace Hopper")
		s.Require().NoError(s.store.Create(s.ctx, m))

		found, err := s.store.FindByID(s.ctx, m.ID)
		s.Require().NoError(err)
		s.Equal(m.ClientName, found.ClientName)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.NewMortgageID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate ID", func() {
		m := s.newMortgage("Dup")
		s.Require().NoError(s.store.Create(s.ctx, m))
		s.Require().ErrorIs(s.store.Create(s.ctx, m), sentinel.ErrConflict)
	})
}

func (s *MemoryStoreSuite) TestIsolation() {
	s.Run("mutating a returned copy does not touch stored state", func() {
		m := s.newMortgage("Isolated")
		s.Require().NoError(s.store.Create(s.ctx, m))

		found, err := s.store.FindByID(s.ctx, m.ID)
		s.Require().NoError(err)
		found.OutstandingPrincipal = money.FromMinor(1)
		found.Status = models.StatusPaidOff

		again, err := s.store.FindByID(s.ctx, m.ID)
		s.Require().NoError(err)
		s.Equal(money.FromMinor(10000000), again.OutstandingPrincipal)
		s.Equal(models.StatusActive, again.Status)
	})

	s.Run("mutating the created aggregate after Create does not leak in", func() {
		m := s.newMortgage("Leaky")
		s.Require().NoError(s.store.Create(s.ctx, m))
		m.ClientName = "changed"

		found, err := s.store.FindByID(s.ctx, m.ID)
		s.Require().NoError(err)
		s.Equal("Leaky", found.ClientName)
	})
}

func (s *MemoryStoreSuite) TestUpdate() {
	s.Run("persists balance and status changes", func() {
		m := s.newMortgage("Updatable")
		s.Require().NoError(s.store.Create(s.ctx, m))

		m.OutstandingPrincipal = money.FromMinor(0)
		m.Status = models.StatusPaidOff
		s.Require().NoError(s.store.Update(s.ctx, m))

		found, err := s.store.FindByID(s.ctx, m.ID)
		s.Require().NoError(err)
		s.True(found.OutstandingPrincipal.IsZero())
		s.Equal(models.StatusPaidOff, found.Status)
	})

	s.Run("returns ErrNotFound for unknown aggregate", func() {
		s.Require().ErrorIs(s.store.Update(s.ctx, s.newMortgage("Ghost")), sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestList() {
	first := s.newMortgage("First")
	first.CreatedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	second := s.newMortgage("Second")
	second.CreatedAt = time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Create(s.ctx, second))
	s.Require().NoError(s.store.Create(s.ctx, first))

	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("First", list[0].ClientName, "list is ordered by creation time")
	s.Equal("Second", list[1].ClientName)
}
