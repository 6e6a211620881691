//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"mortgageledger/internal/mortgage/ledger"
	"mortgageledger/internal/mortgage/models"
	"mortgageledger/internal/mortgage/schedule"
	"mortgageledger/internal/mortgage/store"
	id "mortgageledger/pkg/domain"
	"mortgageledger/pkg/money"
	"mortgageledger/pkg/platform/sentinel"
	"mortgageledger/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "schedule_entries", "payments", "mortgages")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newMortgage() *models.Mortgage {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	rate, err := money.ParseRate("3.5")
	s.Require().NoError(err)
	sched, err := schedule.Generate(money.FromMinor(25000000), rate, 360, start)
	s.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Mortgage{
		ID:                   id.NewMortgageID(),
		ClientName:           "Ada Lovelace",
		PropertyAddress:      "12 Analytical Way",
		Principal:            money.FromMinor(25000000),
		AnnualRate:           rate,
		TermMonths:           360,
		StartDate:            start,
		Status:               models.StatusActive,
		OutstandingPrincipal: money.FromMinor(25000000),
		Schedule:             sched,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func (s *PostgresStoreSuite) TestCreateRoundTrip() {
	ctx := context.Background()
	m := s.newMortgage()
	s.Require().NoError(s.store.Create(ctx, m))

	found, err := s.store.FindByID(ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(m.ClientName, found.ClientName)
	s.Equal(m.Principal, found.Principal)
	s.True(m.AnnualRate.AnnualPercent().Equal(found.AnnualRate.AnnualPercent()))
	s.Equal(m.TermMonths, found.TermMonths)
	s.Require().Len(found.Schedule, 360)
	s.Equal(m.Schedule[0].PaymentAmount, found.Schedule[0].PaymentAmount)
	s.True(found.Schedule[359].RemainingBalance.IsZero())
}

func (s *PostgresStoreSuite) TestFindUnknownReturnsNotFound() {
	_, err := s.store.FindByID(context.Background(), id.NewMortgageID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDuplicateCreateConflicts() {
	ctx := context.Background()
	m := s.newMortgage()
	s.Require().NoError(s.store.Create(ctx, m))
	s.Require().ErrorIs(s.store.Create(ctx, m), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestUpdateCommitsTriple() {
	ctx := context.Background()
	m := s.newMortgage()
	s.Require().NoError(s.store.Create(ctx, m))

	payDate := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	_, err := ledger.Append(m, payDate, money.FromMinor(100000), time.Now().UTC())
	s.Require().NoError(err)
	m.OutstandingPrincipal = money.FromMinor(24900000)
	tail, err := schedule.Tail(m.OutstandingPrincipal, m.AnnualRate, m.StartDate, 1, m.TermMonths)
	s.Require().NoError(err)
	m.Schedule = tail
	m.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Update(ctx, m))

	found, err := s.store.FindByID(ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(money.FromMinor(24900000), found.OutstandingPrincipal)
	s.Require().Len(found.Ledger, 1)
	s.Equal(1, found.Ledger[0].SequenceNumber)
	s.Equal(money.FromMinor(100000), found.Ledger[0].Amount)
	s.Len(found.Schedule, 360)

	// Replaying the same ledger entry is a no-op, not a duplicate.
	s.Require().NoError(s.store.Update(ctx, m))
	again, err := s.store.FindByID(ctx, m.ID)
	s.Require().NoError(err)
	s.Len(again.Ledger, 1)
}

func (s *PostgresStoreSuite) TestUpdateUnknownReturnsNotFound() {
	s.Require().ErrorIs(s.store.Update(context.Background(), s.newMortgage()), sentinel.ErrNotFound)
}
