package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"mortgageledger/internal/mortgage/models"
	id "mortgageledger/pkg/domain"
	dErrors "mortgageledger/pkg/domain-errors"
	"mortgageledger/pkg/money"
)

type LedgerSuite struct {
	suite.Suite
	mortgage *models.Mortgage
	now      time.Time
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.now = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	s.mortgage = &models.Mortgage{
		ID:        id.NewMortgageID(),
		StartDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Status:    models.StatusActive,
	}
}

func (s *LedgerSuite) TestAppend() {
	s.Run("assigns sequence numbers in append order", func() {
		first, err := Append(s.mortgage, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), money.FromMinor(100000), s.now)
		s.Require().NoError(err)
		s.Equal(1, first.SequenceNumber)

		// Earlier date, later append: sequence still advances.
		second, err := Append(s.mortgage, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), money.FromMinor(50000), s.now)
		s.Require().NoError(err)
		s.Equal(2, second.SequenceNumber)

		s.Len(s.mortgage.Ledger, 2)
		s.NotEqual(first.ID, second.ID)
		s.Equal(s.mortgage.ID, first.MortgageID)
	})

	s.Run("rejects non-positive amount", func() {
		_, err := Append(s.mortgage, s.now, money.FromMinor(0), s.now)
		s.Require().ErrorIs(err, models.ErrNonPositiveAmount)
		s.True(dErrors.HasCode(err, dErrors.CodePaymentRejected))
	})

	s.Run("rejects negative amount", func() {
		_, err := Append(s.mortgage, s.now, money.FromMinor(-1), s.now)
		s.Require().ErrorIs(err, models.ErrNonPositiveAmount)
	})

	s.Run("rejects payment dated before the start date", func() {
		before := len(s.mortgage.Ledger)
		_, err := Append(s.mortgage, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), money.FromMinor(100), s.now)
		s.Require().ErrorIs(err, models.ErrBackdatedPayment)
		s.Len(s.mortgage.Ledger, before, "rejected payment must not touch the ledger")
	})

	s.Run("accepts payment dated exactly on the start date", func() {
		_, err := Append(s.mortgage, s.mortgage.StartDate, money.FromMinor(100), s.now)
		s.Require().NoError(err)
	})
}
