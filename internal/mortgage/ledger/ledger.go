// Package ledger owns the append-only payment record of a mortgage. Entries
// are never edited or deleted; a correction is a future compensating entry.
package ledger

import (
	"fmt"
	"time"

	"mortgageledger/internal/mortgage/models"
	id "mortgageledger/pkg/domain"
	"mortgageledger/pkg/money"
)

// Append validates a payment and appends it to the mortgage's ledger,
// assigning the next sequence number. Sequence numbers are strictly
// increasing per mortgage in append order; payment dates play no part in
// ordering. The caller must hold the aggregate's write lock and must work on
// a clone it can discard if a later step fails.
func Append(m *models.Mortgage, date time.Time, amount money.Money, now time.Time) (models.Payment, error) {
	if !amount.IsPositive() {
		return models.Payment{}, fmt.Errorf("%w: got %d minor units", models.ErrNonPositiveAmount, amount.Minor())
	}
	if date.Before(m.StartDate) {
		return models.Payment{}, fmt.Errorf("%w: %s precedes %s",
			models.ErrBackdatedPayment, date.Format(time.DateOnly), m.StartDate.Format(time.DateOnly))
	}

	p := models.Payment{
		ID:             id.NewPaymentID(),
		MortgageID:     m.ID,
		Date:           date,
		Amount:         amount,
		SequenceNumber: m.NextSequenceNumber(),
		RecordedAt:     now,
	}
	m.Ledger = append(m.Ledger, p)
	return p, nil
}
