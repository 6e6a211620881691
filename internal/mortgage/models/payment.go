package models

import (
	"time"

	id "mortgageledger/pkg/domain"
	"mortgageledger/pkg/money"
)

// Payment is one ledger entry. Immutable once appended; corrections require a
// compensating entry, never an edit or deletion.
type Payment struct {
	ID         id.PaymentID  `json:"id"`
	MortgageID id.MortgageID `json:"mortgage_id"`
	Date       time.Time     `json:"date"`
	Amount     money.Money   `json:"amount"`
	// SequenceNumber is assigned by the ledger, strictly increasing per
	// mortgage. Ties in Date are broken by append order.
	SequenceNumber int       `json:"sequence_number"`
	RecordedAt     time.Time `json:"recorded_at"`
}
