// Package domain holds typed identifiers shared across modules. Distinct ID
// types keep a PaymentID from ever being passed where a MortgageID belongs;
// the compiler enforces what convention alone would not.
package domain

import (
	"github.com/google/uuid"

	dErrors "mortgageledger/pkg/domain-errors"
)

type MortgageID uuid.UUID

type PaymentID uuid.UUID

func NewMortgageID() MortgageID { return MortgageID(uuid.New()) }

func NewPaymentID() PaymentID { return PaymentID(uuid.New()) }

func (id MortgageID) String() string { return uuid.UUID(id).String() }

func (id PaymentID) String() string { return uuid.UUID(id).String() }

func (id MortgageID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// ParseMortgageID parses an identifier received at a trust boundary. Rejects
// empty, malformed, and nil UUIDs.
func ParseMortgageID(s string) (MortgageID, error) {
	u, err := parseUUID(s, "mortgage_id")
	return MortgageID(u), err
}

// ParsePaymentID parses a payment identifier received at a trust boundary.
func ParsePaymentID(s string) (PaymentID, error) {
	u, err := parseUUID(s, "payment_id")
	return PaymentID(u), err
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.NewField(dErrors.CodeValidation, "identifier is required", field, s)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.NewField(dErrors.CodeValidation, "identifier must be a valid UUID", field, s)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.NewField(dErrors.CodeValidation, "identifier must not be the nil UUID", field, s)
	}
	return u, nil
}
