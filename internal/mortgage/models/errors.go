package models

import (
	dErrors "mortgageledger/pkg/domain-errors"
)

// Named domain errors. Callers match with errors.Is; transports map them via
// the attached code. Wrap with %w when adding the offending value.
var (
	// Creation validation.
	ErrInvalidPrincipal = dErrors.New(dErrors.CodeValidation, "principal must be positive")
	ErrInvalidRate      = dErrors.New(dErrors.CodeValidation, "annual rate must not be negative")
	ErrInvalidTerm      = dErrors.New(dErrors.CodeValidation, "term must be a positive number of months")

	// Payment rejection.
	ErrNonPositiveAmount = dErrors.New(dErrors.CodePaymentRejected, "payment amount must be positive")
	ErrBackdatedPayment  = dErrors.New(dErrors.CodePaymentRejected, "payment date precedes the mortgage start date")
	ErrOverpayment       = dErrors.New(dErrors.CodePaymentRejected, "payment exceeds the outstanding principal")
	ErrMortgagePaidOff   = dErrors.New(dErrors.CodePaymentRejected, "mortgage is paid off and accepts no further payments")
)
