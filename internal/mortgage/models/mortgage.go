package models

import (
	"fmt"
	"time"

	id "mortgageledger/pkg/domain"
	dErrors "mortgageledger/pkg/domain-errors"
	"mortgageledger/pkg/money"
)

// Status is the mortgage lifecycle state. A tagged variant rather than a
// boolean so future states (delinquent, restructured) extend cleanly.
type Status string

const (
	StatusActive  Status = "active"
	StatusPaidOff Status = "paid_off"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusPaidOff
}

// CanTransitionTo enforces the state machine: Active → Active (partial
// payment), Active → PaidOff (zeroing payment). PaidOff is terminal.
func (s Status) CanTransitionTo(target Status) bool {
	if s == StatusActive {
		return target == StatusActive || target == StatusPaidOff
	}
	return false
}

// Mortgage is the aggregate root for a fixed-rate loan.
//
// Invariants:
//   - Principal, AnnualRate, TermMonths, and StartDate are immutable after
//     creation; only recorded payments mutate the aggregate
//   - OutstandingPrincipal never drops below zero
//   - Ledger is append-only with strictly increasing sequence numbers
//   - Schedule periods whose due date has elapsed are never rewritten; only
//     the forward tail is regenerated on a payment
//   - Status PaidOff is terminal: no further payments are accepted
type Mortgage struct {
	ID                   id.MortgageID        `json:"id"`
	ClientName           string               `json:"client_name"`
	PropertyAddress      string               `json:"property_address"`
	Principal            money.Money          `json:"principal"`
	AnnualRate           money.Rate           `json:"annual_rate"`
	TermMonths           int                  `json:"term_months"`
	StartDate            time.Time            `json:"start_date"`
	Status               Status               `json:"status"`
	OutstandingPrincipal money.Money          `json:"outstanding_principal"`
	Schedule             AmortizationSchedule `json:"schedule"`
	Ledger               []Payment            `json:"ledger"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

func (m *Mortgage) IsPaidOff() bool { return m.Status == StatusPaidOff }

// CanAcceptPayment checks the terminal-state rule before any ledger append.
func (m *Mortgage) CanAcceptPayment() error {
	if m.IsPaidOff() {
		return fmt.Errorf("%w: mortgage %s", ErrMortgagePaidOff, m.ID)
	}
	return nil
}

// NextSequenceNumber returns the sequence the next ledger entry receives.
func (m *Mortgage) NextSequenceNumber() int {
	return len(m.Ledger) + 1
}

// Clone deep-copies the aggregate so readers never observe a mutation in
// flight and a failed payment can be discarded without touching stored state.
func (m *Mortgage) Clone() *Mortgage {
	out := *m
	out.Schedule = m.Schedule.Clone()
	if m.Ledger != nil {
		out.Ledger = make([]Payment, len(m.Ledger))
		copy(out.Ledger, m.Ledger)
	}
	return &out
}

// ValidateTerms checks creation inputs. The schedule generator repeats the
// numeric checks; this front door exists so the aggregate rejects bad input
// with field context before any math runs.
func ValidateTerms(clientName, propertyAddress string, principal money.Money, rate money.Rate, termMonths int) error {
	if clientName == "" {
		return dErrors.NewField(dErrors.CodeValidation, "client name is required", "client_name", clientName)
	}
	if propertyAddress == "" {
		return dErrors.NewField(dErrors.CodeValidation, "property address is required", "property_address", propertyAddress)
	}
	if !principal.IsPositive() {
		return fmt.Errorf("%w: got %d minor units", ErrInvalidPrincipal, principal.Minor())
	}
	if rate.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrInvalidRate, rate)
	}
	if termMonths <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTerm, termMonths)
	}
	return nil
}
