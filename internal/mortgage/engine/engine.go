// Package engine applies recorded payments to a mortgage: it reduces the
// outstanding principal, regenerates the forward schedule, and drives the
// Active → PaidOff transition. Elapsed schedule periods are never rewritten.
package engine

import (
	"fmt"

	"mortgageledger/internal/mortgage/models"
	"mortgageledger/internal/mortgage/schedule"
	"mortgageledger/pkg/money"
)

// Result is the outcome of applying one payment.
type Result struct {
	OutstandingPrincipal money.Money
	// Tail is the regenerated forward schedule; empty once the mortgage is
	// paid off.
	Tail models.AmortizationSchedule
}

// ApplyPayment mutates m with the effect of an already-appended ledger entry.
// Payments reduce outstanding principal directly; the model is a
// principal-reduction payment, not a scheduled-installment substitution.
// The caller must operate on a clone so a rejection leaves stored state
// untouched.
func ApplyPayment(m *models.Mortgage, p models.Payment) (Result, error) {
	if p.Amount > m.OutstandingPrincipal {
		return Result{}, fmt.Errorf("%w: payment %s against balance %s",
			models.ErrOverpayment, p.Amount, m.OutstandingPrincipal)
	}

	outstanding := m.OutstandingPrincipal.Sub(p.Amount)
	if outstanding < 0 {
		outstanding = 0
	}

	elapsed := elapsedPeriods(m, p)
	tail, err := schedule.Tail(outstanding, m.AnnualRate, m.StartDate, elapsed+1, m.TermMonths)
	if err != nil {
		return Result{}, err
	}

	head := m.Schedule[:elapsed].Clone()
	m.OutstandingPrincipal = outstanding
	m.Schedule = append(head, tail...)

	if outstanding.IsZero() && m.Status.CanTransitionTo(models.StatusPaidOff) {
		m.Status = models.StatusPaidOff
	}

	return Result{OutstandingPrincipal: outstanding, Tail: tail}, nil
}

// elapsedPeriods counts schedule periods strictly before the payment date.
// The period due on the payment date itself is the first to be regenerated.
// Capped at termMonths−1 so an active mortgage always keeps one forward
// period to carry the remaining balance.
func elapsedPeriods(m *models.Mortgage, p models.Payment) int {
	elapsed := 0
	for _, e := range m.Schedule {
		if e.DueDate.Before(p.Date) {
			elapsed++
		}
	}
	if elapsed > m.TermMonths-1 {
		elapsed = m.TermMonths - 1
	}
	return elapsed
}
