package models

import (
	"time"

	"mortgageledger/pkg/money"
)

// ScheduleEntry is one period of an amortization schedule. Entries are
// regenerated, never mutated in place, when the ledger changes.
type ScheduleEntry struct {
	PeriodIndex      int         `json:"period_index"` // 1-based
	DueDate          time.Time   `json:"due_date"`
	PaymentAmount    money.Money `json:"payment_amount"`
	InterestPortion  money.Money `json:"interest_portion"`
	PrincipalPortion money.Money `json:"principal_portion"`
	RemainingBalance money.Money `json:"remaining_balance"`
}

// AmortizationSchedule is the ordered run of periods over the loan's life.
type AmortizationSchedule []ScheduleEntry

func (s AmortizationSchedule) Clone() AmortizationSchedule {
	if s == nil {
		return nil
	}
	out := make(AmortizationSchedule, len(s))
	copy(out, s)
	return out
}

// TotalPrincipal sums the principal portions across all periods.
func (s AmortizationSchedule) TotalPrincipal() money.Money {
	var total money.Money
	for _, e := range s {
		total = total.Add(e.PrincipalPortion)
	}
	return total
}
