// Package schedule computes amortization schedules for fixed-rate mortgages.
// All arithmetic runs in decimal over minor currency units and rounds
// half-up exactly once per figure, so a schedule is reproducible from the
// mortgage's terms alone.
package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mortgageledger/internal/mortgage/models"
	"mortgageledger/pkg/money"
)

var one = decimal.NewFromInt(1)

// Generate computes the canonical schedule for a mortgage's original terms:
// the level annuity payment, the per-period interest/principal split, and the
// running balance, which reaches exactly zero at the final period.
func Generate(principal money.Money, rate money.Rate, termMonths int, start time.Time) (models.AmortizationSchedule, error) {
	if termMonths <= 0 {
		return nil, fmt.Errorf("%w: got %d", models.ErrInvalidTerm, termMonths)
	}
	if !principal.IsPositive() {
		return nil, fmt.Errorf("%w: got %d minor units", models.ErrInvalidPrincipal, principal.Minor())
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", models.ErrInvalidRate, rate)
	}
	return run(principal, rate, start, 1, termMonths), nil
}

// Tail regenerates the forward portion of a schedule after a principal
// reduction: periods fromPeriod..termMonths get a fresh annuity run from the
// new outstanding balance at the original rate. Elapsed periods are the
// caller's to preserve. A zero balance yields an empty tail.
func Tail(outstanding money.Money, rate money.Rate, start time.Time, fromPeriod, termMonths int) (models.AmortizationSchedule, error) {
	if fromPeriod < 1 || fromPeriod > termMonths {
		return nil, fmt.Errorf("%w: tail start %d outside term of %d months", models.ErrInvalidTerm, fromPeriod, termMonths)
	}
	if outstanding.IsZero() {
		return models.AmortizationSchedule{}, nil
	}
	if !outstanding.IsPositive() {
		return nil, fmt.Errorf("%w: got %d minor units", models.ErrInvalidPrincipal, outstanding.Minor())
	}
	return run(outstanding, rate, start, fromPeriod, termMonths), nil
}

// LevelPayment computes the monthly annuity payment P·r/(1−(1+r)^−n),
// or P/n when the rate is zero.
func LevelPayment(principal money.Money, rate money.Rate, termMonths int) money.Money {
	n := decimal.NewFromInt(int64(termMonths))
	if rate.IsZero() {
		return money.RoundMinor(principal.Decimal().Div(n))
	}
	r := rate.Monthly()
	pow := one.Add(r).Pow(n)
	return money.RoundMinor(principal.Decimal().Mul(r).Mul(pow).Div(pow.Sub(one)))
}

func run(balance money.Money, rate money.Rate, start time.Time, firstPeriod, lastPeriod int) models.AmortizationSchedule {
	periods := lastPeriod - firstPeriod + 1
	payment := LevelPayment(balance, rate, periods)
	r := rate.Monthly()

	entries := make(models.AmortizationSchedule, 0, periods)
	for i := firstPeriod; i <= lastPeriod; i++ {
		interest := money.RoundMinor(balance.Decimal().Mul(r))

		var principalPortion, paymentAmount money.Money
		switch {
		case i == lastPeriod:
			// Final period absorbs the rounding drift: the remaining
			// balance is retired exactly and the payment follows.
			principalPortion = balance
			paymentAmount = interest.Add(principalPortion)
			balance = 0
		default:
			principalPortion = payment.Sub(interest)
			if principalPortion > balance {
				principalPortion = balance
			}
			balance = balance.Sub(principalPortion)
			paymentAmount = interest.Add(principalPortion)
		}

		entries = append(entries, models.ScheduleEntry{
			PeriodIndex:      i,
			DueDate:          DueDate(start, i),
			PaymentAmount:    paymentAmount,
			InterestPortion:  interest,
			PrincipalPortion: principalPortion,
			RemainingBalance: balance,
		})
	}
	return entries
}

// DueDate advances the start date by months calendar months, clamping the
// day-of-month to the shorter month: Jan 31 + 1 month is Feb 28 (or 29).
func DueDate(start time.Time, months int) time.Time {
	y, m, d := start.Date()
	anchor := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := anchor.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(anchor.Year(), anchor.Month(), d, 0, 0, 0, 0, time.UTC)
}
