package handler

import (
	"encoding/json"
	"time"

	"mortgageledger/internal/mortgage/models"
	"mortgageledger/internal/mortgage/service"
	dErrors "mortgageledger/pkg/domain-errors"
	"mortgageledger/pkg/money"
)

// createMortgageRequest mirrors the creation endpoint. Money and rate arrive
// as JSON numbers and are parsed through decimal, never through float64.
type createMortgageRequest struct {
	ClientName        string      `json:"client_name"`
	PropertyAddress   string      `json:"property_address"`
	Principal         json.Number `json:"principal"`           // major units
	AnnualRatePercent json.Number `json:"annual_rate_percent"` // e.g. 3.5
	TermMonths        int         `json:"term_months"`
	StartDate         string      `json:"start_date"` // YYYY-MM-DD
}

func (r createMortgageRequest) toParams() (service.CreateParams, error) {
	principal, err := money.FromMajorString(r.Principal.String())
	if err != nil {
		return service.CreateParams{}, dErrors.NewField(dErrors.CodeValidation, "principal must be a number", "principal", r.Principal.String())
	}
	rate, err := money.ParseRate(r.AnnualRatePercent.String())
	if err != nil {
		return service.CreateParams{}, dErrors.NewField(dErrors.CodeValidation, "annual rate must be a number", "annual_rate_percent", r.AnnualRatePercent.String())
	}
	start, err := parseDate(r.StartDate, "start_date")
	if err != nil {
		return service.CreateParams{}, err
	}
	return service.CreateParams{
		ClientName:      r.ClientName,
		PropertyAddress: r.PropertyAddress,
		Principal:       principal,
		AnnualRate:      rate,
		TermMonths:      r.TermMonths,
		StartDate:       start,
	}, nil
}

type recordPaymentRequest struct {
	Date   string      `json:"date"`   // YYYY-MM-DD
	Amount json.Number `json:"amount"` // major units
}

func parseDate(s, field string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, dErrors.NewField(dErrors.CodeValidation, "date must be formatted YYYY-MM-DD", field, s)
	}
	return t.UTC(), nil
}

type createMortgageResponse struct {
	ID string `json:"id"`
}

type summaryResponse struct {
	ID                    string `json:"id"`
	ClientName            string `json:"client_name"`
	PropertyAddress       string `json:"property_address"`
	Principal             string `json:"principal"`
	PrincipalMinor        int64  `json:"principal_minor"`
	OutstandingPrincipal  string `json:"outstanding_principal"`
	OutstandingPrincMinor int64  `json:"outstanding_principal_minor"`
	Status                string `json:"status"`
}

func toSummaryResponse(sum service.Summary) summaryResponse {
	return summaryResponse{
		ID:                    sum.ID.String(),
		ClientName:            sum.ClientName,
		PropertyAddress:       sum.PropertyAddress,
		Principal:             sum.Principal.Format(),
		PrincipalMinor:        sum.Principal.Minor(),
		OutstandingPrincipal:  sum.OutstandingPrincipal.Format(),
		OutstandingPrincMinor: sum.OutstandingPrincipal.Minor(),
		Status:                string(sum.Status),
	}
}

type scheduleEntryResponse struct {
	PeriodIndex      int    `json:"period_index"`
	DueDate          string `json:"due_date"`
	PaymentAmount    string `json:"payment_amount"`
	InterestPortion  string `json:"interest_portion"`
	PrincipalPortion string `json:"principal_portion"`
	RemainingBalance string `json:"remaining_balance"`
}

func toScheduleResponse(sched models.AmortizationSchedule) []scheduleEntryResponse {
	out := make([]scheduleEntryResponse, 0, len(sched))
	for _, e := range sched {
		out = append(out, scheduleEntryResponse{
			PeriodIndex:      e.PeriodIndex,
			DueDate:          e.DueDate.Format(time.DateOnly),
			PaymentAmount:    e.PaymentAmount.Format(),
			InterestPortion:  e.InterestPortion.Format(),
			PrincipalPortion: e.PrincipalPortion.Format(),
			RemainingBalance: e.RemainingBalance.Format(),
		})
	}
	return out
}

type mortgageDetailResponse struct {
	summaryResponse
	AnnualRatePercent string                  `json:"annual_rate_percent"`
	TermMonths        int                     `json:"term_months"`
	StartDate         string                  `json:"start_date"`
	Schedule          []scheduleEntryResponse `json:"schedule"`
	Payments          []paymentResponse       `json:"payments"`
}

type paymentResponse struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	Amount         string `json:"amount"`
	AmountMinor    int64  `json:"amount_minor"`
	SequenceNumber int    `json:"sequence_number"`
}

func toPaymentResponse(p models.Payment) paymentResponse {
	return paymentResponse{
		ID:             p.ID.String(),
		Date:           p.Date.Format(time.DateOnly),
		Amount:         p.Amount.Format(),
		AmountMinor:    p.Amount.Minor(),
		SequenceNumber: p.SequenceNumber,
	}
}

type recordPaymentResponse struct {
	PaymentID             string `json:"payment_id"`
	SequenceNumber        int    `json:"sequence_number"`
	OutstandingPrincipal  string `json:"outstanding_principal"`
	OutstandingPrincMinor int64  `json:"outstanding_principal_minor"`
	Status                string `json:"status"`
}
