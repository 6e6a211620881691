// Package handler is the thin HTTP layer over the mortgage service. It
// decodes requests, delegates, and renders responses; business rules stay in
// the service and below.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mortgageledger/internal/mortgage/models"
	"mortgageledger/internal/mortgage/service"
	id "mortgageledger/pkg/domain"
	dErrors "mortgageledger/pkg/domain-errors"
	"mortgageledger/pkg/money"
	"mortgageledger/pkg/platform/httputil"
)

// Service defines the mortgage operations the handler depends on.
type Service interface {
	Create(ctx context.Context, p service.CreateParams) (*models.Mortgage, error)
	RecordPayment(ctx context.Context, mortgageID id.MortgageID, date time.Time, amount money.Money) (*service.PaymentResult, error)
	GetMortgage(ctx context.Context, mortgageID id.MortgageID) (*models.Mortgage, error)
	List(ctx context.Context) ([]service.Summary, error)
}

// Handler wires mortgage endpoints to the mortgage service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts the mortgage endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/mortgages", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{mortgageID}", h.HandleGet)
		r.Post("/{mortgageID}/payments", h.HandleRecordPayment)
	})
}

// HandleCreate handles POST /mortgages.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createMortgageRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	params, err := req.toParams()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	m, err := h.service.Create(ctx, params)
	if err != nil {
		h.logger.WarnContext(ctx, "mortgage creation failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, createMortgageResponse{ID: m.ID.String()})
}

// HandleList handles GET /mortgages.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "mortgage list failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	out := make([]summaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		out = append(out, toSummaryResponse(sum))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /mortgages/{mortgageID}: summary plus the full
// amortization table and payment history.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mortgageID, err := id.ParseMortgageID(chi.URLParam(r, "mortgageID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	m, err := h.service.GetMortgage(ctx, mortgageID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	payments := make([]paymentResponse, 0, len(m.Ledger))
	for _, p := range m.Ledger {
		payments = append(payments, toPaymentResponse(p))
	}
	httputil.WriteJSON(w, http.StatusOK, mortgageDetailResponse{
		summaryResponse: toSummaryResponse(service.Summary{
			ID:                   m.ID,
			ClientName:           m.ClientName,
			PropertyAddress:      m.PropertyAddress,
			Principal:            m.Principal,
			OutstandingPrincipal: m.OutstandingPrincipal,
			Status:               m.Status,
		}),
		AnnualRatePercent: m.AnnualRate.AnnualPercent().String(),
		TermMonths:        m.TermMonths,
		StartDate:         m.StartDate.Format(time.DateOnly),
		Schedule:          toScheduleResponse(m.Schedule),
		Payments:          payments,
	})
}

// HandleRecordPayment handles POST /mortgages/{mortgageID}/payments.
func (h *Handler) HandleRecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mortgageID, err := id.ParseMortgageID(chi.URLParam(r, "mortgageID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req recordPaymentRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	date, err := parseDate(req.Date, "date")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	amount, err := money.FromMajorString(req.Amount.String())
	if err != nil {
		httputil.WriteError(w, dErrors.NewField(dErrors.CodeValidation, "amount must be a number", "amount", req.Amount.String()))
		return
	}

	res, err := h.service.RecordPayment(ctx, mortgageID, date, amount)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, recordPaymentResponse{
		PaymentID:             res.Payment.ID.String(),
		SequenceNumber:        res.Payment.SequenceNumber,
		OutstandingPrincipal:  res.OutstandingPrincipal.Format(),
		OutstandingPrincMinor: res.OutstandingPrincipal.Minor(),
		Status:                string(res.Status),
	})
}
