// Package service exposes the mortgage aggregate's public operations and
// owns the consistency rules around them: per-mortgage serialization of
// writes, commit-or-discard payment handling, and translation of store facts
// into domain errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mortgageledger/internal/mortgage/engine"
	"mortgageledger/internal/mortgage/ledger"
	mortgagemetrics "mortgageledger/internal/mortgage/metrics"
	"mortgageledger/internal/mortgage/models"
	"mortgageledger/internal/mortgage/schedule"
	"mortgageledger/internal/mortgage/store"
	id "mortgageledger/pkg/domain"
	dErrors "mortgageledger/pkg/domain-errors"
	"mortgageledger/pkg/money"
	"mortgageledger/pkg/platform/sentinel"
)

// Clock is injected for deterministic timestamps in tests.
type Clock func() time.Time

// MortgageService orchestrates mortgage lifecycle operations.
type MortgageService struct {
	store   store.MortgageStore
	logger  *slog.Logger
	metrics *mortgagemetrics.Metrics
	clock   Clock
	locks   keyedLocks
}

// Option configures a MortgageService.
type Option func(*MortgageService)

func WithLogger(logger *slog.Logger) Option {
	return func(s *MortgageService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *mortgagemetrics.Metrics) Option {
	return func(s *MortgageService) { s.metrics = m }
}

func WithClock(clock Clock) Option {
	return func(s *MortgageService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs a MortgageService. The store is required.
func New(st store.MortgageStore, opts ...Option) (*MortgageService, error) {
	if st == nil {
		return nil, errors.New("mortgage store is required")
	}
	s := &MortgageService{
		store:  st,
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateParams carries validated-at-the-edge creation input.
type CreateParams struct {
	ClientName      string
	PropertyAddress string
	Principal       money.Money
	AnnualRate      money.Rate
	TermMonths      int
	StartDate       time.Time
}

// Create validates the terms, generates the baseline schedule, and persists
// the new aggregate with status Active.
func (s *MortgageService) Create(ctx context.Context, p CreateParams) (*models.Mortgage, error) {
	if err := models.ValidateTerms(p.ClientName, p.PropertyAddress, p.Principal, p.AnnualRate, p.TermMonths); err != nil {
		return nil, err
	}

	sched, err := schedule.Generate(p.Principal, p.AnnualRate, p.TermMonths, p.StartDate)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	m := &models.Mortgage{
		ID:                   id.NewMortgageID(),
		ClientName:           p.ClientName,
		PropertyAddress:      p.PropertyAddress,
		Principal:            p.Principal,
		AnnualRate:           p.AnnualRate,
		TermMonths:           p.TermMonths,
		StartDate:            p.StartDate,
		Status:               models.StatusActive,
		OutstandingPrincipal: p.Principal,
		Schedule:             sched,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.store.Create(ctx, m); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist mortgage")
	}

	if s.metrics != nil {
		s.metrics.MortgagesCreated.Inc()
	}
	s.logger.InfoContext(ctx, "mortgage created",
		"mortgage_id", m.ID,
		"principal", m.Principal,
		"term_months", m.TermMonths,
	)
	return m, nil
}

// PaymentResult is what RecordPayment hands back after a successful commit.
type PaymentResult struct {
	Payment              models.Payment
	OutstandingPrincipal money.Money
	ScheduleTail         models.AmortizationSchedule
	Status               models.Status
}

// RecordPayment appends a ledger entry and applies it to the balance and
// schedule as one logical transaction: both succeed or neither is committed.
// Calls against the same mortgage are serialized; different mortgages
// proceed in parallel.
func (s *MortgageService) RecordPayment(ctx context.Context, mortgageID id.MortgageID, date time.Time, amount money.Money) (*PaymentResult, error) {
	start := time.Now()
	unlock := s.locks.lock(mortgageID)
	defer unlock()

	result, err := s.recordPaymentLocked(ctx, mortgageID, date, amount)
	if err != nil {
		if s.metrics != nil {
			s.metrics.PaymentsRejected.WithLabelValues(string(dErrors.CodeOf(err))).Inc()
		}
		s.logger.WarnContext(ctx, "payment rejected",
			"mortgage_id", mortgageID,
			"amount", amount,
			"error", err,
		)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PaymentsRecorded.Inc()
		s.metrics.RecordPaymentTime.Observe(time.Since(start).Seconds())
		if result.Status == models.StatusPaidOff {
			s.metrics.MortgagesPaidOff.Inc()
		}
	}
	s.logger.InfoContext(ctx, "payment recorded",
		"mortgage_id", mortgageID,
		"payment_id", result.Payment.ID,
		"sequence", result.Payment.SequenceNumber,
		"outstanding", result.OutstandingPrincipal,
		"status", result.Status,
	)
	return result, nil
}

func (s *MortgageService) recordPaymentLocked(ctx context.Context, mortgageID id.MortgageID, date time.Time, amount money.Money) (*PaymentResult, error) {
	// FindByID hands back a deep copy: every mutation below happens on a
	// working copy that is discarded unless Update commits.
	m, err := s.load(ctx, mortgageID)
	if err != nil {
		return nil, err
	}
	if err := m.CanAcceptPayment(); err != nil {
		return nil, err
	}

	payment, err := ledger.Append(m, date, amount, s.clock().UTC())
	if err != nil {
		return nil, err
	}
	applied, err := engine.ApplyPayment(m, payment)
	if err != nil {
		return nil, err
	}
	m.UpdatedAt = s.clock().UTC()

	if err := s.store.Update(ctx, m); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit payment")
	}

	return &PaymentResult{
		Payment:              payment,
		OutstandingPrincipal: applied.OutstandingPrincipal,
		ScheduleTail:         applied.Tail,
		Status:               m.Status,
	}, nil
}

// GetSchedule returns the current full schedule: elapsed periods plus the
// regenerated tail. Read-only and safe to call concurrently with writes.
func (s *MortgageService) GetSchedule(ctx context.Context, mortgageID id.MortgageID) (models.AmortizationSchedule, error) {
	m, err := s.load(ctx, mortgageID)
	if err != nil {
		return nil, err
	}
	return m.Schedule, nil
}

// Summary is the read model for list and detail views.
type Summary struct {
	ID                   id.MortgageID
	ClientName           string
	PropertyAddress      string
	Principal            money.Money
	OutstandingPrincipal money.Money
	Status               models.Status
}

func (s *MortgageService) GetSummary(ctx context.Context, mortgageID id.MortgageID) (*Summary, error) {
	m, err := s.load(ctx, mortgageID)
	if err != nil {
		return nil, err
	}
	sum := summarize(m)
	return &sum, nil
}

// GetMortgage returns the full aggregate for detail views.
func (s *MortgageService) GetMortgage(ctx context.Context, mortgageID id.MortgageID) (*models.Mortgage, error) {
	return s.load(ctx, mortgageID)
}

// List returns summaries of all mortgages ordered by creation time.
func (s *MortgageService) List(ctx context.Context) ([]Summary, error) {
	mortgages, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list mortgages")
	}
	out := make([]Summary, 0, len(mortgages))
	for _, m := range mortgages {
		out = append(out, summarize(m))
	}
	return out, nil
}

func (s *MortgageService) load(ctx context.Context, mortgageID id.MortgageID) (*models.Mortgage, error) {
	m, err := s.store.FindByID(ctx, mortgageID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.NewField(dErrors.CodeNotFound, "mortgage not found", "mortgage_id", mortgageID.String())
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to load mortgage %s", mortgageID))
	}
	return m, nil
}

func summarize(m *models.Mortgage) Summary {
	return Summary{
		ID:                   m.ID,
		ClientName:           m.ClientName,
		PropertyAddress:      m.PropertyAddress,
		Principal:            m.Principal,
		OutstandingPrincipal: m.OutstandingPrincipal,
		Status:               m.Status,
	}
}
