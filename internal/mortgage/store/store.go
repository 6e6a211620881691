package store

import (
	"context"

	"mortgageledger/internal/mortgage/models"
	id "mortgageledger/pkg/domain"
)

// MortgageStore is interface-driven to keep the domain logic testable and to
// let the caller own the persistence lifecycle: in-memory for tests and
// development, PostgreSQL for durable deployments, without rewiring business
// code. Implementations return sentinel errors (pkg/platform/sentinel) for
// infrastructure facts; services translate them into domain errors.
//
// Update must commit the aggregate atomically: ledger entries, balance, and
// schedule move together or not at all.
type MortgageStore interface {
	Create(ctx context.Context, m *models.Mortgage) error
	FindByID(ctx context.Context, mortgageID id.MortgageID) (*models.Mortgage, error)
	Update(ctx context.Context, m *models.Mortgage) error
	List(ctx context.Context) ([]*models.Mortgage, error)
}
