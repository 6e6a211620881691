package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"mortgageledger/internal/mortgage/models"
	id "mortgageledger/pkg/domain"
	"mortgageledger/pkg/money"
	"mortgageledger/pkg/platform/sentinel"
)

// Postgres persists mortgage aggregates across three tables: mortgages,
// payments, and schedule_entries (see migrations/001_init.sql). Update
// commits the (new payments, balance, regenerated schedule) triple in a
// single transaction, which is the atomic-commit guarantee the engine
// requires of its persistence layer.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, m *models.Mortgage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create mortgage: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO mortgages
			(id, client_name, property_address, principal_minor, annual_rate_percent,
			 term_months, start_date, status, outstanding_minor, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		m.ID.String(), m.ClientName, m.PropertyAddress, m.Principal.Minor(),
		m.AnnualRate.AnnualPercent().String(), m.TermMonths, m.StartDate,
		string(m.Status), m.OutstandingPrincipal.Minor(), m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert mortgage: %w", err)
	}

	if err := insertSchedule(ctx, tx, m.ID, m.Schedule); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create mortgage: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, mortgageID id.MortgageID) (*models.Mortgage, error) {
	m, err := s.scanMortgage(ctx, s.db.QueryRowContext(ctx, `
		SELECT id, client_name, property_address, principal_minor, annual_rate_percent,
		       term_months, start_date, status, outstanding_minor, created_at, updated_at
		FROM mortgages WHERE id = $1
	`, mortgageID.String()))
	if err != nil {
		return nil, err
	}

	if m.Ledger, err = s.loadLedger(ctx, mortgageID); err != nil {
		return nil, err
	}
	if m.Schedule, err = s.loadSchedule(ctx, mortgageID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Postgres) Update(ctx context.Context, m *models.Mortgage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update mortgage: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE mortgages
		SET status = $2, outstanding_minor = $3, updated_at = $4
		WHERE id = $1
	`, m.ID.String(), string(m.Status), m.OutstandingPrincipal.Minor(), m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update mortgage: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}

	// The ledger is append-only: existing sequence numbers are never
	// rewritten, so conflicts on (mortgage_id, sequence_number) mean the
	// entry is already durable.
	for _, p := range m.Ledger {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO payments (id, mortgage_id, pay_date, amount_minor, sequence_number, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (mortgage_id, sequence_number) DO NOTHING
		`, p.ID.String(), p.MortgageID.String(), p.Date, p.Amount.Minor(), p.SequenceNumber, p.RecordedAt)
		if err != nil {
			return fmt.Errorf("insert payment %d: %w", p.SequenceNumber, err)
		}
	}

	// The schedule is regenerated, not mutated in place: replace wholesale.
	if _, err = tx.ExecContext(ctx, `DELETE FROM schedule_entries WHERE mortgage_id = $1`, m.ID.String()); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	if err := insertSchedule(ctx, tx, m.ID, m.Schedule); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update mortgage: %w", err)
	}
	return nil
}

// List hydrates summary fields only; ledgers and schedules stay unloaded.
// The list view never renders them and loading 360 rows per mortgage would
// make the table endpoint scale with total loan-months.
func (s *Postgres) List(ctx context.Context) ([]*models.Mortgage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client_name, property_address, principal_minor, annual_rate_percent,
		       term_months, start_date, status, outstanding_minor, created_at, updated_at
		FROM mortgages ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list mortgages: %w", err)
	}
	defer rows.Close()

	var out []*models.Mortgage
	for rows.Next() {
		m, err := s.scanMortgage(ctx, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Postgres) scanMortgage(_ context.Context, row rowScanner) (*models.Mortgage, error) {
	var (
		rawID, rawStatus, rawRate        string
		principalMinor, outstandingMinor int64
		m                                models.Mortgage
	)
	err := row.Scan(&rawID, &m.ClientName, &m.PropertyAddress, &principalMinor, &rawRate,
		&m.TermMonths, &m.StartDate, &rawStatus, &outstandingMinor, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan mortgage: %w", err)
	}

	mortgageID, err := id.ParseMortgageID(rawID)
	if err != nil {
		return nil, fmt.Errorf("stored mortgage id %q: %w", rawID, err)
	}
	rate, err := money.ParseRate(rawRate)
	if err != nil {
		return nil, fmt.Errorf("stored rate %q: %w", rawRate, err)
	}

	m.ID = mortgageID
	m.Principal = money.FromMinor(principalMinor)
	m.AnnualRate = rate
	m.Status = models.Status(rawStatus)
	m.OutstandingPrincipal = money.FromMinor(outstandingMinor)
	m.StartDate = m.StartDate.UTC()
	return &m, nil
}

func (s *Postgres) loadLedger(ctx context.Context, mortgageID id.MortgageID) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pay_date, amount_minor, sequence_number, recorded_at
		FROM payments WHERE mortgage_id = $1 ORDER BY sequence_number
	`, mortgageID.String())
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	defer rows.Close()

	var ledger []models.Payment
	for rows.Next() {
		var (
			rawID       string
			amountMinor int64
			p           models.Payment
		)
		if err := rows.Scan(&rawID, &p.Date, &amountMinor, &p.SequenceNumber, &p.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		paymentID, err := id.ParsePaymentID(rawID)
		if err != nil {
			return nil, fmt.Errorf("stored payment id %q: %w", rawID, err)
		}
		p.ID = paymentID
		p.MortgageID = mortgageID
		p.Amount = money.FromMinor(amountMinor)
		p.Date = p.Date.UTC()
		ledger = append(ledger, p)
	}
	return ledger, rows.Err()
}

func (s *Postgres) loadSchedule(ctx context.Context, mortgageID id.MortgageID) (models.AmortizationSchedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period_index, due_date, payment_minor, interest_minor, principal_minor, remaining_minor
		FROM schedule_entries WHERE mortgage_id = $1 ORDER BY period_index
	`, mortgageID.String())
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	defer rows.Close()

	var sched models.AmortizationSchedule
	for rows.Next() {
		var (
			e                                    models.ScheduleEntry
			payment, interest, principal, remain int64
		)
		if err := rows.Scan(&e.PeriodIndex, &e.DueDate, &payment, &interest, &principal, &remain); err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		e.DueDate = e.DueDate.UTC()
		e.PaymentAmount = money.FromMinor(payment)
		e.InterestPortion = money.FromMinor(interest)
		e.PrincipalPortion = money.FromMinor(principal)
		e.RemainingBalance = money.FromMinor(remain)
		sched = append(sched, e)
	}
	return sched, rows.Err()
}

// insertSchedule batches the whole schedule through unnest instead of one
// round trip per period; a 30-year loan is 360 rows.
func insertSchedule(ctx context.Context, tx *sql.Tx, mortgageID id.MortgageID, sched models.AmortizationSchedule) error {
	if len(sched) == 0 {
		return nil
	}
	periods := make([]int64, len(sched))
	dueDates := make([]time.Time, len(sched))
	payments := make([]int64, len(sched))
	interests := make([]int64, len(sched))
	principals := make([]int64, len(sched))
	remainders := make([]int64, len(sched))
	for i, e := range sched {
		periods[i] = int64(e.PeriodIndex)
		dueDates[i] = e.DueDate
		payments[i] = e.PaymentAmount.Minor()
		interests[i] = e.InterestPortion.Minor()
		principals[i] = e.PrincipalPortion.Minor()
		remainders[i] = e.RemainingBalance.Minor()
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO schedule_entries
			(mortgage_id, period_index, due_date, payment_minor, interest_minor, principal_minor, remaining_minor)
		SELECT $1, unnest($2::bigint[]), unnest($3::timestamptz[]),
		       unnest($4::bigint[]), unnest($5::bigint[]), unnest($6::bigint[]), unnest($7::bigint[])
	`, mortgageID.String(), pq.Array(periods), pq.Array(dueDates),
		pq.Array(payments), pq.Array(interests), pq.Array(principals), pq.Array(remainders))
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}
