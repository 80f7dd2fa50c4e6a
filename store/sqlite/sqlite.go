/*
Package sqlite provides a SQLite-backed implementation of the record store.

PURPOSE:
  Implements the leave.Store interface using SQLite. In production, the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  agents:           Agent records
  weekly_cycles:    One work cycle per (agent, year)
  year_parameters:  One counting-convention override per (agent, year)
  leave_periods:    Logged leave periods

UNIQUENESS:
  weekly_cycles and year_parameters carry a UNIQUE(user_id, year) index: an
  agent has at most one cycle and one parameter set per civil year. Violations
  surface as leave.ErrDuplicate.

STORAGE CONVENTIONS:
  - Dates as TEXT in "2006-01-02" (day precision is the domain's precision)
  - Timestamps as TEXT in RFC3339
  - Decimals as TEXT, round-tripped through shopspring/decimal

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/conges.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - leave/store.go: Interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/gestionsiteccsa/conges-engine/leave"
)

const dateLayout = "2006-01-02"

// Store implements leave.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Agents
	CREATE TABLE IF NOT EXISTS agents (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		created_at TEXT NOT NULL
	);

	-- Weekly cycles (one per agent+year)
	CREATE TABLE IF NOT EXISTS weekly_cycles (
		id INTEGER PRIMARY KEY,
		user_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		hours_per_week TEXT NOT NULL,
		work_quota TEXT NOT NULL,
		counting_mode TEXT NOT NULL,
		annual_rtt INTEGER NOT NULL,
		annual_paid_leave TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(user_id, year)
	);

	CREATE INDEX IF NOT EXISTS idx_cycles_user
		ON weekly_cycles(user_id);

	-- Year parameters (one per agent+year)
	CREATE TABLE IF NOT EXISTS year_parameters (
		id INTEGER PRIMARY KEY,
		user_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		counting_mode TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(user_id, year)
	);

	-- Leave periods
	CREATE TABLE IF NOT EXISTS leave_periods (
		id INTEGER PRIMARY KEY,
		user_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		start_half TEXT NOT NULL,
		end_date TEXT NOT NULL,
		end_half TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		civil_year INTEGER NOT NULL,
		day_count TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Composite index for fractionation queries (hot path)
	CREATE INDEX IF NOT EXISTS idx_periods_user_year_type
		ON leave_periods(user_id, civil_year, leave_type);
	CREATE INDEX IF NOT EXISTS idx_periods_user_year
		ON leave_periods(user_id, civil_year, start_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// AGENT STORE (leave.AgentStore interface)
// =============================================================================

// SaveAgent inserts or updates an agent.
func (s *Store) SaveAgent(ctx context.Context, a leave.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO agents (id, name, email, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email
	`

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.Name, a.Email, createdAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save agent: %w", err)
	}
	return nil
}

// GetAgent retrieves an agent by ID. Returns (nil, nil) when missing.
func (s *Store) GetAgent(ctx context.Context, id string) (*leave.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var a leave.Agent
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at FROM agents WHERE id = ?",
		id,
	).Scan(&a.ID, &a.Name, &a.Email, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &a, nil
}

// ListAgents returns all agents ordered by name.
func (s *Store) ListAgents(ctx context.Context) ([]leave.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, created_at FROM agents ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []leave.Agent
	for rows.Next() {
		var a leave.Agent
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &createdAt); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

// DeleteAgent removes an agent.
func (s *Store) DeleteAgent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM agents WHERE id = ?", id)
	return err
}

// =============================================================================
// CYCLE STORE (leave.CycleStore interface)
// =============================================================================

// SaveCycle inserts a weekly cycle, or updates it when the ID matches an
// existing row. A second cycle for the same (agent, year) returns
// leave.ErrDuplicate.
func (s *Store) SaveCycle(ctx context.Context, c leave.WeeklyCycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO weekly_cycles
		(id, user_id, year, hours_per_week, work_quota, counting_mode,
		 annual_rtt, annual_paid_leave, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			hours_per_week = excluded.hours_per_week,
			work_quota = excluded.work_quota,
			counting_mode = excluded.counting_mode,
			annual_rtt = excluded.annual_rtt,
			annual_paid_leave = excluded.annual_paid_leave,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		nullID(c.ID), c.UserID, c.Year,
		c.HoursPerWeek.String(), c.WorkQuota.String(), string(c.Mode),
		c.AnnualRTT, c.AnnualPaidLeave.String(),
		now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return leave.ErrDuplicate
		}
		return fmt.Errorf("failed to save cycle: %w", err)
	}
	return nil
}

// GetCycle retrieves the cycle for an agent and year. Returns (nil, nil)
// when missing.
func (s *Store) GetCycle(ctx context.Context, userID string, year int) (*leave.WeeklyCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, year, hours_per_week, work_quota, counting_mode,
		       annual_rtt, annual_paid_leave, created_at, updated_at
		FROM weekly_cycles WHERE user_id = ? AND year = ?`,
		userID, year)

	c, err := scanCycle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCycles returns all cycles of an agent ordered by year.
func (s *Store) ListCycles(ctx context.Context, userID string) ([]leave.WeeklyCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, year, hours_per_week, work_quota, counting_mode,
		       annual_rtt, annual_paid_leave, created_at, updated_at
		FROM weekly_cycles WHERE user_id = ? ORDER BY year`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []leave.WeeklyCycle
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, *c)
	}
	return cycles, rows.Err()
}

// DeleteCycle removes a cycle by ID.
func (s *Store) DeleteCycle(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM weekly_cycles WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCycle(row rowScanner) (*leave.WeeklyCycle, error) {
	var (
		c                        leave.WeeklyCycle
		hours, quota, paid, mode string
		createdAt, updatedAt     string
	)

	err := row.Scan(&c.ID, &c.UserID, &c.Year, &hours, &quota, &mode,
		&c.AnnualRTT, &paid, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.HoursPerWeek, _ = decimal.NewFromString(hours)
	c.WorkQuota, _ = decimal.NewFromString(quota)
	c.AnnualPaidLeave, _ = decimal.NewFromString(paid)
	c.Mode = leave.CountingMode(mode)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &c, nil
}

// =============================================================================
// PARAMETER STORE (leave.ParameterStore interface)
// =============================================================================

// SaveParameters inserts a per-year parameter record, or updates it when the
// ID matches an existing row. A second record for the same (agent, year)
// returns leave.ErrDuplicate.
func (s *Store) SaveParameters(ctx context.Context, p leave.YearParameters) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO year_parameters (id, user_id, year, counting_mode, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			counting_mode = excluded.counting_mode,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		nullID(p.ID), p.UserID, p.Year, string(p.Mode), now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			return leave.ErrDuplicate
		}
		return fmt.Errorf("failed to save year parameters: %w", err)
	}
	return nil
}

// GetParameters retrieves the parameter record for an agent and year.
// Returns (nil, nil) when missing.
func (s *Store) GetParameters(ctx context.Context, userID string, year int) (*leave.YearParameters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		p                    leave.YearParameters
		mode                 string
		createdAt, updatedAt string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, year, counting_mode, created_at, updated_at
		FROM year_parameters WHERE user_id = ? AND year = ?`,
		userID, year,
	).Scan(&p.ID, &p.UserID, &p.Year, &mode, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Mode = leave.CountingMode(mode)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

// DeleteParameters removes a parameter record by ID.
func (s *Store) DeleteParameters(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM year_parameters WHERE id = ?", id)
	return err
}

// =============================================================================
// PERIOD STORE (leave.PeriodStore interface)
// =============================================================================

// SavePeriod inserts a leave period, or updates it when the ID matches an
// existing row.
func (s *Store) SavePeriod(ctx context.Context, p leave.LeavePeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO leave_periods
		(id, user_id, start_date, start_half, end_date, end_half,
		 leave_type, civil_year, day_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_date = excluded.start_date,
			start_half = excluded.start_half,
			end_date = excluded.end_date,
			end_half = excluded.end_half,
			leave_type = excluded.leave_type,
			civil_year = excluded.civil_year,
			day_count = excluded.day_count,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		nullID(p.ID), p.UserID,
		p.Start.Format(dateLayout), string(p.StartHalf),
		p.End.Format(dateLayout), string(p.EndHalf),
		string(p.Type), p.CivilYear, p.DayCount.String(),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save leave period: %w", err)
	}
	return nil
}

// GetPeriod retrieves a leave period by ID. Returns (nil, nil) when missing.
func (s *Store) GetPeriod(ctx context.Context, id int64) (*leave.LeavePeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, start_date, start_half, end_date, end_half,
		       leave_type, civil_year, day_count, created_at, updated_at
		FROM leave_periods WHERE id = ?`,
		id)

	p, err := scanPeriod(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPeriods returns all periods of an agent for a civil year, ordered by
// start date.
func (s *Store) ListPeriods(ctx context.Context, userID string, year int) ([]leave.LeavePeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, user_id, start_date, start_half, end_date, end_half,
		       leave_type, civil_year, day_count, created_at, updated_at
		FROM leave_periods
		WHERE user_id = ? AND civil_year = ?
		ORDER BY start_date ASC
	`

	return s.queryPeriods(ctx, query, userID, year)
}

// ListPeriodsByType filters ListPeriods by leave type.
func (s *Store) ListPeriodsByType(ctx context.Context, userID string, year int, t leave.LeaveType) ([]leave.LeavePeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, user_id, start_date, start_half, end_date, end_half,
		       leave_type, civil_year, day_count, created_at, updated_at
		FROM leave_periods
		WHERE user_id = ? AND civil_year = ? AND leave_type = ?
		ORDER BY start_date ASC
	`

	return s.queryPeriods(ctx, query, userID, year, string(t))
}

// DeletePeriod removes a leave period by ID.
func (s *Store) DeletePeriod(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM leave_periods WHERE id = ?", id)
	return err
}

func (s *Store) queryPeriods(ctx context.Context, query string, args ...any) ([]leave.LeavePeriod, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave periods: %w", err)
	}
	defer rows.Close()

	var periods []leave.LeavePeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, *p)
	}
	return periods, rows.Err()
}

func scanPeriod(row rowScanner) (*leave.LeavePeriod, error) {
	var (
		p                              leave.LeavePeriod
		start, startHalf, end, endHalf string
		leaveType, dayCount            string
		createdAt, updatedAt           string
	)

	err := row.Scan(&p.ID, &p.UserID, &start, &startHalf, &end, &endHalf,
		&leaveType, &p.CivilYear, &dayCount, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.Start, _ = time.Parse(dateLayout, start)
	p.End, _ = time.Parse(dateLayout, end)
	p.StartHalf = leave.HalfDay(startHalf)
	p.EndHalf = leave.HalfDay(endHalf)
	p.Type = leave.LeaveType(leaveType)
	p.DayCount, _ = decimal.NewFromString(dayCount)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"leave_periods", "year_parameters", "weekly_cycles", "agents"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

// nullID maps a zero ID to NULL so SQLite assigns the next rowid.
func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
