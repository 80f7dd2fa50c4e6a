/*
store.go - Persistence interfaces for leave records

PURPOSE:
  Defines the contract between the calculators and the record store. The
  calculators only ever read committed, already-validated snapshots; all
  writes go through the API layer.

KEY INTERFACES:
  AgentStore:     Agent records
  CycleStore:     Weekly cycles (one per agent+year)
  ParameterStore: Per-year counting-convention overrides (one per agent+year)
  PeriodStore:    Leave periods
  Store:          All of the above

NOT-FOUND CONVENTION:
  Get* methods return (nil, nil) for a missing record, mirroring how the
  calculator treats a missing cycle or parameter set: it is a permissive
  default, not an error. List* methods return an empty slice.

IMPLEMENTATIONS:
  - store/sqlite: production store
  - store/memory: in-memory store for tests and demos

SEE ALSO:
  - ../fraction/calculator.go: the main consumer
  - ../api/handlers.go: the write path
*/
package leave

import "context"

// =============================================================================
// RECORD STORE INTERFACES
// =============================================================================

// AgentStore persists agents.
type AgentStore interface {
	SaveAgent(ctx context.Context, a Agent) error
	GetAgent(ctx context.Context, id string) (*Agent, error)
	ListAgents(ctx context.Context) ([]Agent, error)
	DeleteAgent(ctx context.Context, id string) error
}

// CycleStore persists weekly cycles. At most one cycle exists per
// (agent, year); Save of a second one returns ErrDuplicate.
type CycleStore interface {
	SaveCycle(ctx context.Context, c WeeklyCycle) error
	GetCycle(ctx context.Context, userID string, year int) (*WeeklyCycle, error)
	ListCycles(ctx context.Context, userID string) ([]WeeklyCycle, error)
	DeleteCycle(ctx context.Context, id int64) error
}

// ParameterStore persists per-year parameters. At most one record exists per
// (agent, year); Save of a second one returns ErrDuplicate.
type ParameterStore interface {
	SaveParameters(ctx context.Context, p YearParameters) error
	GetParameters(ctx context.Context, userID string, year int) (*YearParameters, error)
	DeleteParameters(ctx context.Context, id int64) error
}

// PeriodStore persists leave periods.
type PeriodStore interface {
	SavePeriod(ctx context.Context, p LeavePeriod) error
	GetPeriod(ctx context.Context, id int64) (*LeavePeriod, error)

	// ListPeriods returns all periods of an agent for a civil year,
	// ordered by start date.
	ListPeriods(ctx context.Context, userID string, year int) ([]LeavePeriod, error)

	// ListPeriodsByType filters ListPeriods by leave type.
	ListPeriodsByType(ctx context.Context, userID string, year int, t LeaveType) ([]LeavePeriod, error)

	DeletePeriod(ctx context.Context, id int64) error
}

// Store is the full record store the API layer works against.
type Store interface {
	AgentStore
	CycleStore
	ParameterStore
	PeriodStore
}

// Records is the read-only slice of the store the fractionation calculator
// needs. The calculator never writes.
type Records interface {
	GetCycle(ctx context.Context, userID string, year int) (*WeeklyCycle, error)
	GetParameters(ctx context.Context, userID string, year int) (*YearParameters, error)
	ListPeriodsByType(ctx context.Context, userID string, year int, t LeaveType) ([]LeavePeriod, error)
}
