package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestionsiteccsa/conges-engine/calendar"
	"github.com/gestionsiteccsa/conges-engine/leave"
	"github.com/gestionsiteccsa/conges-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testCycle(id int64, userID string, year int) leave.WeeklyCycle {
	return leave.WeeklyCycle{
		ID:              id,
		UserID:          userID,
		Year:            year,
		HoursPerWeek:    decimal.NewFromInt(39),
		WorkQuota:       decimal.RequireFromString("1.0"),
		Mode:            leave.CountWorkdays,
		AnnualRTT:       11,
		AnnualPaidLeave: decimal.RequireFromString("25.00"),
	}
}

// =============================================================================
// AGENT CRUD TESTS
// =============================================================================

func TestAgentCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Missing agent: (nil, nil)
	got, err := store.GetAgent(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)

	a := leave.Agent{ID: "marie", Name: "Marie Dupont", Email: "marie@example.fr"}
	require.NoError(t, store.SaveAgent(ctx, a))

	got, err = store.GetAgent(ctx, "marie")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Marie Dupont", got.Name)
	assert.Equal(t, "marie@example.fr", got.Email)

	// Upsert by ID
	a.Name = "Marie Dupont-Leclerc"
	require.NoError(t, store.SaveAgent(ctx, a))

	agents, err := store.ListAgents(ctx)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "Marie Dupont-Leclerc", agents[0].Name)

	require.NoError(t, store.DeleteAgent(ctx, "marie"))
	got, err = store.GetAgent(ctx, "marie")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// =============================================================================
// CYCLE TESTS
// =============================================================================

func TestCycle_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := testCycle(1, "marie", 2024)
	require.NoError(t, store.SaveCycle(ctx, c))

	got, err := store.GetCycle(ctx, "marie", 2024)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.HoursPerWeek.Equal(decimal.NewFromInt(39)))
	assert.True(t, got.WorkQuota.Equal(decimal.RequireFromString("1.0")))
	assert.Equal(t, leave.CountWorkdays, got.Mode)
	assert.Equal(t, 11, got.AnnualRTT)
	assert.Equal(t, "25.00", got.AnnualPaidLeave.StringFixed(2))
}

func TestCycle_OnePerAgentYear(t *testing.T) {
	// GIVEN: An existing cycle for (marie, 2024)
	// WHEN: Saving a second cycle with a different ID for the same pair
	// THEN: ErrDuplicate

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCycle(ctx, testCycle(1, "marie", 2024)))

	err := store.SaveCycle(ctx, testCycle(2, "marie", 2024))
	assert.ErrorIs(t, err, leave.ErrDuplicate)

	// Same ID updates in place.
	updated := testCycle(1, "marie", 2024)
	updated.HoursPerWeek = decimal.NewFromInt(37)
	require.NoError(t, store.SaveCycle(ctx, updated))

	got, err := store.GetCycle(ctx, "marie", 2024)
	require.NoError(t, err)
	assert.True(t, got.HoursPerWeek.Equal(decimal.NewFromInt(37)))

	// A different year is fine.
	require.NoError(t, store.SaveCycle(ctx, testCycle(3, "marie", 2025)))

	cycles, err := store.ListCycles(ctx, "marie")
	require.NoError(t, err)
	require.Len(t, cycles, 2)
	assert.Equal(t, 2024, cycles[0].Year)
	assert.Equal(t, 2025, cycles[1].Year)
}

func TestCycle_MissingIsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetCycle(context.Background(), "marie", 2024)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// =============================================================================
// PARAMETER TESTS
// =============================================================================

func TestParameters_RoundTripAndUniqueness(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := leave.YearParameters{ID: 1, UserID: "marie", Year: 2024, Mode: leave.CountWorkableDays}
	require.NoError(t, store.SaveParameters(ctx, p))

	got, err := store.GetParameters(ctx, "marie", 2024)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, leave.CountWorkableDays, got.Mode)

	dup := leave.YearParameters{ID: 2, UserID: "marie", Year: 2024, Mode: leave.CountWorkdays}
	assert.ErrorIs(t, store.SaveParameters(ctx, dup), leave.ErrDuplicate)

	require.NoError(t, store.DeleteParameters(ctx, 1))
	got, err = store.GetParameters(ctx, "marie", 2024)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// =============================================================================
// PERIOD TESTS
// =============================================================================

func TestPeriod_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := leave.LeavePeriod{
		ID:        10,
		UserID:    "marie",
		Start:     calendar.Date(2024, time.November, 4),
		StartHalf: leave.Morning,
		End:       calendar.Date(2024, time.November, 8),
		EndHalf:   leave.Afternoon,
		Type:      leave.LeaveAnnual,
		CivilYear: 2024,
		DayCount:  decimal.NewFromInt(5),
	}
	require.NoError(t, store.SavePeriod(ctx, p))

	got, err := store.GetPeriod(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, calendar.Date(2024, time.November, 4), got.Start)
	assert.Equal(t, leave.Morning, got.StartHalf)
	assert.Equal(t, calendar.Date(2024, time.November, 8), got.End)
	assert.Equal(t, leave.Afternoon, got.EndHalf)
	assert.Equal(t, leave.LeaveAnnual, got.Type)
	assert.Equal(t, 2024, got.CivilYear)
	assert.True(t, got.DayCount.Equal(decimal.NewFromInt(5)))
}

func TestPeriod_ListFiltersByYearAndType(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	save := func(id int64, start time.Time, typ leave.LeaveType) {
		require.NoError(t, store.SavePeriod(ctx, leave.LeavePeriod{
			ID:        id,
			UserID:    "marie",
			Start:     start,
			StartHalf: leave.Morning,
			End:       start.AddDate(0, 0, 4),
			EndHalf:   leave.Afternoon,
			Type:      typ,
			CivilYear: start.Year(),
			DayCount:  decimal.NewFromInt(5),
		}))
	}

	save(1, calendar.Date(2024, time.November, 4), leave.LeaveAnnual)
	save(2, calendar.Date(2024, time.July, 8), leave.LeaveAnnual)
	save(3, calendar.Date(2024, time.December, 2), leave.LeaveRTT)
	save(4, calendar.Date(2025, time.January, 6), leave.LeaveAnnual)

	all, err := store.ListPeriods(ctx, "marie", 2024)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Start.Before(all[1].Start), "ordered by start")

	annual, err := store.ListPeriodsByType(ctx, "marie", 2024, leave.LeaveAnnual)
	require.NoError(t, err)
	assert.Len(t, annual, 2)

	other, err := store.ListPeriodsByType(ctx, "nobody", 2024, leave.LeaveAnnual)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestPeriod_AutoAssignedID(t *testing.T) {
	// A zero ID lets SQLite assign the rowid.
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePeriod(ctx, leave.LeavePeriod{
		UserID:    "marie",
		Start:     calendar.Date(2024, time.November, 4),
		StartHalf: leave.Morning,
		End:       calendar.Date(2024, time.November, 8),
		EndHalf:   leave.Afternoon,
		Type:      leave.LeaveAnnual,
		CivilYear: 2024,
		DayCount:  decimal.NewFromInt(5),
	}))

	periods, err := store.ListPeriods(ctx, "marie", 2024)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.NotZero(t, periods[0].ID)
}

// =============================================================================
// RESET TESTS
// =============================================================================

func TestReset_ClearsEverything(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAgent(ctx, leave.Agent{ID: "marie", Name: "Marie"}))
	require.NoError(t, store.SaveCycle(ctx, testCycle(1, "marie", 2024)))
	require.NoError(t, store.Reset(ctx))

	agents, err := store.ListAgents(ctx)
	require.NoError(t, err)
	assert.Empty(t, agents)

	c, err := store.GetCycle(ctx, "marie", 2024)
	require.NoError(t, err)
	assert.Nil(t, c)
}
