/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates agents, cycles and
	leave periods that demonstrate specific calculation behavior.

AVAILABLE SCENARIOS:

	winter-week:     Full-time agent with one November week, award of 1 day
	straddle:        Leave straddling October 31, only the tail counts
	part-time-six:   Part-time agent on the 6-day convention reaching 2 days

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create agents
 3. Create weekly cycles (entitlements derived)
 4. Create leave periods (day counts derived)

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "winter-week"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Shared handler context and helpers
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestionsiteccsa/conges-engine/calendar"
	"github.com/gestionsiteccsa/conges-engine/fraction"
	"github.com/gestionsiteccsa/conges-engine/leave"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "winter-week",
		Name:        "Winter Week",
		Description: "Full-time 39h agent taking one workweek in November: 5 days outside the main period, 1 fractionation day",
	},
	{
		ID:          "straddle",
		Name:        "Straddling October 31",
		Description: "Leave running from late October into November: only the November tail counts",
	},
	{
		ID:          "part-time-six",
		Name:        "Part-Time, 6-Day Week",
		Description: "Half-time agent counted in jours ouvrables with two winter weeks: 2 fractionation days",
	},
}

// resetter is implemented by stores that can wipe themselves for demos.
type resetter interface {
	Reset(ctx context.Context) error
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	rs, ok := h.Store.(resetter)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Store does not support reset", nil)
		return
	}
	if err := rs.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.results.Flush()
	h.calendars.Flush()
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "winter-week":
		err = h.loadWinterWeekScenario(ctx)
	case "straddle":
		err = h.loadStraddleScenario(ctx)
	case "part-time-six":
		err = h.loadPartTimeSixScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// loadWinterWeekScenario: Marie, full-time 39h, takes Nov 4-8 2024 (Mon-Fri).
// 5 workdays outside the main period, so 1 fractionation day. Her summer
// leave contributes nothing.
func (h *Handler) loadWinterWeekScenario(ctx context.Context) error {
	agent := leave.Agent{ID: "marie.dupont", Name: "Marie Dupont", Email: "marie.dupont@example.fr"}
	if err := h.Store.SaveAgent(ctx, agent); err != nil {
		return err
	}

	cycle := leave.WeeklyCycle{
		ID:           h.mintID(),
		UserID:       agent.ID,
		Year:         2024,
		HoursPerWeek: decimal.NewFromInt(39),
		WorkQuota:    decimal.RequireFromString("1.0"),
		Mode:         leave.CountWorkdays,
	}
	fraction.DeriveEntitlements(&cycle)
	if err := h.Store.SaveCycle(ctx, cycle); err != nil {
		return err
	}

	periods := []leave.LeavePeriod{
		{
			UserID:    agent.ID,
			Start:     calendar.Date(2024, time.July, 15),
			StartHalf: leave.Morning,
			End:       calendar.Date(2024, time.August, 2),
			EndHalf:   leave.Afternoon,
			Type:      leave.LeaveAnnual,
		},
		{
			UserID:    agent.ID,
			Start:     calendar.Date(2024, time.November, 4),
			StartHalf: leave.Morning,
			End:       calendar.Date(2024, time.November, 8),
			EndHalf:   leave.Afternoon,
			Type:      leave.LeaveAnnual,
		},
	}
	return h.savePeriods(ctx, periods, leave.CountWorkdays)
}

// loadStraddleScenario: Paul takes Oct 28 - Nov 6 2024. The October head is
// inside the main period; only Nov 1-6 counts (4 workdays in 2024 after the
// Nov 1 holiday), so no award yet.
func (h *Handler) loadStraddleScenario(ctx context.Context) error {
	agent := leave.Agent{ID: "paul.martin", Name: "Paul Martin", Email: "paul.martin@example.fr"}
	if err := h.Store.SaveAgent(ctx, agent); err != nil {
		return err
	}

	cycle := leave.WeeklyCycle{
		ID:           h.mintID(),
		UserID:       agent.ID,
		Year:         2024,
		HoursPerWeek: decimal.NewFromInt(37),
		WorkQuota:    decimal.RequireFromString("1.0"),
		Mode:         leave.CountWorkdays,
	}
	fraction.DeriveEntitlements(&cycle)
	if err := h.Store.SaveCycle(ctx, cycle); err != nil {
		return err
	}

	periods := []leave.LeavePeriod{
		{
			UserID:    agent.ID,
			Start:     calendar.Date(2024, time.October, 28),
			StartHalf: leave.Morning,
			End:       calendar.Date(2024, time.November, 6),
			EndHalf:   leave.Afternoon,
			Type:      leave.LeaveAnnual,
		},
	}
	return h.savePeriods(ctx, periods, leave.CountWorkdays)
}

// loadPartTimeSixScenario: Sophie, half-time on the 6-day convention, takes
// two winter weeks. Saturdays count under jours ouvrables, pushing her past
// the 8-day threshold for the full 2-day award.
func (h *Handler) loadPartTimeSixScenario(ctx context.Context) error {
	agent := leave.Agent{ID: "sophie.bernard", Name: "Sophie Bernard", Email: "sophie.bernard@example.fr"}
	if err := h.Store.SaveAgent(ctx, agent); err != nil {
		return err
	}

	cycle := leave.WeeklyCycle{
		ID:           h.mintID(),
		UserID:       agent.ID,
		Year:         2024,
		HoursPerWeek: decimal.NewFromInt(35),
		WorkQuota:    decimal.RequireFromString("0.5"),
		Mode:         leave.CountWorkableDays,
	}
	fraction.DeriveEntitlements(&cycle)
	if err := h.Store.SaveCycle(ctx, cycle); err != nil {
		return err
	}

	params := leave.YearParameters{
		ID:     h.mintID(),
		UserID: agent.ID,
		Year:   2024,
		Mode:   leave.CountWorkableDays,
	}
	if err := h.Store.SaveParameters(ctx, params); err != nil {
		return err
	}

	periods := []leave.LeavePeriod{
		{
			UserID:    agent.ID,
			Start:     calendar.Date(2024, time.December, 2),
			StartHalf: leave.Morning,
			End:       calendar.Date(2024, time.December, 14),
			EndHalf:   leave.Afternoon,
			Type:      leave.LeaveAnnual,
		},
	}
	return h.savePeriods(ctx, periods, leave.CountWorkableDays)
}

func (h *Handler) savePeriods(ctx context.Context, periods []leave.LeavePeriod, mode leave.CountingMode) error {
	for _, p := range periods {
		p.ID = h.mintID()
		p.Derive(h.Cal, mode)
		if err := h.Store.SavePeriod(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
