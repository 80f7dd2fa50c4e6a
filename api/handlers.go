/*
handlers.go - HTTP handlers for the leave calculation API

PURPOSE:
  Exposes the calculation engine via REST API. Handlers translate between
  DTOs and the domain model, validate input, derive server-side fields, and
  map domain errors to HTTP status codes.

REQUEST FLOW:
  1. Parse URL params / decode request body
  2. Validate (go-playground/validator + domain Validate methods)
  3. Call domain/store
  4. Map errors: IsNotFound -> 404, IsClientError -> 400, else 500
  5. writeJSON response

CACHING:
  Computed results are cached in-process (patrickmn/go-cache):
  - fractionation and entitlement results: 5 minutes
  - year and per-agent calendars: 15 minutes
  Every write touching an agent's records invalidates that agent's cached
  results and calendar for the affected year. Deletes by bare ID flush the
  result cache wholesale since the owning (agent, year) is not known at
  that point.

ID MINTING:
  New cycles, parameters and periods get a sonyflake ID when the request
  does not carry one.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public;
  the service is meant to sit behind the intranet's reverse proxy.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/sony/sonyflake"

	"github.com/gestionsiteccsa/conges-engine/calendar"
	"github.com/gestionsiteccsa/conges-engine/fraction"
	"github.com/gestionsiteccsa/conges-engine/leave"
)

// Cache TTLs for computed results.
const (
	resultTTL   = 5 * time.Minute
	calendarTTL = 15 * time.Minute
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the dependencies shared by all endpoints.
type Handler struct {
	Store leave.Store
	Calc  *fraction.Calculator
	Cal   *calendar.Calendar

	breaks    calendar.BreakData
	validate  *validator.Validate
	results   *gocache.Cache
	calendars *gocache.Cache
	ids       *sonyflake.Sonyflake
	log       *logrus.Logger

	currentScenario string
}

// NewHandler creates a handler with the given store and calendar.
func NewHandler(store leave.Store, cal *calendar.Calendar, breaks calendar.BreakData, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Store:     store,
		Calc:      fraction.NewCalculator(store, cal, fraction.DefaultBounds, log),
		Cal:       cal,
		breaks:    breaks,
		validate:  validator.New(),
		results:   gocache.New(resultTTL, 10*time.Minute),
		calendars: gocache.New(calendarTTL, 30*time.Minute),
		ids:       sonyflake.NewSonyflake(sonyflake.Settings{}),
		log:       log,
	}
}

func (h *Handler) mintID() int64 {
	if h.ids != nil {
		if id, err := h.ids.NextID(); err == nil {
			return int64(id)
		}
	}
	return time.Now().UnixNano()
}

// invalidateResults drops the cached computations and the cached calendar of
// one agent and year.
func (h *Handler) invalidateResults(userID string, year int) {
	h.results.Delete(fractionationKey(userID, year))
	h.results.Delete(entitlementsKey(userID, year))
	h.calendars.Delete(calendarKey(userID, year))
}

func fractionationKey(userID string, year int) string {
	return fmt.Sprintf("fractionation:%s:%d", userID, year)
}

func entitlementsKey(userID string, year int) string {
	return fmt.Sprintf("entitlements:%s:%d", userID, year)
}

// calendarKey keys both calendar caches; the year-wide calendar uses an
// empty userID.
func calendarKey(userID string, year int) string {
	return fmt.Sprintf("calendar:%s:%d", userID, year)
}

// =============================================================================
// AGENT HANDLERS
// =============================================================================

// ListAgents returns all agents.
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.Store.ListAgents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list agents", err)
		return
	}

	dtos := make([]AgentDTO, 0, len(agents))
	for _, a := range agents {
		dtos = append(dtos, toAgentDTO(a))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAgent returns one agent by ID.
func (h *Handler) GetAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.Store.GetAgent(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get agent", err)
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "Agent not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toAgentDTO(*a))
}

// SaveAgent creates or updates an agent.
func (h *Handler) SaveAgent(w http.ResponseWriter, r *http.Request) {
	var req SaveAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	a := leave.Agent{ID: req.ID, Name: req.Name, Email: req.Email}
	if err := h.Store.SaveAgent(r.Context(), a); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save agent", err)
		return
	}

	// Respond with the stored record: the store mints created_at, and on an
	// update the original timestamp is kept.
	if saved, err := h.Store.GetAgent(r.Context(), a.ID); err == nil && saved != nil {
		a = *saved
	}

	writeJSON(w, http.StatusCreated, toAgentDTO(a))
}

// DeleteAgent removes an agent.
func (h *Handler) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteAgent(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete agent", err)
		return
	}

	h.results.Flush()
	h.calendars.Flush()
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CYCLE HANDLERS
// =============================================================================

// ListCycles returns all cycles of an agent.
func (h *Handler) ListCycles(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	cycles, err := h.Store.ListCycles(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list cycles", err)
		return
	}

	dtos := make([]CycleDTO, 0, len(cycles))
	for _, c := range cycles {
		dtos = append(dtos, toCycleDTO(c))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCycle returns the cycle of an agent for one year.
func (h *Handler) GetCycle(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	year, err := parseYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	c, err := h.Store.GetCycle(r.Context(), userID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get cycle", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Cycle not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toCycleDTO(*c))
}

// SaveCycle creates or updates a weekly cycle. Entitlements (RTT, paid
// leave) are derived here from the contractual fields.
func (h *Handler) SaveCycle(w http.ResponseWriter, r *http.Request) {
	var req SaveCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	c, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cycle", err)
		return
	}
	if err := c.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cycle", err)
		return
	}

	fraction.DeriveEntitlements(&c)
	if c.ID == 0 {
		c.ID = h.mintID()
	}

	if err := h.Store.SaveCycle(r.Context(), c); err != nil {
		h.writeStoreError(w, "Failed to save cycle", err)
		return
	}

	h.invalidateResults(c.UserID, c.Year)
	writeJSON(w, http.StatusCreated, toCycleDTO(c))
}

// DeleteCycle removes a cycle.
func (h *Handler) DeleteCycle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return
	}

	if err := h.Store.DeleteCycle(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete cycle", err)
		return
	}

	h.results.Flush()
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PARAMETER HANDLERS
// =============================================================================

// GetParameters returns the per-year parameters of an agent.
func (h *Handler) GetParameters(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	year, err := parseYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	p, err := h.Store.GetParameters(r.Context(), userID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get parameters", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Parameters not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toParametersDTO(*p))
}

// SaveParameters creates or updates per-year parameters.
func (h *Handler) SaveParameters(w http.ResponseWriter, r *http.Request) {
	var req SaveParametersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	p := leave.YearParameters{
		ID:     req.ID,
		UserID: req.UserID,
		Year:   req.Year,
		Mode:   leave.CountingMode(req.CountingMode),
	}
	if p.ID == 0 {
		p.ID = h.mintID()
	}

	if err := h.Store.SaveParameters(r.Context(), p); err != nil {
		h.writeStoreError(w, "Failed to save parameters", err)
		return
	}

	h.invalidateResults(p.UserID, p.Year)
	writeJSON(w, http.StatusCreated, toParametersDTO(p))
}

// DeleteParameters removes a parameter record.
func (h *Handler) DeleteParameters(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return
	}

	if err := h.Store.DeleteParameters(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete parameters", err)
		return
	}

	h.results.Flush()
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PERIOD HANDLERS
// =============================================================================

// ListPeriods returns all periods of an agent for one civil year.
func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	year, err := parseYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	periods, err := h.Store.ListPeriods(r.Context(), userID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list periods", err)
		return
	}

	dtos := make([]PeriodDTO, 0, len(periods))
	for _, p := range periods {
		dtos = append(dtos, toPeriodDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPeriod returns one leave period by ID.
func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return
	}

	p, err := h.Store.GetPeriod(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get period", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Period not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toPeriodDTO(*p))
}

// SavePeriod creates or updates a leave period. CivilYear and DayCount are
// derived here under the agent's resolved counting convention.
func (h *Handler) SavePeriod(w http.ResponseWriter, r *http.Request) {
	var req SavePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	p, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	mode, err := h.Calc.CountingMode(r.Context(), p.UserID, p.Start.Year())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve counting mode", err)
		return
	}
	p.Derive(h.Cal, mode)

	if p.ID == 0 {
		p.ID = h.mintID()
	}

	if err := h.Store.SavePeriod(r.Context(), p); err != nil {
		h.writeStoreError(w, "Failed to save period", err)
		return
	}

	h.invalidateResults(p.UserID, p.CivilYear)
	writeJSON(w, http.StatusCreated, toPeriodDTO(p))
}

// DeletePeriod removes a leave period and invalidates the owning agent's
// cached results.
func (h *Handler) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return
	}

	p, err := h.Store.GetPeriod(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get period", err)
		return
	}

	if err := h.Store.DeletePeriod(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete period", err)
		return
	}

	if p != nil {
		h.invalidateResults(p.UserID, p.CivilYear)
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// GetFractionation computes (or serves from cache) the fractionation result
// for an agent and year.
func (h *Handler) GetFractionation(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	year, err := parseYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	key := fractionationKey(userID, year)
	if cached, ok := h.results.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	res, err := h.Calc.Compute(r.Context(), userID, year)
	if err != nil {
		h.writeStoreError(w, "Failed to compute fractionation", err)
		return
	}

	dto := toFractionationDTO(userID, res)
	h.results.Set(key, dto, resultTTL)
	writeJSON(w, http.StatusOK, dto)
}

// GetCalendar returns the public holidays and school breaks of one year.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	if err := h.Calc.Bounds().Check(year); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	key := calendarKey("", year)
	if cached, ok := h.calendars.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	dto := toCalendarDTO(year, h.Cal.Holidays(year), h.breaks.ForYear(year), nil)
	h.calendars.Set(key, dto, calendarTTL)
	writeJSON(w, http.StatusOK, dto)
}

// GetAgentCalendar returns the year calendar enriched with the agent's leave
// periods, ready to render as one mixed event list.
func (h *Handler) GetAgentCalendar(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	year, err := parseYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	if err := h.Calc.Bounds().Check(year); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	key := calendarKey(userID, year)
	if cached, ok := h.calendars.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	periods, err := h.Store.ListPeriods(r.Context(), userID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list periods", err)
		return
	}

	dto := toCalendarDTO(year, h.Cal.Holidays(year), h.breaks.ForYear(year), periods)
	h.calendars.Set(key, dto, calendarTTL)
	writeJSON(w, http.StatusOK, dto)
}

// GetEntitlements returns the agent's entitlement summary for one year:
// the cycle's derived RTT and paid-leave figures plus the year-to-date
// worked-days counter. For past or future years the counter covers the
// whole year.
func (h *Handler) GetEntitlements(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	year, err := parseYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	if err := h.Calc.Bounds().Check(year); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	key := entitlementsKey(userID, year)
	if cached, ok := h.results.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	c, err := h.Store.GetCycle(r.Context(), userID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get cycle", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Cycle not found", nil)
		return
	}

	mode, err := h.Calc.CountingMode(r.Context(), userID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve counting mode", err)
		return
	}

	ref := time.Now().UTC()
	if ref.Year() != year {
		ref = calendar.Date(year, time.December, 31)
	}

	dto := EntitlementsDTO{
		UserID:                  userID,
		Year:                    year,
		AnnualRTT:               c.AnnualRTT,
		AnnualPaidLeave:         c.AnnualPaidLeave.String(),
		CountingMode:            string(mode),
		WorkedDaysSinceJanFirst: fraction.WorkedDaysSinceJanuary(h.Cal, ref, mode),
	}
	h.results.Set(key, dto, resultTTL)
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HELPERS
// =============================================================================

func parseYear(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "year"))
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// writeStoreError maps a domain or store error to an HTTP status.
func (h *Handler) writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case leave.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case leave.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
