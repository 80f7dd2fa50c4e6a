/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATE FORMAT:
  All dates cross the wire as "2006-01-02". The domain works at day
  precision; timestamps (created_at) use RFC3339.

VALIDATION:
  Request types carry go-playground/validator struct tags; handlers run
  them through Handler.validate before touching the store.

SEE ALSO:
  - handlers.go: Uses these types
  - ../leave/types.go: the domain model behind them
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestionsiteccsa/conges-engine/calendar"
	"github.com/gestionsiteccsa/conges-engine/fraction"
	"github.com/gestionsiteccsa/conges-engine/leave"
)

const dateLayout = "2006-01-02"

// =============================================================================
// AGENTS
// =============================================================================

// AgentDTO represents an agent in API responses.
type AgentDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// SaveAgentRequest is the request to create or update an agent.
type SaveAgentRequest struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func toAgentDTO(a leave.Agent) AgentDTO {
	dto := AgentDTO{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
	}
	if !a.CreatedAt.IsZero() {
		dto.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

// =============================================================================
// WEEKLY CYCLES
// =============================================================================

// CycleDTO represents a weekly cycle with its derived entitlements.
type CycleDTO struct {
	ID              int64  `json:"id"`
	UserID          string `json:"user_id"`
	Year            int    `json:"year"`
	HoursPerWeek    string `json:"hours_per_week"`
	WorkQuota       string `json:"work_quota"`
	CountingMode    string `json:"counting_mode"`
	AnnualRTT       int    `json:"annual_rtt"`
	AnnualPaidLeave string `json:"annual_paid_leave"`
}

// SaveCycleRequest is the request to create or update a weekly cycle.
// Entitlements are derived server-side and never accepted from input.
type SaveCycleRequest struct {
	ID           int64  `json:"id,omitempty"`
	UserID       string `json:"user_id" validate:"required"`
	Year         int    `json:"year" validate:"required"`
	HoursPerWeek string `json:"hours_per_week" validate:"required"`
	WorkQuota    string `json:"work_quota" validate:"required"`
	CountingMode string `json:"counting_mode" validate:"required,oneof=workdays workable_days"`
}

func toCycleDTO(c leave.WeeklyCycle) CycleDTO {
	return CycleDTO{
		ID:              c.ID,
		UserID:          c.UserID,
		Year:            c.Year,
		HoursPerWeek:    c.HoursPerWeek.String(),
		WorkQuota:       c.WorkQuota.String(),
		CountingMode:    string(c.Mode),
		AnnualRTT:       c.AnnualRTT,
		AnnualPaidLeave: c.AnnualPaidLeave.String(),
	}
}

func (req SaveCycleRequest) toDomain() (leave.WeeklyCycle, error) {
	hours, err := decimal.NewFromString(req.HoursPerWeek)
	if err != nil {
		return leave.WeeklyCycle{}, &leave.InvalidCycleError{Field: "hours_per_week", Value: req.HoursPerWeek}
	}
	quota, err := decimal.NewFromString(req.WorkQuota)
	if err != nil {
		return leave.WeeklyCycle{}, &leave.InvalidCycleError{Field: "work_quota", Value: req.WorkQuota}
	}

	return leave.WeeklyCycle{
		ID:           req.ID,
		UserID:       req.UserID,
		Year:         req.Year,
		HoursPerWeek: hours,
		WorkQuota:    quota,
		Mode:         leave.CountingMode(req.CountingMode),
	}, nil
}

// =============================================================================
// YEAR PARAMETERS
// =============================================================================

// ParametersDTO represents a per-year counting-convention override.
type ParametersDTO struct {
	ID           int64  `json:"id"`
	UserID       string `json:"user_id"`
	Year         int    `json:"year"`
	CountingMode string `json:"counting_mode"`
}

// SaveParametersRequest is the request to create or update year parameters.
type SaveParametersRequest struct {
	ID           int64  `json:"id,omitempty"`
	UserID       string `json:"user_id" validate:"required"`
	Year         int    `json:"year" validate:"required"`
	CountingMode string `json:"counting_mode" validate:"required,oneof=workdays workable_days"`
}

func toParametersDTO(p leave.YearParameters) ParametersDTO {
	return ParametersDTO{
		ID:           p.ID,
		UserID:       p.UserID,
		Year:         p.Year,
		CountingMode: string(p.Mode),
	}
}

// =============================================================================
// LEAVE PERIODS
// =============================================================================

// PeriodDTO represents a leave period with its derived day count.
type PeriodDTO struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	Start     string `json:"start"`
	StartHalf string `json:"start_half"`
	End       string `json:"end"`
	EndHalf   string `json:"end_half"`
	Type      string `json:"type"`
	CivilYear int    `json:"civil_year"`
	DayCount  string `json:"day_count"`
}

// SavePeriodRequest is the request to create or update a leave period.
// CivilYear and DayCount are derived server-side.
type SavePeriodRequest struct {
	ID        int64  `json:"id,omitempty"`
	UserID    string `json:"user_id" validate:"required"`
	Start     string `json:"start" validate:"required"`
	StartHalf string `json:"start_half" validate:"required,oneof=morning afternoon"`
	End       string `json:"end" validate:"required"`
	EndHalf   string `json:"end_half" validate:"required,oneof=morning afternoon"`
	Type      string `json:"type" validate:"required,oneof=annual rtt special sick other"`
}

func toPeriodDTO(p leave.LeavePeriod) PeriodDTO {
	return PeriodDTO{
		ID:        p.ID,
		UserID:    p.UserID,
		Start:     p.Start.Format(dateLayout),
		StartHalf: string(p.StartHalf),
		End:       p.End.Format(dateLayout),
		EndHalf:   string(p.EndHalf),
		Type:      string(p.Type),
		CivilYear: p.CivilYear,
		DayCount:  p.DayCount.String(),
	}
}

func (req SavePeriodRequest) toDomain() (leave.LeavePeriod, error) {
	start, err := time.Parse(dateLayout, req.Start)
	if err != nil {
		return leave.LeavePeriod{}, leave.ErrInvalidPeriod
	}
	end, err := time.Parse(dateLayout, req.End)
	if err != nil {
		return leave.LeavePeriod{}, leave.ErrInvalidPeriod
	}

	return leave.LeavePeriod{
		ID:        req.ID,
		UserID:    req.UserID,
		Start:     start,
		StartHalf: leave.HalfDay(req.StartHalf),
		End:       end,
		EndHalf:   leave.HalfDay(req.EndHalf),
		Type:      leave.LeaveType(req.Type),
	}, nil
}

// =============================================================================
// CALCULATION RESULTS
// =============================================================================

// FractionationDTO is the fractionation result for an agent and year.
type FractionationDTO struct {
	UserID                string `json:"user_id"`
	Year                  int    `json:"year"`
	DaysOutsideMainPeriod int    `json:"days_outside_main_period"`
	FractionationDays     int    `json:"fractionation_days"`
}

func toFractionationDTO(userID string, res fraction.Result) FractionationDTO {
	return FractionationDTO{
		UserID:                userID,
		Year:                  res.Year,
		DaysOutsideMainPeriod: res.DaysOutsideMainPeriod,
		FractionationDays:     res.FractionationDays,
	}
}

// Entry discriminators on calendar payload items, so frontends can render a
// mixed list of holidays, school breaks and leave periods from one response.
const (
	entryTypeHoliday     = "holiday"
	entryTypeSchoolBreak = "school_break"
	entryTypeLeave       = "leave"
)

// HolidayDTO is a public holiday in the year calendar.
type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// SchoolBreakDTO is a school vacation range in the year calendar.
type SchoolBreakDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Name  string `json:"name"`
	Type  string `json:"type"`
}

// CalendarPeriodDTO is a leave period as shown on an agent's calendar.
// InMainPeriod is true only when the whole range sits in May-October.
type CalendarPeriodDTO struct {
	ID           int64  `json:"id"`
	Start        string `json:"start"`
	End          string `json:"end"`
	LeaveType    string `json:"leave_type"`
	DayCount     string `json:"day_count"`
	InMainPeriod bool   `json:"in_main_period"`
	Type         string `json:"type"`
}

// CalendarDTO is the full year calendar: public holidays, school breaks and,
// on the per-agent endpoint, the agent's leave periods.
type CalendarDTO struct {
	Year         int                 `json:"year"`
	Holidays     []HolidayDTO        `json:"holidays"`
	SchoolBreaks []SchoolBreakDTO    `json:"school_breaks"`
	LeavePeriods []CalendarPeriodDTO `json:"leave_periods"`
}

func toCalendarDTO(year int, holidays []calendar.Holiday, breaks []calendar.SchoolBreak, periods []leave.LeavePeriod) CalendarDTO {
	dto := CalendarDTO{
		Year:         year,
		Holidays:     make([]HolidayDTO, 0, len(holidays)),
		SchoolBreaks: make([]SchoolBreakDTO, 0, len(breaks)),
		LeavePeriods: make([]CalendarPeriodDTO, 0, len(periods)),
	}
	for _, h := range holidays {
		dto.Holidays = append(dto.Holidays, HolidayDTO{
			Date: h.Date.Format(dateLayout),
			Name: h.Name,
			Type: entryTypeHoliday,
		})
	}
	for _, b := range breaks {
		dto.SchoolBreaks = append(dto.SchoolBreaks, SchoolBreakDTO{
			Start: b.Start.Format(dateLayout),
			End:   b.End.Format(dateLayout),
			Name:  b.Name,
			Type:  entryTypeSchoolBreak,
		})
	}
	for _, p := range periods {
		dto.LeavePeriods = append(dto.LeavePeriods, CalendarPeriodDTO{
			ID:           p.ID,
			Start:        p.Start.Format(dateLayout),
			End:          p.End.Format(dateLayout),
			LeaveType:    string(p.Type),
			DayCount:     p.DayCount.String(),
			InMainPeriod: calendar.IsInMainPeriod(p.Start) && calendar.IsInMainPeriod(p.End),
			Type:         entryTypeLeave,
		})
	}
	return dto
}

// EntitlementsDTO is the per-year entitlement summary for an agent.
type EntitlementsDTO struct {
	UserID                  string `json:"user_id"`
	Year                    int    `json:"year"`
	AnnualRTT               int    `json:"annual_rtt"`
	AnnualPaidLeave         string `json:"annual_paid_leave"`
	CountingMode            string `json:"counting_mode"`
	WorkedDaysSinceJanFirst int    `json:"worked_days_since_jan_first"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest is the request to load a demo scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
