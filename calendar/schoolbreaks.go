package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// =============================================================================
// SCHOOL BREAKS (zone B)
// =============================================================================

// SchoolBreak is a school vacation period shown on the calendar.
type SchoolBreak struct {
	Start time.Time
	End   time.Time
	Name  string
}

// BreakData holds school-break periods keyed by civil year.
// The empty map is a valid data set: years without data simply have no breaks.
type BreakData map[int][]SchoolBreak

// ForYear returns the breaks of a year, or nil when no data is loaded.
func (b BreakData) ForYear(year int) []SchoolBreak {
	return b[year]
}

type breakFileEntry struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Name  string `json:"name"`
}

// LoadSchoolBreaks reads break data from a JSON file of the form:
//
//	{"2024": [{"start": "2024-02-10", "end": "2024-02-25", "name": "Vacances d'hiver"}]}
//
// An empty path returns an empty data set.
func LoadSchoolBreaks(path string) (BreakData, error) {
	if path == "" {
		return BreakData{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read school breaks file: %w", err)
	}

	var byYear map[string][]breakFileEntry
	if err := json.Unmarshal(raw, &byYear); err != nil {
		return nil, fmt.Errorf("failed to parse school breaks file: %w", err)
	}

	data := make(BreakData, len(byYear))
	for yearStr, entries := range byYear {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("invalid year key %q in school breaks file", yearStr)
		}
		for _, e := range entries {
			start, err := time.Parse("2006-01-02", e.Start)
			if err != nil {
				return nil, fmt.Errorf("invalid start date %q for year %d: %w", e.Start, year, err)
			}
			end, err := time.Parse("2006-01-02", e.End)
			if err != nil {
				return nil, fmt.Errorf("invalid end date %q for year %d: %w", e.End, year, err)
			}
			if end.Before(start) {
				return nil, fmt.Errorf("school break %q ends before it starts", e.Name)
			}
			data[year] = append(data[year], SchoolBreak{Start: start, End: end, Name: e.Name})
		}
	}
	return data, nil
}
