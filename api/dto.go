/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/jarivatoi/anwh-sub000/roster"
	"github.com/jarivatoi/anwh-sub000/shift"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ScheduleDayRequest replaces one date's shift set.
type ScheduleDayRequest struct {
	Codes []string `json:"codes"`
}

// ScheduleDayDTO is one date's resulting state, with advisory warnings
// (e.g. a MORNING shift on a date not flagged special).
type ScheduleDayDTO struct {
	Date     string   `json:"date"`
	Codes    []string `json:"codes"`
	Special  bool     `json:"special"`
	Warnings []string `json:"warnings,omitempty"`
}

// SpecialDateRequest sets or clears one date's special flag.
type SpecialDateRequest struct {
	Special bool `json:"special"`
}

// SettingsDTO mirrors shift.Settings with string decimals.
type SettingsDTO struct {
	BasicSalary  string           `json:"basic_salary"`
	HourlyRate   string           `json:"hourly_rate"`
	Combinations []CombinationDTO `json:"combinations"`
}

type CombinationDTO struct {
	Key   string `json:"key"`
	Hours string `json:"hours"`
}

// MonthlySalaryDTO carries one month's salary override.
type MonthlySalaryDTO struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Amount string `json:"amount"`
}

// AmountsDTO is the accrual query result.
type AmountsDTO struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Total       string `json:"total_amount"`
	MonthToDate string `json:"month_to_date_amount"`
}

// RosterEntryDTO represents one roster ledger row.
type RosterEntryDTO struct {
	ID                string `json:"id"`
	Date              string `json:"date"`
	ShiftLabel        string `json:"shift_label"`
	AssignedName      string `json:"assigned_name"`
	EditorName        string `json:"editor_name,omitempty"`
	SpecialAnnotation string `json:"special_annotation,omitempty"`
}

// ReconcileRequest applies an ordered batch of roster change events to
// the owner's calendar.
type ReconcileRequest struct {
	Owner                 string           `json:"owner"`
	SuppressNotifications bool             `json:"suppress_notifications"`
	Events                []ChangeEventDTO `json:"events"`
}

type ChangeEventDTO struct {
	Action       string `json:"action"`
	Date         string `json:"date"`
	ShiftLabel   string `json:"shift_label"`
	AssignedName string `json:"assigned_name"`
	EditorName   string `json:"editor_name,omitempty"`
}

// ReconcileResponse reports per-event outcomes plus the final snapshots.
type ReconcileResponse struct {
	Results      []EventResultDTO    `json:"results"`
	Schedule     map[string][]string `json:"schedule"`
	SpecialDates map[string]bool     `json:"special_dates"`
}

type EventResultDTO struct {
	Date    string `json:"date"`
	Action  string `json:"action"`
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// HELPERS
// =============================================================================

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

func toSettingsDTO(s shift.Settings) SettingsDTO {
	dto := SettingsDTO{
		BasicSalary:  s.BasicSalary.String(),
		HourlyRate:   s.HourlyRate.String(),
		Combinations: make([]CombinationDTO, len(s.Combinations)),
	}
	for i, c := range s.Combinations {
		dto.Combinations[i] = CombinationDTO{Key: c.Key, Hours: c.Hours.String()}
	}
	return dto
}

func toEntryDTO(e roster.Entry) RosterEntryDTO {
	return RosterEntryDTO{
		ID:                e.ID,
		Date:              e.Date,
		ShiftLabel:        e.ShiftLabel,
		AssignedName:      e.AssignedName,
		EditorName:        e.EditorName,
		SpecialAnnotation: e.SpecialAnnotation,
	}
}
