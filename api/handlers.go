/*
handlers.go - HTTP API handlers for the schedule and payroll engine

PURPOSE:
  Exposes the calendar, settings, payroll accrual query, and roster
  reconciliation via REST. Handlers parse HTTP, delegate to the domain
  packages, and serialize responses; no business rules live here beyond
  input validation.

ENDPOINTS:
  Schedule:
    GET    /api/schedule                     Full private calendar
    PUT    /api/schedule/{date}              Replace one date's shift set
    DELETE /api/schedule/{date}/{code}       Remove one shift

  Special dates:
    GET    /api/special-dates
    PUT    /api/special-dates/{date}

  Settings & salary:
    GET/PUT /api/settings
    GET/PUT /api/salary/{year}/{month}

  Payroll:
    GET    /api/amounts?year=&month=         Total + month-to-date

  Roster:
    GET    /api/roster                       All ledger entries
    POST   /api/roster                       Create/update an entry
    DELETE /api/roster/{id}
    POST   /api/reconcile                    Apply ordered change events
    GET    /api/staff/names                  Derived assignable names

ERROR HANDLING:
  - 400: invalid dates, unknown codes/labels, malformed bodies
  - 404: missing roster entries
  - 409: conflict-rule violations on direct edits
  - 500: store failures (no mutation occurred; retry is safe)

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/jarivatoi/anwh-sub000/payroll"
	"github.com/jarivatoi/anwh-sub000/roster"
	"github.com/jarivatoi/anwh-sub000/shift"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Calendar shift.Store
	Roster   roster.Store
	Logger   *slog.Logger

	// DefaultOwner is the identity used for reconciliation when a request
	// does not name one.
	DefaultOwner string

	// Now supplies the current instant for month-to-date gating.
	// Overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// NewHandler creates a handler over the given stores.
func NewHandler(calendar shift.Store, rosterStore roster.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Calendar: calendar,
		Roster:   rosterStore,
		Logger:   logger,
		Now:      time.Now,
	}
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// GetSchedule returns the whole private calendar.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.Calendar.LoadSchedule(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, scheduleMap(schedule))
}

// PutScheduleDay replaces one date's shift set (direct user edit).
// The conflict rule is enforced; the special-date rule is advisory here
// and surfaces as a warning instead of a refusal.
func (h *Handler) PutScheduleDay(w http.ResponseWriter, r *http.Request) {
	dateKey := chi.URLParam(r, "date")
	date, err := shift.ParseDate(dateKey)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	var req ScheduleDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	codes := make([]shift.Code, 0, len(req.Codes))
	for _, raw := range req.Codes {
		code := shift.Code(raw)
		if !code.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown shift code %q", raw), nil)
			return
		}
		codes = append(codes, code)
	}
	if a, b, violated := shift.Violation(codes); violated {
		writeError(w, http.StatusConflict, "Shift conflict",
			&shift.ConflictError{Date: dateKey, Existing: a, Candidate: b})
		return
	}

	schedule, err := h.Calendar.LoadSchedule(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule", err)
		return
	}
	special, err := h.Calendar.LoadSpecialDates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load special dates", err)
		return
	}

	if len(codes) == 0 {
		delete(schedule, dateKey)
	} else {
		schedule[dateKey] = codes
	}
	if err := h.Calendar.SaveSchedule(r.Context(), schedule); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save schedule", err)
		return
	}

	var warnings []string
	for _, code := range codes {
		if shift.RequiresSpecial(date, code) && !special.IsSpecial(dateKey) {
			warnings = append(warnings,
				fmt.Sprintf("%s on %s requires the date to be flagged special", code, dateKey))
		}
	}

	writeJSON(w, http.StatusOK, ScheduleDayDTO{
		Date:     dateKey,
		Codes:    codeStrings(codes),
		Special:  special.IsSpecial(dateKey),
		Warnings: warnings,
	})
}

// DeleteScheduleShift removes one shift from one date.
func (h *Handler) DeleteScheduleShift(w http.ResponseWriter, r *http.Request) {
	dateKey := chi.URLParam(r, "date")
	code := shift.Code(chi.URLParam(r, "code"))
	if !code.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown shift code %q", code), nil)
		return
	}

	schedule, err := h.Calendar.LoadSchedule(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule", err)
		return
	}
	if !schedule.Remove(dateKey, code) {
		writeError(w, http.StatusNotFound, "Shift not assigned on that date", nil)
		return
	}
	if err := h.Calendar.SaveSchedule(r.Context(), schedule); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, ScheduleDayDTO{Date: dateKey, Codes: codeStrings(schedule[dateKey])})
}

// =============================================================================
// SPECIAL DATE HANDLERS
// =============================================================================

// GetSpecialDates returns every flagged date.
func (h *Handler) GetSpecialDates(w http.ResponseWriter, r *http.Request) {
	special, err := h.Calendar.LoadSpecialDates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load special dates", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool(special))
}

// PutSpecialDate sets or clears one date's flag. Clearing is only ever an
// explicit user action; reconciliation never unsets flags.
func (h *Handler) PutSpecialDate(w http.ResponseWriter, r *http.Request) {
	dateKey := chi.URLParam(r, "date")
	if _, err := shift.ParseDate(dateKey); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	var req SpecialDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	special, err := h.Calendar.LoadSpecialDates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load special dates", err)
		return
	}
	if req.Special {
		special[dateKey] = true
	} else {
		delete(special, dateKey)
	}
	if err := h.Calendar.SaveSpecialDates(r.Context(), special); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save special dates", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{dateKey: req.Special})
}

// =============================================================================
// SETTINGS & SALARY HANDLERS
// =============================================================================

// GetSettings returns the pay configuration.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Calendar.LoadSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsDTO(settings))
}

// PutSettings replaces the pay configuration. The hourly rate is derived
// from the salary, never accepted from the client.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	salary, err := decimal.NewFromString(req.BasicSalary)
	if err != nil || salary.IsNegative() {
		writeError(w, http.StatusBadRequest, "Invalid basic_salary", err)
		return
	}

	settings := shift.Settings{
		BasicSalary: salary,
		HourlyRate:  shift.HourlyRate(salary),
	}
	for _, c := range req.Combinations {
		hrs, err := decimal.NewFromString(c.Hours)
		if err != nil || hrs.IsNegative() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid hours for combination %q", c.Key), err)
			return
		}
		settings.Combinations = append(settings.Combinations, shift.Combination{Key: c.Key, Hours: hrs})
	}
	if len(settings.Combinations) == 0 {
		settings.Combinations = shift.DefaultCombinations()
	}

	if err := h.Calendar.SaveSettings(r.Context(), settings); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsDTO(settings))
}

// GetMonthlySalary returns one month's override (zero when unset).
func (h *Handler) GetMonthlySalary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}
	amount, err := h.Calendar.LoadMonthlySalary(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load monthly salary", err)
		return
	}
	writeJSON(w, http.StatusOK, MonthlySalaryDTO{Year: year, Month: int(month), Amount: amount.String()})
}

// PutMonthlySalary stores one month's override.
func (h *Handler) PutMonthlySalary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}
	var req MonthlySalaryDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	if err := h.Calendar.SaveMonthlySalary(r.Context(), year, month, amount); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save monthly salary", err)
		return
	}
	writeJSON(w, http.StatusOK, MonthlySalaryDTO{Year: year, Month: int(month), Amount: amount.String()})
}

// =============================================================================
// PAYROLL HANDLER
// =============================================================================

// GetAmounts runs the accrual query for a viewed month.
// GET /api/amounts?year=2025&month=3
func (h *Handler) GetAmounts(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	monthNum, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}
	month := time.Month(monthNum)

	schedule, err := h.Calendar.LoadSchedule(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule", err)
		return
	}
	settings, err := h.Calendar.LoadSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	override, err := h.Calendar.LoadMonthlySalary(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load monthly salary", err)
		return
	}

	amounts := payroll.Compute(payroll.Input{
		Schedule: schedule,
		Settings: settings,
		Override: override,
		Year:     year,
		Month:    month,
		Now:      h.Now(),
	})

	writeJSON(w, http.StatusOK, AmountsDTO{
		Year:        year,
		Month:       monthNum,
		Total:       amounts.Total.StringFixed(2),
		MonthToDate: amounts.MonthToDate.StringFixed(2),
	})
}

// =============================================================================
// ROSTER HANDLERS
// =============================================================================

// ListRoster returns every ledger entry.
func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Roster.FetchAllEntries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch roster", err)
		return
	}
	dtos := make([]RosterEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateRosterEntry creates or updates a roster entry. A legacy embedded
// special-work marker in the annotation-free description is promoted to
// the structured field at this edge.
func (h *Handler) CreateRosterEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RosterEntryDTO
		Description string `json:"description,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if _, err := shift.ParseDate(req.Date); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}
	if _, ok := roster.ResolveLabel(req.ShiftLabel); !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown shift label %q", req.ShiftLabel), shift.ErrUnknownShiftLabel)
		return
	}

	annotation := req.SpecialAnnotation
	if annotation == "" {
		annotation = roster.ExtractSpecialAnnotation(req.Description)
	}

	entry := roster.Entry{
		ID:                req.ID,
		Date:              req.Date,
		ShiftLabel:        req.ShiftLabel,
		AssignedName:      req.AssignedName,
		EditorName:        req.EditorName,
		SpecialAnnotation: annotation,
	}
	if err := h.Roster.SaveEntry(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save roster entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryDTO(entry))
}

// DeleteRosterEntry removes one ledger entry.
func (h *Handler) DeleteRosterEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Roster.DeleteEntry(r.Context(), id)
	if errors.Is(err, shift.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Roster entry not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete roster entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reconcile applies an ordered batch of change events to the owner's
// calendar. Events are processed strictly in order; each applied event is
// persisted before the next is examined.
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Owner == "" {
		req.Owner = h.DefaultOwner
	}
	if req.Owner == "" {
		writeError(w, http.StatusBadRequest, "Missing owner identity", nil)
		return
	}

	events := make([]roster.ChangeEvent, len(req.Events))
	for i, e := range req.Events {
		action := roster.Action(e.Action)
		switch action {
		case roster.ActionAdded, roster.ActionUpdated, roster.ActionRemoved:
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown action %q", e.Action), nil)
			return
		}
		events[i] = roster.ChangeEvent{
			Action:       action,
			Date:         e.Date,
			ShiftLabel:   e.ShiftLabel,
			AssignedName: e.AssignedName,
			EditorName:   e.EditorName,
		}
	}

	proc := &roster.Processor{
		Owner:    req.Owner,
		Calendar: h.Calendar,
		Roster:   h.Roster,
		Logger:   h.Logger,
	}
	results, err := proc.Apply(r.Context(), events, roster.Options{
		SuppressNotifications: req.SuppressNotifications,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Reconciliation aborted", err)
		return
	}

	schedule, err := h.Calendar.LoadSchedule(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule", err)
		return
	}
	special, err := h.Calendar.LoadSpecialDates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load special dates", err)
		return
	}

	resp := ReconcileResponse{
		Results:      make([]EventResultDTO, len(results)),
		Schedule:     scheduleMap(schedule),
		SpecialDates: special,
	}
	for i, res := range results {
		resp.Results[i] = EventResultDTO{
			Date:    res.Event.Date,
			Action:  string(res.Event.Action),
			Applied: res.Applied,
			Reason:  string(res.Reason),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// StaffNames returns the sorted list of names assignable on the roster,
// derived from observed entries.
func (h *Handler) StaffNames(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Roster.FetchAllEntries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch roster", err)
		return
	}
	names := shift.DeriveAvailableNames(roster.StaffFromEntries(entries))
	writeJSON(w, http.StatusOK, names)
}

// =============================================================================
// HELPERS
// =============================================================================

func yearMonthParams(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return 0, 0, false
	}
	monthNum, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return 0, 0, false
	}
	return year, time.Month(monthNum), true
}

func scheduleMap(s shift.DaySchedule) map[string][]string {
	out := make(map[string][]string, len(s))
	for date, codes := range s {
		out[date] = codeStrings(codes)
	}
	return out
}

func codeStrings(codes []shift.Code) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}
