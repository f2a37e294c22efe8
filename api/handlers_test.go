package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarivatoi/anwh-sub000/api"
	"github.com/jarivatoi/anwh-sub000/roster"
	"github.com/jarivatoi/anwh-sub000/shift"
	"github.com/jarivatoi/anwh-sub000/shift/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory, *api.Handler) {
	t.Helper()
	mem := store.NewMemory()
	h := api.NewHandler(mem, mem, nil)
	srv := httptest.NewServer(api.NewRouter(h, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv, mem, h
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// =============================================================================
// SCHEDULE ENDPOINTS
// =============================================================================

func TestPutScheduleDay_ConflictRejected(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/schedule/2025-03-08",
		map[string]any{"codes": []string{"MORNING", "SATURDAY_REGULAR"}})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPutScheduleDay_AdvisorySpecialWarning(t *testing.T) {
	// Direct edits are only warned about the special-date rule, never
	// refused.
	srv, mem, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/schedule/2025-03-05",
		map[string]any{"codes": []string{"MORNING"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	day := decode[api.ScheduleDayDTO](t, resp)
	assert.Equal(t, []string{"MORNING"}, day.Codes)
	assert.NotEmpty(t, day.Warnings)

	sched, err := mem.LoadSchedule(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []shift.Code{shift.CodeMorning}, sched["2025-03-05"])
}

func TestDeleteScheduleShift(t *testing.T) {
	srv, mem, _ := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, mem.SaveSchedule(ctx, shift.DaySchedule{"2025-03-05": {shift.CodeEvening}}))

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/schedule/2025-03-05/EVENING", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	sched, err := mem.LoadSchedule(ctx)
	require.NoError(t, err)
	assert.Empty(t, sched)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/schedule/2025-03-05/EVENING", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// PAYROLL ENDPOINT
// =============================================================================

func TestGetAmounts(t *testing.T) {
	srv, mem, h := newTestServer(t)
	ctx := context.Background()

	// Fixed clock: mid-March 2025, after the evening shift ended.
	h.Now = func() time.Time {
		return time.Date(2025, time.March, 11, 23, 0, 0, 0, time.UTC)
	}

	salary := decimal.NewFromInt(52000)
	require.NoError(t, mem.SaveSettings(ctx, shift.Settings{
		BasicSalary:  salary,
		HourlyRate:   shift.HourlyRate(salary),
		Combinations: shift.DefaultCombinations(),
	}))
	require.NoError(t, mem.SaveSchedule(ctx, shift.DaySchedule{
		"2025-03-10": {shift.CodeEvening}, // ended: 5.5h x 300
		"2025-03-20": {shift.CodeEvening}, // future: total only
	}))

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/amounts?year=2025&month=3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	amounts := decode[api.AmountsDTO](t, resp)
	assert.Equal(t, "3300.00", amounts.Total)
	assert.Equal(t, "1650.00", amounts.MonthToDate)
}

// =============================================================================
// ROSTER & RECONCILIATION ENDPOINTS
// =============================================================================

func TestCreateRosterEntry_UnknownLabelRejected(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/roster", map[string]any{
		"date":          "2025-03-08",
		"shift_label":   "Mystery Shift",
		"assigned_name": "SMITH",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateRosterEntry_LegacyAnnotationPromoted(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/roster", map[string]any{
		"date":          "2025-03-05",
		"shift_label":   "Morning Shift (9-4)",
		"assigned_name": "SMITH",
		"description":   "swap cover. Special work @ 05/03/2025",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	entry := decode[api.RosterEntryDTO](t, resp)
	assert.Equal(t, "05/03/2025", entry.SpecialAnnotation)
}

func TestReconcileEndpoint_SaturdayMorningScenario(t *testing.T) {
	srv, mem, _ := newTestServer(t)
	ctx := context.Background()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/reconcile", api.ReconcileRequest{
		Owner: "SMITH",
		Events: []api.ChangeEventDTO{{
			Action:       "added",
			Date:         "2025-03-08",
			ShiftLabel:   "Morning Shift (9-4)",
			AssignedName: "SMITH",
		}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[api.ReconcileResponse](t, resp)
	require.Len(t, out.Results, 1)
	assert.True(t, out.Results[0].Applied)
	assert.Equal(t, []string{"MORNING"}, out.Schedule["2025-03-08"])
	assert.True(t, out.SpecialDates["2025-03-08"])

	special, err := mem.LoadSpecialDates(ctx)
	require.NoError(t, err)
	assert.True(t, special.IsSpecial("2025-03-08"))
}

func TestReconcileEndpoint_ConflictReported(t *testing.T) {
	srv, mem, _ := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, mem.SaveSchedule(ctx,
		shift.DaySchedule{"2025-03-08": {shift.CodeSaturdayRegular}}))

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/reconcile", api.ReconcileRequest{
		Owner: "SMITH",
		Events: []api.ChangeEventDTO{{
			Action:       "added",
			Date:         "2025-03-08",
			ShiftLabel:   "Morning Shift (9-4)",
			AssignedName: "SMITH",
		}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[api.ReconcileResponse](t, resp)
	require.Len(t, out.Results, 1)
	assert.False(t, out.Results[0].Applied)
	assert.Equal(t, string(roster.DropConflict), out.Results[0].Reason)
	assert.Equal(t, []string{"SATURDAY_REGULAR"}, out.Schedule["2025-03-08"])
}

func TestStaffNames(t *testing.T) {
	srv, mem, _ := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, mem.SaveEntry(ctx, roster.Entry{
		ID: "e1", Date: "2025-03-08", ShiftLabel: "Morning Shift (9-4)", AssignedName: "Smith (R)",
	}))
	require.NoError(t, mem.SaveEntry(ctx, roster.Entry{
		ID: "e2", Date: "2025-03-09", ShiftLabel: "Evening Shift (4-10)", AssignedName: "ADAMS",
	}))

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/staff/names", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	names := decode[[]string](t, resp)
	assert.Equal(t, []string{"ADAMS", "SMITH", "SMITH(R)"}, names)
}
