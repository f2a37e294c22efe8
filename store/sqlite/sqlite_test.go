package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarivatoi/anwh-sub000/roster"
	"github.com/jarivatoi/anwh-sub000/shift"
	"github.com/jarivatoi/anwh-sub000/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// =============================================================================
// SNAPSHOT ROUND TRIPS
// =============================================================================

func TestStore_ScheduleRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	in := shift.DaySchedule{
		"2025-03-08": {shift.CodeMorning},
		"2025-03-10": {shift.CodeEvening, shift.CodeNight},
	}
	require.NoError(t, st.SaveSchedule(ctx, in))

	out, err := st.LoadSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// Replacement semantics: a save with a removed date drops its row.
	delete(in, "2025-03-08")
	require.NoError(t, st.SaveSchedule(ctx, in))
	out, err = st.LoadSchedule(ctx)
	require.NoError(t, err)
	_, exists := out["2025-03-08"]
	assert.False(t, exists)
}

func TestStore_SpecialDatesRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveSpecialDates(ctx, shift.SpecialDates{"2025-03-08": true}))
	out, err := st.LoadSpecialDates(ctx)
	require.NoError(t, err)
	assert.True(t, out.IsSpecial("2025-03-08"))
	assert.False(t, out.IsSpecial("2025-03-09"))
}

func TestStore_SettingsRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// Defaults before anything is saved.
	defaults, err := st.LoadSettings(ctx)
	require.NoError(t, err)
	assert.True(t, defaults.BasicSalary.IsPositive())
	assert.NotEmpty(t, defaults.Combinations)

	salary := decimal.NewFromInt(52000)
	in := shift.Settings{
		BasicSalary:  salary,
		HourlyRate:   shift.HourlyRate(salary),
		Combinations: shift.DefaultCombinations(),
	}
	require.NoError(t, st.SaveSettings(ctx, in))

	out, err := st.LoadSettings(ctx)
	require.NoError(t, err)
	assert.True(t, out.BasicSalary.Equal(salary))
	assert.True(t, out.HourlyRate.Equal(decimal.NewFromInt(300)))
	assert.Len(t, out.Combinations, len(in.Combinations))

	combo, ok := out.Combination("MORNING+EVENING")
	require.True(t, ok)
	assert.True(t, combo.Hours.Equal(decimal.NewFromInt(12)))
}

func TestStore_MonthlySalaryRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// Absent override reads as zero, meaning "defer to global salary".
	amt, err := st.LoadMonthlySalary(ctx, 2025, time.March)
	require.NoError(t, err)
	assert.True(t, amt.IsZero())

	require.NoError(t, st.SaveMonthlySalary(ctx, 2025, time.March, decimal.NewFromInt(26000)))
	require.NoError(t, st.SaveMonthlySalary(ctx, 2025, time.March, decimal.NewFromInt(27000)))

	amt, err = st.LoadMonthlySalary(ctx, 2025, time.March)
	require.NoError(t, err)
	assert.True(t, amt.Equal(decimal.NewFromInt(27000)), "last save wins")
}

// =============================================================================
// ROSTER LEDGER
// =============================================================================

func TestStore_RosterEntries(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	e := roster.Entry{
		ID:           "e1",
		Date:         "2025-03-08",
		ShiftLabel:   "Morning Shift (9-4)",
		AssignedName: "SMITH",
		EditorName:   "ADAMS",
	}
	require.NoError(t, st.SaveEntry(ctx, e))

	// Upsert on same ID.
	e.SpecialAnnotation = "08/03/2025"
	require.NoError(t, st.SaveEntry(ctx, e))

	entries, err := st.FetchAllEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "08/03/2025", entries[0].SpecialAnnotation)

	require.NoError(t, st.DeleteEntry(ctx, "e1"))
	err = st.DeleteEntry(ctx, "e1")
	assert.ErrorIs(t, err, shift.ErrNotFound)
}
