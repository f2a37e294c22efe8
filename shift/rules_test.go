package shift_test

import (
	"testing"
	"time"

	"github.com/jarivatoi/anwh-sub000/shift"
)

// =============================================================================
// CONFLICT RULE TESTS
// =============================================================================

func TestCanCoexist_ForbiddenPairs(t *testing.T) {
	// GIVEN: the two mutually exclusive pairs
	// WHEN: checking a candidate against a date holding its partner
	// THEN: the addition is rejected, in both directions

	cases := []struct {
		existing  shift.Code
		candidate shift.Code
	}{
		{shift.CodeMorning, shift.CodeSaturdayRegular},
		{shift.CodeSaturdayRegular, shift.CodeMorning},
		{shift.CodeSaturdayRegular, shift.CodeEvening},
		{shift.CodeEvening, shift.CodeSaturdayRegular},
	}
	for _, c := range cases {
		if shift.CanCoexist([]shift.Code{c.existing}, c.candidate) {
			t.Errorf("%s should not coexist with %s", c.candidate, c.existing)
		}
	}
}

func TestCanCoexist_NightPairsWithEverything(t *testing.T) {
	// GIVEN: NIGHT assigned on a date
	// WHEN: adding any other code (and vice versa)
	// THEN: always permitted

	for _, other := range []shift.Code{shift.CodeMorning, shift.CodeEvening, shift.CodeSaturdayRegular} {
		if !shift.CanCoexist([]shift.Code{shift.CodeNight}, other) {
			t.Errorf("%s should coexist with NIGHT", other)
		}
		if !shift.CanCoexist([]shift.Code{other}, shift.CodeNight) {
			t.Errorf("NIGHT should coexist with %s", other)
		}
	}
}

func TestCanCoexist_MorningEveningAllowed(t *testing.T) {
	if !shift.CanCoexist([]shift.Code{shift.CodeMorning}, shift.CodeEvening) {
		t.Error("MORNING and EVENING should coexist")
	}
}

func TestViolation_DetectsForbiddenSet(t *testing.T) {
	// GIVEN: a shift set that slipped past the rule
	// WHEN: verifying the invariant
	// THEN: the forbidden pair is reported

	_, _, violated := shift.Violation([]shift.Code{shift.CodeMorning, shift.CodeNight, shift.CodeSaturdayRegular})
	if !violated {
		t.Error("expected violation for MORNING+SATURDAY_REGULAR")
	}

	_, _, violated = shift.Violation([]shift.Code{shift.CodeMorning, shift.CodeEvening, shift.CodeNight})
	if violated {
		t.Error("MORNING+EVENING+NIGHT is a legal set")
	}
}

// =============================================================================
// SPECIAL-DATE RULE TESTS
// =============================================================================

func TestRequiresSpecial_MorningByWeekday(t *testing.T) {
	// GIVEN: a MORNING shift
	// WHEN: checking each day of one week (2025-03-02 is a Sunday)
	// THEN: every day requires the flag except Sunday

	sunday := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset < 7; offset++ {
		date := sunday.AddDate(0, 0, offset)
		want := date.Weekday() != time.Sunday
		if got := shift.RequiresSpecial(date, shift.CodeMorning); got != want {
			t.Errorf("%s (%s): requires=%v, want %v", date.Format("2006-01-02"), date.Weekday(), got, want)
		}
	}
}

func TestRequiresSpecial_OnlyMorning(t *testing.T) {
	// 2025-03-08 is a Saturday
	saturday := time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)
	for _, code := range []shift.Code{shift.CodeEvening, shift.CodeSaturdayRegular, shift.CodeNight} {
		if shift.RequiresSpecial(saturday, code) {
			t.Errorf("%s should never require the special flag", code)
		}
	}
}

// =============================================================================
// TAXONOMY TESTS
// =============================================================================

func TestCombinationKey_CanonicalOrder(t *testing.T) {
	// GIVEN: codes in arbitrary order with duplicates
	// WHEN: building the pricing key
	// THEN: de-duplicated, canonical order, "+"-joined

	got := shift.CombinationKey([]shift.Code{shift.CodeNight, shift.CodeMorning, shift.CodeEvening, shift.CodeMorning})
	if got != "MORNING+EVENING+NIGHT" {
		t.Errorf("got %q, want MORNING+EVENING+NIGHT", got)
	}

	if got := shift.CombinationKey([]shift.Code{shift.CodeEvening}); got != "EVENING" {
		t.Errorf("single code key: got %q", got)
	}
}

func TestWindowFor_OnlyNightCrossesMidnight(t *testing.T) {
	crossing := 0
	for _, code := range shift.AllCodes() {
		w, ok := shift.WindowFor(code)
		if !ok {
			t.Fatalf("missing window for %s", code)
		}
		if w.CrossesMidnight {
			crossing++
			if code != shift.CodeNight {
				t.Errorf("%s should not cross midnight", code)
			}
		}
	}
	if crossing != 1 {
		t.Errorf("exactly one code must cross midnight, got %d", crossing)
	}
}

// =============================================================================
// DAY SCHEDULE TESTS
// =============================================================================

func TestDaySchedule_RemoveDeletesEmptyDate(t *testing.T) {
	// GIVEN: a date with a single shift
	// WHEN: removing it
	// THEN: the date key is gone, not present-empty

	s := shift.DaySchedule{"2025-03-08": {shift.CodeMorning}}
	if !s.Remove("2025-03-08", shift.CodeMorning) {
		t.Fatal("remove should report the code was present")
	}
	if _, exists := s["2025-03-08"]; exists {
		t.Error("emptied date key should be deleted")
	}
	if s.Remove("2025-03-08", shift.CodeMorning) {
		t.Error("removing an absent code should report false")
	}
}

func TestDaySchedule_AddIsSetLike(t *testing.T) {
	s := shift.DaySchedule{}
	s.Add("2025-03-08", shift.CodeNight)
	s.Add("2025-03-08", shift.CodeNight)
	if len(s["2025-03-08"]) != 1 {
		t.Errorf("duplicate add should be a no-op, got %v", s["2025-03-08"])
	}
}

func TestDaySchedule_CloneIsDeep(t *testing.T) {
	s := shift.DaySchedule{"2025-03-08": {shift.CodeMorning}}
	c := s.Clone()
	c.Add("2025-03-08", shift.CodeEvening)
	if len(s["2025-03-08"]) != 1 {
		t.Error("mutating the clone leaked into the original")
	}
}
