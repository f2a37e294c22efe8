/*
Package shift provides the core shift-schedule domain model.

PURPOSE:
  This package contains the shared vocabulary for the whole system: shift
  codes and their clock windows, the per-person calendar (DaySchedule), the
  special-date flags, pay settings with combination pricing, and the store
  interfaces that persist all of it.

KEY CONCEPTS IN THIS FILE (types.go):
  - Code: A shift identifier (MORNING, EVENING, SATURDAY_REGULAR, NIGHT)
  - DaySchedule: ISO-date -> set of codes for one person's calendar
  - SpecialDates: ISO-date -> flagged-special marker
  - Combination: pricing rule for one or more codes on the same date
  - Settings: salary, hourly rate, and the combination table in effect

DESIGN PRINCIPLES:
  1. Precision: shopspring/decimal for all money and hours, never float64
  2. Absence over emptiness: a date with no shifts has no map entry
  3. Pure core: nothing in this package performs I/O

SEE ALSO:
  - taxonomy.go: static clock windows and combination keys
  - rules.go: conflict and special-date predicates
  - store.go: persistence interfaces
*/
package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SHIFT CODES
// =============================================================================

// Code identifies one of the fixed shift types.
type Code string

const (
	CodeMorning         Code = "MORNING"
	CodeEvening         Code = "EVENING"
	CodeSaturdayRegular Code = "SATURDAY_REGULAR"
	CodeNight           Code = "NIGHT"
)

// AllCodes lists every shift code in canonical order.
// The order is also used when building combination keys.
func AllCodes() []Code {
	return []Code{CodeMorning, CodeEvening, CodeSaturdayRegular, CodeNight}
}

// Valid reports whether c is one of the known shift codes.
func (c Code) Valid() bool {
	_, ok := windows[c]
	return ok
}

// =============================================================================
// DATES
// =============================================================================

// DateLayout is the ISO format used for all calendar keys.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar key.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders t as an ISO calendar key.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// =============================================================================
// DAY SCHEDULE - one person's private calendar
// =============================================================================

// DaySchedule maps an ISO date to the set of shift codes assigned that day.
// A date with no shifts is absent from the map, never present with an empty
// set. The conflict rule (rules.go) is an invariant over every value.
type DaySchedule map[string][]Code

// Codes returns the shift set for a date (nil if the date is absent).
func (s DaySchedule) Codes(date string) []Code {
	return s[date]
}

// Has reports whether code is assigned on date.
func (s DaySchedule) Has(date string, code Code) bool {
	for _, c := range s[date] {
		if c == code {
			return true
		}
	}
	return false
}

// Add assigns code on date if not already present.
// It does NOT check the conflict rule; callers enforce it first.
func (s DaySchedule) Add(date string, code Code) {
	if s.Has(date, code) {
		return
	}
	s[date] = append(s[date], code)
}

// Remove unassigns code on date. When the date's set becomes empty the
// date key is deleted entirely.
func (s DaySchedule) Remove(date string, code Code) bool {
	codes := s[date]
	for i, c := range codes {
		if c == code {
			codes = append(codes[:i], codes[i+1:]...)
			if len(codes) == 0 {
				delete(s, date)
			} else {
				s[date] = codes
			}
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (s DaySchedule) Clone() DaySchedule {
	out := make(DaySchedule, len(s))
	for date, codes := range s {
		out[date] = append([]Code(nil), codes...)
	}
	return out
}

// =============================================================================
// SPECIAL DATES
// =============================================================================

// SpecialDates maps an ISO date to its special flag. Absence means not
// special. Independent of DaySchedule: a date may be special with no
// shifts, or carry shifts without being special.
type SpecialDates map[string]bool

// IsSpecial reports whether date is flagged.
func (s SpecialDates) IsSpecial(date string) bool {
	return s[date]
}

// Clone returns a deep copy.
func (s SpecialDates) Clone() SpecialDates {
	out := make(SpecialDates, len(s))
	for date, v := range s {
		out[date] = v
	}
	return out
}

// =============================================================================
// COMBINATIONS & SETTINGS
// =============================================================================

// Combination is a pricing rule covering one or more shift codes on the
// same date. Key is either a single code ("MORNING") or a canonical
// multi-code key ("MORNING+EVENING", see CombinationKey). Hours for a
// multi-code combination is NOT necessarily the sum of its components;
// premiums and discounts are expressed through the difference.
type Combination struct {
	Key   string
	Hours decimal.Decimal
}

// Settings holds the pay configuration the accrual engine consumes.
type Settings struct {
	// BasicSalary is the global monthly salary.
	BasicSalary decimal.Decimal

	// HourlyRate is the derived rate (BasicSalary x 12 / 52 / 40). Kept
	// persisted so the engine has a fallback when no salary applies.
	HourlyRate decimal.Decimal

	// Combinations is the pricing table in effect.
	Combinations []Combination
}

// Combination looks up a pricing rule by key.
func (s Settings) Combination(key string) (Combination, bool) {
	for _, c := range s.Combinations {
		if c.Key == key {
			return c, true
		}
	}
	return Combination{}, false
}
