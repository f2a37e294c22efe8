/*
Package payroll computes salary amounts from a schedule snapshot.

PURPOSE:
  Pure accrual engine: given one person's calendar, the settings in
  effect, an optional per-month salary override, and the current instant,
  it produces the month's total amount and the month-to-date amount.

KEY RULES:
  Effective rate:
    override salary if set, else the global salary but only for the
    current real year, else zero; a positive salary derives the rate
    (x12 / 52 / 40), otherwise the persisted hourly rate is the fallback.

  Combination pricing:
    Each code's single-combination hours accrue first. When a date holds
    two or more codes and a multi-code combination exists, the engine adds
    a correction delta (combo hours minus the singles already counted).
    This makes combos non-additive without double counting.

  Month-to-date gating:
    Only evaluated when viewing the current real month. An amount counts
    once its shift has actually ended: wall-clock end time on the shift's
    date, or 09:00 the following day for the midnight-crossing night
    shift. A combo delta counts only when every component has ended.

  The engine never fails: unknown dates, missing combinations, and zero
  rates simply contribute nothing.

SEE ALSO:
  - shift/taxonomy.go: clock windows and combination keys
  - roster/reconcile.go: writes the schedule this engine reads
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jarivatoi/anwh-sub000/shift"
)

// =============================================================================
// INPUT / OUTPUT
// =============================================================================

// Input is everything Compute needs. It is a value snapshot: Compute
// performs no I/O and never mutates its inputs.
type Input struct {
	Schedule shift.DaySchedule
	Settings shift.Settings

	// Override is the per-month salary override; zero means none.
	Override decimal.Decimal

	// Year and Month select the viewed calendar month.
	Year  int
	Month time.Month

	// Now is the current instant used for month-to-date gating.
	Now time.Time
}

// Amounts is the engine's result.
type Amounts struct {
	Total       decimal.Decimal
	MonthToDate decimal.Decimal
}

// =============================================================================
// ENGINE
// =============================================================================

// Compute returns the viewed month's total amount and the portion earned
// so far. See the package comment for the gating rules.
func Compute(in Input) Amounts {
	rate := effectiveRate(in)
	out := Amounts{Total: decimal.Zero, MonthToDate: decimal.Zero}

	// Month-to-date only exists for the current real month.
	liveMonth := in.Year == in.Now.Year() && in.Month == in.Now.Month()

	for key, codes := range in.Schedule {
		date, err := shift.ParseDate(key)
		if err != nil {
			continue
		}
		if date.Year() != in.Year || date.Month() != in.Month {
			continue
		}

		// Per-code amounts.
		singles := decimal.Zero
		allEnded := true
		for _, code := range codes {
			combo, ok := in.Settings.Combination(string(code))
			if !ok {
				continue
			}
			amount := combo.Hours.Mul(rate)
			singles = singles.Add(combo.Hours)
			out.Total = out.Total.Add(amount)

			if liveMonth && ShiftEnded(code, date, in.Now) {
				out.MonthToDate = out.MonthToDate.Add(amount)
			}
		}
		for _, code := range codes {
			if !ShiftEnded(code, date, in.Now) {
				allEnded = false
			}
		}

		// Combination correction delta.
		if len(codes) >= 2 {
			combo, ok := in.Settings.Combination(shift.CombinationKey(codes))
			if ok {
				delta := combo.Hours.Sub(singles).Mul(rate)
				out.Total = out.Total.Add(delta)
				if liveMonth && allEnded {
					out.MonthToDate = out.MonthToDate.Add(delta)
				}
			}
		}
	}

	return out
}

// effectiveRate resolves the hourly rate for the viewed month.
// Overrides are never implicitly applied to other years: without one,
// the global salary only counts when viewing the current real year.
func effectiveRate(in Input) decimal.Decimal {
	salary := in.Override
	if !salary.IsPositive() {
		if in.Year == in.Now.Year() {
			salary = in.Settings.BasicSalary
		} else {
			salary = decimal.Zero
		}
	}
	if salary.IsPositive() {
		return shift.HourlyRate(salary)
	}
	return in.Settings.HourlyRate
}

// =============================================================================
// END-OF-SHIFT GATE
// =============================================================================

// ShiftEnded reports whether a shift assigned on date has concluded by
// now. The end instant is the code's clock end hour on the shift's date,
// pushed to the following day for the midnight-crossing night shift.
// Future dates therefore never pass, and past dates always do except a
// night shift whose morning hasn't arrived yet.
func ShiftEnded(code shift.Code, date time.Time, now time.Time) bool {
	w, ok := shift.WindowFor(code)
	if !ok {
		return false
	}
	end := time.Date(date.Year(), date.Month(), date.Day(), w.EndHour, 0, 0, 0, now.Location())
	if w.CrossesMidnight {
		end = end.AddDate(0, 0, 1)
	}
	return !now.Before(end)
}
