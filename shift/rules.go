/*
rules.go - Conflict and special-date predicates

PURPOSE:
  Pure rules over a date's shift set and its calendar position. These are
  the invariant guards: the reconciliation engine enforces them on every
  write, and the API enforces the conflict rule on direct edits.

RULES:
  Conflict rule:
    MORNING and SATURDAY_REGULAR never coexist on a date, nor do
    SATURDAY_REGULAR and EVENING. Every other pairing (including any
    pairing with NIGHT) is allowed.

  Special-date rule:
    A MORNING shift is only semantically valid on a flagged-special date
    when the day is Saturday or a weekday. Sunday is exempt. No other
    code ever requires the flag.

SEE ALSO:
  - roster/reconcile.go: mandatory enforcement (auto-sets the flag)
  - api/handlers.go: advisory enforcement on direct edits
*/
package shift

import "time"

// conflictPairs lists the mutually exclusive code pairs.
var conflictPairs = [][2]Code{
	{CodeMorning, CodeSaturdayRegular},
	{CodeSaturdayRegular, CodeEvening},
}

// CanCoexist reports whether candidate may be added alongside existing.
// Adding a code already present is permitted (the add is a no-op upstream).
func CanCoexist(existing []Code, candidate Code) bool {
	for _, pair := range conflictPairs {
		var other Code
		switch candidate {
		case pair[0]:
			other = pair[1]
		case pair[1]:
			other = pair[0]
		default:
			continue
		}
		for _, c := range existing {
			if c == other {
				return false
			}
		}
	}
	return true
}

// Violation returns the first forbidden pair present in codes, if any.
// Used to verify the conflict invariant over a whole schedule.
func Violation(codes []Code) (Code, Code, bool) {
	has := func(want Code) bool {
		for _, c := range codes {
			if c == want {
				return true
			}
		}
		return false
	}
	for _, pair := range conflictPairs {
		if has(pair[0]) && has(pair[1]) {
			return pair[0], pair[1], true
		}
	}
	return "", "", false
}

// RequiresSpecial reports whether code on date demands the special flag.
// Only MORNING does, and only outside Sunday.
func RequiresSpecial(date time.Time, code Code) bool {
	if code != CodeMorning {
		return false
	}
	return date.Weekday() != time.Sunday
}
