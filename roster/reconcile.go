/*
reconcile.go - Folding one roster change into one owner's calendar

PURPOSE:
  The single reconciliation entry point. Given a change event, the owner
  identity, and snapshots of the owner's calendar state, it returns new
  snapshots plus whether anything was applied. The function is pure: the
  input maps are never mutated, and a refused event returns snapshots
  equal to the inputs.

DECISION ORDER:
  1. Identity match (not my event -> untouched, expected and frequent)
  2. Label resolution (unknown label -> dropped, operator-visible)
  3. Removal: drop the code, delete emptied date keys, leave the special
     flag alone (it may reflect unrelated reasons)
  4. Addition/update: conflict check first, then special flag, then code.
     The conflict check runs before any mutation so a refused addition
     lands nothing, flag included.

IDEMPOTENCE:
  Re-applying an event the calendar already reflects returns Applied=false
  with identical state. Duplicate and re-delivered feed events therefore
  need no deduplication bookkeeping.

SEE ALSO:
  - shift/rules.go: the predicates enforced here
  - processor.go: ordering and persistence around this function
*/
package roster

import (
	"github.com/jarivatoi/anwh-sub000/shift"
)

// =============================================================================
// RESULT
// =============================================================================

// DropReason explains why an event produced no mutation.
type DropReason string

const (
	DropNone             DropReason = ""
	DropIdentityMismatch DropReason = "identity_mismatch"
	DropUnknownLabel     DropReason = "unknown_label"
	DropInvalidDate      DropReason = "invalid_date"
	DropConflict         DropReason = "conflict"
	DropNoOp             DropReason = "noop"
)

// Result carries the post-event snapshots. Schedule and SpecialDates are
// always fresh copies, safe to persist or discard.
type Result struct {
	Schedule     shift.DaySchedule
	SpecialDates shift.SpecialDates
	Applied      bool
	Reason       DropReason
}

// =============================================================================
// RECONCILE
// =============================================================================

// Reconcile applies one change event to the owner's calendar snapshots.
// allEntries is the full roster, scanned for special-date annotations
// across every owner. The inputs are never mutated.
func Reconcile(ev ChangeEvent, owner string, schedule shift.DaySchedule, special shift.SpecialDates, allEntries []Entry) Result {
	out := Result{
		Schedule:     schedule.Clone(),
		SpecialDates: special.Clone(),
	}

	// Step 1: identity. This is what scopes the shared ledger down to
	// "my" calendar.
	if !SameIdentity(ev.AssignedName, owner) {
		out.Reason = DropIdentityMismatch
		return out
	}

	// Step 2: label.
	code, ok := ResolveLabel(ev.ShiftLabel)
	if !ok {
		out.Reason = DropUnknownLabel
		return out
	}

	date, err := shift.ParseDate(ev.Date)
	if err != nil {
		out.Reason = DropInvalidDate
		return out
	}

	// Step 3: removal. The special flag is deliberately left untouched.
	if ev.Action == ActionRemoved {
		if out.Schedule.Remove(ev.Date, code) {
			out.Applied = true
			return out
		}
		out.Reason = DropNoOp
		return out
	}

	// Step 4: addition / update.
	// Conflict check comes before any mutation: a refused addition must
	// land nothing, not even the special flag.
	if !out.Schedule.Has(ev.Date, code) && !shift.CanCoexist(out.Schedule.Codes(ev.Date), code) {
		out.Reason = DropConflict
		return out
	}

	mutated := false

	requires := shift.RequiresSpecial(date, code)
	announced := DateAnnouncedSpecial(allEntries, ev.Date)
	if (requires || announced) && !out.SpecialDates.IsSpecial(ev.Date) {
		out.SpecialDates[ev.Date] = true
		mutated = true
	}

	if !out.Schedule.Has(ev.Date, code) {
		out.Schedule.Add(ev.Date, code)
		mutated = true
	}

	if !mutated {
		out.Reason = DropNoOp
		return out
	}
	out.Applied = true
	return out
}
