/*
Package roster implements the shared roster ledger and its reconciliation
into private calendars.

PURPOSE:
  Many staff write the same roster. Each person's app only cares about the
  assignments carrying their own name. This package maps the roster's
  richer shift vocabulary onto shift codes, matches assignment names
  against an owner identity, and folds ordered change events into one
  owner's DaySchedule/SpecialDates snapshot.

KEY CONCEPTS IN THIS FILE (types.go):
  - Entry: one roster row (read-only to the engine)
  - ChangeEvent: an added/updated/removed notification from the ledger
  - Label table: external shift labels -> shift codes
  - Identity normalization: the "(R)" alternate-role suffix is ignored
    when matching names

SEE ALSO:
  - reconcile.go: the single reconciliation entry point
  - processor.go: ordered batch application against a store
*/
package roster

import (
	"regexp"
	"strings"

	"github.com/jarivatoi/anwh-sub000/shift"
)

// =============================================================================
// ROSTER ENTRIES
// =============================================================================

// Entry is one row of the shared roster ledger. The engine treats entries
// as read-only: it scans them for identity matches and special-date
// annotations but never writes them.
type Entry struct {
	ID           string
	Date         string // ISO calendar key
	ShiftLabel   string // external vocabulary, see ResolveLabel
	AssignedName string // may carry the alternate-role suffix
	EditorName   string

	// SpecialAnnotation is the structured special-date marker. Any entry
	// on a date carrying a non-empty annotation makes that date special
	// for everyone, not just the entry's assignee.
	SpecialAnnotation string
}

// Action describes what happened to a roster entry.
type Action string

const (
	ActionAdded   Action = "added"
	ActionUpdated Action = "updated"
	ActionRemoved Action = "removed"
)

// ChangeEvent is one ordered notification from the roster change feed.
type ChangeEvent struct {
	Action       Action
	Date         string
	ShiftLabel   string
	AssignedName string
	EditorName   string
}

// =============================================================================
// LABEL MAPPING - external vocabulary to shift codes
// =============================================================================

// labelCodes maps normalized roster labels onto shift codes. Unrecognized
// labels map to nothing: the referencing operation is rejected, never
// guessed.
var labelCodes = map[string]shift.Code{
	"morning shift (9-4)":      shift.CodeMorning,
	"morning":                  shift.CodeMorning,
	"evening shift (4-10)":     shift.CodeEvening,
	"evening":                  shift.CodeEvening,
	"saturday regular (12-10)": shift.CodeSaturdayRegular,
	"saturday regular":         shift.CodeSaturdayRegular,
	"night duty (10-10)":       shift.CodeNight,
	"night duty":               shift.CodeNight,
	"night":                    shift.CodeNight,
}

// ResolveLabel maps an external shift label onto a shift code.
func ResolveLabel(label string) (shift.Code, bool) {
	code, ok := labelCodes[strings.ToLower(strings.TrimSpace(label))]
	return code, ok
}

// =============================================================================
// IDENTITY MATCHING
// =============================================================================

var alternateRoleRE = regexp.MustCompile(`(?i)\s*\(R\)\s*$`)

// NormalizeIdentity strips the optional trailing alternate-role suffix
// and case-folds, so "Smith (R)" and "SMITH" identify the same person.
func NormalizeIdentity(name string) string {
	name = alternateRoleRE.ReplaceAllString(strings.TrimSpace(name), "")
	return strings.ToUpper(strings.TrimSpace(name))
}

// SameIdentity reports whether two display names identify the same person
// modulo the alternate-role suffix.
func SameIdentity(a, b string) bool {
	return NormalizeIdentity(a) == NormalizeIdentity(b)
}

// =============================================================================
// SPECIAL-DATE ANNOTATIONS
// =============================================================================

// DateAnnouncedSpecial reports whether any entry on date carries a
// special-date annotation. The scan deliberately covers every owner:
// a date is special globally, not per person.
func DateAnnouncedSpecial(entries []Entry, date string) bool {
	for _, e := range entries {
		if e.Date == date && e.SpecialAnnotation != "" {
			return true
		}
	}
	return false
}

// legacySpecialRE matches the marker older clients embedded in free-text
// change descriptions, e.g. "Covering ward. Special work @ 08/03/2025".
var legacySpecialRE = regexp.MustCompile(`(?i)special\s+work\s*@\s*(\d{2}/\d{2}/\d{4})`)

// ExtractSpecialAnnotation pulls a legacy embedded special-date marker out
// of free text. Used only at the import edge when converting old roster
// rows into structured entries; the engine itself never parses text.
func ExtractSpecialAnnotation(description string) string {
	m := legacySpecialRE.FindStringSubmatch(description)
	if m == nil {
		return ""
	}
	return m[1]
}

// =============================================================================
// STAFF DERIVATION
// =============================================================================

// StaffFromEntries rebuilds the staff table from the names observed on
// the roster: one member per normalized identity, flagged with an
// alternate role when any entry carried the suffix.
func StaffFromEntries(entries []Entry) []shift.StaffMember {
	type info struct {
		name      string
		alternate bool
	}
	byIdentity := make(map[string]*info)
	var order []string

	for _, e := range entries {
		if strings.TrimSpace(e.AssignedName) == "" {
			continue
		}
		id := NormalizeIdentity(e.AssignedName)
		m, ok := byIdentity[id]
		if !ok {
			m = &info{name: id}
			byIdentity[id] = m
			order = append(order, id)
		}
		if alternateRoleRE.MatchString(e.AssignedName) {
			m.alternate = true
		}
	}

	staff := make([]shift.StaffMember, 0, len(order))
	for _, id := range order {
		m := byIdentity[id]
		staff = append(staff, shift.StaffMember{Name: m.name, HasAlternateRole: m.alternate})
	}
	return staff
}
