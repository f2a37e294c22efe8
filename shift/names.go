package shift

import "sort"

// =============================================================================
// DERIVED STAFF NAMES
// =============================================================================

// StaffMember is one row of the staff table. A member with an alternate
// role can appear on the roster under a suffixed variant of their name.
type StaffMember struct {
	Name             string
	HasAlternateRole bool
}

// AlternateRoleSuffix marks a name assigned in its alternate role.
const AlternateRoleSuffix = "(R)"

// DeriveAvailableNames builds the sorted, de-duplicated list of names that
// may appear on the roster: every member's base name plus, where the
// member has an alternate role, the suffixed variant. Pure function;
// callers rebuild the list after each staff-table update instead of
// mutating a shared slice in place.
func DeriveAvailableNames(staff []StaffMember) []string {
	seen := make(map[string]bool)
	var names []string

	add := func(n string) {
		if n == "" || seen[n] {
			return
		}
		seen[n] = true
		names = append(names, n)
	}

	for _, m := range staff {
		add(m.Name)
		if m.HasAlternateRole {
			add(m.Name + AlternateRoleSuffix)
		}
	}

	sort.Strings(names)
	return names
}
