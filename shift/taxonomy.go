package shift

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLOCK WINDOWS - static shift taxonomy
// =============================================================================

// Window describes a shift's clock start and end hours. Exactly one entry
// crosses midnight (the night shift): its end hour falls on the calendar
// day after its start date.
type Window struct {
	StartHour       int
	EndHour         int
	CrossesMidnight bool
}

var windows = map[Code]Window{
	CodeMorning:         {StartHour: 9, EndHour: 16},
	CodeEvening:         {StartHour: 16, EndHour: 22},
	CodeSaturdayRegular: {StartHour: 12, EndHour: 22},
	CodeNight:           {StartHour: 22, EndHour: 9, CrossesMidnight: true},
}

// WindowFor returns the clock window for a code.
func WindowFor(code Code) (Window, bool) {
	w, ok := windows[code]
	return w, ok
}

// =============================================================================
// COMBINATION KEYS
// =============================================================================

var codeOrder = map[Code]int{
	CodeMorning:         0,
	CodeEvening:         1,
	CodeSaturdayRegular: 2,
	CodeNight:           3,
}

// CombinationKey builds the canonical pricing key for a set of codes:
// de-duplicated, sorted in canonical order, joined with "+".
// A single code yields the code itself.
func CombinationKey(codes []Code) string {
	seen := make(map[Code]bool, len(codes))
	var uniq []Code
	for _, c := range codes {
		if !seen[c] {
			seen[c] = true
			uniq = append(uniq, c)
		}
	}
	sort.Slice(uniq, func(i, j int) bool { return codeOrder[uniq[i]] < codeOrder[uniq[j]] })

	parts := make([]string, len(uniq))
	for i, c := range uniq {
		parts[i] = string(c)
	}
	return strings.Join(parts, "+")
}

// =============================================================================
// DEFAULTS
// =============================================================================

func hours(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DefaultCombinations is the pricing table shipped with the system.
// The default multi-code hours happen to equal the sum of their singles;
// a deployment's own table may price combinations above or below that.
func DefaultCombinations() []Combination {
	return []Combination{
		{Key: string(CodeMorning), Hours: hours("6.5")},
		{Key: string(CodeEvening), Hours: hours("5.5")},
		{Key: string(CodeSaturdayRegular), Hours: hours("10")},
		{Key: string(CodeNight), Hours: hours("11")},
		{Key: "MORNING+EVENING", Hours: hours("12")},
		{Key: "MORNING+NIGHT", Hours: hours("17.5")},
		{Key: "EVENING+NIGHT", Hours: hours("16.5")},
		{Key: "SATURDAY_REGULAR+NIGHT", Hours: hours("21")},
		{Key: "MORNING+EVENING+NIGHT", Hours: hours("23")},
	}
}

// HourlyRate derives the hourly rate from a monthly salary:
// salary x 12 months / 52 weeks / 40 hours.
func HourlyRate(monthlySalary decimal.Decimal) decimal.Decimal {
	return monthlySalary.
		Mul(decimal.NewFromInt(12)).
		Div(decimal.NewFromInt(52)).
		Div(decimal.NewFromInt(40))
}

// DefaultSettings returns the settings used before any configuration.
func DefaultSettings() Settings {
	salary := decimal.NewFromInt(35000)
	return Settings{
		BasicSalary:  salary,
		HourlyRate:   HourlyRate(salary),
		Combinations: DefaultCombinations(),
	}
}
