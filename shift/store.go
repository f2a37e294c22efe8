/*
store.go - Persistence interface for the calendar and settings

PURPOSE:
  Defines the boundary between the pure core and storage. The core never
  touches a database; it loads snapshots, computes, and saves snapshots
  back through this interface.

CONTRACT:
  - Every call may fail. A failed call means "no mutation occurred": the
    caller's in-memory state is still valid and a retry is always safe.
  - No retry logic lives behind this interface; callers own that.
  - Save* calls replace the whole snapshot atomically.

IMPLEMENTATIONS:
  - shift/store/memory.go: in-memory, for tests and development
  - store/sqlite/sqlite.go: production SQLite
*/
package shift

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Store persists the calendar, special-date flags, settings, and per-month
// salary overrides for one owner's private data.
type Store interface {
	LoadSchedule(ctx context.Context) (DaySchedule, error)
	SaveSchedule(ctx context.Context, s DaySchedule) error

	LoadSpecialDates(ctx context.Context) (SpecialDates, error)
	SaveSpecialDates(ctx context.Context, s SpecialDates) error

	LoadSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error

	// LoadMonthlySalary returns the override for (year, month), or zero
	// when none is set. Zero means "defer to the global salary".
	LoadMonthlySalary(ctx context.Context, year int, month time.Month) (decimal.Decimal, error)
	SaveMonthlySalary(ctx context.Context, year int, month time.Month, amount decimal.Decimal) error
}
