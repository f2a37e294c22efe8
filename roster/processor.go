/*
processor.go - Ordered application of roster change events

PURPOSE:
  Wraps Reconcile with persistence and sequencing. Events are applied
  strictly in slice order, and an applied event is persisted before the
  next event is examined. That ordering is what makes the rename
  decomposition safe: a removal for the old name must be fully applied
  (state saved, not merely dispatched) before the matching addition for
  the new name is attempted.

NOTIFICATIONS:
  Per-event notifications go through an explicit callback, and bulk
  imports suppress them with Options rather than a global flag. This
  keeps batch behavior testable.

FAILURE:
  A store failure aborts the batch with the error. Events already
  persisted stay persisted; the failing event and everything after it are
  untouched, so the caller can safely retry the remainder.
*/
package roster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jarivatoi/anwh-sub000/shift"
)

// =============================================================================
// OPTIONS & RESULTS
// =============================================================================

// Options controls batch behavior for one Apply call.
type Options struct {
	// SuppressNotifications silences the per-event callback, used for
	// bulk imports where one summary beats hundreds of pings.
	SuppressNotifications bool
}

// Notification describes one event's outcome for the UI layer.
type Notification struct {
	Event   ChangeEvent
	Applied bool
	Reason  DropReason
}

// EventResult is the per-event record returned to the caller.
type EventResult struct {
	Event   ChangeEvent
	Applied bool
	Reason  DropReason
}

// =============================================================================
// PROCESSOR
// =============================================================================

// Processor folds ordered change events into one owner's stored calendar.
type Processor struct {
	Owner    string
	Calendar shift.Store
	Roster   Store

	// Notify receives one Notification per processed event unless
	// suppressed. Nil disables notifications entirely.
	Notify func(Notification)

	Logger *slog.Logger
}

// Apply processes events strictly in order. Each applied event is saved
// before the next one is looked at. Returns the per-event results; on a
// store failure the results cover the events examined so far and the
// error identifies the failing position.
func (p *Processor) Apply(ctx context.Context, events []ChangeEvent, opts Options) ([]EventResult, error) {
	schedule, err := p.Calendar.LoadSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	special, err := p.Calendar.LoadSpecialDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load special dates: %w", err)
	}
	entries, err := p.Roster.FetchAllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch roster entries: %w", err)
	}

	results := make([]EventResult, 0, len(events))

	for i, ev := range events {
		r := Reconcile(ev, p.Owner, schedule, special, entries)

		if r.Applied {
			if err := p.Calendar.SaveSchedule(ctx, r.Schedule); err != nil {
				return results, fmt.Errorf("save schedule (event %d): %w", i, err)
			}
			if err := p.Calendar.SaveSpecialDates(ctx, r.SpecialDates); err != nil {
				return results, fmt.Errorf("save special dates (event %d): %w", i, err)
			}
			schedule = r.Schedule
			special = r.SpecialDates
		}

		if r.Reason == DropUnknownLabel && p.Logger != nil {
			// Dropped events are not fatal but operators need to see them.
			p.Logger.Warn("roster event dropped",
				"reason", string(r.Reason),
				"date", ev.Date,
				"label", ev.ShiftLabel,
			)
		}

		results = append(results, EventResult{Event: ev, Applied: r.Applied, Reason: r.Reason})

		if p.Notify != nil && !opts.SuppressNotifications {
			p.Notify(Notification{Event: ev, Applied: r.Applied, Reason: r.Reason})
		}
	}

	return results, nil
}
