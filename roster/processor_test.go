package roster_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarivatoi/anwh-sub000/roster"
	"github.com/jarivatoi/anwh-sub000/shift"
	"github.com/jarivatoi/anwh-sub000/shift/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newProcessor(t *testing.T) (*roster.Processor, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return &roster.Processor{Owner: "SMITH", Calendar: mem, Roster: mem}, mem
}

// =============================================================================
// ORDERING & PERSISTENCE
// =============================================================================

func TestProcessor_AppliesInOrderAndPersists(t *testing.T) {
	// GIVEN: an add followed by a remove of the same shift
	// WHEN: applied as one ordered batch
	// THEN: the first applies, the second applies, the net state is empty
	// and persisted

	proc, mem := newProcessor(t)
	ctx := context.Background()

	results, err := proc.Apply(ctx, []roster.ChangeEvent{
		added(sunday, "Night Duty (10-10)", "SMITH"),
		removed(sunday, "Night Duty (10-10)", "SMITH"),
	}, roster.Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Applied)
	assert.True(t, results[1].Applied)

	sched, err := mem.LoadSchedule(ctx)
	require.NoError(t, err)
	assert.Empty(t, sched)
}

func TestProcessor_RenameDecomposition(t *testing.T) {
	// A rename arrives as removal-for-old-name then addition-for-new-name.
	// For owner SMITH losing the shift, only the removal lands; the
	// addition is someone else's event.

	proc, mem := newProcessor(t)
	ctx := context.Background()

	_, err := proc.Apply(ctx, []roster.ChangeEvent{
		added(saturday, "Night Duty (10-10)", "SMITH"),
	}, roster.Options{})
	require.NoError(t, err)

	results, err := proc.Apply(ctx, []roster.ChangeEvent{
		removed(saturday, "Night Duty (10-10)", "SMITH"),
		added(saturday, "Night Duty (10-10)", "JONES"),
	}, roster.Options{})
	require.NoError(t, err)

	assert.True(t, results[0].Applied)
	assert.False(t, results[1].Applied)
	assert.Equal(t, roster.DropIdentityMismatch, results[1].Reason)

	sched, err := mem.LoadSchedule(ctx)
	require.NoError(t, err)
	assert.Empty(t, sched, "the shift left SMITH's calendar")
}

func TestProcessor_DuplicateDelivery_SecondIsNoOp(t *testing.T) {
	proc, _ := newProcessor(t)
	ctx := context.Background()

	ev := added(saturday, "Evening Shift (4-10)", "SMITH")
	results, err := proc.Apply(ctx, []roster.ChangeEvent{ev, ev}, roster.Options{})
	require.NoError(t, err)

	assert.True(t, results[0].Applied)
	assert.False(t, results[1].Applied)
	assert.Equal(t, roster.DropNoOp, results[1].Reason)
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func TestProcessor_Notifications(t *testing.T) {
	proc, _ := newProcessor(t)
	ctx := context.Background()

	var got []roster.Notification
	proc.Notify = func(n roster.Notification) { got = append(got, n) }

	events := []roster.ChangeEvent{
		added(sunday, "Evening Shift (4-10)", "SMITH"),
		added(sunday, "Mystery Shift", "SMITH"),
	}

	_, err := proc.Apply(ctx, events, roster.Options{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Applied)
	assert.Equal(t, roster.DropUnknownLabel, got[1].Reason)

	// Bulk import: suppressed.
	got = nil
	_, err = proc.Apply(ctx, events, roster.Options{SuppressNotifications: true})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// =============================================================================
// STORE FAILURE
// =============================================================================

// failingCalendar wraps the memory store and fails every schedule save.
type failingCalendar struct {
	shift.Store
}

var errDiskFull = errors.New("disk full")

func (f *failingCalendar) SaveSchedule(ctx context.Context, s shift.DaySchedule) error {
	return errDiskFull
}

func TestProcessor_StoreFailureAbortsBatch(t *testing.T) {
	mem := store.NewMemory()
	proc := &roster.Processor{
		Owner:    "SMITH",
		Calendar: &failingCalendar{Store: mem},
		Roster:   mem,
	}

	results, err := proc.Apply(context.Background(), []roster.ChangeEvent{
		added(sunday, "Evening Shift (4-10)", "SMITH"),
		added(saturday, "Evening Shift (4-10)", "SMITH"),
	}, roster.Options{})

	require.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, results, "failing event is not recorded as processed")

	sched, loadErr := mem.LoadSchedule(context.Background())
	require.NoError(t, loadErr)
	assert.Empty(t, sched, "no partial write reached the store")
}
