package roster

import "context"

// Store persists the shared roster ledger. The reconciliation engine only
// uses the read path; the write path serves the API surface.
type Store interface {
	// FetchAllEntries returns the whole ledger. Used both to filter an
	// owner's assignments and to scan special-date annotations across
	// all owners.
	FetchAllEntries(ctx context.Context) ([]Entry, error)

	SaveEntry(ctx context.Context, e Entry) error
	DeleteEntry(ctx context.Context, id string) error
}
