package history

import (
	"context"

	"github.com/clinic/clinic/internal/domain/record"
)

// Repository is the clinical-history contract, with document-store and
// Postgres implementations.
type Repository interface {
	List(ctx context.Context) ([]*record.HistoryEntry, error)
	Add(ctx context.Context, e *record.HistoryEntry) (*record.HistoryEntry, error)
	// Update replaces the whole record under the given id.
	Update(ctx context.Context, e *record.HistoryEntry) (*record.HistoryEntry, error)
	// Delete hard-removes the record; no cascade.
	Delete(ctx context.Context, id string) error
	// SoftDelete flags the record deleted and stamps deletedAt.
	SoftDelete(ctx context.Context, id string) error
	// Restore reactivates the record and clears deletedAt.
	Restore(ctx context.Context, id string) error
}
