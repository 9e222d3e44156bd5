package billing

import (
	"context"

	"github.com/clinic/clinic/internal/domain/record"
)

// Repository is the billing-ledger contract, with document-store and
// Postgres implementations.
type Repository interface {
	List(ctx context.Context) ([]*record.Invoice, error)
	Add(ctx context.Context, inv *record.Invoice) (*record.Invoice, error)
	// Update replaces the whole record under the given id.
	Update(ctx context.Context, inv *record.Invoice) (*record.Invoice, error)
	// Delete hard-removes the record; no cascade.
	Delete(ctx context.Context, id string) error
	// SoftDelete flags the record deleted and stamps deletedAt.
	SoftDelete(ctx context.Context, id string) error
	// Restore reactivates the record and clears deletedAt.
	Restore(ctx context.Context, id string) error
}
