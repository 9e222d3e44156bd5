package patient

import (
	"context"

	"github.com/clinic/clinic/internal/domain/record"
)

// Repository is the patient-registry contract. Two implementations
// exist: the document store (default) and Postgres, selected by
// STORE_DRIVER. Both carry the full operation set, cascades included.
type Repository interface {
	// List returns patients in collection order. With activeOnly set,
	// soft-deleted patients (flag 0) are filtered out; legacy records
	// without a flag count as active.
	List(ctx context.Context, activeOnly bool) ([]*record.Patient, error)
	Get(ctx context.Context, id string) (*record.Patient, error)
	// Add allocates the id from the catheter insertion date, marks the
	// record active and inserts it.
	Add(ctx context.Context, p *record.Patient) (*record.Patient, error)
	// Update replaces the identity fields of an existing patient. The
	// id is immutable; a name change is propagated to the denormalized
	// copies on dependent records.
	Update(ctx context.Context, p *record.Patient) (*record.Patient, error)
	// Delete soft-deletes the patient and cascades over its dependents.
	Delete(ctx context.Context, id string) error
	// Restore reverses Delete for the patient and its dependents.
	Restore(ctx context.Context, id string) error
	// Deduplicate repairs colliding patient ids; returns the number of
	// reassigned records.
	Deduplicate(ctx context.Context) (int, error)
	// Purge physically removes the patient and its dependents. Repair
	// path only; returns the number of removed records.
	Purge(ctx context.Context, id string) (int, error)
}
