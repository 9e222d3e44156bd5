package appointment

import (
	"context"

	"github.com/clinic/clinic/internal/domain/record"
)

// Repository is the appointment-book contract, with document-store
// and Postgres implementations.
type Repository interface {
	List(ctx context.Context) ([]*record.Appointment, error)
	// Add inserts with a server-assigned timestamp id.
	Add(ctx context.Context, a *record.Appointment) (*record.Appointment, error)
	// Delete hard-removes the appointment together with any history
	// rows sharing its patientId.
	Delete(ctx context.Context, id string) error
}
