package appointment

import (
	"context"
	"strings"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the raw collection, soft-deleted rows included; the
// client decides what to show.
func (s *Service) List(ctx context.Context) ([]*record.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) Add(ctx context.Context, a *record.Appointment) (*record.Appointment, error) {
	var missing []string
	if strings.TrimSpace(a.PatientID) == "" {
		missing = append(missing, "patientId")
	}
	if strings.TrimSpace(a.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return nil, &docstore.ValidationError{Missing: missing}
	}
	return s.repo.Add(ctx, a)
}

// Delete removes the appointment and the history rows of the same
// patient; the booking flow writes those rows alongside the
// appointment, so they go together.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
