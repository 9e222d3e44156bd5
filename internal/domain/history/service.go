package history

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

// List filters soft-deleted entries out, matching the billing ledger.
func (s *Service) List(ctx context.Context) ([]*record.HistoryEntry, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*record.HistoryEntry, 0, len(all))
	for _, e := range all {
		if record.Active(e.IsDeleted) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Service) Add(ctx context.Context, e *record.HistoryEntry) (*record.HistoryEntry, error) {
	if strings.TrimSpace(e.PatientID) == "" {
		return nil, &docstore.ValidationError{Missing: []string{"patientId"}}
	}
	return s.repo.Add(ctx, e)
}

func (s *Service) Update(ctx context.Context, e *record.HistoryEntry) (*record.HistoryEntry, error) {
	return s.repo.Update(ctx, e)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) SoftDelete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) Restore(ctx context.Context, id string) error {
	return s.repo.Restore(ctx, id)
}
