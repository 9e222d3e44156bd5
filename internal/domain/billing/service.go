package billing

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

// List filters soft-deleted invoices out; records flagged through a
// patient cascade disappear from the ledger until the patient is
// restored.
func (s *Service) List(ctx context.Context) ([]*record.Invoice, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*record.Invoice, 0, len(all))
	for _, inv := range all {
		if record.Active(inv.IsDeleted) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *Service) Add(ctx context.Context, inv *record.Invoice) (*record.Invoice, error) {
	if strings.TrimSpace(inv.PatientID) == "" {
		return nil, &docstore.ValidationError{Missing: []string{"patientId"}}
	}
	return s.repo.Add(ctx, inv)
}

func (s *Service) Update(ctx context.Context, inv *record.Invoice) (*record.Invoice, error) {
	return s.repo.Update(ctx, inv)
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
