package patient

import (
	"context"
	"strings"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

// Service is the registry facade the HTTP layer and the repair CLI
// call. It owns validation and user-facing error decisions; the
// repositories never swallow errors on their way up.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add validates the identity fields, then creates the patient with an
// allocated id. The returned record carries the assigned id and an
// active deletion flag.
func (s *Service) Add(ctx context.Context, p *record.Patient) (*record.Patient, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	return s.repo.Add(ctx, p)
}

// ListActive returns every patient whose flag is not the deleted
// value. Legacy records without a flag are included.
func (s *Service) ListActive(ctx context.Context) ([]*record.Patient, error) {
	return s.repo.List(ctx, true)
}

func (s *Service) Get(ctx context.Context, id string) (*record.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *record.Patient) (*record.Patient, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Restore(ctx context.Context, id string) error {
	return s.repo.Restore(ctx, id)
}

// Deduplicate repairs colliding ids. Invoked from the repair CLI.
func (s *Service) Deduplicate(ctx context.Context) (int, error) {
	return s.repo.Deduplicate(ctx)
}

// Purge hard-deletes a patient and its dependents. Not exposed over
// HTTP; repair CLI only.
func (s *Service) Purge(ctx context.Context, id string) (int, error) {
	return s.repo.Purge(ctx, id)
}

func validate(p *record.Patient) error {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(p.Gender) == "" {
		missing = append(missing, "gender")
	}
	if strings.TrimSpace(p.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(p.CatheterInsertionDate) == "" {
		missing = append(missing, "catheterInsertionDate")
	}
	if len(missing) > 0 {
		return &docstore.ValidationError{Missing: missing}
	}
	return nil
}
