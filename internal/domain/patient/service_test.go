package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

// -- Mock repository --

type mockRepo struct {
	patients []*record.Patient
}

func (m *mockRepo) List(_ context.Context, activeOnly bool) ([]*record.Patient, error) {
	if !activeOnly {
		return m.patients, nil
	}
	var out []*record.Patient
	for _, p := range m.patients {
		if record.Active(p.IsDeleted) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepo) Get(_ context.Context, id string) (*record.Patient, error) {
	for _, p := range m.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, docstore.ErrNotFound
}

func (m *mockRepo) Add(_ context.Context, p *record.Patient) (*record.Patient, error) {
	p.ID = fmt.Sprintf("20240105/%03d", len(m.patients)+1)
	p.SetDeletionFlag(record.FlagActive)
	m.patients = append(m.patients, p)
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *record.Patient) (*record.Patient, error) {
	for i, cur := range m.patients {
		if cur.ID == p.ID {
			m.patients[i] = p
			return p, nil
		}
	}
	return nil, docstore.ErrNotFound
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	for _, p := range m.patients {
		if p.ID == id {
			p.SetDeletionFlag(record.FlagDeleted)
			return nil
		}
	}
	return docstore.ErrNotFound
}

func (m *mockRepo) Restore(_ context.Context, id string) error {
	for _, p := range m.patients {
		if p.ID == id {
			p.SetDeletionFlag(record.FlagActive)
			return nil
		}
	}
	return docstore.ErrNotFound
}

func (m *mockRepo) Deduplicate(_ context.Context) (int, error) { return 0, nil }

func (m *mockRepo) Purge(_ context.Context, id string) (int, error) {
	for i, p := range m.patients {
		if p.ID == id {
			m.patients = append(m.patients[:i], m.patients[i+1:]...)
			return 1, nil
		}
	}
	return 0, docstore.ErrNotFound
}

func validPatient() *record.Patient {
	return &record.Patient{
		Name: "Asha", Gender: "F", Phone: "9000000001",
		CatheterInsertionDate: "2024-01-05",
	}
}

func TestService_Add(t *testing.T) {
	svc := NewService(&mockRepo{})
	p, err := svc.Add(context.Background(), validPatient())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Error("expected an allocated id")
	}
}

func TestService_Add_MissingFields(t *testing.T) {
	svc := NewService(&mockRepo{})
	_, err := svc.Add(context.Background(), &record.Patient{Name: "  ", Phone: "9000000001"})

	var verr *docstore.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "gender", "catheterInsertionDate"} {
		if !strings.Contains(verr.Error(), field) {
			t.Errorf("error should name missing field %q: %v", field, verr)
		}
	}
	if strings.Contains(verr.Error(), "phone") {
		t.Error("phone was supplied and must not be reported missing")
	}
}

func TestService_ListActive(t *testing.T) {
	repo := &mockRepo{patients: []*record.Patient{
		{ID: "20240105/001"},
		{ID: "20240105/002", IsDeleted: record.Flag(record.FlagDeleted)},
		{ID: "20240105/003", IsDeleted: record.Flag(record.FlagActive)},
	}}
	svc := NewService(repo)

	out, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected 2 active patients, got %d", len(out))
	}
}

func TestService_Update_MissingFields(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	created, _ := svc.Add(context.Background(), validPatient())

	bad := *created
	bad.Gender = ""
	_, err := svc.Update(context.Background(), &bad)
	var verr *docstore.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestService_DeleteAndRestore_NotFound(t *testing.T) {
	svc := NewService(&mockRepo{})
	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound from delete, got %v", err)
	}
	if err := svc.Restore(context.Background(), "nope"); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound from restore, got %v", err)
	}
}
