package appointment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

type mockRepo struct {
	appts []*record.Appointment
}

func (m *mockRepo) List(_ context.Context) ([]*record.Appointment, error) {
	return m.appts, nil
}

func (m *mockRepo) Add(_ context.Context, a *record.Appointment) (*record.Appointment, error) {
	a.ID = "1700000000000"
	a.SetDeletionFlag(record.FlagActive)
	m.appts = append(m.appts, a)
	return a, nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	for i, a := range m.appts {
		if a.ID == id {
			m.appts = append(m.appts[:i], m.appts[i+1:]...)
			return nil
		}
	}
	return docstore.ErrNotFound
}

func TestService_Add(t *testing.T) {
	svc := NewService(&mockRepo{})
	a, err := svc.Add(context.Background(), &record.Appointment{
		PatientID: "20240105/001", Date: "2024-02-01", Time: "10:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == "" {
		t.Error("expected an assigned id")
	}
}

func TestService_Add_MissingFields(t *testing.T) {
	svc := NewService(&mockRepo{})
	_, err := svc.Add(context.Background(), &record.Appointment{Doctor: "Dr. Rao"})

	var verr *docstore.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	for _, field := range []string{"patientId", "date"} {
		if !strings.Contains(verr.Error(), field) {
			t.Errorf("error should name missing field %q: %v", field, verr)
		}
	}
}

func TestService_List_IncludesSoftDeleted(t *testing.T) {
	repo := &mockRepo{appts: []*record.Appointment{
		{ID: "1", IsDeleted: record.Flag(record.FlagActive)},
		{ID: "2", IsDeleted: record.Flag(record.FlagDeleted)},
	}}
	svc := NewService(repo)

	out, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("list is raw and must include soft-deleted rows, got %d", len(out))
	}
}
