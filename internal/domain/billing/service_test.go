package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

type mockRepo struct {
	invoices []*record.Invoice
}

func (m *mockRepo) List(_ context.Context) ([]*record.Invoice, error) {
	return m.invoices, nil
}

func (m *mockRepo) Add(_ context.Context, inv *record.Invoice) (*record.Invoice, error) {
	inv.ID = "1700000000000"
	inv.SetDeletionFlag(record.FlagActive)
	m.invoices = append(m.invoices, inv)
	return inv, nil
}

func (m *mockRepo) Update(_ context.Context, inv *record.Invoice) (*record.Invoice, error) {
	for i, cur := range m.invoices {
		if cur.ID == inv.ID {
			m.invoices[i] = inv
			return inv, nil
		}
	}
	return nil, docstore.ErrNotFound
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	for i, inv := range m.invoices {
		if inv.ID == id {
			m.invoices = append(m.invoices[:i], m.invoices[i+1:]...)
			return nil
		}
	}
	return docstore.ErrNotFound
}

func (m *mockRepo) SoftDelete(_ context.Context, id string) error {
	for _, inv := range m.invoices {
		if inv.ID == id {
			inv.SetDeletionFlag(record.FlagDeleted)
			return nil
		}
	}
	return docstore.ErrNotFound
}

func (m *mockRepo) Restore(_ context.Context, id string) error {
	for _, inv := range m.invoices {
		if inv.ID == id {
			inv.SetDeletionFlag(record.FlagActive)
			return nil
		}
	}
	return docstore.ErrNotFound
}

func TestService_List_FiltersSoftDeleted(t *testing.T) {
	repo := &mockRepo{invoices: []*record.Invoice{
		{ID: "b1"}, // legacy, no flag
		{ID: "b2", IsDeleted: record.Flag(record.FlagActive)},
		{ID: "b3", IsDeleted: record.Flag(record.FlagDeleted)},
	}}
	svc := NewService(repo)

	out, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 visible invoices, got %d", len(out))
	}
	for _, inv := range out {
		if inv.ID == "b3" {
			t.Error("soft-deleted invoice leaked into the ledger")
		}
	}
}

func TestService_Add_RequiresPatientID(t *testing.T) {
	svc := NewService(&mockRepo{})
	_, err := svc.Add(context.Background(), &record.Invoice{Description: "dialysis session"})

	var verr *docstore.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestService_SoftDeleteThenList(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	inv, _ := svc.Add(context.Background(), &record.Invoice{PatientID: "20240105/001"})

	if err := svc.SoftDelete(context.Background(), inv.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ := svc.List(context.Background())
	if len(out) != 0 {
		t.Errorf("soft-deleted invoice should disappear from the ledger, got %d", len(out))
	}

	if err := svc.Restore(context.Background(), inv.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ = svc.List(context.Background())
	if len(out) != 1 {
		t.Errorf("restored invoice should reappear, got %d", len(out))
	}
}
