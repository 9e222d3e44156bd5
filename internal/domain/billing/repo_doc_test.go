package billing

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

func newDocFixture(t *testing.T) (*docstore.FileStore, *docRepo) {
	t.Helper()
	store := docstore.NewFileStore(filepath.Join(t.TempDir(), "clinic-db.json"))
	fixed := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	return store, &docRepo{store: store, now: func() time.Time { return fixed }}
}

func seedInvoice(t *testing.T, store *docstore.FileStore) {
	t.Helper()
	err := store.Mutate(func(doc *docstore.Document) error {
		doc.Billing = []*record.Invoice{
			{ID: "b1", PatientID: "20240105/001", Status: "pending"},
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestDocRepo_SoftDeleteStampsDeletedAt(t *testing.T) {
	store, repo := newDocFixture(t)
	seedInvoice(t, store)

	if err := repo.SoftDelete(context.Background(), "b1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := store.View(func(doc *docstore.Document) error {
		inv := doc.Billing[0]
		if inv.IsDeleted == nil || *inv.IsDeleted != record.FlagDeleted {
			t.Error("invoice should be soft-deleted")
		}
		if inv.DeletedAt == nil || *inv.DeletedAt != "2024-02-01T12:00:00Z" {
			t.Errorf("expected RFC3339 deletedAt stamp, got %v", inv.DeletedAt)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestDocRepo_RestoreClearsDeletedAt(t *testing.T) {
	store, repo := newDocFixture(t)
	seedInvoice(t, store)

	if err := repo.SoftDelete(context.Background(), "b1"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Restore(context.Background(), "b1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := store.View(func(doc *docstore.Document) error {
		inv := doc.Billing[0]
		if inv.IsDeleted == nil || *inv.IsDeleted != record.FlagActive {
			t.Error("invoice should be active again")
		}
		if inv.DeletedAt != nil {
			t.Error("restore should clear deletedAt")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestDocRepo_UpdateReplacesWholeRecord(t *testing.T) {
	store, repo := newDocFixture(t)
	seedInvoice(t, store)

	amount := 2500.0
	updated, err := repo.Update(context.Background(), &record.Invoice{
		ID: "b1", PatientID: "20240105/001", Status: "paid", Amount: &amount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != "paid" {
		t.Errorf("expected updated status, got %q", updated.Status)
	}

	err = store.View(func(doc *docstore.Document) error {
		inv := doc.Billing[0]
		if inv.Status != "paid" || inv.Amount == nil || *inv.Amount != 2500.0 {
			t.Errorf("expected replaced invoice persisted, got %+v", inv)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestDocRepo_UpdateUnknown(t *testing.T) {
	_, repo := newDocFixture(t)
	_, err := repo.Update(context.Background(), &record.Invoice{ID: "missing"})
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDocRepo_DeleteIsPhysical(t *testing.T) {
	store, repo := newDocFixture(t)
	seedInvoice(t, store)

	if err := repo.Delete(context.Background(), "b1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := store.View(func(doc *docstore.Document) error {
		if len(doc.Billing) != 0 {
			t.Errorf("expected empty billing collection, got %v", doc.Billing)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
