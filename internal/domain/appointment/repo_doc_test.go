package appointment

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
	fixed := time.UnixMilli(1700000000000)
	return store, &docRepo{store: store, now: func() time.Time { return fixed }}
}

func TestDocRepo_AddAssignsTimestampID(t *testing.T) {
	_, repo := newDocFixture(t)

	a, err := repo.Add(context.Background(), &record.Appointment{
		PatientID: "20240105/001", Date: "2024-02-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != "1700000000000" {
		t.Errorf("expected millisecond timestamp id, got %q", a.ID)
	}
	if a.IsDeleted == nil || *a.IsDeleted != record.FlagActive {
		t.Error("new appointment should carry the active flag")
	}
}

func TestDocRepo_DeleteRemovesLinkedHistory(t *testing.T) {
	store, repo := newDocFixture(t)
	err := store.Mutate(func(doc *docstore.Document) error {
		doc.Appointments = []*record.Appointment{
			{ID: "a1", PatientID: "20240105/001"},
			{ID: "a2", PatientID: "20240106/001"},
		}
		doc.History = []*record.HistoryEntry{
			{ID: "h1", PatientID: "20240105/001"},
			{ID: "h2", PatientID: "20240105/001"},
			{ID: "h3", PatientID: "20240106/001"},
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = store.View(func(doc *docstore.Document) error {
		if len(doc.Appointments) != 1 || doc.Appointments[0].ID != "a2" {
			t.Errorf("expected only a2 left, got %v", doc.Appointments)
		}
		if len(doc.History) != 1 || doc.History[0].ID != "h3" {
			t.Errorf("expected only the other patient's history left, got %v", doc.History)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestDocRepo_DeleteUnknown(t *testing.T) {
	_, repo := newDocFixture(t)
	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
