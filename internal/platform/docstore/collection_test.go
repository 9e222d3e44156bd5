package docstore

import (
	"testing"

	"github.com/clinic/clinic/internal/domain/record"
)

func TestCollection_FindReplaceRemove(t *testing.T) {
	invoices := []*record.Invoice{
		{ID: "1", PatientID: "p1"},
		{ID: "2", PatientID: "p1"},
		{ID: "3", PatientID: "p2"},
	}
	coll := NewCollection(&invoices)

	inv, ok := coll.Find(func(i *record.Invoice) bool { return i.ID == "2" })
	if !ok || inv.PatientID != "p1" {
		t.Fatalf("expected to find invoice 2, got %v %v", inv, ok)
	}
	if _, ok := coll.Find(func(i *record.Invoice) bool { return i.ID == "9" }); ok {
		t.Error("found an invoice that does not exist")
	}

	replaced := coll.Replace(func(i *record.Invoice) bool { return i.ID == "3" },
		&record.Invoice{ID: "3", PatientID: "p9"})
	if !replaced || invoices[2].PatientID != "p9" {
		t.Errorf("expected invoice 3 replaced in place, got %v", invoices[2])
	}
	if coll.Replace(func(i *record.Invoice) bool { return false }, &record.Invoice{}) {
		t.Error("replace with no match must report false")
	}

	removed := coll.Remove(func(i *record.Invoice) bool { return i.PatientID == "p1" })
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
	if len(invoices) != 1 || invoices[0].ID != "3" {
		t.Errorf("expected only invoice 3 left, got %v", invoices)
	}
}

func TestCollection_InsertsShareBackingSlice(t *testing.T) {
	var patients []*record.Patient
	coll := NewCollection(&patients)
	coll.Insert(&record.Patient{ID: "20240105/001"})
	coll.Insert(&record.Patient{ID: "20240105/002"})

	if len(patients) != 2 {
		t.Fatalf("expected inserts visible through the original slice, got %d", len(patients))
	}
}
