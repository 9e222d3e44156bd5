package docstore

import (
	"testing"

	"github.com/clinic/clinic/internal/domain/record"
)

// seedDoc builds a document with one patient and dependents linked to
// it three ways: by patientId, by the id-collision fallback, and not at
// all.
func seedDoc() *Document {
	doc := NewDocument()
	doc.Patients = []*record.Patient{
		{ID: "20240105/001", Name: "Asha", CatheterInsertionDate: "2024-01-05"},
		{ID: "20240106/001", Name: "Ravi", CatheterInsertionDate: "2024-01-06"},
	}
	doc.Appointments = []*record.Appointment{
		{ID: "a1", PatientID: "20240105/001", PatientName: "Asha"},
		{ID: "20240105/001", PatientID: "", PatientName: "Asha"}, // id collision
		{ID: "a2", PatientID: "20240106/001", PatientName: "Ravi"},
	}
	doc.History = []*record.HistoryEntry{
		{ID: "h1", PatientID: "20240105/001", PatientName: "Asha"},
	}
	doc.Billing = []*record.Invoice{
		{ID: "b1", PatientID: "20240105/001", PatientName: "Asha"},
		{ID: "b2", PatientID: "20240106/001", PatientName: "Ravi"},
	}
	doc.DialysisFlowCharts = []*record.FlowChart{
		{ID: "f1", PatientID: "20240105/001", PatientName: "Asha"},
	}
	doc.HaemodialysisRecords = []*record.HaemodialysisRecord{
		{ID: "s1", PatientID: "20240105/001", PatientName: "Asha"},
	}
	return doc
}

func TestNormalizeDeletionFlags(t *testing.T) {
	doc := seedDoc()
	doc.Patients[1].IsDeleted = record.Flag(record.FlagDeleted)

	n := NormalizeDeletionFlags(doc)
	if n != 9 {
		t.Errorf("expected 9 filled-in flags, got %d", n)
	}
	if *doc.Patients[0].IsDeleted != record.FlagActive {
		t.Error("legacy patient should be normalized to active")
	}
	if *doc.Patients[1].IsDeleted != record.FlagDeleted {
		t.Error("already-deleted patient must not be touched")
	}

	if n := NormalizeDeletionFlags(doc); n != 0 {
		t.Errorf("second pass must be a no-op, filled %d", n)
	}
}

func TestCascadeSoftDelete(t *testing.T) {
	doc := seedDoc()
	CascadeSoftDelete(doc, "20240105/001")

	if !isDeleted(doc.Patients[0].IsDeleted) {
		t.Error("patient should be soft-deleted")
	}
	if !isDeleted(doc.Appointments[0].IsDeleted) {
		t.Error("appointment linked by patientId should be soft-deleted")
	}
	if !isDeleted(doc.Appointments[1].IsDeleted) {
		t.Error("appointment matched by id collision should be soft-deleted")
	}
	if isDeleted(doc.Appointments[2].IsDeleted) {
		t.Error("other patient's appointment must stay untouched")
	}
	if !isDeleted(doc.History[0].IsDeleted) || !isDeleted(doc.Billing[0].IsDeleted) ||
		!isDeleted(doc.DialysisFlowCharts[0].IsDeleted) || !isDeleted(doc.HaemodialysisRecords[0].IsDeleted) {
		t.Error("every dependent collection should cascade")
	}
	if doc.Appointments[0].DeletedAt != nil {
		t.Error("cascade must not stamp deletedAt on dependents")
	}
	if isDeleted(doc.Patients[1].IsDeleted) {
		t.Error("other patient must stay active")
	}
}

func TestCascadeRestore(t *testing.T) {
	doc := seedDoc()
	CascadeSoftDelete(doc, "20240105/001")
	ts := "2024-02-01T00:00:00Z"
	doc.Patients[0].DeletedAt = &ts
	doc.Billing[0].DeletedAt = &ts

	CascadeRestore(doc, "20240105/001")

	if isDeleted(doc.Patients[0].IsDeleted) {
		t.Error("patient should be active after restore")
	}
	if doc.Patients[0].DeletedAt != nil {
		t.Error("restore should clear the patient's deletedAt")
	}
	if isDeleted(doc.Billing[0].IsDeleted) || doc.Billing[0].DeletedAt != nil {
		t.Error("dependents should be active with deletedAt cleared")
	}
	if isDeleted(doc.Appointments[1].IsDeleted) {
		t.Error("id-collision dependent should be restored too")
	}
}

func TestHardDeletePatient(t *testing.T) {
	doc := seedDoc()
	n := HardDeletePatient(doc, "20240105/001")

	// patient + 2 appointments + history + billing + flow chart + session
	if n != 7 {
		t.Errorf("expected 7 removed records, got %d", n)
	}
	if len(doc.Patients) != 1 || doc.Patients[0].ID != "20240106/001" {
		t.Errorf("expected only the other patient to remain, got %v", doc.Patients)
	}
	if len(doc.Appointments) != 1 || doc.Appointments[0].ID != "a2" {
		t.Errorf("expected only the other patient's appointment, got %v", doc.Appointments)
	}
	if len(doc.Billing) != 1 {
		t.Errorf("expected one invoice left, got %d", len(doc.Billing))
	}
}

func TestPropagateNameChange(t *testing.T) {
	doc := seedDoc()
	PropagateNameChange(doc, "20240105/001", "Asha Devi")

	if doc.Appointments[0].PatientName != "Asha Devi" {
		t.Error("appointment should carry the new name")
	}
	if doc.Appointments[1].PatientName != "Asha Devi" {
		t.Error("id-collision dependent should carry the new name")
	}
	if doc.Appointments[2].PatientName != "Ravi" {
		t.Error("other patient's records must keep their name")
	}
	if doc.Billing[0].PatientName != "Asha Devi" || doc.History[0].PatientName != "Asha Devi" {
		t.Error("every dependent collection should be updated")
	}
}

func isDeleted(flag *int) bool {
	return flag != nil && *flag == record.FlagDeleted
}
