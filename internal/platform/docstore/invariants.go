package docstore

import "github.com/clinic/clinic/internal/domain/record"

// The invariant operations are pure document transforms. They carry no
// state of their own and never touch the disk; callers run them inside
// a FileStore.Mutate cycle (or against a relational backend's loaded
// rows) and persist the result.

// NormalizeDeletionFlags sets isDeleted on every record that lacks it
// to the active value. Records that already carry 0 or 10 are never
// touched, so the pass is idempotent. Returns how many records were
// filled in.
func NormalizeDeletionFlags(doc *Document) int {
	n := 0
	for _, r := range doc.allRecords() {
		if r.DeletionFlag() == nil {
			r.SetDeletionFlag(record.FlagActive)
			n++
		}
	}
	return n
}

// belongsTo is the dependent-ownership rule: a record belongs to a
// patient when its patientId matches, or when its own id collides with
// the patient id. The id clause is kept for compatibility with
// existing data; see DESIGN.md before removing it.
func belongsTo(r record.PatientLinked, patientID string) bool {
	return r.LinkedPatient() == patientID || r.RecordID() == patientID
}

// CascadeSoftDelete marks the patient and every dependent belonging to
// it as deleted, in one logical operation. Dependents' deletedAt is
// not stamped here; only direct per-record soft deletes track it.
// Collections are visited in the fixed declared order and the
// ownership predicate only reads ids, which the cascade never mutates.
func CascadeSoftDelete(doc *Document, patientID string) {
	for _, coll := range doc.dependents() {
		for _, r := range coll {
			if belongsTo(r, patientID) {
				r.SetDeletionFlag(record.FlagDeleted)
			}
		}
	}
	if p, ok := patientByID(doc, patientID); ok {
		p.SetDeletionFlag(record.FlagDeleted)
	}
}

// CascadeRestore reverses a soft delete: the patient and every
// dependent belonging to it go back to active and their deletedAt is
// cleared. Physically removed records cannot be recovered.
func CascadeRestore(doc *Document, patientID string) {
	for _, coll := range doc.dependents() {
		for _, r := range coll {
			if belongsTo(r, patientID) {
				r.SetDeletionFlag(record.FlagActive)
				r.ClearDeletedAt()
			}
		}
	}
	if p, ok := patientByID(doc, patientID); ok {
		p.SetDeletionFlag(record.FlagActive)
		p.ClearDeletedAt()
	}
}

// HardDeletePatient physically removes the patient record and every
// dependent belonging to it. Repair-script path only; there is no way
// back. Returns the number of removed records.
func HardDeletePatient(doc *Document, patientID string) int {
	n := 0
	doc.Appointments, n = removeLinked(doc.Appointments, patientID, n)
	doc.History, n = removeLinked(doc.History, patientID, n)
	doc.Billing, n = removeLinked(doc.Billing, patientID, n)
	doc.DialysisFlowCharts, n = removeLinked(doc.DialysisFlowCharts, patientID, n)
	doc.HaemodialysisRecords, n = removeLinked(doc.HaemodialysisRecords, patientID, n)
	n += NewCollection(&doc.Patients).Remove(func(p *record.Patient) bool {
		return p.ID == patientID
	})
	return n
}

// PropagateNameChange overwrites the denormalized patient name on
// every dependent belonging to the patient. The copies exist so list
// views render without joining against the registry.
func PropagateNameChange(doc *Document, patientID, name string) {
	for _, coll := range doc.dependents() {
		for _, r := range coll {
			if belongsTo(r, patientID) {
				r.SetPatientName(name)
			}
		}
	}
}

func patientByID(doc *Document, id string) (*record.Patient, bool) {
	return NewCollection(&doc.Patients).Find(func(p *record.Patient) bool {
		return p.ID == id
	})
}

func removeLinked[T record.PatientLinked](recs []T, patientID string, n int) ([]T, int) {
	kept := recs[:0]
	for _, r := range recs {
		if belongsTo(r, patientID) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	return kept, n
}
