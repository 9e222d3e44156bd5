// Package record defines the element types of every collection in the
// clinic document, together with the soft-delete flag convention they
// all share. The persisted data marks live records with 10 and
// soft-deleted records with 0; records written before the flag existed
// carry no value at all and are read as active.
package record

const (
	FlagActive  = 10
	FlagDeleted = 0
)

// Active reports whether a deletion flag marks a live record. A nil
// flag belongs to a legacy record that predates soft deletion.
func Active(flag *int) bool {
	return flag == nil || *flag != FlagDeleted
}

// Flag returns a pointer to v, for assigning flag literals.
func Flag(v int) *int { return &v }

// Deletable is implemented by every record in the document.
type Deletable interface {
	RecordID() string
	DeletionFlag() *int
	SetDeletionFlag(v int)
}

// PatientLinked is implemented by dependent records that reference a
// patient and carry a denormalized copy of its display name.
type PatientLinked interface {
	Deletable
	LinkedPatient() string
	SetPatientName(name string)
	StampDeletedAt(ts string)
	ClearDeletedAt()
}
