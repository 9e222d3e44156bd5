package record

// Invoice is one entry in the billing collection.
type Invoice struct {
	ID          string   `json:"id"`
	PatientID   string   `json:"patientId,omitempty"`
	PatientName string   `json:"patientName,omitempty"`
	Date        string   `json:"date,omitempty"`
	Description string   `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	AmountPaid  *float64 `json:"amountPaid,omitempty"`
	Status      string   `json:"status,omitempty"`
	IsDeleted   *int     `json:"isDeleted,omitempty"`
	DeletedAt   *string  `json:"deletedAt,omitempty"`
}

func (i *Invoice) RecordID() string { return i.ID }

func (i *Invoice) DeletionFlag() *int { return i.IsDeleted }

func (i *Invoice) SetDeletionFlag(v int) { i.IsDeleted = Flag(v) }

func (i *Invoice) LinkedPatient() string { return i.PatientID }

func (i *Invoice) SetPatientName(name string) { i.PatientName = name }

func (i *Invoice) StampDeletedAt(ts string) { i.DeletedAt = &ts }

func (i *Invoice) ClearDeletedAt() { i.DeletedAt = nil }
