package record

// HistoryEntry is one row of a patient's clinical history.
type HistoryEntry struct {
	ID          string  `json:"id"`
	PatientID   string  `json:"patientId,omitempty"`
	PatientName string  `json:"patientName,omitempty"`
	Date        string  `json:"date,omitempty"`
	Complaint   string  `json:"complaint,omitempty"`
	Treatment   string  `json:"treatment,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	IsDeleted   *int    `json:"isDeleted,omitempty"`
	DeletedAt   *string `json:"deletedAt,omitempty"`
}

func (h *HistoryEntry) RecordID() string { return h.ID }

func (h *HistoryEntry) DeletionFlag() *int { return h.IsDeleted }

func (h *HistoryEntry) SetDeletionFlag(v int) { h.IsDeleted = Flag(v) }

func (h *HistoryEntry) LinkedPatient() string { return h.PatientID }

func (h *HistoryEntry) SetPatientName(name string) { h.PatientName = name }

func (h *HistoryEntry) StampDeletedAt(ts string) { h.DeletedAt = &ts }

func (h *HistoryEntry) ClearDeletedAt() { h.DeletedAt = nil }
