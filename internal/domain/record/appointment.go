package record

// Appointment is a scheduled visit. Ids are server-assigned
// millisecond timestamps; PatientID links back to the registry.
type Appointment struct {
	ID          string  `json:"id"`
	PatientID   string  `json:"patientId,omitempty"`
	PatientName string  `json:"patientName,omitempty"`
	Date        string  `json:"date,omitempty"`
	Time        string  `json:"time,omitempty"`
	Doctor      string  `json:"doctor,omitempty"`
	Purpose     string  `json:"purpose,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	IsDeleted   *int    `json:"isDeleted,omitempty"`
	DeletedAt   *string `json:"deletedAt,omitempty"`
}

func (a *Appointment) RecordID() string { return a.ID }

func (a *Appointment) DeletionFlag() *int { return a.IsDeleted }

func (a *Appointment) SetDeletionFlag(v int) { a.IsDeleted = Flag(v) }

func (a *Appointment) LinkedPatient() string { return a.PatientID }

func (a *Appointment) SetPatientName(name string) { a.PatientName = name }

func (a *Appointment) StampDeletedAt(ts string) { a.DeletedAt = &ts }

func (a *Appointment) ClearDeletedAt() { a.DeletedAt = nil }
