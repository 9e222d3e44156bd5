package record

// FlowChart is an intra-session dialysis flow chart.
type FlowChart struct {
	ID            string  `json:"id"`
	PatientID     string  `json:"patientId,omitempty"`
	PatientName   string  `json:"patientName,omitempty"`
	Date          string  `json:"date,omitempty"`
	PreWeight     *float64 `json:"preWeight,omitempty"`
	PostWeight    *float64 `json:"postWeight,omitempty"`
	BloodPressure string  `json:"bloodPressure,omitempty"`
	PulseRate     *int    `json:"pulseRate,omitempty"`
	UFGoal        *float64 `json:"ufGoal,omitempty"`
	Remarks       string  `json:"remarks,omitempty"`
	IsDeleted     *int    `json:"isDeleted,omitempty"`
	DeletedAt     *string `json:"deletedAt,omitempty"`
}

func (f *FlowChart) RecordID() string { return f.ID }

func (f *FlowChart) DeletionFlag() *int { return f.IsDeleted }

func (f *FlowChart) SetDeletionFlag(v int) { f.IsDeleted = Flag(v) }

func (f *FlowChart) LinkedPatient() string { return f.PatientID }

func (f *FlowChart) SetPatientName(name string) { f.PatientName = name }

func (f *FlowChart) StampDeletedAt(ts string) { f.DeletedAt = &ts }

func (f *FlowChart) ClearDeletedAt() { f.DeletedAt = nil }

// HaemodialysisRecord is the per-session summary chart.
type HaemodialysisRecord struct {
	ID           string  `json:"id"`
	PatientID    string  `json:"patientId,omitempty"`
	PatientName  string  `json:"patientName,omitempty"`
	Date         string  `json:"date,omitempty"`
	Dialyzer     string  `json:"dialyzer,omitempty"`
	HeparinDose  string  `json:"heparinDose,omitempty"`
	Duration     string  `json:"duration,omitempty"`
	Complications string `json:"complications,omitempty"`
	Technician   string  `json:"technician,omitempty"`
	IsDeleted    *int    `json:"isDeleted,omitempty"`
	DeletedAt    *string `json:"deletedAt,omitempty"`
}

func (r *HaemodialysisRecord) RecordID() string { return r.ID }

func (r *HaemodialysisRecord) DeletionFlag() *int { return r.IsDeleted }

func (r *HaemodialysisRecord) SetDeletionFlag(v int) { r.IsDeleted = Flag(v) }

func (r *HaemodialysisRecord) LinkedPatient() string { return r.PatientID }

func (r *HaemodialysisRecord) SetPatientName(name string) { r.PatientName = name }

func (r *HaemodialysisRecord) StampDeletedAt(ts string) { r.DeletedAt = &ts }

func (r *HaemodialysisRecord) ClearDeletedAt() { r.DeletedAt = nil }
