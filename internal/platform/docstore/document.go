// Package docstore persists the whole clinic as a single JSON document
// and keeps it internally coherent: one file on disk, six named
// collections, soft-delete cascades and flag normalization applied to
// the document as a unit.
package docstore

import "github.com/clinic/clinic/internal/domain/record"

// Document is the aggregate holding every collection. It is the sole
// persisted artifact; no secondary indices survive reload, so all
// lookups are linear scans.
type Document struct {
	Patients             []*record.Patient             `json:"patients"`
	Appointments         []*record.Appointment         `json:"appointments"`
	Billing              []*record.Invoice             `json:"billing"`
	History              []*record.HistoryEntry        `json:"history"`
	DialysisFlowCharts   []*record.FlowChart           `json:"dialysisFlowCharts"`
	HaemodialysisRecords []*record.HaemodialysisRecord `json:"haemodialysisRecords"`
}

// NewDocument returns an empty document with every collection
// materialized, so it serializes with all top-level keys present.
func NewDocument() *Document {
	d := &Document{}
	d.ensure()
	return d
}

// ensure replaces nil collections with empty ones after decoding a
// document written by an older version.
func (d *Document) ensure() {
	if d.Patients == nil {
		d.Patients = []*record.Patient{}
	}
	if d.Appointments == nil {
		d.Appointments = []*record.Appointment{}
	}
	if d.Billing == nil {
		d.Billing = []*record.Invoice{}
	}
	if d.History == nil {
		d.History = []*record.HistoryEntry{}
	}
	if d.DialysisFlowCharts == nil {
		d.DialysisFlowCharts = []*record.FlowChart{}
	}
	if d.HaemodialysisRecords == nil {
		d.HaemodialysisRecords = []*record.HaemodialysisRecord{}
	}
}

// dependents returns views over every dependent collection in the
// fixed cascade order: appointments, history, billing, flow charts,
// haemodialysis records.
func (d *Document) dependents() [][]record.PatientLinked {
	return [][]record.PatientLinked{
		linked(d.Appointments),
		linked(d.History),
		linked(d.Billing),
		linked(d.DialysisFlowCharts),
		linked(d.HaemodialysisRecords),
	}
}

// allRecords returns every record in the document, patients first.
func (d *Document) allRecords() []record.Deletable {
	out := make([]record.Deletable, 0, len(d.Patients))
	for _, p := range d.Patients {
		out = append(out, p)
	}
	for _, coll := range d.dependents() {
		for _, r := range coll {
			out = append(out, r)
		}
	}
	return out
}

func linked[T record.PatientLinked](recs []T) []record.PatientLinked {
	out := make([]record.PatientLinked, len(recs))
	for i, r := range recs {
		out[i] = r
	}
	return out
}
