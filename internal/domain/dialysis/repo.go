package dialysis

import (
	"context"

	"github.com/clinic/clinic/internal/domain/record"
)

// FlowChartRepository covers the intra-session flow charts.
type FlowChartRepository interface {
	List(ctx context.Context) ([]*record.FlowChart, error)
	Add(ctx context.Context, f *record.FlowChart) (*record.FlowChart, error)
	Update(ctx context.Context, f *record.FlowChart) (*record.FlowChart, error)
	// Delete hard-removes the chart; no cascade.
	Delete(ctx context.Context, id string) error
}

// SessionRepository covers the per-session haemodialysis records.
type SessionRepository interface {
	List(ctx context.Context) ([]*record.HaemodialysisRecord, error)
	Add(ctx context.Context, r *record.HaemodialysisRecord) (*record.HaemodialysisRecord, error)
	Update(ctx context.Context, r *record.HaemodialysisRecord) (*record.HaemodialysisRecord, error)
	Delete(ctx context.Context, id string) error
}
