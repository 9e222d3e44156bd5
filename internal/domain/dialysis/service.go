package dialysis

import (
	"context"
	"strings"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

type Service struct {
	flowCharts FlowChartRepository
	sessions   SessionRepository
}

func NewService(flowCharts FlowChartRepository, sessions SessionRepository) *Service {
	return &Service{flowCharts: flowCharts, sessions: sessions}
}

// -- Flow charts --

func (s *Service) ListFlowCharts(ctx context.Context) ([]*record.FlowChart, error) {
	return s.flowCharts.List(ctx)
}

func (s *Service) AddFlowChart(ctx context.Context, f *record.FlowChart) (*record.FlowChart, error) {
	if strings.TrimSpace(f.PatientID) == "" {
		return nil, &docstore.ValidationError{Missing: []string{"patientId"}}
	}
	return s.flowCharts.Add(ctx, f)
}

func (s *Service) UpdateFlowChart(ctx context.Context, f *record.FlowChart) (*record.FlowChart, error) {
	return s.flowCharts.Update(ctx, f)
}

func (s *Service) DeleteFlowChart(ctx context.Context, id string) error {
	return s.flowCharts.Delete(ctx, id)
}

// -- Haemodialysis sessions --

func (s *Service) ListSessions(ctx context.Context) ([]*record.HaemodialysisRecord, error) {
	return s.sessions.List(ctx)
}

func (s *Service) AddSession(ctx context.Context, hr *record.HaemodialysisRecord) (*record.HaemodialysisRecord, error) {
	if strings.TrimSpace(hr.PatientID) == "" {
		return nil, &docstore.ValidationError{Missing: []string{"patientId"}}
	}
	return s.sessions.Add(ctx, hr)
}

func (s *Service) UpdateSession(ctx context.Context, hr *record.HaemodialysisRecord) (*record.HaemodialysisRecord, error) {
	return s.sessions.Update(ctx, hr)
}

func (s *Service) DeleteSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}
