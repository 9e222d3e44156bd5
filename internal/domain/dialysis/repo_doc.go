package dialysis

import (
	"context"
	"strconv"
	"time"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

type flowChartDocRepo struct {
	store *docstore.FileStore
	now   func() time.Time
}

func NewFlowChartDocRepo(store *docstore.FileStore) FlowChartRepository {
	return &flowChartDocRepo{store: store, now: time.Now}
}

func (r *flowChartDocRepo) List(_ context.Context) ([]*record.FlowChart, error) {
	var out []*record.FlowChart
	err := r.store.View(func(doc *docstore.Document) error {
		out = doc.DialysisFlowCharts
		return nil
	})
	return out, err
}

func (r *flowChartDocRepo) Add(_ context.Context, f *record.FlowChart) (*record.FlowChart, error) {
	err := r.store.Mutate(func(doc *docstore.Document) error {
		f.ID = strconv.FormatInt(r.now().UnixMilli(), 10)
		f.SetDeletionFlag(record.FlagActive)
		docstore.NewCollection(&doc.DialysisFlowCharts).Insert(f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *flowChartDocRepo) Update(_ context.Context, f *record.FlowChart) (*record.FlowChart, error) {
	err := r.store.Mutate(func(doc *docstore.Document) error {
		ok := docstore.NewCollection(&doc.DialysisFlowCharts).Replace(func(x *record.FlowChart) bool {
			return x.ID == f.ID
		}, f)
		if !ok {
			return docstore.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *flowChartDocRepo) Delete(_ context.Context, id string) error {
	return r.store.Mutate(func(doc *docstore.Document) error {
		if docstore.NewCollection(&doc.DialysisFlowCharts).Remove(func(x *record.FlowChart) bool {
			return x.ID == id
		}) == 0 {
			return docstore.ErrNotFound
		}
		return nil
	})
}

type sessionDocRepo struct {
	store *docstore.FileStore
	now   func() time.Time
}

func NewSessionDocRepo(store *docstore.FileStore) SessionRepository {
	return &sessionDocRepo{store: store, now: time.Now}
}

func (r *sessionDocRepo) List(_ context.Context) ([]*record.HaemodialysisRecord, error) {
	var out []*record.HaemodialysisRecord
	err := r.store.View(func(doc *docstore.Document) error {
		out = doc.HaemodialysisRecords
		return nil
	})
	return out, err
}

func (r *sessionDocRepo) Add(_ context.Context, hr *record.HaemodialysisRecord) (*record.HaemodialysisRecord, error) {
	err := r.store.Mutate(func(doc *docstore.Document) error {
		hr.ID = strconv.FormatInt(r.now().UnixMilli(), 10)
		hr.SetDeletionFlag(record.FlagActive)
		docstore.NewCollection(&doc.HaemodialysisRecords).Insert(hr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hr, nil
}

func (r *sessionDocRepo) Update(_ context.Context, hr *record.HaemodialysisRecord) (*record.HaemodialysisRecord, error) {
	err := r.store.Mutate(func(doc *docstore.Document) error {
		ok := docstore.NewCollection(&doc.HaemodialysisRecords).Replace(func(x *record.HaemodialysisRecord) bool {
			return x.ID == hr.ID
		}, hr)
		if !ok {
			return docstore.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hr, nil
}

func (r *sessionDocRepo) Delete(_ context.Context, id string) error {
	return r.store.Mutate(func(doc *docstore.Document) error {
		if docstore.NewCollection(&doc.HaemodialysisRecords).Remove(func(x *record.HaemodialysisRecord) bool {
			return x.ID == id
		}) == 0 {
			return docstore.ErrNotFound
		}
		return nil
	})
}
