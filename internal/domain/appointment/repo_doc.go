package appointment

import (
	"context"
	"strconv"
	"time"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

type docRepo struct {
	store *docstore.FileStore
	now   func() time.Time
}

func NewDocRepo(store *docstore.FileStore) Repository {
	return &docRepo{store: store, now: time.Now}
}

func (r *docRepo) List(_ context.Context) ([]*record.Appointment, error) {
	var out []*record.Appointment
	err := r.store.View(func(doc *docstore.Document) error {
		out = doc.Appointments
		return nil
	})
	return out, err
}

func (r *docRepo) Add(_ context.Context, a *record.Appointment) (*record.Appointment, error) {
	err := r.store.Mutate(func(doc *docstore.Document) error {
		a.ID = strconv.FormatInt(r.now().UnixMilli(), 10)
		a.SetDeletionFlag(record.FlagActive)
		docstore.NewCollection(&doc.Appointments).Insert(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *docRepo) Delete(_ context.Context, id string) error {
	return r.store.Mutate(func(doc *docstore.Document) error {
		appts := docstore.NewCollection(&doc.Appointments)
		a, ok := appts.Find(func(a *record.Appointment) bool { return a.ID == id })
		if !ok {
			return docstore.ErrNotFound
		}
		appts.Remove(func(x *record.Appointment) bool { return x.ID == id })
		if a.PatientID != "" {
			docstore.NewCollection(&doc.History).Remove(func(h *record.HistoryEntry) bool {
				return h.PatientID == a.PatientID
			})
		}
		return nil
	})
}
