package history

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

func (r *docRepo) List(_ context.Context) ([]*record.HistoryEntry, error) {
	var out []*record.HistoryEntry
	err := r.store.View(func(doc *docstore.Document) error {
		out = doc.History
		return nil
	})
	return out, err
}

func (r *docRepo) Add(_ context.Context, e *record.HistoryEntry) (*record.HistoryEntry, error) {
	err := r.store.Mutate(func(doc *docstore.Document) error {
		e.ID = strconv.FormatInt(r.now().UnixMilli(), 10)
		e.SetDeletionFlag(record.FlagActive)
		docstore.NewCollection(&doc.History).Insert(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *docRepo) Update(_ context.Context, e *record.HistoryEntry) (*record.HistoryEntry, error) {
	err := r.store.Mutate(func(doc *docstore.Document) error {
		ok := docstore.NewCollection(&doc.History).Replace(func(x *record.HistoryEntry) bool {
			return x.ID == e.ID
		}, e)
		if !ok {
			return docstore.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *docRepo) Delete(_ context.Context, id string) error {
	return r.store.Mutate(func(doc *docstore.Document) error {
		if docstore.NewCollection(&doc.History).Remove(func(x *record.HistoryEntry) bool {
			return x.ID == id
		}) == 0 {
			return docstore.ErrNotFound
		}
		return nil
	})
}

func (r *docRepo) SoftDelete(_ context.Context, id string) error {
	return r.store.Mutate(func(doc *docstore.Document) error {
		e, ok := docstore.NewCollection(&doc.History).Find(func(x *record.HistoryEntry) bool {
			return x.ID == id
		})
		if !ok {
			return docstore.ErrNotFound
		}
		e.SetDeletionFlag(record.FlagDeleted)
		e.StampDeletedAt(r.now().UTC().Format(time.RFC3339))
		return nil
	})
}

func (r *docRepo) Restore(_ context.Context, id string) error {
	return r.store.Mutate(func(doc *docstore.Document) error {
		e, ok := docstore.NewCollection(&doc.History).Find(func(x *record.HistoryEntry) bool {
			return x.ID == id
		})
		if !ok {
			return docstore.ErrNotFound
		}
		e.SetDeletionFlag(record.FlagActive)
		e.ClearDeletedAt()
		return nil
	})
}
