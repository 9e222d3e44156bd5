package billing

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

func (r *docRepo) List(_ context.Context) ([]*record.Invoice, error) {
	var out []*record.Invoice
	err := r.store.View(func(doc *docstore.Document) error {
		out = doc.Billing
		return nil
	})
	return out, err
}

func (r *docRepo) Add(_ context.Context, inv *record.Invoice) (*record.Invoice, error) {
	err := r.store.Mutate(func(doc *docstore.Document) error {
		inv.ID = strconv.FormatInt(r.now().UnixMilli(), 10)
		inv.SetDeletionFlag(record.FlagActive)
		docstore.NewCollection(&doc.Billing).Insert(inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *docRepo) Update(_ context.Context, inv *record.Invoice) (*record.Invoice, error) {
	err := r.store.Mutate(func(doc *docstore.Document) error {
		ok := docstore.NewCollection(&doc.Billing).Replace(func(x *record.Invoice) bool {
			return x.ID == inv.ID
		}, inv)
		if !ok {
			return docstore.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *docRepo) Delete(_ context.Context, id string) error {
	return r.store.Mutate(func(doc *docstore.Document) error {
		if docstore.NewCollection(&doc.Billing).Remove(func(x *record.Invoice) bool {
			return x.ID == id
		}) == 0 {
			return docstore.ErrNotFound
		}
		return nil
	})
}

func (r *docRepo) SoftDelete(_ context.Context, id string) error {
	return r.store.Mutate(func(doc *docstore.Document) error {
		inv, ok := docstore.NewCollection(&doc.Billing).Find(func(x *record.Invoice) bool {
			return x.ID == id
		})
		if !ok {
			return docstore.ErrNotFound
		}
		inv.SetDeletionFlag(record.FlagDeleted)
		inv.StampDeletedAt(r.now().UTC().Format(time.RFC3339))
		return nil
	})
}

func (r *docRepo) Restore(_ context.Context, id string) error {
	return r.store.Mutate(func(doc *docstore.Document) error {
		inv, ok := docstore.NewCollection(&doc.Billing).Find(func(x *record.Invoice) bool {
			return x.ID == id
		})
		if !ok {
			return docstore.ErrNotFound
		}
		inv.SetDeletionFlag(record.FlagActive)
		inv.ClearDeletedAt()
		return nil
	})
}
