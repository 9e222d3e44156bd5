package patient

import (
	"context"
	"time"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

type docRepo struct {
	store *docstore.FileStore
}

// NewDocRepo returns the document-store-backed registry.
func NewDocRepo(store *docstore.FileStore) Repository {
	return &docRepo{store: store}
}

func (r *docRepo) List(_ context.Context, activeOnly bool) ([]*record.Patient, error) {
	var out []*record.Patient
	err := r.store.View(func(doc *docstore.Document) error {
		coll := docstore.NewCollection(&doc.Patients)
		if activeOnly {
			out = coll.Filter(func(p *record.Patient) bool {
				return record.Active(p.IsDeleted)
			})
		} else {
			out = coll.Filter(func(*record.Patient) bool { return true })
		}
		return nil
	})
	return out, err
}

func (r *docRepo) Get(_ context.Context, id string) (*record.Patient, error) {
	var out *record.Patient
	err := r.store.View(func(doc *docstore.Document) error {
		p, ok := findPatient(doc, id)
		if !ok {
			return docstore.ErrNotFound
		}
		out = p
		return nil
	})
	return out, err
}

func (r *docRepo) Add(_ context.Context, p *record.Patient) (*record.Patient, error) {
	err := r.store.Mutate(func(doc *docstore.Document) error {
		id, err := AllocateID(p.CatheterInsertionDate, doc.Patients)
		if err != nil {
			return err
		}
		p.ID = id
		p.SetDeletionFlag(record.FlagActive)
		docstore.NewCollection(&doc.Patients).Insert(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *docRepo) Update(_ context.Context, p *record.Patient) (*record.Patient, error) {
	var out *record.Patient
	err := r.store.Mutate(func(doc *docstore.Document) error {
		cur, ok := findPatient(doc, p.ID)
		if !ok {
			return docstore.ErrNotFound
		}
		renamed := p.Name != cur.Name
		cur.Name = p.Name
		cur.Age = p.Age
		cur.Gender = p.Gender
		cur.Phone = p.Phone
		cur.Address = p.Address
		cur.BloodGroup = p.BloodGroup
		cur.Diagnosis = p.Diagnosis
		cur.CatheterInsertionDate = p.CatheterInsertionDate
		if renamed {
			docstore.PropagateNameChange(doc, cur.ID, cur.Name)
		}
		out = cur
		return nil
	})
	return out, err
}

func (r *docRepo) Delete(_ context.Context, id string) error {
	return r.store.Mutate(func(doc *docstore.Document) error {
		p, ok := findPatient(doc, id)
		if !ok {
			return docstore.ErrNotFound
		}
		docstore.NormalizeDeletionFlags(doc)
		docstore.CascadeSoftDelete(doc, id)
		p.StampDeletedAt(time.Now().UTC().Format(time.RFC3339))
		docstore.NormalizeDeletionFlags(doc)
		return nil
	})
}

func (r *docRepo) Restore(_ context.Context, id string) error {
	return r.store.Mutate(func(doc *docstore.Document) error {
		if _, ok := findPatient(doc, id); !ok {
			return docstore.ErrNotFound
		}
		docstore.CascadeRestore(doc, id)
		return nil
	})
}

func (r *docRepo) Deduplicate(_ context.Context) (int, error) {
	fixed := 0
	err := r.store.Mutate(func(doc *docstore.Document) error {
		fixed = DeduplicateIDs(doc.Patients)
		return nil
	})
	return fixed, err
}

func (r *docRepo) Purge(_ context.Context, id string) (int, error) {
	removed := 0
	err := r.store.Mutate(func(doc *docstore.Document) error {
		if _, ok := findPatient(doc, id); !ok {
			return docstore.ErrNotFound
		}
		removed = docstore.HardDeletePatient(doc, id)
		return nil
	})
	return removed, err
}

func findPatient(doc *docstore.Document, id string) (*record.Patient, bool) {
	return docstore.NewCollection(&doc.Patients).Find(func(p *record.Patient) bool {
		return p.ID == id
	})
}
