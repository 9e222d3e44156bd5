package history

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

type pgRepo struct {
	pool *pgxpool.Pool
}

func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

const historyCols = `id, patient_id, patient_name, date, complaint,
	treatment, notes, is_deleted, deleted_at`

func (r *pgRepo) List(ctx context.Context) ([]*record.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+historyCols+` FROM history ORDER BY seq`)
	if err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	defer rows.Close()

	var out []*record.HistoryEntry
	for rows.Next() {
		var e record.HistoryEntry
		if err := rows.Scan(&e.ID, &e.PatientID, &e.PatientName, &e.Date,
			&e.Complaint, &e.Treatment, &e.Notes, &e.IsDeleted, &e.DeletedAt); err != nil {
			return nil, &docstore.StoreError{Op: "load", Err: err}
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	return out, nil
}

func (r *pgRepo) Add(ctx context.Context, e *record.HistoryEntry) (*record.HistoryEntry, error) {
	e.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	e.SetDeletionFlag(record.FlagActive)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO history (id, patient_id, patient_name, date, complaint,
			treatment, notes, is_deleted, deleted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		e.ID, e.PatientID, e.PatientName, e.Date, e.Complaint,
		e.Treatment, e.Notes, e.IsDeleted, e.DeletedAt)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	return e, nil
}

func (r *pgRepo) Update(ctx context.Context, e *record.HistoryEntry) (*record.HistoryEntry, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE history SET patient_id=$2, patient_name=$3, date=$4, complaint=$5,
			treatment=$6, notes=$7, is_deleted=$8, deleted_at=$9
		WHERE id = $1`,
		e.ID, e.PatientID, e.PatientName, e.Date, e.Complaint,
		e.Treatment, e.Notes, e.IsDeleted, e.DeletedAt)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return nil, docstore.ErrNotFound
	}
	return e, nil
}

func (r *pgRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM history WHERE id = $1`, id)
	if err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (r *pgRepo) SoftDelete(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	tag, err := r.pool.Exec(ctx, `UPDATE history SET is_deleted = $2, deleted_at = $3
		WHERE id = $1`, id, record.FlagDeleted, now)
	if err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (r *pgRepo) Restore(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE history SET is_deleted = $2, deleted_at = NULL
		WHERE id = $1`, id, record.FlagActive)
	if err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}
