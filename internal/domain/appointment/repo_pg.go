package appointment

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
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

const apptCols = `id, patient_id, patient_name, date, time, doctor,
	purpose, notes, is_deleted, deleted_at`

func (r *pgRepo) List(ctx context.Context) ([]*record.Appointment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+apptCols+` FROM appointments ORDER BY seq`)
	if err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	defer rows.Close()

	var out []*record.Appointment
	for rows.Next() {
		var a record.Appointment
		if err := rows.Scan(&a.ID, &a.PatientID, &a.PatientName, &a.Date, &a.Time,
			&a.Doctor, &a.Purpose, &a.Notes, &a.IsDeleted, &a.DeletedAt); err != nil {
			return nil, &docstore.StoreError{Op: "load", Err: err}
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	return out, nil
}

func (r *pgRepo) Add(ctx context.Context, a *record.Appointment) (*record.Appointment, error) {
	a.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	a.SetDeletionFlag(record.FlagActive)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (id, patient_id, patient_name, date, time,
			doctor, purpose, notes, is_deleted, deleted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.PatientID, a.PatientName, a.Date, a.Time,
		a.Doctor, a.Purpose, a.Notes, a.IsDeleted, a.DeletedAt)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	return a, nil
}

func (r *pgRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	defer tx.Rollback(ctx)

	var patientID string
	err = tx.QueryRow(ctx,
		`DELETE FROM appointments WHERE id = $1 RETURNING patient_id`, id).Scan(&patientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return docstore.ErrNotFound
	}
	if err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	if patientID != "" {
		if _, err := tx.Exec(ctx,
			`DELETE FROM history WHERE patient_id = $1`, patientID); err != nil {
			return &docstore.StoreError{Op: "save", Err: err}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	return nil
}
