package billing

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

const invoiceCols = `id, patient_id, patient_name, date, description,
	amount, amount_paid, status, is_deleted, deleted_at`

func (r *pgRepo) List(ctx context.Context) ([]*record.Invoice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+invoiceCols+` FROM billing ORDER BY seq`)
	if err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	defer rows.Close()

	var out []*record.Invoice
	for rows.Next() {
		var inv record.Invoice
		if err := rows.Scan(&inv.ID, &inv.PatientID, &inv.PatientName, &inv.Date,
			&inv.Description, &inv.Amount, &inv.AmountPaid, &inv.Status,
			&inv.IsDeleted, &inv.DeletedAt); err != nil {
			return nil, &docstore.StoreError{Op: "load", Err: err}
		}
		out = append(out, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	return out, nil
}

func (r *pgRepo) Add(ctx context.Context, inv *record.Invoice) (*record.Invoice, error) {
	inv.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	inv.SetDeletionFlag(record.FlagActive)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO billing (id, patient_id, patient_name, date, description,
			amount, amount_paid, status, is_deleted, deleted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		inv.ID, inv.PatientID, inv.PatientName, inv.Date, inv.Description,
		inv.Amount, inv.AmountPaid, inv.Status, inv.IsDeleted, inv.DeletedAt)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	return inv, nil
}

func (r *pgRepo) Update(ctx context.Context, inv *record.Invoice) (*record.Invoice, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE billing SET patient_id=$2, patient_name=$3, date=$4, description=$5,
			amount=$6, amount_paid=$7, status=$8, is_deleted=$9, deleted_at=$10
		WHERE id = $1`,
		inv.ID, inv.PatientID, inv.PatientName, inv.Date, inv.Description,
		inv.Amount, inv.AmountPaid, inv.Status, inv.IsDeleted, inv.DeletedAt)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return nil, docstore.ErrNotFound
	}
	return inv, nil
}

func (r *pgRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM billing WHERE id = $1`, id)
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
	tag, err := r.pool.Exec(ctx, `UPDATE billing SET is_deleted = $2, deleted_at = $3
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
	tag, err := r.pool.Exec(ctx, `UPDATE billing SET is_deleted = $2, deleted_at = NULL
		WHERE id = $1`, id, record.FlagActive)
	if err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}
