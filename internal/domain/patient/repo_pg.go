package patient

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

// pgRepo is the relational variant of the registry. It mirrors the
// document backend operation for operation, cascades included; the
// dependent tables are touched with the same ownership predicate
// (patient_id = $1 OR id = $1).
type pgRepo struct {
	pool *pgxpool.Pool
}

func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

// dependentTables lists the dependent tables in cascade order.
var dependentTables = []string{
	"appointments", "history", "billing",
	"dialysis_flow_charts", "haemodialysis_records",
}

const patientCols = `id, name, age, gender, phone, address,
	blood_group, diagnosis, catheter_insertion_date, is_deleted, deleted_at`

func scanPatient(row pgx.Row) (*record.Patient, error) {
	var p record.Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Address,
		&p.BloodGroup, &p.Diagnosis, &p.CatheterInsertionDate, &p.IsDeleted, &p.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	return &p, nil
}

func (r *pgRepo) List(ctx context.Context, activeOnly bool) ([]*record.Patient, error) {
	q := `SELECT ` + patientCols + ` FROM patients ORDER BY seq`
	if activeOnly {
		q = `SELECT ` + patientCols + ` FROM patients
			WHERE is_deleted IS NULL OR is_deleted <> 0 ORDER BY seq`
	}
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	defer rows.Close()

	var out []*record.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	return out, nil
}

func (r *pgRepo) Get(ctx context.Context, id string) (*record.Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *pgRepo) Add(ctx context.Context, p *record.Patient) (*record.Patient, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	defer tx.Rollback(ctx)

	existing, err := loadIDs(ctx, tx)
	if err != nil {
		return nil, err
	}
	id, err := AllocateID(p.CatheterInsertionDate, existing)
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.SetDeletionFlag(record.FlagActive)

	_, err = tx.Exec(ctx, `
		INSERT INTO patients (id, name, age, gender, phone, address,
			blood_group, diagnosis, catheter_insertion_date, is_deleted, deleted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.Name, p.Age, p.Gender, p.Phone, p.Address,
		p.BloodGroup, p.Diagnosis, p.CatheterInsertionDate, p.IsDeleted, p.DeletedAt)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	return p, nil
}

func (r *pgRepo) Update(ctx context.Context, p *record.Patient) (*record.Patient, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	defer tx.Rollback(ctx)

	cur, err := scanPatient(tx.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, p.ID))
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE patients SET name=$2, age=$3, gender=$4, phone=$5, address=$6,
			blood_group=$7, diagnosis=$8, catheter_insertion_date=$9
		WHERE id = $1`,
		p.ID, p.Name, p.Age, p.Gender, p.Phone, p.Address,
		p.BloodGroup, p.Diagnosis, p.CatheterInsertionDate)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}

	if p.Name != cur.Name {
		for _, table := range dependentTables {
			_, err = tx.Exec(ctx, `UPDATE `+table+` SET patient_name = $2
				WHERE patient_id = $1 OR id = $1`, p.ID, p.Name)
			if err != nil {
				return nil, &docstore.StoreError{Op: "save", Err: err}
			}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	cur.Name = p.Name
	cur.Age = p.Age
	cur.Gender = p.Gender
	cur.Phone = p.Phone
	cur.Address = p.Address
	cur.BloodGroup = p.BloodGroup
	cur.Diagnosis = p.Diagnosis
	cur.CatheterInsertionDate = p.CatheterInsertionDate
	return cur, nil
}

func (r *pgRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC().Format(time.RFC3339)
	tag, err := tx.Exec(ctx, `UPDATE patients SET is_deleted = $2, deleted_at = $3
		WHERE id = $1`, id, record.FlagDeleted, now)
	if err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	for _, table := range dependentTables {
		_, err = tx.Exec(ctx, `UPDATE `+table+` SET is_deleted = $2
			WHERE patient_id = $1 OR id = $1`, id, record.FlagDeleted)
		if err != nil {
			return &docstore.StoreError{Op: "save", Err: err}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	return nil
}

func (r *pgRepo) Restore(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE patients SET is_deleted = $2, deleted_at = NULL
		WHERE id = $1`, id, record.FlagActive)
	if err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	for _, table := range dependentTables {
		_, err = tx.Exec(ctx, `UPDATE `+table+` SET is_deleted = $2, deleted_at = NULL
			WHERE patient_id = $1 OR id = $1`, id, record.FlagActive)
		if err != nil {
			return &docstore.StoreError{Op: "save", Err: err}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	return nil
}

func (r *pgRepo) Deduplicate(ctx context.Context) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, &docstore.StoreError{Op: "save", Err: err}
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT seq, id, catheter_insertion_date FROM patients ORDER BY seq FOR UPDATE`)
	if err != nil {
		return 0, &docstore.StoreError{Op: "load", Err: err}
	}
	type row struct {
		seq int64
		p   *record.Patient
	}
	var all []row
	for rows.Next() {
		var seq int64
		p := &record.Patient{}
		if err := rows.Scan(&seq, &p.ID, &p.CatheterInsertionDate); err != nil {
			rows.Close()
			return 0, &docstore.StoreError{Op: "load", Err: err}
		}
		all = append(all, row{seq: seq, p: p})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, &docstore.StoreError{Op: "load", Err: err}
	}

	patients := make([]*record.Patient, len(all))
	before := make([]string, len(all))
	for i, r := range all {
		patients[i] = r.p
		before[i] = r.p.ID
	}
	fixed := DeduplicateIDs(patients)
	for i, r := range all {
		if r.p.ID == before[i] {
			continue
		}
		if _, err := tx.Exec(ctx, `UPDATE patients SET id = $2 WHERE seq = $1`,
			r.seq, r.p.ID); err != nil {
			return 0, &docstore.StoreError{Op: "save", Err: err}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, &docstore.StoreError{Op: "save", Err: err}
	}
	return fixed, nil
}

func (r *pgRepo) Purge(ctx context.Context, id string) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, &docstore.StoreError{Op: "save", Err: err}
	}
	defer tx.Rollback(ctx)

	removed := 0
	for _, table := range dependentTables {
		tag, err := tx.Exec(ctx, `DELETE FROM `+table+`
			WHERE patient_id = $1 OR id = $1`, id)
		if err != nil {
			return 0, &docstore.StoreError{Op: "save", Err: err}
		}
		removed += int(tag.RowsAffected())
	}
	tag, err := tx.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return 0, &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return 0, docstore.ErrNotFound
	}
	removed += int(tag.RowsAffected())
	if err := tx.Commit(ctx); err != nil {
		return 0, &docstore.StoreError{Op: "save", Err: err}
	}
	return removed, nil
}

func loadIDs(ctx context.Context, tx pgx.Tx) ([]*record.Patient, error) {
	rows, err := tx.Query(ctx, `SELECT id FROM patients`)
	if err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	defer rows.Close()
	var out []*record.Patient
	for rows.Next() {
		p := &record.Patient{}
		if err := rows.Scan(&p.ID); err != nil {
			return nil, &docstore.StoreError{Op: "load", Err: err}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	return out, nil
}
