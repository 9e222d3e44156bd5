package dialysis

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

type flowChartPGRepo struct {
	pool *pgxpool.Pool
}

func NewFlowChartPGRepo(pool *pgxpool.Pool) FlowChartRepository {
	return &flowChartPGRepo{pool: pool}
}

const flowChartCols = `id, patient_id, patient_name, date, pre_weight,
	post_weight, blood_pressure, pulse_rate, uf_goal, remarks, is_deleted, deleted_at`

func (r *flowChartPGRepo) List(ctx context.Context) ([]*record.FlowChart, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+flowChartCols+` FROM dialysis_flow_charts ORDER BY seq`)
	if err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	defer rows.Close()

	var out []*record.FlowChart
	for rows.Next() {
		var f record.FlowChart
		if err := rows.Scan(&f.ID, &f.PatientID, &f.PatientName, &f.Date,
			&f.PreWeight, &f.PostWeight, &f.BloodPressure, &f.PulseRate,
			&f.UFGoal, &f.Remarks, &f.IsDeleted, &f.DeletedAt); err != nil {
			return nil, &docstore.StoreError{Op: "load", Err: err}
		}
		out = append(out, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	return out, nil
}

func (r *flowChartPGRepo) Add(ctx context.Context, f *record.FlowChart) (*record.FlowChart, error) {
	f.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	f.SetDeletionFlag(record.FlagActive)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO dialysis_flow_charts (id, patient_id, patient_name, date,
			pre_weight, post_weight, blood_pressure, pulse_rate, uf_goal,
			remarks, is_deleted, deleted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		f.ID, f.PatientID, f.PatientName, f.Date,
		f.PreWeight, f.PostWeight, f.BloodPressure, f.PulseRate, f.UFGoal,
		f.Remarks, f.IsDeleted, f.DeletedAt)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	return f, nil
}

func (r *flowChartPGRepo) Update(ctx context.Context, f *record.FlowChart) (*record.FlowChart, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE dialysis_flow_charts SET patient_id=$2, patient_name=$3, date=$4,
			pre_weight=$5, post_weight=$6, blood_pressure=$7, pulse_rate=$8,
			uf_goal=$9, remarks=$10, is_deleted=$11, deleted_at=$12
		WHERE id = $1`,
		f.ID, f.PatientID, f.PatientName, f.Date,
		f.PreWeight, f.PostWeight, f.BloodPressure, f.PulseRate,
		f.UFGoal, f.Remarks, f.IsDeleted, f.DeletedAt)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return nil, docstore.ErrNotFound
	}
	return f, nil
}

func (r *flowChartPGRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dialysis_flow_charts WHERE id = $1`, id)
	if err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

type sessionPGRepo struct {
	pool *pgxpool.Pool
}

func NewSessionPGRepo(pool *pgxpool.Pool) SessionRepository {
	return &sessionPGRepo{pool: pool}
}

const sessionCols = `id, patient_id, patient_name, date, dialyzer,
	heparin_dose, duration, complications, technician, is_deleted, deleted_at`

func (r *sessionPGRepo) List(ctx context.Context) ([]*record.HaemodialysisRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionCols+` FROM haemodialysis_records ORDER BY seq`)
	if err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	defer rows.Close()

	var out []*record.HaemodialysisRecord
	for rows.Next() {
		var hr record.HaemodialysisRecord
		if err := rows.Scan(&hr.ID, &hr.PatientID, &hr.PatientName, &hr.Date,
			&hr.Dialyzer, &hr.HeparinDose, &hr.Duration, &hr.Complications,
			&hr.Technician, &hr.IsDeleted, &hr.DeletedAt); err != nil {
			return nil, &docstore.StoreError{Op: "load", Err: err}
		}
		out = append(out, &hr)
	}
	if err := rows.Err(); err != nil {
		return nil, &docstore.StoreError{Op: "load", Err: err}
	}
	return out, nil
}

func (r *sessionPGRepo) Add(ctx context.Context, hr *record.HaemodialysisRecord) (*record.HaemodialysisRecord, error) {
	hr.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	hr.SetDeletionFlag(record.FlagActive)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO haemodialysis_records (id, patient_id, patient_name, date,
			dialyzer, heparin_dose, duration, complications, technician,
			is_deleted, deleted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		hr.ID, hr.PatientID, hr.PatientName, hr.Date,
		hr.Dialyzer, hr.HeparinDose, hr.Duration, hr.Complications, hr.Technician,
		hr.IsDeleted, hr.DeletedAt)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	return hr, nil
}

func (r *sessionPGRepo) Update(ctx context.Context, hr *record.HaemodialysisRecord) (*record.HaemodialysisRecord, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE haemodialysis_records SET patient_id=$2, patient_name=$3, date=$4,
			dialyzer=$5, heparin_dose=$6, duration=$7, complications=$8,
			technician=$9, is_deleted=$10, deleted_at=$11
		WHERE id = $1`,
		hr.ID, hr.PatientID, hr.PatientName, hr.Date,
		hr.Dialyzer, hr.HeparinDose, hr.Duration, hr.Complications,
		hr.Technician, hr.IsDeleted, hr.DeletedAt)
	if err != nil {
		return nil, &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return nil, docstore.ErrNotFound
	}
	return hr, nil
}

func (r *sessionPGRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM haemodialysis_records WHERE id = $1`, id)
	if err != nil {
		return &docstore.StoreError{Op: "save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}
