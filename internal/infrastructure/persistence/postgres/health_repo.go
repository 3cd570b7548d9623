package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cuy-farm/internal/apperr"
	"cuy-farm/internal/domain/health"
)

// HealthRepo provides Postgres access to health logs, treatments and the
// medication catalog.
type HealthRepo struct {
	db *sql.DB
}

// NewHealthRepo builds the health repository.
func NewHealthRepo(db *sql.DB) *HealthRepo {
	return &HealthRepo{db: db}
}

func (r *HealthRepo) CreateHealthLog(ctx context.Context, h health.HealthLog) (health.HealthLog, error) {
	const q = `
INSERT INTO health_logs (animal_id, log_date, diagnosis, notes)
VALUES ($1, $2, $3, $4)
RETURNING id;
`
	if err := r.db.QueryRowContext(ctx, q, h.AnimalID, h.LogDate, h.Diagnosis, h.Notes).Scan(&h.ID); err != nil {
		return health.HealthLog{}, err
	}
	return h, nil
}

func (r *HealthRepo) GetHealthLog(ctx context.Context, id int64) (health.HealthLog, error) {
	const q = `SELECT id, animal_id, log_date, diagnosis, notes FROM health_logs WHERE id = $1;`
	var h health.HealthLog
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.AnimalID, &h.LogDate, &h.Diagnosis, &h.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return health.HealthLog{}, apperr.NotFound("health log %d not found", id)
	}
	if err != nil {
		return health.HealthLog{}, err
	}
	return h, nil
}

func (r *HealthRepo) ListHealthLogs(ctx context.Context) ([]health.HealthLog, error) {
	const q = `SELECT id, animal_id, log_date, diagnosis, notes FROM health_logs ORDER BY log_date, id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]health.HealthLog, 0)
	for rows.Next() {
		var h health.HealthLog
		if err := rows.Scan(&h.ID, &h.AnimalID, &h.LogDate, &h.Diagnosis, &h.Notes); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *HealthRepo) CreateTreatment(ctx context.Context, t health.Treatment) (health.Treatment, error) {
	const q = `
INSERT INTO treatments (health_log_id, medication_id, dosage, withdrawal_end_date)
VALUES ($1, $2, $3, $4)
RETURNING id;
`
	if err := r.db.QueryRowContext(ctx, q, t.HealthLogID, t.MedicationID, t.Dosage, t.WithdrawalEndDate).Scan(&t.ID); err != nil {
		return health.Treatment{}, err
	}
	return t, nil
}

func (r *HealthRepo) ListTreatments(ctx context.Context) ([]health.Treatment, error) {
	const q = `SELECT id, health_log_id, medication_id, dosage, withdrawal_end_date FROM treatments ORDER BY id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]health.Treatment, 0)
	for rows.Next() {
		var t health.Treatment
		if err := rows.Scan(&t.ID, &t.HealthLogID, &t.MedicationID, &t.Dosage, &t.WithdrawalEndDate); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *HealthRepo) CreateMedication(ctx context.Context, m health.Medication) (health.Medication, error) {
	const q = `INSERT INTO medications (name, withdrawal_period_days) VALUES ($1, $2) RETURNING id;`
	if err := r.db.QueryRowContext(ctx, q, m.Name, m.WithdrawalPeriodDays).Scan(&m.ID); err != nil {
		return health.Medication{}, err
	}
	return m, nil
}

func (r *HealthRepo) ListMedications(ctx context.Context) ([]health.Medication, error) {
	const q = `SELECT id, name, withdrawal_period_days FROM medications ORDER BY id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]health.Medication, 0)
	for rows.Next() {
		var m health.Medication
		if err := rows.Scan(&m.ID, &m.Name, &m.WithdrawalPeriodDays); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *HealthRepo) GetMedication(ctx context.Context, id int64) (health.Medication, error) {
	const q = `SELECT id, name, withdrawal_period_days FROM medications WHERE id = $1;`
	var m health.Medication
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Name, &m.WithdrawalPeriodDays)
	if errors.Is(err, sql.ErrNoRows) {
		return health.Medication{}, apperr.NotFound("medication %d not found", id)
	}
	if err != nil {
		return health.Medication{}, err
	}
	return m, nil
}
