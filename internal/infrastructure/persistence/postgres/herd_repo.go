// Package postgres implements the application-layer store interfaces on a
// Postgres database.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cuy-farm/internal/apperr"
	"cuy-farm/internal/domain/livestock"
)

// HerdRepo provides Postgres access to animals, lines, locations, weight
// logs and reproduction events.
type HerdRepo struct {
	db *sql.DB
}

// NewHerdRepo builds the herd repository.
func NewHerdRepo(db *sql.DB) *HerdRepo {
	return &HerdRepo{db: db}
}

func (r *HerdRepo) CreateAnimal(ctx context.Context, a livestock.Animal) (livestock.Animal, error) {
	const q = `
INSERT INTO animals (tag, birth_date, sex, status, line_id, sire_id, dam_id, location_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q,
		a.Tag, a.BirthDate, string(a.Sex), string(a.Status),
		a.LineID, a.SireID, a.DamID, a.LocationID,
	).Scan(&a.ID)
	if err != nil {
		return livestock.Animal{}, err
	}
	return a, nil
}

const animalColumns = `id, tag, birth_date, sex, status, line_id, sire_id, dam_id, location_id`

func scanAnimal(row interface{ Scan(...any) error }) (livestock.Animal, error) {
	var a livestock.Animal
	var sex, status string
	err := row.Scan(&a.ID, &a.Tag, &a.BirthDate, &sex, &status,
		&a.LineID, &a.SireID, &a.DamID, &a.LocationID)
	if err != nil {
		return livestock.Animal{}, err
	}
	a.Sex = livestock.Sex(sex)
	a.Status = livestock.Status(status)
	return a, nil
}

func (r *HerdRepo) GetAnimal(ctx context.Context, id int64) (livestock.Animal, error) {
	const q = `SELECT ` + animalColumns + ` FROM animals WHERE id = $1;`
	a, err := scanAnimal(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return livestock.Animal{}, apperr.NotFound("animal %d not found", id)
	}
	if err != nil {
		return livestock.Animal{}, err
	}
	return a, nil
}

func (r *HerdRepo) ListAnimals(ctx context.Context) ([]livestock.Animal, error) {
	const q = `SELECT ` + animalColumns + ` FROM animals ORDER BY id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]livestock.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *HerdRepo) UpdateAnimalStatus(ctx context.Context, id int64, status livestock.Status) error {
	const q = `UPDATE animals SET status = $1 WHERE id = $2;`
	res, err := r.db.ExecContext(ctx, q, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("animal %d not found", id)
	}
	return nil
}

func (r *HerdRepo) CreateLine(ctx context.Context, l livestock.Line) (livestock.Line, error) {
	const q = `INSERT INTO lines (name, description) VALUES ($1, $2) RETURNING id;`
	if err := r.db.QueryRowContext(ctx, q, l.Name, l.Description).Scan(&l.ID); err != nil {
		return livestock.Line{}, err
	}
	return l, nil
}

func (r *HerdRepo) ListLines(ctx context.Context) ([]livestock.Line, error) {
	const q = `SELECT id, name, description FROM lines ORDER BY id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]livestock.Line, 0)
	for rows.Next() {
		var l livestock.Line
		if err := rows.Scan(&l.ID, &l.Name, &l.Description); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *HerdRepo) CreateLocation(ctx context.Context, l livestock.Location) (livestock.Location, error) {
	const q = `
INSERT INTO locations (name, type, capacity, last_cleaned_date)
VALUES ($1, $2, $3, $4)
RETURNING id;
`
	if err := r.db.QueryRowContext(ctx, q, l.Name, string(l.Type), l.Capacity, l.LastCleanedDate).Scan(&l.ID); err != nil {
		return livestock.Location{}, err
	}
	return l, nil
}

func (r *HerdRepo) ListLocations(ctx context.Context) ([]livestock.Location, error) {
	const q = `SELECT id, name, type, capacity, last_cleaned_date FROM locations ORDER BY id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]livestock.Location, 0)
	for rows.Next() {
		var l livestock.Location
		var typ string
		if err := rows.Scan(&l.ID, &l.Name, &typ, &l.Capacity, &l.LastCleanedDate); err != nil {
			return nil, err
		}
		l.Type = livestock.LocationType(typ)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *HerdRepo) CreateWeightLog(ctx context.Context, w livestock.WeightLog) (livestock.WeightLog, error) {
	const q = `
INSERT INTO weight_logs (animal_id, log_date, weight_kg)
VALUES ($1, $2, $3)
RETURNING id;
`
	if err := r.db.QueryRowContext(ctx, q, w.AnimalID, w.LogDate, w.WeightKg).Scan(&w.ID); err != nil {
		return livestock.WeightLog{}, err
	}
	return w, nil
}

func (r *HerdRepo) ListWeightLogs(ctx context.Context) ([]livestock.WeightLog, error) {
	const q = `SELECT id, animal_id, log_date, weight_kg FROM weight_logs ORDER BY log_date, id;`
	return r.queryWeightLogs(ctx, q)
}

func (r *HerdRepo) WeightLogsByAnimal(ctx context.Context, animalID int64) ([]livestock.WeightLog, error) {
	const q = `SELECT id, animal_id, log_date, weight_kg FROM weight_logs WHERE animal_id = $1 ORDER BY log_date, id;`
	return r.queryWeightLogs(ctx, q, animalID)
}

func (r *HerdRepo) queryWeightLogs(ctx context.Context, q string, args ...any) ([]livestock.WeightLog, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]livestock.WeightLog, 0)
	for rows.Next() {
		var w livestock.WeightLog
		if err := rows.Scan(&w.ID, &w.AnimalID, &w.LogDate, &w.WeightKg); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *HerdRepo) CreateReproductionEvent(ctx context.Context, e livestock.ReproductionEvent) (livestock.ReproductionEvent, error) {
	const q = `
INSERT INTO reproduction_events (female_id, male_id, mating_date, expected_birth_date, actual_birth_date, live_births, dead_births)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q,
		e.FemaleID, e.MaleID, e.MatingDate, e.ExpectedBirthDate,
		e.ActualBirthDate, e.LiveBirths, e.DeadBirths,
	).Scan(&e.ID)
	if err != nil {
		return livestock.ReproductionEvent{}, err
	}
	return e, nil
}

func (r *HerdRepo) ListReproductionEvents(ctx context.Context) ([]livestock.ReproductionEvent, error) {
	const q = `
SELECT id, female_id, male_id, mating_date, expected_birth_date, actual_birth_date, live_births, dead_births
FROM reproduction_events
ORDER BY mating_date, id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]livestock.ReproductionEvent, 0)
	for rows.Next() {
		var e livestock.ReproductionEvent
		if err := rows.Scan(&e.ID, &e.FemaleID, &e.MaleID, &e.MatingDate,
			&e.ExpectedBirthDate, &e.ActualBirthDate, &e.LiveBirths, &e.DeadBirths); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
