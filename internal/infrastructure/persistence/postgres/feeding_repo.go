package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"cuy-farm/internal/apperr"
	"cuy-farm/internal/domain/feeding"
)

// FeedingRepo provides Postgres access to the feed inventory and feeding
// logs.
type FeedingRepo struct {
	db *sql.DB
}

// NewFeedingRepo builds the feeding repository.
func NewFeedingRepo(db *sql.DB) *FeedingRepo {
	return &FeedingRepo{db: db}
}

func (r *FeedingRepo) CreateFeedInventory(ctx context.Context, f feeding.FeedInventory) (feeding.FeedInventory, error) {
	const q = `
INSERT INTO feed_inventory (product_name, quantity_kg, cost_per_kg, supplier, entry_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q, f.ProductName, f.QuantityKg, f.CostPerKg, f.Supplier, f.EntryDate).Scan(&f.ID)
	if err != nil {
		return feeding.FeedInventory{}, err
	}
	return f, nil
}

func (r *FeedingRepo) ListFeedInventory(ctx context.Context) ([]feeding.FeedInventory, error) {
	const q = `SELECT id, product_name, quantity_kg, cost_per_kg, supplier, entry_date FROM feed_inventory ORDER BY id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]feeding.FeedInventory, 0)
	for rows.Next() {
		var f feeding.FeedInventory
		if err := rows.Scan(&f.ID, &f.ProductName, &f.QuantityKg, &f.CostPerKg, &f.Supplier, &f.EntryDate); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// CreateFeedingLog inserts the log and decrements the matching inventory
// row in one transaction. The decrement is guarded so concurrent writes can
// never drive the stock negative; when the guard matches no row the whole
// transaction rolls back.
func (r *FeedingRepo) CreateFeedingLog(ctx context.Context, f feeding.FeedingLog) (feeding.FeedingLog, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return feeding.FeedingLog{}, err
	}
	defer tx.Rollback()

	const decrement = `
UPDATE feed_inventory
SET quantity_kg = quantity_kg - $1
WHERE product_name = $2 AND quantity_kg >= $1;
`
	res, err := tx.ExecContext(ctx, decrement, f.QuantityKg, f.FeedType)
	if err != nil {
		return feeding.FeedingLog{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return feeding.FeedingLog{}, err
	}
	if n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM feed_inventory WHERE product_name = $1);`,
			f.FeedType,
		).Scan(&exists); err != nil {
			return feeding.FeedingLog{}, err
		}
		if !exists {
			return feeding.FeedingLog{}, apperr.Validation("no feed inventory for product %q", f.FeedType)
		}
		return feeding.FeedingLog{}, apperr.Validation("insufficient stock of %q for %s kg", f.FeedType, f.QuantityKg.String())
	}

	const insert = `
INSERT INTO feeding_logs (location_id, log_date, feed_type, quantity_kg)
VALUES ($1, $2, $3, $4)
RETURNING id;
`
	if err := tx.QueryRowContext(ctx, insert, f.LocationID, f.LogDate, f.FeedType, f.QuantityKg).Scan(&f.ID); err != nil {
		return feeding.FeedingLog{}, err
	}
	if err := tx.Commit(); err != nil {
		return feeding.FeedingLog{}, fmt.Errorf("commit feeding log: %w", err)
	}
	return f, nil
}

func (r *FeedingRepo) ListFeedingLogs(ctx context.Context) ([]feeding.FeedingLog, error) {
	const q = `SELECT id, location_id, log_date, feed_type, quantity_kg FROM feeding_logs ORDER BY log_date, id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]feeding.FeedingLog, 0)
	for rows.Next() {
		var f feeding.FeedingLog
		if err := rows.Scan(&f.ID, &f.LocationID, &f.LogDate, &f.FeedType, &f.QuantityKg); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
