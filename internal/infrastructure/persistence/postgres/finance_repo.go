package postgres

import (
	"context"
	"database/sql"

	"cuy-farm/internal/domain/finance"
)

// FinanceRepo provides Postgres access to financial transactions. The
// attribution target is stored as a nullable kind/id column pair.
type FinanceRepo struct {
	db *sql.DB
}

// NewFinanceRepo builds the finance repository.
func NewFinanceRepo(db *sql.DB) *FinanceRepo {
	return &FinanceRepo{db: db}
}

func (r *FinanceRepo) CreateTransaction(ctx context.Context, t finance.FinancialTransaction) (finance.FinancialTransaction, error) {
	const q = `
INSERT INTO financial_transactions (transaction_date, type, amount, description, related_kind, related_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id;
`
	var kind *string
	var relatedID *int64
	if t.Related != nil {
		k := string(t.Related.Kind)
		kind = &k
		relatedID = &t.Related.ID
	}
	err := r.db.QueryRowContext(ctx, q, t.TransactionDate, string(t.Type), t.Amount, t.Description, kind, relatedID).Scan(&t.ID)
	if err != nil {
		return finance.FinancialTransaction{}, err
	}
	return t, nil
}

func (r *FinanceRepo) ListTransactions(ctx context.Context) ([]finance.FinancialTransaction, error) {
	const q = `
SELECT id, transaction_date, type, amount, description, related_kind, related_id
FROM financial_transactions
ORDER BY transaction_date, id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]finance.FinancialTransaction, 0)
	for rows.Next() {
		var t finance.FinancialTransaction
		var typ string
		var kind sql.NullString
		var relatedID sql.NullInt64
		if err := rows.Scan(&t.ID, &t.TransactionDate, &typ, &t.Amount, &t.Description, &kind, &relatedID); err != nil {
			return nil, err
		}
		t.Type = finance.TransactionType(typ)
		if kind.Valid && relatedID.Valid {
			t.Related = &finance.RelatedEntity{Kind: finance.RelatedKind(kind.String), ID: relatedID.Int64}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
