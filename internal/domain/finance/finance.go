// Package finance holds financial transactions. The loosely-typed
// related_entity_id of the legacy system is replaced by a tagged
// RelatedEntity so calculators can match on the kind instead of assuming a
// convention.
package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"cuy-farm/internal/apperr"
)

// TransactionType splits money movements into costs and income.
type TransactionType string

const (
	TypeCost   TransactionType = "cost"
	TypeIncome TransactionType = "income"
)

// RelatedKind tags what a transaction is attributed to.
type RelatedKind string

const (
	RelatedAnimal   RelatedKind = "animal"
	RelatedLocation RelatedKind = "location"
)

// RelatedEntity is an explicit, typed attribution target.
type RelatedEntity struct {
	Kind RelatedKind `json:"kind"`
	ID   int64       `json:"id"`
}

// FinancialTransaction is one cost or income entry.
type FinancialTransaction struct {
	ID              int64           `json:"id"`
	TransactionDate time.Time       `json:"transaction_date"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	Related         *RelatedEntity  `json:"related_entity,omitempty"`
}

// Validate checks transaction invariants on write.
func (t FinancialTransaction) Validate() error {
	if t.Type != TypeCost && t.Type != TypeIncome {
		return apperr.Validation("type must be cost or income")
	}
	if t.TransactionDate.IsZero() {
		return apperr.Validation("transaction_date is required")
	}
	if t.Amount.IsNegative() {
		return apperr.Validation("amount cannot be negative")
	}
	if t.Related != nil && t.Related.Kind != RelatedAnimal && t.Related.Kind != RelatedLocation {
		return apperr.Validation("related_entity.kind must be animal or location")
	}
	return nil
}

// RelatesToAnimal reports whether the transaction is attributed to the
// given animal.
func (t FinancialTransaction) RelatesToAnimal(animalID int64) bool {
	return t.Related != nil && t.Related.Kind == RelatedAnimal && t.Related.ID == animalID
}
