// Package feeding holds feed consumption logs and the feed inventory they
// draw down from.
package feeding

import (
	"time"

	"github.com/shopspring/decimal"

	"cuy-farm/internal/apperr"
)

// FeedInventory is one purchasable feed product and its remaining stock.
// QuantityKg is decremented when feeding logs are recorded against it.
type FeedInventory struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"product_name"`
	QuantityKg  decimal.Decimal `json:"quantity_kg"`
	CostPerKg   decimal.Decimal `json:"cost_per_kg"`
	Supplier    string          `json:"supplier,omitempty"`
	EntryDate   time.Time       `json:"entry_date"`
}

// Validate checks inventory invariants on write.
func (f FeedInventory) Validate() error {
	if f.ProductName == "" {
		return apperr.Validation("product_name is required")
	}
	if f.QuantityKg.IsNegative() {
		return apperr.Validation("quantity_kg cannot be negative")
	}
	if f.CostPerKg.IsNegative() {
		return apperr.Validation("cost_per_kg cannot be negative")
	}
	return nil
}

// FeedingLog records feed given to one location on one day. Creating a log
// atomically decrements the matching inventory row; the decrement fails
// when stock would go negative.
type FeedingLog struct {
	ID         int64           `json:"id"`
	LocationID int64           `json:"location_id"`
	LogDate    time.Time       `json:"log_date"`
	FeedType   string          `json:"feed_type"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
}

// Validate checks feeding-log invariants on write.
func (f FeedingLog) Validate() error {
	if f.LocationID == 0 {
		return apperr.Validation("location_id is required")
	}
	if f.LogDate.IsZero() {
		return apperr.Validation("log_date is required")
	}
	if f.FeedType == "" {
		return apperr.Validation("feed_type is required")
	}
	if !f.QuantityKg.IsPositive() {
		return apperr.Validation("quantity_kg must be positive")
	}
	return nil
}
