package livestock

import (
	"time"

	"github.com/shopspring/decimal"

	"cuy-farm/internal/apperr"
)

// Line is a genetic line (e.g. Peru, Andina, Inti).
type Line struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LocationType distinguishes pools from cages.
type LocationType string

const (
	LocationPool LocationType = "pool"
	LocationCage LocationType = "cage"
)

// Location is a physical enclosure with a fixed capacity.
type Location struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	Type            LocationType `json:"type"`
	Capacity        int          `json:"capacity"`
	LastCleanedDate *time.Time   `json:"last_cleaned_date,omitempty"`
}

// Validate checks location invariants on write.
func (l Location) Validate() error {
	if l.Name == "" {
		return apperr.Validation("name is required")
	}
	if l.Type != LocationPool && l.Type != LocationCage {
		return apperr.Validation("type must be pool or cage")
	}
	if l.Capacity < 0 {
		return apperr.Validation("capacity cannot be negative")
	}
	return nil
}

// WeightLog is a dated weight measurement for one animal, in kg with two
// decimal places.
type WeightLog struct {
	ID       int64           `json:"id"`
	AnimalID int64           `json:"animal_id"`
	LogDate  time.Time       `json:"log_date"`
	WeightKg decimal.Decimal `json:"weight_kg"`
}

// Validate checks weight-log invariants on write.
func (w WeightLog) Validate() error {
	if w.AnimalID == 0 {
		return apperr.Validation("animal_id is required")
	}
	if w.LogDate.IsZero() {
		return apperr.Validation("log_date is required")
	}
	if w.WeightKg.IsNegative() {
		return apperr.Validation("weight_kg cannot be negative")
	}
	return nil
}

// ReproductionEvent records a mating and, once known, its outcome. The male
// may be unknown (communal pool matings).
type ReproductionEvent struct {
	ID                int64      `json:"id"`
	FemaleID          int64      `json:"female_id"`
	MaleID            *int64     `json:"male_id,omitempty"`
	MatingDate        time.Time  `json:"mating_date"`
	ExpectedBirthDate time.Time  `json:"expected_birth_date"`
	ActualBirthDate   *time.Time `json:"actual_birth_date,omitempty"`
	LiveBirths        int        `json:"live_births"`
	DeadBirths        int        `json:"dead_births"`
}

// Validate checks reproduction-event invariants on write.
func (e ReproductionEvent) Validate() error {
	if e.FemaleID == 0 {
		return apperr.Validation("female_id is required")
	}
	if e.MatingDate.IsZero() {
		return apperr.Validation("mating_date is required")
	}
	if e.LiveBirths < 0 || e.DeadBirths < 0 {
		return apperr.Validation("birth counts cannot be negative")
	}
	return nil
}

// DefaultExpectedBirth fills the expected birth date from the mating date
// and the gestation period when no explicit date was given.
func (e *ReproductionEvent) DefaultExpectedBirth() {
	if e.ExpectedBirthDate.IsZero() {
		e.ExpectedBirthDate = e.MatingDate.AddDate(0, 0, GestationDays)
	}
}

// GaveBirth reports whether the event has a recorded outcome.
func (e ReproductionEvent) GaveBirth() bool {
	return e.ActualBirthDate != nil
}
