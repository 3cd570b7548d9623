// Package health holds veterinary records: diagnoses, treatments and the
// medications whose withdrawal periods gate when an animal is fit for sale.
package health

import (
	"time"

	"cuy-farm/internal/apperr"
)

// Medication is a catalog entry with its withdrawal period in days.
type Medication struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	WithdrawalPeriodDays int    `json:"withdrawal_period_days"`
}

// Validate checks medication invariants on write.
func (m Medication) Validate() error {
	if m.Name == "" {
		return apperr.Validation("name is required")
	}
	if m.WithdrawalPeriodDays < 0 {
		return apperr.Validation("withdrawal_period_days cannot be negative")
	}
	return nil
}

// HealthLog is a dated diagnosis for one animal.
type HealthLog struct {
	ID        int64     `json:"id"`
	AnimalID  int64     `json:"animal_id"`
	LogDate   time.Time `json:"log_date"`
	Diagnosis string    `json:"diagnosis"`
	Notes     string    `json:"notes,omitempty"`
}

// Validate checks health-log invariants on write.
func (h HealthLog) Validate() error {
	if h.AnimalID == 0 {
		return apperr.Validation("animal_id is required")
	}
	if h.LogDate.IsZero() {
		return apperr.Validation("log_date is required")
	}
	if h.Diagnosis == "" {
		return apperr.Validation("diagnosis is required")
	}
	return nil
}

// Treatment applies a medication to a health log. WithdrawalEndDate is
// derived from the log date plus the medication withdrawal period and is
// nil when the treatment has no medication.
type Treatment struct {
	ID                int64      `json:"id"`
	HealthLogID       int64      `json:"health_log_id"`
	MedicationID      *int64     `json:"medication_id,omitempty"`
	Dosage            string     `json:"dosage,omitempty"`
	WithdrawalEndDate *time.Time `json:"withdrawal_end_date,omitempty"`
}

// Validate checks treatment invariants on write.
func (t Treatment) Validate() error {
	if t.HealthLogID == 0 {
		return apperr.Validation("health_log_id is required")
	}
	return nil
}

// WithdrawalEnd computes the date from which the withdrawal period has
// fully elapsed.
func WithdrawalEnd(logDate time.Time, med Medication) time.Time {
	return logDate.AddDate(0, 0, med.WithdrawalPeriodDays)
}
