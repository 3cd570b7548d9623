// Package reports defines the result shapes of the reporting and alerting
// engine. These objects are computed per request and never persisted; all
// monetary and mass values are rounded to two decimals at this boundary.
package reports

import "time"

// ICAReport is the feed-conversion index report.
type ICAReport struct {
	TotalFeedConsumedKg float64 `json:"total_feed_consumed_kg"`
	TotalWeightGainedKg float64 `json:"total_weight_gained_kg"`
	ICA                 float64 `json:"ica"`
}

// CostPerKgReport relates feed cost to weight gained.
type CostPerKgReport struct {
	TotalFeedCost       float64 `json:"total_feed_cost"`
	TotalWeightGainedKg float64 `json:"total_weight_gained_kg"`
	CostPerKgGained     float64 `json:"cost_per_kg_gained"`
}

// ProfitLossReport is income minus cost over the filtered window.
type ProfitLossReport struct {
	TotalIncome float64 `json:"total_income"`
	TotalCost   float64 `json:"total_cost"`
	ProfitLoss  float64 `json:"profit_loss"`
}

// BatchProfitabilityReport is a profit and loss scoped to one animal.
type BatchProfitabilityReport struct {
	AnimalID    int64   `json:"animal_id"`
	AnimalTag   string  `json:"animal_tag"`
	TotalIncome float64 `json:"total_income"`
	TotalCost   float64 `json:"total_cost"`
	ProfitLoss  float64 `json:"profit_loss"`
}

// GDPReport is the daily weight gain of one animal over the filtered window.
type GDPReport struct {
	AnimalID        int64   `json:"animal_id"`
	AnimalTag       string  `json:"animal_tag"`
	InitialWeightKg float64 `json:"initial_weight_kg"`
	FinalWeightKg   float64 `json:"final_weight_kg"`
	NumDays         int     `json:"num_days"`
	GDP             float64 `json:"gdp"`
}

// FertilityReport relates currently pregnant females to females that have
// ever given birth.
type FertilityReport struct {
	TotalFemalesBreeding int     `json:"total_females_breeding"`
	TotalFemalesPregnant int     `json:"total_females_pregnant"`
	FertilityRate        float64 `json:"fertility_rate"`
}

// ParturitionReport is the inverse composition of the fertility counts.
type ParturitionReport struct {
	TotalFemalesGaveBirth int     `json:"total_females_gave_birth"`
	TotalFemalesPregnant  int     `json:"total_females_pregnant"`
	ParturitionRate       float64 `json:"parturition_rate"`
}

// ProlificacyReport is average live births per birth event.
type ProlificacyReport struct {
	TotalLiveBirths                  int     `json:"total_live_births"`
	TotalReproductionEventsWithBirth int     `json:"total_reproduction_events_with_birth"`
	Prolificacy                      float64 `json:"prolificacy"`
}

// ReproductiveRankEntry ranks a female by her total live births.
type ReproductiveRankEntry struct {
	AnimalID        int64  `json:"animal_id"`
	AnimalTag       string `json:"animal_tag"`
	TotalLiveBirths int    `json:"total_live_births"`
}

// WithdrawalAlert flags a quarantined animal whose withdrawal period has
// elapsed.
type WithdrawalAlert struct {
	AnimalID          int64     `json:"animal_id"`
	AnimalTag         string    `json:"animal_tag"`
	Medication        string    `json:"medication"`
	WithdrawalEndDate time.Time `json:"withdrawal_end_date"`
	Message           string    `json:"message"`
}

// IneffectiveTreatmentAlert flags repeated treatments for the same
// diagnosis within the policy window.
type IneffectiveTreatmentAlert struct {
	AnimalID       int64  `json:"animal_id"`
	AnimalTag      string `json:"animal_tag"`
	Diagnosis      string `json:"diagnosis"`
	TreatmentCount int    `json:"treatment_count"`
	Message        string `json:"message"`
}

// LowStockAlert flags a feed product below the stock threshold.
type LowStockAlert struct {
	ProductName     string  `json:"product_name"`
	CurrentStockKg  float64 `json:"current_stock_kg"`
	ThresholdKg     float64 `json:"threshold_kg"`
	Message         string  `json:"message"`
}

// DensityEntry reports occupancy for one location. Alert is nil below the
// warning threshold.
type DensityEntry struct {
	LocationID        int64   `json:"location_id"`
	LocationName      string  `json:"location_name"`
	LocationType      string  `json:"location_type"`
	Capacity          int     `json:"capacity"`
	CurrentAnimals    int     `json:"current_animals"`
	DensityPercentage float64 `json:"density_percentage"`
	Alert             *string `json:"alert"`
}

// PairingRecommendation is one breeding-ready, pedigree-compatible pair.
type PairingRecommendation struct {
	FemaleID  int64  `json:"female_id"`
	FemaleTag string `json:"female_tag"`
	MaleID    int64  `json:"male_id"`
	MaleTag   string `json:"male_tag"`
	Reason    string `json:"reason"`
}
