package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"cuy-farm/internal/apperr"
	"cuy-farm/internal/domain/feeding"
	"cuy-farm/internal/domain/finance"
	"cuy-farm/internal/domain/health"
	"cuy-farm/internal/domain/livestock"
)

const dateLayout = "2006-01-02"

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}
	return nil
}

func parseDate(raw, name string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, apperr.Validation("%s is required", name)
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apperr.Validation("%s must be formatted as YYYY-MM-DD", name)
	}
	return t, nil
}

func parseOptionalDate(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, apperr.Validation("%s must be formatted as YYYY-MM-DD", name)
	}
	return &t, nil
}

type animalRequest struct {
	Tag        string `json:"tag"`
	BirthDate  string `json:"birth_date"`
	Sex        string `json:"sex"`
	Status     string `json:"status"`
	LineID     *int64 `json:"line_id"`
	SireID     *int64 `json:"sire_id"`
	DamID      *int64 `json:"dam_id"`
	LocationID *int64 `json:"location_id"`
}

func (s *Server) handleCreateAnimal(w http.ResponseWriter, r *http.Request) {
	var req animalRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}
	birth, err := parseDate(req.BirthDate, "birth_date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	created, err := s.registry.CreateAnimal(r.Context(), livestock.Animal{
		Tag:        req.Tag,
		BirthDate:  birth,
		Sex:        livestock.Sex(req.Sex),
		Status:     livestock.Status(req.Status),
		LineID:     req.LineID,
		SireID:     req.SireID,
		DamID:      req.DamID,
		LocationID: req.LocationID,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListAnimals(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, func() (interface{}, error) { return s.registry.ListAnimals(r.Context()) })
}

type animalStatusRequest struct {
	AnimalID int64  `json:"animal_id"`
	Status   string `json:"status"`
}

func (s *Server) handleUpdateAnimalStatus(w http.ResponseWriter, r *http.Request) {
	var req animalStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}
	if err := s.registry.UpdateAnimalStatus(r.Context(), req.AnimalID, livestock.Status(req.Status)); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      req.AnimalID,
		"status":  req.Status,
	})
}

type lineRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateLine(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}
	created, err := s.registry.CreateLine(r.Context(), livestock.Line{Name: req.Name, Description: req.Description})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListLines(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, func() (interface{}, error) { return s.registry.ListLines(r.Context()) })
}

type locationRequest struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	Capacity        int    `json:"capacity"`
	LastCleanedDate string `json:"last_cleaned_date"`
}

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}
	cleaned, err := parseOptionalDate(req.LastCleanedDate, "last_cleaned_date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	created, err := s.registry.CreateLocation(r.Context(), livestock.Location{
		Name:            req.Name,
		Type:            livestock.LocationType(req.Type),
		Capacity:        req.Capacity,
		LastCleanedDate: cleaned,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, func() (interface{}, error) { return s.registry.ListLocations(r.Context()) })
}

type weightLogRequest struct {
	AnimalID int64           `json:"animal_id"`
	LogDate  string          `json:"log_date"`
	WeightKg decimal.Decimal `json:"weight_kg"`
}

func (s *Server) handleCreateWeightLog(w http.ResponseWriter, r *http.Request) {
	var req weightLogRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}
	logDate, err := parseDate(req.LogDate, "log_date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	created, err := s.registry.CreateWeightLog(r.Context(), livestock.WeightLog{
		AnimalID: req.AnimalID,
		LogDate:  logDate,
		WeightKg: req.WeightKg,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListWeightLogs(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, func() (interface{}, error) { return s.registry.ListWeightLogs(r.Context()) })
}

type reproductionEventRequest struct {
	FemaleID          int64  `json:"female_id"`
	MaleID            *int64 `json:"male_id"`
	MatingDate        string `json:"mating_date"`
	ExpectedBirthDate string `json:"expected_birth_date"`
	ActualBirthDate   string `json:"actual_birth_date"`
	LiveBirths        int    `json:"live_births"`
	DeadBirths        int    `json:"dead_births"`
}

func (s *Server) handleCreateReproductionEvent(w http.ResponseWriter, r *http.Request) {
	var req reproductionEventRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}
	mating, err := parseDate(req.MatingDate, "mating_date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	expected, err := parseOptionalDate(req.ExpectedBirthDate, "expected_birth_date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	actual, err := parseOptionalDate(req.ActualBirthDate, "actual_birth_date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	ev := livestock.ReproductionEvent{
		FemaleID:        req.FemaleID,
		MaleID:          req.MaleID,
		MatingDate:      mating,
		ActualBirthDate: actual,
		LiveBirths:      req.LiveBirths,
		DeadBirths:      req.DeadBirths,
	}
	if expected != nil {
		ev.ExpectedBirthDate = *expected
	}
	created, err := s.registry.CreateReproductionEvent(r.Context(), ev)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListReproductionEvents(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, func() (interface{}, error) { return s.registry.ListReproductionEvents(r.Context()) })
}

type healthLogRequest struct {
	AnimalID  int64  `json:"animal_id"`
	LogDate   string `json:"log_date"`
	Diagnosis string `json:"diagnosis"`
	Notes     string `json:"notes"`
}

func (s *Server) handleCreateHealthLog(w http.ResponseWriter, r *http.Request) {
	var req healthLogRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}
	logDate, err := parseDate(req.LogDate, "log_date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	created, err := s.registry.CreateHealthLog(r.Context(), health.HealthLog{
		AnimalID:  req.AnimalID,
		LogDate:   logDate,
		Diagnosis: req.Diagnosis,
		Notes:     req.Notes,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListHealthLogs(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, func() (interface{}, error) { return s.registry.ListHealthLogs(r.Context()) })
}

type treatmentRequest struct {
	HealthLogID  int64  `json:"health_log_id"`
	MedicationID *int64 `json:"medication_id"`
	Dosage       string `json:"dosage"`
}

func (s *Server) handleCreateTreatment(w http.ResponseWriter, r *http.Request) {
	var req treatmentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}
	created, err := s.registry.CreateTreatment(r.Context(), health.Treatment{
		HealthLogID:  req.HealthLogID,
		MedicationID: req.MedicationID,
		Dosage:       req.Dosage,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListTreatments(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, func() (interface{}, error) { return s.registry.ListTreatments(r.Context()) })
}

type medicationRequest struct {
	Name                 string `json:"name"`
	WithdrawalPeriodDays int    `json:"withdrawal_period_days"`
}

func (s *Server) handleCreateMedication(w http.ResponseWriter, r *http.Request) {
	var req medicationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}
	created, err := s.registry.CreateMedication(r.Context(), health.Medication{
		Name:                 req.Name,
		WithdrawalPeriodDays: req.WithdrawalPeriodDays,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListMedications(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, func() (interface{}, error) { return s.registry.ListMedications(r.Context()) })
}

type feedInventoryRequest struct {
	ProductName string          `json:"product_name"`
	QuantityKg  decimal.Decimal `json:"quantity_kg"`
	CostPerKg   decimal.Decimal `json:"cost_per_kg"`
	Supplier    string          `json:"supplier"`
	EntryDate   string          `json:"entry_date"`
}

func (s *Server) handleCreateFeedInventory(w http.ResponseWriter, r *http.Request) {
	var req feedInventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}
	entry, err := parseDate(req.EntryDate, "entry_date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	created, err := s.registry.CreateFeedInventory(r.Context(), feeding.FeedInventory{
		ProductName: req.ProductName,
		QuantityKg:  req.QuantityKg,
		CostPerKg:   req.CostPerKg,
		Supplier:    req.Supplier,
		EntryDate:   entry,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListFeedInventory(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, func() (interface{}, error) { return s.registry.ListFeedInventory(r.Context()) })
}

type feedingLogRequest struct {
	LocationID int64           `json:"location_id"`
	LogDate    string          `json:"log_date"`
	FeedType   string          `json:"feed_type"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
}

func (s *Server) handleCreateFeedingLog(w http.ResponseWriter, r *http.Request) {
	var req feedingLogRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}
	logDate, err := parseDate(req.LogDate, "log_date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	created, err := s.registry.CreateFeedingLog(r.Context(), feeding.FeedingLog{
		LocationID: req.LocationID,
		LogDate:    logDate,
		FeedType:   req.FeedType,
		QuantityKg: req.QuantityKg,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListFeedingLogs(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, func() (interface{}, error) { return s.registry.ListFeedingLogs(r.Context()) })
}

type transactionRequest struct {
	TransactionDate string                 `json:"transaction_date"`
	Type            string                 `json:"type"`
	Amount          decimal.Decimal        `json:"amount"`
	Description     string                 `json:"description"`
	Related         *finance.RelatedEntity `json:"related_entity"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}
	txDate, err := parseDate(req.TransactionDate, "transaction_date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	created, err := s.registry.CreateTransaction(r.Context(), finance.FinancialTransaction{
		TransactionDate: txDate,
		Type:            finance.TransactionType(req.Type),
		Amount:          req.Amount,
		Description:     req.Description,
		Related:         req.Related,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, func() (interface{}, error) { return s.registry.ListTransactions(r.Context()) })
}

// list runs a listing closure and writes the result or the mapped error.
func (s *Server) list(w http.ResponseWriter, _ *http.Request, fn func() (interface{}, error)) {
	out, err := fn()
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
