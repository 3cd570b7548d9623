package httpapi

import (
	"net/http"
	"strconv"

	"cuy-farm/internal/apperr"
	"cuy-farm/internal/application/reports"
)

// parseFilter reads the shared query parameters of the report endpoints:
// start_date, end_date (YYYY-MM-DD), animal_id and location_id.
func parseFilter(r *http.Request) (reports.Filter, error) {
	q := r.URL.Query()
	rng, err := reports.ParseRange(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		return reports.Filter{}, err
	}
	f := reports.Filter{Range: rng}
	if f.AnimalID, err = parseOptionalID(q.Get("animal_id"), "animal_id"); err != nil {
		return reports.Filter{}, err
	}
	if f.LocationID, err = parseOptionalID(q.Get("location_id"), "location_id"); err != nil {
		return reports.Filter{}, err
	}
	return f, nil
}

func parseOptionalID(raw, name string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperr.Validation("%s must be an integer", name)
	}
	return &id, nil
}

// parseAnimalScope reads the parameters of the per-animal reports, where
// animal_id is required.
func parseAnimalScope(r *http.Request) (int64, reports.DateRange, error) {
	q := r.URL.Query()
	rng, err := reports.ParseRange(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		return 0, reports.DateRange{}, err
	}
	raw := q.Get("animal_id")
	if raw == "" {
		return 0, reports.DateRange{}, apperr.Validation("animal_id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, reports.DateRange{}, apperr.Validation("animal_id must be an integer")
	}
	return id, rng, nil
}

func (s *Server) handleICA(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	rep, err := s.reportsUC.ICAReport(r.Context(), f)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleCostPerKg(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	rep, err := s.reportsUC.CostPerKgReport(r.Context(), f)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleProfitLoss(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	rep, err := s.reportsUC.ProfitLossReport(r.Context(), f)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleBatchProfitability(w http.ResponseWriter, r *http.Request) {
	animalID, rng, err := parseAnimalScope(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	rep, err := s.reportsUC.BatchProfitabilityReport(r.Context(), animalID, rng)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleGDP(w http.ResponseWriter, r *http.Request) {
	animalID, rng, err := parseAnimalScope(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	rep, err := s.reportsUC.GDPReport(r.Context(), animalID, rng)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleFertilityRate(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reportsUC.FertilityRateReport(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleParturitionRate(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reportsUC.ParturitionRateReport(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleProlificacy(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reportsUC.ProlificacyReport(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleReproductiveRanking(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reportsUC.ReproductiveRankingReport(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDensity(w http.ResponseWriter, r *http.Request) {
	rep, err := s.scanner.DensityReport(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleWithdrawalAlerts(w http.ResponseWriter, r *http.Request) {
	rep, err := s.scanner.WithdrawalAlerts(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleIneffectiveTreatments(w http.ResponseWriter, r *http.Request) {
	rep, err := s.scanner.IneffectiveTreatmentAlerts(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleLowStock(w http.ResponseWriter, r *http.Request) {
	rep, err := s.scanner.LowStockAlerts(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleOptimalPairing(w http.ResponseWriter, r *http.Request) {
	rep, err := s.recommender.OptimalPairing(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
