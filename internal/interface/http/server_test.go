package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cuy-farm/internal/domain/feeding"
	"cuy-farm/internal/domain/livestock"
	"cuy-farm/internal/infrastructure/config"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(config.Config{}, nil, zerolog.Nop())
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/ping", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/ica-report", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if body.ErrorCode != errCodeMethodNotAllowed {
		t.Errorf("error_code = %s, want %s", body.ErrorCode, errCodeMethodNotAllowed)
	}
}

func TestICAReport_MalformedDate(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/ica-report?start_date=not-a-date", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if body.ErrorCode != errCodeBadRequest {
		t.Errorf("error_code = %s, want %s", body.ErrorCode, errCodeBadRequest)
	}
}

func TestICAReport_EmptyHerdIsZero(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/ica-report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		TotalFeedConsumedKg float64 `json:"total_feed_consumed_kg"`
		TotalWeightGainedKg float64 `json:"total_weight_gained_kg"`
		ICA                 float64 `json:"ica"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.ICA != 0 || body.TotalFeedConsumedKg != 0 || body.TotalWeightGainedKg != 0 {
		t.Errorf("expected all-zero report, got %+v", body)
	}
}

func TestGDPReport_RequiresAnimalID(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/gdp-report", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/gdp-report?animal_id=999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if body.ErrorCode != errCodeNotFound {
		t.Errorf("error_code = %s, want %s", body.ErrorCode, errCodeNotFound)
	}
}

func TestGDPReport_Computed(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	animal, err := s.Store().CreateAnimal(ctx, livestock.Animal{
		Tag: "CUY-001", Sex: livestock.SexMale, BirthDate: date(2024, 1, 1), Status: livestock.StatusActive,
	})
	if err != nil {
		t.Fatalf("seed animal: %v", err)
	}
	for _, w := range []livestock.WeightLog{
		{AnimalID: animal.ID, LogDate: date(2024, 3, 1), WeightKg: dec("0.40")},
		{AnimalID: animal.ID, LogDate: date(2024, 3, 21), WeightKg: dec("0.90")},
	} {
		if _, err := s.Store().CreateWeightLog(ctx, w); err != nil {
			t.Fatalf("seed weight log: %v", err)
		}
	}

	rec := doRequest(t, s, http.MethodGet, "/api/gdp-report?animal_id=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		NumDays int     `json:"num_days"`
		GDP     float64 `json:"gdp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.NumDays != 20 || body.GDP != 0.03 {
		t.Errorf("gdp report = %+v, want 20 days / 0.03", body)
	}
}

func TestCreateAndListAnimals(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/animals",
		`{"tag":"CUY-001","birth_date":"2024-01-01","sex":"F"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var created livestock.Animal
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if created.ID == 0 || created.Status != livestock.StatusActive {
		t.Errorf("unexpected created animal: %+v", created)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/animals", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var listed []livestock.Animal
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(listed) != 1 || listed[0].Tag != "CUY-001" {
		t.Errorf("unexpected listing: %+v", listed)
	}
}

func TestCreateAnimal_Invalid(t *testing.T) {
	s := newTestServer(t)

	// Missing tag.
	rec := doRequest(t, s, http.MethodPost, "/api/animals",
		`{"birth_date":"2024-01-01","sex":"F"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	// Malformed birth date.
	rec = doRequest(t, s, http.MethodPost, "/api/animals",
		`{"tag":"X","birth_date":"01/01/2024","sex":"F"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateFeedingLog_InsufficientStock(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	if _, err := s.Store().CreateFeedInventory(ctx, feeding.FeedInventory{
		ProductName: "alfalfa", QuantityKg: dec("1.00"), CostPerKg: dec("1.20"), EntryDate: date(2024, 1, 1),
	}); err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	rec := doRequest(t, s, http.MethodPost, "/api/feeding-logs",
		`{"location_id":1,"log_date":"2024-01-02","feed_type":"alfalfa","quantity_kg":"5.00"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if body.ErrorCode != errCodeBadRequest {
		t.Errorf("error_code = %s, want %s", body.ErrorCode, errCodeBadRequest)
	}
}

func TestOptimalPairing_Endpoint(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	f, _ := s.Store().CreateAnimal(ctx, livestock.Animal{
		Tag: "F-1", Sex: livestock.SexFemale, BirthDate: date(2023, 1, 1), Status: livestock.StatusActive,
	})
	m, _ := s.Store().CreateAnimal(ctx, livestock.Animal{
		Tag: "M-1", Sex: livestock.SexMale, BirthDate: date(2023, 1, 1), Status: livestock.StatusActive,
	})
	now := time.Now()
	s.Store().CreateWeightLog(ctx, livestock.WeightLog{AnimalID: f.ID, LogDate: now, WeightKg: dec("1.00")})
	s.Store().CreateWeightLog(ctx, livestock.WeightLog{AnimalID: m.ID, LogDate: now, WeightKg: dec("1.20")})

	rec := doRequest(t, s, http.MethodGet, "/api/optimal-breeding-pairing", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var pairs []struct {
		FemaleTag string `json:"female_tag"`
		MaleTag   string `json:"male_tag"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &pairs); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(pairs) != 1 || pairs[0].FemaleTag != "F-1" || pairs[0].MaleTag != "M-1" {
		t.Errorf("unexpected pairs: %+v", pairs)
	}
}

func TestDensity_Endpoint(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	loc, _ := s.Store().CreateLocation(ctx, livestock.Location{Name: "P-1", Type: livestock.LocationPool, Capacity: 2})
	for i := 0; i < 3; i++ {
		s.Store().CreateAnimal(ctx, livestock.Animal{
			Tag: fmt.Sprintf("A-%d", i), Sex: livestock.SexFemale, BirthDate: date(2024, 1, 1), LocationID: &loc.ID,
		})
	}

	rec := doRequest(t, s, http.MethodGet, "/api/density-report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var entries []struct {
		DensityPercentage float64 `json:"density_percentage"`
		Alert             *string `json:"alert"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(entries) != 1 || entries[0].DensityPercentage != 150.00 || entries[0].Alert == nil {
		t.Errorf("unexpected density entries: %+v", entries)
	}
}

// TestReportRoutes pins the outward path names of every report, alert and
// pairing endpoint.
func TestReportRoutes(t *testing.T) {
	s := newTestServer(t)
	paths := []string{
		"/api/ica-report",
		"/api/cost-per-kg-gained-report",
		"/api/profit-and-loss-report",
		"/api/batch-profitability-report",
		"/api/gdp-report",
		"/api/fertility-rate-report",
		"/api/parturition-rate-report",
		"/api/prolificacy-report",
		"/api/reproductive-ranking-report",
		"/api/density-report",
		"/api/withdrawal-alerts",
		"/api/ineffective-treatment-alerts",
		"/api/low-stock-alerts",
		"/api/optimal-breeding-pairing",
	}
	for _, path := range paths {
		rec := doRequest(t, s, http.MethodGet, path, "")
		if rec.Code == http.StatusNotFound {
			t.Errorf("%s is not routed", path)
		}
	}
}

func TestUpdateAnimalStatus_Endpoint(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	a, err := s.Store().CreateAnimal(ctx, livestock.Animal{
		Tag: "CUY-001", Sex: livestock.SexFemale, BirthDate: date(2024, 1, 1), Status: livestock.StatusActive,
	})
	if err != nil {
		t.Fatalf("seed animal: %v", err)
	}

	rec := doRequest(t, s, http.MethodPost, "/api/animals/status",
		fmt.Sprintf(`{"animal_id":%d,"status":"in_quarantine"}`, a.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	updated, err := s.Store().GetAnimal(ctx, a.ID)
	if err != nil {
		t.Fatalf("get animal: %v", err)
	}
	if updated.Status != livestock.StatusInQuarantine {
		t.Errorf("status = %s, want in_quarantine", updated.Status)
	}

	// Unknown status value.
	rec = doRequest(t, s, http.MethodPost, "/api/animals/status",
		fmt.Sprintf(`{"animal_id":%d,"status":"hibernating"}`, a.ID))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	// Unknown animal.
	rec = doRequest(t, s, http.MethodPost, "/api/animals/status",
		`{"animal_id":999,"status":"sold"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCreateAnimal_DuplicateTag(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/animals",
		`{"tag":"CUY-001","birth_date":"2024-01-01","sex":"F"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, s, http.MethodPost, "/api/animals",
		`{"tag":"CUY-001","birth_date":"2024-02-01","sex":"M"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if body.ErrorCode != errCodeBadRequest {
		t.Errorf("error_code = %s, want %s", body.ErrorCode, errCodeBadRequest)
	}
}
