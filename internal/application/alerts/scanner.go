// Package alerts implements the rule-based scanners that turn operational
// records into actionable findings. Scanners never fail on empty input; an
// empty list is a valid outcome.
package alerts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cuy-farm/internal/domain/feeding"
	"cuy-farm/internal/domain/health"
	"cuy-farm/internal/domain/livestock"
	reportsDomain "cuy-farm/internal/domain/reports"
)

// Fixed policy constants. These are farm policy, not per-request knobs.
const (
	ineffectiveWindowDays    = 30
	ineffectiveTreatmentsMax = 2
	densityWarningPercent    = 80
	densityCriticalPercent   = 100
)

var lowStockThresholdKg = decimal.RequireFromString("10.0")

// HerdReader provides the herd records the scanners consume.
type HerdReader interface {
	GetAnimal(ctx context.Context, id int64) (livestock.Animal, error)
	ListAnimals(ctx context.Context) ([]livestock.Animal, error)
	ListLocations(ctx context.Context) ([]livestock.Location, error)
}

// HealthReader provides veterinary records.
type HealthReader interface {
	ListHealthLogs(ctx context.Context) ([]health.HealthLog, error)
	ListTreatments(ctx context.Context) ([]health.Treatment, error)
	GetMedication(ctx context.Context, id int64) (health.Medication, error)
}

// FeedingReader provides the feed inventory.
type FeedingReader interface {
	ListFeedInventory(ctx context.Context) ([]feeding.FeedInventory, error)
}

// Scanner runs the alert rules. Results are recomputed fresh per call and
// never cached.
type Scanner struct {
	herd    HerdReader
	health  HealthReader
	feeding FeedingReader
	now     func() time.Time
	log     zerolog.Logger
}

// NewScanner builds the alert scanner.
func NewScanner(herd HerdReader, healthR HealthReader, feedingR FeedingReader, log zerolog.Logger) *Scanner {
	return &Scanner{
		herd:    herd,
		health:  healthR,
		feeding: feedingR,
		now:     time.Now,
		log:     log.With().Str("usecase", "alerts").Logger(),
	}
}

// WithdrawalAlerts flags treatments whose withdrawal period has elapsed
// while the animal is still in quarantine. Animals in any other status are
// assumed to have been cleared by a human and are skipped.
func (s *Scanner) WithdrawalAlerts(ctx context.Context) ([]reportsDomain.WithdrawalAlert, error) {
	treatments, err := s.health.ListTreatments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load treatments: %w", err)
	}
	logs, err := s.health.ListHealthLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load health logs: %w", err)
	}
	logByID := make(map[int64]health.HealthLog, len(logs))
	for _, l := range logs {
		logByID[l.ID] = l
	}

	today := s.now()
	alerts := make([]reportsDomain.WithdrawalAlert, 0)
	for _, t := range treatments {
		if t.WithdrawalEndDate == nil || t.WithdrawalEndDate.After(today) {
			continue
		}
		hl, ok := logByID[t.HealthLogID]
		if !ok {
			continue
		}
		animal, err := s.herd.GetAnimal(ctx, hl.AnimalID)
		if err != nil {
			continue
		}
		if animal.Status != livestock.StatusInQuarantine {
			continue
		}
		medName := ""
		if t.MedicationID != nil {
			if med, err := s.health.GetMedication(ctx, *t.MedicationID); err == nil {
				medName = med.Name
			}
		}
		alerts = append(alerts, reportsDomain.WithdrawalAlert{
			AnimalID:          animal.ID,
			AnimalTag:         animal.Tag,
			Medication:        medName,
			WithdrawalEndDate: *t.WithdrawalEndDate,
			Message: fmt.Sprintf("withdrawal period for %s ended on %s; animal %s is still in quarantine",
				medName, t.WithdrawalEndDate.Format("2006-01-02"), animal.Tag),
		})
	}
	s.log.Debug().Int("alerts", len(alerts)).Msg("withdrawal scan done")
	return alerts, nil
}

// IneffectiveTreatmentAlerts groups the last 30 days of health logs by
// animal and diagnosis and flags groups treated more than twice.
func (s *Scanner) IneffectiveTreatmentAlerts(ctx context.Context) ([]reportsDomain.IneffectiveTreatmentAlert, error) {
	logs, err := s.health.ListHealthLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load health logs: %w", err)
	}
	treatments, err := s.health.ListTreatments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load treatments: %w", err)
	}
	treatmentsPerLog := make(map[int64]int, len(treatments))
	for _, t := range treatments {
		treatmentsPerLog[t.HealthLogID]++
	}

	since := s.now().AddDate(0, 0, -ineffectiveWindowDays)
	type groupKey struct {
		animalID  int64
		diagnosis string
	}
	counts := make(map[groupKey]int)
	for _, l := range logs {
		if l.LogDate.Before(since) {
			continue
		}
		counts[groupKey{l.AnimalID, l.Diagnosis}] += treatmentsPerLog[l.ID]
	}

	keys := make([]groupKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].animalID != keys[j].animalID {
			return keys[i].animalID < keys[j].animalID
		}
		return keys[i].diagnosis < keys[j].diagnosis
	})

	alerts := make([]reportsDomain.IneffectiveTreatmentAlert, 0)
	for _, k := range keys {
		n := counts[k]
		if n <= ineffectiveTreatmentsMax {
			continue
		}
		animal, err := s.herd.GetAnimal(ctx, k.animalID)
		if err != nil {
			continue
		}
		alerts = append(alerts, reportsDomain.IneffectiveTreatmentAlert{
			AnimalID:       animal.ID,
			AnimalTag:      animal.Tag,
			Diagnosis:      k.diagnosis,
			TreatmentCount: n,
			Message: fmt.Sprintf("animal %s was treated %d times for %q in the last %d days; current treatment may be ineffective",
				animal.Tag, n, k.diagnosis, ineffectiveWindowDays),
		})
	}
	return alerts, nil
}

// LowStockAlerts flags feed products below the fixed stock threshold.
func (s *Scanner) LowStockAlerts(ctx context.Context) ([]reportsDomain.LowStockAlert, error) {
	inventory, err := s.feeding.ListFeedInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load feed inventory: %w", err)
	}
	threshold, _ := lowStockThresholdKg.Float64()
	alerts := make([]reportsDomain.LowStockAlert, 0)
	for _, item := range inventory {
		if item.QuantityKg.GreaterThanOrEqual(lowStockThresholdKg) {
			continue
		}
		current, _ := item.QuantityKg.Round(2).Float64()
		alerts = append(alerts, reportsDomain.LowStockAlert{
			ProductName:    item.ProductName,
			CurrentStockKg: current,
			ThresholdKg:    threshold,
			Message:        fmt.Sprintf("stock of %s is at %.2f kg, below the %.2f kg threshold", item.ProductName, current, threshold),
		})
	}
	return alerts, nil
}

// DensityReport computes occupancy for every location. A location above
// the warning threshold carries an alert message; above capacity it
// carries the critical one. Capacity zero is reported as 0% occupancy.
func (s *Scanner) DensityReport(ctx context.Context) ([]reportsDomain.DensityEntry, error) {
	locations, err := s.herd.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	animals, err := s.herd.ListAnimals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load animals: %w", err)
	}
	occupants := make(map[int64]int)
	for _, a := range animals {
		if a.LocationID != nil {
			occupants[*a.LocationID]++
		}
	}

	entries := make([]reportsDomain.DensityEntry, 0, len(locations))
	for _, loc := range locations {
		count := occupants[loc.ID]
		var density decimal.Decimal
		if loc.Capacity > 0 {
			density = decimal.NewFromInt(int64(count)).
				Div(decimal.NewFromInt(int64(loc.Capacity))).
				Mul(decimal.NewFromInt(100))
		}
		pct, _ := density.Round(2).Float64()

		var alert *string
		switch {
		case pct > densityCriticalPercent:
			msg := fmt.Sprintf("location %s is over capacity (%d/%d)", loc.Name, count, loc.Capacity)
			alert = &msg
		case pct > densityWarningPercent:
			msg := fmt.Sprintf("location %s is nearing capacity (%d/%d)", loc.Name, count, loc.Capacity)
			alert = &msg
		}

		entries = append(entries, reportsDomain.DensityEntry{
			LocationID:        loc.ID,
			LocationName:      loc.Name,
			LocationType:      string(loc.Type),
			Capacity:          loc.Capacity,
			CurrentAnimals:    count,
			DensityPercentage: pct,
			Alert:             alert,
		})
	}
	return entries, nil
}
