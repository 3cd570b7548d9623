// Package reports implements the reporting engine: temporal filtering,
// aggregation and the zootechnical/financial metric calculators.
package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cuy-farm/internal/apperr"
	"cuy-farm/internal/domain/feeding"
	"cuy-farm/internal/domain/finance"
	"cuy-farm/internal/domain/livestock"
	reportsDomain "cuy-farm/internal/domain/reports"
)

// HerdReader provides the herd records the calculators consume.
type HerdReader interface {
	GetAnimal(ctx context.Context, id int64) (livestock.Animal, error)
	ListAnimals(ctx context.Context) ([]livestock.Animal, error)
	ListWeightLogs(ctx context.Context) ([]livestock.WeightLog, error)
	WeightLogsByAnimal(ctx context.Context, animalID int64) ([]livestock.WeightLog, error)
	ListReproductionEvents(ctx context.Context) ([]livestock.ReproductionEvent, error)
}

// FeedingReader provides feed consumption records.
type FeedingReader interface {
	ListFeedingLogs(ctx context.Context) ([]feeding.FeedingLog, error)
}

// FinanceReader provides financial transactions.
type FinanceReader interface {
	ListTransactions(ctx context.Context) ([]finance.FinancialTransaction, error)
}

// Filter carries the optional, independently composable report filters.
type Filter struct {
	Range      DateRange
	AnimalID   *int64
	LocationID *int64
}

// UseCase aggregates raw operational records into named metrics.
type UseCase struct {
	herd    HerdReader
	feeding FeedingReader
	finance FinanceReader
	log     zerolog.Logger
}

// NewUseCase builds the reporting engine.
func NewUseCase(herd HerdReader, feeding FeedingReader, finance FinanceReader, log zerolog.Logger) *UseCase {
	return &UseCase{
		herd:    herd,
		feeding: feeding,
		finance: finance,
		log:     log.With().Str("usecase", "reports").Logger(),
	}
}

// ICAReport computes the feed-conversion index: feed consumed over weight
// gained, both narrowed by the filter.
func (u *UseCase) ICAReport(ctx context.Context, f Filter) (reportsDomain.ICAReport, error) {
	feed, err := u.feedConsumed(ctx, f)
	if err != nil {
		return reportsDomain.ICAReport{}, err
	}
	weight, err := u.weightGained(ctx, f)
	if err != nil {
		return reportsDomain.ICAReport{}, err
	}
	out := reportsDomain.ICAReport{
		TotalFeedConsumedKg: round2(feed),
		TotalWeightGainedKg: round2(weight),
		ICA:                 round2(ratio(feed, weight)),
	}
	u.log.Debug().Float64("ica", out.ICA).Msg("ICA report computed")
	return out, nil
}

// CostPerKgReport computes total feed cost over weight gained.
func (u *UseCase) CostPerKgReport(ctx context.Context, f Filter) (reportsDomain.CostPerKgReport, error) {
	cost, _, err := u.transactionTotals(ctx, f)
	if err != nil {
		return reportsDomain.CostPerKgReport{}, err
	}
	weight, err := u.weightGained(ctx, f)
	if err != nil {
		return reportsDomain.CostPerKgReport{}, err
	}
	return reportsDomain.CostPerKgReport{
		TotalFeedCost:       round2(cost),
		TotalWeightGainedKg: round2(weight),
		CostPerKgGained:     round2(ratio(cost, weight)),
	}, nil
}

// ProfitLossReport computes income minus cost over the filtered window.
func (u *UseCase) ProfitLossReport(ctx context.Context, f Filter) (reportsDomain.ProfitLossReport, error) {
	cost, income, err := u.transactionTotals(ctx, f)
	if err != nil {
		return reportsDomain.ProfitLossReport{}, err
	}
	return reportsDomain.ProfitLossReport{
		TotalIncome: round2(income),
		TotalCost:   round2(cost),
		ProfitLoss:  round2(income.Sub(cost)),
	}, nil
}

// BatchProfitabilityReport is profit and loss scoped to one animal.
func (u *UseCase) BatchProfitabilityReport(ctx context.Context, animalID int64, r DateRange) (reportsDomain.BatchProfitabilityReport, error) {
	animal, err := u.herd.GetAnimal(ctx, animalID)
	if err != nil {
		return reportsDomain.BatchProfitabilityReport{}, err
	}
	cost, income, err := u.transactionTotals(ctx, Filter{Range: r, AnimalID: &animalID})
	if err != nil {
		return reportsDomain.BatchProfitabilityReport{}, err
	}
	return reportsDomain.BatchProfitabilityReport{
		AnimalID:    animal.ID,
		AnimalTag:   animal.Tag,
		TotalIncome: round2(income),
		TotalCost:   round2(cost),
		ProfitLoss:  round2(income.Sub(cost)),
	}, nil
}

// GDPReport computes the daily weight gain between the first and last
// weight log inside the window. At least two logs are required.
func (u *UseCase) GDPReport(ctx context.Context, animalID int64, r DateRange) (reportsDomain.GDPReport, error) {
	animal, err := u.herd.GetAnimal(ctx, animalID)
	if err != nil {
		return reportsDomain.GDPReport{}, err
	}
	logs, err := u.herd.WeightLogsByAnimal(ctx, animalID)
	if err != nil {
		return reportsDomain.GDPReport{}, fmt.Errorf("load weight logs: %w", err)
	}
	var window []livestock.WeightLog
	for _, l := range logs {
		if r.Contains(l.LogDate) {
			window = append(window, l)
		}
	}
	if len(window) < 2 {
		return reportsDomain.GDPReport{}, apperr.Validation("at least 2 weight logs are required in the selected period")
	}
	sort.Slice(window, func(i, j int) bool { return window[i].LogDate.Before(window[j].LogDate) })

	first, last := window[0], window[len(window)-1]
	days := daysBetween(first.LogDate, last.LogDate)
	gain := last.WeightKg.Sub(first.WeightKg)
	gdp := ratio(gain, decimal.NewFromInt(int64(days)))

	return reportsDomain.GDPReport{
		AnimalID:        animal.ID,
		AnimalTag:       animal.Tag,
		InitialWeightKg: round2(first.WeightKg),
		FinalWeightKg:   round2(last.WeightKg),
		NumDays:         days,
		GDP:             round2(gdp),
	}, nil
}

// FertilityRateReport relates currently pregnant females to the distinct
// females that have recorded a birth.
func (u *UseCase) FertilityRateReport(ctx context.Context) (reportsDomain.FertilityReport, error) {
	breeding, pregnant, err := u.reproductionCounts(ctx)
	if err != nil {
		return reportsDomain.FertilityReport{}, err
	}
	return reportsDomain.FertilityReport{
		TotalFemalesBreeding: breeding,
		TotalFemalesPregnant: pregnant,
		FertilityRate:        round2(percentage(pregnant, breeding)),
	}, nil
}

// ParturitionRateReport is the inverse composition of the fertility counts.
func (u *UseCase) ParturitionRateReport(ctx context.Context) (reportsDomain.ParturitionReport, error) {
	gaveBirth, pregnant, err := u.reproductionCounts(ctx)
	if err != nil {
		return reportsDomain.ParturitionReport{}, err
	}
	return reportsDomain.ParturitionReport{
		TotalFemalesGaveBirth: gaveBirth,
		TotalFemalesPregnant:  pregnant,
		ParturitionRate:       round2(percentage(gaveBirth, pregnant)),
	}, nil
}

// ProlificacyReport is total live births per event with a recorded birth.
func (u *UseCase) ProlificacyReport(ctx context.Context) (reportsDomain.ProlificacyReport, error) {
	events, err := u.herd.ListReproductionEvents(ctx)
	if err != nil {
		return reportsDomain.ProlificacyReport{}, fmt.Errorf("load reproduction events: %w", err)
	}
	liveBirths := 0
	withBirth := 0
	for _, e := range events {
		if !e.GaveBirth() {
			continue
		}
		withBirth++
		liveBirths += e.LiveBirths
	}
	return reportsDomain.ProlificacyReport{
		TotalLiveBirths:                  liveBirths,
		TotalReproductionEventsWithBirth: withBirth,
		Prolificacy: round2(ratio(
			decimal.NewFromInt(int64(liveBirths)),
			decimal.NewFromInt(int64(withBirth)),
		)),
	}, nil
}

// ReproductiveRankingReport ranks females by total live births, descending.
func (u *UseCase) ReproductiveRankingReport(ctx context.Context) ([]reportsDomain.ReproductiveRankEntry, error) {
	events, err := u.herd.ListReproductionEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reproduction events: %w", err)
	}
	totals := make(map[int64]int)
	for _, e := range events {
		if e.GaveBirth() {
			totals[e.FemaleID] += e.LiveBirths
		}
	}
	animals, err := u.animalsByID(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]reportsDomain.ReproductiveRankEntry, 0, len(totals))
	for femaleID, total := range totals {
		a, ok := animals[femaleID]
		if !ok {
			continue
		}
		entries = append(entries, reportsDomain.ReproductiveRankEntry{
			AnimalID:        a.ID,
			AnimalTag:       a.Tag,
			TotalLiveBirths: total,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalLiveBirths != entries[j].TotalLiveBirths {
			return entries[i].TotalLiveBirths > entries[j].TotalLiveBirths
		}
		return entries[i].AnimalID < entries[j].AnimalID
	})
	return entries, nil
}

// --- aggregation helpers ---

// reproductionCounts returns (distinct females with a recorded birth,
// animals currently flagged pregnant).
func (u *UseCase) reproductionCounts(ctx context.Context) (int, int, error) {
	events, err := u.herd.ListReproductionEvents(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("load reproduction events: %w", err)
	}
	var mothers []int64
	for _, e := range events {
		if e.GaveBirth() {
			mothers = append(mothers, e.FemaleID)
		}
	}
	animals, err := u.herd.ListAnimals(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("load animals: %w", err)
	}
	pregnant := 0
	for _, a := range animals {
		if a.Status == livestock.StatusPregnant {
			pregnant++
		}
	}
	return distinctCount(mothers), pregnant, nil
}

// weightGained sums weight-log values inside the filter.
func (u *UseCase) weightGained(ctx context.Context, f Filter) (decimal.Decimal, error) {
	var logs []livestock.WeightLog
	var err error
	if f.AnimalID != nil {
		logs, err = u.herd.WeightLogsByAnimal(ctx, *f.AnimalID)
	} else {
		logs, err = u.herd.ListWeightLogs(ctx)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("load weight logs: %w", err)
	}

	var inLocation map[int64]bool
	if f.AnimalID == nil && f.LocationID != nil {
		inLocation, err = u.animalsAtLocation(ctx, *f.LocationID)
		if err != nil {
			return decimal.Zero, err
		}
	}

	var values []decimal.Decimal
	for _, l := range logs {
		if !f.Range.Contains(l.LogDate) {
			continue
		}
		if inLocation != nil && !inLocation[l.AnimalID] {
			continue
		}
		values = append(values, l.WeightKg)
	}
	return sumDecimals(values), nil
}

// feedConsumed sums feeding-log quantities inside the filter. An animal
// filter narrows to the animal's current location; an animal without a
// location (or unknown) consumes nothing attributable.
func (u *UseCase) feedConsumed(ctx context.Context, f Filter) (decimal.Decimal, error) {
	locationID := f.LocationID
	if f.AnimalID != nil {
		animal, err := u.herd.GetAnimal(ctx, *f.AnimalID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return decimal.Zero, nil
			}
			return decimal.Zero, err
		}
		if animal.LocationID == nil {
			return decimal.Zero, nil
		}
		locationID = animal.LocationID
	}

	logs, err := u.feeding.ListFeedingLogs(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load feeding logs: %w", err)
	}
	var values []decimal.Decimal
	for _, l := range logs {
		if !f.Range.Contains(l.LogDate) {
			continue
		}
		if locationID != nil && l.LocationID != *locationID {
			continue
		}
		values = append(values, l.QuantityKg)
	}
	return sumDecimals(values), nil
}

// transactionTotals sums cost and income transactions inside the filter.
func (u *UseCase) transactionTotals(ctx context.Context, f Filter) (cost, income decimal.Decimal, err error) {
	txs, err := u.finance.ListTransactions(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("load transactions: %w", err)
	}

	var inLocation map[int64]bool
	if f.AnimalID == nil && f.LocationID != nil {
		inLocation, err = u.animalsAtLocation(ctx, *f.LocationID)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}

	cost, income = decimal.Zero, decimal.Zero
	for _, tx := range txs {
		if !f.Range.Contains(tx.TransactionDate) {
			continue
		}
		if f.AnimalID != nil && !tx.RelatesToAnimal(*f.AnimalID) {
			continue
		}
		if inLocation != nil && !transactionAtLocation(tx, *f.LocationID, inLocation) {
			continue
		}
		switch tx.Type {
		case finance.TypeCost:
			cost = cost.Add(tx.Amount)
		case finance.TypeIncome:
			income = income.Add(tx.Amount)
		}
	}
	return cost, income, nil
}

// transactionAtLocation matches transactions attributed to the location
// itself or to an animal housed there.
func transactionAtLocation(tx finance.FinancialTransaction, locationID int64, inLocation map[int64]bool) bool {
	if tx.Related == nil {
		return false
	}
	switch tx.Related.Kind {
	case finance.RelatedLocation:
		return tx.Related.ID == locationID
	case finance.RelatedAnimal:
		return inLocation[tx.Related.ID]
	default:
		return false
	}
}

func (u *UseCase) animalsByID(ctx context.Context) (map[int64]livestock.Animal, error) {
	animals, err := u.herd.ListAnimals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load animals: %w", err)
	}
	byID := make(map[int64]livestock.Animal, len(animals))
	for _, a := range animals {
		byID[a.ID] = a
	}
	return byID, nil
}

func (u *UseCase) animalsAtLocation(ctx context.Context, locationID int64) (map[int64]bool, error) {
	animals, err := u.herd.ListAnimals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load animals: %w", err)
	}
	in := make(map[int64]bool)
	for _, a := range animals {
		if a.LocationID != nil && *a.LocationID == locationID {
			in[a.ID] = true
		}
	}
	return in, nil
}
