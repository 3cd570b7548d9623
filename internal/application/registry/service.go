// Package registry implements the write side of the farm records: creating
// and listing the entities the reports and alerts are computed from.
// Validation happens here, before anything reaches a store.
package registry

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"cuy-farm/internal/apperr"
	"cuy-farm/internal/domain/feeding"
	"cuy-farm/internal/domain/finance"
	"cuy-farm/internal/domain/health"
	"cuy-farm/internal/domain/livestock"
)

// HerdStore persists herd entities. Create methods return the stored entity
// with its assigned id.
type HerdStore interface {
	CreateAnimal(ctx context.Context, a livestock.Animal) (livestock.Animal, error)
	ListAnimals(ctx context.Context) ([]livestock.Animal, error)
	GetAnimal(ctx context.Context, id int64) (livestock.Animal, error)
	UpdateAnimalStatus(ctx context.Context, id int64, status livestock.Status) error
	CreateLine(ctx context.Context, l livestock.Line) (livestock.Line, error)
	ListLines(ctx context.Context) ([]livestock.Line, error)
	CreateLocation(ctx context.Context, l livestock.Location) (livestock.Location, error)
	ListLocations(ctx context.Context) ([]livestock.Location, error)
	CreateWeightLog(ctx context.Context, w livestock.WeightLog) (livestock.WeightLog, error)
	ListWeightLogs(ctx context.Context) ([]livestock.WeightLog, error)
	CreateReproductionEvent(ctx context.Context, e livestock.ReproductionEvent) (livestock.ReproductionEvent, error)
	ListReproductionEvents(ctx context.Context) ([]livestock.ReproductionEvent, error)
}

// HealthStore persists veterinary records.
type HealthStore interface {
	CreateHealthLog(ctx context.Context, h health.HealthLog) (health.HealthLog, error)
	ListHealthLogs(ctx context.Context) ([]health.HealthLog, error)
	GetHealthLog(ctx context.Context, id int64) (health.HealthLog, error)
	CreateTreatment(ctx context.Context, t health.Treatment) (health.Treatment, error)
	ListTreatments(ctx context.Context) ([]health.Treatment, error)
	CreateMedication(ctx context.Context, m health.Medication) (health.Medication, error)
	ListMedications(ctx context.Context) ([]health.Medication, error)
	GetMedication(ctx context.Context, id int64) (health.Medication, error)
}

// FeedingStore persists feed records. CreateFeedingLog must atomically
// decrement the matching inventory row and fail the whole write when the
// stock would go negative.
type FeedingStore interface {
	CreateFeedInventory(ctx context.Context, f feeding.FeedInventory) (feeding.FeedInventory, error)
	ListFeedInventory(ctx context.Context) ([]feeding.FeedInventory, error)
	CreateFeedingLog(ctx context.Context, f feeding.FeedingLog) (feeding.FeedingLog, error)
	ListFeedingLogs(ctx context.Context) ([]feeding.FeedingLog, error)
}

// FinanceStore persists financial transactions.
type FinanceStore interface {
	CreateTransaction(ctx context.Context, t finance.FinancialTransaction) (finance.FinancialTransaction, error)
	ListTransactions(ctx context.Context) ([]finance.FinancialTransaction, error)
}

// Service is the registry use case.
type Service struct {
	herd    HerdStore
	health  HealthStore
	feeding FeedingStore
	finance FinanceStore
	log     zerolog.Logger
}

// NewService builds the registry service.
func NewService(herd HerdStore, healthS HealthStore, feedingS FeedingStore, financeS FinanceStore, log zerolog.Logger) *Service {
	return &Service{
		herd:    herd,
		health:  healthS,
		feeding: feedingS,
		finance: financeS,
		log:     log.With().Str("usecase", "registry").Logger(),
	}
}

func (s *Service) CreateAnimal(ctx context.Context, a livestock.Animal) (livestock.Animal, error) {
	if err := a.Validate(); err != nil {
		return livestock.Animal{}, err
	}
	if a.Status == "" {
		a.Status = livestock.StatusActive
	}
	created, err := s.herd.CreateAnimal(ctx, a)
	if err != nil {
		return livestock.Animal{}, fmt.Errorf("create animal: %w", err)
	}
	s.log.Info().Int64("animal_id", created.ID).Str("tag", created.Tag).Msg("animal registered")
	return created, nil
}

func (s *Service) ListAnimals(ctx context.Context) ([]livestock.Animal, error) {
	return s.herd.ListAnimals(ctx)
}

func (s *Service) GetAnimal(ctx context.Context, id int64) (livestock.Animal, error) {
	return s.herd.GetAnimal(ctx, id)
}

// UpdateAnimalStatus moves an animal through its lifecycle, e.g. into
// quarantine when a treatment starts or to sold after a sale transaction.
func (s *Service) UpdateAnimalStatus(ctx context.Context, id int64, status livestock.Status) error {
	if !livestock.ValidStatus(status) {
		return apperr.Validation("unknown status %q", status)
	}
	if err := s.herd.UpdateAnimalStatus(ctx, id, status); err != nil {
		return err
	}
	s.log.Info().Int64("animal_id", id).Str("status", string(status)).Msg("animal status changed")
	return nil
}

func (s *Service) CreateLine(ctx context.Context, l livestock.Line) (livestock.Line, error) {
	if l.Name == "" {
		return livestock.Line{}, apperr.Validation("name is required")
	}
	return s.herd.CreateLine(ctx, l)
}

func (s *Service) ListLines(ctx context.Context) ([]livestock.Line, error) {
	return s.herd.ListLines(ctx)
}

func (s *Service) CreateLocation(ctx context.Context, l livestock.Location) (livestock.Location, error) {
	if err := l.Validate(); err != nil {
		return livestock.Location{}, err
	}
	return s.herd.CreateLocation(ctx, l)
}

func (s *Service) ListLocations(ctx context.Context) ([]livestock.Location, error) {
	return s.herd.ListLocations(ctx)
}

// CreateWeightLog records a measurement; the animal must exist.
func (s *Service) CreateWeightLog(ctx context.Context, w livestock.WeightLog) (livestock.WeightLog, error) {
	if err := w.Validate(); err != nil {
		return livestock.WeightLog{}, err
	}
	if _, err := s.herd.GetAnimal(ctx, w.AnimalID); err != nil {
		return livestock.WeightLog{}, err
	}
	return s.herd.CreateWeightLog(ctx, w)
}

func (s *Service) ListWeightLogs(ctx context.Context) ([]livestock.WeightLog, error) {
	return s.herd.ListWeightLogs(ctx)
}

// CreateReproductionEvent records a mating. When no expected birth date is
// given it is derived from the mating date plus the gestation period.
func (s *Service) CreateReproductionEvent(ctx context.Context, e livestock.ReproductionEvent) (livestock.ReproductionEvent, error) {
	if err := e.Validate(); err != nil {
		return livestock.ReproductionEvent{}, err
	}
	if _, err := s.herd.GetAnimal(ctx, e.FemaleID); err != nil {
		return livestock.ReproductionEvent{}, err
	}
	e.DefaultExpectedBirth()
	created, err := s.herd.CreateReproductionEvent(ctx, e)
	if err != nil {
		return livestock.ReproductionEvent{}, fmt.Errorf("create reproduction event: %w", err)
	}
	s.log.Info().Int64("event_id", created.ID).Int64("female_id", created.FemaleID).Msg("mating recorded")
	return created, nil
}

func (s *Service) ListReproductionEvents(ctx context.Context) ([]livestock.ReproductionEvent, error) {
	return s.herd.ListReproductionEvents(ctx)
}

func (s *Service) CreateHealthLog(ctx context.Context, h health.HealthLog) (health.HealthLog, error) {
	if err := h.Validate(); err != nil {
		return health.HealthLog{}, err
	}
	if _, err := s.herd.GetAnimal(ctx, h.AnimalID); err != nil {
		return health.HealthLog{}, err
	}
	return s.health.CreateHealthLog(ctx, h)
}

func (s *Service) ListHealthLogs(ctx context.Context) ([]health.HealthLog, error) {
	return s.health.ListHealthLogs(ctx)
}

// CreateTreatment derives the withdrawal end date from the health log date
// and the medication's withdrawal period. Treatments without a medication
// carry no withdrawal date.
func (s *Service) CreateTreatment(ctx context.Context, t health.Treatment) (health.Treatment, error) {
	if err := t.Validate(); err != nil {
		return health.Treatment{}, err
	}
	hl, err := s.health.GetHealthLog(ctx, t.HealthLogID)
	if err != nil {
		return health.Treatment{}, err
	}
	if t.MedicationID != nil {
		med, err := s.health.GetMedication(ctx, *t.MedicationID)
		if err != nil {
			return health.Treatment{}, err
		}
		end := health.WithdrawalEnd(hl.LogDate, med)
		t.WithdrawalEndDate = &end
	}
	return s.health.CreateTreatment(ctx, t)
}

func (s *Service) ListTreatments(ctx context.Context) ([]health.Treatment, error) {
	return s.health.ListTreatments(ctx)
}

func (s *Service) CreateMedication(ctx context.Context, m health.Medication) (health.Medication, error) {
	if err := m.Validate(); err != nil {
		return health.Medication{}, err
	}
	return s.health.CreateMedication(ctx, m)
}

func (s *Service) ListMedications(ctx context.Context) ([]health.Medication, error) {
	return s.health.ListMedications(ctx)
}

func (s *Service) CreateFeedInventory(ctx context.Context, f feeding.FeedInventory) (feeding.FeedInventory, error) {
	if err := f.Validate(); err != nil {
		return feeding.FeedInventory{}, err
	}
	return s.feeding.CreateFeedInventory(ctx, f)
}

func (s *Service) ListFeedInventory(ctx context.Context) ([]feeding.FeedInventory, error) {
	return s.feeding.ListFeedInventory(ctx)
}

// CreateFeedingLog records feed given to a location. The store decrements
// the matching inventory row in the same write; insufficient stock fails the
// whole operation and nothing is recorded.
func (s *Service) CreateFeedingLog(ctx context.Context, f feeding.FeedingLog) (feeding.FeedingLog, error) {
	if err := f.Validate(); err != nil {
		return feeding.FeedingLog{}, err
	}
	created, err := s.feeding.CreateFeedingLog(ctx, f)
	if err != nil {
		return feeding.FeedingLog{}, err
	}
	s.log.Info().
		Int64("location_id", created.LocationID).
		Str("feed_type", created.FeedType).
		Str("quantity_kg", created.QuantityKg.String()).
		Msg("feeding recorded")
	return created, nil
}

func (s *Service) ListFeedingLogs(ctx context.Context) ([]feeding.FeedingLog, error) {
	return s.feeding.ListFeedingLogs(ctx)
}

func (s *Service) CreateTransaction(ctx context.Context, t finance.FinancialTransaction) (finance.FinancialTransaction, error) {
	if err := t.Validate(); err != nil {
		return finance.FinancialTransaction{}, err
	}
	return s.finance.CreateTransaction(ctx, t)
}

func (s *Service) ListTransactions(ctx context.Context) ([]finance.FinancialTransaction, error) {
	return s.finance.ListTransactions(ctx)
}
