// Package memory provides an in-memory store that satisfies every
// repository interface in the application layer. It backs tests and local
// runs without a database.
package memory

import (
	"context"
	"sync"

	"cuy-farm/internal/apperr"
	"cuy-farm/internal/domain/feeding"
	"cuy-farm/internal/domain/finance"
	"cuy-farm/internal/domain/health"
	"cuy-farm/internal/domain/livestock"
)

// Store keeps all farm records in process memory, guarded by a single
// RWMutex. Ids are assigned from a per-store sequence.
type Store struct {
	mu  sync.RWMutex
	seq int64

	animals     []livestock.Animal
	lines       []livestock.Line
	locations   []livestock.Location
	weightLogs  []livestock.WeightLog
	reproEvents []livestock.ReproductionEvent

	healthLogs  []health.HealthLog
	treatments  []health.Treatment
	medications []health.Medication

	inventory   []feeding.FeedInventory
	feedingLogs []feeding.FeedingLog

	transactions []finance.FinancialTransaction
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Store) CreateAnimal(_ context.Context, a livestock.Animal) (livestock.Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.animals {
		if existing.Tag == a.Tag {
			return livestock.Animal{}, apperr.Validation("animal tag %q already exists", a.Tag)
		}
	}
	a.ID = s.nextID()
	s.animals = append(s.animals, a)
	return a, nil
}

func (s *Store) ListAnimals(context.Context) ([]livestock.Animal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]livestock.Animal, len(s.animals))
	copy(out, s.animals)
	return out, nil
}

func (s *Store) GetAnimal(_ context.Context, id int64) (livestock.Animal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.animals {
		if a.ID == id {
			return a, nil
		}
	}
	return livestock.Animal{}, apperr.NotFound("animal %d not found", id)
}

// UpdateAnimalStatus changes the lifecycle status of one animal.
func (s *Store) UpdateAnimalStatus(_ context.Context, id int64, status livestock.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.animals {
		if s.animals[i].ID == id {
			s.animals[i].Status = status
			return nil
		}
	}
	return apperr.NotFound("animal %d not found", id)
}

func (s *Store) CreateLine(_ context.Context, l livestock.Line) (livestock.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.lines {
		if existing.Name == l.Name {
			return livestock.Line{}, apperr.Validation("line %q already exists", l.Name)
		}
	}
	l.ID = s.nextID()
	s.lines = append(s.lines, l)
	return l, nil
}

func (s *Store) ListLines(context.Context) ([]livestock.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]livestock.Line, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

func (s *Store) CreateLocation(_ context.Context, l livestock.Location) (livestock.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.locations {
		if existing.Name == l.Name {
			return livestock.Location{}, apperr.Validation("location %q already exists", l.Name)
		}
	}
	l.ID = s.nextID()
	s.locations = append(s.locations, l)
	return l, nil
}

func (s *Store) ListLocations(context.Context) ([]livestock.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]livestock.Location, len(s.locations))
	copy(out, s.locations)
	return out, nil
}

func (s *Store) CreateWeightLog(_ context.Context, w livestock.WeightLog) (livestock.WeightLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.nextID()
	s.weightLogs = append(s.weightLogs, w)
	return w, nil
}

func (s *Store) ListWeightLogs(context.Context) ([]livestock.WeightLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]livestock.WeightLog, len(s.weightLogs))
	copy(out, s.weightLogs)
	return out, nil
}

func (s *Store) WeightLogsByAnimal(_ context.Context, animalID int64) ([]livestock.WeightLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]livestock.WeightLog, 0)
	for _, w := range s.weightLogs {
		if w.AnimalID == animalID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *Store) CreateReproductionEvent(_ context.Context, e livestock.ReproductionEvent) (livestock.ReproductionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID()
	s.reproEvents = append(s.reproEvents, e)
	return e, nil
}

func (s *Store) ListReproductionEvents(context.Context) ([]livestock.ReproductionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]livestock.ReproductionEvent, len(s.reproEvents))
	copy(out, s.reproEvents)
	return out, nil
}

func (s *Store) CreateHealthLog(_ context.Context, h health.HealthLog) (health.HealthLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h.ID = s.nextID()
	s.healthLogs = append(s.healthLogs, h)
	return h, nil
}

func (s *Store) ListHealthLogs(context.Context) ([]health.HealthLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]health.HealthLog, len(s.healthLogs))
	copy(out, s.healthLogs)
	return out, nil
}

func (s *Store) GetHealthLog(_ context.Context, id int64) (health.HealthLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.healthLogs {
		if h.ID == id {
			return h, nil
		}
	}
	return health.HealthLog{}, apperr.NotFound("health log %d not found", id)
}

func (s *Store) CreateTreatment(_ context.Context, t health.Treatment) (health.Treatment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID()
	s.treatments = append(s.treatments, t)
	return t, nil
}

func (s *Store) ListTreatments(context.Context) ([]health.Treatment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]health.Treatment, len(s.treatments))
	copy(out, s.treatments)
	return out, nil
}

func (s *Store) CreateMedication(_ context.Context, m health.Medication) (health.Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.medications {
		if existing.Name == m.Name {
			return health.Medication{}, apperr.Validation("medication %q already exists", m.Name)
		}
	}
	m.ID = s.nextID()
	s.medications = append(s.medications, m)
	return m, nil
}

func (s *Store) ListMedications(context.Context) ([]health.Medication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]health.Medication, len(s.medications))
	copy(out, s.medications)
	return out, nil
}

func (s *Store) GetMedication(_ context.Context, id int64) (health.Medication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.medications {
		if m.ID == id {
			return m, nil
		}
	}
	return health.Medication{}, apperr.NotFound("medication %d not found", id)
}

// CreateFeedInventory adds a stock row. Product names are unique so the
// feeding-log decrement always resolves to exactly one row.
func (s *Store) CreateFeedInventory(_ context.Context, f feeding.FeedInventory) (feeding.FeedInventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.inventory {
		if existing.ProductName == f.ProductName {
			return feeding.FeedInventory{}, apperr.Validation("feed product %q already exists", f.ProductName)
		}
	}
	f.ID = s.nextID()
	s.inventory = append(s.inventory, f)
	return f, nil
}

func (s *Store) ListFeedInventory(context.Context) ([]feeding.FeedInventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]feeding.FeedInventory, len(s.inventory))
	copy(out, s.inventory)
	return out, nil
}

// CreateFeedingLog records the log and decrements the inventory row whose
// product name matches the feed type, under the same lock. A missing
// product or insufficient stock fails the write and leaves both
// collections untouched.
func (s *Store) CreateFeedingLog(_ context.Context, f feeding.FeedingLog) (feeding.FeedingLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.inventory {
		if s.inventory[i].ProductName == f.FeedType {
			idx = i
			break
		}
	}
	if idx < 0 {
		return feeding.FeedingLog{}, apperr.Validation("no feed inventory for product %q", f.FeedType)
	}
	remaining := s.inventory[idx].QuantityKg.Sub(f.QuantityKg)
	if remaining.IsNegative() {
		return feeding.FeedingLog{}, apperr.Validation("insufficient stock of %q: %s kg available, %s kg requested",
			f.FeedType, s.inventory[idx].QuantityKg.String(), f.QuantityKg.String())
	}
	s.inventory[idx].QuantityKg = remaining
	f.ID = s.nextID()
	s.feedingLogs = append(s.feedingLogs, f)
	return f, nil
}

func (s *Store) ListFeedingLogs(context.Context) ([]feeding.FeedingLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]feeding.FeedingLog, len(s.feedingLogs))
	copy(out, s.feedingLogs)
	return out, nil
}

func (s *Store) CreateTransaction(_ context.Context, t finance.FinancialTransaction) (finance.FinancialTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID()
	s.transactions = append(s.transactions, t)
	return t, nil
}

func (s *Store) ListTransactions(context.Context) ([]finance.FinancialTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finance.FinancialTransaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}
