// Package breeding recommends mating pairs from the current herd. A pair is
// recommended when both animals meet the breeding-readiness thresholds for
// their sex and the pedigree does not exclude them.
package breeding

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cuy-farm/internal/domain/livestock"
	reportsDomain "cuy-farm/internal/domain/reports"
)

// HerdReader provides the herd records the recommender consumes.
type HerdReader interface {
	ListAnimals(ctx context.Context) ([]livestock.Animal, error)
	ListWeightLogs(ctx context.Context) ([]livestock.WeightLog, error)
}

// Recommender computes pairing recommendations. Results are recomputed per
// call; nothing is cached or persisted.
type Recommender struct {
	herd HerdReader
	now  func() time.Time
	log  zerolog.Logger
}

// NewRecommender builds the pairing recommender.
func NewRecommender(herd HerdReader, log zerolog.Logger) *Recommender {
	return &Recommender{
		herd: herd,
		now:  time.Now,
		log:  log.With().Str("usecase", "breeding").Logger(),
	}
}

// OptimalPairing returns every breeding-ready female x male combination that
// the pedigree allows: no direct parent-offspring relation in either
// direction and no full siblings. The list is ordered by female id, then
// male id.
func (r *Recommender) OptimalPairing(ctx context.Context) ([]reportsDomain.PairingRecommendation, error) {
	animals, err := r.herd.ListAnimals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load animals: %w", err)
	}
	logs, err := r.herd.ListWeightLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load weight logs: %w", err)
	}

	latest := latestWeights(logs)
	today := r.now()

	var females, males []livestock.Animal
	for _, a := range animals {
		if !a.BreedingReady(latest[a.ID], today) {
			continue
		}
		switch a.Sex {
		case livestock.SexFemale:
			females = append(females, a)
		case livestock.SexMale:
			males = append(males, a)
		}
	}
	sort.Slice(females, func(i, j int) bool { return females[i].ID < females[j].ID })
	sort.Slice(males, func(i, j int) bool { return males[i].ID < males[j].ID })

	recs := make([]reportsDomain.PairingRecommendation, 0)
	for _, f := range females {
		for _, m := range males {
			if livestock.ExcludedPair(f, m) {
				continue
			}
			recs = append(recs, reportsDomain.PairingRecommendation{
				FemaleID:  f.ID,
				FemaleTag: f.Tag,
				MaleID:    m.ID,
				MaleTag:   m.Tag,
				Reason:    "both animals meet the age and weight thresholds and share no direct kinship",
			})
		}
	}
	r.log.Debug().
		Int("females", len(females)).
		Int("males", len(males)).
		Int("pairs", len(recs)).
		Msg("pairing scan done")
	return recs, nil
}

// latestWeights maps each animal to its most recent logged weight. Animals
// with no log are absent and read back as zero.
func latestWeights(logs []livestock.WeightLog) map[int64]decimal.Decimal {
	type stamp struct {
		date time.Time
		id   int64
	}
	seen := make(map[int64]stamp)
	out := make(map[int64]decimal.Decimal)
	for _, l := range logs {
		prev, ok := seen[l.AnimalID]
		if ok && (l.LogDate.Before(prev.date) || (l.LogDate.Equal(prev.date) && l.ID < prev.id)) {
			continue
		}
		seen[l.AnimalID] = stamp{l.LogDate, l.ID}
		out[l.AnimalID] = l.WeightKg
	}
	return out
}
