// Package livestock holds the herd entities and the zootechnical rules that
// operate on them: age, breeding readiness and pedigree-based pairing
// exclusions.
package livestock

import (
	"time"

	"github.com/shopspring/decimal"

	"cuy-farm/internal/apperr"
)

// Sex of an animal.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// Status is the lifecycle state of an animal.
type Status string

const (
	StatusActive       Status = "active"
	StatusInQuarantine Status = "in_quarantine"
	StatusSick         Status = "sick"
	StatusPregnant     Status = "pregnant"
	StatusRetired      Status = "retired"
	StatusSold         Status = "sold"
	StatusDeceased     Status = "deceased"
)

var allStatuses = map[Status]bool{
	StatusActive:       true,
	StatusInQuarantine: true,
	StatusSick:         true,
	StatusPregnant:     true,
	StatusRetired:      true,
	StatusSold:         true,
	StatusDeceased:     true,
}

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s Status) bool {
	return allStatuses[s]
}

// GestationDays is the cuy gestation period used to derive the expected
// birth date when a reproduction event does not carry one.
const GestationDays = 67

// Breeding readiness thresholds. Weight is the latest recorded weight; an
// animal with no weight log is treated as weighing zero and is never ready.
var (
	femaleMinAgeDays = 90
	femaleMinWeight  = decimal.RequireFromString("0.8")
	maleMinAgeDays   = 120
	maleMinWeight    = decimal.RequireFromString("1.0")
)

// Animal is a single cuy. Sire and dam are nullable ids rather than live
// references, so a malformed pedigree can never cause unbounded traversal.
type Animal struct {
	ID         int64      `json:"id"`
	Tag        string     `json:"tag"`
	BirthDate  time.Time  `json:"birth_date"`
	Sex        Sex        `json:"sex"`
	Status     Status     `json:"status"`
	LineID     *int64     `json:"line_id,omitempty"`
	SireID     *int64     `json:"sire_id,omitempty"`
	DamID      *int64     `json:"dam_id,omitempty"`
	LocationID *int64     `json:"location_id,omitempty"`
}

// Validate checks invariants enforced on write. An animal must never point
// at itself as sire or dam; deeper ancestry cycles stay representable and
// are out of scope here.
func (a Animal) Validate() error {
	if a.Tag == "" {
		return apperr.Validation("tag is required")
	}
	if a.Sex != SexMale && a.Sex != SexFemale {
		return apperr.Validation("sex must be M or F")
	}
	if a.BirthDate.IsZero() {
		return apperr.Validation("birth_date is required")
	}
	if a.ID != 0 {
		if a.SireID != nil && *a.SireID == a.ID {
			return apperr.Validation("animal cannot be its own sire")
		}
		if a.DamID != nil && *a.DamID == a.ID {
			return apperr.Validation("animal cannot be its own dam")
		}
	}
	return nil
}

// AgeDays returns the whole days elapsed between birth and today.
func (a Animal) AgeDays(today time.Time) int {
	return int(today.Sub(a.BirthDate).Hours() / 24)
}

// BreedingReady applies the age and weight thresholds for the animal's sex.
// latestWeight is the most recent weight-log value; callers pass zero when
// the animal has no weight log at all.
func (a Animal) BreedingReady(latestWeight decimal.Decimal, today time.Time) bool {
	age := a.AgeDays(today)
	switch a.Sex {
	case SexFemale:
		return age >= femaleMinAgeDays && latestWeight.GreaterThanOrEqual(femaleMinWeight)
	case SexMale:
		return age >= maleMinAgeDays && latestWeight.GreaterThanOrEqual(maleMinWeight)
	default:
		return false
	}
}

// IsParentOf reports whether a is recorded as sire or dam of child.
func (a Animal) IsParentOf(child Animal) bool {
	if child.SireID != nil && *child.SireID == a.ID {
		return true
	}
	if child.DamID != nil && *child.DamID == a.ID {
		return true
	}
	return false
}

// FullSiblings reports whether two animals share the same non-null sire AND
// the same non-null dam. Half-siblings (one shared parent) are allowed under
// current breeding policy.
func FullSiblings(a, b Animal) bool {
	if a.SireID == nil || b.SireID == nil || a.DamID == nil || b.DamID == nil {
		return false
	}
	return *a.SireID == *b.SireID && *a.DamID == *b.DamID
}

// ExcludedPair reports whether a female/male pair must not be recommended:
// direct parent-offspring in either direction, or full siblings.
func ExcludedPair(female, male Animal) bool {
	if female.IsParentOf(male) || male.IsParentOf(female) {
		return true
	}
	return FullSiblings(female, male)
}
