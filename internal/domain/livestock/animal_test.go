package livestock

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func i64(v int64) *int64 { return &v }

func TestAnimal_BreedingReady(t *testing.T) {
	today := date(2024, 6, 1)

	cases := []struct {
		name   string
		sex    Sex
		ageD   int
		weight string
		want   bool
	}{
		{"female old and heavy enough", SexFemale, 90, "0.80", true},
		{"female too young", SexFemale, 89, "1.50", false},
		{"female too light", SexFemale, 120, "0.79", false},
		{"male old and heavy enough", SexMale, 120, "1.00", true},
		{"male too young", SexMale, 119, "1.50", false},
		{"male too light", SexMale, 200, "0.99", false},
		{"no weight log means never ready", SexFemale, 365, "0", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Animal{
				ID:        1,
				Tag:       "CUY-001",
				Sex:       tc.sex,
				BirthDate: today.AddDate(0, 0, -tc.ageD),
			}
			got := a.BreedingReady(decimal.RequireFromString(tc.weight), today)
			if got != tc.want {
				t.Fatalf("BreedingReady = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExcludedPair(t *testing.T) {
	female := Animal{ID: 10, Tag: "F-10", Sex: SexFemale, SireID: i64(1), DamID: i64(2)}

	t.Run("unrelated pair allowed", func(t *testing.T) {
		male := Animal{ID: 20, Tag: "M-20", Sex: SexMale, SireID: i64(3), DamID: i64(4)}
		if ExcludedPair(female, male) {
			t.Fatal("unrelated pair should not be excluded")
		}
	})

	t.Run("male is the female's sire", func(t *testing.T) {
		male := Animal{ID: 1, Tag: "M-1", Sex: SexMale}
		if !ExcludedPair(female, male) {
			t.Fatal("sire-daughter pair must be excluded")
		}
	})

	t.Run("female is the male's dam", func(t *testing.T) {
		dam := Animal{ID: 30, Tag: "F-30", Sex: SexFemale}
		son := Animal{ID: 31, Tag: "M-31", Sex: SexMale, DamID: i64(30)}
		if !ExcludedPair(dam, son) {
			t.Fatal("dam-son pair must be excluded")
		}
	})

	t.Run("full siblings excluded", func(t *testing.T) {
		male := Animal{ID: 11, Tag: "M-11", Sex: SexMale, SireID: i64(1), DamID: i64(2)}
		if !ExcludedPair(female, male) {
			t.Fatal("full siblings must be excluded")
		}
	})

	t.Run("half siblings are not excluded", func(t *testing.T) {
		male := Animal{ID: 12, Tag: "M-12", Sex: SexMale, SireID: i64(1), DamID: i64(9)}
		if ExcludedPair(female, male) {
			t.Fatal("half siblings sharing only the sire stay eligible")
		}
	})

	t.Run("missing parents never match", func(t *testing.T) {
		a := Animal{ID: 40, Tag: "F-40", Sex: SexFemale}
		b := Animal{ID: 41, Tag: "M-41", Sex: SexMale}
		if ExcludedPair(a, b) {
			t.Fatal("animals with unknown pedigree should not be excluded")
		}
	})
}

func TestAnimal_Validate_SelfParent(t *testing.T) {
	a := Animal{ID: 5, Tag: "CUY-005", Sex: SexFemale, BirthDate: date(2024, 1, 1), SireID: i64(5)}
	if err := a.Validate(); err == nil {
		t.Fatal("expected validation error for self-sire")
	}
	a.SireID = nil
	a.DamID = i64(5)
	if err := a.Validate(); err == nil {
		t.Fatal("expected validation error for self-dam")
	}
	a.DamID = i64(4)
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReproductionEvent_DefaultExpectedBirth(t *testing.T) {
	e := ReproductionEvent{FemaleID: 1, MatingDate: date(2024, 1, 1)}
	e.DefaultExpectedBirth()
	want := date(2024, 1, 1).AddDate(0, 0, GestationDays)
	if !e.ExpectedBirthDate.Equal(want) {
		t.Fatalf("expected birth date = %v, want %v", e.ExpectedBirthDate, want)
	}

	explicit := date(2024, 3, 15)
	e2 := ReproductionEvent{FemaleID: 1, MatingDate: date(2024, 1, 1), ExpectedBirthDate: explicit}
	e2.DefaultExpectedBirth()
	if !e2.ExpectedBirthDate.Equal(explicit) {
		t.Fatal("explicit expected birth date must not be overwritten")
	}
}
