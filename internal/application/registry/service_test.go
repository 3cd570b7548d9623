package registry

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cuy-farm/internal/apperr"
	"cuy-farm/internal/domain/feeding"
	"cuy-farm/internal/domain/finance"
	"cuy-farm/internal/domain/health"
	"cuy-farm/internal/domain/livestock"
	"cuy-farm/internal/infra/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func i64(v int64) *int64 { return &v }

func newService() *Service {
	store := memory.NewStore()
	return NewService(store, store, store, store, zerolog.Nop())
}

func TestCreateAnimal(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.CreateAnimal(ctx, livestock.Animal{
		Tag: "CUY-001", Sex: livestock.SexFemale, BirthDate: date(2024, 1, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if created.Status != livestock.StatusActive {
		t.Fatalf("status = %s, want active default", created.Status)
	}

	_, err = svc.CreateAnimal(ctx, livestock.Animal{Sex: livestock.SexFemale, BirthDate: date(2024, 1, 1)})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for missing tag, got %v", err)
	}
}

func TestUpdateAnimalStatus(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.CreateAnimal(ctx, livestock.Animal{
		Tag: "CUY-001", Sex: livestock.SexFemale, BirthDate: date(2024, 1, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.UpdateAnimalStatus(ctx, created.ID, livestock.StatusSold); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.GetAnimal(ctx, created.ID)
	if got.Status != livestock.StatusSold {
		t.Fatalf("status = %s, want sold", got.Status)
	}

	if err := svc.UpdateAnimalStatus(ctx, created.ID, livestock.Status("grazing")); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if err := svc.UpdateAnimalStatus(ctx, 999, livestock.StatusRetired); !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestCreateWeightLog_UnknownAnimal(t *testing.T) {
	svc := newService()
	_, err := svc.CreateWeightLog(context.Background(), livestock.WeightLog{
		AnimalID: 42, LogDate: date(2024, 1, 1), WeightKg: dec("0.50"),
	})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestCreateReproductionEvent_DerivesExpectedBirth(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	female, err := svc.CreateAnimal(ctx, livestock.Animal{
		Tag: "F-1", Sex: livestock.SexFemale, BirthDate: date(2023, 6, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev, err := svc.CreateReproductionEvent(ctx, livestock.ReproductionEvent{
		FemaleID: female.ID, MatingDate: date(2024, 3, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := date(2024, 3, 1).AddDate(0, 0, livestock.GestationDays)
	if !ev.ExpectedBirthDate.Equal(want) {
		t.Fatalf("expected birth date = %v, want %v", ev.ExpectedBirthDate, want)
	}

	// An explicit date must survive untouched.
	explicit := date(2024, 5, 20)
	ev, err = svc.CreateReproductionEvent(ctx, livestock.ReproductionEvent{
		FemaleID: female.ID, MatingDate: date(2024, 3, 1), ExpectedBirthDate: explicit,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ev.ExpectedBirthDate.Equal(explicit) {
		t.Fatalf("expected birth date = %v, want explicit %v", ev.ExpectedBirthDate, explicit)
	}
}

func TestCreateTreatment_DerivesWithdrawalEnd(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	animal, err := svc.CreateAnimal(ctx, livestock.Animal{
		Tag: "CUY-001", Sex: livestock.SexMale, BirthDate: date(2023, 6, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	med, err := svc.CreateMedication(ctx, health.Medication{Name: "Ivermectin", WithdrawalPeriodDays: 14})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hl, err := svc.CreateHealthLog(ctx, health.HealthLog{
		AnimalID: animal.ID, LogDate: date(2024, 6, 1), Diagnosis: "mange",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tr, err := svc.CreateTreatment(ctx, health.Treatment{
		HealthLogID: hl.ID, MedicationID: i64(med.ID), Dosage: "0.2ml",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.WithdrawalEndDate == nil || !tr.WithdrawalEndDate.Equal(date(2024, 6, 15)) {
		t.Fatalf("withdrawal end = %v, want 2024-06-15", tr.WithdrawalEndDate)
	}

	// Without a medication there is no withdrawal period.
	tr, err = svc.CreateTreatment(ctx, health.Treatment{HealthLogID: hl.ID, Dosage: "warm compress"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.WithdrawalEndDate != nil {
		t.Fatalf("expected nil withdrawal end, got %v", tr.WithdrawalEndDate)
	}

	_, err = svc.CreateTreatment(ctx, health.Treatment{HealthLogID: 999})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found for unknown health log, got %v", err)
	}
}

func TestCreateFeedingLog_StockDecrement(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.CreateFeedInventory(ctx, feeding.FeedInventory{
		ProductName: "alfalfa", QuantityKg: dec("4.00"), CostPerKg: dec("1.50"), EntryDate: date(2024, 1, 1),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.CreateFeedingLog(ctx, feeding.FeedingLog{
		LocationID: 1, LogDate: date(2024, 1, 2), FeedType: "alfalfa", QuantityKg: dec("1.50"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, _ := svc.ListFeedInventory(ctx)
	if !items[0].QuantityKg.Equal(dec("2.50")) {
		t.Fatalf("stock = %s, want 2.50", items[0].QuantityKg)
	}

	_, err := svc.CreateFeedingLog(ctx, feeding.FeedingLog{
		LocationID: 1, LogDate: date(2024, 1, 3), FeedType: "alfalfa", QuantityKg: dec("3.00"),
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for overdraw, got %v", err)
	}

	// Zero quantity is rejected before it reaches the store.
	_, err = svc.CreateFeedingLog(ctx, feeding.FeedingLog{
		LocationID: 1, LogDate: date(2024, 1, 3), FeedType: "alfalfa", QuantityKg: decimal.Zero,
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestCreateTransaction(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, finance.FinancialTransaction{
		TransactionDate: date(2024, 2, 1),
		Type:            finance.TypeIncome,
		Amount:          dec("35.00"),
		Description:     "sale of two males",
		Related:         &finance.RelatedEntity{Kind: finance.RelatedAnimal, ID: 7},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	_, err = svc.CreateTransaction(ctx, finance.FinancialTransaction{
		TransactionDate: date(2024, 2, 1), Type: "transfer", Amount: dec("5.00"),
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for bad type, got %v", err)
	}
}
