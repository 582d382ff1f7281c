package service

import (
	"context"
	"testing"
	"time"

	"innkeep/internal/packages/repository"
	"innkeep/internal/packages/validator"
	"innkeep/pkg/config"
	"innkeep/pkg/dates"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
	"innkeep/pkg/money"

	"go.mongodb.org/mongo-driver/mongo"
)

// ────────────────────────────────────────────────
// Mock repository for testing
// ────────────────────────────────────────────────

type mockHolidayPackageRepository struct {
	createFunc                func(ctx context.Context, pkg *model.HolidayPackage) error
	findByIDFunc              func(ctx context.Context, id string) (*model.HolidayPackage, error)
	findActiveOverlappingFunc func(ctx context.Context, start, end time.Time) ([]*model.HolidayPackage, error)
}

var _ repository.HolidayPackageRepository = (*mockHolidayPackageRepository)(nil)

func (m *mockHolidayPackageRepository) Create(ctx context.Context, pkg *model.HolidayPackage) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, pkg)
	}
	pkg.ID = "650000000000000000000001"
	return nil
}

func (m *mockHolidayPackageRepository) FindByID(ctx context.Context, id string) (*model.HolidayPackage, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockHolidayPackageRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.HolidayPackage, error) {
	return []*model.HolidayPackage{}, nil
}

func (m *mockHolidayPackageRepository) FindActiveOverlapping(ctx context.Context, start, end time.Time) ([]*model.HolidayPackage, error) {
	if m.findActiveOverlappingFunc != nil {
		return m.findActiveOverlappingFunc(ctx, start, end)
	}
	return []*model.HolidayPackage{}, nil
}

func (m *mockHolidayPackageRepository) Update(ctx context.Context, id string, pkg *model.HolidayPackage) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockHolidayPackageRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockHolidayPackageRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func validPackage() *model.HolidayPackage {
	return &model.HolidayPackage{
		Name:      "Midsummer Escape",
		StartDate: dates.Day(2026, 6, 20),
		EndDate:   dates.Day(2026, 6, 27),
		RoomTypePrices: map[string]money.Amount{
			"Delux": money.FromUnits(900),
			"Suite": money.FromUnits(1400),
		},
		IsActive:             true,
		AllowPartialBookings: false,
	}
}

// ────────────────────────────────────────────────
// Tests for Create()
// ────────────────────────────────────────────────

func TestCreate_AcceptsValidPackage(t *testing.T) {
	cfg := testConfig()
	svc := NewHolidayPackageService(&mockHolidayPackageRepository{}, validator.NewHolidayPackageValidator(cfg.Log), cfg)

	pkg := validPackage()
	if err := svc.Create(context.Background(), pkg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pkg.ID == "" {
		t.Error("expected package ID to be assigned")
	}
	if pkg.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestCreate_RejectsEmptyPriceMap(t *testing.T) {
	cfg := testConfig()
	svc := NewHolidayPackageService(&mockHolidayPackageRepository{}, validator.NewHolidayPackageValidator(cfg.Log), cfg)

	pkg := validPackage()
	pkg.RoomTypePrices = map[string]money.Amount{}

	err := svc.Create(context.Background(), pkg)
	if err == nil {
		t.Fatal("expected validation error for empty price map")
	}
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected code %s, got %v", apperrors.CodeValidation, err)
	}
}

func TestCreate_RejectsNonPositivePrice(t *testing.T) {
	cfg := testConfig()
	svc := NewHolidayPackageService(&mockHolidayPackageRepository{}, validator.NewHolidayPackageValidator(cfg.Log), cfg)

	pkg := validPackage()
	pkg.RoomTypePrices["Delux"] = money.FromUnits(0)

	err := svc.Create(context.Background(), pkg)
	if err == nil {
		t.Fatal("expected validation error for non-positive price")
	}
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected code %s, got %v", apperrors.CodeValidation, err)
	}
}

func TestCreate_NormalizesRoomTypeKeys(t *testing.T) {
	cfg := testConfig()

	var stored *model.HolidayPackage
	mockRepo := &mockHolidayPackageRepository{
		createFunc: func(ctx context.Context, pkg *model.HolidayPackage) error {
			stored = pkg
			return nil
		},
	}

	svc := NewHolidayPackageService(mockRepo, validator.NewHolidayPackageValidator(cfg.Log), cfg)

	pkg := validPackage()
	pkg.RoomTypePrices = map[string]money.Amount{
		"  Delux  ": money.FromUnits(900),
	}

	if err := svc.Create(context.Background(), pkg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected package to reach the repository")
	}
	if _, ok := stored.RoomTypePrices["Delux"]; !ok {
		t.Errorf("expected normalized room type key, got %v", stored.RoomTypePrices)
	}
}

func TestCreate_RejectsInvertedWindow(t *testing.T) {
	cfg := testConfig()
	svc := NewHolidayPackageService(&mockHolidayPackageRepository{}, validator.NewHolidayPackageValidator(cfg.Log), cfg)

	pkg := validPackage()
	pkg.StartDate, pkg.EndDate = pkg.EndDate, pkg.StartDate

	err := svc.Create(context.Background(), pkg)
	if err == nil {
		t.Fatal("expected validation error for inverted window")
	}
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected code %s, got %v", apperrors.CodeValidation, err)
	}
}

// ────────────────────────────────────────────────
// Tests for GetActive()
// ────────────────────────────────────────────────

func TestGetActive_RejectsInvertedRange(t *testing.T) {
	cfg := testConfig()
	svc := NewHolidayPackageService(&mockHolidayPackageRepository{}, validator.NewHolidayPackageValidator(cfg.Log), cfg)

	_, err := svc.GetActive(context.Background(), dates.Day(2026, 6, 27), dates.Day(2026, 6, 20))
	if err == nil {
		t.Fatal("expected error for inverted range")
	}
	if !apperrors.IsCode(err, apperrors.CodeInvalidDateRange) {
		t.Errorf("expected code %s, got %v", apperrors.CodeInvalidDateRange, err)
	}
}

func TestGetActive_NormalizesDatesBeforeQuery(t *testing.T) {
	cfg := testConfig()

	var gotStart, gotEnd time.Time
	mockRepo := &mockHolidayPackageRepository{
		findActiveOverlappingFunc: func(ctx context.Context, start, end time.Time) ([]*model.HolidayPackage, error) {
			gotStart, gotEnd = start, end
			return []*model.HolidayPackage{}, nil
		},
	}
	svc := NewHolidayPackageService(mockRepo, validator.NewHolidayPackageValidator(cfg.Log), cfg)

	loc := time.FixedZone("EET", 2*60*60)
	checkIn := time.Date(2026, 6, 20, 15, 0, 0, 0, loc)
	checkOut := time.Date(2026, 6, 27, 11, 0, 0, 0, loc)

	if _, err := svc.GetActive(context.Background(), checkIn, checkOut); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotStart.Equal(dates.Day(2026, 6, 20)) {
		t.Errorf("check-in not normalized: %v", gotStart)
	}
	if !gotEnd.Equal(dates.Day(2026, 6, 27)) {
		t.Errorf("check-out not normalized: %v", gotEnd)
	}
}
