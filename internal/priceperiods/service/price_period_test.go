package service

import (
	"context"
	"testing"
	"time"

	"innkeep/internal/priceperiods/repository"
	"innkeep/internal/priceperiods/validator"
	"innkeep/pkg/config"
	"innkeep/pkg/dates"
	mongotx "innkeep/pkg/db/mongo"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
	"innkeep/pkg/money"

	"go.mongodb.org/mongo-driver/mongo"
)

// ────────────────────────────────────────────────
// Mock repository for testing
// ────────────────────────────────────────────────

type mockPricePeriodRepository struct {
	createFunc          func(ctx context.Context, period *model.RoomPricePeriod) error
	findByIDFunc        func(ctx context.Context, id string) (*model.RoomPricePeriod, error)
	findOverlappingFunc func(ctx context.Context, roomType string, start, end time.Time, excludeID string) ([]*model.RoomPricePeriod, error)
}

var _ repository.PricePeriodRepository = (*mockPricePeriodRepository)(nil)

func (m *mockPricePeriodRepository) Create(ctx context.Context, period *model.RoomPricePeriod) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, period)
	}
	period.ID = "650000000000000000000001"
	return nil
}

func (m *mockPricePeriodRepository) FindByID(ctx context.Context, id string) (*model.RoomPricePeriod, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPricePeriodRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.RoomPricePeriod, error) {
	return []*model.RoomPricePeriod{}, nil
}

func (m *mockPricePeriodRepository) FindByRoomType(ctx context.Context, roomType string, limit int, offset int64) ([]*model.RoomPricePeriod, error) {
	return []*model.RoomPricePeriod{}, nil
}

func (m *mockPricePeriodRepository) FindOverlapping(ctx context.Context, roomType string, start, end time.Time, excludeID string) ([]*model.RoomPricePeriod, error) {
	if m.findOverlappingFunc != nil {
		return m.findOverlappingFunc(ctx, roomType, start, end, excludeID)
	}
	return []*model.RoomPricePeriod{}, nil
}

func (m *mockPricePeriodRepository) FindCovering(ctx context.Context, roomTypes []string, start, end time.Time) ([]*model.RoomPricePeriod, error) {
	return []*model.RoomPricePeriod{}, nil
}

func (m *mockPricePeriodRepository) Update(ctx context.Context, id string, period *model.RoomPricePeriod) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockPricePeriodRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockPricePeriodRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockPricePeriodRepository) CountByRoomType(ctx context.Context, roomType string) (int64, error) {
	return 0, nil
}

func (m *mockPricePeriodRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
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

func validPeriod() *model.RoomPricePeriod {
	return &model.RoomPricePeriod{
		RoomType:  "Delux",
		StartDate: dates.Day(2026, 7, 1),
		EndDate:   dates.Day(2026, 7, 10),
		Price:     money.FromUnits(150),
	}
}

// ────────────────────────────────────────────────
// Tests for Create()
// ────────────────────────────────────────────────

func TestCreate_RejectsOverlappingPeriod(t *testing.T) {
	cfg := testConfig()
	mockRepo := &mockPricePeriodRepository{
		findOverlappingFunc: func(ctx context.Context, roomType string, start, end time.Time, excludeID string) ([]*model.RoomPricePeriod, error) {
			return []*model.RoomPricePeriod{
				{
					ID:        "650000000000000000000009",
					RoomType:  roomType,
					StartDate: dates.Day(2026, 7, 5),
					EndDate:   dates.Day(2026, 7, 20),
					Price:     money.FromUnits(200),
				},
			}, nil
		},
	}

	svc := NewPricePeriodService(mockRepo, validator.NewPricePeriodValidator(cfg.Log), cfg)

	err := svc.Create(context.Background(), validPeriod())
	if err == nil {
		t.Fatal("expected overlap rejection, got nil")
	}
	if !apperrors.IsCode(err, apperrors.CodePeriodOverlap) {
		t.Errorf("expected code %s, got %v", apperrors.CodePeriodOverlap, err)
	}
}

func TestCreate_AllowsDisjointPeriod(t *testing.T) {
	cfg := testConfig()
	mockRepo := &mockPricePeriodRepository{}

	svc := NewPricePeriodService(mockRepo, validator.NewPricePeriodValidator(cfg.Log), cfg)

	period := validPeriod()
	if err := svc.Create(context.Background(), period); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if period.ID == "" {
		t.Error("expected period ID to be assigned")
	}
}

func TestCreate_NormalizesDatesToUTCMidnight(t *testing.T) {
	cfg := testConfig()

	var stored *model.RoomPricePeriod
	mockRepo := &mockPricePeriodRepository{
		createFunc: func(ctx context.Context, period *model.RoomPricePeriod) error {
			stored = period
			return nil
		},
	}

	svc := NewPricePeriodService(mockRepo, validator.NewPricePeriodValidator(cfg.Log), cfg)

	loc := time.FixedZone("EET", 2*60*60)
	period := &model.RoomPricePeriod{
		RoomType:  "Suite",
		StartDate: time.Date(2026, 3, 1, 14, 30, 0, 0, loc),
		EndDate:   time.Date(2026, 3, 8, 9, 0, 0, 0, loc),
		Price:     money.FromUnits(300),
	}

	if err := svc.Create(context.Background(), period); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected period to reach the repository")
	}
	if !stored.StartDate.Equal(dates.Day(2026, 3, 1)) {
		t.Errorf("start date not normalized: %v", stored.StartDate)
	}
	if !stored.EndDate.Equal(dates.Day(2026, 3, 8)) {
		t.Errorf("end date not normalized: %v", stored.EndDate)
	}
}

func TestCreate_RejectsInvertedDates(t *testing.T) {
	cfg := testConfig()
	svc := NewPricePeriodService(&mockPricePeriodRepository{}, validator.NewPricePeriodValidator(cfg.Log), cfg)

	period := validPeriod()
	period.StartDate, period.EndDate = period.EndDate, period.StartDate

	err := svc.Create(context.Background(), period)
	if err == nil {
		t.Fatal("expected validation error for inverted dates")
	}
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected code %s, got %v", apperrors.CodeValidation, err)
	}
}

// ────────────────────────────────────────────────
// Tests for Update()
// ────────────────────────────────────────────────

func TestUpdate_ExcludesSelfFromOverlapCheck(t *testing.T) {
	cfg := testConfig()

	existing := validPeriod()
	existing.ID = "650000000000000000000001"

	var gotExcludeID string
	mockRepo := &mockPricePeriodRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.RoomPricePeriod, error) {
			return existing, nil
		},
		findOverlappingFunc: func(ctx context.Context, roomType string, start, end time.Time, excludeID string) ([]*model.RoomPricePeriod, error) {
			gotExcludeID = excludeID
			return nil, nil
		},
	}

	svc := NewPricePeriodService(mockRepo, validator.NewPricePeriodValidator(cfg.Log), cfg)

	newPrice := money.FromUnits(175)
	err := svc.Update(context.Background(), existing.ID, &model.RoomPricePeriodUpdate{Price: &newPrice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotExcludeID != existing.ID {
		t.Errorf("expected overlap check to exclude %s, got %q", existing.ID, gotExcludeID)
	}
}
