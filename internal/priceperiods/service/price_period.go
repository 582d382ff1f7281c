package service

import (
	"context"
	"errors"
	"sync"

	pperrors "innkeep/internal/priceperiods/errors"
	"innkeep/internal/priceperiods/repository"
	"innkeep/internal/priceperiods/validator"
	"innkeep/pkg/config"
	"innkeep/pkg/dates"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/model"
	"innkeep/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type PricePeriodService interface {
	Create(ctx context.Context, period *model.RoomPricePeriod) error
	GetByID(ctx context.Context, id string) (*model.RoomPricePeriod, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.RoomPricePeriod, int64, error)
	GetByRoomType(ctx context.Context, roomType string, limit int, offset int64) ([]*model.RoomPricePeriod, int64, error)
	Update(ctx context.Context, id string, updates *model.RoomPricePeriodUpdate) error
	Delete(ctx context.Context, id string) error
}

type pricePeriodService struct {
	repo      repository.PricePeriodRepository
	validator *validator.PricePeriodValidator
	cfg       *config.Config
}

func NewPricePeriodService(
	repo repository.PricePeriodRepository,
	validator *validator.PricePeriodValidator,
	cfg *config.Config,
) PricePeriodService {
	return &pricePeriodService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// Create stores a new override. Overlapping periods for the same room type
// are rejected inside a transaction so the table stays unambiguous: every
// night resolves to at most one override.
func (s *pricePeriodService) Create(ctx context.Context, period *model.RoomPricePeriod) error {
	s.sanitize(period)
	if err := s.validate(period); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, period); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, period); err != nil {
			return apperrors.Internal("Failed to create price period", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create price period", "room_type", period.RoomType, "error", err)
		return err
	}

	s.cfg.Log.Info("Price period created successfully",
		"id", period.ID,
		"room_type", period.RoomType,
		"start_date", period.StartDate,
		"end_date", period.EndDate,
	)
	return nil
}

func (s *pricePeriodService) GetByID(ctx context.Context, id string) (*model.RoomPricePeriod, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Price period ID cannot be empty")
	}

	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pperrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Price period", id)
		}
		if errors.Is(err, pperrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid price period ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve price period", err)
	}

	return period, nil
}

func (s *pricePeriodService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.RoomPricePeriod, int64, error) {
	var count int64
	var periods []*model.RoomPricePeriod
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count price periods", "error", errCount)
			errCount = apperrors.Internal("Failed to count price periods", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		periods, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list price periods", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve price periods", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return periods, count, nil
}

func (s *pricePeriodService) GetByRoomType(ctx context.Context, roomType string, limit int, offset int64) ([]*model.RoomPricePeriod, int64, error) {
	roomType = sanitizer.NormalizeRoomType(roomType)
	if roomType == "" {
		return nil, 0, apperrors.InvalidInput("Room type cannot be empty")
	}

	var count int64
	var periods []*model.RoomPricePeriod
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByRoomType(ctx, roomType)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count price periods by room type", "room_type", roomType, "error", errCount)
			errCount = apperrors.Internal("Failed to count price periods", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		periods, errFind = s.repo.FindByRoomType(ctx, roomType, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list price periods by room type", "room_type", roomType, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve price periods", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return periods, count, nil
}

func (s *pricePeriodService) Update(ctx context.Context, id string, updates *model.RoomPricePeriodUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Price period ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pperrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Price period", id)
		}
		if errors.Is(err, pperrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid price period ID format")
		}
		return apperrors.Internal("Failed to check price period existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Price period update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, merged); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update price period", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update price period", "id", id, "error", err)
		return err
	}

	s.cfg.Log.Info("Price period updated successfully", "id", id)
	return nil
}

func (s *pricePeriodService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Price period ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pperrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Price period", id)
		}
		if errors.Is(err, pperrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid price period ID format")
		}
		return apperrors.Internal("Failed to delete price period", err)
	}

	s.cfg.Log.Info("Price period deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *pricePeriodService) sanitize(p *model.RoomPricePeriod) {
	p.RoomType = sanitizer.NormalizeRoomType(p.RoomType)
	p.Description = sanitizer.NormalizeDescription(p.Description)
	p.StartDate = dates.Normalize(p.StartDate)
	p.EndDate = dates.Normalize(p.EndDate)
}

func (s *pricePeriodService) mergeUpdates(existing *model.RoomPricePeriod, updates *model.RoomPricePeriodUpdate) *model.RoomPricePeriod {
	merged := *existing

	if updates.RoomType != "" {
		merged.RoomType = updates.RoomType
	}
	if updates.StartDate != nil {
		merged.StartDate = *updates.StartDate
	}
	if updates.EndDate != nil {
		merged.EndDate = *updates.EndDate
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}

	return &merged
}

func (s *pricePeriodService) validate(period *model.RoomPricePeriod) error {
	if err := s.validator.Validate(period); err != nil {
		s.cfg.Log.Warn("Price period validation failed", "error", err)
		return apperrors.Validation("Price period validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *pricePeriodService) verifyNoOverlap(ctx context.Context, period *model.RoomPricePeriod) error {
	existing, err := s.repo.FindOverlapping(ctx, period.RoomType, period.StartDate, period.EndDate, period.ID)
	if err != nil {
		return apperrors.Internal("Failed to check existing price periods", err)
	}

	if len(existing) > 0 {
		return apperrors.PeriodOverlap(period.RoomType)
	}
	return nil
}
