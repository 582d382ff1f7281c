package service

import (
	"context"
	"errors"
	"sync"
	"time"

	pkgerrors "innkeep/internal/packages/errors"
	"innkeep/internal/packages/repository"
	"innkeep/internal/packages/validator"
	"innkeep/pkg/config"
	"innkeep/pkg/dates"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/model"
	"innkeep/pkg/money"
	"innkeep/pkg/sanitizer"
)

type HolidayPackageService interface {
	Create(ctx context.Context, pkg *model.HolidayPackage) error
	GetByID(ctx context.Context, id string) (*model.HolidayPackage, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.HolidayPackage, int64, error)
	GetActive(ctx context.Context, checkIn, checkOut time.Time) ([]*model.HolidayPackage, error)
	Update(ctx context.Context, id string, updates *model.HolidayPackageUpdate) error
	Delete(ctx context.Context, id string) error
}

type holidayPackageService struct {
	repo      repository.HolidayPackageRepository
	validator *validator.HolidayPackageValidator
	cfg       *config.Config
}

func NewHolidayPackageService(
	repo repository.HolidayPackageRepository,
	validator *validator.HolidayPackageValidator,
	cfg *config.Config,
) HolidayPackageService {
	return &holidayPackageService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *holidayPackageService) Create(ctx context.Context, pkg *model.HolidayPackage) error {
	s.sanitize(pkg)
	if err := s.validate(pkg); err != nil {
		return err
	}

	pkg.CreatedAt = time.Now().UTC()
	if err := s.repo.Create(ctx, pkg); err != nil {
		s.cfg.Log.Error("Failed to create holiday package", "name", pkg.Name, "error", err)
		return apperrors.Internal("Failed to create holiday package", err)
	}

	s.cfg.Log.Info("Holiday package created successfully",
		"id", pkg.ID,
		"name", pkg.Name,
		"start_date", pkg.StartDate,
		"end_date", pkg.EndDate,
		"allow_partial", pkg.AllowPartialBookings,
	)
	return nil
}

func (s *holidayPackageService) GetByID(ctx context.Context, id string) (*model.HolidayPackage, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Package ID cannot be empty")
	}

	pkg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Holiday package", id)
		}
		if errors.Is(err, pkgerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid package ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve holiday package", err)
	}

	return pkg, nil
}

func (s *holidayPackageService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.HolidayPackage, int64, error) {
	var count int64
	var packages []*model.HolidayPackage
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count holiday packages", "error", errCount)
			errCount = apperrors.Internal("Failed to count holiday packages", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		packages, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list holiday packages", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve holiday packages", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return packages, count, nil
}

// GetActive returns the active packages whose window intersects the given
// stay. Callers pass a half-open [checkIn, checkOut) range.
func (s *holidayPackageService) GetActive(ctx context.Context, checkIn, checkOut time.Time) ([]*model.HolidayPackage, error) {
	checkIn = dates.Normalize(checkIn)
	checkOut = dates.Normalize(checkOut)
	if !checkOut.After(checkIn) {
		return nil, apperrors.InvalidDateRange("check_out must be after check_in")
	}

	packages, err := s.repo.FindActiveOverlapping(ctx, checkIn, checkOut)
	if err != nil {
		s.cfg.Log.Error("Failed to find active holiday packages",
			"check_in", checkIn,
			"check_out", checkOut,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve active holiday packages", err)
	}

	return packages, nil
}

func (s *holidayPackageService) Update(ctx context.Context, id string, updates *model.HolidayPackageUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Package ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Holiday package", id)
		}
		if errors.Is(err, pkgerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid package ID format")
		}
		return apperrors.Internal("Failed to check holiday package existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Holiday package update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update holiday package", "id", id, "error", err)
		return apperrors.Internal("Failed to update holiday package", err)
	}

	s.cfg.Log.Info("Holiday package updated successfully", "id", id)
	return nil
}

func (s *holidayPackageService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Package ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Holiday package", id)
		}
		if errors.Is(err, pkgerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid package ID format")
		}
		return apperrors.Internal("Failed to delete holiday package", err)
	}

	s.cfg.Log.Info("Holiday package deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *holidayPackageService) sanitize(pkg *model.HolidayPackage) {
	pkg.Name = sanitizer.TrimAndNormalize(pkg.Name)
	pkg.Description = sanitizer.NormalizeDescription(pkg.Description)
	pkg.StartDate = dates.Normalize(pkg.StartDate)
	pkg.EndDate = dates.Normalize(pkg.EndDate)

	// Price lookups key on the normalized room type, so the stored map must
	// use the same form.
	if len(pkg.RoomTypePrices) > 0 {
		normalized := make(map[string]money.Amount, len(pkg.RoomTypePrices))
		for roomType, price := range pkg.RoomTypePrices {
			normalized[sanitizer.NormalizeRoomType(roomType)] = price
		}
		pkg.RoomTypePrices = normalized
	}
}

func (s *holidayPackageService) mergeUpdates(existing *model.HolidayPackage, updates *model.HolidayPackageUpdate) *model.HolidayPackage {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.StartDate != nil {
		merged.StartDate = *updates.StartDate
	}
	if updates.EndDate != nil {
		merged.EndDate = *updates.EndDate
	}
	if updates.RoomTypePrices != nil {
		merged.RoomTypePrices = *updates.RoomTypePrices
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	if updates.AllowPartialBookings != nil {
		merged.AllowPartialBookings = *updates.AllowPartialBookings
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}

	return &merged
}

func (s *holidayPackageService) validate(pkg *model.HolidayPackage) error {
	if err := s.validator.Validate(pkg); err != nil {
		s.cfg.Log.Warn("Holiday package validation failed", "error", err)
		return apperrors.Validation("Holiday package validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
