package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"innkeep/internal/availability"
	bookingserrors "innkeep/internal/bookings/errors"
	"innkeep/internal/bookings/repository"
	"innkeep/internal/bookings/validator"
	pkgerrors "innkeep/internal/packages/errors"
	packagesrepo "innkeep/internal/packages/repository"
	"innkeep/internal/pricing"
	roomserrors "innkeep/internal/rooms/errors"
	roomsrepo "innkeep/internal/rooms/repository"
	"innkeep/pkg/config"
	"innkeep/pkg/contracts"
	"innkeep/pkg/dates"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/kafka"
	"innkeep/pkg/model"
	"innkeep/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking, actor model.Actor) error
	Cancel(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByConfirmationCode(ctx context.Context, code string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	CheckAvailability(ctx context.Context, roomID string, checkIn, checkOut time.Time, packageID string) (bool, error)
	SearchAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomType, packageID string) ([]*model.Room, error)
	QuotePrice(ctx context.Context, roomID string, checkIn, checkOut time.Time, packageID string) (*model.Quote, error)
}

type bookingService struct {
	repo       repository.BookingRepository
	lockRepo   repository.BookingLockRepository
	rooms      roomsrepo.RoomRepository
	packages   packagesrepo.HolidayPackageRepository
	resolver   *availability.Resolver
	calculator *pricing.Calculator
	validator  *validator.BookingValidator
	producer   *kafka.Producer
	cfg        *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	rooms roomsrepo.RoomRepository,
	packages packagesrepo.HolidayPackageRepository,
	resolver *availability.Resolver,
	calculator *pricing.Calculator,
	validator *validator.BookingValidator,
	producer *kafka.Producer,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		lockRepo:   lockRepo,
		rooms:      rooms,
		packages:   packages,
		resolver:   resolver,
		calculator: calculator,
		validator:  validator,
		producer:   producer,
		cfg:        cfg,
	}
}

// Create commits a booking. The availability check runs twice: once before
// taking the room lock to fail cheap, and again inside the transaction so a
// stale first answer cannot produce a double booking. The price is fixed by
// the calculator at commit time.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking, actor model.Actor) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking, actor); err != nil {
		return err
	}

	room, err := s.lookupRoom(ctx, booking.RoomID)
	if err != nil {
		return err
	}

	if booking.HolidayPackageID != "" {
		if err := s.verifyPackageBookable(ctx, booking.HolidayPackageID); err != nil {
			return err
		}
	}

	available, err := s.resolver.IsAvailable(ctx, room, booking.CheckIn, booking.CheckOut, booking.HolidayPackageID)
	if err != nil {
		return err
	}
	if !available {
		return apperrors.RoomNotAvailable(room.ID, "requested dates are not available")
	}

	quote, err := s.calculator.Quote(ctx, room, booking.CheckIn, booking.CheckOut, booking.HolidayPackageID)
	if err != nil {
		return err
	}
	booking.TotalPrice = quote.TotalPrice
	booking.ConfirmationCode, err = generateConfirmationCode()
	if err != nil {
		return apperrors.Internal("Failed to generate confirmation code", err)
	}

	lockID, err := s.acquireRoomLock(ctx, room.ID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseRoomLock(context.WithoutCancel(ctx), lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		ok, err := s.resolver.IsAvailable(sessCtx, room, booking.CheckIn, booking.CheckOut, booking.HolidayPackageID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.RoomNotAvailable(room.ID, "room was booked by a concurrent request")
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "room_id", room.ID, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"check_in", booking.CheckIn,
		"check_out", booking.CheckOut,
		"total_price", booking.TotalPrice,
		"confirmation_code", booking.ConfirmationCode,
	)
	s.publishEvent(ctx, contracts.EventTypeBookingCreated, booking)
	return nil
}

// Cancel flips the booking to cancelled. The freed interval is visible to
// the next availability check immediately, since checks only count
// confirmed bookings.
func (s *bookingService) Cancel(ctx context.Context, id string) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !booking.IsConfirmed() {
		return apperrors.Conflict("Booking is already cancelled")
	}

	if err := s.repo.UpdateStatus(ctx, id, model.BookingStatusCancelled); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return apperrors.Internal("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking cancelled successfully",
		"id", id,
		"room_id", booking.RoomID,
		"check_in", booking.CheckIn,
		"check_out", booking.CheckOut,
	)
	booking.Status = model.BookingStatusCancelled
	s.publishEvent(ctx, contracts.EventTypeBookingCancelled, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetByConfirmationCode(ctx context.Context, code string) (*model.Booking, error) {
	code = sanitizer.TrimAndNormalize(code)
	if code == "" {
		return nil, apperrors.InvalidInput("Confirmation code cannot be empty")
	}

	booking, err := s.repo.FindByConfirmationCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Booking")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, roomID string, checkIn, checkOut time.Time, packageID string) (bool, error) {
	room, err := s.lookupRoom(ctx, roomID)
	if err != nil {
		return false, err
	}
	return s.resolver.IsAvailable(ctx, room, checkIn, checkOut, packageID)
}

func (s *bookingService) SearchAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomType, packageID string) ([]*model.Room, error) {
	checkIn = dates.Normalize(checkIn)
	checkOut = dates.Normalize(checkOut)
	if !checkOut.After(checkIn) {
		return nil, apperrors.InvalidDateRange("check_out must be after check_in")
	}

	var rooms []*model.Room
	var err error
	if roomType != "" {
		rooms, err = s.rooms.FindByType(ctx, sanitizer.NormalizeRoomType(roomType), config.DefaultPaginationLimit, 0)
	} else {
		rooms, err = s.rooms.FindAll(ctx, config.DefaultPaginationLimit, 0)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to load rooms for availability search", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}

	available, err := s.resolver.FilterAvailable(ctx, rooms, checkIn, checkOut, packageID)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Debug("Availability search completed",
		"check_in", checkIn,
		"check_out", checkOut,
		"room_type", roomType,
		"candidates", len(rooms),
		"available", len(available),
	)
	return available, nil
}

func (s *bookingService) QuotePrice(ctx context.Context, roomID string, checkIn, checkOut time.Time, packageID string) (*model.Quote, error) {
	room, err := s.lookupRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return s.calculator.Quote(ctx, room, checkIn, checkOut, packageID)
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.BookingStatusConfirmed
	}
	if b.NumAdults <= 0 {
		b.NumAdults = 1
	}
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.GuestName = sanitizer.NormalizeGuestName(b.GuestName)
	b.GuestPhone = sanitizer.NormalizePhone(b.GuestPhone)
	b.CheckIn = dates.Normalize(b.CheckIn)
	b.CheckOut = dates.Normalize(b.CheckOut)
}

func (s *bookingService) validate(booking *model.Booking, actor model.Actor) error {
	if err := s.validator.Validate(booking, actor); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) lookupRoom(ctx context.Context, roomID string) (*model.Room, error) {
	if roomID == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", roomID)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}

	return room, nil
}

// verifyPackageBookable rejects bookings naming a package that has vanished
// or been deactivated since the caller's quote.
func (s *bookingService) verifyPackageBookable(ctx context.Context, packageID string) error {
	pkg, err := s.packages.FindByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) || errors.Is(err, pkgerrors.ErrInvalidID) {
			return apperrors.PackageNotAvailable(packageID)
		}
		return apperrors.Internal("Failed to retrieve holiday package", err)
	}
	if !pkg.IsActive {
		return apperrors.PackageNotAvailable(packageID)
	}
	return nil
}

// acquireRoomLock takes the advisory per-room lock. On contention it waits
// once for the configured retry delay, then surfaces the conflict to the
// caller rather than queueing.
func (s *bookingService) acquireRoomLock(ctx context.Context, roomID string) (string, error) {
	lockID := fmt.Sprintf("room_lock_%s", roomID)

	for attempt := 0; ; attempt++ {
		lock := &model.BookingLock{
			ID:        lockID,
			RoomID:    roomID,
			ExpiresAt: time.Now().UTC().Add(s.cfg.BookingLockTTL),
		}

		_, err := s.lockRepo.Create(ctx, lock)
		if err == nil {
			return lockID, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Internal("Failed to acquire booking lock", err)
		}
		if attempt >= 1 {
			return "", apperrors.BookingConflict(roomID)
		}

		select {
		case <-ctx.Done():
			return "", apperrors.Internal("Booking cancelled while waiting for room lock", ctx.Err())
		case <-time.After(s.cfg.BookingLockRetryDelay):
		}
	}
}

func (s *bookingService) releaseRoomLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.producer == nil {
		return
	}

	event := contracts.BookingEvent{
		BookingID:        booking.ID,
		RoomID:           booking.RoomID,
		GuestName:        booking.GuestName,
		GuestPhone:       booking.GuestPhone,
		CheckIn:          booking.CheckIn,
		CheckOut:         booking.CheckOut,
		TotalPrice:       booking.TotalPrice,
		ConfirmationCode: booking.ConfirmationCode,
		HolidayPackageID: booking.HolidayPackageID,
		OccurredAt:       time.Now().UTC(),
	}

	msg := kafka.NewMessage().
		WithKey(booking.RoomID).
		WithValue(event).
		WithEventType(eventType).
		WithSource("bookings").
		Build()

	if err := s.producer.Publish(ctx, msg); err != nil {
		// Booking state is already committed; the event stream is
		// best-effort and the DLQ catches what Kafka rejects.
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

const confirmationCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateConfirmationCode returns a 10-character code guests quote at the
// desk. The alphabet drops lookalike characters (0/O, 1/I).
func generateConfirmationCode() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = confirmationCodeAlphabet[int(b)%len(confirmationCodeAlphabet)]
	}
	return string(buf), nil
}
