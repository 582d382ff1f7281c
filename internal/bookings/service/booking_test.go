package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"innkeep/internal/availability"
	bookingserrors "innkeep/internal/bookings/errors"
	"innkeep/internal/bookings/validator"
	pkgerrors "innkeep/internal/packages/errors"
	"innkeep/internal/pricing"
	roomserrors "innkeep/internal/rooms/errors"
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
// In-memory fakes
// ────────────────────────────────────────────────

type memBookingRepository struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking
	nextID   int
}

func newMemBookingRepository() *memBookingRepository {
	return &memBookingRepository{bookings: make(map[string]*model.Booking)}
}

func (m *memBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	booking.ID = mustObjectID(m.nextID)
	booking.CreatedAt = time.Now().UTC()
	stored := *booking
	m.bookings[booking.ID] = &stored
	return nil
}

func (m *memBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memBookingRepository) FindByConfirmationCode(ctx context.Context, code string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ConfirmationCode == code {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *memBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Booking
	for _, b := range m.bookings {
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memBookingRepository) FindOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.RoomID == roomID && b.IsConfirmed() && dates.Overlaps(b.CheckIn, b.CheckOut, start, end) {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memBookingRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return bookingserrors.ErrNotFound
	}
	b.Status = status
	return nil
}

func (m *memBookingRepository) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.bookings)), nil
}

func (m *memBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type memLockRepository struct {
	mu         sync.Mutex
	held       map[string]bool
	alwaysHeld bool
	attempts   int
}

func newMemLockRepository() *memLockRepository {
	return &memLockRepository{held: make(map[string]bool)}
}

func (m *memLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if m.alwaysHeld || m.held[lock.ID] {
		return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	}
	m.held[lock.ID] = true
	return lock, nil
}

func (m *memLockRepository) Delete(ctx context.Context, lockID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, lockID)
	return nil
}

type stubRoomRepository struct {
	rooms map[string]*model.Room
}

func (s *stubRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	room, ok := s.rooms[id]
	if !ok {
		return nil, roomserrors.ErrNotFound
	}
	return room, nil
}

func (s *stubRoomRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Room, error) {
	var out []*model.Room
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubRoomRepository) FindByType(ctx context.Context, roomType string, limit int, offset int64) ([]*model.Room, error) {
	var out []*model.Room
	for _, r := range s.rooms {
		if r.RoomType == roomType {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRoomRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (s *stubRoomRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(s.rooms)), nil
}

func (s *stubRoomRepository) CountByType(ctx context.Context, roomType string) (int64, error) {
	return 0, nil
}

type stubPackageRepository struct {
	packages map[string]*model.HolidayPackage
}

func (s *stubPackageRepository) Create(ctx context.Context, pkg *model.HolidayPackage) error {
	return nil
}

func (s *stubPackageRepository) FindByID(ctx context.Context, id string) (*model.HolidayPackage, error) {
	pkg, ok := s.packages[id]
	if !ok {
		return nil, pkgerrors.ErrNotFound
	}
	return pkg, nil
}

func (s *stubPackageRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.HolidayPackage, error) {
	return nil, nil
}

func (s *stubPackageRepository) FindActiveOverlapping(ctx context.Context, start, end time.Time) ([]*model.HolidayPackage, error) {
	var out []*model.HolidayPackage
	for _, p := range s.packages {
		if p.IsActive && dates.Overlaps(p.StartDate, p.EndDate, start, end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPackageRepository) Update(ctx context.Context, id string, pkg *model.HolidayPackage) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (s *stubPackageRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (s *stubPackageRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

type stubPeriodSource struct{}

func (s *stubPeriodSource) FindCovering(ctx context.Context, roomTypes []string, start, end time.Time) ([]*model.RoomPricePeriod, error) {
	return nil, nil
}

// ────────────────────────────────────────────────
// Fixture
// ────────────────────────────────────────────────

const testRoomID = "650000000000000000000010"

type fixture struct {
	svc      BookingService
	bookings *memBookingRepository
	locks    *memLockRepository
}

func mustObjectID(n int) string {
	const hex = "0123456789abcdef"
	id := []byte("65ee00000000000000000000")
	for i := len(id) - 1; n > 0 && i >= 4; i-- {
		id[i] = hex[n%16]
		n /= 16
	}
	return string(id)
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return &config.Config{
		Log:                   log,
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          5 * time.Second,
		BookingLockTTL:        time.Second,
		BookingLockRetryDelay: time.Millisecond,
		MaxStayNights:         90,
	}
}

func newFixture(packages ...*model.HolidayPackage) *fixture {
	cfg := testConfig()

	bookings := newMemBookingRepository()
	locks := newMemLockRepository()
	rooms := &stubRoomRepository{rooms: map[string]*model.Room{
		testRoomID: {
			ID:                testRoomID,
			RoomType:          "Delux",
			BasePricePerNight: money.FromUnits(100),
		},
	}}
	pkgByID := make(map[string]*model.HolidayPackage, len(packages))
	for _, p := range packages {
		pkgByID[p.ID] = p
	}
	pkgRepo := &stubPackageRepository{packages: pkgByID}

	resolver := availability.NewResolver(bookings, pkgRepo, cfg.Log)
	calculator := pricing.NewCalculator(&stubPeriodSource{}, pkgRepo, cfg.Log)

	return &fixture{
		svc: NewBookingService(
			bookings,
			locks,
			rooms,
			pkgRepo,
			resolver,
			calculator,
			validator.NewBookingValidator(cfg.Log, cfg.MaxStayNights),
			nil,
			cfg,
		),
		bookings: bookings,
		locks:    locks,
	}
}

func futureBooking(nightsFromNow, stayNights int) *model.Booking {
	checkIn := dates.Normalize(time.Now().UTC()).AddDate(0, 0, nightsFromNow)
	return &model.Booking{
		RoomID:    testRoomID,
		CheckIn:   checkIn,
		CheckOut:  checkIn.AddDate(0, 0, stayNights),
		NumAdults: 2,
		GuestName: "Dana Peretz",
	}
}

// ────────────────────────────────────────────────
// Tests
// ────────────────────────────────────────────────

func TestCreate_Succeeds(t *testing.T) {
	f := newFixture()

	booking := futureBooking(30, 4)
	if err := f.svc.Create(context.Background(), booking, model.GuestActor()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.ID == "" {
		t.Error("expected booking ID to be assigned")
	}
	if len(booking.ConfirmationCode) != 10 {
		t.Errorf("expected 10-character confirmation code, got %q", booking.ConfirmationCode)
	}
	if booking.TotalPrice != money.FromUnits(400) {
		t.Errorf("expected total 400.00, got %s", booking.TotalPrice)
	}
	if booking.Status != model.BookingStatusConfirmed {
		t.Errorf("expected status confirmed, got %q", booking.Status)
	}
}

func TestCreate_RejectsDoubleBooking(t *testing.T) {
	f := newFixture()

	if err := f.svc.Create(context.Background(), futureBooking(30, 4), model.GuestActor()); err != nil {
		t.Fatalf("unexpected error on first booking: %v", err)
	}

	err := f.svc.Create(context.Background(), futureBooking(32, 4), model.GuestActor())
	if err == nil {
		t.Fatal("expected second overlapping booking to fail")
	}
	if !apperrors.IsCode(err, apperrors.CodeRoomNotAvailable) {
		t.Errorf("expected code %s, got %v", apperrors.CodeRoomNotAvailable, err)
	}
}

func TestCancel_RestoresAvailability(t *testing.T) {
	f := newFixture()

	first := futureBooking(30, 4)
	if err := f.svc.Create(context.Background(), first, model.GuestActor()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := futureBooking(30, 4)
	if err := f.svc.Create(context.Background(), second, model.GuestActor()); err == nil {
		t.Fatal("expected overlapping booking to fail before cancellation")
	}

	if err := f.svc.Cancel(context.Background(), first.ID); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}

	if err := f.svc.Create(context.Background(), second, model.GuestActor()); err != nil {
		t.Fatalf("expected freed interval to be bookable, got: %v", err)
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	f := newFixture()

	booking := futureBooking(30, 4)
	if err := f.svc.Create(context.Background(), booking, model.GuestActor()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.svc.Cancel(context.Background(), booking.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := f.svc.Cancel(context.Background(), booking.ID)
	if err == nil {
		t.Fatal("expected error cancelling twice")
	}
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Errorf("expected code %s, got %v", apperrors.CodeConflict, err)
	}
}

func TestCreate_SurfacesLockContention(t *testing.T) {
	f := newFixture()
	f.locks.alwaysHeld = true

	err := f.svc.Create(context.Background(), futureBooking(30, 4), model.GuestActor())
	if err == nil {
		t.Fatal("expected lock contention to fail the booking")
	}
	if !apperrors.IsCode(err, apperrors.CodeBookingConflict) {
		t.Errorf("expected code %s, got %v", apperrors.CodeBookingConflict, err)
	}
	if f.locks.attempts != 2 {
		t.Errorf("expected one retry (2 attempts), got %d", f.locks.attempts)
	}
}

func TestCreate_LockReleasedAfterCommit(t *testing.T) {
	f := newFixture()

	if err := f.svc.Create(context.Background(), futureBooking(30, 4), model.GuestActor()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.locks.held) != 0 {
		t.Errorf("expected lock to be released, still held: %v", f.locks.held)
	}
}

func TestCreate_PastCheckInRequiresStaff(t *testing.T) {
	f := newFixture()

	walkIn := futureBooking(-2, 3)

	err := f.svc.Create(context.Background(), walkIn, model.GuestActor())
	if err == nil {
		t.Fatal("expected guest backfill to be rejected")
	}
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected code %s, got %v", apperrors.CodeValidation, err)
	}

	if err := f.svc.Create(context.Background(), walkIn, model.Actor{Role: model.RoleStaff}); err != nil {
		t.Fatalf("expected staff backfill to succeed, got: %v", err)
	}
}

func TestCreate_RejectsOverlongStay(t *testing.T) {
	f := newFixture()

	err := f.svc.Create(context.Background(), futureBooking(10, 120), model.GuestActor())
	if err == nil {
		t.Fatal("expected overlong stay to be rejected")
	}
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected code %s, got %v", apperrors.CodeValidation, err)
	}
}

func TestCreate_UnknownRoom(t *testing.T) {
	f := newFixture()

	booking := futureBooking(30, 4)
	booking.RoomID = "650000000000000000000099"

	err := f.svc.Create(context.Background(), booking, model.GuestActor())
	if err == nil {
		t.Fatal("expected unknown room to fail")
	}
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected code %s, got %v", apperrors.CodeNotFound, err)
	}
}

func TestCreate_InactivePackageRejected(t *testing.T) {
	checkIn := dates.Normalize(time.Now().UTC()).AddDate(0, 0, 30)
	pkg := &model.HolidayPackage{
		ID:        "650000000000000000000030",
		Name:      "Winter Week",
		StartDate: checkIn,
		EndDate:   checkIn.AddDate(0, 0, 7),
		RoomTypePrices: map[string]money.Amount{
			"Delux": money.FromUnits(900),
		},
		IsActive: false,
	}
	f := newFixture(pkg)

	booking := futureBooking(30, 7)
	booking.HolidayPackageID = pkg.ID

	err := f.svc.Create(context.Background(), booking, model.GuestActor())
	if err == nil {
		t.Fatal("expected inactive package booking to fail")
	}
	if !apperrors.IsCode(err, apperrors.CodePackageNotAvailable) {
		t.Errorf("expected code %s, got %v", apperrors.CodePackageNotAvailable, err)
	}
}

func TestCreate_ExclusivePackageWindow(t *testing.T) {
	checkIn := dates.Normalize(time.Now().UTC()).AddDate(0, 0, 30)
	pkg := &model.HolidayPackage{
		ID:        "650000000000000000000030",
		Name:      "Winter Week",
		StartDate: checkIn,
		EndDate:   checkIn.AddDate(0, 0, 7),
		RoomTypePrices: map[string]money.Amount{
			"Delux": money.FromUnits(900),
		},
		IsActive:             true,
		AllowPartialBookings: false,
	}
	f := newFixture(pkg)

	// An ordinary booking inside the exclusive window is blocked.
	inside := futureBooking(32, 2)
	err := f.svc.Create(context.Background(), inside, model.GuestActor())
	if err == nil {
		t.Fatal("expected exclusive package window to block ordinary booking")
	}
	if !apperrors.IsCode(err, apperrors.CodeRoomNotAvailable) {
		t.Errorf("expected code %s, got %v", apperrors.CodeRoomNotAvailable, err)
	}

	// The exact-window package booking succeeds at the flat package price.
	packageStay := futureBooking(30, 7)
	packageStay.HolidayPackageID = pkg.ID
	if err := f.svc.Create(context.Background(), packageStay, model.GuestActor()); err != nil {
		t.Fatalf("expected package booking to succeed, got: %v", err)
	}
	if packageStay.TotalPrice != money.FromUnits(900) {
		t.Errorf("expected flat package price 900.00, got %s", packageStay.TotalPrice)
	}
}

func TestCreate_PartialPackageDoesNotBlock(t *testing.T) {
	checkIn := dates.Normalize(time.Now().UTC()).AddDate(0, 0, 30)
	pkg := &model.HolidayPackage{
		ID:        "650000000000000000000031",
		Name:      "Spring Overlay",
		StartDate: checkIn,
		EndDate:   checkIn.AddDate(0, 0, 7),
		RoomTypePrices: map[string]money.Amount{
			"Delux": money.FromUnits(700),
		},
		IsActive:             true,
		AllowPartialBookings: true,
	}
	f := newFixture(pkg)

	booking := futureBooking(32, 2)
	if err := f.svc.Create(context.Background(), booking, model.GuestActor()); err != nil {
		t.Fatalf("expected partial-booking package to leave nights bookable, got: %v", err)
	}
	// Nightly pricing applies to the non-package stay.
	if booking.TotalPrice != money.FromUnits(200) {
		t.Errorf("expected nightly total 200.00, got %s", booking.TotalPrice)
	}
}

func TestGetByConfirmationCode(t *testing.T) {
	f := newFixture()

	booking := futureBooking(30, 4)
	if err := f.svc.Create(context.Background(), booking, model.GuestActor()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := f.svc.GetByConfirmationCode(context.Background(), booking.ConfirmationCode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != booking.ID {
		t.Errorf("expected booking %s, got %s", booking.ID, found.ID)
	}

	if _, err := f.svc.GetByConfirmationCode(context.Background(), "NOSUCHCODE"); err == nil {
		t.Error("expected unknown confirmation code to fail")
	}
}

func TestSearchAvailableRooms_ExcludesBookedRoom(t *testing.T) {
	f := newFixture()

	booking := futureBooking(30, 4)
	if err := f.svc.Create(context.Background(), booking, model.GuestActor()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	available, err := f.svc.SearchAvailableRooms(context.Background(), booking.CheckIn, booking.CheckOut, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(available) != 0 {
		t.Errorf("expected no available rooms, got %d", len(available))
	}

	// Outside the booked interval the room is free again.
	available, err = f.svc.SearchAvailableRooms(context.Background(), booking.CheckOut, booking.CheckOut.AddDate(0, 0, 2), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(available) != 1 {
		t.Errorf("expected 1 available room, got %d", len(available))
	}
}
