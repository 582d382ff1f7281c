package validator

import (
	"strings"
	"testing"
	"time"

	"innkeep/pkg/dates"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
)

func testValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewBookingValidator(log, 90)
}

func validBooking() *model.Booking {
	checkIn := dates.Normalize(time.Now().UTC().AddDate(0, 0, 14))
	return &model.Booking{
		RoomID:    "650000000000000000000010",
		CheckIn:   checkIn,
		CheckOut:  checkIn.AddDate(0, 0, 4),
		NumAdults: 2,
		GuestName: "Dana Peretz",
		Status:    model.BookingStatusConfirmed,
	}
}

func TestValidate_AcceptsValidBooking(t *testing.T) {
	if err := testValidator().Validate(validBooking(), model.GuestActor()); err != nil {
		t.Fatalf("expected valid booking, got %v", err)
	}
}

func TestValidate_RequiresRoomID(t *testing.T) {
	booking := validBooking()
	booking.RoomID = ""

	err := testValidator().Validate(booking, model.GuestActor())
	if err == nil || !strings.Contains(err.Error(), "RoomID") {
		t.Fatalf("expected RoomID error, got %v", err)
	}
}

func TestValidate_RejectsMalformedRoomID(t *testing.T) {
	booking := validBooking()
	booking.RoomID = "room-42"

	err := testValidator().Validate(booking, model.GuestActor())
	if err == nil || !strings.Contains(err.Error(), "ObjectID") {
		t.Fatalf("expected ObjectID format error, got %v", err)
	}
}

func TestValidate_RejectsBadPhone(t *testing.T) {
	booking := validBooking()
	booking.GuestPhone = "not a phone"

	err := testValidator().Validate(booking, model.GuestActor())
	if err == nil || !strings.Contains(err.Error(), "E.164") {
		t.Fatalf("expected E.164 error, got %v", err)
	}
}

func TestValidate_RejectsCheckOutBeforeCheckIn(t *testing.T) {
	booking := validBooking()
	booking.CheckOut = booking.CheckIn.AddDate(0, 0, -1)

	if err := testValidator().Validate(booking, model.GuestActor()); err == nil {
		t.Fatal("expected error for inverted date range")
	}
}

func TestValidate_RejectsZeroNightStay(t *testing.T) {
	booking := validBooking()
	booking.CheckOut = booking.CheckIn

	if err := testValidator().Validate(booking, model.GuestActor()); err == nil {
		t.Fatal("expected error for zero-night stay")
	}
}

func TestValidate_RejectsOverlongStay(t *testing.T) {
	booking := validBooking()
	booking.CheckOut = booking.CheckIn.AddDate(0, 0, 120)

	err := testValidator().Validate(booking, model.GuestActor())
	if err == nil || !strings.Contains(err.Error(), "maximum") {
		t.Fatalf("expected max stay error, got %v", err)
	}
}

func TestValidate_PastCheckInByActor(t *testing.T) {
	booking := validBooking()
	booking.CheckIn = dates.Normalize(time.Now().UTC().AddDate(0, 0, -3))
	booking.CheckOut = booking.CheckIn.AddDate(0, 0, 2)

	if err := testValidator().Validate(booking, model.GuestActor()); err == nil {
		t.Fatal("expected guest to be rejected for past check-in")
	}

	staff := model.Actor{Role: model.RoleStaff}
	if err := testValidator().Validate(booking, staff); err != nil {
		t.Fatalf("expected staff backfill to pass, got %v", err)
	}
}

func TestValidate_RejectsTooManyAdults(t *testing.T) {
	booking := validBooking()
	booking.NumAdults = 11

	err := testValidator().Validate(booking, model.GuestActor())
	if err == nil || !strings.Contains(err.Error(), "NumAdults") {
		t.Fatalf("expected NumAdults error, got %v", err)
	}
}
