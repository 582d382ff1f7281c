package model

import (
	"time"

	"innkeep/pkg/money"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking occupies a room for the half-open stay interval
// [CheckIn, CheckOut). Only confirmed bookings hold the interval;
// cancellation flips Status and immediately frees the dates.
type Booking struct {
	ID               string       `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomID           string       `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	CheckIn          time.Time    `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut         time.Time    `json:"check_out" bson:"check_out" validate:"required,gtfield=CheckIn"`
	NumAdults        int          `json:"num_adults" bson:"num_adults" validate:"required,min=1,max=10"`
	NumChildren      int          `json:"num_children" bson:"num_children" validate:"min=0,max=10"`
	GuestName        string       `json:"guest_name" bson:"guest_name" validate:"required,min=2,max=100"`
	GuestPhone       string       `json:"guest_phone,omitempty" bson:"guest_phone,omitempty" validate:"omitempty,e164"`
	HolidayPackageID string       `json:"holiday_package_id,omitempty" bson:"holiday_package_id,omitempty" validate:"omitempty,mongodb"`
	TotalPrice       money.Amount `json:"total_price" bson:"total_price" validate:"omitempty,gte=0"`
	ConfirmationCode string       `json:"confirmation_code,omitempty" bson:"confirmation_code,omitempty"`
	Status           string       `json:"status" bson:"status" validate:"required,oneof=confirmed cancelled"`
	CreatedAt        time.Time    `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Guests is the total party size.
func (b *Booking) Guests() int {
	return b.NumAdults + b.NumChildren
}

// IsConfirmed reports whether the booking currently holds its interval.
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}
