package contracts

import (
	"time"

	"innkeep/pkg/money"
)

// Kafka topics for booking lifecycle events. Messages are keyed by room id
// so events for one room stay ordered.
const (
	TopicBookingEvents    = "innkeep.booking-events"
	TopicBookingEventsDLQ = "innkeep.booking-events.dlq"
)

// Event types carried in the event-type message header.
const (
	EventTypeBookingCreated   = "booking.created"
	EventTypeBookingCancelled = "booking.cancelled"
)

// BookingEvent is the payload for booking.created and booking.cancelled.
type BookingEvent struct {
	BookingID        string       `json:"booking_id"`
	RoomID           string       `json:"room_id"`
	GuestName        string       `json:"guest_name"`
	GuestPhone       string       `json:"guest_phone,omitempty"`
	CheckIn          time.Time    `json:"check_in"`
	CheckOut         time.Time    `json:"check_out"`
	TotalPrice       money.Amount `json:"total_price"`
	ConfirmationCode string       `json:"confirmation_code"`
	HolidayPackageID string       `json:"holiday_package_id,omitempty"`
	OccurredAt       time.Time    `json:"occurred_at"`
}
