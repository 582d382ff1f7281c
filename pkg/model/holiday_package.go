package model

import (
	"time"

	"innkeep/pkg/money"
)

// HolidayPackage is a fixed-window, fixed-price offer for one or more room
// types. The per-type price is a flat total for the whole window, not a
// nightly rate. A package with AllowPartialBookings=false reserves its
// entire window exclusively for package guests.
type HolidayPackage struct {
	ID                   string                  `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name                 string                  `json:"name" bson:"name" validate:"required,min=2,max=100"`
	StartDate            time.Time               `json:"start_date" bson:"start_date" validate:"required"`
	EndDate              time.Time               `json:"end_date" bson:"end_date" validate:"required,gtfield=StartDate"`
	RoomTypePrices       map[string]money.Amount `json:"room_type_prices" bson:"room_type_prices" validate:"required,room_type_prices"`
	IsActive             bool                    `json:"is_active" bson:"is_active"`
	AllowPartialBookings bool                    `json:"allow_partial_bookings" bson:"allow_partial_bookings"`
	Description          string                  `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	CreatedAt            time.Time               `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// PriceFor returns the flat package price for a room type, if the type is
// packageable at all.
func (p *HolidayPackage) PriceFor(roomType string) (money.Amount, bool) {
	price, ok := p.RoomTypePrices[roomType]
	return price, ok
}

// HolidayPackageUpdate carries the mutable package fields for PATCH
// requests. Window fields are included: the administrative surface may move
// a window, the booking core treats whatever is stored as authoritative.
type HolidayPackageUpdate struct {
	Name                 string                   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	StartDate            *time.Time               `json:"start_date,omitempty"`
	EndDate              *time.Time               `json:"end_date,omitempty"`
	RoomTypePrices       *map[string]money.Amount `json:"room_type_prices,omitempty" validate:"omitempty,room_type_prices"`
	IsActive             *bool                    `json:"is_active,omitempty"`
	AllowPartialBookings *bool                    `json:"allow_partial_bookings,omitempty"`
	Description          string                   `json:"description,omitempty" validate:"omitempty,max=500"`
}
