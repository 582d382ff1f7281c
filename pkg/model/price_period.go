package model

import (
	"time"

	"innkeep/pkg/money"
)

// RoomPricePeriod overrides the nightly rate for every room of a type over
// [StartDate, EndDate). Periods for the same room type must not overlap;
// the price period service rejects overlapping writes.
type RoomPricePeriod struct {
	ID          string       `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomType    string       `json:"room_type" bson:"room_type" validate:"required,min=2,max=100"`
	StartDate   time.Time    `json:"start_date" bson:"start_date" validate:"required"`
	EndDate     time.Time    `json:"end_date" bson:"end_date" validate:"required,gtfield=StartDate"`
	Price       money.Amount `json:"price" bson:"price" validate:"required,gt=0"`
	Description string       `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// RoomPricePeriodUpdate carries the mutable period fields for PATCH requests.
type RoomPricePeriodUpdate struct {
	RoomType    string        `json:"room_type,omitempty" validate:"omitempty,min=2,max=100"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	Price       *money.Amount `json:"price,omitempty" validate:"omitempty,gt=0"`
	Description string        `json:"description,omitempty" validate:"omitempty,max=500"`
}
