package model

import "innkeep/pkg/money"

// Room is a catalog entry. Identity and type are immutable here; catalog
// administration lives outside the booking core, which only reads rooms.
type Room struct {
	ID                string       `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomType          string       `json:"room_type" bson:"room_type" validate:"required,min=2,max=100"`
	BasePricePerNight money.Amount `json:"base_price_per_night" bson:"base_price_per_night" validate:"required,gt=0"`
	Description       string       `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	PhotoURL          string       `json:"photo_url,omitempty" bson:"photo_url,omitempty" validate:"omitempty,url"`
}
