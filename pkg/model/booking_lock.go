package model

import "time"

// BookingLock is an advisory per-room lock held across the quote-and-insert
// window of booking creation. The _id is derived from the room, so a
// duplicate-key error on insert means another request holds the room.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	RoomID    string    `bson:"room_id" json:"room_id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
