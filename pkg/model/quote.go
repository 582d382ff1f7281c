package model

import (
	"time"

	"innkeep/pkg/money"
)

// NightPrice is the charged rate for a single night of a stay.
type NightPrice struct {
	Night       time.Time    `json:"night"`
	Price       money.Amount `json:"price"`
	Description string       `json:"description,omitempty"`
}

// QuoteSegment groups consecutive nights charged at the same rate, for
// display in booking forms and printed confirmations.
type QuoteSegment struct {
	Description   string       `json:"description"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	Nights        int          `json:"nights"`
	PricePerNight money.Amount `json:"price_per_night"`
	Total         money.Amount `json:"total"`
}

// Quote is the computed price of a prospective stay, independent of commit.
// For package-context quotes TotalPrice is the flat package price and the
// per-night figures are informational only.
type Quote struct {
	RoomID           string         `json:"room_id"`
	CheckIn          time.Time      `json:"check_in"`
	CheckOut         time.Time      `json:"check_out"`
	Nights           int            `json:"nights"`
	TotalPrice       money.Amount   `json:"total_price"`
	AveragePerNight  money.Amount   `json:"average_per_night"`
	HolidayPackageID string         `json:"holiday_package_id,omitempty"`
	PackagePricing   bool           `json:"package_pricing"`
	PeriodPricing    bool           `json:"period_pricing"`
	PerNight         []NightPrice   `json:"per_night,omitempty"`
	Segments         []QuoteSegment `json:"segments,omitempty"`
}
