// Package pricing computes stay quotes. A quote depends only on the room
// catalog, price period table and package registry, never on other
// bookings, so calculators need no locking and the same inputs always
// produce the same quote.
package pricing

import (
	"context"
	"errors"
	"time"

	pkgerrors "innkeep/internal/packages/errors"
	"innkeep/pkg/dates"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
	"innkeep/pkg/money"
)

// PeriodSource yields the price periods for a set of room types that
// intersect a stay interval, ordered by start date.
type PeriodSource interface {
	FindCovering(ctx context.Context, roomTypes []string, start, end time.Time) ([]*model.RoomPricePeriod, error)
}

// PackageLookup resolves a holiday package by id. Implementations return
// pkgerrors.ErrNotFound when no such package exists.
type PackageLookup interface {
	FindByID(ctx context.Context, id string) (*model.HolidayPackage, error)
}

const standardRateDescription = "Standard rate"

type Calculator struct {
	periods  PeriodSource
	packages PackageLookup
	log      *logger.Logger
}

func NewCalculator(periods PeriodSource, packages PackageLookup, log *logger.Logger) *Calculator {
	return &Calculator{
		periods:  periods,
		packages: packages,
		log:      log,
	}
}

// Quote prices the half-open stay [checkIn, checkOut) for a room.
//
// With a package context whose window contains the stay, the total is the
// package's flat price for the room's type regardless of night count, and
// the per-night figures are display-only averages. In every other case the
// total is accumulated night by night: a price period covering the night
// overrides the room's base rate for that night only.
func (c *Calculator) Quote(ctx context.Context, room *model.Room, checkIn, checkOut time.Time, contextPackageID string) (*model.Quote, error) {
	checkIn = dates.Normalize(checkIn)
	checkOut = dates.Normalize(checkOut)
	nights := dates.Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, apperrors.InvalidDateRange("check_out must be after check_in")
	}

	if contextPackageID != "" {
		pkg, err := c.lookupPackage(ctx, contextPackageID)
		if err != nil {
			return nil, err
		}
		if pkg.IsActive && dates.Within(checkIn, checkOut, pkg.StartDate, pkg.EndDate) {
			return c.packageQuote(room, pkg, checkIn, checkOut, nights)
		}
		// An inactive package, or a stay outside its window, prices as an
		// ordinary stay.
	}

	return c.nightlyQuote(ctx, room, checkIn, checkOut, nights)
}

func (c *Calculator) lookupPackage(ctx context.Context, id string) (*model.HolidayPackage, error) {
	pkg, err := c.packages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) || errors.Is(err, pkgerrors.ErrInvalidID) {
			return nil, apperrors.PackageNotAvailable(id)
		}
		return nil, apperrors.Internal("Failed to load holiday package", err)
	}
	return pkg, nil
}

func (c *Calculator) packageQuote(room *model.Room, pkg *model.HolidayPackage, checkIn, checkOut time.Time, nights int) (*model.Quote, error) {
	total, ok := pkg.PriceFor(room.RoomType)
	if !ok {
		return nil, apperrors.PackagePriceMissing(pkg.ID, room.RoomType)
	}

	average := total.DivRound(nights)
	perNight := make([]model.NightPrice, 0, nights)
	dates.EachNight(checkIn, checkOut, func(night time.Time) {
		perNight = append(perNight, model.NightPrice{
			Night:       night,
			Price:       average,
			Description: pkg.Name,
		})
	})

	return &model.Quote{
		RoomID:           room.ID,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Nights:           nights,
		TotalPrice:       total,
		AveragePerNight:  average,
		HolidayPackageID: pkg.ID,
		PackagePricing:   true,
		PerNight:         perNight,
		Segments: []model.QuoteSegment{
			{
				Description:   pkg.Name,
				StartDate:     checkIn,
				EndDate:       checkOut,
				Nights:        nights,
				PricePerNight: average,
				Total:         total,
			},
		},
	}, nil
}

func (c *Calculator) nightlyQuote(ctx context.Context, room *model.Room, checkIn, checkOut time.Time, nights int) (*model.Quote, error) {
	periods, err := c.periods.FindCovering(ctx, []string{room.RoomType}, checkIn, checkOut)
	if err != nil {
		return nil, apperrors.Internal("Failed to load price periods", err)
	}

	var total money.Amount
	periodPricing := false
	perNight := make([]model.NightPrice, 0, nights)
	dates.EachNight(checkIn, checkOut, func(night time.Time) {
		price := room.BasePricePerNight
		description := standardRateDescription
		if period := coveringPeriod(periods, night); period != nil {
			price = period.Price
			description = periodDescription(period)
			periodPricing = true
		}
		total += price
		perNight = append(perNight, model.NightPrice{
			Night:       night,
			Price:       price,
			Description: description,
		})
	})

	return &model.Quote{
		RoomID:          room.ID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Nights:          nights,
		TotalPrice:      total,
		AveragePerNight: total.DivRound(nights),
		PeriodPricing:   periodPricing,
		PerNight:        perNight,
		Segments:        buildSegments(perNight),
	}, nil
}

// Periods arrive sorted by start date and are non-overlapping per room
// type, so the first one covering the night wins.
func coveringPeriod(periods []*model.RoomPricePeriod, night time.Time) *model.RoomPricePeriod {
	for _, period := range periods {
		if dates.Covers(period.StartDate, period.EndDate, night) {
			return period
		}
	}
	return nil
}

func periodDescription(period *model.RoomPricePeriod) string {
	if period.Description != "" {
		return period.Description
	}
	return "Seasonal rate"
}

// buildSegments folds consecutive equally-priced nights into one row each,
// which is what booking forms render.
func buildSegments(perNight []model.NightPrice) []model.QuoteSegment {
	var segments []model.QuoteSegment
	for _, night := range perNight {
		last := len(segments) - 1
		if last >= 0 &&
			segments[last].PricePerNight == night.Price &&
			segments[last].Description == night.Description {
			segments[last].Nights++
			segments[last].EndDate = night.Night.AddDate(0, 0, 1)
			segments[last].Total += night.Price
			continue
		}
		segments = append(segments, model.QuoteSegment{
			Description:   night.Description,
			StartDate:     night.Night,
			EndDate:       night.Night.AddDate(0, 0, 1),
			Nights:        1,
			PricePerNight: night.Price,
			Total:         night.Price,
		})
	}
	return segments
}
