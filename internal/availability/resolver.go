// Package availability decides whether a room can be booked for a stay.
// Decisions are advisory: callers that commit a booking must re-check
// inside the booking transaction, since a check can go stale between
// read and write.
package availability

import (
	"context"
	"time"

	"innkeep/pkg/dates"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
)

// BookingSource yields the confirmed bookings that intersect a stay
// interval for one room. Cancelled bookings must not be returned.
type BookingSource interface {
	FindOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]*model.Booking, error)
}

// PackageSource yields the active holiday packages whose window intersects
// a stay interval.
type PackageSource interface {
	FindActiveOverlapping(ctx context.Context, start, end time.Time) ([]*model.HolidayPackage, error)
}

type Resolver struct {
	bookings BookingSource
	packages PackageSource
	log      *logger.Logger
}

func NewResolver(bookings BookingSource, packages PackageSource, log *logger.Logger) *Resolver {
	return &Resolver{
		bookings: bookings,
		packages: packages,
		log:      log,
	}
}

// IsAvailable reports whether the room can be booked for the half-open
// stay [checkIn, checkOut). A non-empty contextPackageID marks the check
// as a package booking for that package.
//
// Two things block a stay. First, any confirmed booking whose interval
// overlaps the stay; a package booking may see through overlapping
// bookings of its own package, but only when the stay equals the package
// window exactly. Second, an exclusive package: a package with
// AllowPartialBookings=false that prices this room's type reserves its
// whole window for package guests, so no other caller may book any
// sub-range of it, a single night included. Packages that allow partial
// bookings are pricing overlays and never block on their own.
func (r *Resolver) IsAvailable(ctx context.Context, room *model.Room, checkIn, checkOut time.Time, contextPackageID string) (bool, error) {
	checkIn = dates.Normalize(checkIn)
	checkOut = dates.Normalize(checkOut)
	if !checkOut.After(checkIn) {
		return false, apperrors.InvalidDateRange("check_out must be after check_in")
	}

	packages, err := r.packages.FindActiveOverlapping(ctx, checkIn, checkOut)
	if err != nil {
		return false, apperrors.Internal("Failed to load holiday packages", err)
	}

	exactPackageStay := r.isExactPackageStay(packages, room.RoomType, checkIn, checkOut, contextPackageID)

	overlapping, err := r.bookings.FindOverlapping(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return false, apperrors.Internal("Failed to load overlapping bookings", err)
	}
	for _, booking := range overlapping {
		if exactPackageStay && booking.HolidayPackageID == contextPackageID {
			continue
		}
		r.log.Debug("Room blocked by overlapping booking",
			"room_id", room.ID,
			"booking_id", booking.ID,
			"check_in", checkIn,
			"check_out", checkOut,
		)
		return false, nil
	}

	for _, pkg := range packages {
		if _, priced := pkg.PriceFor(room.RoomType); !priced {
			continue
		}
		if pkg.ID == contextPackageID && stayMatchesWindow(pkg, checkIn, checkOut) {
			continue
		}
		if pkg.AllowPartialBookings {
			continue
		}
		r.log.Debug("Room blocked by exclusive holiday package",
			"room_id", room.ID,
			"package_id", pkg.ID,
			"check_in", checkIn,
			"check_out", checkOut,
		)
		return false, nil
	}

	return true, nil
}

// FilterAvailable keeps only the rooms bookable for the stay, preserving
// input order.
func (r *Resolver) FilterAvailable(ctx context.Context, rooms []*model.Room, checkIn, checkOut time.Time, contextPackageID string) ([]*model.Room, error) {
	checkIn = dates.Normalize(checkIn)
	checkOut = dates.Normalize(checkOut)
	if !checkOut.After(checkIn) {
		return nil, apperrors.InvalidDateRange("check_out must be after check_in")
	}

	available := make([]*model.Room, 0, len(rooms))
	for _, room := range rooms {
		ok, err := r.IsAvailable(ctx, room, checkIn, checkOut, contextPackageID)
		if err != nil {
			return nil, err
		}
		if ok {
			available = append(available, room)
		}
	}
	return available, nil
}

func (r *Resolver) isExactPackageStay(packages []*model.HolidayPackage, roomType string, checkIn, checkOut time.Time, contextPackageID string) bool {
	if contextPackageID == "" {
		return false
	}
	for _, pkg := range packages {
		if pkg.ID != contextPackageID {
			continue
		}
		if _, priced := pkg.PriceFor(roomType); !priced {
			continue
		}
		if stayMatchesWindow(pkg, checkIn, checkOut) {
			return true
		}
	}
	return false
}

func stayMatchesWindow(pkg *model.HolidayPackage, checkIn, checkOut time.Time) bool {
	return checkIn.Equal(pkg.StartDate) && checkOut.Equal(pkg.EndDate)
}
