package flows

import (
	"fmt"
	"net/http"

	"innkeep/internal/frontdesk/core"
	"innkeep/pkg/client"
	"innkeep/pkg/model"
	"innkeep/pkg/sealer"
)

// CreateBooking books a room for a guest and returns the booking together
// with an opaque cancel token the guest can later present.
// Input: room_id, check_in, check_out, guest_name; optional guest_phone,
// num_adults, num_children, package_id.
func CreateBooking(ctx *core.FlowContext) error {
	roomID, err := ctx.RequireString("room_id")
	if err != nil {
		return err
	}
	guestName, err := ctx.RequireString("guest_name")
	if err != nil {
		return err
	}
	checkIn, err := ctx.RequireDate("check_in")
	if err != nil {
		return err
	}
	checkOut, err := ctx.RequireDate("check_out")
	if err != nil {
		return err
	}

	booking := &model.Booking{
		RoomID:           roomID,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		GuestName:        guestName,
		GuestPhone:       ctx.ExtractString("guest_phone"),
		NumAdults:        ctx.ExtractInt("num_adults", 1),
		NumChildren:      ctx.ExtractInt("num_children", 0),
		HolidayPackageID: ctx.ExtractString("package_id"),
	}

	resp, err := ctx.Clients.Bookings.Create(ctx.Ctx, booking)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("booking failed: %s", client.GetErrorMessage(resp))
	}

	created, err := ctx.Clients.Bookings.DecodeBooking(resp)
	if err != nil {
		return err
	}

	cancelToken, err := sealer.CreateCancelToken(created.ID, created.ConfirmationCode)
	if err != nil {
		return fmt.Errorf("failed to create cancel token: %w", err)
	}

	ctx.Output["booking"] = created
	ctx.Output["cancel_token"] = cancelToken
	return nil
}

// FindBooking looks up a booking by the confirmation code printed on the
// guest's receipt.
// Input: confirmation_code.
func FindBooking(ctx *core.FlowContext) error {
	code, err := ctx.RequireString("confirmation_code")
	if err != nil {
		return err
	}

	resp, err := ctx.Clients.Bookings.GetByConfirmationCode(ctx.Ctx, code)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("booking lookup failed: %s", client.GetErrorMessage(resp))
	}

	booking, err := ctx.Clients.Bookings.DecodeBooking(resp)
	if err != nil {
		return err
	}

	ctx.Output["booking"] = booking
	return nil
}

// CancelBooking cancels a booking identified by a cancel token. The token
// binds booking id and confirmation code, so a leaked booking id alone is
// not enough to cancel someone else's stay.
// Input: cancel_token.
func CancelBooking(ctx *core.FlowContext) error {
	token, err := ctx.RequireString("cancel_token")
	if err != nil {
		return err
	}

	bookingID, confirmationCode, err := sealer.ParseCancelToken(token)
	if err != nil {
		return fmt.Errorf("invalid cancel token: %w", err)
	}

	resp, err := ctx.Clients.Bookings.GetByID(ctx.Ctx, bookingID)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("booking lookup failed: %s", client.GetErrorMessage(resp))
	}
	booking, err := ctx.Clients.Bookings.DecodeBooking(resp)
	if err != nil {
		return err
	}
	if booking.ConfirmationCode != confirmationCode {
		return fmt.Errorf("cancel token does not match booking")
	}

	resp, err = ctx.Clients.Bookings.Cancel(ctx.Ctx, bookingID, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("cancellation failed: %s", client.GetErrorMessage(resp))
	}

	ctx.Output["cancelled"] = true
	ctx.Output["booking_id"] = bookingID
	return nil
}

// ListActivePackages lists the active holiday packages intersecting a stay,
// for the reception upsell screen.
// Input: check_in, check_out.
func ListActivePackages(ctx *core.FlowContext) error {
	checkIn, err := ctx.RequireDate("check_in")
	if err != nil {
		return err
	}
	checkOut, err := ctx.RequireDate("check_out")
	if err != nil {
		return err
	}

	resp, err := ctx.Clients.Packages.GetActive(ctx.Ctx, checkIn.Format(dateLayout), checkOut.Format(dateLayout))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("package lookup failed: %s", client.GetErrorMessage(resp))
	}

	packages, _, err := ctx.Clients.Packages.DecodePackages(resp)
	if err != nil {
		return err
	}

	ctx.Output["packages"] = packages
	ctx.Output["count"] = len(packages)
	return nil
}
