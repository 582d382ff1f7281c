package flows

import (
	"fmt"
	"net/http"

	"innkeep/internal/frontdesk/core"
	"innkeep/pkg/client"
)

const dateLayout = "2006-01-02"

// SearchAvailableRooms finds the rooms bookable for a stay.
// Input: check_in, check_out, optional room_type and package_id.
func SearchAvailableRooms(ctx *core.FlowContext) error {
	checkIn, err := ctx.RequireDate("check_in")
	if err != nil {
		return err
	}
	checkOut, err := ctx.RequireDate("check_out")
	if err != nil {
		return err
	}

	resp, err := ctx.Clients.Bookings.SearchAvailableRooms(
		ctx.Ctx,
		checkIn.Format(dateLayout),
		checkOut.Format(dateLayout),
		ctx.ExtractString("room_type"),
		ctx.ExtractString("package_id"),
	)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("availability search failed: %s", client.GetErrorMessage(resp))
	}

	rooms, err := ctx.Clients.Bookings.DecodeRooms(resp)
	if err != nil {
		return err
	}

	ctx.Output["rooms"] = rooms
	ctx.Output["count"] = len(rooms)
	return nil
}

// QuoteStay prices a prospective stay without committing anything.
// Input: room_id, check_in, check_out, optional package_id.
func QuoteStay(ctx *core.FlowContext) error {
	roomID, err := ctx.RequireString("room_id")
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

	resp, err := ctx.Clients.Bookings.Quote(
		ctx.Ctx,
		roomID,
		checkIn.Format(dateLayout),
		checkOut.Format(dateLayout),
		ctx.ExtractString("package_id"),
	)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("quote failed: %s", client.GetErrorMessage(resp))
	}

	quote, err := ctx.Clients.Bookings.DecodeQuote(resp)
	if err != nil {
		return err
	}

	ctx.Output["quote"] = quote
	return nil
}
