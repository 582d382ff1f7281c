package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"innkeep/pkg/model"
)

type BookingsClient struct {
	httpClient *HttpClient
}

func NewBookingsClient(baseURL string) *BookingsClient {
	return &BookingsClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingsClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/bookings", body)
}

func (c *BookingsClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/bookings?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *BookingsClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

func (c *BookingsClient) GetByConfirmationCode(ctx context.Context, code string) (*Response, error) {
	path := "/api/v1/bookings/code/" + url.PathEscape(code)
	return c.httpClient.GET(ctx, path)
}

func (c *BookingsClient) Cancel(ctx context.Context, id string, body any) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id) + "/cancel"
	return c.httpClient.POST(ctx, path, body)
}

// SearchAvailableRooms queries room availability for a stay window.
// Dates are YYYY-MM-DD; packageID is optional.
func (c *BookingsClient) SearchAvailableRooms(ctx context.Context, checkIn, checkOut, roomType, packageID string) (*Response, error) {
	q := url.Values{}
	q.Set("check_in", checkIn)
	q.Set("check_out", checkOut)
	if roomType != "" {
		q.Set("room_type", roomType)
	}
	if packageID != "" {
		q.Set("package_id", packageID)
	}
	return c.httpClient.GET(ctx, "/api/v1/availability/rooms?"+q.Encode())
}

// Quote prices a stay without creating a booking.
func (c *BookingsClient) Quote(ctx context.Context, roomID, checkIn, checkOut, packageID string) (*Response, error) {
	q := url.Values{}
	q.Set("room_id", roomID)
	q.Set("check_in", checkIn)
	q.Set("check_out", checkOut)
	if packageID != "" {
		q.Set("package_id", packageID)
	}
	return c.httpClient.GET(ctx, "/api/v1/availability/quote?"+q.Encode())
}

func (c *BookingsClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json:\n%+v\n%s", resp.ToString(), err)
	}

	return &booking, nil
}

func (c *BookingsClient) DecodeBookings(resp *Response) ([]*model.Booking, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var bookings []*model.Booking
	if err := json.Unmarshal(wrapper.Data, &bookings); err != nil {
		return nil, nil, fmt.Errorf("could not decode booking list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return bookings, metadata, nil
}

func (c *BookingsClient) DecodeRooms(resp *Response) ([]*model.Room, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode rooms wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var rooms []*model.Room
	if err := json.Unmarshal(wrapper.Data, &rooms); err != nil {
		return nil, fmt.Errorf("could not decode room list:\n%+v\n%s", resp.ToString(), err)
	}

	return rooms, nil
}

func (c *BookingsClient) DecodeQuote(resp *Response) (*model.Quote, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode quote wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var quote model.Quote
	if err := json.Unmarshal(wrapper.Data, &quote); err != nil {
		return nil, fmt.Errorf("could not decode quote json:\n%+v\n%s", resp.ToString(), err)
	}

	return &quote, nil
}
