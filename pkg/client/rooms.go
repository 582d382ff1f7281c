package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"innkeep/pkg/model"
)

type RoomsClient struct {
	httpClient *HttpClient
}

func NewRoomsClient(baseURL string) *RoomsClient {
	return &RoomsClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *RoomsClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/rooms?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *RoomsClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/rooms/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

func (c *RoomsClient) GetByType(ctx context.Context, roomType string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("room_type", roomType)
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	return c.httpClient.GET(ctx, "/api/v1/rooms?"+q.Encode())
}

func (c *RoomsClient) GetTypes(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/rooms/types")
}

func (c *RoomsClient) DecodeRoom(resp *Response) (*model.Room, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode room wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var room model.Room
	if err := json.Unmarshal(wrapper.Data, &room); err != nil {
		return nil, fmt.Errorf("could not decode room json:\n%+v\n%s", resp.ToString(), err)
	}

	return &room, nil
}

func (c *RoomsClient) DecodeRooms(resp *Response) ([]*model.Room, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var rooms []*model.Room
	if err := json.Unmarshal(wrapper.Data, &rooms); err != nil {
		return nil, nil, fmt.Errorf("could not decode room list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return rooms, metadata, nil
}
