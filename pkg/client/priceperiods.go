package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"innkeep/pkg/model"
)

type PricePeriodsClient struct {
	httpClient *HttpClient
}

func NewPricePeriodsClient(baseURL string) *PricePeriodsClient {
	return &PricePeriodsClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *PricePeriodsClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/price-periods", body)
}

func (c *PricePeriodsClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/price-periods?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *PricePeriodsClient) GetByRoomType(ctx context.Context, roomType string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("room_type", roomType)
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	return c.httpClient.GET(ctx, "/api/v1/price-periods?"+q.Encode())
}

func (c *PricePeriodsClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/price-periods/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

func (c *PricePeriodsClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	path := "/api/v1/price-periods/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(ctx, path, body)
}

func (c *PricePeriodsClient) Delete(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/price-periods/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(ctx, path)
}

func (c *PricePeriodsClient) DecodePeriod(resp *Response) (*model.RoomPricePeriod, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode period wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var period model.RoomPricePeriod
	if err := json.Unmarshal(wrapper.Data, &period); err != nil {
		return nil, fmt.Errorf("could not decode period json:\n%+v\n%s", resp.ToString(), err)
	}

	return &period, nil
}

func (c *PricePeriodsClient) DecodePeriods(resp *Response) ([]*model.RoomPricePeriod, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var periods []*model.RoomPricePeriod
	if err := json.Unmarshal(wrapper.Data, &periods); err != nil {
		return nil, nil, fmt.Errorf("could not decode period list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return periods, metadata, nil
}
