package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"innkeep/pkg/model"
)

type PackagesClient struct {
	httpClient *HttpClient
}

func NewPackagesClient(baseURL string) *PackagesClient {
	return &PackagesClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *PackagesClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/packages", body)
}

func (c *PackagesClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/packages?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *PackagesClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/packages/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

// GetActive returns packages whose active window covers the given stay.
// Dates are YYYY-MM-DD.
func (c *PackagesClient) GetActive(ctx context.Context, checkIn, checkOut string) (*Response, error) {
	q := url.Values{}
	q.Set("check_in", checkIn)
	q.Set("check_out", checkOut)
	return c.httpClient.GET(ctx, "/api/v1/packages/active?"+q.Encode())
}

func (c *PackagesClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	path := "/api/v1/packages/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(ctx, path, body)
}

func (c *PackagesClient) Delete(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/packages/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(ctx, path)
}

func (c *PackagesClient) DecodePackage(resp *Response) (*model.HolidayPackage, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode package wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var pkg model.HolidayPackage
	if err := json.Unmarshal(wrapper.Data, &pkg); err != nil {
		return nil, fmt.Errorf("could not decode package json:\n%+v\n%s", resp.ToString(), err)
	}

	return &pkg, nil
}

func (c *PackagesClient) DecodePackages(resp *Response) ([]*model.HolidayPackage, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var pkgs []*model.HolidayPackage
	if err := json.Unmarshal(wrapper.Data, &pkgs); err != nil {
		return nil, nil, fmt.Errorf("could not decode package list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return pkgs, metadata, nil
}
