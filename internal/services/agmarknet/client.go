// Package agmarknet fetches daily mandi prices from the data.gov.in
// AGMARKNET resource.
package agmarknet

import (
	"context"
	"fmt"
	"strconv"

	"KisanSense/internal/domain/models"
	httpclient "KisanSense/pkg/http"
)

// ClientOption configures Client.
type ClientOption func(*Client)

// Client pages through the AGMARKNET resource API.
type Client struct {
	http       *httpclient.Client
	baseURL    string
	resourceID string
	apiKey     string
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithResourceID sets the dataset resource identifier.
func WithResourceID(id string) ClientOption {
	return func(c *Client) {
		c.resourceID = id
	}
}

// WithAPIKey sets the data.gov.in API key.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *httpclient.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates an AGMARKNET client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    "https://api.data.gov.in/resource",
		resourceID: "9ef84268-d588-465a-a308-a864a43d0070",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewClient()
	}
	return c
}

type feedResponse struct {
	Total   int         `json:"total"`
	Count   int         `json:"count"`
	Records []rawRecord `json:"records"`
}

// FetchPrices returns one page of normalized records. Rows that fail
// normalization are skipped, not fatal.
func (c *Client) FetchPrices(ctx context.Context, offset, limit int) ([]*models.PriceRecord, error) {
	var resp feedResponse
	err := c.http.SendAndParse(ctx, &httpclient.RequestOptions{
		Method: httpclient.MethodGet,
		URL:    fmt.Sprintf("%s/%s", c.baseURL, c.resourceID),
		QueryParams: map[string][]string{
			"api-key": {c.apiKey},
			"format":  {"json"},
			"offset":  {strconv.Itoa(offset)},
			"limit":   {strconv.Itoa(limit)},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch agmarknet page offset=%d: %w", offset, err)
	}

	records := make([]*models.PriceRecord, 0, len(resp.Records))
	for _, raw := range resp.Records {
		rec, err := Normalize(raw)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
