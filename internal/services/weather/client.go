// Package weather looks up current conditions for mandi locations via
// the OpenWeatherMap API.
package weather

import (
	"context"
	"fmt"

	"KisanSense/internal/domain/models"
	httpclient "KisanSense/pkg/http"
)

// ClientOption configures Client.
type ClientOption func(*Client)

// Client fetches current weather for a named location.
type Client struct {
	http    *httpclient.Client
	baseURL string
	apiKey  string
	country string
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithAPIKey sets the API credential.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithCountry sets the country code appended to location queries.
func WithCountry(code string) ClientOption {
	return func(c *Client) {
		c.country = code
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *httpclient.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a weather client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: "https://api.openweathermap.org/data/2.5",
		country: "IN",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewClient()
	}
	return c
}

type owmResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Rain map[string]float64 `json:"rain"`
}

// Current returns conditions for a location. Mandi names are cleaned to
// a plain place name before querying.
func (c *Client) Current(ctx context.Context, location string) (*models.WeatherContext, error) {
	place := CleanMandiLocation(location)
	if place == "" {
		return nil, fmt.Errorf("no usable location in %q", location)
	}

	var resp owmResponse
	err := c.http.SendAndParse(ctx, &httpclient.RequestOptions{
		Method: httpclient.MethodGet,
		URL:    c.baseURL + "/weather",
		QueryParams: map[string][]string{
			"q":     {place + "," + c.country},
			"appid": {c.apiKey},
			"units": {"metric"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("weather lookup for %q: %w", place, err)
	}

	wc := &models.WeatherContext{
		TemperatureC: resp.Main.Temp,
		Humidity:     resp.Main.Humidity,
		// cloud cover is the nearest available proxy for rain chance
		RainProbability: resp.Clouds.All,
	}
	if len(resp.Rain) > 0 {
		wc.RainProbability = 100
	}
	if len(resp.Weather) > 0 {
		wc.Description = resp.Weather[0].Description
	}
	return wc, nil
}
