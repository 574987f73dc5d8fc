// Package advisory calls an external language-model service for
// free-text market recommendations.
package advisory

import (
	"context"
	"fmt"
	"strings"

	"KisanSense/internal/domain/service"
	httpclient "KisanSense/pkg/http"
)

// ClientOption configures Client.
type ClientOption func(*Client)

// Client talks to a generateContent-style advisory endpoint. It makes
// exactly one attempt per call; retry policy belongs to the caller.
type Client struct {
	http    *httpclient.Client
	baseURL string
	model   string
	apiKey  string
}

// WithBaseURL sets the service base URL.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithModel sets the model name used in the request path.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithAPIKey sets the API credential.
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

// NewClient creates an advisory client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		model:   "gemini-1.5-flash",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewClient()
	}
	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// Advise sends the market context as a prompt and returns the first
// usable free-text field of the response.
func (c *Client) Advise(ctx context.Context, q service.AdvisoryQuery) (string, error) {
	var raw []byte
	err := c.http.SendAndParse(ctx, &httpclient.RequestOptions{
		Method: httpclient.MethodPost,
		URL:    fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model),
		Headers: map[string]string{
			"Content-Type":   "application/json",
			"x-goog-api-key": c.apiKey,
		},
		Body: generateRequest{
			Contents: []content{{Parts: []part{{Text: buildPrompt(q)}}}},
		},
	}, &raw)
	if err != nil {
		return "", fmt.Errorf("advisory call: %w", err)
	}

	return ExtractText(raw), nil
}

func buildPrompt(q service.AdvisoryQuery) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an agricultural market advisor for Indian farmers. ")
	fmt.Fprintf(&b, "Commodity: %s. Market: %s. Current modal price: ₹%.0f per quintal. ",
		q.Commodity, q.Market, q.CurrentPrice)
	if len(q.Prices) > 1 {
		fmt.Fprintf(&b, "Recent modal prices (oldest first): ")
		sum, lo, hi := 0.0, q.Prices[0], q.Prices[0]
		for i, p := range q.Prices {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%.0f", p)
			sum += p
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
		fmt.Fprintf(&b, ". Average ₹%.0f, range ₹%.0f-₹%.0f. ",
			sum/float64(len(q.Prices)), lo, hi)
	}
	if q.Forecast != nil {
		fmt.Fprintf(&b, "Projected price: ₹%.0f (change %+.0f, %+.1f%%). ",
			q.Forecast.PredictedPrice, q.Forecast.ExpectedGain, q.Forecast.ExpectedGainPct)
	}
	fmt.Fprintf(&b, "Price volatility: %.1f (%s risk). ", q.Risk.Volatility, q.Risk.Label)
	if q.Weather.HasData() {
		fmt.Fprintf(&b, "Weather: %s, %.0f°C, %.0f%% chance of rain. ",
			q.Weather.Description, q.Weather.TemperatureC, q.Weather.RainProbability)
	}
	lang := q.Language
	if lang == "" {
		lang = "en"
	}
	fmt.Fprintf(&b, "In 2-3 sentences, advise whether the farmer should SELL now, HOLD, or WAIT, with the reason. Respond in language: %s.", lang)
	return b.String()
}
