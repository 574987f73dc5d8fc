// Package translate renders advisory text into the farmer's language.
// Failures are absorbed: the caller always gets text back, translated
// when possible and the original otherwise.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"KisanSense/pkg/cache"
	httpclient "KisanSense/pkg/http"
	"KisanSense/pkg/logger"
)

// Option configures Translator.
type Option func(*Translator)

// Translator calls an external translation endpoint with caching,
// in-flight deduplication, and bounded retries.
type Translator struct {
	http        *httpclient.Client
	cache       cache.Service
	group       singleflight.Group
	log         *logger.Logger
	baseURL     string
	retries     int
	retryDelay  time.Duration
	callTimeout time.Duration
	cacheTTL    time.Duration
}

// WithBaseURL sets the translation endpoint.
func WithBaseURL(url string) Option {
	return func(t *Translator) {
		t.baseURL = url
	}
}

// WithCache sets the result cache.
func WithCache(c cache.Service) Option {
	return func(t *Translator) {
		t.cache = c
	}
}

// WithRetries sets attempt count and the base delay between attempts.
// Delay grows linearly with the attempt number.
func WithRetries(n int, delay time.Duration) Option {
	return func(t *Translator) {
		if n > 0 {
			t.retries = n
		}
		if delay > 0 {
			t.retryDelay = delay
		}
	}
}

// WithCallTimeout bounds each individual attempt.
func WithCallTimeout(d time.Duration) Option {
	return func(t *Translator) {
		if d > 0 {
			t.callTimeout = d
		}
	}
}

// WithCacheTTL sets how long successful translations are kept.
func WithCacheTTL(d time.Duration) Option {
	return func(t *Translator) {
		if d > 0 {
			t.cacheTTL = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *logger.Logger) Option {
	return func(t *Translator) {
		t.log = log
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *httpclient.Client) Option {
	return func(t *Translator) {
		t.http = hc
	}
}

// New creates a Translator.
func New(opts ...Option) *Translator {
	t := &Translator{
		baseURL:     "https://translate.googleapis.com/translate_a/single",
		retries:     3,
		retryDelay:  500 * time.Millisecond,
		callTimeout: 5 * time.Second,
		cacheTTL:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.http == nil {
		t.http = httpclient.NewClient()
	}
	return t
}

// Translate returns text in targetLang. The boolean reports whether a
// translation actually happened; on exhausted retries the source text
// comes back unchanged with false.
func (t *Translator) Translate(ctx context.Context, text, targetLang string) (string, bool) {
	if text == "" || targetLang == "" || targetLang == "en" {
		return text, false
	}

	key := cacheKey(targetLang, text)
	if t.cache != nil {
		if raw, err := t.cache.Get(ctx, key); err == nil {
			if s := decodeCached(raw); s != "" {
				return s, true
			}
		}
	}

	// concurrent requests for the same text share one upstream call
	v, err, _ := t.group.Do(key, func() (any, error) {
		return t.translateWithRetry(ctx, text, targetLang)
	})
	if err != nil {
		if t.log != nil {
			t.log.Warn("translation failed, returning source text",
				logger.String("lang", targetLang), logger.Error(err))
		}
		return text, false
	}

	translated := v.(string)
	if t.cache != nil {
		_ = t.cache.Set(ctx, key, translated, t.cacheTTL)
	}
	return translated, true
}

func (t *Translator) translateWithRetry(ctx context.Context, text, targetLang string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= t.retries; attempt++ {
		actx, cancel := context.WithTimeout(ctx, t.callTimeout)
		out, err := t.callOnce(actx, text, targetLang)
		cancel()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if attempt == t.retries {
			break
		}
		select {
		case <-time.After(t.retryDelay * time.Duration(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("translate after %d attempts: %w", t.retries, lastErr)
}

func (t *Translator) callOnce(ctx context.Context, text, targetLang string) (string, error) {
	var resp []any
	err := t.http.SendAndParse(ctx, &httpclient.RequestOptions{
		Method: httpclient.MethodGet,
		URL:    t.baseURL,
		QueryParams: map[string][]string{
			"client": {"gtx"},
			"sl":     {"en"},
			"tl":     {targetLang},
			"dt":     {"t"},
			"q":      {text},
		},
	}, &resp)
	if err != nil {
		return "", err
	}

	out := parseSegments(resp)
	if out == "" {
		return "", fmt.Errorf("empty translation response")
	}
	return out, nil
}

// parseSegments reassembles the segment array of a translate_a/single
// response: [[[translated, source, ...], ...], ...].
func parseSegments(resp []any) string {
	if len(resp) == 0 {
		return ""
	}
	segments, ok := resp[0].([]any)
	if !ok {
		return ""
	}
	var out string
	for _, seg := range segments {
		pair, ok := seg.([]any)
		if !ok || len(pair) == 0 {
			continue
		}
		if s, ok := pair[0].(string); ok {
			out += s
		}
	}
	return out
}

func cacheKey(lang, text string) string {
	return "translate:" + lang + ":" + text
}

func decodeCached(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case []byte:
		// redis-backed caches store JSON strings
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	return ""
}
