package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"KisanSense/pkg/cache"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestTranslateSuccess(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hi", r.URL.Query().Get("tl"))
		w.Write([]byte(`[[["आज बेचो","sell today",null]],null,"en"]`))
	})

	tr := New(WithBaseURL(srv.URL))
	got, ok := tr.Translate(context.Background(), "sell today", "hi")
	assert.True(t, ok)
	assert.Equal(t, "आज बेचो", got)
}

func TestTranslateEnglishShortCircuits(t *testing.T) {
	var calls int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	tr := New(WithBaseURL(srv.URL))
	got, ok := tr.Translate(context.Background(), "hold", "en")
	assert.False(t, ok)
	assert.Equal(t, "hold", got)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestTranslateRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[[["रुको","wait",null]],null,"en"]`))
	})

	tr := New(WithBaseURL(srv.URL), WithRetries(3, time.Millisecond))
	got, ok := tr.Translate(context.Background(), "wait", "hi")
	assert.True(t, ok)
	assert.Equal(t, "रुको", got)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestTranslateExhaustedReturnsSource(t *testing.T) {
	var calls int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	tr := New(WithBaseURL(srv.URL), WithRetries(3, time.Millisecond))
	got, ok := tr.Translate(context.Background(), "hold your stock", "hi")
	assert.False(t, ok)
	assert.Equal(t, "hold your stock", got)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestTranslateCacheHitSkipsCall(t *testing.T) {
	var calls int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`[[["पकड़ो","hold",null]],null,"en"]`))
	})

	mem := cache.NewMemoryCache()
	defer mem.Close()
	tr := New(WithBaseURL(srv.URL), WithCache(mem))

	first, ok := tr.Translate(context.Background(), "hold", "hi")
	assert.True(t, ok)
	second, ok := tr.Translate(context.Background(), "hold", "hi")
	assert.True(t, ok)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestParseSegmentsMultiPart(t *testing.T) {
	resp := []any{
		[]any{
			[]any{"पहला ", "first "},
			[]any{"दूसरा", "second"},
		},
	}
	assert.Equal(t, "पहला दूसरा", parseSegments(resp))
}
