package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.Handler, apiKey string) (*Service, *int64) {
	t.Helper()

	var calls int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(upstream.Close)

	client := NewClient(upstream.URL, apiKey, 5*time.Second)
	return NewService(client), &calls
}

func TestSearch_EmptyQueryMakesNoCall(t *testing.T) {
	svc, calls := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}), "test-key")

	_, err := svc.Search(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingQuery)
	assert.Equal(t, int64(0), atomic.LoadInt64(calls))
}

func TestSearch_MissingCredential(t *testing.T) {
	svc, calls := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}), "")

	_, err := svc.Search(context.Background(), "headphones")
	require.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, int64(0), atomic.LoadInt64(calls))
}

func TestSearch_LowestAcrossMismatchedShapes(t *testing.T) {
	body := `{
		"shopping_results": [
			{"title": "Widget Pro", "link": "https://a.example/1", "source": "ShopA", "price": "$12.50"},
			{"product_title": "Widget Basic", "product_link": "https://b.example/2", "merchant": "ShopB", "extracted_price": 8}
		]
	}`
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}), "test-key")

	result, err := svc.Search(context.Background(), "widget")
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "Widget Pro", result.Items[0].Title)
	require.NotNil(t, result.Items[0].Price)
	assert.Equal(t, 12.50, *result.Items[0].Price)
	assert.Equal(t, "Widget Basic", result.Items[1].Title)

	require.NotNil(t, result.LowestPrice)
	assert.Equal(t, 8.0, *result.LowestPrice)
}

func TestSearch_AbsentResultsIsEmpty(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"search_metadata": {"status": "Success"}}`)
	}), "test-key")

	result, err := svc.Search(context.Background(), "widget")
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Nil(t, result.LowestPrice)
}

func TestSearch_UpstreamFailure(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}), "test-key")

	_, err := svc.Search(context.Background(), "widget")
	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestSearch_UpstreamUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-key", 500*time.Millisecond)
	svc := NewService(client)

	_, err := svc.Search(context.Background(), "widget")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
}

func TestSearch_QueryAndCredentialForwarded(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google_shopping", q.Get("engine"))
		assert.Equal(t, "usb-c hub", q.Get("q"))
		assert.Equal(t, "test-key", q.Get("api_key"))
		fmt.Fprint(w, `{"shopping_results": []}`)
	}), "test-key")

	result, err := svc.Search(context.Background(), "usb-c hub")
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}
