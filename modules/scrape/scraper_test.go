package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScrape_AmazonMarkup(t *testing.T) {
	srv := servePage(t, `<html><body>
		<span class="a-price"><span class="a-offscreen">$19.99</span></span>
	</body></html>`)

	s := NewHTTPScraper(5 * time.Second)
	price, err := s.Scrape(context.Background(), srv.URL, "amazon")
	require.NoError(t, err)
	assert.Equal(t, 19.99, price)
}

func TestScrape_GenericCurrencyFallback(t *testing.T) {
	srv := servePage(t, `<html><body>
		<div class="price">Now only $1,299.00!</div>
	</body></html>`)

	s := NewHTTPScraper(5 * time.Second)
	price, err := s.Scrape(context.Background(), srv.URL, "unknown-shop")
	require.NoError(t, err)
	assert.Equal(t, 1299.00, price)
}

func TestScrape_NoPriceOnPage(t *testing.T) {
	srv := servePage(t, `<html><body><p>Out of stock</p></body></html>`)

	s := NewHTTPScraper(5 * time.Second)
	_, err := s.Scrape(context.Background(), srv.URL, "amazon")
	require.ErrorIs(t, err, ErrPriceNotFound)
}

func TestScrape_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	t.Cleanup(srv.Close)

	s := NewHTTPScraper(5 * time.Second)
	_, err := s.Scrape(context.Background(), srv.URL, "amazon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "410")
}

func TestScrape_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	t.Cleanup(srv.Close)

	s := NewHTTPScraper(5 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := s.Scrape(ctx, srv.URL, "amazon")
	require.Error(t, err)
}

func TestExtractPrice_PlatformPreferred(t *testing.T) {
	// The generic pattern would match $5.00 first; the amazon pattern must
	// win for the amazon platform.
	page := `<div>Shipping: $5.00</div><span class="a-offscreen">$42.00</span>`

	price, err := extractPrice(page, "amazon")
	require.NoError(t, err)
	assert.Equal(t, 42.00, price)

	price, err = extractPrice(page, "")
	require.NoError(t, err)
	assert.Equal(t, 5.00, price)
}
