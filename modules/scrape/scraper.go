// Package scrape acquires a product's price from its source page. It is
// called exactly once, at product creation; callers treat any error as a
// degraded (unpriced) creation, never as a request failure.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrPriceNotFound is returned when the page was fetched but no price
	// could be located in it.
	ErrPriceNotFound = errors.New("price not found on page")
)

// maxBodySize bounds how much of a source page is read.
const maxBodySize = 2 << 20

// Scraper fetches the current price for a (url, platform) pair.
type Scraper interface {
	Scrape(ctx context.Context, url, platform string) (float64, error)
}

// Per-platform extraction patterns, tried before the generic fallback.
// Group 1 must capture the numeric run.
var platformPatterns = map[string]*regexp.Regexp{
	"amazon":   regexp.MustCompile(`class="a-offscreen"[^>]*>[^0-9]*([\d,]+(?:\.\d+)?)`),
	"ebay":     regexp.MustCompile(`x-price-primary[^$€£]*[$€£]\s*([\d,]+(?:\.\d+)?)`),
	"flipkart": regexp.MustCompile(`₹\s*([\d,]+(?:\.\d+)?)`),
}

// genericPricePattern matches the first currency-tagged numeric run.
var genericPricePattern = regexp.MustCompile(`[$€£₹]\s*([\d,]+(?:\.\d+)?)`)

// HTTPScraper fetches the source page over plain HTTP and extracts the price
// with per-platform patterns. Pages that render their price with JavaScript
// need a browser-backed Scraper implementation instead.
type HTTPScraper struct {
	client    *http.Client
	userAgent string
}

// NewHTTPScraper creates a scraper with a bounded-timeout HTTP client.
func NewHTTPScraper(timeout time.Duration) *HTTPScraper {
	return &HTTPScraper{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: "Mozilla/5.0 (compatible; price-tracker/1.0)",
	}
}

// Scrape fetches url and returns the first price found on it.
func (s *HTTPScraper) Scrape(ctx context.Context, url, platform string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build scrape request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch source page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("source page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, fmt.Errorf("failed to read source page: %w", err)
	}

	return extractPrice(string(body), platform)
}

// extractPrice locates the price in page HTML, preferring the platform's
// known markup over the generic currency pattern.
func extractPrice(page, platform string) (float64, error) {
	if re, ok := platformPatterns[strings.ToLower(strings.TrimSpace(platform))]; ok {
		if match := re.FindStringSubmatch(page); len(match) >= 2 {
			return parseNumber(match[1])
		}
	}

	if match := genericPricePattern.FindStringSubmatch(page); len(match) >= 2 {
		return parseNumber(match[1])
	}

	return 0, ErrPriceNotFound
}

func parseNumber(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, ErrPriceNotFound
	}
	return price, nil
}
