package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/price-tracker/domain/offer"
)

var (
	// ErrMissingQuery is returned when the search query is empty. No
	// external call is made.
	ErrMissingQuery = errors.New("search query is required")
	// ErrMissingCredential is returned when no search API key is
	// configured. This is a server configuration error, not a client one.
	ErrMissingCredential = errors.New("search API key is not configured")
	// ErrUpstream wraps failures of the external search call.
	ErrUpstream = errors.New("shopping search upstream failure")
)

// Result is the response of one sponsored search: the normalized offers and
// the lowest price found across them, nil when no offer carried a price.
type Result struct {
	Items       []offer.Offer `json:"items"`
	LowestPrice *float64      `json:"lowest_price"`
}

// Service runs sponsored searches through the shopping-search client.
type Service struct {
	client *Client
}

// NewService creates a search service.
func NewService(client *Client) *Service {
	return &Service{client: client}
}

// Search validates the query, makes one bounded upstream call, normalizes
// each raw record into an offer, and reduces to the lowest price. No retries.
func (s *Service) Search(ctx context.Context, query string) (*Result, error) {
	if query == "" {
		return nil, ErrMissingQuery
	}
	if !s.client.HasCredential() {
		return nil, ErrMissingCredential
	}

	records, err := s.client.Shopping(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	items := offer.NormalizeAll(records)
	return &Result{
		Items:       items,
		LowestPrice: offer.Lowest(items),
	}, nil
}
