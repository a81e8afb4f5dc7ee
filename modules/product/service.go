// Package product implements the product service: a cache-aside gate over
// the per-user product list, with a single best-effort scrape at creation.
package product

import (
	"context"
	"log"
	"time"

	"github.com/example/price-tracker/domain/product"
	"github.com/example/price-tracker/modules/cache"
	"github.com/example/price-tracker/modules/scrape"
	"github.com/google/uuid"
)

// listKey is the cache key for a user's product listing.
func listKey(userID string) string {
	return "products:" + userID
}

// Service serves the authoritative product list through a read-through,
// write-invalidate cache. A nil cache is a valid state: every read falls
// through to the store and writes skip invalidation.
type Service struct {
	repo          *product.Repository
	cache         *cache.Cache
	scraper       scrape.Scraper
	scrapeTimeout time.Duration
}

// NewService creates a product service. cache may be nil (degraded mode).
func NewService(repo *product.Repository, c *cache.Cache, scraper scrape.Scraper, scrapeTimeout time.Duration) *Service {
	return &Service{
		repo:          repo,
		cache:         c,
		scraper:       scraper,
		scrapeTimeout: scrapeTimeout,
	}
}

// ListResult is a product listing plus whether it came from the cache.
type ListResult struct {
	Products []product.Product
	Cached   bool
}

// List returns the user's products, serving from cache on hit and
// populating the cache on miss. Cache errors degrade to a store read.
func (s *Service) List(ctx context.Context, userID string) (*ListResult, error) {
	key := listKey(userID)

	if s.cache != nil {
		var products []product.Product
		hit, err := s.cache.Get(ctx, key, &products)
		if err != nil {
			log.Printf("[product] Cache read failed for %s: %v", key, err)
		} else if hit {
			return &ListResult{Products: products, Cached: true}, nil
		}
	}

	products, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, products); err != nil {
			log.Printf("[product] Cache populate failed for %s: %v", key, err)
		}
	}

	return &ListResult{Products: products, Cached: false}, nil
}

// Create stores a new product for the user. One scrape attempt seeds the
// price; if it fails the product is created unpriced with an empty history.
// Creation never fails because scraping failed.
func (s *Service) Create(ctx context.Context, userID string, req *product.CreateProductRequest) (*product.Product, error) {
	now := time.Now()
	p := &product.Product{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        req.Name,
		URL:         req.URL,
		Platform:    req.Platform,
		TargetPrice: req.TargetPrice,
		History:     product.PriceHistory{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	scrapeCtx, cancel := context.WithTimeout(ctx, s.scrapeTimeout)
	defer cancel()
	if price, err := s.scraper.Scrape(scrapeCtx, req.URL, req.Platform); err != nil {
		log.Printf("[product] Scrape failed for %s (%s), creating unpriced: %v", req.URL, req.Platform, err)
	} else {
		p.RecordPrice(price, now)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return p, nil
}

// Get returns one of the user's products and increments its view counter.
// The view counter is metadata: it does not invalidate the list cache, so a
// cached listing may trail it by up to the cache TTL.
func (s *Service) Get(ctx context.Context, userID, id string) (*product.Product, error) {
	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	p.Views++
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Update merges a partial field set into the user's product and invalidates
// the cached listing.
func (s *Service) Update(ctx context.Context, userID, id string, req *product.UpdateProductRequest) (*product.Product, error) {
	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.URL != nil {
		p.URL = *req.URL
	}
	if req.Platform != nil {
		p.Platform = *req.Platform
	}
	if req.TargetPrice != nil {
		p.TargetPrice = *req.TargetPrice
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return p, nil
}

// Delete removes the user's product and invalidates the cached listing.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

// invalidate drops the user's cached listing after a store write. The cached
// value is never patched in place; the next read repopulates from the store.
// Invalidation failure is logged and absorbed, leaving a stale entry that
// expires with the TTL.
func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listKey(userID)); err != nil {
		log.Printf("[product] Cache invalidate failed for %s: %v", listKey(userID), err)
	}
}
