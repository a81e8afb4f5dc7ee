package scrape

import (
	"context"
	"log"
	"time"

	"github.com/go-monolith/mono"
)

// Module provides the scrape gateway as a mono module.
type Module struct {
	scraper *HTTPScraper
	timeout time.Duration
}

// NewModule creates a new scrape module.
func NewModule(timeout time.Duration) *Module {
	return &Module{
		timeout: timeout,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "scrape"
}

// Init builds the HTTP scraper.
func (m *Module) Init(_ mono.ServiceContainer) error {
	m.scraper = NewHTTPScraper(m.timeout)
	log.Printf("[scrape] Gateway initialized (timeout: %s)", m.timeout)
	return nil
}

// Start starts the module (no-op for this module).
func (m *Module) Start(_ context.Context) error {
	log.Println("[scrape] Module started")
	return nil
}

// Stop stops the module (no-op for this module).
func (m *Module) Stop(_ context.Context) error {
	log.Println("[scrape] Module stopped")
	return nil
}

// GetScraper returns the scraper instance.
func (m *Module) GetScraper() Scraper {
	return m.scraper
}
