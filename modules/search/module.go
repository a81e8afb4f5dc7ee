package search

import (
	"context"
	"log"
	"time"

	"github.com/go-monolith/mono"
)

// Module provides sponsored search as a mono module. A missing API key is
// not a startup failure: the service reports it per request so the rest of
// the application keeps working.
type Module struct {
	service *Service
	baseURL string
	apiKey  string
	timeout time.Duration
}

// NewModule creates a new search module.
func NewModule(baseURL, apiKey string, timeout time.Duration) *Module {
	return &Module{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "search"
}

// Init builds the client and service.
func (m *Module) Init(_ mono.ServiceContainer) error {
	client := NewClient(m.baseURL, m.apiKey, m.timeout)
	m.service = NewService(client)

	if m.apiKey == "" {
		log.Println("[search] No API key configured; sponsored search will reject requests")
	} else {
		log.Printf("[search] Gateway initialized (upstream: %s, timeout: %s)", m.baseURL, m.timeout)
	}
	return nil
}

// Start starts the module (no-op for this module).
func (m *Module) Start(_ context.Context) error {
	log.Println("[search] Module started")
	return nil
}

// Stop stops the module (no-op for this module).
func (m *Module) Stop(_ context.Context) error {
	log.Println("[search] Module stopped")
	return nil
}

// GetService returns the search service.
func (m *Module) GetService() *Service {
	return m.service
}
