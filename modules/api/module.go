// Package api exposes the HTTP surface of the price tracker.
package api

import (
	"context"
	"fmt"
	"log"

	authmod "github.com/example/price-tracker/modules/auth"
	"github.com/example/price-tracker/modules/cache"
	productmod "github.com/example/price-tracker/modules/product"
	searchmod "github.com/example/price-tracker/modules/search"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Module provides the HTTP API.
type Module struct {
	app           *fiber.App
	handlers      *Handlers
	authModule    *authmod.Module
	productModule *productmod.Module
	searchModule  *searchmod.Module
	cacheModule   *cache.Module
	port          int
}

// NewModule creates a new API module.
func NewModule(port int) *Module {
	return &Module{
		port: port,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// SetAuthModule sets the auth module dependency.
func (m *Module) SetAuthModule(am *authmod.Module) {
	m.authModule = am
}

// SetProductModule sets the product module dependency.
func (m *Module) SetProductModule(pm *productmod.Module) {
	m.productModule = pm
}

// SetSearchModule sets the search module dependency.
func (m *Module) SetSearchModule(sm *searchmod.Module) {
	m.searchModule = sm
}

// SetCacheModule sets the cache module dependency.
func (m *Module) SetCacheModule(cm *cache.Module) {
	m.cacheModule = cm
}

// Init creates the Fiber app and its global middleware.
func (m *Module) Init(_ mono.ServiceContainer) error {
	m.app = fiber.New(fiber.Config{
		AppName:               "Price Tracker",
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	return nil
}

// Start wires the handlers and starts the HTTP server.
func (m *Module) Start(_ context.Context) error {
	if m.authModule == nil || m.productModule == nil || m.searchModule == nil {
		return fmt.Errorf("api module dependencies not set")
	}

	authService := m.authModule.GetService()
	productService := m.productModule.GetService()
	searchService := m.searchModule.GetService()
	if authService == nil || productService == nil || searchService == nil {
		return fmt.Errorf("api module services not available")
	}

	var c *cache.Cache
	if m.cacheModule != nil {
		c = m.cacheModule.GetCache()
	}

	m.handlers = NewHandlers(authService, productService, searchService, c)
	m.setupRoutes(authService)

	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		log.Printf("[api] Starting HTTP server on %s", addr)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	return nil
}

// setupRoutes configures all HTTP routes. Everything except health and the
// auth endpoints requires a valid token.
func (m *Module) setupRoutes(authService *authmod.Service) {
	m.app.Get("/health", m.handlers.HealthCheck)

	v1 := m.app.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", m.handlers.Register)
	authRoutes.Post("/login", m.handlers.Login)

	protected := v1.Group("/", AuthMiddleware(authService))

	products := protected.Group("/products")
	products.Get("/", m.handlers.ListProducts)
	products.Post("/", m.handlers.CreateProduct)
	products.Get("/:id", m.handlers.GetProduct)
	products.Put("/:id", m.handlers.UpdateProduct)
	products.Delete("/:id", m.handlers.DeleteProduct)

	protected.Get("/search", m.handlers.Search)

	cacheRoutes := protected.Group("/cache")
	cacheRoutes.Get("/stats", m.handlers.GetCacheStats)
	cacheRoutes.Post("/stats/reset", m.handlers.ResetCacheStats)
}

// Stop shuts down the HTTP server gracefully.
func (m *Module) Stop(_ context.Context) error {
	if m.app != nil {
		log.Println("[api] Shutting down HTTP server...")
		return m.app.Shutdown()
	}
	return nil
}

// errorHandler handles errors escaping Fiber routes.
func (m *Module) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":  message,
		"code":   code,
		"path":   c.Path(),
		"method": c.Method(),
	})
}

// GetApp returns the Fiber app (for testing).
func (m *Module) GetApp() *fiber.App {
	return m.app
}
