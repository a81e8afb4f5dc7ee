package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	apimod "github.com/example/price-tracker/modules/api"
	authmod "github.com/example/price-tracker/modules/auth"
	cachemod "github.com/example/price-tracker/modules/cache"
	productmod "github.com/example/price-tracker/modules/product"
	scrapemod "github.com/example/price-tracker/modules/scrape"
	searchmod "github.com/example/price-tracker/modules/search"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	cachePrefix := getEnv("CACHE_PREFIX", "pricetracker:")
	cacheTTL := getEnvDuration("CACHE_TTL", 300*time.Second)
	productsDBPath := getEnv("PRODUCTS_DB_PATH", "./products.db")
	usersDBPath := getEnv("USERS_DB_PATH", "./users.db")
	httpPort := getEnvInt("HTTP_PORT", 3000)
	scrapeTimeout := getEnvDuration("SCRAPE_TIMEOUT", 10*time.Second)
	searchBaseURL := getEnv("SEARCH_BASE_URL", "https://serpapi.com")
	searchAPIKey := getEnv("SEARCH_API_KEY", "")
	searchTimeout := getEnvDuration("SEARCH_TIMEOUT", 10*time.Second)
	jwtSecret := getEnv("JWT_SECRET", "")
	tokenLifetime := getEnvDuration("TOKEN_LIFETIME", 24*time.Hour)

	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	log.Println("=== Price Tracker ===")
	log.Printf("Redis: %s", redisAddr)
	log.Printf("Products DB: %s", productsDBPath)
	log.Printf("Users DB: %s", usersDBPath)
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Cache TTL: %s", cacheTTL)

	// Create modules
	cacheModule := cachemod.NewModule(redisAddr, cachePrefix, cacheTTL)
	scrapeModule := scrapemod.NewModule(scrapeTimeout)
	productModule := productmod.NewModule(productsDBPath, scrapeTimeout)
	searchModule := searchmod.NewModule(searchBaseURL, searchAPIKey, searchTimeout)
	authModule := authmod.NewModule(usersDBPath, jwtSecret, tokenLifetime, "price-tracker")
	apiModule := apimod.NewModule(httpPort)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules
	app.Register(cacheModule)
	app.Register(scrapeModule)
	app.Register(authModule)
	app.Register(productModule)
	app.Register(searchModule)
	app.Register(apiModule)

	// Wire cross-module dependencies. Modules resolve each other's
	// services at Start, after the dependency's Init has run.
	productModule.SetCacheModule(cacheModule)
	productModule.SetScrapeModule(scrapeModule)
	apiModule.SetAuthModule(authModule)
	apiModule.SetProductModule(productModule)
	apiModule.SetSearchModule(searchModule)
	apiModule.SetCacheModule(cacheModule)

	// Start modules (this handles Init and Start)
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", httpPort)
	log.Println("Endpoints:")
	log.Println("  GET    /health                  - Health check")
	log.Println("  POST   /api/v1/auth/register    - Register")
	log.Println("  POST   /api/v1/auth/login       - Login")
	log.Println("  GET    /api/v1/products         - List tracked products (cached)")
	log.Println("  POST   /api/v1/products         - Track a product (scrapes price)")
	log.Println("  GET    /api/v1/products/:id     - Get product (counts view)")
	log.Println("  PUT    /api/v1/products/:id     - Update product")
	log.Println("  DELETE /api/v1/products/:id     - Delete product")
	log.Println("  GET    /api/v1/search?q=...     - Sponsored shopping search")
	log.Println("  GET    /api/v1/cache/stats      - Cache statistics")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	// Setup graceful shutdown using gelmium/graceful-shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
