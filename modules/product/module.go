package product

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/price-tracker/domain/product"
	"github.com/example/price-tracker/modules/cache"
	"github.com/example/price-tracker/modules/scrape"
	"github.com/go-monolith/mono"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module provides product services as a mono module.
type Module struct {
	db            *gorm.DB
	repo          *product.Repository
	service       *Service
	cacheModule   *cache.Module
	scrapeModule  *scrape.Module
	dbPath        string
	scrapeTimeout time.Duration
}

// NewModule creates a new product module.
func NewModule(dbPath string, scrapeTimeout time.Duration) *Module {
	return &Module{
		dbPath:        dbPath,
		scrapeTimeout: scrapeTimeout,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "product"
}

// SetCacheModule wires the cache module. Called before the application
// starts; the cache itself is resolved at Start, and a nil cache puts the
// service in degraded mode.
func (m *Module) SetCacheModule(cm *cache.Module) {
	m.cacheModule = cm
}

// SetScrapeModule wires the scrape module.
func (m *Module) SetScrapeModule(sm *scrape.Module) {
	m.scrapeModule = sm
}

// Init opens the database and runs migrations.
func (m *Module) Init(_ mono.ServiceContainer) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	m.db = db
	m.repo = product.NewRepository(db)

	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("[product] Database initialized at %s", m.dbPath)
	return nil
}

// Start resolves the wired collaborators and builds the service. The cache
// module runs its Init before this module in registration order, so its
// cache (possibly nil, degraded mode) is final by now.
func (m *Module) Start(_ context.Context) error {
	if m.scrapeModule == nil {
		return fmt.Errorf("product service not initialized: scrape module not set")
	}

	var c *cache.Cache
	if m.cacheModule != nil {
		c = m.cacheModule.GetCache()
	}

	m.service = NewService(m.repo, c, m.scrapeModule.GetScraper(), m.scrapeTimeout)

	log.Println("[product] Module started")
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[product] Module stopped")
	return nil
}

// GetService returns the product service.
func (m *Module) GetService() *Service {
	return m.service
}

// GetRepository returns the product repository.
func (m *Module) GetRepository() *product.Repository {
	return m.repo
}

// HealthCheck verifies the database connection is healthy.
func (m *Module) HealthCheck(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
