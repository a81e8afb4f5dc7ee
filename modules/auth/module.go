package auth

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module provides authentication as a mono module.
type Module struct {
	db            *gorm.DB
	service       *Service
	dbPath        string
	jwtSecret     string
	tokenLifetime time.Duration
	issuer        string
}

// NewModule creates a new auth module.
func NewModule(dbPath, jwtSecret string, tokenLifetime time.Duration, issuer string) *Module {
	return &Module{
		dbPath:        dbPath,
		jwtSecret:     jwtSecret,
		tokenLifetime: tokenLifetime,
		issuer:        issuer,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "auth"
}

// Init opens the user database and builds the service.
func (m *Module) Init(_ mono.ServiceContainer) error {
	if m.jwtSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	repo := NewUserRepository(db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	tokens := NewTokenManager(m.jwtSecret, m.tokenLifetime, m.issuer)
	m.service = NewService(repo, tokens)

	log.Printf("[auth] Database initialized at %s", m.dbPath)
	return nil
}

// Start starts the module (no-op for this module).
func (m *Module) Start(_ context.Context) error {
	log.Println("[auth] Module started")
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
	log.Println("[auth] Module stopped")
	return nil
}

// GetService returns the auth service.
func (m *Module) GetService() *Service {
	return m.service
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
