package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"github.com/venuecount/stocktake-api/internal/config"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Venue and users
		&entity.Venue{},
		&entity.User{},

		// Catalog
		&entity.Supplier{},
		&entity.Product{},

		// Counting
		&entity.Department{},
		&entity.Area{},
		&entity.AreaItem{},

		// Ordering
		&entity.Order{},
		&entity.OrderLine{},
		&entity.SupplierScopeLock{},

		// Reconciliation
		&entity.ReconciliationRecord{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds a demo venue with a manager user and the sentinel
// unassigned supplier, driven by environment variables.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	venueName := viper.GetString("SEED_VENUE_NAME")
	venueSlug := viper.GetString("SEED_VENUE_SLUG")
	if venueName == "" || venueSlug == "" {
		log.Println("No seed venue configured, skipping")
		return nil
	}

	var venue entity.Venue
	if err := db.Where("slug = ?", venueSlug).First(&venue).Error; err != nil {
		venue = entity.Venue{Name: venueName, Slug: venueSlug}
		if err := db.Create(&venue).Error; err != nil {
			return fmt.Errorf("failed to create seed venue: %w", err)
		}
		log.Printf("Seed venue created: %s", venueSlug)
	}

	// Every venue gets exactly one sentinel supplier for unassigned products
	var sentinel entity.Supplier
	if err := db.Where("venue_id = ? AND is_unassigned = ?", venue.ID, true).First(&sentinel).Error; err != nil {
		sentinel = entity.Supplier{
			VenueID:      venue.ID,
			Name:         entity.UnassignedSupplierName,
			IsUnassigned: true,
		}
		if err := db.Create(&sentinel).Error; err != nil {
			log.Printf("Warning: failed to create sentinel supplier: %v", err)
		}
	}

	managerEmail := viper.GetString("SEED_MANAGER_EMAIL")
	managerPassword := viper.GetString("SEED_MANAGER_PASSWORD")
	managerName := viper.GetString("SEED_MANAGER_NAME")

	if managerEmail != "" && managerPassword != "" {
		var existing entity.User
		if err := db.Where("email = ?", managerEmail).First(&existing).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(managerPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash manager password: %v", err)
			} else {
				if managerName == "" {
					managerName = "Venue Manager"
				}
				manager := entity.User{
					VenueID:  venue.ID,
					Name:     managerName,
					Email:    managerEmail,
					Password: string(hashedPassword),
					Role:     enum.UserRoleManager,
				}
				if err := db.Create(&manager).Error; err != nil {
					log.Printf("Warning: failed to create manager user: %v", err)
				} else {
					log.Printf("Manager user created: %s", managerEmail)
				}
			}
		} else {
			log.Printf("Manager user already exists: %s", managerEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
