package server

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres and migrates the schema. sslmode=require is
// added when the DSN does not choose one.
func Open(dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("database url not set")
	}
	return OpenDialector(postgres.Open(withSSLMode(dsn)))
}

// OpenDialector opens any gorm dialector and migrates the schema.
func OpenDialector(d gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the backend tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Profile{}, &Transaction{}, &Goal{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func withSSLMode(dsn string) string {
	if strings.Contains(dsn, "sslmode") {
		return dsn
	}
	if strings.Contains(dsn, "://") {
		if strings.Contains(dsn, "?") {
			return dsn + "&sslmode=require"
		}
		return dsn + "?sslmode=require"
	}
	return dsn + " sslmode=require"
}
