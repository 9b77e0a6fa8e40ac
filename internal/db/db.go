package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diewo77/ezpay-app/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the relational store. A DSN starting with postgres:// (or
// postgresql://) selects the postgres driver; anything else is treated as a
// sqlite file path or URI.
func Connect(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("DATABASE_DSN is empty")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	lower := strings.ToLower(dsn)
	var dialector gorm.Dialector
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		if !strings.HasPrefix(lower, "file:") && !strings.HasPrefix(lower, ":memory:") {
			if dir := filepath.Dir(dsn); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("create database directory: %w", err)
				}
			}
		}
		dialector = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return db, nil
}

// Migrate applies the schema. It is idempotent and runs once at process start,
// separate from business logic.
func Migrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.CardAccount{}, &models.ReceiptItem{}, &models.Payment{}, &models.Task{},
	}
	for _, m := range modelsToMigrate {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	for _, table := range []string{"card_accounts", "receipt_items", "payments", "tasks"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// DemoCards returns the fixed set of five seed card accounts.
func DemoCards() []models.CardAccount {
	return []models.CardAccount{
		{CardNumber: "4111111111111111", ExpiryMonth: 12, ExpiryYear: 2028, CVV: "123", CardholderName: "Alice Smith", AvailableBalance: decimal.New(2000, -2)},
		{CardNumber: "5555555555554444", ExpiryMonth: 6, ExpiryYear: 2027, CVV: "456", CardholderName: "Bob Jones", AvailableBalance: decimal.New(4000, -2)},
		{CardNumber: "378282246310005", ExpiryMonth: 9, ExpiryYear: 2029, CVV: "789", CardholderName: "Carol White", AvailableBalance: decimal.New(1550, -2)},
		{CardNumber: "6011111111111117", ExpiryMonth: 3, ExpiryYear: 2028, CVV: "321", CardholderName: "David Brown", AvailableBalance: decimal.New(6000, -2)},
		{CardNumber: "4000056655665556", ExpiryMonth: 11, ExpiryYear: 2026, CVV: "654", CardholderName: "Erin Davis", AvailableBalance: decimal.New(500, -2)},
	}
}

// SeedCards inserts the demo card accounts.
func SeedCards(db *gorm.DB) error {
	cards := DemoCards()
	return db.Create(&cards).Error
}

// SeedCardsIfEmpty seeds the demo cards when the table holds none, keeping
// startup idempotent across restarts.
func SeedCardsIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.CardAccount{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return SeedCards(db)
}
