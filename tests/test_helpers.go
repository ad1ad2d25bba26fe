package tests

import (
	"fmt"
	"log"
	"sync"

	"wishlist-lite/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	testDB    *gorm.DB
	onceDB    sync.Once
	dbInitErr error
)

// SetupTestDB initializes an in-memory SQLite database for testing and
// migrates the schema. The connection is shared across a test binary.
func SetupTestDB() (*gorm.DB, error) {
	onceDB.Do(func() {
		testDB, dbInitErr = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
		if dbInitErr != nil {
			log.Fatalf("Failed to connect to in-memory test database: %v", dbInitErr)
			return
		}

		dbInitErr = testDB.AutoMigrate(&models.User{}, &models.Item{})
		if dbInitErr != nil {
			log.Fatalf("Failed to auto-migrate test database schema: %v", dbInitErr)
			return
		}
	})
	return testDB, dbInitErr
}

// CreateTestApp initializes a new Fiber app for testing purposes.
func CreateTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return ctx.Status(code).SendString(err.Error())
		},
	})
	return app
}

// TeardownTestDB closes the test database connection.
func TeardownTestDB(db *gorm.DB) {
	if db != nil {
		sqlDB, err := db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Error closing test database: %v", err)
			}
		}
	}
}

// ClearTables deletes all rows from the items and users tables and resets
// their autoincrement sequences so tests start from a clean slate.
func ClearTables(db *gorm.DB) error {
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Item{}).Error; err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	// Reset autoincrement sequences for sqlite; harmless if already empty.
	db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('items', 'users')")
	return nil
}
