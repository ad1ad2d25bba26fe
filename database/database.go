package database

import (
	"sync"

	"wishlist-lite/logger"
	"wishlist-lite/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	DB   *gorm.DB
	once sync.Once
	err  error
)

// Init opens the SQLite database at the given path and auto-migrates the
// schema. Safe to call more than once; only the first call connects.
func Init(path string, log logger.Logger) (*gorm.DB, error) {
	once.Do(func() {
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			log.Error("failed to connect to database", logger.String("path", path), logger.Error(err))
			return
		}
		log.Info("database connection established", logger.String("path", path))

		err = DB.AutoMigrate(&models.User{}, &models.Item{})
		if err != nil {
			log.Error("failed to auto-migrate database schema", logger.Error(err))
			return
		}
		log.Info("database schema migrated")
	})
	return DB, err
}
